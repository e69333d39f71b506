package apierr

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Resolve maps any error returned by a handler or middleware onto an
// HTTPError. Unknown errors become an opaque 500.
func Resolve(err error) *HTTPError {
	var he *HTTPError
	if errors.As(err, &he) {
		return he
	}

	var ee *echo.HTTPError
	if errors.As(err, &ee) {
		msg, ok := ee.Message.(string)
		if !ok {
			msg = fmt.Sprintf("%v", ee.Message)
		}
		return New(ee.Code, codeForStatus(ee.Code), msg)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return Timeout()
	}

	return Internal()
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return CodeBadRequest
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusMethodNotAllowed:
		return CodeMethodNotAllowed
	case http.StatusRequestEntityTooLarge:
		return CodePayloadTooLarge
	case http.StatusUnprocessableEntity:
		return CodeValidation
	case http.StatusTooManyRequests:
		return CodeTooManyRequests
	case http.StatusServiceUnavailable:
		return CodeUnavailable
	case http.StatusGatewayTimeout:
		return CodeTimeout
	}
	if status >= 500 {
		return CodeInternal
	}
	return CodeBadRequest
}

// Handler is an echo.HTTPErrorHandler that writes every error as an
// HTTPError JSON body. Server errors are logged through the request logger.
func Handler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		he := Resolve(err)
		if he.Status >= http.StatusInternalServerError {
			zerolog.Ctx(c.Request().Context()).Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("unhandled error")
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(he.Status)
		} else {
			err = c.JSON(he.Status, he)
		}
		if err != nil {
			zerolog.Ctx(c.Request().Context()).Error().Err(err).Msg("failed to write error response")
		}
	}
}
