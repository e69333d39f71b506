package pagination

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	DefaultLimit = 100
	MaxLimit     = 100
)

// Params holds skip/limit paging parameters extracted from a request.
type Params struct {
	Skip  int
	Limit int
}

// ParamError describes one query parameter that is out of range or not an
// integer.
type ParamError struct {
	Param  string
	Reason string
}

// Errors collects every invalid paging parameter of a request.
type Errors []ParamError

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, pe := range e {
		parts[i] = pe.Param + " " + pe.Reason
	}
	return "invalid pagination: " + strings.Join(parts, "; ")
}

// FromContext reads "skip" (>= 0, default 0) and "limit" (1..MaxLimit,
// default DefaultLimit). Out-of-range or non-integer values are rejected
// rather than clamped.
func FromContext(c echo.Context) (Params, error) {
	p := Params{Skip: 0, Limit: DefaultLimit}
	var errs Errors

	if raw := c.QueryParam("skip"); raw != "" {
		v, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			errs = append(errs, ParamError{Param: "skip", Reason: "must be an integer"})
		case v < 0:
			errs = append(errs, ParamError{Param: "skip", Reason: "must be greater than or equal to 0"})
		default:
			p.Skip = v
		}
	}

	if raw := c.QueryParam("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			errs = append(errs, ParamError{Param: "limit", Reason: "must be an integer"})
		case v < 1:
			errs = append(errs, ParamError{Param: "limit", Reason: "must be greater than or equal to 1"})
		case v > MaxLimit:
			errs = append(errs, ParamError{Param: "limit", Reason: "must be less than or equal to " + strconv.Itoa(MaxLimit)})
		default:
			p.Limit = v
		}
	}

	if len(errs) > 0 {
		return Params{}, errs
	}
	return p, nil
}

// HasNext returns true if there are more results after the current page.
func (p Params) HasNext(total int) bool {
	return p.Skip+p.Limit < total
}

// NextSkip returns the skip value of the following page.
func (p Params) NextSkip() int {
	return p.Skip + p.Limit
}

// NextLink builds the URL of the following page, preserving the other query
// parameters in query.
func (p Params) NextLink(path string, query url.Values) string {
	q := url.Values{}
	for k, v := range query {
		q[k] = v
	}
	q.Set("skip", strconv.Itoa(p.NextSkip()))
	q.Set("limit", strconv.Itoa(p.Limit))
	return path + "?" + q.Encode()
}
