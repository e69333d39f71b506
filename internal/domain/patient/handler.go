package patient

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ehr/patient-service/internal/platform/apierr"
	"github.com/ehr/patient-service/pkg/pagination"
)

const TotalCountHeader = "X-Total-Count"

type Handler struct {
	svc    *Service
	binder echo.DefaultBinder
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/patients", h.ListPatients)
	g.POST("/patients", h.CreatePatient)
	g.GET("/patients/:id", h.GetPatient)
	g.PUT("/patients/:id", h.UpdatePatient)
	g.DELETE("/patients/:id", h.DeletePatient)
	g.GET("/patients/:id/exists", h.PatientExists)
}

func (h *Handler) ListPatients(c echo.Context) error {
	pg, err := pagination.FromContext(c)
	if err != nil {
		var perrs pagination.Errors
		if errors.As(err, &perrs) {
			fields := make([]apierr.FieldError, len(perrs))
			for i, pe := range perrs {
				fields[i] = apierr.FieldError{Field: pe.Param, Error: pe.Reason}
			}
			return apierr.Validation("invalid query parameters", fields...)
		}
		return err
	}

	f := Filter{Name: c.QueryParam("name"), Phone: c.QueryParam("phone")}
	patients, total, err := h.svc.ListPatients(c.Request().Context(), f, pg.Skip, pg.Limit)
	if err != nil {
		return mapError(err)
	}

	c.Response().Header().Set(TotalCountHeader, strconv.Itoa(total))
	if pg.HasNext(total) {
		next := pg.NextLink(c.Request().URL.Path, c.QueryParams())
		c.Response().Header().Set("Link", fmt.Sprintf(`<%s>; rel="next"`, next))
	}
	return c.JSON(http.StatusOK, patients)
}

func (h *Handler) GetPatient(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	p, err := h.svc.GetPatient(c.Request().Context(), id)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) CreatePatient(c echo.Context) error {
	var req CreateRequest
	if err := h.binder.BindBody(c, &req); err != nil {
		return bindError(err)
	}
	p, err := h.svc.CreatePatient(c.Request().Context(), req)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) UpdatePatient(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req UpdateRequest
	if err := h.binder.BindBody(c, &req); err != nil {
		return bindError(err)
	}
	p, err := h.svc.UpdatePatient(c.Request().Context(), id, req)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, p)
}

// DeletePatient permanently removes the patient row.
func (h *Handler) DeletePatient(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeletePatient(c.Request().Context(), id); err != nil {
		return mapError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) PatientExists(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	exists, err := h.svc.PatientExists(c.Request().Context(), id)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"exists": exists})
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apierr.Validation("", apierr.FieldError{Field: "patient_id", Error: "must be an integer"})
	}
	return id, nil
}

// bindError reports malformed JSON as a 422. Errors raised while reading the
// body, such as the body size limit, keep their own status.
func bindError(err error) error {
	var he *apierr.HTTPError
	if errors.As(err, &he) {
		return he
	}
	var ee *echo.HTTPError
	if errors.As(err, &ee) && ee.Code == http.StatusBadRequest {
		return apierr.Validation(fmt.Sprintf("invalid request body: %v", ee.Message))
	}
	return err
}

func mapError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return apierr.NotFound("Patient not found")
	case errors.Is(err, ErrConflict):
		return apierr.Conflict("Patient with this email already exists")
	}
	return err
}
