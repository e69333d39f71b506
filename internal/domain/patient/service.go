package patient

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ehr/patient-service/internal/platform/metrics"
	"github.com/ehr/patient-service/internal/platform/pii"
)

// Service implements the patient operations. Every log line goes through the
// request logger and every name, email and phone through pii masking; dates
// of birth are never logged.
type Service struct {
	repo    Repository
	metrics *metrics.Metrics
}

// NewService builds a Service. m may be nil.
func NewService(repo Repository, m *metrics.Metrics) *Service {
	return &Service{repo: repo, metrics: m}
}

func (s *Service) observe(op string, err error) {
	outcome := metrics.OutcomeOK
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		outcome = metrics.OutcomeNotFound
	case errors.Is(err, ErrConflict):
		outcome = metrics.OutcomeConflict
	default:
		outcome = metrics.OutcomeError
	}
	s.metrics.Observe(op, outcome)
}

func (s *Service) ListPatients(ctx context.Context, f Filter, skip, limit int) ([]*Patient, int, error) {
	patients, total, err := s.repo.List(ctx, f, limit, skip)
	s.observe("list", err)
	if err != nil {
		return nil, 0, err
	}
	if patients == nil {
		patients = []*Patient{}
	}
	s.metrics.ObserveReturned(len(patients))

	zerolog.Ctx(ctx).Info().
		Int("total", total).
		Int("returned", len(patients)).
		Dict("filters", pii.Dict(
			pii.Field{Key: "name", Kind: pii.Name, Value: f.Name},
			pii.Field{Key: "phone", Kind: pii.Phone, Value: f.Phone},
		)).
		Msg("patients_retrieved")

	return patients, total, nil
}

func (s *Service) GetPatient(ctx context.Context, id int64) (*Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	s.observe("get", err)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			zerolog.Ctx(ctx).Warn().Int64("patient_id", id).Msg("patient_not_found")
		}
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Int64("patient_id", id).Msg("patient_retrieved")
	return p, nil
}

// CreatePatient stores a new patient. An existing record with the same email
// yields ErrConflict; the unique index catches the race between the check
// and the insert.
func (s *Service) CreatePatient(ctx context.Context, req CreateRequest) (*Patient, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p := req.Patient()
	err := s.repo.WithinTx(ctx, func(ctx context.Context) error {
		_, err := s.repo.GetByEmail(ctx, p.Email)
		switch {
		case err == nil:
			return ErrConflict
		case !errors.Is(err, ErrNotFound):
			return err
		}
		return s.repo.Create(ctx, p)
	})
	s.observe("create", err)
	if err != nil {
		if errors.Is(err, ErrConflict) {
			pii.Str(zerolog.Ctx(ctx).Warn(), "email", pii.Email, p.Email).Msg("patient_exists")
		}
		return nil, err
	}

	pii.Str(zerolog.Ctx(ctx).Info().Int64("patient_id", p.ID), "name", pii.Name, p.Name).
		Msg("patient_created")
	return p, nil
}

// UpdatePatient applies the fields present in req. A unique violation on
// email is reported as ErrConflict.
func (s *Service) UpdatePatient(ctx context.Context, id int64, req UpdateRequest) (*Patient, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var p *Patient
	err := s.repo.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		p, err = s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if req.Empty() {
			return nil
		}
		req.Apply(p)
		return s.repo.Update(ctx, p)
	})
	s.observe("update", err)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			zerolog.Ctx(ctx).Warn().Int64("patient_id", id).Msg("patient_not_found")
		}
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Int64("patient_id", id).Msg("patient_updated")
	return p, nil
}

// DeletePatient removes the row. Deletion is permanent.
func (s *Service) DeletePatient(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	s.observe("delete", err)
	if err != nil {
		return err
	}

	zerolog.Ctx(ctx).Info().Int64("patient_id", id).Msg("patient_deleted")
	return nil
}

func (s *Service) PatientExists(ctx context.Context, id int64) (bool, error) {
	exists, err := s.repo.Exists(ctx, id)
	s.observe("exists", err)
	if err != nil {
		return false, fmt.Errorf("check patient %d: %w", id, err)
	}
	return exists, nil
}
