package services

import (
	"context"
	"strings"

	"opsdash/internal/caching"
	"opsdash/internal/common"
	"opsdash/internal/models"
	"opsdash/internal/query"
	"opsdash/internal/repositories"
	"opsdash/internal/stats"
	"opsdash/internal/transform"
)

type AppointmentService interface {
	List(ctx context.Context, opts query.ListOptions) ([]models.AppointmentView, int, error)
	GetByID(ctx context.Context, id string) (*models.AppointmentView, error)
	Create(ctx context.Context, in *models.CreateAppointmentInput) (*models.AppointmentView, error)
	Update(ctx context.Context, id string, in *models.UpdateAppointmentInput) (*models.AppointmentView, error)
	Delete(ctx context.Context, id string) (*models.AppointmentView, error)
}

type appointmentService struct {
	appointmentRepo repositories.AppointmentRepository
	counters        counterSync
}

func NewAppointmentService(appointmentRepo repositories.AppointmentRepository, aggregator stats.Aggregator, cacheService caching.CacheService) AppointmentService {
	return &appointmentService{
		appointmentRepo: appointmentRepo,
		counters:        counterSync{aggregator: aggregator, cache: cacheService},
	}
}

func (s *appointmentService) List(ctx context.Context, opts query.ListOptions) ([]models.AppointmentView, int, error) {
	opts, err := opts.Normalize()
	if err != nil {
		return nil, 0, err
	}
	recs, total, err := s.appointmentRepo.List(ctx, opts)
	if err != nil {
		return nil, 0, err
	}
	return transform.Appointments(recs), total, nil
}

func (s *appointmentService) GetByID(ctx context.Context, id string) (*models.AppointmentView, error) {
	rec, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := transform.Appointment(rec)
	return &view, nil
}

func (s *appointmentService) Create(ctx context.Context, in *models.CreateAppointmentInput) (*models.AppointmentView, error) {
	in.Service = strings.TrimSpace(in.Service)
	in.Time = strings.TrimSpace(in.Time)
	if err := common.ValidateRequiredString(in.Service, "service"); err != nil {
		return nil, err
	}
	if err := common.ValidateDateFormat(in.Date, "date"); err != nil {
		return nil, err
	}
	if err := common.ValidateRequiredString(in.Time, "time"); err != nil {
		return nil, err
	}
	if in.Status == "" {
		in.Status = models.AppointmentPending
	}
	if err := common.ValidateOneOf(in.Status, "status", models.AppointmentStatuses...); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.PatientName) == "" {
		in.PatientName = "Unknown"
	}
	in.UserID = trimmedOrNil(in.UserID)

	rec, err := s.appointmentRepo.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.counters.refresh(ctx, in.UserID)

	view := transform.Appointment(rec)
	return &view, nil
}

// Update applies a partial patch. An empty userId detaches the appointment
// from its owner. When the owning user changes, counters of both the
// previous and the new owner are refreshed.
func (s *appointmentService) Update(ctx context.Context, id string, in *models.UpdateAppointmentInput) (*models.AppointmentView, error) {
	if in.Service != nil {
		if err := common.ValidateRequiredString(*in.Service, "service"); err != nil {
			return nil, err
		}
	}
	if in.Date != nil {
		if err := common.ValidateDateFormat(*in.Date, "date"); err != nil {
			return nil, err
		}
	}
	if in.Time != nil {
		if err := common.ValidateRequiredString(*in.Time, "time"); err != nil {
			return nil, err
		}
	}
	if in.Status != nil {
		if err := common.ValidateOneOf(*in.Status, "status", models.AppointmentStatuses...); err != nil {
			return nil, err
		}
	}
	if in.UserID != nil {
		owner := strings.TrimSpace(*in.UserID)
		in.UserID = &owner
	}

	var previousOwner *string
	if in.UserID != nil {
		current, err := s.appointmentRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		previousOwner = transform.Appointment(current).UserID
	}

	rec, err := s.appointmentRepo.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}

	view := transform.Appointment(rec)
	switch {
	case in.UserID != nil:
		s.counters.refresh(ctx, previousOwner, view.UserID)
	case in.Status != nil || in.Date != nil:
		// today's and completed counts on the dashboard
		s.counters.invalidateDashboard(ctx)
	}
	return &view, nil
}

func (s *appointmentService) Delete(ctx context.Context, id string) (*models.AppointmentView, error) {
	rec, err := s.appointmentRepo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	view := transform.Appointment(rec)
	s.counters.refresh(ctx, view.UserID)
	return &view, nil
}
