package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"opsdash/internal/caching"
	"opsdash/internal/common"
	"opsdash/internal/models"
	"opsdash/internal/query"
	"opsdash/internal/repositories"
	"opsdash/internal/stats"
	"opsdash/internal/transform"
)

const (
	liveCallWindow = time.Hour
	liveCallLimit  = 10
	maxNotesLength = 2000
)

type CallService interface {
	List(ctx context.Context, opts query.ListOptions) ([]models.CallView, int, error)
	GetByID(ctx context.Context, id string) (*models.CallView, error)
	Create(ctx context.Context, in *models.CreateCallInput) (*models.CallView, error)
	Update(ctx context.Context, id string, in *models.UpdateCallInput) (*models.CallView, error)
	Delete(ctx context.Context, id string) (*models.CallView, error)
	LiveCalls(ctx context.Context) ([]models.LiveCallView, error)
}

type callService struct {
	callRepo repositories.CallRepository
	counters counterSync
	now      func() time.Time
}

func NewCallService(callRepo repositories.CallRepository, aggregator stats.Aggregator, cacheService caching.CacheService) CallService {
	return &callService{
		callRepo: callRepo,
		counters: counterSync{aggregator: aggregator, cache: cacheService},
		now:      time.Now,
	}
}

func (s *callService) List(ctx context.Context, opts query.ListOptions) ([]models.CallView, int, error) {
	opts, err := opts.Normalize()
	if err != nil {
		return nil, 0, err
	}
	recs, total, err := s.callRepo.List(ctx, opts)
	if err != nil {
		return nil, 0, err
	}
	return transform.Calls(recs), total, nil
}

func (s *callService) GetByID(ctx context.Context, id string) (*models.CallView, error) {
	rec, err := s.callRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := transform.Call(rec)
	return &view, nil
}

// Create records a call. An active call carries no duration; any other
// status requires one.
func (s *callService) Create(ctx context.Context, in *models.CreateCallInput) (*models.CallView, error) {
	in.CallerName = strings.TrimSpace(in.CallerName)
	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	if err := common.ValidateRequiredString(in.CallerName, "callerName"); err != nil {
		return nil, err
	}
	if err := common.ValidateRequiredString(in.PhoneNumber, "phoneNumber"); err != nil {
		return nil, err
	}
	if err := common.ValidateRequiredString(in.CallType, "callType"); err != nil {
		return nil, err
	}
	if err := common.ValidateOneOf(in.CallType, "callType", models.CallTypes...); err != nil {
		return nil, err
	}
	if in.Status == "" {
		in.Status = models.CallCompleted
	}
	if err := common.ValidateOneOf(in.Status, "status", models.CallStatuses...); err != nil {
		return nil, err
	}

	in.Duration = trimmedOrNil(in.Duration)
	if in.Status == models.CallActive {
		in.Duration = nil
	} else {
		if in.Duration == nil {
			return nil, common.NewValidationError("duration", "duration is required unless the call is active")
		}
		if err := validateDuration(*in.Duration); err != nil {
			return nil, err
		}
	}
	in.UserID = trimmedOrNil(in.UserID)
	in.Timestamp = trimmedOrNil(in.Timestamp)
	if err := common.ValidateOptionalString(in.Notes, "notes", maxNotesLength); err != nil {
		return nil, err
	}

	rec, err := s.callRepo.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.counters.refresh(ctx, in.UserID)

	view := transform.Call(rec)
	return &view, nil
}

// Update applies a partial patch. Ending an active call stamps its end time
// and, when no duration is given, derives one from the start time.
func (s *callService) Update(ctx context.Context, id string, in *models.UpdateCallInput) (*models.CallView, error) {
	if in.Status != nil {
		if err := common.ValidateOneOf(*in.Status, "status", models.CallStatuses...); err != nil {
			return nil, err
		}
	}
	in.Duration = trimmedOrNil(in.Duration)
	if in.Duration != nil {
		if err := validateDuration(*in.Duration); err != nil {
			return nil, err
		}
	}
	if err := common.ValidateOptionalString(in.Notes, "notes", maxNotesLength); err != nil {
		return nil, err
	}

	current, err := s.callRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	wasActive := transform.Call(current).Status == models.CallActive
	nextStatus := ""
	if in.Status != nil {
		nextStatus = *in.Status
	}

	var endedAt *time.Time
	switch {
	case wasActive && nextStatus != "" && nextStatus != models.CallActive:
		now := s.now()
		endedAt = &now
		if in.Duration == nil {
			d := transform.DefaultDuration
			if start, ok := transform.CallStartTime(current); ok && now.After(start) {
				d = transform.FormatDuration(int(now.Sub(start).Seconds()))
			}
			in.Duration = &d
		}
	case !wasActive && nextStatus == models.CallActive:
		return nil, common.NewValidationError("status", "a finished call cannot become active again")
	case (wasActive && nextStatus == "") || nextStatus == models.CallActive:
		if in.Duration != nil {
			return nil, common.NewValidationError("duration", "an active call has no duration")
		}
	}

	rec, err := s.callRepo.Update(ctx, id, in, endedAt)
	if err != nil {
		return nil, err
	}
	view := transform.Call(rec)
	if in.Status != nil {
		s.counters.refresh(ctx, view.UserID)
	}
	return &view, nil
}

func (s *callService) Delete(ctx context.Context, id string) (*models.CallView, error) {
	rec, err := s.callRepo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	view := transform.Call(rec)
	s.counters.refresh(ctx, view.UserID)
	return &view, nil
}

// LiveCalls polls the calls started within the last hour.
func (s *callService) LiveCalls(ctx context.Context) ([]models.LiveCallView, error) {
	recs, err := s.callRepo.Recent(ctx, s.now().Add(-liveCallWindow), liveCallLimit)
	if err != nil {
		return nil, err
	}
	return transform.LiveCalls(recs), nil
}

// validateDuration accepts MM:SS with seconds below 60.
func validateDuration(d string) error {
	minutes, seconds, found := strings.Cut(d, ":")
	if !found || len(seconds) != 2 {
		return common.NewValidationError("duration", "must be in MM:SS format")
	}
	m, errM := strconv.Atoi(minutes)
	sec, errS := strconv.Atoi(seconds)
	if errM != nil || errS != nil || m < 0 || sec < 0 || sec > 59 {
		return common.NewValidationError("duration", "must be in MM:SS format")
	}
	return nil
}
