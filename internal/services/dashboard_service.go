package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"opsdash/internal/caching"
	"opsdash/internal/models"
	"opsdash/internal/repositories"
	"opsdash/internal/transform"
)

const (
	alertLimit           = 50
	defaultServicesLimit = 10
)

type DashboardService interface {
	// Summary serves the cached summary, computing it on a miss.
	Summary(ctx context.Context) (*models.DashboardSummary, error)
	// Refresh recomputes the summary and replaces the cached copy.
	Refresh(ctx context.Context) (*models.DashboardSummary, error)
	Alerts(ctx context.Context) ([]models.Alert, error)
	Services(ctx context.Context, limit int) ([]models.ServiceCount, error)
}

type dashboardService struct {
	dashboardRepo repositories.DashboardRepository
	callRepo      repositories.CallRepository
	cacheService  caching.CacheService
	cacheTTL      time.Duration
	now           func() time.Time
}

func NewDashboardService(dashboardRepo repositories.DashboardRepository, callRepo repositories.CallRepository, cacheService caching.CacheService, cacheTTL time.Duration) DashboardService {
	return &dashboardService{
		dashboardRepo: dashboardRepo,
		callRepo:      callRepo,
		cacheService:  cacheService,
		cacheTTL:      cacheTTL,
		now:           time.Now,
	}
}

func (s *dashboardService) Summary(ctx context.Context) (*models.DashboardSummary, error) {
	if cached, err := s.cacheService.GetDashboardSummary(ctx); cached != nil {
		return cached, nil
	} else if err != nil {
		log.Printf("Cache error for dashboard summary: %v", err)
	}
	return s.Refresh(ctx)
}

func (s *dashboardService) Refresh(ctx context.Context) (*models.DashboardSummary, error) {
	now := s.now()
	summary, err := s.dashboardRepo.Summary(ctx, now)
	if err != nil {
		return nil, err
	}
	live, err := s.callRepo.Recent(ctx, now.Add(-liveCallWindow), liveCallLimit)
	if err != nil {
		return nil, err
	}
	summary.ActiveCalls = len(live)
	summary.GeneratedAt = now.UTC()

	if cacheErr := s.cacheService.SetDashboardSummary(ctx, summary, s.cacheTTL); cacheErr != nil {
		log.Printf("Failed to cache dashboard summary: %v", cacheErr)
	}
	return summary, nil
}

// Alerts lists a critical alert per missed call and per failed payment,
// newest first.
func (s *dashboardService) Alerts(ctx context.Context) ([]models.Alert, error) {
	calls, err := s.dashboardRepo.MissedCalls(ctx, alertLimit)
	if err != nil {
		return nil, err
	}
	payments, err := s.dashboardRepo.FailedPayments(ctx, alertLimit)
	if err != nil {
		return nil, err
	}

	alerts := make([]models.Alert, 0, len(calls)+len(payments))
	for _, rec := range calls {
		call := transform.Call(rec)
		alerts = append(alerts, models.Alert{
			ID:        "ALERT_CALL_" + call.ID,
			Type:      models.AlertCritical,
			Category:  models.AlertMissedCall,
			Message:   fmt.Sprintf("Missed call from %s - %s", call.CallerName, call.Purpose),
			Timestamp: parseTimestamp(call.Timestamp),
		})
	}
	for _, rec := range payments {
		p := transform.Payment(rec)
		subject := p.ID
		if p.AppointmentID != nil {
			subject = *p.AppointmentID
		}
		alerts = append(alerts, models.Alert{
			ID:        "ALERT_PAY_" + p.ID,
			Type:      models.AlertCritical,
			Category:  models.AlertFailedPayment,
			Message:   fmt.Sprintf("Payment failed for %s - %s ($%.2f)", subject, p.CustomerName, p.Amount),
			Timestamp: parseTimestamp(p.Timestamp),
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		ti, tj := alerts[i].Timestamp, alerts[j].Timestamp
		if ti == nil || tj == nil {
			return ti != nil
		}
		return ti.After(*tj)
	})
	return alerts, nil
}

func (s *dashboardService) Services(ctx context.Context, limit int) ([]models.ServiceCount, error) {
	if limit <= 0 {
		limit = defaultServicesLimit
	}
	out, err := s.dashboardRepo.ServiceDistribution(ctx, limit)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.ServiceCount{}
	}
	return out, nil
}

func parseTimestamp(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}
