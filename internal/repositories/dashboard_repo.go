package repositories

import (
	"context"
	"time"

	"opsdash/internal/common"
	"opsdash/internal/models"
)

type DashboardRepository interface {
	Summary(ctx context.Context, day time.Time) (*models.DashboardSummary, error)
	ServiceDistribution(ctx context.Context, limit int) ([]models.ServiceCount, error)
	MissedCalls(ctx context.Context, limit int) ([]models.Record, error)
	FailedPayments(ctx context.Context, limit int) ([]models.Record, error)
}

type dashboardRepo struct {
	db Database
}

func NewDashboardRepo(db Database) DashboardRepository {
	return &dashboardRepo{db: db}
}

// Summary aggregates the headline numbers for day. ActiveCalls is filled by the caller.
func (r *dashboardRepo) Summary(ctx context.Context, day time.Time) (*models.DashboardSummary, error) {
	stmt := `
		SELECT
			(SELECT COUNT(*) FROM appointments WHERE appointment_date = $1::date),
			(SELECT COUNT(*) FROM appointments WHERE appointment_date = $1::date AND status = 'confirmed'),
			(SELECT COUNT(*) FROM appointments WHERE status = 'completed'),
			(SELECT COUNT(*) FROM payments WHERE status = 'pending'),
			(SELECT COALESCE(SUM(amount), 0)::float8 FROM payments WHERE status = 'pending'),
			(SELECT COALESCE(SUM(amount), 0)::float8 FROM payments WHERE status = 'paid'),
			(SELECT COUNT(*) FROM calls),
			(SELECT COUNT(*) FROM calls WHERE status = 'completed')
	`
	s := &models.DashboardSummary{}
	err := r.db.QueryRow(ctx, stmt, day.Format("2006-01-02")).Scan(
		&s.TodayAppointments, &s.ConfirmedToday, &s.CompletedAppointments,
		&s.PendingPayments, &s.PendingPaymentsAmount, &s.TotalRevenue,
		&s.TotalCalls, &s.CompletedCalls,
	)
	if err != nil {
		return nil, common.ClassifyStoreError(err)
	}
	return s, nil
}

func (r *dashboardRepo) ServiceDistribution(ctx context.Context, limit int) ([]models.ServiceCount, error) {
	stmt := `
		SELECT service, COUNT(*) AS total
		FROM appointments
		GROUP BY service
		ORDER BY total DESC, service ASC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, stmt, limit)
	if err != nil {
		return nil, common.ClassifyStoreError(err)
	}
	defer rows.Close()

	var out []models.ServiceCount
	for rows.Next() {
		var sc models.ServiceCount
		if err := rows.Scan(&sc.Service, &sc.Count); err != nil {
			return nil, common.ClassifyStoreError(err)
		}
		out = append(out, sc)
	}
	return out, common.ClassifyStoreError(rows.Err())
}

// MissedCalls reads the stored status directly; the external call shape
// folds "missed" into "completed".
func (r *dashboardRepo) MissedCalls(ctx context.Context, limit int) ([]models.Record, error) {
	stmt := `SELECT * FROM calls WHERE status = 'missed' ORDER BY created_at DESC, seq ASC LIMIT $1`
	return queryRecords(ctx, r.db, stmt, limit)
}

func (r *dashboardRepo) FailedPayments(ctx context.Context, limit int) ([]models.Record, error) {
	stmt := `SELECT * FROM payments WHERE status = 'failed' ORDER BY created_at DESC, seq ASC LIMIT $1`
	return queryRecords(ctx, r.db, stmt, limit)
}
