// Package stats keeps the denormalized per-user counters in line with the
// appointment, payment and call tables.
//
// Counters are recomputed by explicit calls after relationship-changing
// writes, never by database triggers. Between the write and the
// recomputation the counters may lag. Two concurrent recomputations for the
// same user race on the final UPDATE and the last one wins.
package stats

import (
	"context"
	"errors"
	"log"

	"opsdash/internal/common"
	"opsdash/internal/metrics"
	"opsdash/internal/models"
	"opsdash/internal/repositories"
)

type Aggregator interface {
	Recompute(ctx context.Context, userID string) (models.UserCounters, error)
	RecomputeAll(ctx context.Context) (int, error)
	Breakdown(ctx context.Context, userID string) (models.UserStats, error)
	HasDependents(ctx context.Context, userID string) (bool, error)
}

type aggregator struct {
	db repositories.Database
}

func NewAggregator(db repositories.Database) Aggregator {
	return &aggregator{db: db}
}

// Recompute counts the user's related rows and stores all three counters in a
// single UPDATE. It fails with ErrNotFound when the user row is gone.
func (a *aggregator) Recompute(ctx context.Context, userID string) (models.UserCounters, error) {
	var c models.UserCounters

	counts := []struct {
		stmt string
		dst  *int
	}{
		{`SELECT COUNT(*) FROM appointments WHERE user_id = $1`, &c.TotalAppointments},
		{`SELECT COUNT(*) FROM payments WHERE user_id = $1`, &c.TotalPayments},
		{`SELECT COUNT(*) FROM calls WHERE user_id = $1`, &c.TotalCalls},
	}
	for _, q := range counts {
		if err := a.db.QueryRow(ctx, q.stmt, userID).Scan(q.dst); err != nil {
			metrics.StatsRecomputations.WithLabelValues("error").Inc()
			return models.UserCounters{}, common.ClassifyStoreError(err)
		}
	}

	tag, err := a.db.Exec(ctx, `
		UPDATE users
		SET total_appointments = $1, total_payments = $2, total_calls = $3, updated_at = NOW()
		WHERE id = $4
	`, c.TotalAppointments, c.TotalPayments, c.TotalCalls, userID)
	if err != nil {
		metrics.StatsRecomputations.WithLabelValues("error").Inc()
		return models.UserCounters{}, common.ClassifyStoreError(err)
	}
	if tag.RowsAffected() == 0 {
		metrics.StatsRecomputations.WithLabelValues("not_found").Inc()
		return models.UserCounters{}, common.NotFound("user", userID)
	}

	metrics.StatsRecomputations.WithLabelValues("ok").Inc()
	return c, nil
}

// RecomputeAll refreshes every user's counters and returns how many succeeded.
// Users deleted mid-run are skipped.
func (a *aggregator) RecomputeAll(ctx context.Context) (int, error) {
	rows, err := a.db.Query(ctx, `SELECT id FROM users ORDER BY seq`)
	if err != nil {
		return 0, common.ClassifyStoreError(err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, common.ClassifyStoreError(err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, common.ClassifyStoreError(err)
	}

	done := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return done, err
		}
		if _, err := a.Recompute(ctx, id); err != nil {
			if errors.Is(err, common.ErrNotFound) {
				continue
			}
			log.Printf("STATS_AGGREGATOR: recompute failed for user %s: %v", id, err)
			continue
		}
		done++
	}
	return done, nil
}

// Breakdown reads the stored counters together with failure tallies.
func (a *aggregator) Breakdown(ctx context.Context, userID string) (models.UserStats, error) {
	var s models.UserStats
	err := a.db.QueryRow(ctx, `
		SELECT u.total_appointments, u.total_payments, u.total_calls,
			(SELECT COUNT(*) FROM calls c WHERE c.user_id = u.id AND c.status IN ('failed', 'bounced')),
			(SELECT COUNT(*) FROM payments p WHERE p.user_id = u.id AND p.status = 'failed')
		FROM users u
		WHERE u.id = $1
	`, userID).Scan(&s.TotalAppointments, &s.TotalPayments, &s.TotalCalls, &s.FailedCalls, &s.FailedPayments)
	if err != nil {
		return models.UserStats{}, common.ClassifyStoreError(err)
	}
	return s, nil
}

func (a *aggregator) HasDependents(ctx context.Context, userID string) (bool, error) {
	var exists bool
	err := a.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM appointments WHERE user_id = $1)
			OR EXISTS (SELECT 1 FROM payments WHERE user_id = $1)
			OR EXISTS (SELECT 1 FROM calls WHERE user_id = $1)
	`, userID).Scan(&exists)
	if err != nil {
		return false, common.ClassifyStoreError(err)
	}
	return exists, nil
}
