package repositories

import (
	"context"
	"time"

	"opsdash/internal/models"
	"opsdash/internal/query"
)

type CallRepository interface {
	List(ctx context.Context, opts query.ListOptions) ([]models.Record, int, error)
	GetByID(ctx context.Context, id string) (models.Record, error)
	Create(ctx context.Context, in *models.CreateCallInput) (models.Record, error)
	Update(ctx context.Context, id string, in *models.UpdateCallInput, endedAt *time.Time) (models.Record, error)
	Delete(ctx context.Context, id string) (models.Record, error)
	Recent(ctx context.Context, since time.Time, limit int) ([]models.Record, error)
}

type callRepo struct {
	db Database
}

func NewCallRepo(db Database) CallRepository {
	return &callRepo{db: db}
}

func (r *callRepo) List(ctx context.Context, opts query.ListOptions) ([]models.Record, int, error) {
	return listRecords(ctx, r.db, query.Calls, query.Calls.Filter(opts), opts)
}

func (r *callRepo) GetByID(ctx context.Context, id string) (models.Record, error) {
	return queryRecord(ctx, r.db, `SELECT * FROM calls WHERE id = $1`, id)
}

func (r *callRepo) Create(ctx context.Context, in *models.CreateCallInput) (models.Record, error) {
	seq, id, err := nextID(ctx, r.db, "calls_seq", "CALL", in.ID)
	if err != nil {
		return nil, err
	}

	stmt := `
		INSERT INTO calls (id, seq, user_id, caller_name, phone_number, call_type, status, duration,
			call_start_time, purpose, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, COALESCE($9::timestamptz, NOW()), $10, $11, NOW(), NOW())
		RETURNING *
	`
	return queryRecord(ctx, r.db, stmt, id, seq, in.UserID, in.CallerName, in.PhoneNumber, in.CallType,
		in.Status, in.Duration, in.Timestamp, in.Purpose, in.Notes)
}

// Update applies the whitelisted fields. endedAt is recorded when the call
// leaves the active state.
func (r *callRepo) Update(ctx context.Context, id string, in *models.UpdateCallInput, endedAt *time.Time) (models.Record, error) {
	u := query.NewUpdate("calls")
	query.SetOptional(u, "status", in.Status)
	query.SetOptional(u, "duration", in.Duration)
	query.SetOptional(u, "purpose", in.Purpose)
	query.SetOptional(u, "notes", in.Notes)
	query.SetOptional(u, "call_end_time", endedAt)
	if u.Empty() {
		return r.GetByID(ctx, id)
	}

	sql, args := u.ByID(id)
	return queryRecord(ctx, r.db, sql, args...)
}

func (r *callRepo) Delete(ctx context.Context, id string) (models.Record, error) {
	return queryRecord(ctx, r.db, `DELETE FROM calls WHERE id = $1 RETURNING *`, id)
}

// Recent returns in-progress and completed calls that started after since,
// newest first.
func (r *callRepo) Recent(ctx context.Context, since time.Time, limit int) ([]models.Record, error) {
	stmt := `
		SELECT * FROM calls
		WHERE status IN ('active', 'completed') AND call_start_time > $1
		ORDER BY call_start_time DESC, seq ASC
		LIMIT $2
	`
	return queryRecords(ctx, r.db, stmt, since, limit)
}
