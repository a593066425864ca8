package repositories

import (
	"context"
	"fmt"

	"opsdash/internal/common"
	"opsdash/internal/models"
	"opsdash/internal/query"

	"github.com/jackc/pgx/v5"
)

type UserRepository interface {
	List(ctx context.Context, opts query.ListOptions, role string) ([]models.Record, int, error)
	GetByID(ctx context.Context, id string) (models.Record, error)
	GetByEmail(ctx context.Context, email string) (models.Record, error)
	Create(ctx context.Context, in *models.CreateUserInput) (models.Record, error)
	Update(ctx context.Context, id string, in *models.UpdateUserInput) (models.Record, error)
	Delete(ctx context.Context, id string) (models.Record, error)
}

type userRepo struct {
	db Database
}

func NewUserRepo(db Database) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) List(ctx context.Context, opts query.ListOptions, role string) ([]models.Record, int, error) {
	b := query.Users.Filter(opts).Equals("role", role)
	return listRecords(ctx, r.db, query.Users, b, opts)
}

func (r *userRepo) GetByID(ctx context.Context, id string) (models.Record, error) {
	return queryRecord(ctx, r.db, `SELECT * FROM users WHERE id = $1`, id)
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (models.Record, error) {
	return queryRecord(ctx, r.db, `SELECT * FROM users WHERE email = $1`, email)
}

func (r *userRepo) Create(ctx context.Context, in *models.CreateUserInput) (models.Record, error) {
	seq, id, err := nextID(ctx, r.db, "users_seq", "USR", in.ID)
	if err != nil {
		return nil, err
	}

	stmt := `
		INSERT INTO users (id, seq, full_name, email, phone, role, status, avatar, last_activity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW(), NOW())
		RETURNING *
	`
	return queryRecord(ctx, r.db, stmt, id, seq, in.FullName, in.Email, in.Phone, in.Role, in.Status, in.Avatar)
}

func (r *userRepo) Update(ctx context.Context, id string, in *models.UpdateUserInput) (models.Record, error) {
	u := query.NewUpdate("users")
	query.SetOptional(u, "full_name", in.FullName)
	query.SetOptional(u, "email", in.Email)
	query.SetOptional(u, "phone", in.Phone)
	query.SetOptional(u, "role", in.Role)
	query.SetOptional(u, "status", in.Status)
	query.SetOptional(u, "avatar", in.Avatar)
	if u.Empty() {
		return r.GetByID(ctx, id)
	}
	u.SetRaw("last_activity", "NOW()")

	sql, args := u.ByID(id)
	return queryRecord(ctx, r.db, sql, args...)
}

// Delete refuses to remove a user that still owns appointments, payments or calls.
func (r *userRepo) Delete(ctx context.Context, id string) (models.Record, error) {
	rows, err := r.db.Query(ctx, `DELETE FROM users WHERE id = $1 RETURNING *`, id)
	if err == nil {
		var m map[string]any
		if m, err = pgx.CollectOneRow(rows, pgx.RowToMap); err == nil {
			return models.Record(m), nil
		}
	}
	if common.IsForeignKeyViolation(err) {
		return nil, fmt.Errorf("%w: user %s still has related records", common.ErrConflict, id)
	}
	return nil, common.ClassifyStoreError(err)
}
