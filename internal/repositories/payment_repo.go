package repositories

import (
	"context"

	"opsdash/internal/models"
	"opsdash/internal/query"
)

type PaymentRepository interface {
	List(ctx context.Context, opts query.ListOptions) ([]models.Record, int, error)
	GetByID(ctx context.Context, id string) (models.Record, error)
	GetByTransactionID(ctx context.Context, transactionID string) (models.Record, error)
	Create(ctx context.Context, in *models.CreatePaymentInput) (models.Record, error)
	Update(ctx context.Context, id string, in *models.UpdatePaymentInput) (models.Record, error)
	Delete(ctx context.Context, id string) (models.Record, error)
}

type paymentRepo struct {
	db Database
}

func NewPaymentRepo(db Database) PaymentRepository {
	return &paymentRepo{db: db}
}

func (r *paymentRepo) List(ctx context.Context, opts query.ListOptions) ([]models.Record, int, error) {
	return listRecords(ctx, r.db, query.Payments, query.Payments.Filter(opts), opts)
}

func (r *paymentRepo) GetByID(ctx context.Context, id string) (models.Record, error) {
	return queryRecord(ctx, r.db, `SELECT * FROM payments WHERE id = $1`, id)
}

func (r *paymentRepo) GetByTransactionID(ctx context.Context, transactionID string) (models.Record, error) {
	return queryRecord(ctx, r.db, `SELECT * FROM payments WHERE transaction_id = $1`, transactionID)
}

// Create expects the transaction id to be set by the caller. Date and
// timestamp fall back to the current day and time.
func (r *paymentRepo) Create(ctx context.Context, in *models.CreatePaymentInput) (models.Record, error) {
	seq, id, err := nextID(ctx, r.db, "payments_seq", "PAY", in.ID)
	if err != nil {
		return nil, err
	}

	stmt := `
		INSERT INTO payments (id, seq, transaction_id, user_id, appointment_id, customer_name, payment_method,
			amount, status, payment_date, payment_timestamp, refund_status, failure_reason, service,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, COALESCE($10::date, CURRENT_DATE),
			COALESCE($11::timestamptz, NOW()), $12, $13, $14, NOW(), NOW())
		RETURNING *
	`
	return queryRecord(ctx, r.db, stmt, id, seq, in.TransactionID, in.UserID, in.AppointmentID, in.CustomerName,
		in.PaymentMethod, in.Amount, in.Status, in.Date, in.Timestamp, in.RefundStatus, in.FailureReason, in.Service)
}

func (r *paymentRepo) Update(ctx context.Context, id string, in *models.UpdatePaymentInput) (models.Record, error) {
	u := query.NewUpdate("payments")
	query.SetOptional(u, "status", in.Status)
	query.SetOptional(u, "refund_status", in.RefundStatus)
	query.SetOptional(u, "failure_reason", in.FailureReason)
	if in.Status != nil && *in.Status != models.PaymentFailed && in.FailureReason == nil {
		// a reason only describes a failed payment
		u.SetRaw("failure_reason", "NULL")
	}
	if u.Empty() {
		return r.GetByID(ctx, id)
	}

	sql, args := u.ByID(id)
	return queryRecord(ctx, r.db, sql, args...)
}

func (r *paymentRepo) Delete(ctx context.Context, id string) (models.Record, error) {
	return queryRecord(ctx, r.db, `DELETE FROM payments WHERE id = $1 RETURNING *`, id)
}
