package repositories

import (
	"context"

	"opsdash/internal/models"
	"opsdash/internal/query"
)

type AppointmentRepository interface {
	List(ctx context.Context, opts query.ListOptions) ([]models.Record, int, error)
	GetByID(ctx context.Context, id string) (models.Record, error)
	Create(ctx context.Context, in *models.CreateAppointmentInput) (models.Record, error)
	Update(ctx context.Context, id string, in *models.UpdateAppointmentInput) (models.Record, error)
	Delete(ctx context.Context, id string) (models.Record, error)
}

type appointmentRepo struct {
	db Database
}

func NewAppointmentRepo(db Database) AppointmentRepository {
	return &appointmentRepo{db: db}
}

func (r *appointmentRepo) List(ctx context.Context, opts query.ListOptions) ([]models.Record, int, error) {
	return listRecords(ctx, r.db, query.Appointments, query.Appointments.Filter(opts), opts)
}

func (r *appointmentRepo) GetByID(ctx context.Context, id string) (models.Record, error) {
	return queryRecord(ctx, r.db, `SELECT * FROM appointments WHERE id = $1`, id)
}

func (r *appointmentRepo) Create(ctx context.Context, in *models.CreateAppointmentInput) (models.Record, error) {
	seq, id, err := nextID(ctx, r.db, "appointments_seq", "APT", in.ID)
	if err != nil {
		return nil, err
	}

	stmt := `
		INSERT INTO appointments (id, seq, user_id, patient_name, phone, email, service, appointment_date,
			appointment_time, assigned_agent, status, payment_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING *
	`
	return queryRecord(ctx, r.db, stmt, id, seq, in.UserID, in.PatientName, in.Phone, in.Email, in.Service,
		in.Date, in.Time, in.AssignedAgent, in.Status, in.PaymentStatus)
}

func (r *appointmentRepo) Update(ctx context.Context, id string, in *models.UpdateAppointmentInput) (models.Record, error) {
	u := query.NewUpdate("appointments")
	if in.UserID != nil && *in.UserID == "" {
		u.Set("user_id", nil)
	} else {
		query.SetOptional(u, "user_id", in.UserID)
	}
	query.SetOptional(u, "patient_name", in.PatientName)
	query.SetOptional(u, "phone", in.Phone)
	query.SetOptional(u, "email", in.Email)
	query.SetOptional(u, "service", in.Service)
	query.SetOptional(u, "appointment_date", in.Date)
	query.SetOptional(u, "appointment_time", in.Time)
	query.SetOptional(u, "assigned_agent", in.AssignedAgent)
	query.SetOptional(u, "status", in.Status)
	query.SetOptional(u, "payment_status", in.PaymentStatus)
	if u.Empty() {
		return r.GetByID(ctx, id)
	}

	sql, args := u.ByID(id)
	return queryRecord(ctx, r.db, sql, args...)
}

func (r *appointmentRepo) Delete(ctx context.Context, id string) (models.Record, error) {
	return queryRecord(ctx, r.db, `DELETE FROM appointments WHERE id = $1 RETURNING *`, id)
}
