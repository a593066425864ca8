package transform

import (
	"math/big"
	"strings"
	"testing"
	"time"

	"opsdash/internal/models"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointment_ResolvesAliases(t *testing.T) {
	tests := []struct {
		name string
		rec  models.Record
	}{
		{"snake case", models.Record{
			"id": "APT0001", "patient_name": "Jane Doe", "appointment_date": time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			"appointment_time": "09:00 AM", "service": "Checkup", "status": "confirmed", "user_id": "USR0001",
		}},
		{"camel case", models.Record{
			"id": "APT0001", "patientName": "Jane Doe", "appointmentDate": "2024-06-01T00:00:00Z",
			"appointmentTime": "09:00 AM", "serviceName": "Checkup", "status": "CONFIRMED", "userId": "USR0001",
		}},
		{"lowercase", models.Record{
			"id": "APT0001", "patientname": "Jane Doe", "date": "2024-06-01",
			"time": "09:00", "service": "Checkup", "status": "confirmed", "userid": "USR0001",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Appointment(tt.rec)
			assert.Equal(t, "APT0001", v.ID)
			assert.Equal(t, "Jane Doe", v.PatientName)
			assert.Equal(t, "2024-06-01", v.Date)
			assert.Equal(t, "9:00 AM", strings.TrimPrefix(v.Time, "0"))
			assert.Equal(t, "Checkup", v.Service)
			assert.Equal(t, models.AppointmentConfirmed, v.Status)
			require.NotNil(t, v.UserID)
			assert.Equal(t, "USR0001", *v.UserID)
		})
	}
}

func TestAppointment_Defaults(t *testing.T) {
	v := Appointment(models.Record{"id": "APT0002", "patient_name": nil, "status": "rescheduled"})
	assert.Equal(t, "Unknown", v.PatientName)
	assert.Equal(t, models.AppointmentPending, v.Status)
	assert.Equal(t, "", v.Date)
	assert.Nil(t, v.UserID)
}

func TestAppointment_FirstNonEmptyAliasWins(t *testing.T) {
	v := Appointment(models.Record{"patient_name": "", "patientName": "From Camel", "user_name": "From Join"})
	assert.Equal(t, "From Camel", v.PatientName)
}

func TestPayment_TransactionIDRoundTrip(t *testing.T) {
	v := Payment(models.Record{"id": "PAY0003", "transaction_id": "TXN-ABC"})
	assert.Equal(t, "TXN-ABC", v.TransactionID)
}

func TestPayment_SyntheticFields(t *testing.T) {
	v := Payment(models.Record{
		"id":           "PAY0007",
		"customername": "Alice Smith",
		"payment_date": time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC),
		"amount":       pgtype.Numeric{Int: big.NewInt(12345), Exp: -2, Valid: true},
		"status":       "refunded",
	})

	assert.NotEmpty(t, v.TransactionID)
	assert.Equal(t, "txn_PAY0007", v.TransactionID)
	assert.Equal(t, "CALL0007", v.CallReference)
	assert.Equal(t, "INV-2024-0007", v.InvoiceNumber)
	assert.Equal(t, "Alice Smith", v.CustomerName)
	assert.Equal(t, 123.45, v.Amount)
	assert.Equal(t, models.PaymentPending, v.Status)
	assert.Equal(t, "2024-03-09", v.Date)
}

func TestPayment_DateFromTimestamp(t *testing.T) {
	created := time.Date(2023, 12, 31, 18, 30, 0, 0, time.UTC)
	v := Payment(models.Record{"id": "PAY0010", "created_at": created, "amount": "10.006"})
	assert.Equal(t, "2023-12-31", v.Date)
	assert.Equal(t, "2023-12-31T18:30:00Z", v.Timestamp)
	assert.Equal(t, "INV-2023-0010", v.InvoiceNumber)
	assert.Equal(t, 10.01, v.Amount)
}

func TestPayment_MissingEverything(t *testing.T) {
	v := Payment(models.Record{})
	assert.Equal(t, "Unknown", v.CustomerName)
	assert.Equal(t, models.PaymentPending, v.Status)
	assert.NotEmpty(t, v.TransactionID)
	assert.NotEmpty(t, v.InvoiceNumber)
	assert.Nil(t, v.FailureReason)
}

func TestCall_StatusNormalization(t *testing.T) {
	tests := []struct {
		raw  any
		want string
	}{
		{"completed", models.CallCompleted},
		{"Bounced", models.CallBounced},
		{"failed", models.CallFailed},
		{"missed", models.CallCompleted},
		{"voicemail", models.CallCompleted},
		{nil, models.CallCompleted},
		{"active", models.CallActive},
	}
	for _, tt := range tests {
		v := Call(models.Record{"id": "CALL0001", "status": tt.raw, "duration": "01:00"})
		assert.Equal(t, tt.want, v.Status, "%v", tt.raw)
	}
}

func TestCall_ActiveHasNoDuration(t *testing.T) {
	v := Call(models.Record{"id": "CALL0002", "status": "active", "duration": nil})
	assert.Nil(t, v.Duration)

	v = Call(models.Record{"id": "CALL0002", "status": "active", "call_duration_seconds": int32(30)})
	assert.Nil(t, v.Duration)
}

func TestCall_DurationSources(t *testing.T) {
	start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		rec  models.Record
		want string
	}{
		{"stored text", models.Record{"duration": "03:15", "call_duration_seconds": int32(10)}, "03:15"},
		{"seconds", models.Record{"call_duration_seconds": int32(125)}, "02:05"},
		{"start and end", models.Record{"call_start_time": start, "call_end_time": start.Add(90 * time.Second)}, "01:30"},
		{"end before start", models.Record{"call_start_time": start, "call_end_time": start.Add(-time.Minute)}, DefaultDuration},
		{"nothing", models.Record{}, DefaultDuration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.rec["status"] = "completed"
			v := Call(tt.rec)
			require.NotNil(t, v.Duration)
			assert.Equal(t, tt.want, *v.Duration)
		})
	}
}

func TestCall_Defaults(t *testing.T) {
	v := Call(models.Record{"id": "CALL0003", "status": "completed", "call_type": "sideways"})
	assert.Equal(t, "Unknown", v.CallerName)
	assert.Equal(t, "Unknown", v.Purpose)
	assert.Equal(t, "", v.PhoneNumber)
	assert.Equal(t, models.CallIncoming, v.CallType)
}

func TestLiveCall(t *testing.T) {
	v := LiveCall(models.Record{"id": "CALL0004", "callerName": "Bob", "status": "completed", "call_duration_seconds": int64(61)})
	assert.Equal(t, models.LiveCallActive, v.Status)
	assert.Equal(t, "01:01", v.Duration)
	assert.Equal(t, "Bob", v.CallerName)

	v = LiveCall(models.Record{"id": "CALL0005", "status": "bounced"})
	assert.Equal(t, models.LiveCallOnHold, v.Status)
	assert.Equal(t, DefaultDuration, v.Duration)
	assert.Equal(t, "Unknown", v.Purpose)
}

func TestUser_DefaultsAndAvatar(t *testing.T) {
	v := User(models.Record{"id": "USR0001"}, nil, "http://localhost:8080")
	assert.Equal(t, "Unknown User", v.FullName)
	assert.Equal(t, models.RoleCustomer, v.Role)
	assert.Equal(t, models.UserStatusActive, v.Status)
	assert.True(t, strings.HasPrefix(v.Avatar, "https://ui-avatars.com/api/?name=Unknown+User"))

	v = User(models.Record{"fullname": "Jane Doe", "avatar": "/uploads/jane.png"}, nil, "http://localhost:8080/")
	assert.Equal(t, "Jane Doe", v.FullName)
	assert.Equal(t, "http://localhost:8080/uploads/jane.png", v.Avatar)

	v = User(models.Record{"full_name": "Jane Doe", "avatar": "https://cdn.example.com/j.png"}, nil, "")
	assert.Equal(t, "https://cdn.example.com/j.png", v.Avatar)
}

func TestUser_CountersPreferRowThenStats(t *testing.T) {
	stats := &models.UserStats{
		UserCounters:   models.UserCounters{TotalAppointments: 9, TotalPayments: 2},
		FailedCalls:    1,
		FailedPayments: 3,
	}
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	v := User(models.Record{
		"full_name":          "Jane Doe",
		"total_appointments": int32(1),
		"total_payments":     int32(0),
		"role":               "ADMIN",
		"status":             "suspended",
		"created_at":         created,
	}, stats, "")

	assert.Equal(t, 1, v.TotalAppointments)
	assert.Equal(t, 2, v.TotalPayments)
	assert.Equal(t, 0, v.TotalCalls)
	assert.Equal(t, 1, v.FailedCalls)
	assert.Equal(t, 3, v.FailedPayments)
	assert.Equal(t, models.RoleAdmin, v.Role)
	assert.Equal(t, models.UserStatusActive, v.Status)
	require.NotNil(t, v.CreatedAt)
	assert.True(t, created.Equal(*v.CreatedAt))
	require.NotNil(t, v.LastActivity)
}
