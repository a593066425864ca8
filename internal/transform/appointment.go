package transform

import (
	"opsdash/internal/models"
)

var AppointmentAliases = Aliases{
	"id":            {"id"},
	"userId":        {"user_id", "userId", "userid"},
	"patientName":   {"patient_name", "patientName", "patientname", "user_name"},
	"date":          {"appointment_date", "appointmentDate", "appointmentdate", "date"},
	"time":          {"appointment_time", "appointmentTime", "appointmenttime", "time"},
	"service":       {"service", "service_name", "serviceName", "servicename"},
	"status":        {"status"},
	"phone":         {"phone", "user_phone"},
	"email":         {"email", "user_email"},
	"assignedAgent": {"assigned_agent", "assignedAgent", "assignedagent"},
	"paymentStatus": {"payment_status", "paymentStatus", "paymentstatus"},
}

// Appointment maps a stored appointment row to its external shape.
func Appointment(rec models.Record) models.AppointmentView {
	a := AppointmentAliases
	v := models.AppointmentView{
		ID:            a.textOr(rec, "id", ""),
		UserID:        a.optionalText(rec, "userId"),
		PatientName:   a.textOr(rec, "patientName", "Unknown"),
		Service:       a.textOr(rec, "service", ""),
		Status:        normalizeEnum(a.textOr(rec, "status", ""), models.AppointmentPending, models.AppointmentStatuses...),
		Phone:         a.textOr(rec, "phone", ""),
		Email:         a.textOr(rec, "email", ""),
		AssignedAgent: a.textOr(rec, "assignedAgent", ""),
		PaymentStatus: a.textOr(rec, "paymentStatus", ""),
	}
	if d, ok := a.value(rec, "date"); ok {
		v.Date = NormalizeDate(d)
	}
	if t, ok := a.text(rec, "time"); ok {
		v.Time = NormalizeClock(t)
	}
	return v
}

func Appointments(recs []models.Record) []models.AppointmentView {
	out := make([]models.AppointmentView, len(recs))
	for i, rec := range recs {
		out[i] = Appointment(rec)
	}
	return out
}
