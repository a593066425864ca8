package models

const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

var AppointmentStatuses = []string{AppointmentPending, AppointmentConfirmed, AppointmentCompleted, AppointmentCancelled}

type CreateAppointmentInput struct {
	ID            *string `json:"id"`
	UserID        *string `json:"userId"`
	PatientName   string  `json:"patientName"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	Service       string  `json:"service"`
	Date          string  `json:"date"`
	Time          string  `json:"time"`
	AssignedAgent *string `json:"assignedAgent"`
	Status        string  `json:"status"`
	PaymentStatus *string `json:"paymentStatus"`
}

type UpdateAppointmentInput struct {
	UserID        *string `json:"userId"`
	PatientName   *string `json:"patientName"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	Service       *string `json:"service"`
	Date          *string `json:"date"`
	Time          *string `json:"time"`
	AssignedAgent *string `json:"assignedAgent"`
	Status        *string `json:"status"`
	PaymentStatus *string `json:"paymentStatus"`
}

func (u UpdateAppointmentInput) Empty() bool {
	return u.UserID == nil && u.PatientName == nil && u.Phone == nil && u.Email == nil &&
		u.Service == nil && u.Date == nil && u.Time == nil && u.AssignedAgent == nil &&
		u.Status == nil && u.PaymentStatus == nil
}

type AppointmentView struct {
	ID            string  `json:"id"`
	UserID        *string `json:"userId"`
	PatientName   string  `json:"patientName"`
	Date          string  `json:"date"`
	Time          string  `json:"time"`
	Service       string  `json:"service"`
	Status        string  `json:"status"`
	Phone         string  `json:"phone"`
	Email         string  `json:"email"`
	AssignedAgent string  `json:"assignedAgent"`
	PaymentStatus string  `json:"paymentStatus"`
}
