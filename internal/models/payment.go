package models

const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentFailed  = "failed"
)

var PaymentStatuses = []string{PaymentPending, PaymentPaid, PaymentFailed}

type CreatePaymentInput struct {
	ID            *string  `json:"id"`
	TransactionID *string  `json:"transactionId"`
	UserID        *string  `json:"userId"`
	AppointmentID *string  `json:"appointmentId"`
	CustomerName  string   `json:"customerName"`
	PaymentMethod string   `json:"paymentMethod"`
	Amount        *float64 `json:"amount"`
	Status        string   `json:"status"`
	Date          *string  `json:"date"`
	Timestamp     *string  `json:"timestamp"`
	RefundStatus  *string  `json:"refundStatus"`
	FailureReason *string  `json:"failureReason"`
	Service       *string  `json:"service"`
}

// UpdatePaymentInput only exposes the fields a payment may change after creation.
type UpdatePaymentInput struct {
	Status        *string `json:"status"`
	RefundStatus  *string `json:"refundStatus"`
	FailureReason *string `json:"failureReason"`
}

func (u UpdatePaymentInput) Empty() bool {
	return u.Status == nil && u.RefundStatus == nil && u.FailureReason == nil
}

type PaymentView struct {
	ID            string  `json:"id"`
	AppointmentID *string `json:"appointmentId"`
	UserID        *string `json:"userId"`
	CustomerName  string  `json:"customerName"`
	Service       string  `json:"service"`
	Amount        float64 `json:"amount"`
	Status        string  `json:"status"`
	Date          string  `json:"date"`
	Timestamp     string  `json:"timestamp"`
	PaymentMethod string  `json:"paymentMethod"`
	TransactionID string  `json:"transactionId"`
	CallReference string  `json:"callReference"`
	InvoiceNumber string  `json:"invoiceNumber"`
	RefundStatus  *string `json:"refundStatus"`
	FailureReason *string `json:"failureReason"`
}
