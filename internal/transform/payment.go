package transform

import (
	"strconv"

	"opsdash/internal/models"
)

var PaymentAliases = Aliases{
	"id":            {"id"},
	"appointmentId": {"appointment_id", "appointmentId", "appointmentid"},
	"userId":        {"user_id", "userId", "userid"},
	"customerName":  {"customer_name", "customerName", "customername", "user_name"},
	"service":       {"service", "appointment_service"},
	"amount":        {"amount"},
	"status":        {"status"},
	"date":          {"payment_date", "paymentDate", "paymentdate", "date", "created_at", "createdAt"},
	"timestamp":     {"payment_timestamp", "paymentTimestamp", "paymenttimestamp", "timestamp", "created_at", "createdAt"},
	"paymentMethod": {"payment_method", "paymentMethod", "paymentmethod"},
	"transactionId": {"transaction_id", "transactionId", "transactionid"},
	"callReference": {"call_reference", "callReference", "callreference"},
	"invoiceNumber": {"invoice_number", "invoiceNumber", "invoicenumber"},
	"refundStatus":  {"refund_status", "refundStatus", "refundstatus"},
	"failureReason": {"failure_reason", "failureReason", "failurereason"},
}

// Payment maps a stored payment row to its external shape. Transaction id,
// call reference and invoice number are derived from the payment id when the
// row does not carry them.
func Payment(rec models.Record) models.PaymentView {
	a := PaymentAliases
	id := a.textOr(rec, "id", "")

	v := models.PaymentView{
		ID:            id,
		AppointmentID: a.optionalText(rec, "appointmentId"),
		UserID:        a.optionalText(rec, "userId"),
		CustomerName:  a.textOr(rec, "customerName", "Unknown"),
		Service:       a.textOr(rec, "service", ""),
		Status:        normalizeEnum(a.textOr(rec, "status", ""), models.PaymentPending, models.PaymentStatuses...),
		PaymentMethod: a.textOr(rec, "paymentMethod", ""),
		TransactionID: a.textOr(rec, "transactionId", "txn_"+id),
		CallReference: a.textOr(rec, "callReference", "CALL"+idDigits(id)),
		RefundStatus:  a.optionalText(rec, "refundStatus"),
		FailureReason: a.optionalText(rec, "failureReason"),
	}
	if amount, ok := a.number(rec, "amount"); ok {
		v.Amount = roundCents(amount)
	}
	if d, ok := a.value(rec, "date"); ok {
		v.Date = NormalizeDate(d)
	}
	if ts, ok := a.timestamp(rec, "timestamp"); ok {
		v.Timestamp = FormatTimestamp(ts)
	}
	v.InvoiceNumber = a.textOr(rec, "invoiceNumber", invoiceNumber(id, v.Date))
	return v
}

func Payments(recs []models.Record) []models.PaymentView {
	out := make([]models.PaymentView, len(recs))
	for i, rec := range recs {
		out[i] = Payment(rec)
	}
	return out
}

// invoiceNumber is INV-<year>-<id digits>, using the year of the payment date.
func invoiceNumber(id, date string) string {
	if len(date) >= 4 {
		if _, err := strconv.Atoi(date[:4]); err == nil {
			return "INV-" + date[:4] + "-" + idDigits(id)
		}
	}
	return "INV-" + idDigits(id)
}
