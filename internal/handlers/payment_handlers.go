package handlers

import (
	"net/http"

	"opsdash/internal/common"
	"opsdash/internal/models"
	"opsdash/internal/services"

	"github.com/labstack/echo/v4"
)

// PaymentHandlers handles HTTP requests for payments
type PaymentHandlers struct {
	paymentService services.PaymentService
}

func NewPaymentHandlers(paymentService services.PaymentService) *PaymentHandlers {
	return &PaymentHandlers{paymentService: paymentService}
}

// ListPayments handles GET /payments
func (h *PaymentHandlers) ListPayments(c echo.Context) error {
	opts, err := listOptions(c)
	if err != nil {
		return common.SendError(c, "payment", err)
	}
	payments, total, err := h.paymentService.List(c.Request().Context(), opts)
	if err != nil {
		return common.SendError(c, "payment", err)
	}
	return sendList(c, payments, total, opts)
}

// GetPayment handles GET /payments/:id
func (h *PaymentHandlers) GetPayment(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return common.SendError(c, "payment", err)
	}
	payment, err := h.paymentService.GetByID(c.Request().Context(), id)
	if err != nil {
		return common.SendError(c, "payment", err)
	}
	return c.JSON(http.StatusOK, payment)
}

// GetPaymentByTransaction handles GET /payments/transaction/:transactionId
func (h *PaymentHandlers) GetPaymentByTransaction(c echo.Context) error {
	payment, err := h.paymentService.GetByTransactionID(c.Request().Context(), c.Param("transactionId"))
	if err != nil {
		return common.SendError(c, "payment", err)
	}
	return c.JSON(http.StatusOK, payment)
}

// CreatePayment handles POST /payments
func (h *PaymentHandlers) CreatePayment(c echo.Context) error {
	var req models.CreatePaymentInput
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	payment, err := h.paymentService.Create(c.Request().Context(), &req)
	if err != nil {
		return common.SendError(c, "payment", err)
	}
	return c.JSON(http.StatusCreated, payment)
}

// UpdatePayment handles PUT /payments/:id
func (h *PaymentHandlers) UpdatePayment(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return common.SendError(c, "payment", err)
	}
	var req models.UpdatePaymentInput
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	payment, err := h.paymentService.Update(c.Request().Context(), id, &req)
	if err != nil {
		return common.SendError(c, "payment", err)
	}
	return c.JSON(http.StatusOK, payment)
}

// DeletePayment handles DELETE /payments/:id
func (h *PaymentHandlers) DeletePayment(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return common.SendError(c, "payment", err)
	}
	payment, err := h.paymentService.Delete(c.Request().Context(), id)
	if err != nil {
		return common.SendError(c, "payment", err)
	}
	return c.JSON(http.StatusOK, payment)
}
