package handlers

import (
	"net/http"

	"opsdash/internal/common"
	"opsdash/internal/models"
	"opsdash/internal/services"

	"github.com/labstack/echo/v4"
)

// AppointmentHandlers handles HTTP requests for appointments
type AppointmentHandlers struct {
	appointmentService services.AppointmentService
}

func NewAppointmentHandlers(appointmentService services.AppointmentService) *AppointmentHandlers {
	return &AppointmentHandlers{appointmentService: appointmentService}
}

// ListAppointments handles GET /appointments
func (h *AppointmentHandlers) ListAppointments(c echo.Context) error {
	opts, err := listOptions(c)
	if err != nil {
		return common.SendError(c, "appointment", err)
	}
	appointments, total, err := h.appointmentService.List(c.Request().Context(), opts)
	if err != nil {
		return common.SendError(c, "appointment", err)
	}
	return sendList(c, appointments, total, opts)
}

// GetAppointment handles GET /appointments/:id
func (h *AppointmentHandlers) GetAppointment(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return common.SendError(c, "appointment", err)
	}
	appointment, err := h.appointmentService.GetByID(c.Request().Context(), id)
	if err != nil {
		return common.SendError(c, "appointment", err)
	}
	return c.JSON(http.StatusOK, appointment)
}

// CreateAppointment handles POST /appointments
func (h *AppointmentHandlers) CreateAppointment(c echo.Context) error {
	var req models.CreateAppointmentInput
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	appointment, err := h.appointmentService.Create(c.Request().Context(), &req)
	if err != nil {
		return common.SendError(c, "appointment", err)
	}
	return c.JSON(http.StatusCreated, appointment)
}

// UpdateAppointment handles PUT /appointments/:id
func (h *AppointmentHandlers) UpdateAppointment(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return common.SendError(c, "appointment", err)
	}
	var req models.UpdateAppointmentInput
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	appointment, err := h.appointmentService.Update(c.Request().Context(), id, &req)
	if err != nil {
		return common.SendError(c, "appointment", err)
	}
	return c.JSON(http.StatusOK, appointment)
}

// DeleteAppointment handles DELETE /appointments/:id
func (h *AppointmentHandlers) DeleteAppointment(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return common.SendError(c, "appointment", err)
	}
	appointment, err := h.appointmentService.Delete(c.Request().Context(), id)
	if err != nil {
		return common.SendError(c, "appointment", err)
	}
	return c.JSON(http.StatusOK, appointment)
}
