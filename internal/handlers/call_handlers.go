package handlers

import (
	"net/http"

	"opsdash/internal/common"
	"opsdash/internal/models"
	"opsdash/internal/services"

	"github.com/labstack/echo/v4"
)

// CallHandlers handles HTTP requests for call logs
type CallHandlers struct {
	callService services.CallService
}

func NewCallHandlers(callService services.CallService) *CallHandlers {
	return &CallHandlers{callService: callService}
}

// ListCalls handles GET /calls
func (h *CallHandlers) ListCalls(c echo.Context) error {
	opts, err := listOptions(c)
	if err != nil {
		return common.SendError(c, "call", err)
	}
	calls, total, err := h.callService.List(c.Request().Context(), opts)
	if err != nil {
		return common.SendError(c, "call", err)
	}
	return sendList(c, calls, total, opts)
}

// LiveCalls handles GET /calls/live
func (h *CallHandlers) LiveCalls(c echo.Context) error {
	calls, err := h.callService.LiveCalls(c.Request().Context())
	if err != nil {
		return common.SendError(c, "call", err)
	}
	if calls == nil {
		calls = []models.LiveCallView{}
	}
	return c.JSON(http.StatusOK, map[string]any{"data": calls})
}

// GetCall handles GET /calls/:id
func (h *CallHandlers) GetCall(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return common.SendError(c, "call", err)
	}
	call, err := h.callService.GetByID(c.Request().Context(), id)
	if err != nil {
		return common.SendError(c, "call", err)
	}
	return c.JSON(http.StatusOK, call)
}

// CreateCall handles POST /calls
func (h *CallHandlers) CreateCall(c echo.Context) error {
	var req models.CreateCallInput
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	call, err := h.callService.Create(c.Request().Context(), &req)
	if err != nil {
		return common.SendError(c, "call", err)
	}
	return c.JSON(http.StatusCreated, call)
}

// UpdateCall handles PUT /calls/:id
func (h *CallHandlers) UpdateCall(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return common.SendError(c, "call", err)
	}
	var req models.UpdateCallInput
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	call, err := h.callService.Update(c.Request().Context(), id, &req)
	if err != nil {
		return common.SendError(c, "call", err)
	}
	return c.JSON(http.StatusOK, call)
}

// DeleteCall handles DELETE /calls/:id
func (h *CallHandlers) DeleteCall(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return common.SendError(c, "call", err)
	}
	call, err := h.callService.Delete(c.Request().Context(), id)
	if err != nil {
		return common.SendError(c, "call", err)
	}
	return c.JSON(http.StatusOK, call)
}
