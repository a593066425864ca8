package handlers

import (
	"net/http"
	"strings"

	"opsdash/internal/common"
	"opsdash/internal/models"
	"opsdash/internal/services"

	"github.com/labstack/echo/v4"
)

// UserHandlers handles HTTP requests for users
type UserHandlers struct {
	userService services.UserService
}

func NewUserHandlers(userService services.UserService) *UserHandlers {
	return &UserHandlers{userService: userService}
}

// ListUsers handles GET /users
func (h *UserHandlers) ListUsers(c echo.Context) error {
	opts, err := listOptions(c)
	if err != nil {
		return common.SendError(c, "user", err)
	}
	role := strings.ToLower(strings.TrimSpace(c.QueryParam("role")))

	users, total, err := h.userService.List(c.Request().Context(), opts, role)
	if err != nil {
		return common.SendError(c, "user", err)
	}
	return sendList(c, users, total, opts)
}

// GetUser handles GET /users/:id
func (h *UserHandlers) GetUser(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return common.SendError(c, "user", err)
	}
	user, err := h.userService.GetByID(c.Request().Context(), id)
	if err != nil {
		return common.SendError(c, "user", err)
	}
	return c.JSON(http.StatusOK, user)
}

// GetUserStats handles GET /users/:id/stats
func (h *UserHandlers) GetUserStats(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return common.SendError(c, "user", err)
	}
	stats, err := h.userService.Stats(c.Request().Context(), id)
	if err != nil {
		return common.SendError(c, "user", err)
	}
	return c.JSON(http.StatusOK, stats)
}

// CreateUser handles POST /users
func (h *UserHandlers) CreateUser(c echo.Context) error {
	var req models.CreateUserInput
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	user, err := h.userService.Create(c.Request().Context(), &req)
	if err != nil {
		return common.SendError(c, "user", err)
	}
	return c.JSON(http.StatusCreated, user)
}

// UpdateUser handles PUT /users/:id
func (h *UserHandlers) UpdateUser(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return common.SendError(c, "user", err)
	}
	var req models.UpdateUserInput
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	user, err := h.userService.Update(c.Request().Context(), id, &req)
	if err != nil {
		return common.SendError(c, "user", err)
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteUser handles DELETE /users/:id
func (h *UserHandlers) DeleteUser(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return common.SendError(c, "user", err)
	}
	user, err := h.userService.Delete(c.Request().Context(), id)
	if err != nil {
		return common.SendError(c, "user", err)
	}
	return c.JSON(http.StatusOK, user)
}
