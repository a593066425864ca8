package handlers

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"opsdash/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetSummary(t *testing.T) {
	service := new(MockDashboardService)
	service.On("Summary", mock.Anything).Return(&models.DashboardSummary{
		TodayAppointments: 3,
		TotalRevenue:      120.5,
		GeneratedAt:       time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}, nil)

	c, rec := newContext(http.MethodGet, "/v1/dashboard/summary", "")
	require.NoError(t, NewDashboardHandlers(service).GetSummary(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"todayAppointments":3`)
	assert.Contains(t, rec.Body.String(), `"totalRevenue":120.5`)
}

func TestGetServices_PassesLimit(t *testing.T) {
	service := new(MockDashboardService)
	service.On("Services", mock.Anything, 5).Return([]models.ServiceCount{{Service: "Checkup", Count: 7}}, nil)

	c, rec := newContext(http.MethodGet, "/v1/dashboard/services?limit=5", "")
	require.NoError(t, NewDashboardHandlers(service).GetServices(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[{"service":"Checkup","count":7}]}`, rec.Body.String())
	service.AssertExpectations(t)
}

func TestGetAlerts_StoreFailure(t *testing.T) {
	service := new(MockDashboardService)
	service.On("Alerts", mock.Anything).Return(nil, errors.New("db down"))

	c, rec := newContext(http.MethodGet, "/v1/dashboard/alerts", "")
	require.NoError(t, NewDashboardHandlers(service).GetAlerts(c))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
