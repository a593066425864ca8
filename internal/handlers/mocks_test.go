package handlers

import (
	"context"
	"net/http/httptest"
	"strings"

	"opsdash/internal/caching"
	"opsdash/internal/models"
	"opsdash/internal/query"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
)

// newContext builds an echo context for a handler call. params are name/value
// pairs for path parameters.
func newContext(method, target, body string, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	var names, values []string
	for i := 0; i+1 < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	return c, rec
}

func view[T any](args mock.Arguments) (*T, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) List(ctx context.Context, opts query.ListOptions, role string) ([]models.UserView, int, error) {
	args := m.Called(ctx, opts, role)
	users, _ := args.Get(0).([]models.UserView)
	return users, args.Int(1), args.Error(2)
}

func (m *MockUserService) GetByID(ctx context.Context, id string) (*models.UserView, error) {
	return view[models.UserView](m.Called(ctx, id))
}

func (m *MockUserService) Create(ctx context.Context, in *models.CreateUserInput) (*models.UserView, error) {
	return view[models.UserView](m.Called(ctx, in))
}

func (m *MockUserService) Update(ctx context.Context, id string, in *models.UpdateUserInput) (*models.UserView, error) {
	return view[models.UserView](m.Called(ctx, id, in))
}

func (m *MockUserService) Delete(ctx context.Context, id string) (*models.UserView, error) {
	return view[models.UserView](m.Called(ctx, id))
}

func (m *MockUserService) Stats(ctx context.Context, id string) (*models.UserStats, error) {
	return view[models.UserStats](m.Called(ctx, id))
}

type MockAppointmentService struct {
	mock.Mock
}

func (m *MockAppointmentService) List(ctx context.Context, opts query.ListOptions) ([]models.AppointmentView, int, error) {
	args := m.Called(ctx, opts)
	items, _ := args.Get(0).([]models.AppointmentView)
	return items, args.Int(1), args.Error(2)
}

func (m *MockAppointmentService) GetByID(ctx context.Context, id string) (*models.AppointmentView, error) {
	return view[models.AppointmentView](m.Called(ctx, id))
}

func (m *MockAppointmentService) Create(ctx context.Context, in *models.CreateAppointmentInput) (*models.AppointmentView, error) {
	return view[models.AppointmentView](m.Called(ctx, in))
}

func (m *MockAppointmentService) Update(ctx context.Context, id string, in *models.UpdateAppointmentInput) (*models.AppointmentView, error) {
	return view[models.AppointmentView](m.Called(ctx, id, in))
}

func (m *MockAppointmentService) Delete(ctx context.Context, id string) (*models.AppointmentView, error) {
	return view[models.AppointmentView](m.Called(ctx, id))
}

type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) List(ctx context.Context, opts query.ListOptions) ([]models.PaymentView, int, error) {
	args := m.Called(ctx, opts)
	items, _ := args.Get(0).([]models.PaymentView)
	return items, args.Int(1), args.Error(2)
}

func (m *MockPaymentService) GetByID(ctx context.Context, id string) (*models.PaymentView, error) {
	return view[models.PaymentView](m.Called(ctx, id))
}

func (m *MockPaymentService) GetByTransactionID(ctx context.Context, transactionID string) (*models.PaymentView, error) {
	return view[models.PaymentView](m.Called(ctx, transactionID))
}

func (m *MockPaymentService) Create(ctx context.Context, in *models.CreatePaymentInput) (*models.PaymentView, error) {
	return view[models.PaymentView](m.Called(ctx, in))
}

func (m *MockPaymentService) Update(ctx context.Context, id string, in *models.UpdatePaymentInput) (*models.PaymentView, error) {
	return view[models.PaymentView](m.Called(ctx, id, in))
}

func (m *MockPaymentService) Delete(ctx context.Context, id string) (*models.PaymentView, error) {
	return view[models.PaymentView](m.Called(ctx, id))
}

type MockCallService struct {
	mock.Mock
}

func (m *MockCallService) List(ctx context.Context, opts query.ListOptions) ([]models.CallView, int, error) {
	args := m.Called(ctx, opts)
	items, _ := args.Get(0).([]models.CallView)
	return items, args.Int(1), args.Error(2)
}

func (m *MockCallService) GetByID(ctx context.Context, id string) (*models.CallView, error) {
	return view[models.CallView](m.Called(ctx, id))
}

func (m *MockCallService) Create(ctx context.Context, in *models.CreateCallInput) (*models.CallView, error) {
	return view[models.CallView](m.Called(ctx, in))
}

func (m *MockCallService) Update(ctx context.Context, id string, in *models.UpdateCallInput) (*models.CallView, error) {
	return view[models.CallView](m.Called(ctx, id, in))
}

func (m *MockCallService) Delete(ctx context.Context, id string) (*models.CallView, error) {
	return view[models.CallView](m.Called(ctx, id))
}

func (m *MockCallService) LiveCalls(ctx context.Context) ([]models.LiveCallView, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]models.LiveCallView)
	return items, args.Error(1)
}

type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Summary(ctx context.Context) (*models.DashboardSummary, error) {
	return view[models.DashboardSummary](m.Called(ctx))
}

func (m *MockDashboardService) Refresh(ctx context.Context) (*models.DashboardSummary, error) {
	return view[models.DashboardSummary](m.Called(ctx))
}

func (m *MockDashboardService) Alerts(ctx context.Context) ([]models.Alert, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]models.Alert)
	return items, args.Error(1)
}

func (m *MockDashboardService) Services(ctx context.Context, limit int) ([]models.ServiceCount, error) {
	args := m.Called(ctx, limit)
	items, _ := args.Get(0).([]models.ServiceCount)
	return items, args.Error(1)
}

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// pingCache only answers Ping; the health handlers never touch the rest.
type pingCache struct {
	caching.CacheService
	err error
}

func (p pingCache) Ping(context.Context) error {
	return p.err
}
