package services

import (
	"context"
	"io"
	"time"

	"opsdash/internal/models"
	"opsdash/internal/query"

	"github.com/stretchr/testify/mock"
)

func record(args mock.Arguments) (models.Record, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.Record), args.Error(1)
}

func records(args mock.Arguments, i int) []models.Record {
	if args.Get(i) == nil {
		return nil
	}
	return args.Get(i).([]models.Record)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) List(ctx context.Context, opts query.ListOptions, role string) ([]models.Record, int, error) {
	args := m.Called(ctx, opts, role)
	return records(args, 0), args.Int(1), args.Error(2)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (models.Record, error) {
	return record(m.Called(ctx, id))
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (models.Record, error) {
	return record(m.Called(ctx, email))
}

func (m *MockUserRepository) Create(ctx context.Context, in *models.CreateUserInput) (models.Record, error) {
	return record(m.Called(ctx, in))
}

func (m *MockUserRepository) Update(ctx context.Context, id string, in *models.UpdateUserInput) (models.Record, error) {
	return record(m.Called(ctx, id, in))
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) (models.Record, error) {
	return record(m.Called(ctx, id))
}

type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) List(ctx context.Context, opts query.ListOptions) ([]models.Record, int, error) {
	args := m.Called(ctx, opts)
	return records(args, 0), args.Int(1), args.Error(2)
}

func (m *MockAppointmentRepository) GetByID(ctx context.Context, id string) (models.Record, error) {
	return record(m.Called(ctx, id))
}

func (m *MockAppointmentRepository) Create(ctx context.Context, in *models.CreateAppointmentInput) (models.Record, error) {
	return record(m.Called(ctx, in))
}

func (m *MockAppointmentRepository) Update(ctx context.Context, id string, in *models.UpdateAppointmentInput) (models.Record, error) {
	return record(m.Called(ctx, id, in))
}

func (m *MockAppointmentRepository) Delete(ctx context.Context, id string) (models.Record, error) {
	return record(m.Called(ctx, id))
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) List(ctx context.Context, opts query.ListOptions) ([]models.Record, int, error) {
	args := m.Called(ctx, opts)
	return records(args, 0), args.Int(1), args.Error(2)
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id string) (models.Record, error) {
	return record(m.Called(ctx, id))
}

func (m *MockPaymentRepository) GetByTransactionID(ctx context.Context, transactionID string) (models.Record, error) {
	return record(m.Called(ctx, transactionID))
}

func (m *MockPaymentRepository) Create(ctx context.Context, in *models.CreatePaymentInput) (models.Record, error) {
	return record(m.Called(ctx, in))
}

func (m *MockPaymentRepository) Update(ctx context.Context, id string, in *models.UpdatePaymentInput) (models.Record, error) {
	return record(m.Called(ctx, id, in))
}

func (m *MockPaymentRepository) Delete(ctx context.Context, id string) (models.Record, error) {
	return record(m.Called(ctx, id))
}

type MockCallRepository struct {
	mock.Mock
}

func (m *MockCallRepository) List(ctx context.Context, opts query.ListOptions) ([]models.Record, int, error) {
	args := m.Called(ctx, opts)
	return records(args, 0), args.Int(1), args.Error(2)
}

func (m *MockCallRepository) GetByID(ctx context.Context, id string) (models.Record, error) {
	return record(m.Called(ctx, id))
}

func (m *MockCallRepository) Create(ctx context.Context, in *models.CreateCallInput) (models.Record, error) {
	return record(m.Called(ctx, in))
}

func (m *MockCallRepository) Update(ctx context.Context, id string, in *models.UpdateCallInput, endedAt *time.Time) (models.Record, error) {
	return record(m.Called(ctx, id, in, endedAt))
}

func (m *MockCallRepository) Delete(ctx context.Context, id string) (models.Record, error) {
	return record(m.Called(ctx, id))
}

func (m *MockCallRepository) Recent(ctx context.Context, since time.Time, limit int) ([]models.Record, error) {
	args := m.Called(ctx, since, limit)
	return records(args, 0), args.Error(1)
}

type MockDashboardRepository struct {
	mock.Mock
}

func (m *MockDashboardRepository) Summary(ctx context.Context, day time.Time) (*models.DashboardSummary, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DashboardSummary), args.Error(1)
}

func (m *MockDashboardRepository) ServiceDistribution(ctx context.Context, limit int) ([]models.ServiceCount, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ServiceCount), args.Error(1)
}

func (m *MockDashboardRepository) MissedCalls(ctx context.Context, limit int) ([]models.Record, error) {
	args := m.Called(ctx, limit)
	return records(args, 0), args.Error(1)
}

func (m *MockDashboardRepository) FailedPayments(ctx context.Context, limit int) ([]models.Record, error) {
	args := m.Called(ctx, limit)
	return records(args, 0), args.Error(1)
}

type MockAggregator struct {
	mock.Mock
}

func (m *MockAggregator) Recompute(ctx context.Context, userID string) (models.UserCounters, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(models.UserCounters), args.Error(1)
}

func (m *MockAggregator) RecomputeAll(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockAggregator) Breakdown(ctx context.Context, userID string) (models.UserStats, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(models.UserStats), args.Error(1)
}

func (m *MockAggregator) HasDependents(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetUser(ctx context.Context, userID string) (*models.UserView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserView), args.Error(1)
}

func (m *MockCacheService) SetUser(ctx context.Context, user *models.UserView, ttl time.Duration) error {
	return m.Called(ctx, user, ttl).Error(0)
}

func (m *MockCacheService) DeleteUser(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockCacheService) GetUserStats(ctx context.Context, userID string) (*models.UserStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserStats), args.Error(1)
}

func (m *MockCacheService) SetUserStats(ctx context.Context, userID string, stats *models.UserStats, ttl time.Duration) error {
	return m.Called(ctx, userID, stats, ttl).Error(0)
}

func (m *MockCacheService) GetDashboardSummary(ctx context.Context) (*models.DashboardSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DashboardSummary), args.Error(1)
}

func (m *MockCacheService) SetDashboardSummary(ctx context.Context, summary *models.DashboardSummary, ttl time.Duration) error {
	return m.Called(ctx, summary, ttl).Error(0)
}

func (m *MockCacheService) DeleteDashboardSummary(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockCacheService) InvalidateAllCache(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockMinioService struct {
	mock.Mock
}

func (m *MockMinioService) UploadObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, contentType string) error {
	return m.Called(ctx, bucketName, objectName, reader, objectSize, contentType).Error(0)
}

func (m *MockMinioService) DeleteObject(ctx context.Context, bucketName, objectName string) error {
	return m.Called(ctx, bucketName, objectName).Error(0)
}

func (m *MockMinioService) EnsureBucketExists(ctx context.Context, bucketName string) error {
	return m.Called(ctx, bucketName).Error(0)
}

func (m *MockMinioService) ObjectURL(bucketName, objectName string) string {
	return m.Called(bucketName, objectName).String(0)
}

func (m *MockMinioService) Ping(ctx context.Context, bucketName string) error {
	return m.Called(ctx, bucketName).Error(0)
}

func strPtr(s string) *string {
	return &s
}
