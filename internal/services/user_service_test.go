package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"opsdash/internal/common"
	"opsdash/internal/models"
	"opsdash/internal/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	repo    *MockUserRepository
	agg     *MockAggregator
	cache   *MockCacheService
	service UserService
	ctx     context.Context
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.repo = new(MockUserRepository)
	suite.agg = new(MockAggregator)
	suite.cache = new(MockCacheService)
	suite.service = NewUserService(suite.repo, suite.agg, suite.cache, nil, 5*time.Minute, "https://ops.example.com")
	suite.ctx = context.Background()
}

func (suite *UserServiceTestSuite) TearDownTest() {
	suite.repo.AssertExpectations(suite.T())
	suite.agg.AssertExpectations(suite.T())
	suite.cache.AssertExpectations(suite.T())
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (suite *UserServiceTestSuite) TestCreate_AppliesDefaults() {
	suite.repo.On("Create", suite.ctx, mock.MatchedBy(func(in *models.CreateUserInput) bool {
		return in.FullName == "Jane Doe" && in.Role == models.RoleCustomer && in.Status == models.UserStatusActive
	})).Return(models.Record{
		"id": "USR0001", "full_name": "Jane Doe", "email": "jane@example.com",
		"role": "customer", "status": "active",
	}, nil)

	view, err := suite.service.Create(suite.ctx, &models.CreateUserInput{FullName: " Jane Doe ", Email: "jane@example.com"})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "USR0001", view.ID)
	assert.Equal(suite.T(), 0, view.TotalAppointments)
	assert.Contains(suite.T(), view.Avatar, "ui-avatars.com")
}

func (suite *UserServiceTestSuite) TestCreate_ValidationErrors() {
	cases := []struct {
		name  string
		in    models.CreateUserInput
		field string
	}{
		{"missing name", models.CreateUserInput{Email: "a@b.com"}, "fullName"},
		{"bad email", models.CreateUserInput{FullName: "A", Email: "not-an-email"}, "email"},
		{"bad role", models.CreateUserInput{FullName: "A", Email: "a@b.com", Role: "owner"}, "role"},
	}
	for _, tc := range cases {
		_, err := suite.service.Create(suite.ctx, &tc.in)
		var vErr *common.ValidationError
		if assert.True(suite.T(), errors.As(err, &vErr), tc.name) {
			assert.Equal(suite.T(), tc.field, vErr.Field, tc.name)
		}
	}
	suite.repo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestCreate_DuplicateEmailIsConflict() {
	suite.repo.On("Create", suite.ctx, mock.Anything).
		Return(nil, errors.Join(common.ErrConflict, errors.New("users_email_key")))

	_, err := suite.service.Create(suite.ctx, &models.CreateUserInput{FullName: "Jane", Email: "jane@example.com"})
	assert.True(suite.T(), errors.Is(err, common.ErrConflict))
}

func (suite *UserServiceTestSuite) TestGetByID_CacheHit() {
	cached := &models.UserView{ID: "USR0001", FullName: "Cached"}
	suite.cache.On("GetUser", suite.ctx, "USR0001").Return(cached, nil)

	view, err := suite.service.GetByID(suite.ctx, "USR0001")
	assert.NoError(suite.T(), err)
	assert.Same(suite.T(), cached, view)
}

func (suite *UserServiceTestSuite) TestGetByID_MissFillsStatsAndCaches() {
	suite.cache.On("GetUser", suite.ctx, "USR0002").Return(nil, nil)
	suite.repo.On("GetByID", suite.ctx, "USR0002").Return(models.Record{"id": "USR0002", "full_name": "Ann"}, nil)
	suite.agg.On("Breakdown", suite.ctx, "USR0002").Return(models.UserStats{
		UserCounters: models.UserCounters{TotalAppointments: 2, TotalCalls: 1},
		FailedCalls:  1,
	}, nil)
	suite.cache.On("SetUser", suite.ctx, mock.AnythingOfType("*models.UserView"), 5*time.Minute).Return(nil)

	view, err := suite.service.GetByID(suite.ctx, "USR0002")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2, view.TotalAppointments)
	assert.Equal(suite.T(), 1, view.FailedCalls)
}

func (suite *UserServiceTestSuite) TestGetByID_CacheErrorFallsBackToStore() {
	suite.cache.On("GetUser", suite.ctx, "USR0003").Return(nil, errors.New("redis down"))
	suite.repo.On("GetByID", suite.ctx, "USR0003").Return(models.Record{"id": "USR0003"}, nil)
	suite.agg.On("Breakdown", suite.ctx, "USR0003").Return(models.UserStats{}, errors.New("boom"))
	suite.cache.On("SetUser", suite.ctx, mock.Anything, mock.Anything).Return(errors.New("redis down"))

	view, err := suite.service.GetByID(suite.ctx, "USR0003")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Unknown User", view.FullName)
}

func (suite *UserServiceTestSuite) TestDelete_RestrictsUserWithDependents() {
	suite.agg.On("HasDependents", suite.ctx, "USR0004").Return(true, nil)

	_, err := suite.service.Delete(suite.ctx, "USR0004")
	assert.True(suite.T(), errors.Is(err, common.ErrConflict))
	suite.repo.AssertNotCalled(suite.T(), "Delete", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestDelete_InvalidatesCache() {
	suite.agg.On("HasDependents", suite.ctx, "USR0005").Return(false, nil)
	suite.repo.On("Delete", suite.ctx, "USR0005").Return(models.Record{"id": "USR0005", "full_name": "Gone"}, nil)
	suite.cache.On("DeleteUser", suite.ctx, "USR0005").Return(nil)

	view, err := suite.service.Delete(suite.ctx, "USR0005")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Gone", view.FullName)
}

func (suite *UserServiceTestSuite) TestUpdate_RejectsInvalidStatus() {
	_, err := suite.service.Update(suite.ctx, "USR0001", &models.UpdateUserInput{Status: strPtr("archived")})
	assert.True(suite.T(), errors.Is(err, common.ErrValidation))
}

func (suite *UserServiceTestSuite) TestUpdate_Success() {
	in := &models.UpdateUserInput{Phone: strPtr("555-0100")}
	suite.repo.On("Update", suite.ctx, "USR0001", in).Return(models.Record{"id": "USR0001", "phone": "555-0100"}, nil)
	suite.cache.On("DeleteUser", suite.ctx, "USR0001").Return(nil)

	view, err := suite.service.Update(suite.ctx, "USR0001", in)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "555-0100", view.Phone)
}

func (suite *UserServiceTestSuite) TestUpdate_EmailOwnedByAnotherUser() {
	suite.repo.On("GetByEmail", suite.ctx, "taken@example.com").Return(models.Record{"id": "USR0009"}, nil)

	_, err := suite.service.Update(suite.ctx, "USR0001", &models.UpdateUserInput{Email: strPtr("taken@example.com")})
	assert.True(suite.T(), errors.Is(err, common.ErrConflict))
	suite.repo.AssertNotCalled(suite.T(), "Update", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestUpdate_UnusedEmail() {
	in := &models.UpdateUserInput{Email: strPtr("new@example.com")}
	suite.repo.On("GetByEmail", suite.ctx, "new@example.com").Return(nil, common.NotFound("user", "new@example.com"))
	suite.repo.On("Update", suite.ctx, "USR0001", in).Return(models.Record{"id": "USR0001", "email": "new@example.com"}, nil)
	suite.cache.On("DeleteUser", suite.ctx, "USR0001").Return(nil)

	view, err := suite.service.Update(suite.ctx, "USR0001", in)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "new@example.com", view.Email)
}

func (suite *UserServiceTestSuite) TestList_NormalizesOptions() {
	suite.repo.On("List", suite.ctx, query.ListOptions{Limit: query.DefaultLimit, Search: "jane"}, "agent").
		Return([]models.Record{{"id": "USR0001"}}, 1, nil)

	views, total, err := suite.service.List(suite.ctx, query.ListOptions{Search: "  jane "}, "agent")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, total)
	assert.Len(suite.T(), views, 1)
}

func (suite *UserServiceTestSuite) TestList_RejectsNegativeOffset() {
	_, _, err := suite.service.List(suite.ctx, query.ListOptions{Offset: -1}, "")
	assert.True(suite.T(), errors.Is(err, common.ErrValidation))
}

func (suite *UserServiceTestSuite) TestStats_ReadThrough() {
	suite.cache.On("GetUserStats", suite.ctx, "USR0006").Return(nil, nil)
	suite.agg.On("Breakdown", suite.ctx, "USR0006").Return(models.UserStats{FailedPayments: 3}, nil)
	suite.cache.On("SetUserStats", suite.ctx, "USR0006", mock.Anything, 5*time.Minute).Return(nil)

	st, err := suite.service.Stats(suite.ctx, "USR0006")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 3, st.FailedPayments)
}

func TestUserService_CreateStoresInlineAvatar(t *testing.T) {
	repo := new(MockUserRepository)
	storage := new(MockMinioService)
	svc := NewUserService(repo, new(MockAggregator), new(MockCacheService), NewAvatarService(storage, "avatars"), time.Minute, "")
	ctx := context.Background()

	storage.On("UploadObject", ctx, "avatars", mock.MatchedBy(func(name string) bool {
		return len(name) > len("avatars/") && name[len(name)-4:] == ".png"
	}), mock.Anything, int64(3), "image/png").Return(nil)
	storage.On("ObjectURL", "avatars", mock.Anything).Return("http://minio:9000/avatars/avatars/x.png")
	repo.On("Create", ctx, mock.MatchedBy(func(in *models.CreateUserInput) bool {
		return in.Avatar != nil && *in.Avatar == "http://minio:9000/avatars/avatars/x.png"
	})).Return(models.Record{"id": "USR0007", "avatar": "http://minio:9000/avatars/avatars/x.png"}, nil)

	view, err := svc.Create(ctx, &models.CreateUserInput{
		FullName: "Pic", Email: "pic@example.com", Avatar: strPtr("data:image/png;base64,YWJj"),
	})
	assert.NoError(t, err)
	assert.Equal(t, "http://minio:9000/avatars/avatars/x.png", view.Avatar)
	storage.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestUserService_CreateFailureRemovesUploadedAvatar(t *testing.T) {
	repo := new(MockUserRepository)
	storage := new(MockMinioService)
	svc := NewUserService(repo, new(MockAggregator), new(MockCacheService), NewAvatarService(storage, "avatars"), time.Minute, "")
	ctx := context.Background()

	storage.On("UploadObject", ctx, "avatars", mock.Anything, mock.Anything, int64(3), "image/png").Return(nil)
	storage.On("ObjectURL", "avatars", "").Return("http://minio:9000/avatars/")
	storage.On("ObjectURL", "avatars", mock.Anything).Return("http://minio:9000/avatars/avatars/new-x.png")
	storage.On("DeleteObject", ctx, "avatars", "avatars/new-x.png").Return(nil)
	repo.On("Create", ctx, mock.Anything).Return(nil, errors.Join(common.ErrConflict, errors.New("users_email_key")))

	_, err := svc.Create(ctx, &models.CreateUserInput{
		FullName: "Pic", Email: "pic@example.com", Avatar: strPtr("data:image/png;base64,YWJj"),
	})
	assert.True(t, errors.Is(err, common.ErrConflict))
	storage.AssertCalled(t, "DeleteObject", ctx, "avatars", "avatars/new-x.png")
}
