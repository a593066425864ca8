package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"opsdash/internal/caching"
	"opsdash/internal/common"
	"opsdash/internal/models"
	"opsdash/internal/query"
	"opsdash/internal/repositories"
	"opsdash/internal/stats"
	"opsdash/internal/transform"
)

type UserService interface {
	List(ctx context.Context, opts query.ListOptions, role string) ([]models.UserView, int, error)
	GetByID(ctx context.Context, id string) (*models.UserView, error)
	Create(ctx context.Context, in *models.CreateUserInput) (*models.UserView, error)
	Update(ctx context.Context, id string, in *models.UpdateUserInput) (*models.UserView, error)
	Delete(ctx context.Context, id string) (*models.UserView, error)
	Stats(ctx context.Context, id string) (*models.UserStats, error)
}

type userService struct {
	userRepo      repositories.UserRepository
	aggregator    stats.Aggregator
	cacheService  caching.CacheService
	avatars       AvatarService
	cacheTTL      time.Duration
	publicBaseURL string
}

// NewUserService wires the user use cases. avatars may be nil when object
// storage is not configured; avatar values are then stored as given.
func NewUserService(userRepo repositories.UserRepository, aggregator stats.Aggregator, cacheService caching.CacheService, avatars AvatarService, cacheTTL time.Duration, publicBaseURL string) UserService {
	return &userService{
		userRepo:      userRepo,
		aggregator:    aggregator,
		cacheService:  cacheService,
		avatars:       avatars,
		cacheTTL:      cacheTTL,
		publicBaseURL: publicBaseURL,
	}
}

func (s *userService) List(ctx context.Context, opts query.ListOptions, role string) ([]models.UserView, int, error) {
	opts, err := opts.Normalize()
	if err != nil {
		return nil, 0, err
	}
	if err := common.ValidateOneOf(role, "role", append(models.UserRoles, query.StatusAll)...); err != nil {
		return nil, 0, err
	}
	recs, total, err := s.userRepo.List(ctx, opts, role)
	if err != nil {
		return nil, 0, err
	}
	return transform.Users(recs, s.publicBaseURL), total, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*models.UserView, error) {
	if cached, err := s.cacheService.GetUser(ctx, id); cached != nil {
		return cached, nil
	} else if err != nil {
		log.Printf("Cache error for user %s: %v", id, err)
	}

	rec, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var breakdown *models.UserStats
	if st, err := s.aggregator.Breakdown(ctx, id); err != nil {
		log.Printf("STATS_AGGREGATOR: breakdown for user %s failed: %v", id, err)
	} else {
		breakdown = &st
	}

	view := transform.User(rec, breakdown, s.publicBaseURL)
	if cacheErr := s.cacheService.SetUser(ctx, &view, s.cacheTTL); cacheErr != nil {
		log.Printf("Failed to cache user %s: %v", id, cacheErr)
	}
	return &view, nil
}

func (s *userService) Create(ctx context.Context, in *models.CreateUserInput) (*models.UserView, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.TrimSpace(in.Email)
	if err := common.ValidateRequiredString(in.FullName, "fullName"); err != nil {
		return nil, err
	}
	if err := common.ValidateEmail(in.Email, "email"); err != nil {
		return nil, err
	}
	if in.Role == "" {
		in.Role = models.RoleCustomer
	}
	if in.Status == "" {
		in.Status = models.UserStatusActive
	}
	if err := common.ValidateOneOf(in.Role, "role", models.UserRoles...); err != nil {
		return nil, err
	}
	if err := common.ValidateOneOf(in.Status, "status", models.UserStatuses...); err != nil {
		return nil, err
	}

	avatar, err := s.resolveAvatar(ctx, common.SafeString(in.ID), in.Avatar)
	if err != nil {
		return nil, err
	}
	uploaded := avatar != nil && in.Avatar != nil && *avatar != *in.Avatar
	in.Avatar = avatar

	rec, err := s.userRepo.Create(ctx, in)
	if err != nil {
		if uploaded {
			s.avatars.Remove(ctx, *avatar)
		}
		return nil, err
	}
	view := transform.User(rec, nil, s.publicBaseURL)
	return &view, nil
}

func (s *userService) Update(ctx context.Context, id string, in *models.UpdateUserInput) (*models.UserView, error) {
	if in.FullName != nil {
		if err := common.ValidateRequiredString(*in.FullName, "fullName"); err != nil {
			return nil, err
		}
	}
	if in.Email != nil {
		if err := common.ValidateEmail(*in.Email, "email"); err != nil {
			return nil, err
		}
		if err := s.ensureEmailFree(ctx, id, *in.Email); err != nil {
			return nil, err
		}
	}
	if in.Role != nil {
		if err := common.ValidateOneOf(*in.Role, "role", models.UserRoles...); err != nil {
			return nil, err
		}
	}
	if in.Status != nil {
		if err := common.ValidateOneOf(*in.Status, "status", models.UserStatuses...); err != nil {
			return nil, err
		}
	}

	avatar, err := s.resolveAvatar(ctx, id, in.Avatar)
	if err != nil {
		return nil, err
	}
	in.Avatar = avatar

	rec, err := s.userRepo.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)

	view := transform.User(rec, nil, s.publicBaseURL)
	return &view, nil
}

// Delete removes a user that owns no appointments, payments or calls.
func (s *userService) Delete(ctx context.Context, id string) (*models.UserView, error) {
	dependent, err := s.aggregator.HasDependents(ctx, id)
	if err != nil {
		return nil, err
	}
	if dependent {
		return nil, fmt.Errorf("%w: user %s still has related records", common.ErrConflict, id)
	}

	rec, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	if avatar, ok := rec["avatar"].(string); ok && s.avatars != nil {
		s.avatars.Remove(ctx, avatar)
	}

	view := transform.User(rec, nil, s.publicBaseURL)
	return &view, nil
}

func (s *userService) Stats(ctx context.Context, id string) (*models.UserStats, error) {
	if cached, err := s.cacheService.GetUserStats(ctx, id); cached != nil {
		return cached, nil
	} else if err != nil {
		log.Printf("Cache error for user stats %s: %v", id, err)
	}

	st, err := s.aggregator.Breakdown(ctx, id)
	if err != nil {
		return nil, err
	}
	if cacheErr := s.cacheService.SetUserStats(ctx, id, &st, s.cacheTTL); cacheErr != nil {
		log.Printf("Failed to cache user stats %s: %v", id, cacheErr)
	}
	return &st, nil
}

func (s *userService) resolveAvatar(ctx context.Context, ownerKey string, avatar *string) (*string, error) {
	if s.avatars == nil {
		return avatar, nil
	}
	return s.avatars.Resolve(ctx, ownerKey, avatar)
}

func (s *userService) invalidate(ctx context.Context, id string) {
	if err := s.cacheService.DeleteUser(ctx, id); err != nil {
		log.Printf("Failed to invalidate cached user %s: %v", id, err)
	}
}

func (s *userService) ensureEmailFree(ctx context.Context, id, email string) error {
	owner, err := s.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, common.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if ownerID, _ := owner["id"].(string); ownerID != id {
		return fmt.Errorf("%w: email %s is already registered", common.ErrConflict, email)
	}
	return nil
}
