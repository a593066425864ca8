package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"opsdash/internal/metrics"
	"opsdash/internal/models"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "opsdash"

type CacheService interface {
	// User views
	GetUser(ctx context.Context, userID string) (*models.UserView, error)
	SetUser(ctx context.Context, user *models.UserView, ttl time.Duration) error
	DeleteUser(ctx context.Context, userID string) error

	// Per-user stats breakdown
	GetUserStats(ctx context.Context, userID string) (*models.UserStats, error)
	SetUserStats(ctx context.Context, userID string, stats *models.UserStats, ttl time.Duration) error

	// Dashboard
	GetDashboardSummary(ctx context.Context) (*models.DashboardSummary, error)
	SetDashboardSummary(ctx context.Context, summary *models.DashboardSummary, ttl time.Duration) error
	DeleteDashboardSummary(ctx context.Context) error

	// Cache invalidation
	InvalidateAllCache(ctx context.Context) error

	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	opts := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			log.Printf("WARN: invalid Redis URL %q, using it as an address: %v", addr, err)
		} else {
			opts = parsed
			if password != "" {
				opts.Password = password
			}
		}
	}

	client := redis.NewClient(opts)
	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, opts.Addr)
	} else {
		log.Printf("Redis connection established (%s)", opts.Addr)
	}

	return &redisCacheService{client: client}
}

// NewCacheServiceFromClient wraps an existing client.
func NewCacheServiceFromClient(client *redis.Client) CacheService {
	return &redisCacheService{client: client}
}

func userKey(userID string) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, userID)
}

func userStatsKey(userID string) string {
	return fmt.Sprintf("%s:user-stats:%s", keyPrefix, userID)
}

func dashboardKey() string {
	return keyPrefix + ":dashboard:summary"
}

// getJSON decodes the value at key into dst. A miss returns false and no error.
func (r *redisCacheService) getJSON(ctx context.Context, kind, key string, dst any) (bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			metrics.CacheLookups.WithLabelValues(kind, "miss").Inc()
			return false, nil
		}
		metrics.CacheLookups.WithLabelValues(kind, "error").Inc()
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		metrics.CacheLookups.WithLabelValues(kind, "error").Inc()
		return false, err
	}
	metrics.CacheLookups.WithLabelValues(kind, "hit").Inc()
	return true, nil
}

func (r *redisCacheService) setJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) GetUser(ctx context.Context, userID string) (*models.UserView, error) {
	var user models.UserView
	found, err := r.getJSON(ctx, "user", userKey(userID), &user)
	if err != nil || !found {
		return nil, err
	}
	return &user, nil
}

func (r *redisCacheService) SetUser(ctx context.Context, user *models.UserView, ttl time.Duration) error {
	return r.setJSON(ctx, userKey(user.ID), user, ttl)
}

// DeleteUser drops the cached view and stats of a user.
func (r *redisCacheService) DeleteUser(ctx context.Context, userID string) error {
	return r.client.Del(ctx, userKey(userID), userStatsKey(userID)).Err()
}

func (r *redisCacheService) GetUserStats(ctx context.Context, userID string) (*models.UserStats, error) {
	var stats models.UserStats
	found, err := r.getJSON(ctx, "user_stats", userStatsKey(userID), &stats)
	if err != nil || !found {
		return nil, err
	}
	return &stats, nil
}

func (r *redisCacheService) SetUserStats(ctx context.Context, userID string, stats *models.UserStats, ttl time.Duration) error {
	return r.setJSON(ctx, userStatsKey(userID), stats, ttl)
}

func (r *redisCacheService) GetDashboardSummary(ctx context.Context) (*models.DashboardSummary, error) {
	var summary models.DashboardSummary
	found, err := r.getJSON(ctx, "dashboard", dashboardKey(), &summary)
	if err != nil || !found {
		return nil, err
	}
	return &summary, nil
}

func (r *redisCacheService) SetDashboardSummary(ctx context.Context, summary *models.DashboardSummary, ttl time.Duration) error {
	return r.setJSON(ctx, dashboardKey(), summary, ttl)
}

func (r *redisCacheService) DeleteDashboardSummary(ctx context.Context) error {
	return r.client.Del(ctx, dashboardKey()).Err()
}

// InvalidateAllCache removes every key under the service prefix using SCAN.
func (r *redisCacheService) InvalidateAllCache(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, keyPrefix+":*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) > 0 {
		return r.client.Del(ctx, keys...).Err()
	}
	return nil
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
