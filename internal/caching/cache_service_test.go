package caching

import (
	"context"
	"testing"
	"time"

	"opsdash/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestCacheKeys(t *testing.T) {
	assert.Equal(t, "opsdash:user:USR0001", userKey("USR0001"))
	assert.Equal(t, "opsdash:user-stats:USR0001", userStatsKey("USR0001"))
	assert.Equal(t, "opsdash:dashboard:summary", dashboardKey())
}

func TestCacheService_UnreachableServerReturnsErrors(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	svc := NewCacheServiceFromClient(client)
	ctx := context.Background()

	user, err := svc.GetUser(ctx, "USR0001")
	assert.Error(t, err)
	assert.Nil(t, user)

	err = svc.SetDashboardSummary(ctx, &models.DashboardSummary{TotalCalls: 3}, time.Minute)
	assert.Error(t, err)
	assert.Error(t, svc.Ping(ctx))
}
