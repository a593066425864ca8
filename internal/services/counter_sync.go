package services

import (
	"context"
	"log"
	"strings"

	"opsdash/internal/caching"
	"opsdash/internal/stats"
)

// counterSync refreshes denormalized user counters after a write that
// changed which rows a user owns. Counters are eventually consistent: a
// failure here is logged and left for the reconcile job, the triggering
// write stays committed.
type counterSync struct {
	aggregator stats.Aggregator
	cache      caching.CacheService
}

func (c counterSync) refresh(ctx context.Context, userIDs ...*string) {
	seen := make(map[string]bool, len(userIDs))
	for _, id := range userIDs {
		if id == nil || *id == "" || seen[*id] {
			continue
		}
		seen[*id] = true

		if _, err := c.aggregator.Recompute(ctx, *id); err != nil {
			log.Printf("STATS_AGGREGATOR: recompute for user %s failed: %v", *id, err)
		}
		if err := c.cache.DeleteUser(ctx, *id); err != nil {
			log.Printf("Failed to invalidate cached user %s: %v", *id, err)
		}
	}
	c.invalidateDashboard(ctx)
}

func (c counterSync) invalidateDashboard(ctx context.Context) {
	if err := c.cache.DeleteDashboardSummary(ctx); err != nil {
		log.Printf("Failed to invalidate dashboard summary: %v", err)
	}
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
