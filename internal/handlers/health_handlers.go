package handlers

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"opsdash/internal/caching"
	"opsdash/internal/services"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

const healthCheckTimeout = 2 * time.Second

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandlers handles health check and monitoring endpoints
type HealthHandlers struct {
	db       Pinger
	redisSvc caching.CacheService
	minioSvc services.MinioService
	bucket   string
	version  string
	started  time.Time
}

// NewHealthHandlers creates a new health handlers instance. minioSvc may be
// nil when object storage is disabled.
func NewHealthHandlers(db Pinger, redisSvc caching.CacheService, minioSvc services.MinioService, bucket, version string) *HealthHandlers {
	return &HealthHandlers{
		db:       db,
		redisSvc: redisSvc,
		minioSvc: minioSvc,
		bucket:   bucket,
		version:  version,
		started:  time.Now(),
	}
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
	Uptime    string            `json:"uptime"`
	Version   string            `json:"version"`
}

// HealthCheck reports every dependency. Any failing dependency marks the
// status degraded and answers 206.
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	health := &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  make(map[string]string),
		Version:   h.version,
		Uptime:    time.Since(h.started).Round(time.Second).String(),
	}
	for name, check := range h.checks() {
		if err := check(ctx); err != nil {
			health.Services[name] = "unhealthy"
			health.Status = "degraded"
		} else {
			health.Services[name] = "healthy"
		}
	}

	statusCode := http.StatusOK
	if health.Status == "degraded" {
		statusCode = http.StatusPartialContent
	}
	return c.JSON(statusCode, health)
}

func (h *HealthHandlers) checks() map[string]func(context.Context) error {
	checks := map[string]func(context.Context) error{
		"database": h.db.Ping,
		"redis":    h.redisSvc.Ping,
	}
	if h.minioSvc != nil {
		checks["storage"] = func(ctx context.Context) error {
			return h.minioSvc.Ping(ctx, h.bucket)
		}
	}
	return checks
}

// ReadinessCheck determines if the application is ready to serve traffic.
// Only the database is critical; the cache degrades gracefully.
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status":  "not_ready",
			"message": "Database unavailable",
		})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ready",
		"message": "All systems operational",
	})
}

// LivenessCheck determines if the application is running (basic liveness probe)
func (h *HealthHandlers) LivenessCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "alive",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// DetailedHealthCheck adds per-check latency, pool and host statistics
func (h *HealthHandlers) DetailedHealthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	overall := "healthy"
	checks := make(map[string]any)
	for name, check := range h.checks() {
		start := time.Now()
		entry := map[string]any{"status": "healthy", "message": ""}
		if err := check(ctx); err != nil {
			entry["status"] = "unhealthy"
			entry["message"] = err.Error()
			overall = "degraded"
		}
		entry["latency_ms"] = time.Since(start).Milliseconds()
		checks[name] = entry
	}

	detailed := map[string]any{
		"overall_status": overall,
		"checks":         checks,
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"version":        h.version,
		"goroutines":     runtime.NumGoroutine(),
		"system":         systemStats(ctx),
	}
	if pool, ok := h.db.(*pgxpool.Pool); ok {
		stat := pool.Stat()
		detailed["database_pool"] = map[string]any{
			"max":      stat.MaxConns(),
			"total":    stat.TotalConns(),
			"idle":     stat.IdleConns(),
			"acquired": stat.AcquiredConns(),
		}
	}

	statusCode := http.StatusOK
	if overall == "degraded" {
		statusCode = http.StatusPartialContent
	}
	return c.JSON(statusCode, detailed)
}

func systemStats(ctx context.Context) map[string]any {
	out := map[string]any{}
	if percents, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(percents) > 0 {
		out["cpu_percent"] = percents[0]
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		out["memory_used_percent"] = vm.UsedPercent
		out["memory_total_bytes"] = vm.Total
	}
	return out
}
