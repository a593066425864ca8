package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"opsdash/internal/caching"
	"opsdash/internal/config"
	"opsdash/internal/handlers"
	"opsdash/internal/jobs"
	"opsdash/internal/middleware"
	"opsdash/internal/repositories"
	"opsdash/internal/services"
	"opsdash/internal/stats"
	"opsdash/pkg/database"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	applied, err := database.NewMigrator(pool).RunMigrations(ctx)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	cacheSvc := caching.NewRedisCacheService(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if applied > 0 {
		// Cached views may predate the new schema.
		if err := cacheSvc.InvalidateAllCache(ctx); err != nil {
			log.Printf("Failed to clear cache after migrations: %v", err)
		}
	}

	// Object storage is optional; without it avatars are stored as submitted.
	var minioSvc services.MinioService
	var avatarSvc services.AvatarService
	if cfg.StorageEnabled() {
		minioSvc, err = services.NewMinioService(cfg.Storage.Endpoint, cfg.Storage.AccessKey, cfg.Storage.SecretKey, cfg.Storage.UseSSL, cfg.Storage.PublicURL)
		if err != nil {
			log.Fatalf("Failed to initialize MinIO service: %v", err)
		}
		if err := minioSvc.EnsureBucketExists(ctx, cfg.Storage.Bucket); err != nil {
			log.Fatalf("Failed to prepare bucket %s: %v", cfg.Storage.Bucket, err)
		}
		avatarSvc = services.NewAvatarService(minioSvc, cfg.Storage.Bucket)
	}

	userRepo := repositories.NewUserRepo(pool)
	appointmentRepo := repositories.NewAppointmentRepo(pool)
	paymentRepo := repositories.NewPaymentRepo(pool)
	callRepo := repositories.NewCallRepo(pool)
	dashboardRepo := repositories.NewDashboardRepo(pool)

	aggregator := stats.NewAggregator(pool)

	userSvc := services.NewUserService(userRepo, aggregator, cacheSvc, avatarSvc, cfg.Cache.TTL, cfg.App.PublicBaseURL)
	appointmentSvc := services.NewAppointmentService(appointmentRepo, aggregator, cacheSvc)
	paymentSvc := services.NewPaymentService(paymentRepo, aggregator, cacheSvc)
	callSvc := services.NewCallService(callRepo, aggregator, cacheSvc)
	dashboardSvc := services.NewDashboardService(dashboardRepo, callRepo, cacheSvc, cfg.Cache.TTL)

	userHandlers := handlers.NewUserHandlers(userSvc)
	appointmentHandlers := handlers.NewAppointmentHandlers(appointmentSvc)
	paymentHandlers := handlers.NewPaymentHandlers(paymentSvc)
	callHandlers := handlers.NewCallHandlers(callSvc)
	dashboardHandlers := handlers.NewDashboardHandlers(dashboardSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc, minioSvc, cfg.Storage.Bucket, version)

	e := echo.New()
	e.HideBanner = true

	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: cfg.Server.CorsOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}))
	e.Pre(echoMiddleware.RemoveTrailingSlash())
	e.Use(middleware.Metrics())

	versionMiddleware := middleware.NewVersionMiddleware()
	e.Use(versionMiddleware.APIVersionResolver())

	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/live", healthHandlers.LivenessCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)
	e.GET("/health/detailed", healthHandlers.DetailedHealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	limiter := middleware.NewRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)
	limiter.StartCleanup(ctx)

	v1 := e.Group("/v1")
	v1.Use(versionMiddleware.VersionHeader("v1"))
	v1.Use(middleware.RateLimit(limiter))

	v1.GET("/users", userHandlers.ListUsers)
	v1.POST("/users", userHandlers.CreateUser)
	v1.GET("/users/:id", userHandlers.GetUser)
	v1.GET("/users/:id/stats", userHandlers.GetUserStats)
	v1.PUT("/users/:id", userHandlers.UpdateUser)
	v1.DELETE("/users/:id", userHandlers.DeleteUser)

	v1.GET("/appointments", appointmentHandlers.ListAppointments)
	v1.POST("/appointments", appointmentHandlers.CreateAppointment)
	v1.GET("/appointments/:id", appointmentHandlers.GetAppointment)
	v1.PUT("/appointments/:id", appointmentHandlers.UpdateAppointment)
	v1.DELETE("/appointments/:id", appointmentHandlers.DeleteAppointment)

	v1.GET("/payments", paymentHandlers.ListPayments)
	v1.POST("/payments", paymentHandlers.CreatePayment)
	v1.GET("/payments/transaction/:transactionId", paymentHandlers.GetPaymentByTransaction)
	v1.GET("/payments/:id", paymentHandlers.GetPayment)
	v1.PUT("/payments/:id", paymentHandlers.UpdatePayment)
	v1.DELETE("/payments/:id", paymentHandlers.DeletePayment)

	v1.GET("/calls", callHandlers.ListCalls)
	v1.POST("/calls", callHandlers.CreateCall)
	v1.GET("/calls/live", callHandlers.LiveCalls)
	v1.GET("/calls/:id", callHandlers.GetCall)
	v1.PUT("/calls/:id", callHandlers.UpdateCall)
	v1.DELETE("/calls/:id", callHandlers.DeleteCall)

	v1.GET("/dashboard/summary", dashboardHandlers.GetSummary)
	v1.GET("/dashboard/alerts", dashboardHandlers.GetAlerts)
	v1.GET("/dashboard/services", dashboardHandlers.GetServices)

	var scheduler *jobs.JobScheduler
	if cfg.Jobs.Enabled {
		scheduler, err = jobs.NewJobScheduler(aggregator, dashboardSvc, jobs.Intervals{
			StatsReconcile:  cfg.Jobs.StatsReconcileInterval,
			DashboardWarmup: cfg.Jobs.DashboardWarmupInterval,
		})
		if err != nil {
			log.Fatalf("Failed to create job scheduler: %v", err)
		}
		scheduler.Start()
	}

	go func() {
		if err := e.Start(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	if scheduler != nil {
		if err := scheduler.Stop(); err != nil {
			log.Printf("Job scheduler shutdown error: %v", err)
		}
	}
}
