package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/hostel-api/api/swagger"
	"github.com/noah-isme/hostel-api/internal/access"
	"github.com/noah-isme/hostel-api/internal/handler"
	"github.com/noah-isme/hostel-api/internal/middleware"
	"github.com/noah-isme/hostel-api/internal/repository"
	"github.com/noah-isme/hostel-api/internal/service"
	"github.com/noah-isme/hostel-api/pkg/breaker"
	"github.com/noah-isme/hostel-api/pkg/cache"
	"github.com/noah-isme/hostel-api/pkg/config"
	"github.com/noah-isme/hostel-api/pkg/database"
	"github.com/noah-isme/hostel-api/pkg/jobs"
	"github.com/noah-isme/hostel-api/pkg/logger"
	"github.com/noah-isme/hostel-api/pkg/messaging"
	corsmiddleware "github.com/noah-isme/hostel-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/hostel-api/pkg/middleware/requestid"
)

// @title Hostel API
// @version 1.0.0
// @description Role-scoped hostel management: rooms, residents, complaints, leave, announcements, attendance and payments.
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, caching disabled", zap.Error(err))
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	metrics := service.NewMetricsService()

	var (
		cacheRepo service.CacheRepository
		redisRepo *repository.CacheRepository
	)
	if redisClient != nil {
		redisRepo = repository.NewCacheRepository(redisClient, breaker.New("redis", cfg.Breaker, logr), logr)
		cacheRepo = redisRepo
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Analytics.CacheTTL, logr, cfg.Analytics.CacheEnabled && cacheRepo != nil)

	publisher := newPublisher(cfg, logr)
	defer publisher.Close() //nolint:errcheck

	queue := jobs.NewQueue("hostel-events", jobs.QueueConfig{
		Workers:    cfg.Notifications.Workers,
		MaxRetries: cfg.Notifications.MaxRetries,
		RetryDelay: cfg.Notifications.RetryDelay,
		Logger:     logr,
	})
	notifications := service.NewNotificationService(queue, publisher, metrics, logr)
	queue.Start(ctx)
	defer queue.Stop()

	users := repository.NewUserRepository(db)
	blocks := repository.NewBlockRepository(db)
	rooms := repository.NewRoomRepository(db)
	students := repository.NewStudentRepository(db)
	complaints := repository.NewComplaintRepository(db)
	leaves := repository.NewLeaveRepository(db)
	announcements := repository.NewAnnouncementRepository(db)
	attendance := repository.NewAttendanceRepository(db)
	payments := repository.NewPaymentRepository(db)
	analytics := repository.NewAnalyticsRepository(db)

	validate := validator.New()
	policy := access.Policy{AllowUnassignedWardenReads: cfg.Access.UnassignedWardenPolicy == config.UnassignedWardenAll}
	support := service.Support{
		Authorizer: access.NewAuthorizer(policy, metrics),
		Validator:  validate,
		Audit:      users,
		Events:     notifications,
		Cache:      cacheSvc,
		Logger:     logr,
	}

	authSvc := service.NewAuthService(users, students, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             cfg.JWT.Issuer,
	})
	identity := service.NewIdentityService(users, blocks, students, logr)

	handlers := handler.Handlers{
		Auth:          handler.NewAuthHandler(authSvc),
		Blocks:        handler.NewBlockHandler(service.NewBlockService(blocks, support)),
		Rooms:         handler.NewRoomHandler(service.NewRoomService(rooms, blocks, support)),
		Students:      handler.NewStudentHandler(service.NewStudentService(students, rooms, support)),
		Complaints:    handler.NewComplaintHandler(service.NewComplaintService(complaints, support)),
		Leaves:        handler.NewLeaveHandler(service.NewLeaveService(leaves, support)),
		Announcements: handler.NewAnnouncementHandler(service.NewAnnouncementService(announcements, blocks, support)),
		Attendance:    handler.NewAttendanceHandler(service.NewAttendanceService(attendance, students, support)),
		Payments:      handler.NewPaymentHandler(service.NewPaymentService(payments, students, service.NewExportService(), support)),
		Analytics:     handler.NewAnalyticsHandler(service.NewAnalyticsService(analytics, cacheSvc, support)),
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS))
	r.Use(middleware.Metrics(metrics))
	r.Use(middleware.ResponseMeta())

	health := handler.NewHealthHandler(metrics, readinessChecks(db, redisRepo))
	r.GET("/health", health.Health)
	r.GET("/ready", health.Ready)
	r.GET("/metrics", health.Prometheus)

	handler.RegisterRoutes(r.Group(cfg.APIPrefix), handlers, handler.RouteOptions{
		Authenticate: gin.HandlersChain{middleware.JWT(authSvc), middleware.Principal(identity)},
		Denied: func(resource string) gin.HandlerFunc {
			return middleware.AuditDenied(users, resource, logr)
		},
	})

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}

func newPublisher(cfg *config.Config, logr *zap.Logger) messaging.Publisher {
	if !cfg.Notifications.Enabled {
		return messaging.NewLogPublisher(logr)
	}
	pub, err := messaging.NewAMQPPublisher(cfg.Notifications.AMQPURL, cfg.Notifications.Exchange, breaker.New("amqp", cfg.Breaker, logr))
	if err != nil {
		logr.Warn("amqp unavailable, events will only be logged", zap.Error(err))
		return messaging.NewLogPublisher(logr)
	}
	return pub
}

func readinessChecks(db *sqlx.DB, redisRepo *repository.CacheRepository) map[string]handler.Check {
	checks := map[string]handler.Check{
		"postgres": db.PingContext,
	}
	if redisRepo != nil {
		checks["redis"] = redisRepo.Ping
	}
	return checks
}
