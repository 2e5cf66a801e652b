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
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/edulane/enrollment-api/api/swagger"
	"github.com/edulane/enrollment-api/internal/handler"
	"github.com/edulane/enrollment-api/internal/middleware"
	"github.com/edulane/enrollment-api/internal/models"
	"github.com/edulane/enrollment-api/internal/repository"
	"github.com/edulane/enrollment-api/internal/service"
	"github.com/edulane/enrollment-api/pkg/cache"
	"github.com/edulane/enrollment-api/pkg/config"
	"github.com/edulane/enrollment-api/pkg/database"
	"github.com/edulane/enrollment-api/pkg/jobs"
	"github.com/edulane/enrollment-api/pkg/logger"
	"github.com/edulane/enrollment-api/pkg/mail"
	corsmiddleware "github.com/edulane/enrollment-api/pkg/middleware/cors"
	reqidmiddleware "github.com/edulane/enrollment-api/pkg/middleware/requestid"
)

// @title Enrollment Platform API
// @version 1.0.0
// @description Education enrollment platform backend
// @BasePath /api
// @schemes http

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
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, catalog caching disabled", "error", err)
		redisClient = nil
	}

	metricsSvc := service.NewMetricsService()

	mailer := mail.NewSMTPMailer(cfg.SMTP, logr)
	notifier := service.NewQueueNotifier(mailer, jobs.QueueConfig{
		Workers:      cfg.Mailer.Workers,
		BufferSize:   cfg.Mailer.BufferSize,
		MaxRetries:   cfg.Mailer.MaxRetries,
		RetryDelay:   cfg.Mailer.RetryDelay,
		DrainTimeout: cfg.Mailer.DrainTimeout,
		Logger:       logr,
	}, metricsSvc, logr)
	notifier.Start(ctx)
	defer notifier.Stop()

	accountRepo := repository.NewAccountRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close()

	authSvc := service.NewAuthService(accountRepo, nil, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	courseSvc := service.NewCourseService(courseRepo, cacheRepo, cfg.Catalog.CacheTTL, metricsSvc, nil, logr)
	enrollmentSvc := service.NewEnrollmentService(applicationRepo, courseRepo, notifier, nil, logr)
	paymentSvc := service.NewPaymentService(paymentRepo, notifier, nil, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	courseHandler := handler.NewCourseHandler(courseSvc)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentSvc)
	paymentHandler := handler.NewPaymentHandler(paymentSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Scrape)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	authRequired := middleware.JWT(authSvc)
	adminOnly := middleware.RequireAdmin()

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/register", authHandler.Register(models.KindUser))
		api.POST("/login", authHandler.Login(models.KindUser))
		api.GET("/dashboard", authRequired, authHandler.Dashboard)

		api.POST("/admin/register", authHandler.Register(models.KindAdmin))
		api.POST("/admin/login", authHandler.Login(models.KindAdmin))

		api.GET("/courses", courseHandler.List)
		api.POST("/admin/dashboard/create-course", authRequired, adminOnly, courseHandler.Create)

		api.POST("/enroll", enrollmentHandler.Submit)
		api.GET("/applications/:applicationNumber", enrollmentHandler.GetStatus)
		api.GET("/applications/:applicationNumber/details", enrollmentHandler.GetDetails)

		admin := api.Group("/admin/dashboard", authRequired, adminOnly)
		{
			admin.GET("/applications", enrollmentHandler.ListPending)
			admin.GET("/applications/export", enrollmentHandler.ExportPending)
			admin.PUT("/applications/:applicationNumber/approve", enrollmentHandler.Approve)
			admin.PUT("/applications/:applicationNumber/deny", enrollmentHandler.Deny)
		}

		api.POST("/payments", paymentHandler.Record)
		api.GET("/payments/:applicationId", paymentHandler.HasPayment)
		api.GET("/dashboard/enrolled-courses", authRequired, paymentHandler.EnrolledCourses)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("server shutdown failed", "error", err)
	}
}
