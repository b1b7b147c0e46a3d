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
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/aews-api/api/swagger"
	"github.com/noah-isme/aews-api/internal/handler"
	"github.com/noah-isme/aews-api/internal/middleware"
	"github.com/noah-isme/aews-api/internal/repository"
	"github.com/noah-isme/aews-api/internal/service"
	"github.com/noah-isme/aews-api/pkg/cache"
	"github.com/noah-isme/aews-api/pkg/config"
	"github.com/noah-isme/aews-api/pkg/database"
	"github.com/noah-isme/aews-api/pkg/export"
	"github.com/noah-isme/aews-api/pkg/logger"
	"github.com/noah-isme/aews-api/pkg/mailer"
	corsmiddleware "github.com/noah-isme/aews-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/aews-api/pkg/middleware/requestid"
)

// @title AEWS API
// @version 1.0.0
// @description Academic early-warning system backend
// @BasePath /api
// @schemes http https

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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var cacheRepo *repository.CacheRepository
	if cfg.Overview.CacheEnabled {
		client, redisErr := cache.NewRedis(cfg.Redis)
		if redisErr != nil {
			logr.Sugar().Warnw("redis unavailable, overview cache disabled", "error", redisErr)
		} else {
			cacheRepo = repository.NewCacheRepository(client, logr)
			defer cacheRepo.Close() //nolint:errcheck
		}
	}
	var cacheBackend service.CacheRepository
	if cacheRepo != nil {
		cacheBackend = cacheRepo
	}
	cacheSvc := service.NewCacheService(cacheBackend, metricsSvc, cfg.Overview.CacheTTL, logr, cacheRepo != nil)

	mail := mailer.New(cfg.SMTP, nil, logr)
	validate := validator.New()

	accountRepo := repository.NewAccountRepository(db)
	classRepo := repository.NewClassRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	interventionRepo := repository.NewInterventionRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	authSvc := service.NewAuthService(accountRepo, mail, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
		FrontendBaseURL:   cfg.Frontend.BaseURL,
	})
	userSvc := service.NewUserService(accountRepo, validate, logr)
	studentSvc := service.NewStudentService(studentRepo, validate, logr)
	classSvc := service.NewClassService(classRepo, enrollmentRepo, validate, cacheSvc, logr)
	interventionSvc := service.NewInterventionService(interventionRepo, validate, logr)
	notificationSvc := service.NewNotificationService(notificationRepo, validate, logr)
	adminSvc := service.NewAdminService(statsRepo, accountRepo, mail, cacheSvc, cfg.Overview.CacheTTL, logr)
	reportSvc := service.NewReportService(statsRepo, interventionRepo, export.NewCSVExporter(), export.NewPDFExporter(), logr)

	handlers := handler.Handlers{
		Auth:          handler.NewAuthHandler(authSvc, cfg.SMTP.From),
		Users:         handler.NewUserHandler(userSvc),
		Students:      handler.NewStudentHandler(studentSvc),
		Classes:       handler.NewClassHandler(classSvc),
		Interventions: handler.NewInterventionHandler(interventionSvc),
		Notifications: handler.NewNotificationHandler(notificationSvc),
		Admin:         handler.NewAdminHandler(adminSvc, reportSvc),
	}

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
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	handler.RegisterRoutes(api, handlers, authSvc, cfg.Admin.RequireAuth)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
