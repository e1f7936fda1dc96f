package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/sekolah-console/internal/apiclient"
	"github.com/stemsi/sekolah-console/internal/auth"
	"github.com/stemsi/sekolah-console/internal/config"
	"github.com/stemsi/sekolah-console/internal/database"
	"github.com/stemsi/sekolah-console/internal/handler"
	"github.com/stemsi/sekolah-console/internal/logger"
	"github.com/stemsi/sekolah-console/internal/middleware"
	"github.com/stemsi/sekolah-console/internal/model"
	"github.com/stemsi/sekolah-console/internal/notify"
	"github.com/stemsi/sekolah-console/internal/repository"
	"github.com/stemsi/sekolah-console/internal/router"
	"github.com/stemsi/sekolah-console/internal/service"
	"github.com/stemsi/sekolah-console/internal/session"
	"github.com/stemsi/sekolah-console/internal/validator"
	"github.com/stemsi/sekolah-console/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("backend", cfg.APIBaseURL()).
		Msg("Starting Sekolah Console")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to Redis (optional) ───────────────────────────────────
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		var err error
		rdb, err = database.NewRedisClient(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
	} else {
		log.Warn().Msg("REDIS_URL not set: sessions kept in memory, live feed and audit trail off")
	}

	// ─── Connect to PostgreSQL (optional) ──────────────────────────────
	var pool *pgxpool.Pool
	if cfg.DatabaseURL != "" && rdb != nil {
		var err error
		pool, err = database.NewPostgresPool(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer pool.Close()
	}

	// ─── Session Storage ───────────────────────────────────────────────
	var store session.Store = session.NewMemoryStore()
	if rdb != nil {
		store = session.NewRedisStore(rdb, cfg.SessionMaxAge)
	}

	cookies := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	cookies.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.SessionMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   cfg.GinMode == gin.ReleaseMode,
		SameSite: http.SameSiteLaxMode,
	}

	// ─── Notification Feed ─────────────────────────────────────────────
	var (
		publisher  notify.Publisher = notify.Discard{}
		subscriber notify.Subscriber
	)
	if rdb != nil {
		feed := notify.NewFeed(rdb, log)
		publisher, subscriber = feed, feed
	}

	// ─── Initialize Services ──────────────────────────────────────────
	client := apiclient.New(cfg, log)
	manager := auth.NewManager(client, store, log)

	userService := service.NewUserService(client)
	regionService := service.NewRegionService(client)
	classService := service.NewClassService(client)
	subjectService := service.NewSubjectService(client)
	academicSessionService := service.NewAcademicSessionService(client)
	bannerService := service.NewBannerService(client)
	notificationService := service.NewNotificationService(client, publisher, log)
	dashboardService := service.NewDashboardService(regionService, notificationService, bannerService)
	navigationService := service.NewNavigationService(regionService, classService, subjectService)

	// ─── Audit Trail ───────────────────────────────────────────────────
	var (
		auditRecorder middleware.AuditRecorder
		auditReader   handler.AuditReader
		auditDone     = make(chan struct{})
	)
	workerCtx, workerCancel := context.WithCancel(context.Background())
	if pool != nil {
		auditRepo := repository.NewAuditRepository(pool)
		auditRecorder = worker.NewAuditQueue(rdb)
		auditReader = auditRepo
		go worker.NewAuditWorker(auditRepo, rdb, log).Start(workerCtx, auditDone)
	} else {
		close(auditDone)
	}

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:         handler.NewAuthHandler(userService, cookies, cfg.SessionCookie, log),
		Dashboard:    handler.NewDashboardHandler(dashboardService),
		Users:        handler.NewUserHandler(userService),
		Students:     handler.NewRoleUserHandler(userService, model.RoleStudent),
		Teachers:     handler.NewRoleUserHandler(userService, model.RoleTeacher),
		Notification: handler.NewNotificationHandler(notificationService),
		Banner:       handler.NewBannerHandler(bannerService),
		Class:        handler.NewClassHandler(regionService, classService, navigationService, log),
		Subject:      handler.NewSubjectHandler(subjectService),
		Session:      handler.NewSessionHandler(academicSessionService, subjectService),
		Feed:         handler.NewFeedHandler(subscriber, log, cfg.AllowedOrigins),
		Audit:        handler.NewAuditHandler(auditReader),
	}

	loginLimiter := middleware.NewRateLimiter(cfg.LoginRatePerMinute, time.Minute)
	defer loginLimiter.Stop()

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, router.Deps{
		Cookies:      cookies,
		Manager:      manager,
		LoginLimiter: loginLimiter,
		Audit:        auditRecorder,
		Log:          log,
	}, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop the audit worker and wait for the queue to drain.
	workerCancel()
	select {
	case <-auditDone:
	case <-time.After(5 * time.Second):
		log.Warn().Msg("Audit worker did not drain in time")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
