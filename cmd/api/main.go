package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/BruksfildServices01/med-directory/internal/audit"
	"github.com/BruksfildServices01/med-directory/internal/config"
	dbpkg "github.com/BruksfildServices01/med-directory/internal/db"
	infraRepo "github.com/BruksfildServices01/med-directory/internal/infra/repository"
	"github.com/BruksfildServices01/med-directory/internal/jobs"
	"github.com/BruksfildServices01/med-directory/internal/logging"
	"github.com/BruksfildServices01/med-directory/internal/mail"
	"github.com/BruksfildServices01/med-directory/internal/metrics"
	"github.com/BruksfildServices01/med-directory/internal/otp"
	"github.com/BruksfildServices01/med-directory/internal/routes"
	"github.com/BruksfildServices01/med-directory/internal/storage"
	ucReview "github.com/BruksfildServices01/med-directory/internal/usecase/review"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	logger := logging.NewLogger(logging.Config{
		ServiceName: "med-directory",
		Environment: cfg.AppEnv,
		Level:       cfg.LogLevel,
	})
	slog.SetDefault(logger)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	metrics.MustRegister(prometheus.DefaultRegisterer)

	// ======================================================
	// COLLABORATORS
	// ======================================================
	otpStore, closeOTP := newOTPStore(cfg)
	defer closeOTP()

	dispatcher := audit.NewDispatcher(audit.New(db))
	defer dispatcher.Close()

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		DB:      db,
		Config:  cfg,
		OTP:     otpStore,
		Mailer:  mail.New(cfg),
		Storage: storage.New(cfg),
		Audit:   dispatcher,
	})

	// ======================================================
	// JOBS
	// ======================================================
	scheduler := jobs.NewScheduler()
	aggregator := ucReview.NewAggregator(infraRepo.NewReviewGormRepository(db), dispatcher)
	if err := scheduler.AddRatingReconcile(cfg.RatingReconcileSpec, aggregator); err != nil {
		slog.Error("invalid RATING_RECONCILE_SPEC", "spec", cfg.RatingReconcileSpec, "error", err)
		os.Exit(1)
	}
	scheduler.Start()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server running",
			"addr", srv.Addr,
			"storage", cfg.StorageEnabled(),
			"mail", cfg.MailEnabled(),
			"otp_store", cfg.OTPStore,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
	scheduler.Stop(ctx)
}

// newOTPStore picks the shared redis store when OTP_STORE=redis so several
// API replicas see the same pending codes.
func newOTPStore(cfg *config.Config) (otp.Store, func()) {
	if cfg.OTPStore != "redis" {
		return otp.NewMemoryStore(), func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		slog.Error("redis unreachable", "addr", cfg.RedisAddr, "error", err)
		os.Exit(1)
	}

	return otp.NewRedisStore(client), func() {
		if err := client.Close(); err != nil {
			slog.Warn("redis close failed", "error", err)
		}
	}
}
