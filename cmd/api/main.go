package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/service-center/internal/audit"
	"github.com/BruksfildServices01/service-center/internal/config"
	dbpkg "github.com/BruksfildServices01/service-center/internal/db"
	infraRepo "github.com/BruksfildServices01/service-center/internal/infra/repository"
	"github.com/BruksfildServices01/service-center/internal/invoice"
	"github.com/BruksfildServices01/service-center/internal/notify"
	"github.com/BruksfildServices01/service-center/internal/outbox"
	"github.com/BruksfildServices01/service-center/internal/payment"
	"github.com/BruksfildServices01/service-center/internal/redisx"
	"github.com/BruksfildServices01/service-center/internal/routes"
	"github.com/BruksfildServices01/service-center/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file, using environment")
	}

	cfg := config.Load()
	setupLogging(cfg)

	db := dbpkg.NewDB(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// AUDIT
	// ======================================================
	auditDispatcher := audit.NewDispatcher(audit.New(db))

	// ======================================================
	// OUTBOX
	// ======================================================
	var notifier outbox.Notifier = notify.NewLogNotifier(logrus.StandardLogger())
	var kafkaNotifier *notify.KafkaNotifier
	if len(cfg.KafkaBrokers) > 0 {
		kafkaNotifier = notify.NewKafkaNotifier(cfg.KafkaBrokers, cfg.NotificationTopic)
		notifier = kafkaNotifier
	}

	opts := outbox.Options{
		PollInterval: cfg.OutboxPollInterval,
		MaxAttempts:  cfg.OutboxMaxAttempts,
		ClaimLease:   cfg.OutboxClaimLease,
	}
	if archive := storage.NewS3Archive(cfg); archive != nil {
		opts.Archive = archive
	}
	mp, err := payment.NewMercadoPago(cfg.MercadoPagoToken)
	if err != nil {
		logrus.WithError(err).Warn("mercadopago disabled")
	} else if mp != nil {
		opts.Payments = mp
	}

	worker := outbox.NewWorker(
		infraRepo.NewOutboxGormRepository(db),
		notifier,
		invoice.NewTextRenderer("Service Center"),
		opts,
	)
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		worker.Run(ctx)
	}()

	deps := routes.Deps{
		Audit:  auditDispatcher,
		Outbox: worker,
	}

	// ======================================================
	// REDIS (optional)
	// ======================================================
	if cfg.RedisAddr != "" {
		rdb := redisx.New(cfg.RedisAddr)
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			logrus.WithError(err).Warn("redis unreachable, idempotency keys will degrade")
		}
		deps.Idempotency = redisx.NewIdempotencyStore(rdb)
	}

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.WithField("addr", cfg.Addr()).Info("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("failed to start server")
		}
	}()

	<-ctx.Done()
	logrus.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("http shutdown")
	}
	<-workerDone
	if err := auditDispatcher.Close(shutdownCtx); err != nil {
		logrus.WithError(err).Warn("audit events dropped on shutdown")
	}
	if kafkaNotifier != nil {
		if err := kafkaNotifier.Close(); err != nil {
			logrus.WithError(err).Warn("close kafka writer")
		}
	}
}

func setupLogging(cfg *config.Config) {
	logrus.SetFormatter(&logrus.JSONFormatter{})

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if level == logrus.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
}
