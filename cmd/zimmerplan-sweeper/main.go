package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"zimmerplan/internal/config"
	"zimmerplan/internal/store/postgres"
)

// Housekeeping binary: soft-deleted bookings are kept for a retention window
// so cancellations can be inspected, then physically removed here.
func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})).With(
		slog.String("service", "zimmerplan-sweeper"),
	)
	slog.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		log.Error("config load failed", slog.Any("err", err))
		os.Exit(1)
	}

	db, err := postgres.Open(cfg.DatabaseURL, postgres.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		ConnMaxIdleTime: cfg.DBConnMaxIdleTime,
	})
	if err != nil {
		log.Error("database connection failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer func() {
		if err := postgres.Close(db); err != nil {
			log.Warn("database close failed", slog.Any("err", err))
		}
	}()

	repo := postgres.NewBookingRepo(db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("sweeper started",
		slog.Duration("interval", cfg.PurgeInterval),
		slog.Duration("retention", cfg.PurgeRetention),
	)

	purge(ctx, repo, cfg.PurgeRetention, log)

	ticker := time.NewTicker(cfg.PurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("shutdown signal received")
			return
		case <-ticker.C:
			purge(ctx, repo, cfg.PurgeRetention, log)
		}
	}
}

func purge(ctx context.Context, repo *postgres.BookingRepo, retention time.Duration, log *slog.Logger) {
	purged, err := repo.PurgeSoftDeleted(ctx, retention)
	if err != nil {
		log.Warn("purge failed", slog.Any("err", err))
		return
	}
	if purged > 0 {
		log.Info("purged soft-deleted bookings", slog.Int64("count", purged))
	}
}
