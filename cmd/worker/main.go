package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/IsaacLanzoni/projeto-belezza/internal/config"
	"github.com/IsaacLanzoni/projeto-belezza/internal/repository/postgres"
	internalworker "github.com/IsaacLanzoni/projeto-belezza/internal/worker"
	"github.com/IsaacLanzoni/projeto-belezza/pkg/logger"
	"github.com/IsaacLanzoni/projeto-belezza/pkg/messaging/redis"
	"github.com/IsaacLanzoni/projeto-belezza/pkg/metrics"
	"github.com/IsaacLanzoni/projeto-belezza/pkg/worker"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	lg := logger.NewLogger(nil)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	broker, err := redis.NewRedisBroker(redis.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   cfg.Redis.MaxRetries,
		RetryBackoff: cfg.Redis.RetryBackoff,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer broker.Close()

	m := metrics.NewMetrics("belezza", "worker")

	outboxRepo := postgres.NewOutboxRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)

	processor := worker.NewOutboxProcessor(outboxRepo, broker, worker.OutboxProcessorConfig{
		BatchSize:     cfg.Worker.OutboxBatchSize,
		PollInterval:  cfg.Worker.OutboxPollInterval,
		RetryAttempts: 3,
		RetryDelay:    5 * time.Second,
	}, lg, m)

	sweeper := internalworker.NewCompletionSweeper(appointmentRepo, cfg.Worker.CompletionInterval, lg, m)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go processor.Start(ctx)
	go sweeper.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down workers...")
	cancel()
}
