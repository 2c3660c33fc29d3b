package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spacesedan/sentiscore/config"
	"github.com/spacesedan/sentiscore/internal/bus"
	"github.com/spacesedan/sentiscore/internal/clients/kafka_client"
	"github.com/spacesedan/sentiscore/internal/handlers"
	"github.com/spacesedan/sentiscore/internal/lexicon"
	"github.com/spacesedan/sentiscore/internal/logging"
	"github.com/spacesedan/sentiscore/internal/metrics"
	"github.com/spacesedan/sentiscore/internal/monitoring"
	"github.com/spacesedan/sentiscore/internal/sentiment"
	"github.com/spacesedan/sentiscore/internal/store"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)

	cfg, err := config.Load(nil)
	if err != nil {
		slog.Error("[Main] Failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logging.InitLogger(cfg.LogLevel)

	// The lexicon must load before anything subscribes.
	lex, err := lexicon.LoadFile(cfg.LexiconPath)
	if err != nil {
		slog.Error("[Main] Failed to load lexicon", slog.String("error", err.Error()))
		os.Exit(1)
	}
	metrics.LexiconEntries.Set(float64(lex.Len()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, lex); err != nil {
		slog.Error("[Main] Worker stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.Info("[Main] Worker stopped")
}

func run(ctx context.Context, cfg config.Config, lex *lexicon.Lexicon) error {
	gateway, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer gateway.Close()

	var producer *kafka_client.Producer
	for {
		producer, err = kafka_client.NewProducer(cfg.Kafka)
		if err == nil {
			break
		}

		slog.Warn("Kafka init failed, retrying...", slog.String("error", err.Error()))
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(5 * time.Second):
		}
	}
	defer producer.Close()

	consumer, err := kafka_client.NewConsumer(cfg.Kafka, cfg.Kafka.RequestTopic)
	if err != nil {
		return err
	}
	defer consumer.Close()

	storeHealthy := &atomic.Bool{}
	monitoring.CheckStoreHealth(ctx, gateway, storeHealthy)
	go monitoring.MonitorStoreHealth(ctx, gateway, storeHealthy, cfg.HealthcheckInterval)

	ops := monitoring.NewServer(cfg.HTTPAddr, storeHealthy)
	go func() {
		if err := ops.Start(); err != nil {
			slog.Error("[Main] Ops server failed", slog.String("error", err.Error()))
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = ops.Shutdown(shutdownCtx)
	}()

	handler := handlers.NewCalculateHandler(sentiment.NewScorer(lex), gateway)
	dispatcher := bus.NewDispatcher(handler, producer)

	return kafka_client.Serve(ctx, consumer, dispatcher)
}
