package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/softpaws/bazaar/internal/config"
	"github.com/softpaws/bazaar/internal/database"
	"github.com/softpaws/bazaar/internal/database/postgres"
	"github.com/softpaws/bazaar/internal/event"
	"github.com/softpaws/bazaar/internal/exchange"
	"github.com/softpaws/bazaar/internal/feed"
	"github.com/softpaws/bazaar/internal/handler"
	"github.com/softpaws/bazaar/internal/market"
	"github.com/softpaws/bazaar/internal/metrics"
	"github.com/softpaws/bazaar/internal/server"
	"github.com/softpaws/bazaar/internal/sse"
)

const (
	dbMaxConns        = 10
	dbMaxConnIdleTime = 5 * time.Minute
	dbMaxConnLifetime = 30 * time.Minute

	eventMaxRetries     = 3
	eventRetryDelay     = 500 * time.Millisecond
	eventDeadLetterPath = "data/events.deadletter.jsonl"

	shutdownTimeout = 10 * time.Second
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	initLogger(cfg)
	handler.InitValidator()

	// Connect to the database
	pool, err := database.NewPool(cfg.GetDBConnString(), dbMaxConns, dbMaxConnIdleTime, dbMaxConnLifetime)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	repo := postgres.NewExchangeRepository(pool)

	// Event system: in-memory bus wrapped in a resilient publisher
	bus := event.NewMemoryBus()
	publisher := event.NewResilientPublisher(bus, event.ResilientConfig{
		MaxRetries:     eventMaxRetries,
		RetryDelay:     eventRetryDelay,
		DeadLetterPath: eventDeadLetterPath,
	})
	metrics.NewEventMetricsCollector().Register(bus)

	// Services
	exchangeService := exchange.NewService(repo, publisher)
	marketService, err := market.NewService(repo, cfg.PageSize)
	if err != nil {
		log.Fatalf("Failed to create market service: %v", err)
	}

	// Change feed: SSE hub plus optional Redis fanout
	hub := sse.NewHub()
	hub.Start()

	var redisClient feed.RedisPublisher
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		slog.Info("Redis change-feed fanout enabled", "addr", cfg.RedisAddr)
	}

	changeFeed := feed.New(bus, hub, redisClient, feed.DefaultConfig(), marketService.Invalidate)
	changeFeed.Subscribe()
	changeFeed.Start()

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, pool, exchangeService, marketService, hub)

	// Run the server until interrupted
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	select {
	case err := <-serverErr:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	case <-ctx.Done():
	}

	// Graceful shutdown: stop accepting requests, then drain the feed and hub
	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		slog.Error("Server forced shutdown", "error", err)
	}
	changeFeed.Stop()
	hub.Stop()

	slog.Info("Server stopped")
}
