package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/princeprakhar/device-catalog/internal/config"
	"github.com/princeprakhar/device-catalog/internal/database"
	"github.com/princeprakhar/device-catalog/pkg/logger"
)

// Backend is an opened store. Redis is set when the store runs on Redis so
// other components (the rate limiter) can share the connection.
type Backend struct {
	Store Store
	Redis *redis.Client
}

// Open connects the store selected by cfg.StoreDriver, wrapped with metrics.
func Open(ctx context.Context, cfg *config.Config) (*Backend, error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		logger.Warn("Using the in-memory record store; data is lost on restart")
		return &Backend{Store: WithMetrics(NewMemoryStore())}, nil

	case config.DriverRedis:
		client, err := NewRedisClient(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		logger.Info("Redis record store connected")
		return &Backend{Store: WithMetrics(NewRedisStore(client)), Redis: client}, nil

	case config.DriverPostgres:
		db, err := database.Init(cfg.DatabaseURL, !cfg.IsProduction())
		if err != nil {
			return nil, fmt.Errorf("connecting to database: %w", err)
		}
		logger.Info("Postgres record store connected")
		return &Backend{Store: WithMetrics(NewGormStore(db))}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
