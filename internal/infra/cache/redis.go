package cache

import (
	"github.com/iris-hq/iris-os/internal/config"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
)

func New(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
}

// RegisterOpenTelemetryPlugin enables tracing on the Redis client. Called
// after the tracer provider is set up.
func RegisterOpenTelemetryPlugin(rdb *redis.Client) error {
	return redisotel.InstrumentTracing(rdb)
}
