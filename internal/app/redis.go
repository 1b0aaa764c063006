package app

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/saikiran-1508/chronicle/internal/config"
)

var globalRedisClient *redis.Client

// ConnectRedis is non-fatal: Redis only backs preferences and chat history,
// both of which degrade to defaults without it.
func ConnectRedis() {
	cfg := config.Global().Redis
	if cfg.URL == "" {
		globalLogger.Warn().Msg("redis not configured, preferences degrade to defaults")
		return
	}

	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		globalLogger.Warn().
			Err(err).
			Msg("failed to parse redis url, continuing without redis")
		return
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.PingTimeout)
	defer cancel()

	err = client.Ping(ctx).Err()
	if err != nil {
		globalLogger.Warn().
			Err(err).
			Msg("failed to ping redis, continuing without redis")
		_ = client.Close()
		return
	}

	globalRedisClient = client
	globalLogger.Info().Msg("connected to redis")
}

func DisconnectRedis() {
	if globalRedisClient == nil {
		return
	}
	_ = globalRedisClient.Close()
	globalLogger.Info().Msg("disconnected from redis")
}
