package valkey

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/redis/go-redis/v9"

	"github.com/alexmorbo/slack-notifier/domain/recipient"
	"github.com/alexmorbo/slack-notifier/pkg/logger"
)

const keyPrefix = "slacknotifier:route:"

var (
	redisSetOK  = metrics.NewCounter(`redis_operations_total{operation="set",status="ok"}`)
	redisSetErr = metrics.NewCounter(`redis_operations_total{operation="set",status="error"}`)
	redisSetDur = metrics.NewHistogram(`redis_operation_duration_seconds{operation="set"}`)

	redisGetOK   = metrics.NewCounter(`redis_operations_total{operation="get",status="ok"}`)
	redisGetErr  = metrics.NewCounter(`redis_operations_total{operation="get",status="error"}`)
	redisGetMiss = metrics.NewCounter(`redis_operations_total{operation="get",status="miss"}`)
	redisGetDur  = metrics.NewHistogram(`redis_operation_duration_seconds{operation="get"}`)

	redisDelOK   = metrics.NewCounter(`redis_operations_total{operation="del",status="ok"}`)
	redisDelErr  = metrics.NewCounter(`redis_operations_total{operation="del",status="error"}`)
	redisDelMiss = metrics.NewCounter(`redis_operations_total{operation="del",status="miss"}`)
)

type routeData struct {
	Route     string    `json:"route"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RouteRepository keeps recipient routes in Valkey/Redis without expiry.
type RouteRepository struct {
	client *redis.Client
	logger *slog.Logger
}

func NewRouteRepository(client *redis.Client, logger *slog.Logger) *RouteRepository {
	return &RouteRepository{
		client: client,
		logger: logger,
	}
}

func (r *RouteRepository) Save(ctx context.Context, route *recipient.Route) error {
	key := keyPrefix + route.Recipient()
	start := time.Now()

	jsonData, err := json.Marshal(routeData{Route: route.Value(), UpdatedAt: route.UpdatedAt()})
	if err != nil {
		return fmt.Errorf("marshal route data: %w", err)
	}

	if err := r.client.Set(ctx, key, jsonData, 0).Err(); err != nil {
		duration := time.Since(start).Milliseconds()
		r.logger.Error("Redis SET failed",
			logger.RedisFieldsWithError("set", key, duration, err.Error()),
		)
		redisSetErr.Inc()
		return fmt.Errorf("redis set: %w", err)
	}

	duration := time.Since(start).Milliseconds()
	r.logger.Debug("Redis SET completed",
		logger.RedisFields("set", key, duration),
	)
	redisSetOK.Inc()
	redisSetDur.Update(float64(duration) / 1000)

	return nil
}

func (r *RouteRepository) Find(ctx context.Context, name string) (*recipient.Route, error) {
	key := keyPrefix + name
	start := time.Now()

	result, err := r.client.Get(ctx, key).Result()
	if err != nil {
		duration := time.Since(start).Milliseconds()
		if errors.Is(err, redis.Nil) {
			r.logger.Debug("Redis GET miss",
				logger.RedisFields("get", key, duration),
			)
			redisGetMiss.Inc()
			return nil, recipient.ErrNotFound
		}
		r.logger.Error("Redis GET failed",
			logger.RedisFieldsWithError("get", key, duration, err.Error()),
		)
		redisGetErr.Inc()
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var data routeData
	if err := json.Unmarshal([]byte(result), &data); err != nil {
		return nil, fmt.Errorf("unmarshal route data: %w", err)
	}

	duration := time.Since(start).Milliseconds()
	r.logger.Debug("Redis GET completed",
		logger.RedisFields("get", key, duration),
	)
	redisGetOK.Inc()
	redisGetDur.Update(float64(duration) / 1000)

	return recipient.RestoreRoute(name, data.Route, data.UpdatedAt), nil
}

// Delete removes the route. Deleting an unknown recipient returns recipient.ErrNotFound.
func (r *RouteRepository) Delete(ctx context.Context, name string) error {
	key := keyPrefix + name
	start := time.Now()

	n, err := r.client.Del(ctx, key).Result()
	if err != nil {
		duration := time.Since(start).Milliseconds()
		r.logger.Error("Redis DEL failed",
			logger.RedisFieldsWithError("del", key, duration, err.Error()),
		)
		redisDelErr.Inc()
		return fmt.Errorf("redis del: %w", err)
	}

	duration := time.Since(start).Milliseconds()
	if n == 0 {
		r.logger.Debug("Redis DEL miss",
			logger.RedisFields("del", key, duration),
		)
		redisDelMiss.Inc()
		return recipient.ErrNotFound
	}

	r.logger.Debug("Redis DEL completed",
		logger.RedisFields("del", key, duration),
	)
	redisDelOK.Inc()

	return nil
}

func (r *RouteRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
