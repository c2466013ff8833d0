package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/dncoder14/crimewatch-ai/internal/domain"
	"github.com/dncoder14/crimewatch-ai/internal/engine"
	"github.com/dncoder14/crimewatch-ai/internal/infra"
)

// PredictionCache: L2 кэш прогнозов в Redis поверх любого провайдера.
// Прогноз это фикстура, поэтому кэш не меняет содержимое ответа, а только
// экономит задержку имитации.
type PredictionCache struct {
	next    engine.PredictionProvider
	rdb     *redis.Client
	key     string
	ttl     time.Duration
	metrics *engine.Metrics
	logger  *zap.Logger
}

func NewPredictionCache(next engine.PredictionProvider, rdb *redis.Client, ttl time.Duration, metrics *engine.Metrics, logger *zap.Logger) *PredictionCache {
	if metrics == nil {
		metrics = engine.NewMetrics(nil)
	}
	return &PredictionCache{
		next:    next,
		rdb:     rdb,
		key:     infra.GetCacheKey("predictions"),
		ttl:     ttl,
		metrics: metrics,
		logger:  logger.Named("prediction-cache"),
	}
}

// Predict реализует engine.PredictionProvider.
func (c *PredictionCache) Predict(ctx context.Context) (*domain.PredictionResult, error) {
	// 1. L2 (Redis)
	cached, err := c.get(ctx)
	switch {
	case err == nil:
		c.metrics.CacheResults.WithLabelValues("hit").Inc()
		return cached, nil
	case errors.Is(err, redis.Nil):
		c.metrics.CacheResults.WithLabelValues("miss").Inc()
	default:
		// Redis недоступен: работаем напрямую, кэш не критичен
		c.metrics.CacheResults.WithLabelValues("error").Inc()
		c.logger.Warn("cache read failed, falling back to provider", zap.Error(err))
	}

	// 2. Провайдер
	res, err := c.next.Predict(ctx)
	if err != nil {
		return nil, err
	}

	// 3. Заливаем в кэш, ошибку записи не пробрасываем
	if err := c.set(ctx, res); err != nil {
		c.logger.Warn("cache write failed", zap.String("key", c.key), zap.Error(err))
	}
	return res, nil
}

// Invalidate удаляет закэшированный прогноз.
func (c *PredictionCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, c.key).Err()
}

func (c *PredictionCache) get(ctx context.Context) (*domain.PredictionResult, error) {
	data, err := c.rdb.Get(ctx, c.key).Bytes()
	if err != nil {
		return nil, err
	}

	var res domain.PredictionResult
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("cache: corrupted prediction payload: %w", err)
	}
	return &res, nil
}

func (c *PredictionCache) set(ctx context.Context, res *domain.PredictionResult) error {
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("cache: failed to marshal prediction: %w", err)
	}
	return c.rdb.Set(ctx, c.key, data, c.ttl).Err()
}
