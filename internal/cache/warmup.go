package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/dncoder14/crimewatch-ai/internal/infra"
)

const warmupLockTTL = 30 * time.Second

// Warmup заранее прогревает L2 кэш прогнозов, чтобы первый запрос
// не ждал имитацию модели.
func (c *PredictionCache) Warmup(ctx context.Context) error {
	// 1. Распределенная блокировка (SetNX), чтобы только один инстанс ходил в провайдер
	lockKey := infra.GetLockKey("predictions_warmup")
	ok, err := c.rdb.SetNX(ctx, lockKey, "processing", warmupLockTTL).Result()
	if err != nil {
		return err
	}
	if !ok {
		c.logger.Debug("warm-up already in progress on another instance")
		return nil
	}
	defer c.rdb.Del(context.WithoutCancel(ctx), lockKey)

	// 2. Проверка наполненности Redis
	if _, err := c.get(ctx); err == nil {
		return nil
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("could not read cached prediction, proceeding with warm-up", zap.Error(err))
	}

	// 3. Кэш пуст: заливаем
	res, err := c.next.Predict(ctx)
	if err != nil {
		return err
	}
	c.logger.Info("prediction cache is empty, performing warm-up", zap.String("key", c.key))
	return c.set(ctx, res)
}
