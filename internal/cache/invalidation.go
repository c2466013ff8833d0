package cache

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/dncoder14/crimewatch-ai/internal/infra"
)

// InvalidationChannel: канал, в который публикуется сигнал сброса прогнозов.
var InvalidationChannel = infra.GetEventChannel("predictions_refresh")

const (
	resubscribeDelay = time.Second
	subscribeBackoff = 5 * time.Second
)

// ListenInvalidations: "живучая" подписка на сигналы сброса кэша.
// Переподписывается при обрыве, блокирует до отмены ctx.
func (c *PredictionCache) ListenInvalidations(ctx context.Context) {
	for {
		pubsub := c.rdb.Subscribe(ctx, InvalidationChannel)

		// Проверка успешности подписки
		if _, err := pubsub.Receive(ctx); err != nil {
			pubsub.Close()
			if ctx.Err() != nil {
				return
			}
			c.logger.Error("failed to subscribe", zap.String("chan", InvalidationChannel), zap.Error(err))
			if !sleepCtx(ctx, subscribeBackoff) {
				return
			}
			continue
		}

		// Пока нас не было, сигнал мог пройти мимо
		if err := c.Invalidate(ctx); err != nil && ctx.Err() == nil {
			c.logger.Error("invalidate on reconnect failed", zap.Error(err))
		}

		ch := pubsub.Channel()

	loop:
		for {
			select {
			case <-ctx.Done():
				pubsub.Close()
				return
			case msg, ok := <-ch:
				if !ok {
					break loop // Канал закрыт, идем на переподключение
				}
				if err := c.Invalidate(ctx); err != nil {
					c.logger.Error("invalidate failed", zap.Error(err))
					continue
				}
				c.logger.Info("prediction cache invalidated", zap.String("reason", msg.Payload))
			}
		}

		pubsub.Close()
		if !sleepCtx(ctx, resubscribeDelay) {
			return
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
