package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dncoder14/crimewatch-ai/internal/infra"
)

func TestPredictionCache_Warmup(t *testing.T) {
	provider := &countingProvider{}
	c, mr, _ := setupTestCache(t, provider)
	ctx := context.Background()

	require.NoError(t, c.Warmup(ctx))
	assert.True(t, mr.Exists(infra.GetCacheKey("predictions")))
	assert.False(t, mr.Exists(infra.GetLockKey("predictions_warmup")), "lock must be released")

	// Повторный прогрев не трогает провайдера
	require.NoError(t, c.Warmup(ctx))
	assert.Equal(t, int32(1), provider.calls.Load())

	_, err := c.Predict(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), provider.calls.Load())
}

func TestPredictionCache_WarmupLocked(t *testing.T) {
	provider := &countingProvider{}
	c, mr, _ := setupTestCache(t, provider)

	require.NoError(t, mr.Set(infra.GetLockKey("predictions_warmup"), "processing"))

	require.NoError(t, c.Warmup(context.Background()))
	assert.Equal(t, int32(0), provider.calls.Load())
	assert.False(t, mr.Exists(infra.GetCacheKey("predictions")))
}

func TestPredictionCache_ListenInvalidations(t *testing.T) {
	provider := &countingProvider{}
	c, mr, _ := setupTestCache(t, provider)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.ListenInvalidations(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return mr.PubSubNumSub(InvalidationChannel)[InvalidationChannel] == 1
	}, time.Second, 10*time.Millisecond)

	_, err := c.Predict(ctx)
	require.NoError(t, err)

	mr.Publish(InvalidationChannel, "model retrained")

	require.Eventually(t, func() bool {
		return !mr.Exists(infra.GetCacheKey("predictions"))
	}, time.Second, 10*time.Millisecond)

	_, err = c.Predict(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), provider.calls.Load())

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("listener did not stop after cancel")
	}
}
