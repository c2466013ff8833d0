package engine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/dncoder14/crimewatch-ai/internal/crimedata"
	"github.com/dncoder14/crimewatch-ai/internal/domain"
	"github.com/dncoder14/crimewatch-ai/internal/infra"
)

// flakyProvider падает failures раз, затем отдает фикстуру.
type flakyProvider struct {
	calls    atomic.Int32
	failures int32
	err      error
}

func (p *flakyProvider) Predict(ctx context.Context) (*domain.PredictionResult, error) {
	n := p.calls.Add(1)
	if n <= p.failures {
		return nil, p.err
	}
	return crimedata.Predictions(), nil
}

func testReliabilityConfig() infra.ReliabilityConfig {
	return infra.ReliabilityConfig{
		RateLimit:     1000,
		RateBurst:     100,
		RetryAttempts: 3,
		RetryDelay:    time.Millisecond,
		CBMaxRequests: 1,
		CBInterval:    time.Minute,
		CBTimeout:     time.Minute,
		CBMaxFailures: 5,
	}
}

func TestReliabilityWrapper_PassThrough(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())
	provider := &flakyProvider{}
	w := NewReliabilityWrapper(provider, testReliabilityConfig(), metrics, zaptest.NewLogger(t))

	res, err := w.Predict(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Downtown", res.PredictedHotspots[0].Name)
	assert.Equal(t, int32(1), provider.calls.Load())
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.PredictionDuration))
}

func TestReliabilityWrapper_RetriesTransientErrors(t *testing.T) {
	provider := &flakyProvider{failures: 2, err: errors.New("model backend unavailable")}
	w := NewReliabilityWrapper(provider, testReliabilityConfig(), nil, zaptest.NewLogger(t))

	res, err := w.Predict(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, res)
	assert.Equal(t, int32(3), provider.calls.Load())
}

func TestReliabilityWrapper_NoRetryOnInvalidArgument(t *testing.T) {
	provider := &flakyProvider{failures: 10, err: &domain.InvalidArgumentError{Field: "area", Value: "", Reason: "empty"}}
	w := NewReliabilityWrapper(provider, testReliabilityConfig(), nil, zaptest.NewLogger(t))

	_, err := w.Predict(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
	assert.Equal(t, int32(1), provider.calls.Load())
}

func TestReliabilityWrapper_BreakerOpens(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())
	cfg := testReliabilityConfig()
	cfg.RetryAttempts = 1
	cfg.CBMaxFailures = 1 // открываемся на второй подряд ошибке

	provider := &flakyProvider{failures: 100, err: errors.New("boom")}
	w := NewReliabilityWrapper(provider, cfg, metrics, zaptest.NewLogger(t))

	for i := 0; i < 2; i++ {
		_, err := w.Predict(context.Background())
		require.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateOpen, w.State())

	_, err := w.Predict(context.Background())
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, int32(2), provider.calls.Load())
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ErrorTotal.WithLabelValues("breaker_open")))
	assert.Equal(t, float64(gobreaker.StateOpen), testutil.ToFloat64(metrics.CircuitBreakerState.WithLabelValues(providerName)))
}

func TestReliabilityWrapper_CancellationIsNotAFailure(t *testing.T) {
	cfg := testReliabilityConfig()
	cfg.CBMaxFailures = 1
	w := NewReliabilityWrapper(crimedata.NewPredictor(crimedata.WithDelay(time.Hour)), cfg, nil, zaptest.NewLogger(t))

	for i := 0; i < 5; i++ {
		ctx, cancel := context.WithCancel(context.Background())
		timer := time.AfterFunc(2*time.Millisecond, cancel)
		_, err := w.Predict(ctx)
		timer.Stop()
		cancel()
		assert.ErrorIs(t, err, context.Canceled)
	}

	// Клиенты уходили, но провайдер не отказывал
	assert.Equal(t, gobreaker.StateClosed, w.State())
}

func TestReliabilityWrapper_CallTimeout(t *testing.T) {
	cfg := testReliabilityConfig()
	cfg.RetryAttempts = 2
	cfg.CallTimeout = 10 * time.Millisecond

	w := NewReliabilityWrapper(crimedata.NewPredictor(crimedata.WithDelay(time.Hour)), cfg, nil, zaptest.NewLogger(t))

	start := time.Now()
	_, err := w.Predict(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}
