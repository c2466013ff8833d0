package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avast/retry-go/v5"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/dncoder14/crimewatch-ai/internal/domain"
	"github.com/dncoder14/crimewatch-ai/internal/infra"
)

const providerName = "prediction-provider"

// ErrRateLimited: лимитер не дождался токена до отмены контекста.
var ErrRateLimited = errors.New("rate limit exceeded")

// PredictionProvider: источник прогноза. Реализуется crimedata.Predictor.
type PredictionProvider interface {
	Predict(ctx context.Context) (*domain.PredictionResult, error)
}

type ReliabilityWrapper struct {
	next     PredictionProvider
	cb       *gobreaker.CircuitBreaker
	limiter  *rate.Limiter
	attempts uint
	delay    time.Duration
	timeout  time.Duration
	metrics  *Metrics
	logger   *zap.Logger
}

func NewReliabilityWrapper(next PredictionProvider, cfg infra.ReliabilityConfig, metrics *Metrics, logger *zap.Logger) *ReliabilityWrapper {
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	logger = logger.Named("reliability")

	maxFailures := cfg.CBMaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}

	// Настройка предохранителя
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        providerName,
		MaxRequests: cfg.CBMaxRequests,
		Interval:    cfg.CBInterval,
		Timeout:     cfg.CBTimeout, // Время, через которое CB попробует "закрыться"
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > maxFailures
		},
		// Клиент ушел: это не отказ провайдера
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
			logger.Warn("circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	limit := rate.Limit(cfg.RateLimit)
	if cfg.RateLimit <= 0 {
		limit = rate.Inf
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 1
	}

	attempts := cfg.RetryAttempts
	if attempts == 0 {
		attempts = 1
	}

	return &ReliabilityWrapper{
		next:     next,
		cb:       cb,
		limiter:  rate.NewLimiter(limit, burst),
		attempts: attempts,
		delay:    cfg.RetryDelay,
		timeout:  cfg.CallTimeout,
		metrics:  metrics,
		logger:   logger,
	}
}

func (w *ReliabilityWrapper) Predict(ctx context.Context) (*domain.PredictionResult, error) {
	// 1. Rate Limiter
	if err := w.limiter.Wait(ctx); err != nil {
		w.metrics.ErrorTotal.WithLabelValues("rate_limit").Inc()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrRateLimited, err)
	}

	start := time.Now()
	defer func() {
		w.metrics.PredictionDuration.Observe(time.Since(start).Seconds())
	}()

	// 2. Circuit Breaker
	cbResult, err := w.cb.Execute(func() (interface{}, error) {
		var result *domain.PredictionResult

		opts := []retry.Option{
			retry.Context(ctx),
			retry.Attempts(w.attempts),
			retry.LastErrorOnly(true),
			// Ретраим только пока вызывающий ждет и аргументы валидны
			retry.RetryIf(func(err error) bool {
				return ctx.Err() == nil && !errors.Is(err, domain.ErrInvalidArgument)
			}),
			retry.OnRetry(func(n uint, err error) {
				w.logger.Debug("retrying prediction", zap.Uint("attempt", n+1), zap.Error(err))
			}),
		}
		if w.delay > 0 {
			opts = append(opts, retry.Delay(w.delay))
		}

		retryErr := retry.New(opts...).Do(func() error {
			callCtx := ctx
			if w.timeout > 0 {
				var cancel context.CancelFunc
				callCtx, cancel = context.WithTimeout(ctx, w.timeout)
				defer cancel()
			}

			var callErr error
			result, callErr = w.next.Predict(callCtx)
			return callErr
		})

		return result, retryErr
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			w.metrics.ErrorTotal.WithLabelValues("breaker_open").Inc()
		}
		return nil, err
	}

	return cbResult.(*domain.PredictionResult), nil
}

// State отдает текущее состояние предохранителя (для тестов и health).
func (w *ReliabilityWrapper) State() gobreaker.State {
	return w.cb.State()
}
