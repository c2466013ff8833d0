package crimedata

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dncoder14/crimewatch-ai/internal/domain"
)

// DefaultPredictionDelay имитирует сетевой запрос к модели.
const DefaultPredictionDelay = 800 * time.Millisecond

// ErrPredictionTimeout возвращается, только если задан таймаут меньше задержки.
var ErrPredictionTimeout = errors.New("prediction timed out")

type Predictor struct {
	delay   time.Duration
	timeout time.Duration // 0: без таймаута
}

type PredictorOption func(*Predictor)

func WithDelay(d time.Duration) PredictorOption {
	return func(p *Predictor) {
		if d < 0 {
			d = 0
		}
		p.delay = d
	}
}

func WithPredictionTimeout(d time.Duration) PredictorOption {
	return func(p *Predictor) {
		if d < 0 {
			d = 0
		}
		p.timeout = d
	}
}

func NewPredictor(opts ...PredictorOption) *Predictor {
	p := &Predictor{delay: DefaultPredictionDelay}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Predictor) Delay() time.Duration { return p.delay }

// Predict блокируется на время задержки и возвращает прогноз.
// Отмена ctx до истечения задержки возвращает ctx.Err() без результата.
func (p *Predictor) Predict(ctx context.Context) (*domain.PredictionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	wait, timedOut := p.delay, false
	if p.timeout > 0 && p.timeout < p.delay {
		wait, timedOut = p.timeout, true
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	// Отмена могла прийти одновременно с таймером
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if timedOut {
		return nil, ErrPredictionTimeout
	}
	return Predictions(), nil
}

// PendingPrediction: запущенный прогноз, который можно бросить.
type PendingPrediction struct {
	cancel    context.CancelFunc
	cancelled atomic.Bool
	done      chan struct{}
	once      sync.Once

	result *domain.PredictionResult
	err    error
}

// Provider: все, что умеет отдавать прогноз с учетом ctx.
type Provider interface {
	Predict(ctx context.Context) (*domain.PredictionResult, error)
}

// Start запускает Predict в отдельной горутине и сразу возвращает управление.
func (p *Predictor) Start(ctx context.Context) *PendingPrediction {
	return StartPrediction(ctx, p)
}

// StartPrediction делает то же самое для любого Provider, например
// обернутого кэшем или ретраями.
func StartPrediction(ctx context.Context, provider Provider) *PendingPrediction {
	ctx, cancel := context.WithCancel(ctx)
	pp := &PendingPrediction{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(pp.done)
		defer cancel()
		pp.result, pp.err = provider.Predict(ctx)
	}()

	return pp
}

// Done закрывается, когда горутина прогноза завершилась.
func (pp *PendingPrediction) Done() <-chan struct{} {
	return pp.done
}

// Cancel отказывается от результата. После Cancel метод Result никогда
// не отдает прогноз, даже если таймер уже успел сработать.
func (pp *PendingPrediction) Cancel() {
	pp.once.Do(func() {
		pp.cancelled.Store(true)
		pp.cancel()
	})
}

// Result ждет завершения прогноза.
func (pp *PendingPrediction) Result() (*domain.PredictionResult, error) {
	<-pp.done
	if pp.cancelled.Load() {
		return nil, context.Canceled
	}
	return pp.result, pp.err
}

// Predictions: фикстура прогноза без задержки.
func Predictions() *domain.PredictionResult {
	return &domain.PredictionResult{
		PredictedHotspots: []domain.PredictedHotspot{
			{Name: "Downtown", Likelihood: 0.82, RiskLevel: domain.RiskHigh, Latitude: 34.0522, Longitude: -118.2437},
			{Name: "Westside", Likelihood: 0.67, RiskLevel: domain.RiskMedium, Latitude: 34.0422, Longitude: -118.2937},
			{Name: "Harbor Area", Likelihood: 0.59, RiskLevel: domain.RiskMedium, Latitude: 34.0322, Longitude: -118.2837},
		},
		PredictedIncreaseFraction: 0.12,
		CategoryDistribution: map[string]float64{
			domain.CategoryRobbery.Key():  0.24,
			domain.CategoryTheft.Key():    0.37,
			domain.CategoryAssault.Key():  0.19,
			domain.CategoryBurglary.Key(): 0.20,
		},
		RecommendedPatrols: []domain.PatrolRecommendation{
			{Area: "Downtown", TimeWindow: "10:00 PM - 2:00 AM", Priority: domain.RiskHigh},
			{Area: "Westside", TimeWindow: "11:00 PM - 3:00 AM", Priority: domain.RiskMedium},
			{Area: "Harbor Area", TimeWindow: "9:00 PM - 1:00 AM", Priority: domain.RiskMedium},
		},
	}
}
