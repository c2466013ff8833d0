package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// Latency: время обработки HTTP-запроса
	RequestDuration *prometheus.HistogramVec

	// Traffic: общее кол-во запросов по маршрутам
	TotalRequests *prometheus.CounterVec

	// Errors: классификация отказов
	ErrorTotal *prometheus.CounterVec

	// Saturation: состояние Circuit Breaker (0 - closed, 1 - half-open, 2 - open)
	CircuitBreakerState *prometheus.GaugeVec

	// Domain: сколько инцидентов сгенерировано и сколько ждали прогноз
	IncidentsGenerated prometheus.Counter
	PredictionDuration prometheus.Histogram

	// Cache: hit / miss / error
	CacheResults *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	// Null Object Pattern - Если рег не передан, используем локальный, который никуда не подключен
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	return &Metrics{
		RequestDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "crimewatch_request_duration_seconds",
			Help:    "Histogram of request latencies.",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"route", "method", "status"}),

		TotalRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "crimewatch_requests_total",
			Help: "Total number of processed requests.",
		}, []string{"route"}),

		ErrorTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "crimewatch_errors_total",
			Help: "Total number of errors by type.",
		}, []string{"type"}), // типы: invalid_argument, timeout, cancelled, breaker_open, rate_limit, internal

		CircuitBreakerState: promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Name: "crimewatch_circuit_breaker_state",
			Help: "Current state of the circuit breaker (0=closed, 1=half-open, 2=open).",
		}, []string{"provider"}),

		IncidentsGenerated: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "crimewatch_incidents_generated_total",
			Help: "Total number of synthetic incidents generated.",
		}),

		PredictionDuration: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "crimewatch_prediction_duration_seconds",
			Help:    "Time spent waiting for the prediction provider.",
			Buckets: []float64{.05, .1, .25, .5, .8, 1, 2, 5},
		}),

		CacheResults: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "crimewatch_cache_results_total",
			Help: "Prediction cache lookups by result.",
		}, []string{"result"}),
	}
}
