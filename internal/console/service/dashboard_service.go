package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dncoder14/crimewatch-ai/internal/crimedata"
	"github.com/dncoder14/crimewatch-ai/internal/domain"
	"github.com/dncoder14/crimewatch-ai/internal/engine"
	"github.com/dncoder14/crimewatch-ai/internal/infra"
)

const recentIncidentsLimit = 3

// lastDayIncidents: значение карточки "Last 24 Hours", как на макете.
const lastDayIncidents = 47

// IncidentQuery: параметры карты. nil означает значение из конфига.
type IncidentQuery struct {
	Count      *int
	Center     *domain.Coordinate
	Categories crimedata.CategorySet // nil: все категории
}

type DashboardService struct {
	generator   *crimedata.Generator
	predictions engine.PredictionProvider
	defaults    infra.CrimeDataConfig
	now         crimedata.Clock
	metrics     *engine.Metrics
	logger      *zap.Logger
}

type DashboardOption func(*DashboardService)

// WithServiceClock подменяет часы для карточки "This Month".
func WithServiceClock(c crimedata.Clock) DashboardOption {
	return func(s *DashboardService) {
		if c != nil {
			s.now = c
		}
	}
}

func NewDashboardService(
	generator *crimedata.Generator,
	predictions engine.PredictionProvider,
	defaults infra.CrimeDataConfig,
	metrics *engine.Metrics,
	logger *zap.Logger,
	opts ...DashboardOption,
) *DashboardService {
	if metrics == nil {
		metrics = engine.NewMetrics(nil)
	}
	s := &DashboardService{
		generator:   generator,
		predictions: predictions,
		defaults:    defaults,
		now:         time.Now,
		metrics:     metrics,
		logger:      logger.Named("dashboard-service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *DashboardService) defaultCenter() domain.Coordinate {
	return domain.Coordinate{Lat: s.defaults.CenterLat, Lng: s.defaults.CenterLng}
}

// Incidents генерирует инциденты для карты и применяет фильтр категорий.
func (s *DashboardService) Incidents(ctx context.Context, q IncidentQuery) ([]domain.Incident, error) {
	count := s.defaults.DefaultCount
	if q.Count != nil {
		count = *q.Count
	}
	center := s.defaultCenter()
	if q.Center != nil {
		center = *q.Center
	}

	if count > crimedata.MaxIncidentCount {
		s.metrics.ErrorTotal.WithLabelValues("invalid_argument").Inc()
		return nil, fmt.Errorf("generate incidents: %w", &domain.InvalidArgumentError{
			Field:  "count",
			Value:  count,
			Reason: fmt.Sprintf("must not exceed %d", crimedata.MaxIncidentCount),
		})
	}

	incidents, err := s.generator.Generate(count, center)
	if err != nil {
		s.metrics.ErrorTotal.WithLabelValues("invalid_argument").Inc()
		return nil, fmt.Errorf("generate incidents: %w", err)
	}
	s.metrics.IncidentsGenerated.Add(float64(len(incidents)))

	if q.Categories != nil {
		incidents = crimedata.FilterByCategory(incidents, q.Categories)
	}

	s.logger.Debug("incidents generated",
		zap.String("trace_id", engine.TraceID(ctx)),
		zap.Int("requested", count),
		zap.Int("returned", len(incidents)))

	return incidents, nil
}

// Stats: синхронная фикстура, ошибок не бывает.
func (s *DashboardService) Stats(_ context.Context) domain.AggregateStatistics {
	return crimedata.AggregateStatistics()
}

func (s *DashboardService) Predictions(ctx context.Context) (*domain.PredictionResult, error) {
	res, err := s.predictions.Predict(ctx)
	if err != nil {
		s.logger.Warn("prediction failed",
			zap.String("trace_id", engine.TraceID(ctx)),
			zap.Error(err))
		return nil, err
	}
	return res, nil
}

// Overview собирает главную страницу. Прогноз стартует первым и ждется
// в конце; если ctx отменен, ожидающий прогноз бросается.
func (s *DashboardService) Overview(ctx context.Context) (*domain.Overview, error) {
	pending := crimedata.StartPrediction(ctx, s.predictions)
	defer pending.Cancel()

	stats := s.Stats(ctx)

	incidents, err := s.Incidents(ctx, IncidentQuery{})
	if err != nil {
		return nil, err
	}
	if len(incidents) > recentIncidentsLimit {
		incidents = incidents[:recentIncidentsLimit]
	}

	predictions, err := pending.Result()
	if err != nil {
		s.logger.Warn("overview prediction failed",
			zap.String("trace_id", engine.TraceID(ctx)),
			zap.Error(err))
		return nil, err
	}

	return &domain.Overview{
		Cards:           s.statCards(stats),
		RecentIncidents: incidents,
		Predictions:     predictions,
	}, nil
}

func (s *DashboardService) statCards(stats domain.AggregateStatistics) []domain.StatCard {
	thisMonth := 0
	if m := int(s.now().Month()) - 1; m < len(stats.MonthlyIncidents) {
		thisMonth = stats.MonthlyIncidents[m]
	}

	return []domain.StatCard{
		{Title: "Total Incidents", Value: stats.TotalIncidents, Percentage: "12%", Trend: domain.TrendUp},
		{Title: "Active Hotspots", Value: len(stats.Hotspots), Percentage: "5%", Trend: domain.TrendDown},
		{Title: "This Month", Value: thisMonth, Percentage: "3%", Trend: domain.TrendUp},
		{Title: "Last 24 Hours", Value: lastDayIncidents, Percentage: "8%", Trend: domain.TrendUp},
	}
}
