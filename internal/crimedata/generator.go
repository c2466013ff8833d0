// Package crimedata генерирует синтетические данные о преступлениях для
// дашборда: инциденты для карты, сводную статистику и "AI-прогноз".
// Пакет не хранит состояния, каждый вызов возвращает новые значения.
package crimedata

import (
	"math/rand/v2"
	"time"

	"github.com/dncoder14/crimewatch-ai/internal/domain"
)

const (
	DefaultIncidentCount = 20

	// MaxIncidentCount: верхняя граница count для внешних вызовов (HTTP, конфиг).
	// Generate сам по себе ее не проверяет, но больше не резервирует память заранее.
	MaxIncidentCount = 10000

	// JitterDegrees: полная ширина разброса по каждой оси (центр ± 0.05).
	JitterDegrees = 0.1
	LookbackDays  = 30
	MaxSeverity   = 5
)

// DefaultCenter: Лос-Анджелес, центр карты по умолчанию.
var DefaultCenter = domain.Coordinate{Lat: 34.0522, Lng: -118.2437}

// RandSource: минимум, который нужен генератору от ГСЧ.
// *rand.Rand из math/rand/v2 ему удовлетворяет.
type RandSource interface {
	Float64() float64
	IntN(n int) int
}

// Clock возвращает "сейчас". В тестах подменяется фиксированным временем.
type Clock func() time.Time

// globalSource использует общий потокобезопасный источник math/rand/v2.
type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }
func (globalSource) IntN(n int) int   { return rand.IntN(n) }

type Generator struct {
	rnd RandSource
	now Clock
}

type GeneratorOption func(*Generator)

func WithRandSource(r RandSource) GeneratorOption {
	return func(g *Generator) {
		if r != nil {
			g.rnd = r
		}
	}
}

func WithClock(c Clock) GeneratorOption {
	return func(g *Generator) {
		if c != nil {
			g.now = c
		}
	}
}

func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{
		rnd: globalSource{},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate создает count инцидентов вокруг center.
// Порядок выборок на каждый инцидент фиксирован: категория, широта, долгота,
// описание, сдвиг в днях, тяжесть.
func (g *Generator) Generate(count int, center domain.Coordinate) ([]domain.Incident, error) {
	if count < 0 {
		return nil, &domain.InvalidArgumentError{
			Field:  "count",
			Value:  count,
			Reason: "must be non-negative",
		}
	}

	// Время суток берется из "сейчас", сдвигаются только дни
	now := g.now()
	incidents := make([]domain.Incident, 0, min(count, MaxIncidentCount))

	for i := 0; i < count; i++ {
		category := domain.Categories[g.rnd.IntN(len(domain.Categories))]
		lat := center.Lat + (g.rnd.Float64()-0.5)*JitterDegrees
		lng := center.Lng + (g.rnd.Float64()-0.5)*JitterDegrees
		description := domain.Descriptions[g.rnd.IntN(len(domain.Descriptions))]
		daysAgo := g.rnd.IntN(LookbackDays)
		severity := g.rnd.IntN(MaxSeverity) + 1

		incidents = append(incidents, domain.Incident{
			ID:          i + 1,
			Category:    category,
			Latitude:    lat,
			Longitude:   lng,
			Description: description,
			OccurredAt:  now.AddDate(0, 0, -daysAgo),
			Severity:    severity,
		})
	}

	return incidents, nil
}

var defaultGenerator = NewGenerator()

// GenerateIncidents: генерация на глобальном ГСЧ и системных часах.
func GenerateIncidents(count int, center domain.Coordinate) ([]domain.Incident, error) {
	return defaultGenerator.Generate(count, center)
}
