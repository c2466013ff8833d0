package crimedata

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/dncoder14/crimewatch-ai/internal/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// scriptedSource отдает заранее записанные значения по очереди.
type scriptedSource struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (s *scriptedSource) Float64() float64 {
	v := s.floats[s.fi%len(s.floats)]
	s.fi++
	return v
}

func (s *scriptedSource) IntN(n int) int {
	v := s.ints[s.ii%len(s.ints)]
	s.ii++
	return v % n
}

const coordEpsilon = 1e-9

func TestGenerator_Golden(t *testing.T) {
	now := time.Date(2026, time.March, 15, 14, 30, 0, 0, time.UTC)
	src := &scriptedSource{
		//          lat   lng
		floats: []float64{0.75, 0.25, 0.5, 0.0},
		//     cat desc days sev
		ints: []int{1, 3, 5, 2, 3, 0, 0, 4},
	}
	g := NewGenerator(WithRandSource(src), WithClock(func() time.Time { return now }))

	got, err := g.Generate(2, DefaultCenter)
	require.NoError(t, err)
	require.Len(t, got, 2)

	first := got[0]
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, domain.CategoryTheft, first.Category)
	assert.InDelta(t, 34.0522+0.025, first.Latitude, coordEpsilon)
	assert.InDelta(t, -118.2437-0.025, first.Longitude, coordEpsilon)
	assert.Equal(t, "Home invasion reported with stolen items", first.Description)
	assert.Equal(t, time.Date(2026, time.March, 10, 14, 30, 0, 0, time.UTC), first.OccurredAt)
	assert.Equal(t, 3, first.Severity)

	second := got[1]
	assert.Equal(t, 2, second.ID)
	assert.Equal(t, domain.CategoryBurglary, second.Category)
	assert.InDelta(t, 34.0522, second.Latitude, coordEpsilon)
	assert.InDelta(t, -118.2437-0.05, second.Longitude, coordEpsilon)
	assert.Equal(t, "Armed suspect took valuables from victim", second.Description)
	assert.Equal(t, now, second.OccurredAt)
	assert.Equal(t, 5, second.Severity)

	// Тот же скрипт: тот же результат
	src.fi, src.ii = 0, 0
	again, err := g.Generate(2, DefaultCenter)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestGenerator_IDsAndRanges(t *testing.T) {
	g := NewGenerator(WithRandSource(rand.New(rand.NewPCG(42, 7))))

	for _, count := range []int{1, 5, 30, 500} {
		incidents, err := g.Generate(count, DefaultCenter)
		require.NoError(t, err)
		require.Len(t, incidents, count)

		for i, inc := range incidents {
			assert.Equal(t, i+1, inc.ID)
			assert.Contains(t, domain.Categories[:], inc.Category)
			assert.Contains(t, domain.Descriptions[:], inc.Description)
			assert.GreaterOrEqual(t, inc.Severity, 1)
			assert.LessOrEqual(t, inc.Severity, MaxSeverity)
			assert.LessOrEqual(t, math.Abs(inc.Latitude-DefaultCenter.Lat), 0.05+coordEpsilon)
			assert.LessOrEqual(t, math.Abs(inc.Longitude-DefaultCenter.Lng), 0.05+coordEpsilon)
		}
	}
}

func TestGenerator_LosAngelesScenario(t *testing.T) {
	incidents, err := GenerateIncidents(30, domain.Coordinate{Lat: 34.0522, Lng: -118.2437})
	require.NoError(t, err)
	require.Len(t, incidents, 30)

	for i, inc := range incidents {
		assert.Equal(t, i+1, inc.ID)
		assert.True(t, inc.Latitude >= 34.0022-coordEpsilon && inc.Latitude <= 34.1022+coordEpsilon,
			"latitude %v out of range", inc.Latitude)
		assert.True(t, inc.Longitude >= -118.2937-coordEpsilon && inc.Longitude <= -118.1937+coordEpsilon,
			"longitude %v out of range", inc.Longitude)
	}
}

func TestGenerator_Zero(t *testing.T) {
	incidents, err := GenerateIncidents(0, DefaultCenter)
	require.NoError(t, err)
	assert.NotNil(t, incidents)
	assert.Empty(t, incidents)
}

func TestGenerator_NegativeCount(t *testing.T) {
	incidents, err := GenerateIncidents(-1, DefaultCenter)
	assert.Nil(t, incidents)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))

	var argErr *domain.InvalidArgumentError
	require.True(t, errors.As(err, &argErr))
	assert.Equal(t, "count", argErr.Field)
	assert.Equal(t, -1, argErr.Value)
}

func TestGenerator_AboveMaxCount(t *testing.T) {
	// Предвыделение ограничено, но сама генерация не обрезается
	incidents, err := GenerateIncidents(MaxIncidentCount+1, DefaultCenter)
	require.NoError(t, err)
	require.Len(t, incidents, MaxIncidentCount+1)
	assert.Equal(t, MaxIncidentCount+1, incidents[len(incidents)-1].ID)
}

func TestGenerator_DatesWithinLookback(t *testing.T) {
	now := time.Date(2026, time.October, 19, 9, 45, 12, 0, time.UTC)
	g := NewGenerator(
		WithRandSource(rand.New(rand.NewPCG(1, 2))),
		WithClock(func() time.Time { return now }),
	)

	incidents, err := g.Generate(1000, DefaultCenter)
	require.NoError(t, err)

	oldest := now.AddDate(0, 0, -(LookbackDays - 1))
	seenDays := make(map[int]bool)
	for _, inc := range incidents {
		assert.False(t, inc.OccurredAt.After(now))
		assert.False(t, inc.OccurredAt.Before(oldest))
		// Время суток не рандомизируется
		assert.Equal(t, 9, inc.OccurredAt.Hour())
		assert.Equal(t, 45, inc.OccurredAt.Minute())
		seenDays[int(now.Sub(inc.OccurredAt).Hours()/24)] = true
	}
	assert.Len(t, seenDays, LookbackDays)
}

func TestGenerator_CoversClosedSets(t *testing.T) {
	g := NewGenerator(WithRandSource(rand.New(rand.NewPCG(3, 4))))
	incidents, err := g.Generate(2000, DefaultCenter)
	require.NoError(t, err)

	categories := make(map[domain.Category]int)
	severities := make(map[int]int)
	descriptions := make(map[string]int)
	for _, inc := range incidents {
		categories[inc.Category]++
		severities[inc.Severity]++
		descriptions[inc.Description]++
	}

	assert.Len(t, categories, len(domain.Categories))
	assert.Len(t, severities, MaxSeverity)
	assert.Len(t, descriptions, len(domain.Descriptions))
}
