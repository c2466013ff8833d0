package crimedata

import "github.com/dncoder14/crimewatch-ai/internal/domain"

// AggregateStatistics возвращает фиксированную сводку. С инцидентами из
// Generate она не согласована, и потребители этого не ожидают.
func AggregateStatistics() domain.AggregateStatistics {
	return domain.AggregateStatistics{
		TotalIncidents:   1423,
		MonthlyIncidents: []int{120, 132, 101, 134, 90, 120, 110, 98, 127, 143, 119, 129},
		IncidentsByCategory: map[string]int{
			domain.CategoryRobbery.Key():  342,
			domain.CategoryTheft.Key():    523,
			domain.CategoryAssault.Key():  298,
			domain.CategoryBurglary.Key(): 260,
		},
		IncidentsByTimeOfDay: map[string]int{
			domain.TimeOfDayMorning:   187,
			domain.TimeOfDayAfternoon: 312,
			domain.TimeOfDayEvening:   498,
			domain.TimeOfDayNight:     426,
		},
		Hotspots: []domain.AreaCount{
			{Name: "Downtown", Count: 423},
			{Name: "Westside", Count: 276},
			{Name: "Harbor Area", Count: 201},
			{Name: "North District", Count: 312},
			{Name: "Eastside", Count: 211},
		},
	}
}
