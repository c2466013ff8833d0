package domain

// Корзины времени суток для IncidentsByTimeOfDay.
const (
	TimeOfDayMorning   = "morning"
	TimeOfDayAfternoon = "afternoon"
	TimeOfDayEvening   = "evening"
	TimeOfDayNight     = "night"
)

// MonthLabels: подписи оси X для графика по месяцам.
var MonthLabels = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// AggregateStatistics: сводная статистика для графиков и карточек.
// Это фикстура: значения не выводятся из сгенерированных инцидентов.
// Имена полей в JSON совпадают с тем, что читает фронт (camelCase).
type AggregateStatistics struct {
	TotalIncidents       int            `json:"totalCrimes"`
	MonthlyIncidents     []int          `json:"monthlyCrimes"` // 12 значений, 0 = январь
	IncidentsByCategory  map[string]int `json:"crimeByType"`   // ключи: robbery, theft, ...
	IncidentsByTimeOfDay map[string]int `json:"crimeByTime"`
	Hotspots             []AreaCount    `json:"crimeHotspots"` // порядок = ранг, по count не отсортирован
}

type AreaCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type MonthPoint struct {
	Month     string `json:"month"`
	Incidents int    `json:"incidents"`
}

// MonthlySeries раскладывает помесячные значения по подписям Jan..Dec.
func MonthlySeries(s AggregateStatistics) []MonthPoint {
	points := make([]MonthPoint, 0, len(s.MonthlyIncidents))
	for i, v := range s.MonthlyIncidents {
		if i >= len(MonthLabels) {
			break
		}
		points = append(points, MonthPoint{Month: MonthLabels[i], Incidents: v})
	}
	return points
}
