package domain

type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
)

// Overview: данные главной страницы дашборда.
type Overview struct {
	Cards           []StatCard        `json:"cards"`
	RecentIncidents []Incident        `json:"recentIncidents"`
	Predictions     *PredictionResult `json:"predictions"`
}

type StatCard struct {
	Title      string `json:"title"`
	Value      int    `json:"value"`
	Percentage string `json:"percentage"` // "12%"
	Trend      Trend  `json:"trend"`
}
