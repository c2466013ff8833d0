package domain

// RiskLevel: качественная оценка риска для горячих точек и патрулей.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

type PredictedHotspot struct {
	Name       string    `json:"name"`
	Likelihood float64   `json:"likelihood"` // 0..1
	RiskLevel  RiskLevel `json:"riskLevel"`
	Latitude   float64   `json:"lat"`
	Longitude  float64   `json:"lng"`
}

type PatrolRecommendation struct {
	Area       string    `json:"area"`
	TimeWindow string    `json:"timeframe"` // "10:00 PM - 2:00 AM"
	Priority   RiskLevel `json:"priority"`
}

// PredictionResult: ответ "AI-прогноза". Сумма CategoryDistribution
// равна 1 только потому, что так сложилась фикстура.
type PredictionResult struct {
	PredictedHotspots         []PredictedHotspot     `json:"predictedHotspots"`
	PredictedIncreaseFraction float64                `json:"predictedCrimeIncrease"`
	CategoryDistribution      map[string]float64     `json:"crimeTypeDistribution"`
	RecommendedPatrols        []PatrolRecommendation `json:"recommendedPatrols"`
}
