package domain

import (
	"strings"
	"time"
)

// Category: вид инцидента. Набор закрыт, фронт сравнивает строки напрямую.
type Category string

const (
	CategoryRobbery  Category = "Robbery"
	CategoryTheft    Category = "Theft"
	CategoryAssault  Category = "Assault"
	CategoryBurglary Category = "Burglary"
)

// Categories фиксирует порядок выборки для генератора. Менять порядок нельзя:
// на нем держатся golden-тесты.
var Categories = [...]Category{
	CategoryRobbery,
	CategoryTheft,
	CategoryAssault,
	CategoryBurglary,
}

// Key возвращает ключ категории в агрегатах ("robbery", "theft", ...).
func (c Category) Key() string {
	return strings.ToLower(string(c))
}

// ParseCategory принимает имя категории в любом регистре.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(string(c), s) {
			return c, true
		}
	}
	return "", false
}

// Descriptions: канонические тексты происшествий. С категорией не связаны.
var Descriptions = [...]string{
	"Armed suspect took valuables from victim",
	"Vehicle break-in reported",
	"Physical altercation between individuals",
	"Home invasion reported with stolen items",
	"Shoplifting incident at local store",
	"Carjacking attempt reported",
	"Credit card fraud reported",
	"Vandalism of public property",
}

// Coordinate: точка на карте в градусах.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Incident: одно синтетическое происшествие для карты.
type Incident struct {
	ID          int       `json:"id"` // 1..N в пределах одной генерации
	Category    Category  `json:"type"`
	Latitude    float64   `json:"lat"`
	Longitude   float64   `json:"lng"`
	Description string    `json:"description"`
	OccurredAt  time.Time `json:"date"`
	Severity    int       `json:"severity"` // 1-5
}
