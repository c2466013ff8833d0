package crimedata

import (
	"strings"

	"github.com/dncoder14/crimewatch-ai/internal/domain"
)

// CategorySet: переключатели категорий на карте. false или отсутствие
// ключа означает, что категория скрыта.
type CategorySet map[domain.Category]bool

func AllCategories() CategorySet {
	set := make(CategorySet, len(domain.Categories))
	for _, c := range domain.Categories {
		set[c] = true
	}
	return set
}

// ParseCategorySet разбирает "robbery,theft". Строка без имен ("", ",", " , ")
// означает все категории.
func ParseCategorySet(s string) (CategorySet, error) {
	set := make(CategorySet)
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		c, ok := domain.ParseCategory(part)
		if !ok {
			return nil, &domain.InvalidArgumentError{
				Field:  "categories",
				Value:  part,
				Reason: "unknown category",
			}
		}
		set[c] = true
	}

	if len(set) == 0 {
		return AllCategories(), nil
	}
	return set, nil
}

// FilterByCategory оставляет инциденты включенных категорий, сохраняя порядок.
func FilterByCategory(incidents []domain.Incident, enabled CategorySet) []domain.Incident {
	filtered := make([]domain.Incident, 0, len(incidents))
	for _, inc := range incidents {
		if enabled[inc.Category] {
			filtered = append(filtered, inc)
		}
	}
	return filtered
}
