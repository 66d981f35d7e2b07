package browse

import (
	"strings"

	"github.com/rajivgeraev/campusgive-api/internal/models"
)

// Filters представляет активные предикаты фильтрации на странице поиска.
// Пустое значение означает, что предикат выключен
type Filters struct {
	Search     string
	Donor      string
	CategoryID string
	LocationID string
}

// Active сообщает, включен ли хотя бы один предикат
func (f Filters) Active() bool {
	return f.Search != "" || f.Donor != "" || f.CategoryID != "" || f.LocationID != ""
}

// Reset сбрасывает все предикаты в выключенное состояние
func (f *Filters) Reset() {
	*f = Filters{}
}

// Apply применяет предикаты через логическое И, сохраняя исходный порядок.
// Без активных предикатов возвращается тот же набор
func Apply(items []models.Listing, f Filters) []models.Listing {
	if !f.Active() {
		return items
	}

	result := make([]models.Listing, 0, len(items))
	for _, item := range items {
		if matches(item, f) {
			result = append(result, item)
		}
	}
	return result
}

// matches проверяет объявление против всех активных предикатов
func matches(item models.Listing, f Filters) bool {
	if f.Search != "" && !containsFold(item.Title, f.Search) && !containsFold(item.Description, f.Search) {
		return false
	}
	if f.Donor != "" && !containsFold(item.DonorName, f.Donor) {
		return false
	}
	if f.CategoryID != "" && item.CategoryID != f.CategoryID {
		return false
	}
	if f.LocationID != "" && item.LocationID != f.LocationID {
		return false
	}
	return true
}

// containsFold проверяет вхождение подстроки без учета регистра
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
