package catalog

import (
	"math/rand"
	"strings"
)

// Category представляет статичную категорию вещей
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// Campus представляет кампус с маскотом
type Campus struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Mascot      string `json:"mascot"`
	MascotImage string `json:"mascotImage"`
}

// UnknownLabel подставляется вместо названия для неизвестного ID
const UnknownLabel = "Unknown"

// DefaultCampusID кампус по умолчанию для новых пользователей
const DefaultCampusID = "uc-davis-main"

// Categories фиксированный список категорий, загружается один раз
var Categories = []Category{
	{ID: "clothing", Name: "Clothing", Icon: "shirt", Color: "pink"},
	{ID: "school-supplies", Name: "School Supplies", Icon: "book", Color: "blue"},
	{ID: "electronics", Name: "Electronics", Icon: "laptop", Color: "purple"},
	{ID: "kitchenware", Name: "Kitchenware", Icon: "utensils", Color: "yellow"},
	{ID: "food", Name: "Food", Icon: "pizza", Color: "red"},
	{ID: "drinks", Name: "Drinks", Icon: "coffee", Color: "orange"},
	{ID: "furniture", Name: "Furniture", Icon: "sofa", Color: "green"},
	{ID: "books-media", Name: "Books & Media", Icon: "book-open", Color: "indigo"},
	{ID: "health-beauty", Name: "Health & Beauty", Icon: "sparkles", Color: "pink"},
	{ID: "dorm-essentials", Name: "Dorm Essentials", Icon: "home", Color: "teal"},
}

// Campuses фиксированный список кампусов
var Campuses = []Campus{
	{ID: "uc-davis-main", Name: "UC Davis Main Campus", Mascot: "Aggie Cow", MascotImage: "/mascots/cow.png"},
	{ID: "uc-berkeley", Name: "UC Berkeley", Mascot: "Oski Bear", MascotImage: "/mascots/bear.png"},
	{ID: "uc-santa-cruz", Name: "UC Santa Cruz", Mascot: "Sammy Slug", MascotImage: "/mascots/slug.png"},
	{ID: "uc-san-diego", Name: "UC San Diego", Mascot: "King Triton", MascotImage: "/mascots/triton.png"},
	{ID: "ucla", Name: "UCLA", Mascot: "Joe Bruin", MascotImage: "/mascots/bruin.png"},
	{ID: "uc-irvine", Name: "UC Irvine", Mascot: "Peter Anteater", MascotImage: "/mascots/anteater.png"},
	{ID: "uc-riverside", Name: "UC Riverside", Mascot: "Scotty Highlander", MascotImage: "/mascots/highlander.png"},
	{ID: "uc-santa-barbara", Name: "UC Santa Barbara", Mascot: "Gaucho", MascotImage: "/mascots/gaucho.png"},
	{ID: "uc-merced", Name: "UC Merced", Mascot: "Boomer Bobcat", MascotImage: "/mascots/bobcat.png"},
}

// CategoryName возвращает отображаемое название категории или "Unknown"
func CategoryName(id string) string {
	for _, c := range Categories {
		if c.ID == id {
			return c.Name
		}
	}
	return UnknownLabel
}

// CampusName возвращает отображаемое название кампуса или "Unknown"
func CampusName(id string) string {
	for _, c := range Campuses {
		if c.ID == id {
			return c.Name
		}
	}
	return UnknownLabel
}

// ValidCategoryID проверяет, что ID есть в списке категорий
func ValidCategoryID(id string) bool {
	for _, c := range Categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

// ValidCampusID проверяет, что ID есть в списке кампусов
func ValidCampusID(id string) bool {
	for _, c := range Campuses {
		if c.ID == id {
			return true
		}
	}
	return false
}

// CategoryByName находит категорию по отображаемому названию.
// Сравнение без учета регистра и крайних пробелов: Gemini не всегда
// возвращает название в точности как в списке
func CategoryByName(name string) (Category, bool) {
	name = strings.TrimSpace(name)
	for _, c := range Categories {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryNames возвращает отображаемые названия всех категорий
func CategoryNames() []string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = c.Name
	}
	return names
}

// RandomCategoryID возвращает равномерно случайный ID категории.
// Используется как fallback, когда анализ изображения не удался
func RandomCategoryID() string {
	return Categories[rand.Intn(len(Categories))].ID
}
