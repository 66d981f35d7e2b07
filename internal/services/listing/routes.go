package listing

import (
	"github.com/gofiber/fiber/v3"
)

// SetupRoutes настраивает маршруты для API объявлений
func (s *ListingService) SetupRoutes(app *fiber.App) {
	// Список объявлений, новые первыми
	app.Get("/listings", s.GetListings)

	// Недавние объявления для главной страницы
	app.Get("/listings/recent", s.GetRecentListings)

	// Серверная фильтрация поверх той же логики предикатов
	app.Get("/listings/search", s.SearchListings)

	// Создание объявления
	app.Post("/listings", s.CreateListing)

	// Страница одного объявления
	app.Get("/items/:id", s.GetItem)
}
