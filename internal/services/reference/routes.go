package reference

import (
	"github.com/gofiber/fiber/v3"
	"github.com/rajivgeraev/campusgive-api/internal/catalog"
)

// SetupRoutes отдает статичные справочники категорий и кампусов
func SetupRoutes(app *fiber.App) {
	app.Get("/categories", func(c fiber.Ctx) error {
		return c.JSON(catalog.Categories)
	})

	app.Get("/campuses", func(c fiber.Ctx) error {
		return c.JSON(catalog.Campuses)
	})
}
