package donate

import (
	"github.com/gofiber/fiber/v3"
)

// SetupRoutes настраивает маршруты отправки пожертвования
func (s *DonateService) SetupRoutes(app *fiber.App) {
	// Полный цикл: анализ, загрузка, сохранение
	app.Post("/donate", s.SubmitDonation)
}
