package classify

import (
	"github.com/gofiber/fiber/v3"
)

// SetupRoutes настраивает маршруты анализа изображений
func (s *GeminiService) SetupRoutes(app *fiber.App) {
	// Подбор категории по фотографии
	app.Post("/classify-image", s.ClassifyImage)
}
