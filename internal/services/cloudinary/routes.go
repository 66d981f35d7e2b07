package cloudinary

import (
	"github.com/gofiber/fiber/v3"
)

// SetupRoutes настраивает маршруты для работы с изображениями
func (s *CloudinaryService) SetupRoutes(app *fiber.App) {
	// Серверная загрузка изображения
	app.Post("/upload-image", s.UploadImage)

	// Подписанные параметры для прямой загрузки с клиента
	app.Get("/upload/params", s.GenerateUploadParams)
}
