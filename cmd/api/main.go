package main

import (
	"log"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/rajivgeraev/campusgive-api/internal/config"
	"github.com/rajivgeraev/campusgive-api/internal/db"
	"github.com/rajivgeraev/campusgive-api/internal/services/classify"
	"github.com/rajivgeraev/campusgive-api/internal/services/cloudinary"
	"github.com/rajivgeraev/campusgive-api/internal/services/donate"
	"github.com/rajivgeraev/campusgive-api/internal/services/listing"
	"github.com/rajivgeraev/campusgive-api/internal/services/reference"
)

func main() {
	// Загружаем конфигурацию
	cfg := config.LoadConfig()

	// Инициализируем базу данных
	if err := db.InitDB(cfg); err != nil {
		log.Fatalf("❌ Ошибка при инициализации базы данных: %v", err)
	}
	defer db.CloseDB()

	// Создаём экземпляр Fiber
	app := fiber.New(fiber.Config{
		AppName:      "CampusGive API",
		ErrorHandler: errorHandler,
	})

	// Добавляем middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowCredentials: false,
	}))

	// Создаём сервисы
	listingService := listing.NewListingService(cfg)
	cloudinaryService := cloudinary.NewCloudinaryService(cfg)
	geminiService := classify.NewGeminiService(cfg)
	donateService := donate.NewDonateService(geminiService, cloudinaryService)

	// Регистрируем маршруты
	listingService.SetupRoutes(app)
	cloudinaryService.SetupRoutes(app)
	geminiService.SetupRoutes(app)
	donateService.SetupRoutes(app)
	reference.SetupRoutes(app)

	// Запускаем сервер
	log.Printf("✅ CampusGive API запущен на порту %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}

// errorHandler обрабатывает ошибки Fiber
func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	// Проверяем, является ли ошибка из Fiber
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	// Отправляем ошибку в JSON
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
