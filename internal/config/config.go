package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config структура конфигурации
type Config struct {
	Port             string
	DatabaseURL      string
	DatabaseConfig   DatabaseConfig
	CloudinaryConfig CloudinaryConfig
	GeminiConfig     GeminiConfig
	AppEnv           string // Окружение приложения
}

// DatabaseConfig содержит конфигурацию базы данных
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// CloudinaryConfig содержит конфигурацию для Cloudinary
type CloudinaryConfig struct {
	CloudName    string
	APIKey       string
	APISecret    string
	UploadPreset string
	UploadFolder string
}

// GeminiConfig содержит конфигурацию для Gemini API
type GeminiConfig struct {
	APIKey string
	Model  string
}

// LoadConfig загружает переменные из .env
func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("⚠️ .env файл не найден, используем переменные окружения")
	}

	dbConfig := DatabaseConfig{
		Host:     getEnv("PGHOST", "localhost"),
		Port:     getEnv("PGPORT", "5432"),
		User:     getEnv("PGUSER", "campusgive_user"),
		Password: getEnv("PGPASSWORD", "campusgive_pass"),
		Name:     getEnv("PGDATABASE", "campusgive"),
		SSLMode:  getEnv("PGSSLMODE", "disable"),
	}

	// Формируем строку подключения к базе данных
	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		dbConfig.User, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.Name, dbConfig.SSLMode)

	cloudinaryConfig := CloudinaryConfig{
		CloudName:    getEnv("CLOUDINARY_CLOUD_NAME", ""),
		APIKey:       getEnv("CLOUDINARY_API_KEY", ""),
		APISecret:    getEnv("CLOUDINARY_API_SECRET", ""),
		UploadPreset: getEnv("CLOUDINARY_UPLOAD_PRESET", "campusgive_items"),
		UploadFolder: getEnv("CLOUDINARY_UPLOAD_FOLDER", "campusgive"),
	}

	geminiConfig := GeminiConfig{
		APIKey: getEnv("GEMINI_API_KEY", ""),
		Model:  getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
	}

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		DatabaseURL:      dbURL,
		DatabaseConfig:   dbConfig,
		CloudinaryConfig: cloudinaryConfig,
		GeminiConfig:     geminiConfig,
		AppEnv:           getEnv("APP_ENV", "production"), // По умолчанию production
	}

	// Ключи Cloudinary и Gemini не обязательны при старте: без них
	// соответствующие вызовы отказывают или деградируют во время запроса
	if cfg.CloudinaryConfig.CloudName == "" || cfg.CloudinaryConfig.APIKey == "" {
		log.Println("⚠️ Cloudinary не сконфигурирован, загрузка изображений будет недоступна")
	}
	if cfg.GeminiConfig.APIKey == "" {
		log.Println("⚠️ GEMINI_API_KEY не задан, анализ изображений будет работать в режиме fallback")
	}

	return cfg
}

// getEnv получает переменную окружения или использует дефолтное значение
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
