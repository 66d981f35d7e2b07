package cloudinary

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/rajivgeraev/campusgive-api/internal/config"
	"github.com/rajivgeraev/campusgive-api/internal/imaging"
)

// CloudinaryService предоставляет методы для работы с Cloudinary
type CloudinaryService struct {
	cfg          *config.Config
	cld          *cloudinary.Cloudinary // nil, если Cloudinary не сконфигурирован
	uploadFolder string
	uploadPreset string
}

// NewCloudinaryService создает новый экземпляр CloudinaryService.
// Без учетных данных сервис создается, но загрузка отказывает при вызове
func NewCloudinaryService(cfg *config.Config) *CloudinaryService {
	s := &CloudinaryService{
		cfg:          cfg,
		uploadFolder: cfg.CloudinaryConfig.UploadFolder,
		uploadPreset: cfg.CloudinaryConfig.UploadPreset,
	}

	cc := cfg.CloudinaryConfig
	if cc.CloudName != "" && cc.APIKey != "" && cc.APISecret != "" {
		cld, err := cloudinary.NewFromParams(cc.CloudName, cc.APIKey, cc.APISecret)
		if err != nil {
			log.Printf("Ошибка инициализации Cloudinary: %v", err)
		} else {
			s.cld = cld
		}
	}

	return s
}

// Upload загружает изображение (data URI) и возвращает постоянный URL
func (s *CloudinaryService) Upload(ctx context.Context, dataURI string) (string, error) {
	if s.cld == nil {
		return "", errors.New("cloudinary is not configured")
	}

	result, err := s.cld.Upload.Upload(ctx, dataURI, uploader.UploadParams{
		UploadPreset: s.uploadPreset,
		Folder:       s.uploadFolder,
	})
	if err != nil {
		return "", err
	}

	return result.SecureURL, nil
}

// UploadImage обрабатывает серверную загрузку изображения
func (s *CloudinaryService) UploadImage(c fiber.Ctx) error {
	var body struct {
		Data string `json:"data"`
	}

	if err := c.Bind().Body(&body); err != nil || body.Data == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "No image data provided",
		})
	}

	data, err := imaging.ParseDataURI(body.Data)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	if _, err := imaging.Validate(data); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	// Отдельный контекст с таймаутом на время внешнего вызова
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	url, err := s.Upload(ctx, body.Data)
	if err != nil {
		log.Printf("Ошибка загрузки в Cloudinary: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Image upload failed",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"url":     url,
	})
}

// GenerateSignature создаёт корректную подпись для Cloudinary
func (s *CloudinaryService) GenerateSignature(params map[string]string) string {
	// Сортируем ключи параметров
	var keys []string
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	// Формируем строку для подписи
	var signParts []string
	for _, k := range keys {
		signParts = append(signParts, fmt.Sprintf("%s=%s", k, params[k]))
	}
	signatureString := strings.Join(signParts, "&")

	// Добавляем API-секрет в конец строки
	signatureString += s.cfg.CloudinaryConfig.APISecret

	// Создаем SHA-1 хеш
	h := sha1.New()
	h.Write([]byte(signatureString))

	// Возвращаем подпись в виде шестнадцатеричной строки
	return hex.EncodeToString(h.Sum(nil))
}

// GenerateUploadParams создаёт параметры для прямой загрузки с клиента
func (s *CloudinaryService) GenerateUploadParams(c fiber.Ctx) error {
	// Генерируем ID для объявления, если не передан
	listingID := c.Query("listing_id")
	if listingID == "" {
		listingID = uuid.New().String()
	}

	// Текущий timestamp
	timestamp := fmt.Sprintf("%d", time.Now().Unix())

	// Параметры для подписи
	params := map[string]string{
		"timestamp": timestamp,
		"folder":    s.uploadFolder,
	}

	// Генерируем подпись
	signature := s.GenerateSignature(params)

	// Возвращаем параметры
	return c.JSON(fiber.Map{
		"timestamp":  timestamp,
		"signature":  signature,
		"api_key":    s.cfg.CloudinaryConfig.APIKey,
		"cloud_name": s.cfg.CloudinaryConfig.CloudName,
		"folder":     s.uploadFolder,
		"listing_id": listingID,
	})
}
