package classify

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/rajivgeraev/campusgive-api/internal/catalog"
	"github.com/rajivgeraev/campusgive-api/internal/config"
	"github.com/rajivgeraev/campusgive-api/internal/imaging"
	"google.golang.org/genai"
)

// maxSuggestions максимум предлагаемых категорий
const maxSuggestions = 3

// GeminiService предлагает категории по фотографии вещи через Gemini API
type GeminiService struct {
	client *genai.Client // nil, если API-ключ не задан
	model  string
}

// NewGeminiService создает новый экземпляр GeminiService.
// Без ключа сервис создается, а каждый анализ уходит в fallback
func NewGeminiService(cfg *config.Config) *GeminiService {
	s := &GeminiService{model: cfg.GeminiConfig.Model}

	if cfg.GeminiConfig.APIKey == "" {
		return s
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  cfg.GeminiConfig.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		log.Printf("Ошибка инициализации клиента Gemini: %v", err)
		return s
	}

	s.client = client
	return s
}

// Analyze запрашивает у Gemini 1-3 категории из фиксированного списка.
// Возвращает ID известных категорий; ошибка означает, что анализ не
// удался и вызывающий сам выбирает fallback
func (s *GeminiService) Analyze(ctx context.Context, data []byte, mime string) ([]string, error) {
	if s.client == nil {
		return nil, errors.New("gemini is not configured")
	}

	parts := []*genai.Part{
		genai.NewPartFromText(buildPrompt()),
		genai.NewPartFromBytes(data, mime),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	result, err := s.client.Models.GenerateContent(ctx, s.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	ids := ParseCategoryNames(result.Text())
	if len(ids) == 0 {
		return nil, errors.New("no recognizable category in gemini response")
	}
	return ids, nil
}

// SuggestCategory возвращает первую предложенную категорию.
// Реализует интерфейс классификатора флоу пожертвования
func (s *GeminiService) SuggestCategory(ctx context.Context, data []byte, mime string) (string, error) {
	ids, err := s.Analyze(ctx, data, mime)
	if err != nil {
		return "", err
	}
	return ids[0], nil
}

// ClassifyImage обрабатывает запрос анализа изображения.
// Ошибка анализа не является ошибкой запроса: возвращается случайная
// категория с признаком fallback, чтобы пользователь продолжил вручную
func (s *GeminiService) ClassifyImage(c fiber.Ctx) error {
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

	mime, err := imaging.Validate(data)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fallback := false
	ids, err := s.Analyze(ctx, data, mime)
	if err != nil {
		log.Printf("Ошибка анализа изображения: %v", err)
		ids = []string{catalog.RandomCategoryID()}
		fallback = true
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"categories": ids,
		"fallback":   fallback,
	})
}

// buildPrompt собирает промпт с фиксированным списком категорий
func buildPrompt() string {
	return fmt.Sprintf(
		"Analyze this image and suggest which 1-3 categories it belongs to from this list: %s. "+
			"Respond ONLY with the category names separated by commas, nothing else.",
		strings.Join(catalog.CategoryNames(), ", "),
	)
}

// ParseCategoryNames разбирает ответ модели: названия через запятую.
// Неизвестные названия отбрасываются, дубликаты схлопываются,
// остается не больше трех ID
func ParseCategoryNames(text string) []string {
	var ids []string
	seen := make(map[string]bool)

	for _, name := range strings.Split(text, ",") {
		category, ok := catalog.CategoryByName(name)
		if !ok || seen[category.ID] {
			continue
		}
		seen[category.ID] = true
		ids = append(ids, category.ID)
		if len(ids) == maxSuggestions {
			break
		}
	}

	return ids
}
