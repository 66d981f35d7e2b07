package donate

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/rajivgeraev/campusgive-api/internal/catalog"
	"github.com/rajivgeraev/campusgive-api/internal/db"
	"github.com/rajivgeraev/campusgive-api/internal/donation"
	"github.com/rajivgeraev/campusgive-api/internal/imaging"
	"github.com/rajivgeraev/campusgive-api/internal/models"
	"github.com/rajivgeraev/campusgive-api/internal/prefs"
	"github.com/rajivgeraev/campusgive-api/internal/services/listing"
)

// DonateService проводит пожертвование одним запросом: анализ категории,
// загрузка изображения и сохранение объявления через общий флоу
type DonateService struct {
	classifier donation.Classifier
	uploader   donation.Uploader
}

// NewDonateService создает новый экземпляр DonateService
func NewDonateService(classifier donation.Classifier, uploader donation.Uploader) *DonateService {
	return &DonateService{
		classifier: classifier,
		uploader:   uploader,
	}
}

// pgStore сохраняет объявления через общий SQL-хелпер сервиса объявлений
type pgStore struct{}

func (pgStore) Insert(ctx context.Context, input models.ListingInput) (uuid.UUID, error) {
	return listing.Insert(ctx, db.Pool, input)
}

// resolveCampus применяет кампус из запроса к настройкам.
// Неизвестный ID — ошибка, а не тихая подмена кампусом по умолчанию
func resolveCampus(p *prefs.Store, campus string) error {
	if campus == "" {
		return nil
	}
	if !catalog.ValidCampusID(campus) {
		return fmt.Errorf("unknown campus: %s", campus)
	}
	p.SetSelectedCampus(campus)
	return nil
}

// SubmitDonation обрабатывает полную отправку пожертвования.
// Пустая категория означает согласие с предложенной анализом
func (s *DonateService) SubmitDonation(c fiber.Ctx) error {
	var body struct {
		Data        string `json:"data"`
		Title       string `json:"title"`
		Description string `json:"description"`
		CategoryID  string `json:"categoryId"`
		PickupInfo  string `json:"pickupInfo"`
		Campus      string `json:"campus"`
		DonorName   string `json:"donorName"`
		DonorEmail  string `json:"donorEmail"`
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

	// Кампус берется из настроек формы, как на клиенте
	p := prefs.NewStore()
	if err := resolveCampus(p, body.Campus); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	flow := donation.NewFlow(s.classifier, s.uploader, pgStore{}, p)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := flow.SelectImage(ctx, data); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	suggested, fallback := flow.SuggestedCategory()

	id, err := flow.Submit(ctx, donation.Fields{
		Title:       body.Title,
		Description: body.Description,
		CategoryID:  body.CategoryID,
		PickupInfo:  body.PickupInfo,
		DonorName:   body.DonorName,
		DonorEmail:  body.DonorEmail,
	})
	if err != nil {
		var missing *donation.MissingFieldError
		if errors.As(err, &missing) || errors.Is(err, donation.ErrTitleTooLong) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
			})
		}
		log.Printf("Ошибка отправки пожертвования: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to create listing",
		})
	}

	return c.JSON(fiber.Map{
		"success":           true,
		"insertedId":        id,
		"campus":            p.SelectedCampus(),
		"suggestedCategory": suggested,
		"fallback":          fallback,
	})
}
