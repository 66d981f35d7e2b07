package listing

import (
	"context"
	"fmt"
	"log"
	"unicode/utf8"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rajivgeraev/campusgive-api/internal/browse"
	"github.com/rajivgeraev/campusgive-api/internal/catalog"
	"github.com/rajivgeraev/campusgive-api/internal/config"
	"github.com/rajivgeraev/campusgive-api/internal/db"
	"github.com/rajivgeraev/campusgive-api/internal/models"
)

// AnonymousDonor подставляется, когда даритель не указал имя
const AnonymousDonor = "Anonymous Donor"

// errTitleLength название длиннее допустимого
var errTitleLength = fmt.Errorf("title cannot be more than %d characters", models.MaxTitleLength)

// errRequired обязательное поле не заполнено
func errRequired(field string) error {
	return fmt.Errorf("missing required field: %s", field)
}

// recentLimit количество объявлений для блока "недавние" на главной
const recentLimit = 4

// listingColumns общий список колонок для чтения объявлений
const listingColumns = "id, title, description, category_id, location_id, image_url, pickup_info, donor_name, donor_email, created_at"

// ListingService представляет сервис для работы с объявлениями
type ListingService struct {
	cfg *config.Config
	q   db.Querier
}

// NewListingService создает новый экземпляр ListingService.
// Вызывается после InitDB, когда пул уже готов
func NewListingService(cfg *config.Config) *ListingService {
	return &ListingService{cfg: cfg, q: db.Pool}
}

// GetListings возвращает все объявления, новые первыми.
// Фильтрация происходит на клиенте, параметры запроса не принимаются
func (s *ListingService) GetListings(c fiber.Ctx) error {
	ctx, cancel := db.GetContext()
	defer cancel()

	listings, err := fetchListings(ctx, s.q, 0)
	if err != nil {
		log.Printf("Ошибка запроса объявлений: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch listings",
		})
	}

	return c.JSON(listings)
}

// GetRecentListings возвращает последние объявления для главной страницы
func (s *ListingService) GetRecentListings(c fiber.Ctx) error {
	ctx, cancel := db.GetContext()
	defer cancel()

	listings, err := fetchListings(ctx, s.q, recentLimit)
	if err != nil {
		log.Printf("Ошибка запроса недавних объявлений: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch listings",
		})
	}

	return c.JSON(listings)
}

// SearchListings возвращает объявления, отфильтрованные на сервере.
// Удобный вариант той же логики, что клиент применяет локально
func (s *ListingService) SearchListings(c fiber.Ctx) error {
	ctx, cancel := db.GetContext()
	defer cancel()

	listings, err := fetchListings(ctx, s.q, 0)
	if err != nil {
		log.Printf("Ошибка запроса объявлений: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch listings",
		})
	}

	filters := browse.Filters{
		Search:     c.Query("q"),
		Donor:      c.Query("donor"),
		CategoryID: c.Query("category"),
		LocationID: c.Query("location"),
	}

	return c.JSON(browse.Apply(listings, filters))
}

// CreateListing обрабатывает создание нового объявления.
// createdAt из запроса игнорируется: метку времени ставит база при вставке
func (s *ListingService) CreateListing(c fiber.Ctx) error {
	var input models.ListingInput
	if err := c.Bind().Body(&input); err != nil {
		log.Printf("Ошибка декодирования тела запроса: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	if err := ValidateInput(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	id, err := Insert(ctx, s.q, input)
	if err != nil {
		log.Printf("Ошибка вставки объявления: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to create listing",
		})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"insertedId": id,
	})
}

// GetItem возвращает страницу одного объявления по ID.
// Невалидный или неизвестный ID дает not-found без подстановки контента
func (s *ListingService) GetItem(c fiber.Ctx) error {
	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	var item models.Listing
	var donorName, donorEmail *string
	err = s.q.QueryRow(ctx, `
		SELECT `+listingColumns+`
		FROM listings
		WHERE id = $1
	`, itemID).Scan(
		&item.ID,
		&item.Title,
		&item.Description,
		&item.CategoryID,
		&item.LocationID,
		&item.ImageURL,
		&item.PickupInfo,
		&donorName,
		&donorEmail,
		&item.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
		}
		log.Printf("Ошибка получения объявления: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch item"})
	}

	if donorName != nil {
		item.DonorName = *donorName
	}
	if donorEmail != nil {
		item.DonorEmail = *donorEmail
	}

	return c.JSON(BuildItemDetail(item))
}

// Insert сохраняет объявление и возвращает присвоенный ID.
// Используется обработчиком создания и серверным флоу пожертвования
func Insert(ctx context.Context, q db.Querier, input models.ListingInput) (uuid.UUID, error) {
	id := uuid.New()

	var donorName, donorEmail *string
	if input.DonorName != "" {
		donorName = &input.DonorName
	}
	if input.DonorEmail != "" {
		donorEmail = &input.DonorEmail
	}

	_, err := q.Exec(ctx, `
		INSERT INTO listings (id, title, description, category_id, location_id, image_url, pickup_info, donor_name, donor_email, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
	`, id, input.Title, input.Description, input.CategoryID, input.LocationID,
		input.ImageURL, input.PickupInfo, donorName, donorEmail)

	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// ValidateInput проверяет обязательные поля нового объявления.
// Принадлежность categoryId/locationId справочникам сознательно не
// проверяется: это договорная проверка на уровне клиента
func ValidateInput(input models.ListingInput) error {
	switch {
	case input.Title == "":
		return errRequired("title")
	case utf8.RuneCountInString(input.Title) > models.MaxTitleLength:
		return errTitleLength
	case input.Description == "":
		return errRequired("description")
	case input.CategoryID == "":
		return errRequired("categoryId")
	case input.LocationID == "":
		return errRequired("locationId")
	case input.ImageURL == "":
		return errRequired("imageUrl")
	case input.PickupInfo == "":
		return errRequired("pickupInfo")
	}
	return nil
}

// BuildItemDetail собирает страницу объявления: раскрывает названия
// категории и кампуса, подставляет имя дарителя по умолчанию
func BuildItemDetail(item models.Listing) models.ItemDetail {
	donor := models.Donor{
		Name:       item.DonorName,
		Email:      item.DonorEmail,
		HasContact: item.DonorEmail != "",
	}
	if donor.Name == "" {
		donor.Name = AnonymousDonor
	}

	return models.ItemDetail{
		Listing:      item,
		CategoryName: catalog.CategoryName(item.CategoryID),
		CampusName:   catalog.CampusName(item.LocationID),
		Donor:        donor,
	}
}

// fetchListings читает объявления, новые первыми; limit 0 — без лимита
func fetchListings(ctx context.Context, q db.Querier, limit int) ([]models.Listing, error) {
	query := `
		SELECT ` + listingColumns + `
		FROM listings
		ORDER BY created_at DESC
	`
	var rows pgx.Rows
	var err error
	if limit > 0 {
		rows, err = q.Query(ctx, query+" LIMIT $1", limit)
	} else {
		rows, err = q.Query(ctx, query)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Пустой набор сериализуется как [], а не null
	listings := make([]models.Listing, 0)
	for rows.Next() {
		var item models.Listing
		var donorName, donorEmail *string
		if err := rows.Scan(
			&item.ID,
			&item.Title,
			&item.Description,
			&item.CategoryID,
			&item.LocationID,
			&item.ImageURL,
			&item.PickupInfo,
			&donorName,
			&donorEmail,
			&item.CreatedAt,
		); err != nil {
			// Неполный набор не выдается за успешный ответ
			return nil, err
		}

		if donorName != nil {
			item.DonorName = *donorName
		}
		if donorEmail != nil {
			item.DonorEmail = *donorEmail
		}

		listings = append(listings, item)
	}

	return listings, rows.Err()
}
