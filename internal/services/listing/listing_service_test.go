package listing

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/rajivgeraev/campusgive-api/internal/catalog"
	"github.com/rajivgeraev/campusgive-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// listingColumnNames имена колонок для моков, в порядке чтения
func listingColumnNames() []string {
	return strings.Split(listingColumns, ", ")
}

func validInput() models.ListingInput {
	return models.ListingInput{
		Title:       "Desk Lamp",
		Description: "Works great",
		CategoryID:  "dorm-essentials",
		LocationID:  "uc-davis-main",
		ImageURL:    "https://res.cloudinary.com/demo/image/upload/lamp.jpg",
		PickupInfo:  "Pickup at Segundo, evenings",
	}
}

func TestValidateInputAcceptsValid(t *testing.T) {
	require.NoError(t, ValidateInput(validInput()))
}

func TestValidateInputRequiredFields(t *testing.T) {
	cases := []struct {
		field  string
		mutate func(*models.ListingInput)
	}{
		{"title", func(i *models.ListingInput) { i.Title = "" }},
		{"description", func(i *models.ListingInput) { i.Description = "" }},
		{"categoryId", func(i *models.ListingInput) { i.CategoryID = "" }},
		{"locationId", func(i *models.ListingInput) { i.LocationID = "" }},
		{"imageUrl", func(i *models.ListingInput) { i.ImageURL = "" }},
		{"pickupInfo", func(i *models.ListingInput) { i.PickupInfo = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			input := validInput()
			tc.mutate(&input)

			err := ValidateInput(input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.field)
		})
	}
}

func TestValidateInputTitleLength(t *testing.T) {
	input := validInput()
	input.Title = strings.Repeat("x", models.MaxTitleLength)
	assert.NoError(t, ValidateInput(input))

	input.Title = strings.Repeat("x", models.MaxTitleLength+1)
	assert.Error(t, ValidateInput(input))
}

func TestValidateInputTitleLengthCountsRunes(t *testing.T) {
	// Лимит считается в символах, как char_length в базе:
	// 100 кириллических символов занимают 200 байт и должны проходить
	input := validInput()
	input.Title = strings.Repeat("я", models.MaxTitleLength)
	assert.NoError(t, ValidateInput(input))

	input.Title = strings.Repeat("я", models.MaxTitleLength+1)
	assert.Error(t, ValidateInput(input))
}

func TestValidateInputDoesNotCheckCatalogMembership(t *testing.T) {
	// Принадлежность справочникам остается договорной проверкой клиента
	input := validInput()
	input.CategoryID = "not-a-real-category"
	input.LocationID = "not-a-real-campus"
	assert.NoError(t, ValidateInput(input))
}

func TestBuildItemDetailResolvesNames(t *testing.T) {
	item := models.Listing{
		ID:          uuid.New(),
		Title:       "Desk Lamp",
		CategoryID:  "dorm-essentials",
		LocationID:  "uc-davis-main",
		DonorName:   "Maria",
		DonorEmail:  "maria@ucdavis.edu",
		CreatedAt:   time.Now(),
		Description: "Works great",
	}

	detail := BuildItemDetail(item)

	assert.Equal(t, "Dorm Essentials", detail.CategoryName)
	assert.Equal(t, "UC Davis Main Campus", detail.CampusName)
	assert.Equal(t, "Maria", detail.Donor.Name)
	assert.True(t, detail.Donor.HasContact)
}

func TestBuildItemDetailAnonymousDonor(t *testing.T) {
	detail := BuildItemDetail(models.Listing{CategoryID: "clothing", LocationID: "ucla"})

	assert.Equal(t, AnonymousDonor, detail.Donor.Name)
	// Без email контакт недоступен, кнопка деградирует в "нет контакта"
	assert.False(t, detail.Donor.HasContact)
	assert.Empty(t, detail.Donor.Email)
}

func TestBuildItemDetailUnknownIDs(t *testing.T) {
	detail := BuildItemDetail(models.Listing{CategoryID: "mystery", LocationID: "atlantis"})

	assert.Equal(t, catalog.UnknownLabel, detail.CategoryName)
	assert.Equal(t, catalog.UnknownLabel, detail.CampusName)
}

func TestFetchListingsNewestFirst(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	newer, older := uuid.New(), uuid.New()

	rows := pgxmock.NewRows(listingColumnNames()).
		AddRow(newer, "Desk Lamp", "Works great", "dorm-essentials", "uc-davis-main",
			"https://img/lamp.jpg", "Segundo, evenings", nil, nil, now).
		AddRow(older, "Jacket", "Warm winter jacket", "clothing", "uc-davis-main",
			"https://img/jacket.jpg", "Tercero lobby", nil, nil, now.Add(-time.Hour))

	// Порядок задает база: запрос обязан сортировать по created_at DESC
	mock.ExpectQuery(`SELECT .+ FROM listings ORDER BY created_at DESC$`).
		WillReturnRows(rows)

	listings, err := fetchListings(context.Background(), mock, 0)
	require.NoError(t, err)
	require.Len(t, listings, 2)

	assert.Equal(t, newer, listings[0].ID)
	assert.Equal(t, older, listings[1].ID)
	assert.True(t, listings[0].CreatedAt.After(listings[1].CreatedAt))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchListingsRecentLimit(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := pgxmock.NewRows(listingColumnNames()).
		AddRow(uuid.New(), "Desk Lamp", "Works great", "dorm-essentials", "uc-davis-main",
			"https://img/lamp.jpg", "Segundo, evenings", nil, nil, time.Now())

	// Блок "недавние" ограничен четырьмя объявлениями
	assert.Equal(t, 4, recentLimit)
	mock.ExpectQuery(`SELECT .+ FROM listings ORDER BY created_at DESC LIMIT \$1`).
		WithArgs(recentLimit).
		WillReturnRows(rows)

	listings, err := fetchListings(context.Background(), mock, recentLimit)
	require.NoError(t, err)
	assert.Len(t, listings, 1)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchListingsScanErrorFails(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	// created_at не временная метка: ошибка скана должна вернуться
	// вызывающему, а не превратиться в усеченный успешный ответ
	rows := pgxmock.NewRows(listingColumnNames()).
		AddRow(uuid.New(), "Desk Lamp", "Works great", "dorm-essentials", "uc-davis-main",
			"https://img/lamp.jpg", "Segundo, evenings", nil, nil, "yesterday")

	mock.ExpectQuery(`SELECT .+ FROM listings ORDER BY created_at DESC$`).
		WillReturnRows(rows)

	_, err = fetchListings(context.Background(), mock, 0)
	assert.Error(t, err)
}
