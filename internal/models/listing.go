package models

import (
	"time"

	"github.com/google/uuid"
)

// MaxTitleLength максимальная длина названия объявления
const MaxTitleLength = 100

// Listing представляет объявление о бесплатной отдаче вещи
type Listing struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CategoryID  string    `json:"categoryId"`
	LocationID  string    `json:"locationId"`
	ImageURL    string    `json:"imageUrl"`
	PickupInfo  string    `json:"pickupInfo"`
	DonorName   string    `json:"donorName,omitempty"`
	DonorEmail  string    `json:"donorEmail,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ListingInput представляет поля нового объявления до присвоения ID.
// createdAt клиент не передает: метку времени ставит сервер при вставке
type ListingInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	CategoryID  string `json:"categoryId"`
	LocationID  string `json:"locationId"`
	ImageURL    string `json:"imageUrl"`
	PickupInfo  string `json:"pickupInfo"`
	DonorName   string `json:"donorName,omitempty"`
	DonorEmail  string `json:"donorEmail,omitempty"`
}

// ItemDetail представляет страницу объявления с раскрытыми названиями
type ItemDetail struct {
	Listing      Listing `json:"listing"`
	CategoryName string  `json:"categoryName"`
	CampusName   string  `json:"campusName"`
	Donor        Donor   `json:"donor"`
}

// Donor представляет контактный блок дарителя на странице объявления
type Donor struct {
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	HasContact bool   `json:"hasContact"`
}
