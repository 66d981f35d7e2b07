package donation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rajivgeraev/campusgive-api/internal/catalog"
	"github.com/rajivgeraev/campusgive-api/internal/imaging"
	"github.com/rajivgeraev/campusgive-api/internal/models"
	"github.com/rajivgeraev/campusgive-api/internal/prefs"
)

// State состояние формы пожертвования
type State int

// Состояния формы: выбор изображения переводит форму через анализ в
// готовность, успешная отправка возвращает в пустое состояние
const (
	StateEmpty State = iota
	StateAnalyzing
	StateReady
	StateSubmitting
)

// ErrBusy уже идет отправка или анализ, новое действие не принимается
var ErrBusy = errors.New("another submission is already in progress")

// ErrNotReady форма еще не готова к отправке (нет изображения)
var ErrNotReady = errors.New("select an image before submitting")

// ErrTitleTooLong название длиннее допустимого
var ErrTitleTooLong = fmt.Errorf("title cannot be more than %d characters", models.MaxTitleLength)

// MissingFieldError обязательное поле не заполнено
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "missing required field: " + e.Field
}

// Classifier предлагает категорию по изображению
type Classifier interface {
	SuggestCategory(ctx context.Context, data []byte, mime string) (string, error)
}

// Uploader загружает изображение и возвращает постоянный публичный URL
type Uploader interface {
	Upload(ctx context.Context, dataURI string) (string, error)
}

// Store сохраняет готовое объявление
type Store interface {
	Insert(ctx context.Context, input models.ListingInput) (uuid.UUID, error)
}

// Fields текстовые поля формы пожертвования
type Fields struct {
	Title       string
	Description string
	CategoryID  string
	PickupInfo  string
	DonorName   string
	DonorEmail  string
}

// Flow управляет отправкой одного объявления: выбор изображения, анализ,
// валидация, загрузка и сохранение. Один экземпляр — одна форма
type Flow struct {
	classifier Classifier
	uploader   Uploader
	store      Store
	prefs      *prefs.Store

	mu             sync.Mutex
	state          State
	image          []byte
	mime           string
	suggested      string
	analysisFailed bool
	fields         Fields
}

// NewFlow создает форму в пустом состоянии
func NewFlow(classifier Classifier, uploader Uploader, store Store, p *prefs.Store) *Flow {
	return &Flow{
		classifier: classifier,
		uploader:   uploader,
		store:      store,
		prefs:      p,
	}
}

// State возвращает текущее состояние формы
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// SuggestedCategory возвращает предложенную категорию и признак того,
// что анализ не удался и категория выбрана случайно
func (f *Flow) SuggestedCategory() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.suggested, f.analysisFailed
}

// Fields возвращает сохраненные поля формы (после неудачной отправки)
func (f *Flow) Fields() Fields {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

// SelectImage принимает изображение и запускает анализ категории.
// Слишком большой или не-графический файл отклоняется до любых сетевых
// вызовов, форма остается пустой. Ошибка анализа не блокирует процесс:
// подставляется случайная категория из известного списка
func (f *Flow) SelectImage(ctx context.Context, data []byte) error {
	f.mu.Lock()
	if f.state == StateAnalyzing || f.state == StateSubmitting {
		f.mu.Unlock()
		return ErrBusy
	}

	mime, err := imaging.Validate(data)
	if err != nil {
		// Отклонение до анализа: форма в пустом состоянии
		f.resetLocked()
		f.mu.Unlock()
		return err
	}

	f.state = StateAnalyzing
	f.image = data
	f.mime = mime
	f.mu.Unlock()

	suggested, err := f.classifier.SuggestCategory(ctx, data, mime)
	failed := false
	if err != nil || !catalog.ValidCategoryID(suggested) {
		suggested = catalog.RandomCategoryID()
		failed = true
	}

	f.mu.Lock()
	f.suggested = suggested
	f.analysisFailed = failed
	f.state = StateReady
	f.mu.Unlock()
	return nil
}

// Submit валидирует поля и отправляет объявление: сначала загрузка
// изображения, затем сохранение. Кампус берется из настроек, не из формы.
// При неудаче форма возвращается в готовое состояние с сохраненными
// полями; уже загруженное изображение при неудачной вставке не удаляется
func (f *Flow) Submit(ctx context.Context, fields Fields) (uuid.UUID, error) {
	f.mu.Lock()
	switch f.state {
	case StateSubmitting:
		f.mu.Unlock()
		return uuid.Nil, ErrBusy
	case StateReady:
		// продолжаем
	default:
		f.mu.Unlock()
		return uuid.Nil, ErrNotReady
	}

	// Пустая категория означает согласие с предложенной
	if fields.CategoryID == "" {
		fields.CategoryID = f.suggested
	}
	f.fields = fields

	if err := validate(f.image, fields); err != nil {
		// Валидация не прошла: никаких сетевых вызовов, поля сохранены
		f.mu.Unlock()
		return uuid.Nil, err
	}

	f.state = StateSubmitting
	image, mime := f.image, f.mime
	f.mu.Unlock()

	url, err := f.uploader.Upload(ctx, imaging.DataURI(image, mime))
	if err != nil {
		f.failSubmit()
		return uuid.Nil, fmt.Errorf("image upload failed: %w", err)
	}

	input := models.ListingInput{
		Title:       fields.Title,
		Description: fields.Description,
		CategoryID:  fields.CategoryID,
		LocationID:  f.prefs.SelectedCampus(),
		ImageURL:    url,
		PickupInfo:  fields.PickupInfo,
		DonorName:   fields.DonorName,
		DonorEmail:  fields.DonorEmail,
	}

	id, err := f.store.Insert(ctx, input)
	if err != nil {
		f.failSubmit()
		return uuid.Nil, fmt.Errorf("saving listing failed: %w", err)
	}

	f.mu.Lock()
	f.resetLocked()
	f.mu.Unlock()
	return id, nil
}

// Reset полностью очищает форму
func (f *Flow) Reset() {
	f.mu.Lock()
	f.resetLocked()
	f.mu.Unlock()
}

// failSubmit возвращает форму в готовое состояние после неудачной отправки
func (f *Flow) failSubmit() {
	f.mu.Lock()
	f.state = StateReady
	f.mu.Unlock()
}

func (f *Flow) resetLocked() {
	f.state = StateEmpty
	f.image = nil
	f.mime = ""
	f.suggested = ""
	f.analysisFailed = false
	f.fields = Fields{}
}

// validate проверяет обязательные поля перед отправкой
func validate(image []byte, fields Fields) error {
	if len(image) == 0 {
		return &MissingFieldError{Field: "image"}
	}
	if fields.Title == "" {
		return &MissingFieldError{Field: "title"}
	}
	// Лимит в символах, не в байтах: так же считает char_length в базе
	if utf8.RuneCountInString(fields.Title) > models.MaxTitleLength {
		return ErrTitleTooLong
	}
	if fields.Description == "" {
		return &MissingFieldError{Field: "description"}
	}
	if fields.CategoryID == "" {
		return &MissingFieldError{Field: "category"}
	}
	if fields.PickupInfo == "" {
		return &MissingFieldError{Field: "pickupInfo"}
	}
	return nil
}
