package prefs

import (
	"encoding/json"
	"log"
	"os"
	"sync"

	"github.com/rajivgeraev/campusgive-api/internal/browse"
	"github.com/rajivgeraev/campusgive-api/internal/catalog"
)

// Темы оформления
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

// persisted описывает сохраняемую между сессиями часть настроек.
// Фильтры намеренно не сохраняются и сбрасываются при создании стора
type persisted struct {
	SelectedCampus string `json:"selectedCampus"`
	Theme          string `json:"theme"`
}

// Store хранит пользовательские настройки. Передается явно, а не через
// глобальный синглтон, чтобы тесты могли создавать изолированные экземпляры
type Store struct {
	mu      sync.RWMutex
	path    string // "" — без персистентности
	campus  string
	theme   string
	filters browse.Filters
}

// NewStore создает стор с настройками по умолчанию без персистентности
func NewStore() *Store {
	return &Store{
		campus: catalog.DefaultCampusID,
		theme:  ThemeLight,
	}
}

// NewStoreWithFile создает стор, сохраняющий кампус и тему в JSON-файл.
// Отсутствующий или нечитаемый файл дает настройки по умолчанию
func NewStoreWithFile(path string) *Store {
	s := NewStore()
	s.path = path

	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}

	var p persisted
	if err := json.Unmarshal(data, &p); err != nil {
		log.Printf("Ошибка чтения файла настроек %s: %v", path, err)
		return s
	}

	if catalog.ValidCampusID(p.SelectedCampus) {
		s.campus = p.SelectedCampus
	}
	if validTheme(p.Theme) {
		s.theme = p.Theme
	}
	return s
}

// SelectedCampus возвращает выбранный кампус
func (s *Store) SelectedCampus() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.campus
}

// SetSelectedCampus сохраняет выбранный кампус. Неизвестный ID игнорируется
func (s *Store) SetSelectedCampus(id string) {
	if !catalog.ValidCampusID(id) {
		return
	}
	s.mu.Lock()
	s.campus = id
	s.save()
	s.mu.Unlock()
}

// Theme возвращает выбранную тему
func (s *Store) Theme() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// SetTheme сохраняет тему. Неизвестное значение игнорируется
func (s *Store) SetTheme(theme string) {
	if !validTheme(theme) {
		return
	}
	s.mu.Lock()
	s.theme = theme
	s.save()
	s.mu.Unlock()
}

// Filters возвращает текущие фильтры страницы поиска
func (s *Store) Filters() browse.Filters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filters
}

// SetFilters заменяет текущие фильтры. Между сессиями они не сохраняются
func (s *Store) SetFilters(f browse.Filters) {
	s.mu.Lock()
	s.filters = f
	s.mu.Unlock()
}

// ResetFilters выключает все предикаты
func (s *Store) ResetFilters() {
	s.mu.Lock()
	s.filters.Reset()
	s.mu.Unlock()
}

// save пишет персистентную часть на диск. Вызывается под мьютексом
func (s *Store) save() {
	if s.path == "" {
		return
	}
	data, err := json.Marshal(persisted{SelectedCampus: s.campus, Theme: s.theme})
	if err != nil {
		return
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		log.Printf("Ошибка записи файла настроек %s: %v", s.path, err)
	}
}

func validTheme(theme string) bool {
	return theme == ThemeLight || theme == ThemeDark || theme == ThemeSystem
}
