package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"
	"strings"

	"golang.org/x/image/webp"
)

// MaxUploadSize максимальный размер изображения (5MB)
const MaxUploadSize = 5 << 20

// ErrTooLarge размер файла превышает лимит
var ErrTooLarge = errors.New("file size exceeds 5MB limit")

// ErrNotImage данные не являются поддерживаемым изображением
var ErrNotImage = errors.New("unsupported image format (only JPEG, PNG and WEBP accepted)")

// AllowedMIME список принимаемых MIME-типов
var AllowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// Validate проверяет размер и формат изображения до любых сетевых вызовов.
// Тип определяется по содержимому, а не по заголовкам клиента.
// Возвращает определенный MIME-тип
func Validate(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrNotImage
	}
	if len(data) > MaxUploadSize {
		return "", ErrTooLarge
	}

	mime := http.DetectContentType(data)
	if !AllowedMIME[mime] {
		return "", ErrNotImage
	}

	// Убеждаемся, что изображение действительно декодируется
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return "", ErrNotImage
	}

	return mime, nil
}

// DataURI кодирует изображение в транспортную форму data URI
func DataURI(data []byte, mime string) string {
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data))
}

// ParseDataURI декодирует data URI (или голый base64) обратно в байты
func ParseDataURI(s string) ([]byte, error) {
	if s == "" {
		return nil, errors.New("no image data provided")
	}

	// Срезаем префикс data:image/...;base64, если он есть
	if idx := strings.Index(s, ","); idx >= 0 && strings.HasPrefix(s, "data:") {
		s = s[idx+1:]
	}

	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 image data: %w", err)
	}
	return data, nil
}

func init() {
	// Регистрируем декодеры явно (jpeg включен по умолчанию)
	image.RegisterFormat("jpeg", "\xff\xd8", jpeg.Decode, jpeg.DecodeConfig)
	image.RegisterFormat("png", "\x89PNG", png.Decode, png.DecodeConfig)
	image.RegisterFormat("webp", "RIFF????WEBPVP8", webp.Decode, webp.DecodeConfig)
}
