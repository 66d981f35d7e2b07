package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngBytes кодирует маленький одноцветный PNG для тестов
func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestValidateAcceptsPNG(t *testing.T) {
	mime, err := Validate(pngBytes(t))
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)
}

func TestValidateRejectsOversized(t *testing.T) {
	// Размер проверяется до декодирования, содержимое не важно
	data := make([]byte, MaxUploadSize+1)
	copy(data, []byte{0xff, 0xd8, 0xff})

	_, err := Validate(data)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestValidateAcceptsExactLimit(t *testing.T) {
	// Ровно 5MB не отклоняется по размеру: ошибка дальше уже о формате
	data := make([]byte, MaxUploadSize)
	_, err := Validate(data)
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestValidateRejectsNonImage(t *testing.T) {
	_, err := Validate([]byte("just a plain text file"))
	assert.ErrorIs(t, err, ErrNotImage)

	_, err = Validate(nil)
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestValidateRejectsCorruptPNG(t *testing.T) {
	// Валидная сигнатура, но обрезанное содержимое
	data := pngBytes(t)[:12]
	_, err := Validate(data)
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestDataURIRoundTrip(t *testing.T) {
	data := pngBytes(t)

	uri := DataURI(data, "image/png")
	assert.True(t, len(uri) > len(data))
	assert.Contains(t, uri, "data:image/png;base64,")

	decoded, err := ParseDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, data, decoded)
}

func TestParseDataURIBareBase64(t *testing.T) {
	// Голый base64 без префикса data: тоже принимается
	data := pngBytes(t)
	uri := DataURI(data, "image/png")
	bare := uri[len("data:image/png;base64,"):]

	decoded, err := ParseDataURI(bare)
	require.NoError(t, err)
	assert.Equal(t, data, decoded)
}

func TestParseDataURIErrors(t *testing.T) {
	_, err := ParseDataURI("")
	assert.Error(t, err)

	_, err = ParseDataURI("data:image/png;base64,@@@not-base64@@@")
	assert.Error(t, err)
}
