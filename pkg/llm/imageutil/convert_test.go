package imageutil

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeMediaType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"image/jpeg", "image/jpeg"},
		{"image/png", "image/png"},
		{"image/gif", "image/gif"},
		{"image/webp", "image/webp"},
		{"", "image/jpeg"},
		{"application/pdf", "image/jpeg"},
		{"image/tiff", "image/jpeg"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeMediaType(tt.in))
		})
	}
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPrepareUpload_PassThroughSmall(t *testing.T) {
	data := encodePNG(t, 100, 80)

	out, outType := PrepareUpload(data, "image/png", 1920)
	assert.Equal(t, data, out)
	assert.Equal(t, "image/png", outType)
}

func TestPrepareUpload_DownscalesOversized(t *testing.T) {
	data := encodePNG(t, 3000, 1500)

	out, outType := PrepareUpload(data, "image/png", 1920)
	require.NotEqual(t, data, out)
	assert.Equal(t, "image/jpeg", outType)

	img, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 1920, img.Bounds().Dx())
	assert.Equal(t, 960, img.Bounds().Dy())
}

func TestPrepareUpload_TallImage(t *testing.T) {
	data := encodePNG(t, 1000, 4000)

	out, _ := PrepareUpload(data, "image/png", 2000)
	img, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 2000, img.Bounds().Dy())
	assert.Equal(t, 500, img.Bounds().Dx())
}

func TestPrepareUpload_UndecodablePassThrough(t *testing.T) {
	data := []byte("definitely not an image")

	out, outType := PrepareUpload(data, "image/jpeg", 1920)
	assert.Equal(t, data, out)
	assert.Equal(t, "image/jpeg", outType)
}

func TestPrepareUpload_DisabledByZeroEdge(t *testing.T) {
	data := encodePNG(t, 3000, 3000)

	out, outType := PrepareUpload(data, "image/png", 0)
	assert.Equal(t, data, out)
	assert.Equal(t, "image/png", outType)
}
