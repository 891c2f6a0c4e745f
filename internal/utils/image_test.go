package utils

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noisePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	rng := rand.New(rand.NewSource(42))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{uint8(rng.Intn(256)), uint8(rng.Intn(256)), uint8(rng.Intn(256)), 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestRecompressImage_UnderLimit(t *testing.T) {
	data := noisePNG(t, 8, 8)
	got, err := RecompressImage(data, len(data))
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestRecompressImage_Shrinks(t *testing.T) {
	data := noisePNG(t, 300, 300)
	limit := len(data) / 4

	got, err := RecompressImage(data, limit)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(got), limit)

	_, _, err = image.Decode(bytes.NewReader(got))
	assert.NoError(t, err)
}

func TestRecompressImage_InvalidData(t *testing.T) {
	_, err := RecompressImage([]byte("not an image at all"), 4)
	assert.Error(t, err)
}
