package service

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/agloo/themer/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int, at func(x, y int) color.Color) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, at(x, y))
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestExtractColorsDeduplicates(t *testing.T) {
	red := color.NRGBA{R: 0xcc, G: 0x33, B: 0x33, A: 0xff}
	blue := color.NRGBA{R: 0x33, G: 0x33, B: 0xcc, A: 0xff}
	b := encodePNG(t, 4, 4, func(x, _ int) color.Color {
		if x < 2 {
			return red
		}
		return blue
	})

	got, err := ExtractColors(b, 4)
	require.NoError(t, err)
	assert.Equal(t, []model.RGB{{R: 0xcc, G: 0x33, B: 0x33}, {R: 0x33, G: 0x33, B: 0xcc}}, got)
}

func TestExtractColorsErrors(t *testing.T) {
	_, err := ExtractColors([]byte("not an image"), 4)
	assert.ErrorIs(t, err, ErrUndecodableImage)

	_, err = ExtractColors(nil, 0)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUndecodableImage)
}
