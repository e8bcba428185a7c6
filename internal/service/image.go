package service

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/agloo/themer/internal/model"
	"github.com/disintegration/imaging"
)

var ErrUndecodableImage = errors.New("undecodable image")

// ExtractColors downsamples an encoded image to a grid x grid thumbnail and
// returns its distinct pixel colours in row-major order.
func ExtractColors(imageBytes []byte, grid int) ([]model.RGB, error) {
	if grid <= 0 {
		return nil, errors.New("grid size must be > 0")
	}
	img, _, err := image.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodableImage, err)
	}
	resized := imaging.Resize(img, grid, grid, imaging.Lanczos)

	seen := make(map[model.RGB]struct{}, grid*grid)
	pixels := make([]model.RGB, 0, grid*grid)
	for y := 0; y < grid; y++ {
		for x := 0; x < grid; x++ {
			r, g, b, _ := resized.At(x, y).RGBA()
			c := model.RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
			if _, dup := seen[c]; dup {
				continue
			}
			seen[c] = struct{}{}
			pixels = append(pixels, c)
		}
	}
	return pixels, nil
}
