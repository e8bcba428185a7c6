package service

import (
	"fmt"

	"github.com/agloo/themer/internal/config"
	"github.com/agloo/themer/internal/model"
)

// SeparateColors pushes moving away from fixed along their difference,
// scaled by distance.
func SeparateColors(fixed, moving model.RGB, distance float64) model.RGB {
	move := func(f, m uint8) int {
		d := (float64(m) - float64(f)) * distance
		return int(clampFloat(float64(m)+d, 0, 255))
	}
	return rgbFromInts(move(fixed.R, moving.R), move(fixed.G, moving.G), move(fixed.B, moving.B))
}

// EnsureContrast separates c from background when their Euclidean distance
// is within threshold.
func EnsureContrast(background, c model.RGB, threshold, amount float64) model.RGB {
	if EuclideanDistance(c, background) <= threshold {
		return SeparateColors(background, c, amount)
	}
	return c
}

func EnsurePaletteContrast(background model.RGB, p model.Palette, threshold, amount float64) model.Palette {
	var out model.Palette
	for i, c := range p {
		out[i] = EnsureContrast(background, c, threshold, amount)
	}
	return out
}

// BackgroundContrast runs EnsurePaletteContrast against the configured
// THEMER_BACKGROUND with the configured threshold and amount.
func BackgroundContrast(cfg config.Config, p model.Palette) (model.Palette, error) {
	bg, err := ParseHex(cfg.Background)
	if err != nil {
		return model.Palette{}, fmt.Errorf("background: %w", err)
	}
	return EnsurePaletteContrast(bg, p, cfg.ContrastThreshold, cfg.ContrastAmount), nil
}

// AffectColor averages c halfway toward every colour whose hue distance is
// below threshold.
func AffectColor(c model.RGB, colors []model.RGB, threshold float64) model.RGB {
	for _, o := range colors {
		if HueDistance(c, o) < threshold {
			c = Average(c, o, 0.5)
		}
	}
	return c
}
