package service

import (
	"fmt"
	"math"

	"github.com/agloo/themer/internal/model"
)

// Average mixes a and b per channel, giving weight to b. Results wrap
// modulo 255 rather than saturating, so a channel of 255 averaged with
// itself comes back as 0.
func Average(a, b model.RGB, weight float64) model.RGB {
	mix := func(x, y uint8) uint8 {
		// explicit conversions keep the products from fusing into an FMA
		v := int(math.Round(float64(float64(x)*(1-weight)) + float64(float64(y)*weight)))
		v %= 255
		if v < 0 {
			v += 255
		}
		return uint8(v)
	}
	return model.RGB{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B)}
}

// MatchBrightness rescales moving so its luminance matches fixed. Channels
// saturate at 255. A black moving colour is returned unchanged.
func MatchBrightness(fixed, moving model.RGB) model.RGB {
	lm := Luminance(moving)
	if lm == 0 {
		return moving
	}
	slope := float64(Luminance(fixed)) / float64(lm)
	return rgbFromInts(
		int(float64(moving.R)*slope),
		int(float64(moving.G)*slope),
		int(float64(moving.B)*slope),
	)
}

// BlendOne folds the ranked candidates into target. Each step averages the
// candidate with the running colour, weighted by weights[i] times the hue
// distance (capped at 1), then re-anchors brightness to target.
func BlendOne(target model.RGB, candidates []model.RGB, weights []float64) (model.RGB, error) {
	if len(candidates) != len(weights) {
		return model.RGB{}, fmt.Errorf("%w: %d candidates, %d weights", ErrWeightCountMismatch, len(candidates), len(weights))
	}
	acc := target
	for i, c := range candidates {
		w := math.Min(1, weights[i]*HueDistance(target, c))
		acc = Average(c, acc, w)
		acc = MatchBrightness(target, acc)
	}
	return acc, nil
}
