package service

import (
	"testing"

	"github.com/agloo/themer/internal/model"
	"github.com/stretchr/testify/assert"
)

var sampleColors = []model.RGB{
	{R: 0x28, G: 0x2a, B: 0x2e},
	{R: 255, G: 0, B: 0},
	{R: 0, G: 0, B: 0},
	{R: 255, G: 255, B: 255},
	{R: 0x8c, G: 0x94, B: 0x40},
	{R: 1, G: 2, B: 3},
}

func TestLuminance(t *testing.T) {
	assert.Equal(t, 0x28+0x2a+0x2e, Luminance(model.RGB{R: 0x28, G: 0x2a, B: 0x2e}))
	assert.Equal(t, 765, Luminance(model.RGB{R: 255, G: 255, B: 255}))
}

func TestLuminanceDistance(t *testing.T) {
	assert.Equal(t, 765.0*765.0, LuminanceDistance(model.RGB{}, model.RGB{R: 255, G: 255, B: 255}))
}

func TestEuclideanDistance(t *testing.T) {
	a := model.RGB{R: 10, G: 20, B: 30}
	b := model.RGB{R: 13, G: 16, B: 30}
	assert.Equal(t, 25.0, EuclideanDistance(a, b))
	assert.Equal(t, 25.0, EuclideanDistance(b, a))
}

func TestHueRatio(t *testing.T) {
	assert.Equal(t, [3]float64{}, HueRatio(model.RGB{}), "black has no hue")
	assert.Equal(t, [3]float64{1, 0, 0}, HueRatio(model.RGB{R: 7}))
	r := HueRatio(model.RGB{R: 10, G: 20, B: 70})
	assert.InDelta(t, 0.1, r[0], 1e-12)
	assert.InDelta(t, 0.2, r[1], 1e-12)
	assert.InDelta(t, 0.7, r[2], 1e-12)
}

func TestDistancesAreSymmetricWithZeroSelfDistance(t *testing.T) {
	for _, a := range sampleColors {
		assert.Zero(t, HueDistance(a, a))
		assert.Zero(t, LuminanceDistance(a, a))
		for _, b := range sampleColors {
			assert.Equal(t, HueDistance(a, b), HueDistance(b, a))
			assert.Equal(t, LuminanceDistance(a, b), LuminanceDistance(b, a))
		}
	}
}

func TestHueDistanceIgnoresScale(t *testing.T) {
	assert.InDelta(t, 0, HueDistance(model.RGB{R: 10, G: 20, B: 30}, model.RGB{R: 20, G: 40, B: 60}), 1e-15)
}

func TestGatedHueDistance(t *testing.T) {
	target := model.RGB{R: 0x28, G: 0x2a, B: 0x2e}
	red := model.RGB{R: 255}
	assert.Equal(t, GatedSentinel, GatedHueDistance(red, target, DefaultThreshold), "red is far brighter than the target")

	dim := model.RGB{R: 0x30, G: 0x20, B: 0x28}
	assert.Equal(t, HueDistance(dim, target), GatedHueDistance(dim, target, DefaultThreshold))

	// the gate is strict: a distance equal to the threshold is still ranked by hue
	assert.Equal(t, HueDistance(red, target), GatedHueDistance(red, target, LuminanceDistance(red, target)))
}
