package service

import (
	"testing"

	"github.com/agloo/themer/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAverage(t *testing.T) {
	a := model.RGB{R: 100, G: 0, B: 200}
	b := model.RGB{R: 200, G: 100, B: 0}
	assert.Equal(t, a, Average(a, b, 0))
	assert.Equal(t, b, Average(a, b, 1))
	assert.Equal(t, model.RGB{R: 150, G: 50, B: 100}, Average(a, b, 0.5))
	assert.Equal(t, model.RGB{R: 125, G: 25, B: 150}, Average(a, b, 0.25))
}

func TestAverageSelfIsIdentityBelow255(t *testing.T) {
	for _, c := range sampleColors {
		if c.R == 255 || c.G == 255 || c.B == 255 {
			continue
		}
		for _, w := range []float64{0, 0.1, 0.5, 0.7, 1} {
			assert.Equal(t, c, Average(c, c, w))
		}
	}
}

func TestAverageWrapsAt255(t *testing.T) {
	// channels reduce modulo 255, so full intensity wraps to zero
	white := model.RGB{R: 255, G: 255, B: 255}
	assert.Equal(t, model.RGB{}, Average(white, white, 0.3))
	assert.Equal(t, model.RGB{R: 0, G: 10, B: 0}, Average(model.RGB{R: 255, G: 10}, model.RGB{R: 255, G: 10}, 0.5))
}

func TestMatchBrightness(t *testing.T) {
	for _, c := range sampleColors {
		assert.Equal(t, c, MatchBrightness(c, c))
	}
	fixed := model.RGB{R: 30, G: 30, B: 30}
	moving := model.RGB{R: 10, G: 20, B: 0}
	assert.Equal(t, model.RGB{R: 30, G: 60, B: 0}, MatchBrightness(fixed, moving))

	assert.Equal(t, model.RGB{}, MatchBrightness(fixed, model.RGB{}), "black is left alone")
	assert.Equal(t, model.RGB{R: 255, G: 0, B: 0}, MatchBrightness(model.RGB{R: 255, G: 255, B: 255}, model.RGB{R: 1}), "channels saturate")
}

func TestBlendOne(t *testing.T) {
	target := MustParseHex("cc6666")
	candidates := hexes(t, "cc7777", "777777")

	got, err := BlendOne(target, candidates, []float64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, "8d8585", Hex(got))
}

func TestBlendOneGatedCandidatesLeaveTarget(t *testing.T) {
	// every candidate is far enough in hue that the weight caps at 1,
	// which keeps the running colour
	target := MustParseHex("282a2e")
	got, err := BlendOne(target, hexes(t, "ff0000", "00ff00", "0000ff"), FixedWeights())
	require.NoError(t, err)
	assert.Equal(t, target, got)
}

func TestBlendOneWeightCountMismatch(t *testing.T) {
	_, err := BlendOne(MustParseHex("282a2e"), hexes(t, "ff0000"), []float64{1, 2})
	assert.ErrorIs(t, err, ErrWeightCountMismatch)
}
