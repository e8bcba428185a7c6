package service

import (
	"fmt"
	"sync"

	"github.com/agloo/themer/internal/model"
)

// DefaultThreshold keeps dark slots from absorbing light inputs and vice
// versa.
const DefaultThreshold = 0x1550

// DefaultPalette is the terminal.sexy default scheme.
var DefaultPalette = model.Palette{
	MustParseHex("282a2e"), MustParseHex("a54242"), MustParseHex("8c9440"), MustParseHex("de935f"),
	MustParseHex("5f819d"), MustParseHex("85678f"), MustParseHex("5e8d87"), MustParseHex("707880"),
	MustParseHex("373b41"), MustParseHex("cc6666"), MustParseHex("b5bd68"), MustParseHex("f0c674"),
	MustParseHex("81a2be"), MustParseHex("b294bb"), MustParseHex("8abeb7"), MustParseHex("c5c8c6"),
}

// LinearWeights returns weight[i] = base + decay*i for n adjacencies.
func LinearWeights(n int, base, decay float64) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = base + decay*float64(i)
	}
	return out
}

// FixedWeights is the hard-coded three-adjacency weighting.
func FixedWeights() []float64 {
	return []float64{20, 25, 30}
}

func DefaultMixOptions() model.MixOptions {
	return model.MixOptions{
		Adjacency: 3,
		Weights:   LinearWeights(3, 15, 3),
		Threshold: DefaultThreshold,
	}
}

func ValidateMixOptions(opts model.MixOptions) error {
	if opts.Adjacency < 1 {
		return fmt.Errorf("%w: adjacency must be >= 1, got %d", ErrInvalidOptions, opts.Adjacency)
	}
	if len(opts.Weights) != opts.Adjacency {
		return fmt.Errorf("%w: adjacency %d, %d weights", ErrWeightCountMismatch, opts.Adjacency, len(opts.Weights))
	}
	if opts.Threshold < 0 {
		return fmt.Errorf("%w: threshold must be >= 0", ErrInvalidOptions)
	}
	return nil
}

// Mix remaps scheme onto the input colours. Each slot is blended toward its
// hue-closest inputs; any failure aborts the whole mix.
func Mix(inputs []model.RGB, scheme model.Palette, opts model.MixOptions) (model.Palette, error) {
	if err := ValidateMixOptions(opts); err != nil {
		return model.Palette{}, err
	}
	if len(inputs) < opts.Adjacency {
		return model.Palette{}, fmt.Errorf("%w: need %d input colors, have %d", ErrInsufficientCandidates, opts.Adjacency, len(inputs))
	}

	var (
		out  model.Palette
		errs [model.PaletteSize]error
		wg   sync.WaitGroup
	)
	for i := range scheme {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out[i], errs[i] = mixSlot(inputs, scheme[i], opts)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return model.Palette{}, fmt.Errorf("slot %d: %w", i, err)
		}
	}
	return out, nil
}

func mixSlot(inputs []model.RGB, target model.RGB, opts model.MixOptions) (model.RGB, error) {
	candidates, err := SelectClosest(inputs, target, opts.Adjacency, opts.Threshold)
	if err != nil {
		return model.RGB{}, err
	}
	return BlendOne(target, candidates, opts.Weights)
}

// MixHex is Mix over hex strings. scheme must hold exactly 16 colours and
// weights sets the adjacency.
func MixHex(inputs, scheme []string, weights []float64, threshold float64) ([]string, error) {
	in, err := ParseHexList(inputs)
	if err != nil {
		return nil, fmt.Errorf("inputs: %w", err)
	}
	base, err := PaletteFromHex(scheme)
	if err != nil {
		return nil, err
	}
	out, err := Mix(in, base, model.MixOptions{Adjacency: len(weights), Weights: weights, Threshold: threshold})
	if err != nil {
		return nil, err
	}
	return HexList(out[:]), nil
}

func PaletteFromHex(colors []string) (model.Palette, error) {
	if len(colors) != model.PaletteSize {
		return model.Palette{}, fmt.Errorf("%w: want %d colors, have %d", ErrIncompletePalette, model.PaletteSize, len(colors))
	}
	var p model.Palette
	for i, s := range colors {
		c, err := ParseHex(s)
		if err != nil {
			return model.Palette{}, fmt.Errorf("scheme color %d: %w", i, err)
		}
		p[i] = c
	}
	return p, nil
}
