package service

import (
	"fmt"
	"sort"

	"github.com/agloo/themer/internal/model"
)

// SelectClosest returns the n colours of pool closest to target under
// GatedHueDistance, nearest first. Ties keep pool order. pool is not
// modified.
func SelectClosest(pool []model.RGB, target model.RGB, n int, threshold float64) ([]model.RGB, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: adjacency must be >= 1, got %d", ErrInvalidOptions, n)
	}
	if len(pool) < n {
		return nil, fmt.Errorf("%w: need %d input colors, have %d", ErrInsufficientCandidates, n, len(pool))
	}

	type ranked struct {
		c    model.RGB
		dist float64
	}
	sorted := make([]ranked, len(pool))
	for i, c := range pool {
		sorted[i] = ranked{c: c, dist: GatedHueDistance(c, target, threshold)}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].dist < sorted[j].dist
	})

	out := make([]model.RGB, n)
	for i := range out {
		out[i] = sorted[i].c
	}
	return out, nil
}
