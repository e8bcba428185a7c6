package model

import "time"

// PaletteSize is the number of slots in a terminal colour scheme.
const PaletteSize = 16

type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Palette is a terminal colour scheme; index i is terminal colour i.
type Palette [PaletteSize]RGB

// MixOptions configures one scheme mix. Weights[i] applies to the
// i-th closest candidate, so len(Weights) must equal Adjacency.
type MixOptions struct {
	Adjacency int       `json:"adjacency"`
	Weights   []float64 `json:"weights"`
	Threshold float64   `json:"threshold"`
}

type SchemeSource string

const (
	SourceDefault SchemeSource = "default"
	SourceXrdb    SchemeSource = "xrdb"
	SourceBase16  SchemeSource = "base16"
	SourceMix     SchemeSource = "mix"
	SourceAPI     SchemeSource = "api"
)

type Scheme struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Colors    []string     `json:"colors"`
	Source    SchemeSource `json:"source"`
	CreatedAt int64        `json:"created_at_unix_ms"`
}

type MixRecord struct {
	ID        string     `json:"id"`
	Inputs    []string   `json:"inputs"`
	Base      []string   `json:"base"`
	Result    []string   `json:"result"`
	Options   MixOptions `json:"options"`
	Contrast  bool       `json:"contrast,omitempty"`
	CreatedAt int64      `json:"created_at_unix_ms"`
}

type GradientMode string

const (
	GradientCycle  GradientMode = "cycle"
	GradientFade   GradientMode = "fade"
	GradientDarken GradientMode = "darken"
)

type GradientRequest struct {
	Colors []string     `json:"colors"`
	Mode   GradientMode `json:"mode"`
	Amount float64      `json:"amount"`
	Steps  int          `json:"steps"`
	Space  string       `json:"space"`
}

type StoredState struct {
	Schemes           map[string]Scheme `json:"schemes"`
	History           []MixRecord       `json:"history"`
	LastUpdatedUnixMS int64             `json:"last_updated_unix_ms"`
	CreatedAt         time.Time         `json:"created_at"`
}

type Event struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	CreatedAt int64       `json:"created_at_unix_ms"`
}
