package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/agloo/themer/internal/logger"
	"github.com/agloo/themer/internal/model"
	"github.com/lucasb-eyer/go-colorful"
)

// Space selects the colour space a gradient is interpolated in.
type Space string

const (
	SpaceRGB Space = "rgb"
	SpaceHCL Space = "hcl"
	SpaceLab Space = "lab"
	SpaceLuv Space = "luv"
)

func ParseSpace(s string) (Space, error) {
	switch Space(strings.ToLower(strings.TrimSpace(s))) {
	case "", SpaceRGB:
		return SpaceRGB, nil
	case SpaceHCL:
		return SpaceHCL, nil
	case SpaceLab:
		return SpaceLab, nil
	case SpaceLuv:
		return SpaceLuv, nil
	}
	return "", fmt.Errorf("unknown color space %q (valid: rgb, hcl, lab, luv)", s)
}

// Range returns steps colours walking from `from` to `to`. The start colour
// is excluded and the end colour is the last element.
func Range(from, to model.RGB, steps int, space Space) []model.RGB {
	if steps <= 0 {
		return nil
	}
	if space == SpaceRGB || space == "" {
		return linearRange(from, to, steps)
	}

	a := toColorful(from)
	b := toColorful(to)
	out := make([]model.RGB, 0, steps)
	for k := 1; k <= steps; k++ {
		t := float64(k) / float64(steps)
		var c colorful.Color
		switch space {
		case SpaceHCL:
			c = a.BlendHcl(b, t)
		case SpaceLab:
			c = a.BlendLab(b, t)
		case SpaceLuv:
			c = a.BlendLuv(b, t)
		default:
			c = a.BlendRgb(b, t)
		}
		out = append(out, fromColorful(c.Clamped()))
	}
	if len(out) > 0 {
		out[len(out)-1] = to
	}
	return out
}

// linearRange steps each channel by (to-from)/steps and truncates.
func linearRange(from, to model.RGB, steps int) []model.RGB {
	res := float64(steps)
	stepR := (float64(to.R) - float64(from.R)) / res
	stepG := (float64(to.G) - float64(from.G)) / res
	stepB := (float64(to.B) - float64(from.B)) / res
	r, g, b := float64(from.R), float64(from.G), float64(from.B)

	out := make([]model.RGB, 0, steps)
	for i := 0; i < steps; i++ {
		r += stepR
		g += stepG
		b += stepB
		out = append(out, rgbFromInts(int(r), int(g), int(b)))
	}
	return out
}

// Cycle chains ranges through every consecutive pair and closes the loop
// back to the first colour.
func Cycle(colors []model.RGB, steps int, space Space) []model.RGB {
	if len(colors) == 0 {
		return nil
	}
	out := make([]model.RGB, 0, len(colors)*steps)
	for i := 0; i < len(colors)-1; i++ {
		out = append(out, Range(colors[i], colors[i+1], steps, space)...)
	}
	return append(out, Range(colors[len(colors)-1], colors[0], steps, space)...)
}

// Fade moves c toward white; amount 0 leaves it, 1 is white.
func Fade(c model.RGB, amount float64) model.RGB {
	f := func(ch uint8) int {
		v := float64(ch)
		if v == 0 {
			v = 1
		}
		return int(clampFloat(v+(255-v)*amount, 0, 255))
	}
	return rgbFromInts(f(c.R), f(c.G), f(c.B))
}

// Darken moves c toward black; amount 0 leaves it, 1 is black.
func Darken(c model.RGB, amount float64) model.RGB {
	f := func(ch uint8) int {
		v := float64(ch)
		if v == 0 {
			v = 1
		}
		return int(clampFloat(v-v*amount, 0, 255))
	}
	return rgbFromInts(f(c.R), f(c.G), f(c.B))
}

func toColorful(c model.RGB) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color) model.RGB {
	r, g, b := c.RGB255()
	return model.RGB{R: r, G: g, B: b}
}

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

type GradientService struct {
	events Broadcaster
	log    *logger.Logger
}

func NewGradientService(events Broadcaster) *GradientService {
	return &GradientService{events: events, log: logger.New("gradient")}
}

// Generate runs one gradient request and returns the colours as hex.
func (s *GradientService) Generate(req model.GradientRequest) ([]string, error) {
	colors, err := ParseHexList(req.Colors)
	if err != nil {
		return nil, err
	}
	if len(colors) == 0 {
		return nil, errors.New("at least one color required")
	}
	if req.Steps <= 0 {
		req.Steps = 1
	}
	space, err := ParseSpace(req.Space)
	if err != nil {
		return nil, err
	}
	if req.Amount < 0 || req.Amount > 1 {
		return nil, errors.New("amount must be in [0,1]")
	}

	var out []model.RGB
	switch req.Mode {
	case "", model.GradientCycle:
		out = Cycle(colors, req.Steps, space)
	case model.GradientFade:
		for _, c := range colors {
			out = append(out, Range(c, Fade(c, req.Amount), req.Steps, space)...)
		}
	case model.GradientDarken:
		for _, c := range colors {
			out = append(out, Range(c, Darken(c, req.Amount), req.Steps, space)...)
		}
	default:
		return nil, fmt.Errorf("unsupported gradient mode %q", req.Mode)
	}

	hex := HexList(out)
	s.log.Debug("generated %d colors mode=%s space=%s", len(hex), req.Mode, space)
	if s.events != nil {
		s.events.BroadcastEvent(model.Event{Type: "gradient.generated", Payload: hex, CreatedAt: time.Now().UnixMilli()})
	}
	return hex, nil
}
