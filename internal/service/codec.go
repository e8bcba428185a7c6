package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/agloo/themer/internal/model"
)

var (
	ErrMalformedColor         = errors.New("malformed color")
	ErrInsufficientCandidates = errors.New("insufficient candidates")
	ErrWeightCountMismatch    = errors.New("weight count does not match adjacency")
	ErrIncompletePalette      = errors.New("incomplete palette")
	ErrInvalidOptions         = errors.New("invalid mix options")
)

// ParseHex decodes "rrggbb" or "#rrggbb". Anything other than exactly six
// hex digits after the optional '#' is rejected.
func ParseHex(text string) (model.RGB, error) {
	s := strings.TrimSpace(text)
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return model.RGB{}, fmt.Errorf("%w: %q", ErrMalformedColor, text)
	}
	var ch [3]uint8
	for i := range ch {
		v, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return model.RGB{}, fmt.Errorf("%w: %q", ErrMalformedColor, text)
		}
		ch[i] = uint8(v)
	}
	return model.RGB{R: ch[0], G: ch[1], B: ch[2]}, nil
}

func MustParseHex(text string) model.RGB {
	c, err := ParseHex(text)
	if err != nil {
		panic("MustParseHex: " + err.Error())
	}
	return c
}

func ParseHexList(texts []string) ([]model.RGB, error) {
	out := make([]model.RGB, 0, len(texts))
	for i, t := range texts {
		c, err := ParseHex(t)
		if err != nil {
			return nil, fmt.Errorf("color %d: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// Hex renders c as six lowercase hex digits without a leading '#'.
func Hex(c model.RGB) string {
	return fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B)
}

func HexList(colors []model.RGB) []string {
	out := make([]string, 0, len(colors))
	for _, c := range colors {
		out = append(out, Hex(c))
	}
	return out
}

func Clamp(n int) int {
	if n > 255 {
		return 255
	}
	if n < 0 {
		return 0
	}
	return n
}

func rgbFromInts(r, g, b int) model.RGB {
	return model.RGB{R: uint8(Clamp(r)), G: uint8(Clamp(g)), B: uint8(Clamp(b))}
}
