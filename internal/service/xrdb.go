package service

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/agloo/themer/internal/model"
)

var xrdbColorKey = regexp.MustCompile(`color(\d+)\s*:`)

// ParseXrdb reads a 16-colour scheme from xrdb lines such as
// "*color3: #de935f". The first line for each slot wins and its colour is
// the last six characters of the line. Every slot must be present.
func ParseXrdb(r io.Reader) (model.Palette, error) {
	var (
		p     model.Palette
		found [model.PaletteSize]bool
	)
	s := bufio.NewScanner(r)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "!") {
			continue
		}
		m := xrdbColorKey.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		slot, err := strconv.Atoi(m[1])
		if err != nil || slot < 0 || slot >= model.PaletteSize || found[slot] {
			continue
		}
		if len(line) < 6 {
			return model.Palette{}, fmt.Errorf("color%d: %w", slot, ErrMalformedColor)
		}
		c, err := ParseHex(line[len(line)-6:])
		if err != nil {
			return model.Palette{}, fmt.Errorf("color%d: %w", slot, err)
		}
		p[slot] = c
		found[slot] = true
	}
	if err := s.Err(); err != nil {
		return model.Palette{}, err
	}
	if missing := missingSlots(found); len(missing) > 0 {
		return model.Palette{}, fmt.Errorf("%w: missing %s", ErrIncompletePalette, strings.Join(missing, ", "))
	}
	return p, nil
}

func missingSlots(found [model.PaletteSize]bool) []string {
	var out []string
	for i, ok := range found {
		if !ok {
			out = append(out, "color"+strconv.Itoa(i))
		}
	}
	return out
}

func WriteXrdb(w io.Writer, p model.Palette) error {
	for i, c := range p {
		if _, err := fmt.Fprintf(w, "*color%d:\t#%s\n", i, Hex(c)); err != nil {
			return err
		}
	}
	return nil
}

// WriteLines prints one "#rrggbb" line per slot.
func WriteLines(w io.Writer, p model.Palette) error {
	for _, c := range p {
		if _, err := fmt.Fprintf(w, "#%s\n", Hex(c)); err != nil {
			return err
		}
	}
	return nil
}

// LoadScheme reads a scheme file, choosing base16 YAML for .yaml/.yml and
// xrdb otherwise.
func LoadScheme(path string) (model.Palette, model.SchemeSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Palette{}, "", err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		p, err := ParseBase16(f)
		if err != nil {
			return model.Palette{}, "", fmt.Errorf("%s: %w", path, err)
		}
		return p, model.SourceBase16, nil
	default:
		p, err := ParseXrdb(f)
		if err != nil {
			return model.Palette{}, "", fmt.Errorf("%s: %w", path, err)
		}
		return p, model.SourceXrdb, nil
	}
}
