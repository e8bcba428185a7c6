package service

import (
	"fmt"
	"io"
	"strings"

	"github.com/agloo/themer/internal/model"
	"gopkg.in/yaml.v3"
)

// base16Keys maps base00..base0F onto terminal slots 0..15.
var base16Keys = [model.PaletteSize]string{
	"base00", "base01", "base02", "base03", "base04", "base05", "base06", "base07",
	"base08", "base09", "base0A", "base0B", "base0C", "base0D", "base0E", "base0F",
}

// ParseBase16 reads a base16 YAML scheme. Keys are matched case-insensitively
// and may sit at the top level or under "palette". Values are read as raw
// scalars so unquoted all-digit colours keep their leading zeros.
func ParseBase16(r io.Reader) (model.Palette, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return model.Palette{}, fmt.Errorf("decode base16 yaml: %w", err)
	}
	values := map[string]string{}
	if len(doc.Content) > 0 {
		collectBase16(doc.Content[0], values)
	}

	var (
		p       model.Palette
		missing []string
	)
	for i, key := range base16Keys {
		v, ok := values[strings.ToLower(key)]
		if !ok {
			missing = append(missing, key)
			continue
		}
		c, err := ParseHex(v)
		if err != nil {
			return model.Palette{}, fmt.Errorf("%s: %w", key, err)
		}
		p[i] = c
	}
	if len(missing) > 0 {
		return model.Palette{}, fmt.Errorf("%w: missing %s", ErrIncompletePalette, strings.Join(missing, ", "))
	}
	return p, nil
}

func collectBase16(n *yaml.Node, into map[string]string) {
	if n.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := strings.ToLower(n.Content[i].Value)
		val := n.Content[i+1]
		switch {
		case key == "palette":
			collectBase16(val, into)
		case strings.HasPrefix(key, "base") && val.Kind == yaml.ScalarNode:
			into[key] = val.Value
		}
	}
}

type base16Doc struct {
	Scheme string            `yaml:"scheme"`
	Colors map[string]string `yaml:",inline"`
}

func WriteBase16(w io.Writer, name string, p model.Palette) error {
	doc := base16Doc{Scheme: name, Colors: make(map[string]string, model.PaletteSize)}
	for i, key := range base16Keys {
		doc.Colors[key] = Hex(p[i])
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(doc)
}
