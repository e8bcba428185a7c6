package service

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agloo/themer/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func xrdbFixture(skip int) string {
	var b strings.Builder
	b.WriteString("! generated by terminal.sexy\n*foreground: #c5c8c6\n*background: #1d1f21\n")
	for i, c := range DefaultPalette {
		if i == skip {
			continue
		}
		fmt.Fprintf(&b, "*.color%d:   #%s\n", i, strings.ToUpper(Hex(c)))
	}
	return b.String()
}

func TestParseXrdb(t *testing.T) {
	p, err := ParseXrdb(strings.NewReader(xrdbFixture(-1)))
	require.NoError(t, err)
	assert.Equal(t, DefaultPalette, p)
}

func TestParseXrdbFirstMatchWins(t *testing.T) {
	src := xrdbFixture(-1) + "*color0: #ffffff\n"
	p, err := ParseXrdb(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, "282a2e", Hex(p[0]))
}

func TestParseXrdbDoesNotConfuseColor1AndColor10(t *testing.T) {
	src := xrdbFixture(1)
	_, err := ParseXrdb(strings.NewReader(src))
	require.ErrorIs(t, err, ErrIncompletePalette)
	assert.Contains(t, err.Error(), "color1")
	assert.NotContains(t, err.Error(), "color10")
}

func TestParseXrdbMalformedValue(t *testing.T) {
	src := strings.Replace(xrdbFixture(-1), "#5F819D", "#5F81ZZ", 1)
	_, err := ParseXrdb(strings.NewReader(src))
	assert.ErrorIs(t, err, ErrMalformedColor)
}

func TestWriteXrdbRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXrdb(&buf, DefaultPalette))
	assert.True(t, strings.HasPrefix(buf.String(), "*color0:\t#282a2e\n"))

	p, err := ParseXrdb(&buf)
	require.NoError(t, err)
	assert.Equal(t, DefaultPalette, p)
}

func TestWriteLines(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLines(&buf, DefaultPalette))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, model.PaletteSize)
	assert.Equal(t, "#282a2e", lines[0])
	assert.Equal(t, "#c5c8c6", lines[15])
}

func TestLoadScheme(t *testing.T) {
	dir := t.TempDir()

	xrdbPath := filepath.Join(dir, "scheme.Xresources")
	require.NoError(t, os.WriteFile(xrdbPath, []byte(xrdbFixture(-1)), 0o600))
	p, source, err := LoadScheme(xrdbPath)
	require.NoError(t, err)
	assert.Equal(t, model.SourceXrdb, source)
	assert.Equal(t, DefaultPalette, p)

	var yml bytes.Buffer
	require.NoError(t, WriteBase16(&yml, "default", DefaultPalette))
	yamlPath := filepath.Join(dir, "scheme.yaml")
	require.NoError(t, os.WriteFile(yamlPath, yml.Bytes(), 0o600))
	p, source, err = LoadScheme(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, model.SourceBase16, source)
	assert.Equal(t, DefaultPalette, p)

	_, _, err = LoadScheme(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
