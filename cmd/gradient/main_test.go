package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runGradient(t *testing.T, args ...string) ([]string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(args, &stdout, &stderr)
	out := strings.Fields(stdout.String())
	return out, stderr.String(), err
}

func TestRunCycle(t *testing.T) {
	got, _, err := runGradient(t, "-r", "2", "ff0000", "0000ff")
	require.NoError(t, err)
	assert.Equal(t, []string{"7f007f", "0000ff", "7f007f", "ff0000"}, got)
}

func TestRunFadeAndDarken(t *testing.T) {
	got, _, err := runGradient(t, "-f", "0.5", "000000")
	require.NoError(t, err)
	assert.Equal(t, []string{"808080"}, got)

	got, _, err = runGradient(t, "-d", "0.5", "ff8000")
	require.NoError(t, err)
	assert.Equal(t, []string{"7f4000"}, got)
}

func TestRunPreview(t *testing.T) {
	_, stderr, err := runGradient(t, "-preview", "ff0000", "0000ff")
	require.NoError(t, err)
	assert.NotEmpty(t, stderr)
}

func TestRunErrors(t *testing.T) {
	_, stderr, err := runGradient(t)
	assert.Error(t, err)
	assert.Contains(t, stderr, "usage: gradient")

	_, _, err = runGradient(t, "nothex")
	assert.Error(t, err)

	_, _, err = runGradient(t, "-space", "cmyk", "ff0000")
	assert.Error(t, err)
}
