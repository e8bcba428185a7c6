package service

import (
	"image/color"
	"path/filepath"
	"testing"

	"github.com/agloo/themer/internal/config"
	"github.com/agloo/themer/internal/model"
	"github.com/agloo/themer/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSchemeService(t *testing.T) (*SchemeService, *recordingBroadcaster) {
	t.Helper()
	store, err := storage.NewStore(filepath.Join(t.TempDir(), "themer.json"))
	require.NoError(t, err)
	cfg := config.Config{
		Threshold:         DefaultThreshold,
		Adjacency:         3,
		Decay:             3,
		BaseWeight:        15,
		Background:        "0d191d",
		ContrastThreshold: DefaultThreshold,
		ContrastAmount:    5,
		ImageGrid:         4,
		HistoryLimit:      10,
	}
	events := &recordingBroadcaster{}
	return NewSchemeService(cfg, store, events), events
}

func TestSchemeServiceOptions(t *testing.T) {
	svc, _ := newTestSchemeService(t)
	assert.Equal(t, DefaultMixOptions(), svc.Options())
}

func TestSchemeServiceMixRecordsHistory(t *testing.T) {
	svc, events := newTestSchemeService(t)
	inputs := hexes(t, "cc3333", "33cc33", "3333cc", "aa8844", "222222", "eeeeee")

	rec, err := svc.Mix(MixRequest{Inputs: inputs, Base: DefaultPalette, Options: svc.Options()})
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "2a2a2a", rec.Result[0])
	assert.Equal(t, HexList(DefaultPalette[:]), rec.Base)

	hist := svc.History()
	require.Len(t, hist, 1)
	assert.Equal(t, rec.ID, hist[0].ID)
	assert.Equal(t, []string{"scheme.mixed"}, events.types())
}

func TestSchemeServiceMixContrastIsRecorded(t *testing.T) {
	svc, events := newTestSchemeService(t)
	inputs := hexes(t, "0d191d", "0e1a1e", "0f1b1f")

	plain, err := Mix(inputs, DefaultPalette, svc.Options())
	require.NoError(t, err)
	want := EnsurePaletteContrast(MustParseHex("0d191d"), plain, DefaultThreshold, 5)
	require.NotEqual(t, plain, want)

	rec, err := svc.Mix(MixRequest{Inputs: inputs, Base: DefaultPalette, Options: svc.Options(), Contrast: true})
	require.NoError(t, err)
	assert.True(t, rec.Contrast)
	assert.Equal(t, HexList(want[:]), rec.Result)

	hist := svc.History()
	require.Len(t, hist, 1)
	assert.Equal(t, rec.Result, hist[0].Result)

	require.Len(t, events.events, 1)
	mixed, ok := events.events[0].Payload.(model.MixRecord)
	require.True(t, ok)
	assert.Equal(t, rec.Result, mixed.Result)
}

func TestBackgroundContrastRejectsBadBackground(t *testing.T) {
	_, err := BackgroundContrast(config.Config{Background: "nope"}, DefaultPalette)
	assert.ErrorIs(t, err, ErrMalformedColor)
}

func TestSchemeServiceMixFailureRecordsNothing(t *testing.T) {
	svc, events := newTestSchemeService(t)
	_, err := svc.Mix(MixRequest{Inputs: hexes(t, "cc3333"), Base: DefaultPalette, Options: svc.Options()})
	assert.ErrorIs(t, err, ErrInsufficientCandidates)
	assert.Empty(t, svc.History())
	assert.Empty(t, events.types())
}

func TestSchemeServiceSaveAndResolve(t *testing.T) {
	svc, _ := newTestSchemeService(t)

	base, err := svc.ResolveBase("")
	require.NoError(t, err)
	assert.Equal(t, DefaultPalette, base)

	var p model.Palette
	p[0] = MustParseHex("101010")
	first, err := svc.SaveScheme("mine", p, model.SourceAPI)
	require.NoError(t, err)

	p[0] = MustParseHex("202020")
	second, err := svc.SaveScheme("Mine", p, model.SourceAPI)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "saving under an existing name updates it")

	got, err := svc.ResolveBase("mine")
	require.NoError(t, err)
	assert.Equal(t, "202020", Hex(got[0]))

	_, err = svc.ResolveBase("nope")
	assert.ErrorIs(t, err, storage.ErrSchemeNotFound)

	_, err = svc.SaveScheme(" ", p, model.SourceAPI)
	assert.Error(t, err)
	_, err = svc.SaveScheme("default", p, model.SourceAPI)
	assert.Error(t, err)

	assert.Len(t, svc.Schemes(), 1)
}

func TestSchemeServiceDeleteScheme(t *testing.T) {
	svc, events := newTestSchemeService(t)
	saved, err := svc.SaveScheme("gone", DefaultPalette, model.SourceAPI)
	require.NoError(t, err)

	deleted, err := svc.DeleteScheme("GONE")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, deleted.ID)
	assert.Empty(t, svc.Schemes())
	assert.Equal(t, []string{"scheme.saved", "scheme.deleted"}, events.types())

	_, err = svc.DeleteScheme(saved.ID)
	assert.ErrorIs(t, err, storage.ErrSchemeNotFound)
}

func TestSchemeServiceMixImage(t *testing.T) {
	svc, _ := newTestSchemeService(t)
	b := encodePNG(t, 4, 4, func(x, y int) color.Color {
		return color.NRGBA{R: uint8(40 * x), G: uint8(40 * y), B: 90, A: 0xff}
	})
	rec, err := svc.MixImage(b, MixRequest{Base: DefaultPalette, Options: svc.Options()})
	require.NoError(t, err)
	assert.Len(t, rec.Inputs, 16)
	assert.Len(t, rec.Result, model.PaletteSize)
}
