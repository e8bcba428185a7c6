package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/agloo/themer/internal/config"
	"github.com/agloo/themer/internal/logger"
	"github.com/agloo/themer/internal/model"
	"github.com/agloo/themer/internal/storage"
	"github.com/google/uuid"
)

// Broadcaster receives scheme and gradient events; *ws.Hub implements it.
type Broadcaster interface {
	BroadcastEvent(evt model.Event)
}

// SchemeService runs mixes against default, saved or supplied base schemes
// and keeps their history.
type SchemeService struct {
	cfg    config.Config
	store  *storage.Store
	events Broadcaster
	log    *logger.Logger
}

func NewSchemeService(cfg config.Config, store *storage.Store, events Broadcaster) *SchemeService {
	return &SchemeService{cfg: cfg, store: store, events: events, log: logger.New("scheme")}
}

// Options builds mix options from the configured adjacency, base weight and
// decay.
func (s *SchemeService) Options() model.MixOptions {
	return model.MixOptions{
		Adjacency: s.cfg.Adjacency,
		Weights:   LinearWeights(s.cfg.Adjacency, s.cfg.BaseWeight, s.cfg.Decay),
		Threshold: s.cfg.Threshold,
	}
}

// ResolveBase returns the default palette for an empty ref, otherwise the
// saved scheme with that ID or name.
func (s *SchemeService) ResolveBase(ref string) (model.Palette, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.EqualFold(ref, string(model.SourceDefault)) {
		return DefaultPalette, nil
	}
	sc, err := s.store.GetScheme(ref)
	if err != nil {
		return model.Palette{}, fmt.Errorf("scheme %q: %w", ref, err)
	}
	return PaletteFromHex(sc.Colors)
}

// MixRequest is one mix run through SchemeService. Contrast pushes result
// colours that sit too close to the configured background away from it.
type MixRequest struct {
	Inputs   []model.RGB
	Base     model.Palette
	Options  model.MixOptions
	Contrast bool
}

// Mix remaps req.Base onto req.Inputs, applies contrast when asked, then
// records the final scheme in history and broadcasts a scheme.mixed event.
func (s *SchemeService) Mix(req MixRequest) (model.MixRecord, error) {
	out, err := Mix(req.Inputs, req.Base, req.Options)
	if err != nil {
		return model.MixRecord{}, err
	}
	if req.Contrast {
		if out, err = BackgroundContrast(s.cfg, out); err != nil {
			return model.MixRecord{}, err
		}
	}
	rec := model.MixRecord{
		ID:        uuid.NewString(),
		Inputs:    HexList(req.Inputs),
		Base:      HexList(req.Base[:]),
		Result:    HexList(out[:]),
		Options:   req.Options,
		Contrast:  req.Contrast,
		CreatedAt: time.Now().UnixMilli(),
	}
	if err := s.store.AppendHistory(rec, s.cfg.HistoryLimit); err != nil {
		s.log.Warn("record mix %s: %v", rec.ID, err)
	}
	s.log.Debug("mixed %d inputs adjacency=%d threshold=%g contrast=%t",
		len(req.Inputs), req.Options.Adjacency, req.Options.Threshold, req.Contrast)
	s.broadcast("scheme.mixed", rec)
	return rec, nil
}

// MixImage takes its inputs from the colours of an encoded image; any
// req.Inputs are ignored.
func (s *SchemeService) MixImage(imageBytes []byte, req MixRequest) (model.MixRecord, error) {
	inputs, err := ExtractColors(imageBytes, s.cfg.ImageGrid)
	if err != nil {
		return model.MixRecord{}, fmt.Errorf("extract colors: %w", err)
	}
	req.Inputs = inputs
	return s.Mix(req)
}

func (s *SchemeService) SaveScheme(name string, p model.Palette, source model.SchemeSource) (model.Scheme, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Scheme{}, errors.New("scheme name required")
	}
	if strings.EqualFold(name, string(model.SourceDefault)) {
		return model.Scheme{}, errors.New("scheme name \"default\" is reserved")
	}
	id := uuid.NewString()
	if existing, err := s.store.GetScheme(name); err == nil {
		id = existing.ID
	}
	sc := model.Scheme{
		ID:        id,
		Name:      name,
		Colors:    HexList(p[:]),
		Source:    source,
		CreatedAt: time.Now().UnixMilli(),
	}
	if err := s.store.UpsertScheme(sc); err != nil {
		return model.Scheme{}, err
	}
	s.log.Info("saved scheme %q (%s)", name, id)
	s.broadcast("scheme.saved", sc)
	return sc, nil
}

func (s *SchemeService) Schemes() []model.Scheme {
	return s.store.ListSchemes()
}

func (s *SchemeService) Scheme(ref string) (model.Scheme, error) {
	return s.store.GetScheme(ref)
}

// DeleteScheme removes the saved scheme with the given ID or name.
func (s *SchemeService) DeleteScheme(ref string) (model.Scheme, error) {
	sc, err := s.store.GetScheme(ref)
	if err != nil {
		return model.Scheme{}, err
	}
	if err := s.store.DeleteScheme(sc.ID); err != nil {
		return model.Scheme{}, err
	}
	s.log.Info("deleted scheme %q (%s)", sc.Name, sc.ID)
	s.broadcast("scheme.deleted", sc)
	return sc, nil
}

func (s *SchemeService) History() []model.MixRecord {
	return s.store.ListHistory()
}

func (s *SchemeService) broadcast(typ string, payload interface{}) {
	if s.events == nil {
		return
	}
	s.events.BroadcastEvent(model.Event{Type: typ, Payload: payload, CreatedAt: time.Now().UnixMilli()})
}
