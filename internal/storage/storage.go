package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/agloo/themer/internal/model"
)

var ErrSchemeNotFound = errors.New("scheme not found")

// Store persists saved schemes and mix history as one JSON document.
type Store struct {
	path  string
	mu    sync.RWMutex
	state model.StoredState
}

func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("store path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	s := &Store{path: path}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.state = defaultState()
			return s.saveLocked()
		}
		return err
	}
	if len(b) == 0 {
		s.state = defaultState()
		return s.saveLocked()
	}

	var state model.StoredState
	if err := json.Unmarshal(b, &state); err != nil {
		return err
	}
	mergeDefaults(&state)
	s.state = state
	return nil
}

func defaultState() model.StoredState {
	return model.StoredState{
		Schemes:   map[string]model.Scheme{},
		History:   []model.MixRecord{},
		CreatedAt: time.Now().UTC(),
	}
}

func mergeDefaults(state *model.StoredState) {
	if state.Schemes == nil {
		state.Schemes = map[string]model.Scheme{}
	}
	if state.History == nil {
		state.History = []model.MixRecord{}
	}
	if state.CreatedAt.IsZero() {
		state.CreatedAt = time.Now().UTC()
	}
}

// saveLocked writes through a temp file so a crash never leaves a
// truncated store behind.
func (s *Store) saveLocked() error {
	s.state.LastUpdatedUnixMS = time.Now().UnixMilli()
	b, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// UpsertScheme stores sc under its ID. A different scheme already holding
// the same name is replaced, so names stay unique.
func (s *Store) UpsertScheme(sc model.Scheme) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, existing := range s.state.Schemes {
		if id != sc.ID && strings.EqualFold(existing.Name, sc.Name) {
			delete(s.state.Schemes, id)
		}
	}
	s.state.Schemes[sc.ID] = cloneScheme(sc)
	return s.saveLocked()
}

// GetScheme looks a scheme up by ID, then by case-insensitive name.
func (s *Store) GetScheme(ref string) (model.Scheme, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sc, ok := s.state.Schemes[ref]; ok {
		return cloneScheme(sc), nil
	}
	for _, sc := range s.state.Schemes {
		if strings.EqualFold(sc.Name, ref) {
			return cloneScheme(sc), nil
		}
	}
	return model.Scheme{}, ErrSchemeNotFound
}

func (s *Store) ListSchemes() []model.Scheme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Scheme, 0, len(s.state.Schemes))
	for _, sc := range s.state.Schemes {
		out = append(out, cloneScheme(sc))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *Store) DeleteScheme(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.state.Schemes[id]; !ok {
		return ErrSchemeNotFound
	}
	delete(s.state.Schemes, id)
	return s.saveLocked()
}

// AppendHistory records a mix, keeping at most limit entries (newest last).
// limit 0 keeps everything.
func (s *Store) AppendHistory(rec model.MixRecord, limit int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.History = append(s.state.History, rec)
	if limit > 0 && len(s.state.History) > limit {
		s.state.History = append([]model.MixRecord(nil), s.state.History[len(s.state.History)-limit:]...)
	}
	return s.saveLocked()
}

func (s *Store) ListHistory() []model.MixRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.MixRecord, len(s.state.History))
	copy(out, s.state.History)
	return out
}

func cloneScheme(sc model.Scheme) model.Scheme {
	sc.Colors = append([]string(nil), sc.Colors...)
	return sc
}
