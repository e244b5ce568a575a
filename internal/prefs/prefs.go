package prefs

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/nhle/web3hub/internal/metrics"
	"github.com/nhle/web3hub/internal/model"
	"github.com/nhle/web3hub/internal/store"
)

// Listener is called with the new preferences after every change.
type Listener func(model.Preferences)

// Store holds the preferences singleton and persists it in the synced
// namespace. Listeners run synchronously inside Save, before the write,
// so a theme change is visible to the next render even if persisting
// fails.
type Store struct {
	kv     store.KV
	logger *zap.Logger

	mu        sync.Mutex
	current   model.Preferences
	listeners []Listener
}

// New creates a Store holding the default preferences. Call Load to read
// the persisted ones.
func New(kv store.KV, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		kv:      kv,
		logger:  logger,
		current: model.DefaultPreferences(),
	}
}

// Load reads the persisted preferences. Missing or unreadable records
// yield the defaults.
func (s *Store) Load(ctx context.Context) model.Preferences {
	p, err := s.fetch(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.Warn("reading preferences failed, using defaults", zap.Error(err))
		}
		p = model.DefaultPreferences()
	}

	s.mu.Lock()
	s.current = p
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(p)
	}
	return p
}

// EnsureDefaults writes the default preferences when none are persisted.
// Existing preferences are left untouched.
func (s *Store) EnsureDefaults(ctx context.Context) error {
	_, err := s.fetch(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}
	s.logger.Info("no preferences found, writing defaults")
	return s.write(ctx, model.DefaultPreferences())
}

// Save replaces the preferences, notifies listeners and persists.
func (s *Store) Save(ctx context.Context, p model.Preferences) error {
	if p.Theme != model.ThemeDark {
		p.Theme = model.ThemeLight
	}

	s.mu.Lock()
	s.current = p
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(p)
	}
	return s.write(ctx, p)
}

// ToggleTheme flips the theme and saves.
func (s *Store) ToggleTheme(ctx context.Context) (model.Preferences, error) {
	p := s.Current()
	p.Theme = p.Theme.Toggle()
	return p, s.Save(ctx, p)
}

// ToggleCategory flips the toggle for c and saves.
func (s *Store) ToggleCategory(ctx context.Context, c model.Category) (model.Preferences, error) {
	p := s.Current().WithToggled(c)
	return p, s.Save(ctx, p)
}

// Read returns the persisted preferences without touching the in-memory
// copy or notifying listeners. When nothing can be read the in-memory
// copy is returned. Background readers use it to see changes made by
// another process.
func (s *Store) Read(ctx context.Context) model.Preferences {
	p, err := s.fetch(ctx)
	if err != nil {
		return s.Current()
	}
	return p
}

// Subscribe registers fn to be called after every change.
func (s *Store) Subscribe(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Current returns the in-memory preferences.
func (s *Store) Current() model.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Enabled reports whether notifications of category c are switched on.
func (s *Store) Enabled(c model.Category) bool {
	return s.Current().Enabled(c)
}

func (s *Store) fetch(ctx context.Context) (model.Preferences, error) {
	p := model.DefaultPreferences()
	if err := store.GetJSON(ctx, s.kv, store.NamespaceSynced, store.KeyPreferences, &p); err != nil {
		return model.Preferences{}, err
	}
	if p.Theme != model.ThemeDark {
		p.Theme = model.ThemeLight
	}
	return p, nil
}

func (s *Store) write(ctx context.Context, p model.Preferences) error {
	if err := store.SetJSON(ctx, s.kv, store.NamespaceSynced, store.KeyPreferences, p); err != nil {
		metrics.IncrementStoreWriteFailure(string(store.NamespaceSynced))
		s.logger.Error("persisting preferences failed", zap.Error(err))
		return fmt.Errorf("saving preferences: %w", err)
	}
	return nil
}
