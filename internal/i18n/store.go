package i18n

import (
	"context"
	"log"
	"sync"
	"time"
)

// Source supplies the server-side language configuration. It is implemented
// by the language repository and faked in tests.
type Source interface {
	// EnabledLanguages returns enabled codes in configured order plus the
	// default code.
	EnabledLanguages(ctx context.Context) (codes []string, def string, err error)
	// Overrides returns admin-edited message overrides per language.
	Overrides(ctx context.Context) (map[string]map[string]string, error)
}

// Store caches a Resolver built from the Source and rebuilds it after the
// refresh window passes or an admin invalidates it. Until the first
// successful load, resolution is deferred: Resolver reports not ready and
// callers leave the request language untouched.
type Store struct {
	src     Source
	refresh time.Duration

	mu      sync.RWMutex
	res     *Resolver
	fetched time.Time
}

// NewStore wraps src with a cache that reloads at most every refresh.
func NewStore(src Source, refresh time.Duration) *Store {
	if refresh <= 0 {
		refresh = time.Minute
	}
	return &Store{src: src, refresh: refresh}
}

// Resolver returns the cached resolver, reloading it when stale. The bool is
// false only when no load has ever succeeded.
func (s *Store) Resolver(ctx context.Context) (*Resolver, bool) {
	s.mu.RLock()
	res, fetched := s.res, s.fetched
	s.mu.RUnlock()

	if res != nil && time.Since(fetched) < s.refresh {
		return res, true
	}

	if err := s.load(ctx); err != nil {
		log.Printf("i18n: language config load failed: %v", err)
		// Keep serving the stale resolver if one exists.
		s.mu.RLock()
		res = s.res
		s.mu.RUnlock()
		return res, res != nil
	}

	s.mu.RLock()
	res = s.res
	s.mu.RUnlock()
	return res, res != nil
}

// Invalidate drops the cached resolver so the next request reloads the
// language configuration. Admin language/translation edits call this.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.fetched = time.Time{}
	s.mu.Unlock()
}

// T translates key for lang. Before the first successful load it falls back
// to the built-in English catalog so error messages always render.
func (s *Store) T(ctx context.Context, lang, key string) string {
	if res, ok := s.Resolver(ctx); ok {
		return res.Translate(lang, key)
	}
	if msg, ok := builtin[LangEnglish][key]; ok {
		return msg
	}
	return key
}

func (s *Store) load(ctx context.Context) error {
	codes, def, err := s.src.EnabledLanguages(ctx)
	if err != nil {
		return err
	}
	overrides, err := s.src.Overrides(ctx)
	if err != nil {
		return err
	}
	res := NewResolver(codes, def, overrides)
	s.mu.Lock()
	s.res = res
	s.fetched = time.Now()
	s.mu.Unlock()
	return nil
}
