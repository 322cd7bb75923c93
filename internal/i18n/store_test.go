package i18n

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeSource struct {
	codes     []string
	def       string
	overrides map[string]map[string]string
	err       error
	loads     int
}

func (f *fakeSource) EnabledLanguages(ctx context.Context) ([]string, string, error) {
	f.loads++
	if f.err != nil {
		return nil, "", f.err
	}
	return f.codes, f.def, nil
}

func (f *fakeSource) Overrides(ctx context.Context) (map[string]map[string]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.overrides, nil
}

func TestStoreDefersUntilLoaded(t *testing.T) {
	src := &fakeSource{err: errors.New("db down")}
	s := NewStore(src, time.Minute)

	if _, ok := s.Resolver(context.Background()); ok {
		t.Fatal("resolver must not be ready while the source fails")
	}
	// Messages still render from the builtin English catalog.
	if got := s.T(context.Background(), LangArabic, "errors.not_found"); got != "Not found" {
		t.Errorf("expected builtin English fallback, got %q", got)
	}

	src.err = nil
	src.codes = []string{LangArabic, LangEnglish}
	src.def = LangArabic
	res, ok := s.Resolver(context.Background())
	if !ok {
		t.Fatal("resolver should be ready after the source recovers")
	}
	if got := res.Resolve("", "", ""); got != LangArabic {
		t.Errorf("expected configured default, got %q", got)
	}
}

func TestStoreCachesWithinWindow(t *testing.T) {
	src := &fakeSource{codes: []string{LangEnglish}, def: LangEnglish}
	s := NewStore(src, time.Hour)

	for i := 0; i < 5; i++ {
		if _, ok := s.Resolver(context.Background()); !ok {
			t.Fatal("resolver should be ready")
		}
	}
	if src.loads != 1 {
		t.Errorf("expected a single load within the window, got %d", src.loads)
	}
}

func TestStoreInvalidateForcesReload(t *testing.T) {
	src := &fakeSource{codes: []string{LangEnglish}, def: LangEnglish}
	s := NewStore(src, time.Hour)

	s.Resolver(context.Background())
	src.codes = []string{LangTurkish}
	src.def = LangTurkish
	s.Invalidate()

	res, ok := s.Resolver(context.Background())
	if !ok {
		t.Fatal("resolver should be ready")
	}
	if !res.IsEnabled(LangTurkish) || res.IsEnabled(LangEnglish) {
		t.Error("invalidate must pick up the new language configuration")
	}
}

func TestStoreServesStaleOnReloadFailure(t *testing.T) {
	src := &fakeSource{codes: []string{LangEnglish}, def: LangEnglish}
	s := NewStore(src, time.Hour)

	s.Resolver(context.Background())
	src.err = errors.New("db down")
	s.Invalidate()

	res, ok := s.Resolver(context.Background())
	if !ok || res == nil {
		t.Fatal("stale resolver should keep serving when a reload fails")
	}
	if !res.IsEnabled(LangEnglish) {
		t.Error("stale resolver lost its configuration")
	}
}
