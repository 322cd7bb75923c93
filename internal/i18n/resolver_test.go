package i18n

import "testing"

func allLangs() []string { return []string{LangArabic, LangEnglish, LangTurkish} }

func TestResolveProfileWins(t *testing.T) {
	r := NewResolver(allLangs(), LangEnglish, nil)
	if got := r.Resolve(LangTurkish, LangArabic, "en-US"); got != LangTurkish {
		t.Errorf("profile language should win, got %q", got)
	}
}

func TestResolveProfileDisabledFallsThrough(t *testing.T) {
	r := NewResolver([]string{LangEnglish, LangTurkish}, LangEnglish, nil)
	if got := r.Resolve(LangArabic, LangTurkish, ""); got != LangTurkish {
		t.Errorf("disabled profile language must fall to client language, got %q", got)
	}
}

func TestResolveClientLangSecond(t *testing.T) {
	r := NewResolver(allLangs(), LangEnglish, nil)
	if got := r.Resolve("", LangArabic, "tr"); got != LangArabic {
		t.Errorf("client language should win over default, got %q", got)
	}
}

func TestResolveDefaultThird(t *testing.T) {
	r := NewResolver(allLangs(), LangTurkish, nil)
	if got := r.Resolve("", "", "ar"); got != LangTurkish {
		t.Errorf("configured default should win over accept header, got %q", got)
	}
}

func TestResolveAcceptArabic(t *testing.T) {
	r := NewResolver(allLangs(), "", nil)
	if got := r.Resolve("", "", "ar-SA,en;q=0.8"); got != LangArabic {
		t.Errorf("Accept-Language ar should resolve Arabic, got %q", got)
	}
}

func TestResolveAcceptTurkish(t *testing.T) {
	r := NewResolver(allLangs(), "", nil)
	if got := r.Resolve("", "", "tr-TR"); got != LangTurkish {
		t.Errorf("Accept-Language tr should resolve Turkish, got %q", got)
	}
}

func TestResolveAcceptIgnoresDisabled(t *testing.T) {
	r := NewResolver([]string{LangEnglish}, "", nil)
	if got := r.Resolve("", "", "ar"); got != LangEnglish {
		t.Errorf("disabled Arabic must fall to first enabled, got %q", got)
	}
}

func TestResolveFirstEnabledFallback(t *testing.T) {
	r := NewResolver([]string{LangTurkish, LangArabic}, "", nil)
	if got := r.Resolve("", "", "fr-FR"); got != LangTurkish {
		t.Errorf("expected first enabled language, got %q", got)
	}
}

func TestResolveEmptyEnabledSet(t *testing.T) {
	r := NewResolver(nil, "", nil)
	if got := r.Resolve("", "", ""); got != LangEnglish {
		t.Errorf("empty enabled set must yield English, got %q", got)
	}
}

// Every combination of inputs must land inside the enabled set (or on
// English when nothing is enabled).
func TestResolveAlwaysEnabled(t *testing.T) {
	enabledSets := [][]string{
		nil,
		{LangEnglish},
		{LangArabic},
		{LangTurkish, LangEnglish},
		allLangs(),
	}
	profiles := []string{"", LangArabic, LangTurkish}
	clients := []string{"", LangArabic, LangEnglish}
	accepts := []string{"", "ar", "tr-TR", "de-DE", "not a header ;;;"}
	defaults := []string{"", LangEnglish, LangArabic}

	for _, enabled := range enabledSets {
		for _, def := range defaults {
			r := NewResolver(enabled, def, nil)
			for _, p := range profiles {
				for _, cl := range clients {
					for _, a := range accepts {
						got := r.Resolve(p, cl, a)
						if len(enabled) == 0 {
							if got != LangEnglish {
								t.Fatalf("empty set: got %q", got)
							}
							continue
						}
						if !r.IsEnabled(got) {
							t.Fatalf("resolved %q outside enabled set %v (profile=%q client=%q accept=%q def=%q)",
								got, enabled, p, cl, a, def)
						}
					}
				}
			}
		}
	}
}

func TestTranslateFallsBackToEnglish(t *testing.T) {
	r := NewResolver(allLangs(), LangEnglish, map[string]map[string]string{
		LangEnglish: {"only.english": "only in english"},
	})
	if got := r.Translate(LangArabic, "only.english"); got != "only in english" {
		t.Errorf("expected English fallback, got %q", got)
	}
}

func TestTranslateUnknownKeyReturnsKey(t *testing.T) {
	r := NewResolver(allLangs(), LangEnglish, nil)
	for _, lang := range []string{LangArabic, LangEnglish, LangTurkish, "xx", ""} {
		if got := r.Translate(lang, "no.such.key"); got != "no.such.key" {
			t.Errorf("lang %q: expected raw key, got %q", lang, got)
		}
	}
}

func TestTranslateOverrideWins(t *testing.T) {
	r := NewResolver(allLangs(), LangEnglish, map[string]map[string]string{
		LangTurkish: {"errors.not_found": "Yok"},
	})
	if got := r.Translate(LangTurkish, "errors.not_found"); got != "Yok" {
		t.Errorf("override should win, got %q", got)
	}
	if got := r.Translate(LangEnglish, "errors.not_found"); got != "Not found" {
		t.Errorf("other languages must keep builtin, got %q", got)
	}
}

func TestDir(t *testing.T) {
	if Dir(LangArabic) != "rtl" {
		t.Error("Arabic must be rtl")
	}
	if Dir(LangEnglish) != "ltr" || Dir(LangTurkish) != "ltr" {
		t.Error("English and Turkish must be ltr")
	}
	if Dir("") != "ltr" {
		t.Error("unknown language defaults to ltr")
	}
}
