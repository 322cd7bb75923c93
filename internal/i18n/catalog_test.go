package i18n

import "testing"

// The English table is the fallback of last resort, so the other catalogs
// may not define keys English lacks, and should not silently drop keys.
func TestCatalogsShareKeySet(t *testing.T) {
	en := builtin[LangEnglish]
	for _, lang := range []string{LangArabic, LangTurkish} {
		table := builtin[lang]
		for key := range table {
			if _, ok := en[key]; !ok {
				t.Errorf("%s defines %q which is missing from English", lang, key)
			}
		}
		for key := range en {
			if _, ok := table[key]; !ok {
				t.Errorf("%s is missing %q", lang, key)
			}
		}
	}
}

func TestCatalogsHaveNoEmptyMessages(t *testing.T) {
	for lang, table := range builtin {
		for key, msg := range table {
			if msg == "" {
				t.Errorf("%s: empty message for %q", lang, key)
			}
		}
	}
}
