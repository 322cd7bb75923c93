package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Resolver picks the active language for a request and translates message
// keys. It is a plain value wired through handlers, not ambient state: a new
// Resolver is built whenever the server-side language configuration changes.
type Resolver struct {
	enabled    []string            // enabled codes in configured order
	enabledSet map[string]struct{} // membership index over enabled
	def        string              // server-configured default code
	catalogs   map[string]map[string]string
}

// NewResolver builds a resolver from the enabled language codes (in
// configured order), the default code and optional per-language message
// overrides merged over the built-in catalogs.
func NewResolver(enabled []string, def string, overrides map[string]map[string]string) *Resolver {
	r := &Resolver{
		enabled:    append([]string(nil), enabled...),
		enabledSet: make(map[string]struct{}, len(enabled)),
		def:        def,
		catalogs:   make(map[string]map[string]string, len(builtin)),
	}
	for _, code := range enabled {
		r.enabledSet[code] = struct{}{}
	}
	for code, table := range builtin {
		merged := make(map[string]string, len(table))
		for k, v := range table {
			merged[k] = v
		}
		for k, v := range overrides[code] {
			merged[k] = v
		}
		r.catalogs[code] = merged
	}
	return r
}

// Enabled returns the enabled language codes in configured order.
func (r *Resolver) Enabled() []string {
	return append([]string(nil), r.enabled...)
}

// IsEnabled reports whether code is currently selectable.
func (r *Resolver) IsEnabled(code string) bool {
	_, ok := r.enabledSet[code]
	return ok
}

// Default returns the server-configured default language code.
func (r *Resolver) Default() string { return r.def }

// Resolve determines the active language. The chain is, first match wins:
// the authenticated profile language, the language persisted on the client,
// the configured default, the Accept-Language header (Arabic and Turkish
// prefixes only), the first enabled language, then English. The result is
// always a member of the enabled set unless that set is empty.
func (r *Resolver) Resolve(profileLang, clientLang, acceptHeader string) string {
	if profileLang != "" && r.IsEnabled(profileLang) {
		return profileLang
	}
	if clientLang != "" && r.IsEnabled(clientLang) {
		return clientLang
	}
	if r.def != "" && r.IsEnabled(r.def) {
		return r.def
	}
	if lang, ok := r.matchAccept(acceptHeader); ok {
		return lang
	}
	if len(r.enabled) > 0 {
		return r.enabled[0]
	}
	return LangEnglish
}

// matchAccept inspects the Accept-Language header for an Arabic or Turkish
// preference. Other bases are ignored; they fall through to the rest of the
// chain.
func (r *Resolver) matchAccept(header string) (string, bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", false
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return "", false
	}
	for _, tag := range tags {
		base, conf := tag.Base()
		if conf == language.No {
			continue
		}
		switch base.String() {
		case LangArabic:
			if r.IsEnabled(LangArabic) {
				return LangArabic, true
			}
		case LangTurkish:
			if r.IsEnabled(LangTurkish) {
				return LangTurkish, true
			}
		}
	}
	return "", false
}

// Translate looks key up in the active language table, then the English
// table, then returns the key itself. It never fails.
func (r *Resolver) Translate(lang, key string) string {
	if table, ok := r.catalogs[lang]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	if lang != LangEnglish {
		if msg, ok := r.catalogs[LangEnglish][key]; ok {
			return msg
		}
	}
	return key
}
