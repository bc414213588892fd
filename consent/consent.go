// Package consent holds the cookie-consent banner configuration and the hooks
// that forward a visitor's choices to the analytics consent mode.
//
// The configuration is plain data: it marshals to the JSON shape the banner
// runtime reads, and cookie-name regular expressions are kept as pattern
// source strings rather than compiled values.
package consent

import (
	"regexp"
	"sort"
	"strings"
)

// Category identifies a consent category.
type Category string

const (
	// Necessary cookies are always enabled and cannot be revoked.
	Necessary Category = "necessary"
	// Analytics cookies are opt-in.
	Analytics Category = "analytics"
)

// Pattern is a regular expression stored as data.
type Pattern struct {
	Source string `json:"source"`
	Flags  string `json:"flags,omitempty"`
}

// Regexp compiles the pattern. The i, m and s flags map to their Go
// equivalents; other flags do not change matching and are ignored.
func (p Pattern) Regexp() (*regexp.Regexp, error) {
	var inline strings.Builder
	for _, f := range p.Flags {
		switch f {
		case 'i', 'm', 's':
			inline.WriteRune(f)
		}
	}
	src := p.Source
	if inline.Len() > 0 {
		src = "(?" + inline.String() + ")" + src
	}
	return regexp.Compile(src)
}

// Matches reports whether name matches any of the patterns. Patterns that do
// not compile never match.
func Matches(name string, patterns []Pattern) bool {
	for _, p := range patterns {
		re, err := p.Regexp()
		if err != nil {
			continue
		}
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// CookieRule selects cookies by name.
type CookieRule struct {
	Name Pattern `json:"name"`
}

// AutoClear lists the cookies removed when a category is rejected.
type AutoClear struct {
	Cookies []CookieRule `json:"cookies"`
}

// CategoryConfig is the banner setting for one category.
type CategoryConfig struct {
	Enabled   bool       `json:"enabled"`
	ReadOnly  bool       `json:"readOnly,omitempty"`
	AutoClear *AutoClear `json:"autoClear,omitempty"`
}

// ModalOptions places one of the banner's modals.
type ModalOptions struct {
	Layout   string `json:"layout,omitempty"`
	Position string `json:"position,omitempty"`
}

// GUIOptions places the consent and preferences modals.
type GUIOptions struct {
	ConsentModal     ModalOptions `json:"consentModal"`
	PreferencesModal ModalOptions `json:"preferencesModal"`
}

// Language selects the default language and holds one text bundle per
// language code.
type Language struct {
	Default      string                 `json:"default"`
	Translations map[string]Translation `json:"translations"`
}

// Config is the banner configuration. Signal is the analytics consent
// capability called by OnConsent and OnChange; it never appears in JSON.
type Config struct {
	GUIOptions GUIOptions                  `json:"guiOptions"`
	Categories map[Category]CategoryConfig `json:"categories"`
	Language   Language                    `json:"language"`

	Signal SignalFunc `json:"-"`
}

// Default returns the site's consent configuration: necessary cookies always
// on, analytics opt-in with Google Analytics cookies cleared on rejection,
// and the built-in English texts.
func Default(signal SignalFunc) *Config {
	return &Config{
		GUIOptions: GUIOptions{
			ConsentModal: ModalOptions{
				Layout:   "box inline",
				Position: "bottom right",
			},
			PreferencesModal: ModalOptions{
				Layout: "box",
			},
		},
		Categories: map[Category]CategoryConfig{
			Necessary: {
				Enabled:  true,
				ReadOnly: true,
			},
			Analytics: {
				Enabled: false,
				AutoClear: &AutoClear{
					Cookies: []CookieRule{
						{Name: Pattern{Source: "^_ga"}},
						{Name: Pattern{Source: "^_gc"}},
						{Name: Pattern{Source: "^_gid"}},
					},
				},
			},
		},
		Language: Language{
			Default:      "en",
			Translations: builtinTranslations(),
		},
		Signal: signal,
	}
}

// WithSignal returns a copy of c that reports to fn instead.
func (c *Config) WithSignal(fn SignalFunc) *Config {
	cp := *c
	cp.Signal = fn
	return &cp
}

// AddTranslations merges extra language bundles, replacing existing ones
// with the same code.
func (c *Config) AddTranslations(t map[string]Translation) {
	merged := make(map[string]Translation, len(c.Language.Translations)+len(t))
	for lang, tr := range c.Language.Translations {
		merged[lang] = tr
	}
	for lang, tr := range t {
		merged[lang] = tr
	}
	c.Language.Translations = merged
}

// ClearRules returns the auto-clear patterns of every category the event
// did not accept, in category name order.
func (c *Config) ClearRules(e Event) []Pattern {
	names := make([]string, 0, len(c.Categories))
	for cat := range c.Categories {
		names = append(names, string(cat))
	}
	sort.Strings(names)

	var out []Pattern
	for _, name := range names {
		cat := Category(name)
		cfg := c.Categories[cat]
		if cfg.AutoClear == nil || e.Accepted(cat) {
			continue
		}
		for _, rule := range cfg.AutoClear.Cookies {
			out = append(out, rule.Name)
		}
	}
	return out
}
