package consent

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Translation is the banner text for one language.
type Translation struct {
	ConsentModal     ConsentModalText     `json:"consentModal" yaml:"consent_modal"`
	PreferencesModal PreferencesModalText `json:"preferencesModal" yaml:"preferences_modal"`
}

// ConsentModalText is the text of the first-visit banner.
type ConsentModalText struct {
	Title              string `json:"title" yaml:"title"`
	Description        string `json:"description" yaml:"description"`
	AcceptAllBtn       string `json:"acceptAllBtn" yaml:"accept_all_btn"`
	AcceptNecessaryBtn string `json:"acceptNecessaryBtn" yaml:"accept_necessary_btn"`
	ShowPreferencesBtn string `json:"showPreferencesBtn" yaml:"show_preferences_btn"`
}

// PreferencesModalText is the text of the preferences dialog.
type PreferencesModalText struct {
	Title              string    `json:"title" yaml:"title"`
	AcceptAllBtn       string    `json:"acceptAllBtn" yaml:"accept_all_btn"`
	AcceptNecessaryBtn string    `json:"acceptNecessaryBtn" yaml:"accept_necessary_btn"`
	SavePreferencesBtn string    `json:"savePreferencesBtn" yaml:"save_preferences_btn"`
	Sections           []Section `json:"sections" yaml:"sections"`
}

// Section is one block of the preferences dialog. A section with a linked
// category shows that category's toggle.
type Section struct {
	Title          string   `json:"title" yaml:"title"`
	Description    string   `json:"description" yaml:"description"`
	LinkedCategory Category `json:"linkedCategory,omitempty" yaml:"linked_category"`
}

//go:embed locales/*.yaml
var localeFiles embed.FS

// LoadTranslations reads every *.yaml and *.yml file at the root of fsys as
// one language, keyed by the file name without extension.
func LoadTranslations(fsys fs.FS) (map[string]Translation, error) {
	var names []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		m, err := fs.Glob(fsys, pattern)
		if err != nil {
			return nil, err
		}
		names = append(names, m...)
	}

	out := make(map[string]Translation, len(names))
	for _, name := range names {
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", name, err)
		}
		var t Translation
		if err := yaml.Unmarshal(raw, &t); err != nil {
			return nil, fmt.Errorf("unmarshal locale %s: %w", name, err)
		}
		lang := strings.TrimSuffix(name, path.Ext(name))
		out[lang] = t
	}
	return out, nil
}

func builtinTranslations() map[string]Translation {
	sub, err := fs.Sub(localeFiles, "locales")
	if err != nil {
		panic(err)
	}
	t, err := LoadTranslations(sub)
	if err != nil {
		panic(fmt.Sprintf("consent: built-in locales: %v", err))
	}
	return t
}
