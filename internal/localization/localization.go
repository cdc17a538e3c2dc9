// Package localization serves the UI strings for the shell. Catalogs are
// embedded JSON files keyed by language code; Russian is the default since
// that is what the forum audience uses.
package localization

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
	"sync"
)

//go:embed locales/*.json
var locales embed.FS

// DefaultLang is the fallback language for missing keys.
const DefaultLang = "ru"

// Localizer holds the translation catalogs.
type Localizer struct {
	translations map[string]map[string]string
	mu           sync.RWMutex
}

// NewLocalizer loads the embedded catalogs.
func NewLocalizer() (*Localizer, error) {
	l := &Localizer{translations: make(map[string]map[string]string)}

	entries, err := fs.ReadDir(locales, "locales")
	if err != nil {
		return nil, fmt.Errorf("localization: read catalogs: %w", err)
	}
	for _, entry := range entries {
		lang := strings.TrimSuffix(entry.Name(), ".json")
		data, err := locales.ReadFile("locales/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("localization: read %s: %w", entry.Name(), err)
		}
		var catalog map[string]string
		if err := json.Unmarshal(data, &catalog); err != nil {
			return nil, fmt.Errorf("localization: parse %s: %w", entry.Name(), err)
		}
		l.translations[lang] = catalog
	}
	return l, nil
}

// GetString returns the translation for key in lang, falling back to the
// default language and finally to the key itself.
func (l *Localizer) GetString(lang, key string) string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if catalog, ok := l.translations[lang]; ok {
		if value, ok := catalog[key]; ok {
			return value
		}
	}
	if lang != DefaultLang {
		if catalog, ok := l.translations[DefaultLang]; ok {
			if value, ok := catalog[key]; ok {
				return value
			}
		}
	}
	return key
}

// Format returns the translation with {0}, {1}, ... placeholders substituted.
func (l *Localizer) Format(lang, key string, args ...string) string {
	out := l.GetString(lang, key)
	for i, arg := range args {
		out = strings.ReplaceAll(out, fmt.Sprintf("{%d}", i), arg)
	}
	return out
}

// Languages lists the loaded catalog codes.
func (l *Localizer) Languages() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]string, 0, len(l.translations))
	for lang := range l.translations {
		out = append(out, lang)
	}
	return out
}
