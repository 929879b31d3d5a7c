// Package i18n provides the portal's key-value translation lookup.
// The translator is constructed once and injected; there is no global
// mutable locale state.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/probashi-portal/apiserver/types"
)

//go:embed translations/*.json
var translationFS embed.FS

// Translator resolves message keys against per-language dictionaries.
// Unknown keys fall back to the key itself.
type Translator struct {
	dicts map[string]map[string]string
}

// New loads the embedded dictionaries.
func New() (*Translator, error) {
	dicts := make(map[string]map[string]string, 2)
	for _, lang := range []string{types.LangEnglish, types.LangBengali} {
		raw, err := translationFS.ReadFile(fmt.Sprintf("translations/%s.json", lang))
		if err != nil {
			return nil, fmt.Errorf("load %s dictionary: %w", lang, err)
		}
		dict := make(map[string]string)
		if err := json.Unmarshal(raw, &dict); err != nil {
			return nil, fmt.Errorf("parse %s dictionary: %w", lang, err)
		}
		dicts[lang] = dict
	}
	return &Translator{dicts: dicts}, nil
}

// Translate looks up key in the dictionary for lang. Unknown languages
// fall back to English; unknown keys fall back to the key itself.
func (t *Translator) Translate(lang, key string) string {
	dict, ok := t.dicts[lang]
	if !ok {
		dict = t.dicts[types.LangEnglish]
	}
	if value, ok := dict[key]; ok && value != "" {
		return value
	}
	return key
}

// Toggle flips between the two supported languages.
func Toggle(lang string) string {
	if lang == types.LangEnglish {
		return types.LangBengali
	}
	return types.LangEnglish
}
