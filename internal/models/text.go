package models

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/vitalit/internal/constants"
)

// Text is a user-facing string that is either a single plain value or a
// mapping of locale code to translation.
type Text struct {
	plain     string
	localized map[string]string
}

// Plain returns a Text holding one untranslated value.
func Plain(s string) Text {
	return Text{plain: s}
}

// Localized returns a Text holding per-locale values. The map is copied.
func Localized(values map[string]string) Text {
	return Text{localized: maps.Clone(values)}
}

// IsLocalized reports whether t carries per-locale values.
func (t Text) IsLocalized() bool {
	return t.localized != nil
}

// IsZero reports whether t holds no text at all.
func (t Text) IsZero() bool {
	return t.plain == "" && len(t.localized) == 0
}

// Resolve returns the text for locale. Localized values fall back to the
// default locale, then to the first value in sorted locale order.
func (t Text) Resolve(locale string) string {
	if !t.IsLocalized() {
		return t.plain
	}
	if v, ok := t.localized[locale]; ok {
		return v
	}
	if v, ok := t.localized[constants.DefaultLocale]; ok {
		return v
	}
	for _, k := range slices.Sorted(maps.Keys(t.localized)) {
		return t.localized[k]
	}
	return ""
}

// Locales returns the locale codes t has values for, sorted.
func (t Text) Locales() []string {
	return slices.Sorted(maps.Keys(t.localized))
}

func (t Text) String() string {
	return t.Resolve(constants.DefaultLocale)
}

func (t Text) MarshalJSON() ([]byte, error) {
	if t.IsLocalized() {
		return json.Marshal(t.localized)
	}
	return json.Marshal(t.plain)
}

func (t *Text) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Plain(s)
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("text must be a string or a locale map: %w", err)
	}
	*t = Text{localized: m}
	return nil
}

func (t Text) MarshalYAML() (interface{}, error) {
	if t.IsLocalized() {
		return t.localized, nil
	}
	return t.plain, nil
}

func (t *Text) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*t = Plain(value.Value)
		return nil
	case yaml.MappingNode:
		m := make(map[string]string)
		if err := value.Decode(&m); err != nil {
			return err
		}
		*t = Text{localized: m}
		return nil
	default:
		return fmt.Errorf("line %d: text must be a string or a locale map", value.Line)
	}
}

// TextList is an ordered list of strings that may be given per locale.
type TextList struct {
	plain     []string
	localized map[string][]string
}

// Resolve returns the list for locale with the same fallback rules as Text.
func (l TextList) Resolve(locale string) []string {
	if l.localized == nil {
		return l.plain
	}
	if v, ok := l.localized[locale]; ok {
		return v
	}
	if v, ok := l.localized[constants.DefaultLocale]; ok {
		return v
	}
	for _, k := range slices.Sorted(maps.Keys(l.localized)) {
		return l.localized[k]
	}
	return nil
}

func (l TextList) MarshalYAML() (interface{}, error) {
	if l.localized != nil {
		return l.localized, nil
	}
	return l.plain, nil
}

func (l *TextList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var s []string
		if err := value.Decode(&s); err != nil {
			return err
		}
		*l = TextList{plain: s}
		return nil
	case yaml.MappingNode:
		m := make(map[string][]string)
		if err := value.Decode(&m); err != nil {
			return err
		}
		*l = TextList{localized: m}
		return nil
	default:
		return fmt.Errorf("line %d: list must be a sequence or a locale map", value.Line)
	}
}

// Clone returns a copy of t that shares no map with it.
func (t Text) Clone() Text {
	return Text{plain: t.plain, localized: maps.Clone(t.localized)}
}
