package models

import (
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestTextResolve(t *testing.T) {
	tests := []struct {
		name   string
		text   Text
		locale string
		want   string
	}{
		{name: "plain ignores locale", text: Plain("Water"), locale: "fr-CI", want: "Water"},
		{name: "requested locale", text: Localized(map[string]string{"en-NG": "Water", "fr-CI": "Eau"}), locale: "fr-CI", want: "Eau"},
		{name: "falls back to default locale", text: Localized(map[string]string{"en-NG": "Water", "fr-CI": "Eau"}), locale: "sw-KE", want: "Water"},
		{name: "falls back to first sorted value", text: Localized(map[string]string{"fr-CI": "Eau", "de-DE": "Wasser"}), locale: "sw-KE", want: "Wasser"},
		{name: "empty map", text: Localized(map[string]string{}), locale: "en-NG", want: ""},
		{name: "zero value", text: Text{}, locale: "en-NG", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.text.Resolve(tt.locale); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.locale, got, tt.want)
			}
		})
	}
}

func TestTextJSONAcceptsBothShapes(t *testing.T) {
	var v struct {
		A Text `json:"a"`
		B Text `json:"b"`
	}
	if err := json.Unmarshal([]byte(`{"a":"plain","b":{"en-NG":"hi","fr-CI":"salut"}}`), &v); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if v.A.IsLocalized() || v.A.Resolve("fr-CI") != "plain" {
		t.Errorf("A = %+v, want plain text", v.A)
	}
	if !v.B.IsLocalized() || v.B.Resolve("fr-CI") != "salut" {
		t.Errorf("B = %+v, want localized text", v.B)
	}

	out, err := json.Marshal(v.B)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(out) != `{"en-NG":"hi","fr-CI":"salut"}` {
		t.Errorf("Marshal() = %s", out)
	}

	if err := json.Unmarshal([]byte(`{"a":42}`), &v); err == nil {
		t.Error("expected error for numeric text")
	}
}

func TestTextYAML(t *testing.T) {
	src := `
name: No sugar
description:
  en-NG: Cut sugar
  fr-CI: Sans sucre
steps:
  en-NG: [one, two]
`
	var v struct {
		Name        Text     `yaml:"name"`
		Description Text     `yaml:"description"`
		Steps       TextList `yaml:"steps"`
	}
	if err := yaml.Unmarshal([]byte(src), &v); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if v.Name.Resolve("fr-CI") != "No sugar" {
		t.Errorf("Name = %q", v.Name.Resolve("fr-CI"))
	}
	if v.Description.Resolve("fr-CI") != "Sans sucre" {
		t.Errorf("Description = %q", v.Description.Resolve("fr-CI"))
	}
	if got := v.Steps.Resolve("fr-CI"); len(got) != 2 || got[1] != "two" {
		t.Errorf("Steps = %v", got)
	}
}
