// Package schema holds the device spec schema: typed fields grouped into
// sections, the built-in section registry and the label to key derivation.
package schema

import (
	"encoding/json"
	"strings"
)

type FieldType string

const (
	FieldText     FieldType = "text"
	FieldTextarea FieldType = "textarea"
	FieldBoolean  FieldType = "boolean"
)

// UnmarshalText accepts the legacy "checkbox" spelling for boolean fields.
func (t *FieldType) UnmarshalText(b []byte) error {
	switch v := strings.ToLower(strings.TrimSpace(string(b))); v {
	case "checkbox", "boolean", "bool":
		*t = FieldBoolean
	case "textarea":
		*t = FieldTextarea
	default:
		*t = FieldText
	}
	return nil
}

type Field struct {
	Key     string       `json:"key" yaml:"key"`
	Label   string       `json:"label" yaml:"label"`
	Type    FieldType    `json:"type" yaml:"type"`
	IsCard  bool         `json:"isCard,omitempty" yaml:"isCard,omitempty"`
	Numeric *NumericRule `json:"numeric,omitempty" yaml:"numeric,omitempty"`
}

func (f Field) IsBoolean() bool {
	return f.Type == FieldBoolean
}

// Section is a named group of fields. Built-in sections come from the
// registry; custom sections are defined by admins and carry presentation
// hints and their applicable categories.
type Section struct {
	ID         string   `json:"id" yaml:"id"`
	TabLabel   string   `json:"tabLabel" yaml:"tabLabel"`
	Title      string   `json:"title" yaml:"title"`
	Fields     []Field  `json:"fields" yaml:"fields"`
	IconName   string   `json:"iconName,omitempty" yaml:"iconName,omitempty"`
	IconHex    string   `json:"iconHex,omitempty" yaml:"iconHex,omitempty"`
	Categories []string `json:"categories,omitempty" yaml:"categories,omitempty"`
}

// FieldByKey returns the field with the given key, if the section declares it.
func (s Section) FieldByKey(key string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// Values maps field keys to their saved value (string or bool).
type Values map[string]any

// SectionValues maps section ids to the values saved for that section.
type SectionValues map[string]Values

// Clone returns a deep copy, so callers can normalize without touching input.
func (sv SectionValues) Clone() SectionValues {
	out := make(SectionValues, len(sv))
	for id, vals := range sv {
		cp := make(Values, len(vals))
		for k, v := range vals {
			cp[k] = v
		}
		out[id] = cp
	}
	return out
}

// UnmarshalJSON tolerates null sections in stored documents.
func (sv *SectionValues) UnmarshalJSON(b []byte) error {
	var raw map[string]Values
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := make(SectionValues, len(raw))
	for id, vals := range raw {
		if vals == nil {
			vals = Values{}
		}
		out[id] = vals
	}
	*sv = out
	return nil
}
