// Package settings merges the admin-editable catalog overlay with the
// built-in schema registry and derives the form, card and filter views.
package settings

import (
	"strings"
	"time"

	"github.com/princeprakhar/device-catalog/internal/schema"
)

type FilterType string

const (
	FilterText    FilterType = "text"
	FilterBoolean FilterType = "boolean"
	FilterRange   FilterType = "range"
)

// FilterField selects one schema field for the catalog filter sidebar.
type FilterField struct {
	SectionID  string           `json:"sectionId" yaml:"sectionId"`
	FieldKey   string           `json:"fieldKey" yaml:"fieldKey"`
	Label      string           `json:"label" yaml:"label"`
	Type       schema.FieldType `json:"type" yaml:"type"`
	FilterType FilterType       `json:"filterType,omitempty" yaml:"filterType,omitempty"`
}

// Key is the "sectionId:fieldKey" key used by summary filter maps.
func (f FilterField) Key() string {
	return f.SectionID + ":" + f.FieldKey
}

// Settings is the site-wide catalog configuration document. Version is
// bumped on every write and must be echoed back by writers.
type Settings struct {
	Version                  int64                     `json:"version" yaml:"version"`
	Categories               []string                  `json:"categories,omitempty" yaml:"categories,omitempty"`
	FormSectionIDs           []string                  `json:"formSectionIds,omitempty" yaml:"formSectionIds,omitempty"`
	CardSectionIDs           []string                  `json:"cardSectionIds,omitempty" yaml:"cardSectionIds,omitempty"`
	CardFields               map[string][]string       `json:"cardFields,omitempty" yaml:"cardFields,omitempty"`
	SectionCategories        map[string][]string       `json:"sectionCategories,omitempty" yaml:"sectionCategories,omitempty"`
	CategorySectionTemplates map[string][]string       `json:"categorySectionTemplates,omitempty" yaml:"categorySectionTemplates,omitempty"`
	HiddenFields             map[string][]string       `json:"hiddenFields,omitempty" yaml:"hiddenFields,omitempty"`
	ExtraFields              map[string][]schema.Field `json:"extraFields,omitempty" yaml:"extraFields,omitempty"`
	CustomSections           []schema.Section          `json:"customSections,omitempty" yaml:"customSections,omitempty"`
	FilterFields             []FilterField             `json:"filterFields,omitempty" yaml:"filterFields,omitempty"`
	UpdatedAt                *time.Time                `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
	UpdatedBy                string                    `json:"updatedBy,omitempty" yaml:"updatedBy,omitempty"`
}

// Defaults returns the built-in configuration: one category and every
// built-in section in both the form and the card lists.
func Defaults() Settings {
	return Settings{
		Categories:               []string{schema.DefaultCategory},
		FormSectionIDs:           schema.BuiltinSectionIDs(),
		CardSectionIDs:           schema.BuiltinSectionIDs(),
		CardFields:               map[string][]string{},
		SectionCategories:        map[string][]string{},
		CategorySectionTemplates: map[string][]string{},
		HiddenFields:             map[string][]string{},
		ExtraFields:              map[string][]schema.Field{},
		CustomSections:           []schema.Section{},
		FilterFields:             []FilterField{},
	}
}

// DefaultCategory is the first configured category.
func (s Settings) DefaultCategory() string {
	if len(s.Categories) > 0 && s.Categories[0] != "" {
		return s.Categories[0]
	}
	return schema.DefaultCategory
}

// Merge overlays in on the defaults. Empty lists and maps mean "use the
// default", never "force empty". The result always gives every section at
// least one category and every category a template entry. Merge never
// mutates in and Merge(Merge(x)) equals Merge(x).
func Merge(in Settings) Settings {
	def := Defaults()
	out := Settings{
		Version:                  in.Version,
		Categories:               nonEmpty(in.Categories, def.Categories),
		FormSectionIDs:           nonEmpty(in.FormSectionIDs, def.FormSectionIDs),
		CardSectionIDs:           nonEmpty(in.CardSectionIDs, def.CardSectionIDs),
		CardFields:               copyLists(in.CardFields),
		SectionCategories:        copyLists(in.SectionCategories),
		CategorySectionTemplates: copyLists(in.CategorySectionTemplates),
		HiddenFields:             copyLists(in.HiddenFields),
		ExtraFields:              make(map[string][]schema.Field, len(in.ExtraFields)),
		CustomSections:           make([]schema.Section, 0, len(in.CustomSections)),
		FilterFields:             make([]FilterField, 0, len(in.FilterFields)),
		UpdatedBy:                in.UpdatedBy,
	}
	if in.UpdatedAt != nil {
		at := *in.UpdatedAt
		out.UpdatedAt = &at
	}
	for id, fields := range in.ExtraFields {
		out.ExtraFields[id] = append([]schema.Field(nil), fields...)
	}
	for _, sec := range in.CustomSections {
		out.CustomSections = append(out.CustomSections, sec.Clone())
	}
	for _, ff := range in.FilterFields {
		if ff.FilterType == "" {
			ff.FilterType = DefaultFilterType(ff.Type)
		}
		out.FilterFields = append(out.FilterFields, ff)
	}

	ensureSectionCategories(&out)
	ensureCategoryTemplates(&out)
	return out
}

// DefaultFilterType is the filter mode used when a filter field names none.
func DefaultFilterType(t schema.FieldType) FilterType {
	if t == schema.FieldBoolean {
		return FilterBoolean
	}
	return FilterText
}

func ensureSectionCategories(s *Settings) {
	def := s.DefaultCategory()
	for _, id := range schema.BuiltinSectionIDs() {
		if len(s.SectionCategories[id]) == 0 {
			s.SectionCategories[id] = []string{def}
		}
	}
	for _, sec := range s.CustomSections {
		if len(s.SectionCategories[sec.ID]) > 0 {
			continue
		}
		if len(sec.Categories) > 0 {
			s.SectionCategories[sec.ID] = append([]string(nil), sec.Categories...)
		} else {
			s.SectionCategories[sec.ID] = []string{def}
		}
	}
}

func ensureCategoryTemplates(s *Settings) {
	def := s.DefaultCategory()
	for _, cat := range s.Categories {
		if len(s.CategorySectionTemplates[cat]) > 0 {
			continue
		}
		if cat == def {
			s.CategorySectionTemplates[cat] = schema.BuiltinSectionIDs()
			continue
		}
		ids := []string{}
		for _, id := range allSectionIDs(*s) {
			if contains(s.SectionCategories[id], cat) {
				ids = append(ids, id)
			}
		}
		s.CategorySectionTemplates[cat] = ids
	}
}

func allSectionIDs(s Settings) []string {
	ids := schema.BuiltinSectionIDs()
	for _, sec := range s.CustomSections {
		ids = append(ids, sec.ID)
	}
	return ids
}

// IsAllCategories reports whether category disables category scoping.
func IsAllCategories(category string) bool {
	c := strings.TrimSpace(category)
	return c == "" || c == schema.AllCategoriesSentinel || strings.EqualFold(c, "all")
}

func nonEmpty(v, def []string) []string {
	if len(v) > 0 {
		return append([]string(nil), v...)
	}
	return append([]string(nil), def...)
}

func copyLists(m map[string][]string) map[string][]string {
	out := make(map[string][]string, len(m))
	for k, v := range m {
		out[k] = append([]string(nil), v...)
	}
	return out
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
