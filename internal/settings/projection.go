package settings

import "github.com/princeprakhar/device-catalog/internal/schema"

// EffectiveSections returns the built-in sections with their extra fields
// appended and hidden fields stripped, followed by the custom sections with
// hidden fields stripped. Duplicate keys keep their first occurrence. Each
// section carries its applicable categories.
func EffectiveSections(s Settings) []schema.Section {
	out := make([]schema.Section, 0, len(schema.BuiltinSectionIDs())+len(s.CustomSections))
	for _, sec := range schema.BuiltinSections() {
		sec.Fields = mergeFields(sec.Fields, s.ExtraFields[sec.ID], s.HiddenFields[sec.ID])
		sec.Categories = append([]string(nil), s.SectionCategories[sec.ID]...)
		out = append(out, sec)
	}
	for _, custom := range s.CustomSections {
		sec := custom.Clone()
		sec.Fields = mergeFields(sec.Fields, nil, s.HiddenFields[sec.ID])
		if cats := s.SectionCategories[sec.ID]; len(cats) > 0 {
			sec.Categories = append([]string(nil), cats...)
		}
		out = append(out, sec)
	}
	return out
}

func mergeFields(base, extras []schema.Field, hidden []string) []schema.Field {
	seen := make(map[string]bool, len(base)+len(extras))
	out := make([]schema.Field, 0, len(base)+len(extras))
	for _, list := range [][]schema.Field{base, extras} {
		for _, f := range list {
			if contains(hidden, f.Key) || seen[f.Key] {
				continue
			}
			seen[f.Key] = true
			out = append(out, f)
		}
	}
	return out
}

// FormSections returns the effective sections shown on the submission form,
// scoped to category unless category is empty.
func FormSections(s Settings, category string) []schema.Section {
	return project(s, s.FormSectionIDs, category)
}

// CardSections returns the effective sections shown on summary cards.
func CardSections(s Settings, category string) []schema.Section {
	return project(s, s.CardSectionIDs, category)
}

func project(s Settings, ids []string, category string) []schema.Section {
	sections := EffectiveSections(s)
	out := make([]schema.Section, 0, len(sections))
	for _, sec := range sections {
		if len(ids) > 0 && !contains(ids, sec.ID) {
			continue
		}
		if category != "" && !contains(s.SectionCategories[sec.ID], category) {
			continue
		}
		out = append(out, sec)
	}
	return out
}

// CardFieldsOf picks the fields shown for sec on a summary card: the admin
// override list in its order, else the card-default fields, else the first
// field.
func CardFieldsOf(sec schema.Section, s Settings) []schema.Field {
	if keys := s.CardFields[sec.ID]; len(keys) > 0 {
		out := make([]schema.Field, 0, len(keys))
		for _, k := range keys {
			if f, ok := sec.FieldByKey(k); ok {
				out = append(out, f)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	var out []schema.Field
	for _, f := range sec.Fields {
		if f.IsCard {
			out = append(out, f)
		}
	}
	if len(out) == 0 && len(sec.Fields) > 0 {
		out = append(out, sec.Fields[0])
	}
	return out
}

// FilterFieldsFor returns the configured filter fields whose section applies
// to category. The "all" sentinels return every filter field.
func FilterFieldsFor(s Settings, category string) []FilterField {
	out := make([]FilterField, 0, len(s.FilterFields))
	for _, ff := range s.FilterFields {
		if ff.FilterType == "" {
			ff.FilterType = DefaultFilterType(ff.Type)
		}
		if IsAllCategories(category) || contains(s.SectionCategories[ff.SectionID], category) {
			out = append(out, ff)
		}
	}
	return out
}

// NumericRuleOf resolves the numeric extraction rule for a filter field from
// the schema field it points at, inferring from its label otherwise.
func NumericRuleOf(sections []schema.Section, ff FilterField) schema.NumericRule {
	for _, sec := range sections {
		if sec.ID != ff.SectionID {
			continue
		}
		if f, ok := sec.FieldByKey(ff.FieldKey); ok {
			return schema.NumericRuleFor(f)
		}
	}
	return schema.InferNumericRule(ff.Label)
}
