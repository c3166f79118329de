// Package compare builds the side-by-side comparison of two devices.
package compare

import (
	"strings"

	"github.com/princeprakhar/device-catalog/internal/schema"
	"github.com/princeprakhar/device-catalog/internal/specs"
)

// Placeholder stands in for the empty side of a row.
const Placeholder = "-"

type Row struct {
	Label  string `json:"label"`
	ValueA string `json:"valueA"`
	ValueB string `json:"valueB"`
}

type Block struct {
	SectionID    string `json:"sectionId"`
	SectionTitle string `json:"sectionTitle"`
	Rows         []Row  `json:"rows"`
}

// Compare lists, for each selected section in the order given, the fields
// where at least one device has a value. Unknown or repeated section ids are
// skipped and sections without rows are left out.
func Compare(a, b schema.SectionValues, selected []string, sections []schema.Section) []Block {
	byID := make(map[string]schema.Section, len(sections))
	for _, s := range sections {
		byID[s.ID] = s
	}

	out := []Block{}
	seen := map[string]bool{}
	for _, id := range selected {
		sec, ok := byID[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true

		var rows []Row
		for _, f := range sec.Fields {
			va := format(a[id][f.Key])
			vb := format(b[id][f.Key])
			if va == "" && vb == "" {
				continue
			}
			rows = append(rows, Row{Label: f.Label, ValueA: orPlaceholder(va), ValueB: orPlaceholder(vb)})
		}
		if len(rows) > 0 {
			out = append(out, Block{SectionID: id, SectionTitle: sec.Title, Rows: rows})
		}
	}
	return out
}

func format(v any) string {
	return strings.TrimSpace(specs.Text(v))
}

func orPlaceholder(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}

// ParsePair splits a "slugA-vs-slugB" comparison path. "slugA--slugB" is
// accepted as well.
func ParsePair(pair string) (string, string, bool) {
	for _, sep := range []string{"-vs-", "--"} {
		if i := strings.Index(pair, sep); i > 0 {
			a, b := pair[:i], pair[i+len(sep):]
			if b != "" {
				return a, b, true
			}
		}
	}
	return "", "", false
}
