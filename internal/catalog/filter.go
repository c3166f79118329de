// Package catalog implements catalog browsing over device summaries: the
// filter predicates, numeric range bounds and result ordering.
package catalog

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/princeprakhar/device-catalog/internal/models"
	"github.com/princeprakhar/device-catalog/internal/schema"
	"github.com/princeprakhar/device-catalog/internal/settings"
	"github.com/princeprakhar/device-catalog/internal/specs"
)

// Summary is the lightweight listing row of an approved device. Filters
// holds the non-empty values of the configured filter fields keyed by
// "sectionId:fieldKey".
type Summary struct {
	ID          string         `json:"id"`
	Brand       string         `json:"brand"`
	Title       string         `json:"title"`
	Images      []models.Image `json:"images"`
	Category    string         `json:"category"`
	Price       string         `json:"price"`
	SubmittedAt time.Time      `json:"submittedAt"`
	Filters     map[string]any `json:"filters"`
}

type SortOrder string

const (
	SortLatest    SortOrder = "latest"
	SortPriceAsc  SortOrder = "priceAsc"
	SortPriceDesc SortOrder = "priceDesc"
	SortName      SortOrder = "name"
)

// Range is a user-chosen numeric window. A nil side falls back to the
// observed bound of the whole catalog.
type Range struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

// Bound is the observed min/max of a range field.
type Bound struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Criteria is one applied search. Nothing matches until Applied is set.
type Criteria struct {
	Applied      bool              `json:"applied"`
	Search       string            `json:"search"`
	Category     string            `json:"category"`
	Brand        string            `json:"brand"`
	MinPrice     string            `json:"minPrice"`
	MaxPrice     string            `json:"maxPrice"`
	SortBy       SortOrder         `json:"sortBy"`
	FieldFilters map[string]string `json:"fieldFilters"`
	RangeFilters map[string]Range  `json:"rangeFilters"`
}

// Field is a filter field resolved against the effective schema.
type Field struct {
	Key   string              `json:"key"`
	Label string              `json:"label"`
	Mode  settings.FilterType `json:"filterType"`
	Rule  schema.NumericRule  `json:"numeric"`
}

// ResolveFields pairs the filter fields with their numeric rules.
func ResolveFields(filterFields []settings.FilterField, sections []schema.Section) []Field {
	out := make([]Field, 0, len(filterFields))
	for _, ff := range filterFields {
		mode := ff.FilterType
		if mode == "" {
			mode = settings.DefaultFilterType(ff.Type)
		}
		out = append(out, Field{
			Key:   ff.Key(),
			Label: ff.Label,
			Mode:  mode,
			Rule:  settings.NumericRuleOf(sections, ff),
		})
	}
	return out
}

// Bounds computes the min/max of every range field over items. Fields
// without any readable value are left out.
func Bounds(items []Summary, fields []Field) map[string]Bound {
	out := make(map[string]Bound)
	for _, f := range fields {
		if f.Mode != settings.FilterRange {
			continue
		}
		var b Bound
		found := false
		for _, it := range items {
			v, ok := ExtractNumber(it.Filters[f.Key], f.Rule)
			if !ok {
				continue
			}
			if !found {
				b = Bound{Min: v, Max: v}
				found = true
				continue
			}
			if v < b.Min {
				b.Min = v
			}
			if v > b.Max {
				b.Max = v
			}
		}
		if found {
			out[f.Key] = b
		}
	}
	return out
}

// Filter returns the items matching every criterion, ordered by c.SortBy.
// Range bounds are taken from the full item set, so they do not shrink as
// other criteria narrow the result.
func Filter(items []Summary, c Criteria, fields []Field) []Summary {
	out := []Summary{}
	if !c.Applied {
		return out
	}

	bounds := Bounds(items, fields)
	query := normalize(c.Search)
	minPrice, hasMin := ParsePrice(c.MinPrice)
	maxPrice, hasMax := ParsePrice(c.MaxPrice)

	for _, it := range items {
		if !settings.IsAllCategories(c.Category) && normalize(it.Category) != normalize(c.Category) {
			continue
		}
		if !settings.IsAllCategories(c.Brand) && normalize(it.Brand) != normalize(c.Brand) {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(it.Brand+" "+it.Title), query) {
			continue
		}
		if hasMin || hasMax {
			price, ok := ParsePrice(it.Price)
			if !ok || (hasMin && price < minPrice) || (hasMax && price > maxPrice) {
				continue
			}
		}
		if !matchFields(it, c, fields, bounds) {
			continue
		}
		out = append(out, it)
	}

	Sort(out, c.SortBy)
	return out
}

func matchFields(it Summary, c Criteria, fields []Field, bounds map[string]Bound) bool {
	for _, f := range fields {
		raw := it.Filters[f.Key]
		switch f.Mode {
		case settings.FilterRange:
			r, set := c.RangeFilters[f.Key]
			b, known := bounds[f.Key]
			if !set || !known {
				continue
			}
			lo, hi := b.Min, b.Max
			if r.Min != nil {
				lo = *r.Min
			}
			if r.Max != nil {
				hi = *r.Max
			}
			v, ok := ExtractNumber(raw, f.Rule)
			if !ok || v < lo || v > hi {
				return false
			}
		case settings.FilterBoolean:
			want := c.FieldFilters[f.Key]
			if want == "" || want == "all" {
				continue
			}
			got, ok := specs.Bool(raw)
			if want == "true" && (!ok || !got) {
				return false
			}
			if want == "false" && (!ok || got) {
				return false
			}
		default:
			want := c.FieldFilters[f.Key]
			if want == "" || want == "all" {
				continue
			}
			have := normalize(specs.Text(raw))
			if have == "" || !strings.Contains(have, normalize(want)) {
				return false
			}
		}
	}
	return true
}

// Sort orders items in place. Unparseable prices sort as zero.
func Sort(items []Summary, by SortOrder) {
	switch by {
	case SortPriceAsc, SortPriceDesc:
		sort.SliceStable(items, func(i, j int) bool {
			a, _ := ParsePrice(items[i].Price)
			b, _ := ParsePrice(items[j].Price)
			if by == SortPriceAsc {
				return a < b
			}
			return a > b
		})
	case SortName:
		col := collate.New(language.Turkish, collate.IgnoreCase)
		sort.SliceStable(items, func(i, j int) bool {
			return col.CompareString(items[i].Brand+" "+items[i].Title, items[j].Brand+" "+items[j].Title) < 0
		})
	default:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].SubmittedAt.After(items[j].SubmittedAt)
		})
	}
}

// Brands returns the distinct brands of items in collation order.
func Brands(items []Summary) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, it := range items {
		b := strings.TrimSpace(it.Brand)
		if b == "" || seen[strings.ToLower(b)] {
			continue
		}
		seen[strings.ToLower(b)] = true
		out = append(out, b)
	}
	col := collate.New(language.Turkish, collate.IgnoreCase)
	col.SortStrings(out)
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
