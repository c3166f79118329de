package catalog

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/princeprakhar/device-catalog/internal/schema"
	"github.com/princeprakhar/device-catalog/internal/specs"
)

var (
	numberPattern = regexp.MustCompile(`\d+(?:[.,]\d+)?`)
	memoryPattern = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(GB|MB)`)
)

// ExtractNumber picks the representative magnitude of a free-text field
// value according to rule, e.g. "8 GB / 12 GB (1 TB'a kadar)" is 12 for a
// memory field.
func ExtractNumber(value any, rule schema.NumericRule) (float64, bool) {
	if value == nil {
		return 0, false
	}
	raw := specs.Text(value)

	if rule.MemoryUnits {
		var values []float64
		for _, m := range memoryPattern.FindAllStringSubmatch(raw, -1) {
			n, ok := parseNumber(m[1])
			if !ok {
				continue
			}
			if strings.EqualFold(m[2], "MB") {
				n /= 1024
			}
			values = append(values, n)
		}
		if len(values) > 0 {
			return maxUnder(values, rule.Ceiling), true
		}
	}

	var values []float64
	for _, m := range numberPattern.FindAllString(raw, -1) {
		if n, ok := parseNumber(m); ok {
			values = append(values, n)
		}
	}
	if len(values) == 0 {
		return 0, false
	}

	switch rule.Aggregation {
	case schema.PickMax:
		return maxOf(values), true
	case schema.PickMaxUnder:
		return maxUnder(values, rule.Ceiling), true
	}
	return values[0], true
}

func parseNumber(s string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	return n, err == nil
}

// maxUnder returns the largest value not above ceiling, or the smallest
// value when every value exceeds it. A zero ceiling means no ceiling.
func maxUnder(values []float64, ceiling float64) float64 {
	if ceiling <= 0 {
		return maxOf(values)
	}
	best, found := 0.0, false
	for _, v := range values {
		if v <= ceiling && (!found || v > best) {
			best, found = v, true
		}
	}
	if found {
		return best
	}
	return minOf(values)
}

func maxOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func minOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
