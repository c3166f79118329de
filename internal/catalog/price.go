package catalog

import (
	"regexp"
	"strconv"
	"strings"
)

var priceNoise = regexp.MustCompile(`[^0-9.,]`)

// ParsePrice reads a loosely formatted price such as "12.500,50 TL" or
// "$1,299". When both separators occur the last one is the decimal mark.
// A single kind of separator followed only by three-digit groups is read as
// a thousands separator, otherwise as the decimal mark. ok is false when no
// number can be read.
func ParsePrice(s string) (float64, bool) {
	raw := priceNoise.ReplaceAllString(s, "")
	if raw == "" {
		return 0, false
	}

	lastComma := strings.LastIndex(raw, ",")
	lastDot := strings.LastIndex(raw, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			raw = strings.ReplaceAll(raw, ".", "")
			raw = strings.Replace(raw, ",", ".", 1)
		} else {
			raw = strings.ReplaceAll(raw, ",", "")
		}
	case lastComma >= 0:
		raw = singleSeparator(raw, ",")
	case lastDot >= 0:
		raw = singleSeparator(raw, ".")
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func singleSeparator(raw, sep string) string {
	parts := strings.Split(raw, sep)
	thousands := parts[0] != ""
	for _, p := range parts[1:] {
		if len(p) != 3 {
			thousands = false
			break
		}
	}
	if thousands {
		return strings.Join(parts, "")
	}
	if len(parts) == 2 {
		return parts[0] + "." + parts[1]
	}
	return raw
}
