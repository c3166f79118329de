package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	turkishLower = strings.NewReplacer("ç", "c", "Ç", "c", "ğ", "g", "Ğ", "g", "ı", "i", "I", "i", "İ", "i", "ö", "o", "Ö", "o", "ş", "s", "Ş", "s", "ü", "u", "Ü", "u")
	nonSlug      = regexp.MustCompile(`[^a-z0-9]+`)
)

// Slugify lowercases s, folds diacritics and joins the remaining
// alphanumeric runs with dashes: "Xiaomi Redmi Note 13 Pro+" becomes
// "xiaomi-redmi-note-13-pro".
func Slugify(s string) string {
	s = strings.ToLower(turkishLower.Replace(s))
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(t, s); err == nil {
		s = folded
	}
	return strings.Trim(nonSlug.ReplaceAllString(s, "-"), "-")
}

// DeviceSlug is the public slug of a device.
func DeviceSlug(brand, title string) string {
	return Slugify(strings.TrimSpace(brand + " " + title))
}
