package schema

import (
	"regexp"
	"strings"
)

// FallbackKey is the key of a label that has no letters or digits.
const FallbackKey = "value"

var (
	turkishFold    = strings.NewReplacer("Ç", "C", "ç", "c", "Ğ", "G", "ğ", "g", "İ", "I", "ı", "i", "Ö", "O", "ö", "o", "Ş", "S", "ş", "s", "Ü", "U", "ü", "u")
	parenthesized  = regexp.MustCompile(`\([^)]*\)`)
	nonLetterDigit = regexp.MustCompile(`[^\p{L}\p{N}]+`)
	asciiWord      = regexp.MustCompile(`[a-z0-9]+`)
	wellFormedKey  = regexp.MustCompile(`^[a-z][A-Za-z0-9]*$`)
)

// ToASCII folds the Turkish letters to their ASCII base letters.
func ToASCII(s string) string {
	return turkishFold.Replace(s)
}

// LabelToKey derives the field key for a display label: Turkish letters are
// folded, parenthesized suffixes dropped, the remaining alphanumeric words
// lowercased and camel-cased. Keys starting with a digit get an "n" prefix.
// A label that is already a well-formed key maps to itself.
func LabelToKey(label string) string {
	if wellFormedKey.MatchString(label) {
		return label
	}
	cleaned := parenthesized.ReplaceAllString(ToASCII(label), " ")
	cleaned = nonLetterDigit.ReplaceAllString(cleaned, " ")
	cleaned = strings.ToLower(strings.TrimSpace(cleaned))

	parts := asciiWord.FindAllString(cleaned, -1)
	if len(parts) == 0 {
		return FallbackKey
	}

	var b strings.Builder
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	key := b.String()
	if key[0] >= '0' && key[0] <= '9' {
		return "n" + key
	}
	return key
}
