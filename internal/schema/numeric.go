package schema

import "strings"

// Aggregation selects which number of a free-text value represents it.
type Aggregation string

const (
	// PickFirst takes the first number in the text.
	PickFirst Aggregation = "first"
	// PickMaxUnder takes the largest number not above the ceiling, or the
	// smallest number when all of them are above it.
	PickMaxUnder Aggregation = "maxUnder"
	// PickMax takes the largest number.
	PickMax Aggregation = "max"
)

// NumericRule describes how a range filter reads a numeric magnitude out of
// a free-text field value.
type NumericRule struct {
	Unit        string      `json:"unit,omitempty" yaml:"unit,omitempty"`
	Ceiling     float64     `json:"ceiling,omitempty" yaml:"ceiling,omitempty"`
	Aggregation Aggregation `json:"aggregation,omitempty" yaml:"aggregation,omitempty"`
	// MemoryUnits converts "MB" readings to GB and prefers numbers that
	// carry a GB/MB unit over bare ones.
	MemoryUnits bool `json:"memoryUnits,omitempty" yaml:"memoryUnits,omitempty"`
}

var (
	memoryRule   = NumericRule{Unit: "GB", Ceiling: 128, Aggregation: PickMaxUnder, MemoryUnits: true}
	storageRule  = NumericRule{Unit: "GB", Ceiling: 4096, Aggregation: PickMaxUnder}
	screenRule   = NumericRule{Unit: "inç", Aggregation: PickFirst}
	batteryRule  = NumericRule{Unit: "mAh", Ceiling: 20000, Aggregation: PickMaxUnder}
	cameraRule   = NumericRule{Unit: "MP", Ceiling: 300, Aggregation: PickMaxUnder}
	coreRule     = NumericRule{Unit: "çekirdek", Ceiling: 32, Aggregation: PickMaxUnder}
	scoreRule    = NumericRule{Unit: "puan", Aggregation: PickMax}
	fallbackRule = NumericRule{Aggregation: PickFirst}
)

func rule(r NumericRule) *NumericRule {
	return &r
}

// NumericRuleFor returns the field's declared rule, or one inferred from its
// label for fields that declare none (admin extras and custom sections).
func NumericRuleFor(f Field) NumericRule {
	if f.Numeric != nil {
		return *f.Numeric
	}
	return InferNumericRule(f.Label)
}

// InferNumericRule guesses a rule from keywords in the label.
func InferNumericRule(label string) NumericRule {
	l := strings.ToLower(ToASCII(label))
	switch {
	case strings.Contains(l, "ram") || strings.Contains(l, "bellek"):
		return memoryRule
	case strings.Contains(l, "depolama"):
		return storageRule
	case strings.Contains(l, "ekran boyutu"):
		return screenRule
	case strings.Contains(l, "batarya"):
		return batteryRule
	case strings.Contains(l, "kamera"):
		return cameraRule
	case strings.Contains(l, "cpu") || strings.Contains(l, "islemci") || strings.Contains(l, "cekirdek"):
		return coreRule
	case strings.Contains(l, "antutu") || strings.Contains(l, "geekbench") || strings.Contains(l, "puan") || strings.Contains(l, "skor") || strings.Contains(l, "score"):
		return scoreRule
	}
	return fallbackRule
}
