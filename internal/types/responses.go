// Package types holds the payloads the API returns that are not stored
// records themselves.
package types

import (
	"github.com/princeprakhar/device-catalog/internal/catalog"
	"github.com/princeprakhar/device-catalog/internal/compare"
	"github.com/princeprakhar/device-catalog/internal/models"
	"github.com/princeprakhar/device-catalog/internal/schema"
	"github.com/princeprakhar/device-catalog/internal/settings"
	"github.com/princeprakhar/device-catalog/internal/specs"
)

// DeviceResponse is a device with its full specs document. The embedded
// record's stored specs are shadowed by the computed one.
type DeviceResponse struct {
	*models.Device
	Slug  string         `json:"slug"`
	Specs specs.Document `json:"specs"`
}

type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

type RatingResult struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
	Score   int     `json:"score"`
}

// MyRating carries a nil score when the caller has not rated yet.
type MyRating struct {
	Score *int `json:"score"`
}

type FilterFieldResponse struct {
	catalog.Field
	Bound *catalog.Bound `json:"bound,omitempty"`
}

type FiltersResponse struct {
	Category   string                `json:"category"`
	Fields     []FilterFieldResponse `json:"fields"`
	Categories []string              `json:"categories"`
	Brands     []string              `json:"brands"`
	PriceBound *catalog.Bound        `json:"priceBound,omitempty"`
}

type SearchResponse struct {
	Items []catalog.Summary `json:"items"`
	Total int               `json:"total"`
}

type EffectiveSettingsResponse struct {
	Settings     settings.Settings         `json:"settings"`
	Category     string                    `json:"category"`
	Sections     []schema.Section          `json:"sections"`
	FormSections []schema.Section          `json:"formSections"`
	CardSections []schema.Section          `json:"cardSections"`
	CardFields   map[string][]schema.Field `json:"cardFields"`
	FilterFields []settings.FilterField    `json:"filterFields"`
}

type CompareResponse struct {
	A        *DeviceResponse `json:"a"`
	B        *DeviceResponse `json:"b"`
	Sections []string        `json:"sections"`
	Blocks   []compare.Block `json:"blocks"`
}
