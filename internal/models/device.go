// models/device.go
package models

import (
	"time"

	"github.com/princeprakhar/device-catalog/internal/schema"
)

type DeviceStatus string

const (
	StatusPending  DeviceStatus = "pending"
	StatusApproved DeviceStatus = "approved"
	StatusRejected DeviceStatus = "rejected"
)

type Image struct {
	Src   string `json:"src"`
	Alt   string `json:"alt,omitempty"`
	Color string `json:"color,omitempty"`
}

// StoredSpecs is the persisted part of a device's specs. The convenience
// groups are computed from Sections when the device is served.
type StoredSpecs struct {
	Sections schema.SectionValues `json:"sections"`
}

// Device is a catalogued item. Status is the only record of where it is in
// moderation; listings are derived from it.
type Device struct {
	ID          string       `json:"id"`
	Brand       string       `json:"brand"`
	Title       string       `json:"title"`
	ShortDesc   string       `json:"shortDesc"`
	Tagline     string       `json:"tagline"`
	Price       string       `json:"price"`
	Category    string       `json:"category"`
	Images      []Image      `json:"images"`
	Specs       StoredSpecs  `json:"specs"`
	Status      DeviceStatus `json:"status"`
	SubmittedBy string       `json:"submittedBy"`
	SubmittedAt time.Time    `json:"submittedAt"`
	ReviewedBy  string       `json:"reviewedBy,omitempty"`
	ReviewedAt  *time.Time   `json:"reviewedAt,omitempty"`
	UpdatedAt   *time.Time   `json:"updatedAt,omitempty"`
}

func (d *Device) IsApproved() bool {
	return d.Status == StatusApproved
}

// DeviceKey is the record key of a device.
func DeviceKey(id string) string {
	return DeviceKeyPrefix + id
}

const DeviceKeyPrefix = "device:"
