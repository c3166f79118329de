// Package seed fills a catalog with plausible demo devices.
package seed

import (
	"context"
	"fmt"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/princeprakhar/device-catalog/internal/models"
	"github.com/princeprakhar/device-catalog/internal/schema"
	"github.com/princeprakhar/device-catalog/internal/services"
	"github.com/princeprakhar/device-catalog/internal/types"
)

var (
	brands   = []string{"Acme", "Nova", "Orbit", "Zeta", "Kuzey", "Lumen"}
	lines    = []string{"One", "Note", "Pro", "Lite", "Max", "Edge"}
	ramSizes = []string{"4 GB", "6 GB", "8 GB", "12 GB", "16 GB"}
	storage  = []string{"64 GB", "128 GB", "256 GB", "512 GB", "1 TB"}
)

// Device returns a random approved-ready phone submission.
func Device(f *gofakeit.Faker) services.DeviceInput {
	brand := f.RandomString(brands)
	title := fmt.Sprintf("%s %d", f.RandomString(lines), f.Number(2, 20))

	in := services.DeviceInput{
		Brand:     brand,
		Title:     title,
		ShortDesc: f.Sentence(8),
		Tagline:   f.HipsterSentence(4),
		Price:     fmt.Sprintf("%d.%03d", f.Number(5, 90), f.Number(0, 999)),
		Category:  schema.DefaultCategory,
		Images: []models.Image{{
			Src:   fmt.Sprintf("https://picsum.photos/seed/%s/800/800", f.UUID()),
			Alt:   brand + " " + title,
			Color: f.SafeColor(),
		}},
		AutoApprove: true,
	}
	in.Specs.Sections = schema.SectionValues{
		schema.SectionDisplay: {
			schema.LabelToKey("Ekran Boyutu"): fmt.Sprintf("%.1f inç", f.Float64Range(5.4, 6.9)),
		},
		schema.SectionBattery: {
			schema.LabelToKey("Batarya Kapasitesi (Tipik)"): fmt.Sprintf("%d mAh", f.Number(3000, 6000)),
		},
		schema.SectionMemory: {
			schema.LabelToKey("Bellek (RAM)"):    f.RandomString(ramSizes),
			schema.LabelToKey("Dahili Depolama"): f.RandomString(storage),
		},
		schema.SectionNetwork: {
			schema.LabelToKey("5G"): f.Bool(),
		},
	}
	return in
}

// Devices creates count demo devices as admin. seed makes runs repeatable.
func Devices(ctx context.Context, devices *services.DeviceService, admin *services.Principal, count int, seed int64) ([]*types.DeviceResponse, error) {
	f := gofakeit.New(seed)
	out := make([]*types.DeviceResponse, 0, count)
	for i := 0; i < count; i++ {
		created, err := devices.Create(ctx, Device(f), admin)
		if err != nil {
			return out, err
		}
		out = append(out, created)
	}
	return out, nil
}
