package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/princeprakhar/device-catalog/internal/models"
	"github.com/princeprakhar/device-catalog/internal/schema"
	"github.com/princeprakhar/device-catalog/internal/settings"
	"github.com/princeprakhar/device-catalog/internal/store"
	"github.com/princeprakhar/device-catalog/internal/types"
	"github.com/princeprakhar/device-catalog/pkg/logger"
)

// SettingsService reads and writes the site settings document.
type SettingsService struct {
	store store.Store
}

func NewSettingsService(s store.Store) *SettingsService {
	return &SettingsService{store: s}
}

// Stored returns the overlay exactly as saved, or a zero document when
// nothing has been saved yet.
func (s *SettingsService) Stored(ctx context.Context) (settings.Settings, error) {
	stored, err := store.GetJSON[settings.Settings](ctx, s.store, models.SettingsKey)
	if errors.Is(err, store.ErrNotFound) {
		return settings.Settings{}, nil
	}
	if err != nil {
		return settings.Settings{}, err
	}
	return stored, nil
}

// Merged returns the stored overlay merged over the defaults.
func (s *SettingsService) Merged(ctx context.Context) (settings.Settings, error) {
	stored, err := s.Stored(ctx)
	if err != nil {
		return settings.Settings{}, err
	}
	return settings.Merge(stored), nil
}

// Save writes in if its version matches the stored one. The saved document
// carries the next version.
func (s *SettingsService) Save(ctx context.Context, in settings.Settings, adminID string) (settings.Settings, error) {
	return s.write(ctx, in, adminID, true)
}

// Import replaces the stored document regardless of its version.
func (s *SettingsService) Import(ctx context.Context, in settings.Settings, by string) (settings.Settings, error) {
	return s.write(ctx, in, by, false)
}

func (s *SettingsService) write(ctx context.Context, in settings.Settings, by string, checkVersion bool) (settings.Settings, error) {
	if err := validateSettings(in); err != nil {
		return settings.Settings{}, err
	}

	var saved settings.Settings
	err := store.UpdateJSON(ctx, s.store, models.SettingsKey, func(cur settings.Settings, _ bool) (settings.Settings, error) {
		if checkVersion && cur.Version != in.Version {
			return cur, models.NewConflictError(fmt.Sprintf("Settings changed since version %d; reload and retry", in.Version))
		}
		now := time.Now().UTC()
		next := in
		next.Version = cur.Version + 1
		next.UpdatedAt = &now
		next.UpdatedBy = by
		saved = next
		return next, nil
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return settings.Settings{}, models.NewConflictError("Settings are being updated, retry")
		}
		return settings.Settings{}, err
	}

	logger.WithFields(map[string]interface{}{
		"version":    saved.Version,
		"updated_by": by,
	}).Info("Settings saved")
	return saved, nil
}

func validateSettings(in settings.Settings) error {
	seen := map[string]bool{}
	for _, sec := range in.CustomSections {
		id := strings.TrimSpace(sec.ID)
		if id == "" {
			return models.NewBadRequestError("Custom section id required")
		}
		if schema.IsBuiltin(id) {
			return models.NewBadRequestError(fmt.Sprintf("Custom section %q clashes with a built-in section", id))
		}
		if seen[id] {
			return models.NewBadRequestError(fmt.Sprintf("Duplicate custom section %q", id))
		}
		seen[id] = true
	}
	for _, ff := range in.FilterFields {
		if ff.SectionID == "" || ff.FieldKey == "" {
			return models.NewBadRequestError("Filter fields need sectionId and fieldKey")
		}
	}
	return nil
}

// Effective resolves the merged settings into the schema a client renders
// for category. An empty category means the default one.
func (s *SettingsService) Effective(ctx context.Context, category string) (*types.EffectiveSettingsResponse, error) {
	merged, err := s.Merged(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(category) == "" {
		category = merged.DefaultCategory()
	}

	cards := settings.CardSections(merged, category)
	cardFields := make(map[string][]schema.Field, len(cards))
	for _, sec := range cards {
		cardFields[sec.ID] = settings.CardFieldsOf(sec, merged)
	}

	return &types.EffectiveSettingsResponse{
		Settings:     merged,
		Category:     category,
		Sections:     settings.EffectiveSections(merged),
		FormSections: settings.FormSections(merged, category),
		CardSections: cards,
		CardFields:   cardFields,
		FilterFields: settings.FilterFieldsFor(merged, category),
	}, nil
}
