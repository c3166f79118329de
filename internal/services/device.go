package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/princeprakhar/device-catalog/internal/catalog"
	"github.com/princeprakhar/device-catalog/internal/compare"
	"github.com/princeprakhar/device-catalog/internal/models"
	"github.com/princeprakhar/device-catalog/internal/schema"
	"github.com/princeprakhar/device-catalog/internal/settings"
	"github.com/princeprakhar/device-catalog/internal/specs"
	"github.com/princeprakhar/device-catalog/internal/store"
	"github.com/princeprakhar/device-catalog/internal/types"
	"github.com/princeprakhar/device-catalog/internal/utils"
	"github.com/princeprakhar/device-catalog/pkg/logger"
)

const (
	DefaultLatestLimit = 6

	ActionApprove = "approve"
	ActionReject  = "reject"
)

// DeviceInput is the writable content of a device.
type DeviceInput struct {
	Brand     string         `json:"brand"`
	Title     string         `json:"title"`
	ShortDesc string         `json:"shortDesc"`
	Tagline   string         `json:"tagline"`
	Price     string         `json:"price"`
	Category  string         `json:"category"`
	Images    []models.Image `json:"images"`
	Specs     struct {
		Sections schema.SectionValues `json:"sections"`
	} `json:"specs"`
	// AutoApprove only has an effect for admins.
	AutoApprove bool `json:"autoApprove"`
}

type DeviceService struct {
	store    store.Store
	settings *SettingsService
}

func NewDeviceService(s store.Store, settingsService *SettingsService) *DeviceService {
	return &DeviceService{
		store:    s,
		settings: settingsService,
	}
}

// Create stores a new submission. It is pending unless an admin asked for
// it to be approved right away.
func (s *DeviceService) Create(ctx context.Context, in DeviceInput, submitter *Principal) (*types.DeviceResponse, error) {
	merged, err := s.settings.Merged(ctx)
	if err != nil {
		return nil, err
	}
	device := &models.Device{
		ID:          uuid.NewString(),
		Status:      models.StatusPending,
		SubmittedBy: submitter.ID,
		SubmittedAt: time.Now().UTC(),
	}
	if err := applyInput(device, in, merged); err != nil {
		return nil, err
	}
	if submitter.IsAdmin() && in.AutoApprove {
		device.Status = models.StatusApproved
		reviewedAt := device.SubmittedAt
		device.ReviewedBy = submitter.ID
		device.ReviewedAt = &reviewedAt
	}

	if err := store.SetJSON(ctx, s.store, models.DeviceKey(device.ID), device); err != nil {
		logger.WithFields(map[string]interface{}{"error": err.Error()}).Error("Failed to store device")
		return nil, err
	}

	logger.WithFields(map[string]interface{}{
		"device_id": device.ID,
		"user_id":   submitter.ID,
		"status":    device.Status,
	}).Info("Device submitted")
	return present(device, settings.EffectiveSections(merged)), nil
}

func applyInput(d *models.Device, in DeviceInput, merged settings.Settings) error {
	d.Brand = utils.SanitizeString(in.Brand)
	d.Title = utils.SanitizeString(in.Title)
	if d.Brand == "" || d.Title == "" {
		return models.NewBadRequestError("Brand and title required")
	}
	d.ShortDesc = in.ShortDesc
	d.Tagline = in.Tagline
	d.Price = utils.SanitizeString(in.Price)
	d.Category = utils.SanitizeString(in.Category)
	if d.Category == "" {
		d.Category = merged.DefaultCategory()
	}
	d.Images = in.Images
	if d.Images == nil {
		d.Images = []models.Image{}
	}
	sections := in.Specs.Sections
	if sections == nil {
		sections = schema.SectionValues{}
	}
	d.Specs.Sections = specs.Normalize(sections, settings.FormSections(merged, d.Category))
	return nil
}

func present(d *models.Device, sections []schema.Section) *types.DeviceResponse {
	return &types.DeviceResponse{
		Device: d,
		Slug:   utils.DeviceSlug(d.Brand, d.Title),
		Specs:  specs.Build(d.Specs.Sections, sections),
	}
}

func (s *DeviceService) presentAll(ctx context.Context, devices []models.Device) ([]*types.DeviceResponse, error) {
	merged, err := s.settings.Merged(ctx)
	if err != nil {
		return nil, err
	}
	sections := settings.EffectiveSections(merged)
	out := make([]*types.DeviceResponse, 0, len(devices))
	for i := range devices {
		out = append(out, present(&devices[i], sections))
	}
	return out, nil
}

func (s *DeviceService) load(ctx context.Context, id string) (*models.Device, error) {
	device, err := store.GetJSON[models.Device](ctx, s.store, models.DeviceKey(id))
	if errors.Is(err, store.ErrNotFound) {
		return nil, models.NewNotFoundError("Phone")
	}
	if err != nil {
		return nil, err
	}
	return &device, nil
}

// scan returns every stored device passing keep, ordered by submission
// time. newestFirst reverses the order.
func (s *DeviceService) scan(ctx context.Context, keep func(*models.Device) bool, newestFirst bool) ([]models.Device, error) {
	all, err := store.ScanJSON[models.Device](ctx, s.store, models.DeviceKeyPrefix)
	if err != nil {
		return nil, err
	}
	out := make([]models.Device, 0, len(all))
	for i := range all {
		if all[i].ID == "" {
			continue
		}
		if keep == nil || keep(&all[i]) {
			out = append(out, all[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if newestFirst {
			return out[i].SubmittedAt.After(out[j].SubmittedAt)
		}
		return out[i].SubmittedAt.Before(out[j].SubmittedAt)
	})
	return out, nil
}

func approved(d *models.Device) bool { return d.IsApproved() }

func pending(d *models.Device) bool { return d.Status == models.StatusPending }

// Get returns an approved device.
func (s *DeviceService) Get(ctx context.Context, id string) (*types.DeviceResponse, error) {
	device, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !device.IsApproved() {
		return nil, models.NewNotFoundError("Phone")
	}
	out, err := s.presentAll(ctx, []models.Device{*device})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// GetAny returns a device in any moderation state.
func (s *DeviceService) GetAny(ctx context.Context, id string) (*types.DeviceResponse, error) {
	device, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	out, err := s.presentAll(ctx, []models.Device{*device})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// ListApproved returns the public catalog in submission order.
func (s *DeviceService) ListApproved(ctx context.Context) ([]*types.DeviceResponse, error) {
	devices, err := s.scan(ctx, approved, false)
	if err != nil {
		return nil, err
	}
	return s.presentAll(ctx, devices)
}

// Latest returns up to limit approved devices of category, newest first.
// Devices without a category count as the default category.
func (s *DeviceService) Latest(ctx context.Context, category string, limit int) ([]*types.DeviceResponse, error) {
	if strings.TrimSpace(category) == "" {
		category = schema.DefaultCategory
	}
	if limit < 0 {
		limit = 0
	}
	want := categoryKey(category)
	devices, err := s.scan(ctx, func(d *models.Device) bool {
		return d.IsApproved() && categoryKey(d.Category) == want
	}, true)
	if err != nil {
		return nil, err
	}
	if len(devices) > limit {
		devices = devices[:limit]
	}
	return s.presentAll(ctx, devices)
}

func categoryKey(c string) string {
	c = strings.TrimSpace(c)
	if c == "" {
		c = schema.DefaultCategory
	}
	return strings.ToLower(c)
}

// ListAll returns every device, newest first.
func (s *DeviceService) ListAll(ctx context.Context) ([]*types.DeviceResponse, error) {
	devices, err := s.scan(ctx, nil, true)
	if err != nil {
		return nil, err
	}
	return s.presentAll(ctx, devices)
}

// ListPending returns the moderation queue, oldest first.
func (s *DeviceService) ListPending(ctx context.Context) ([]*types.DeviceResponse, error) {
	devices, err := s.scan(ctx, pending, false)
	if err != nil {
		return nil, err
	}
	return s.presentAll(ctx, devices)
}

// BySlug finds the approved device whose brand and title slug to slug.
func (s *DeviceService) BySlug(ctx context.Context, slug string) (*types.DeviceResponse, error) {
	devices, err := s.scan(ctx, approved, false)
	if err != nil {
		return nil, err
	}
	for i := range devices {
		if utils.DeviceSlug(devices[i].Brand, devices[i].Title) == slug {
			return s.presentOne(ctx, &devices[i])
		}
	}
	return nil, models.NewNotFoundError("Phone")
}

func (s *DeviceService) presentOne(ctx context.Context, d *models.Device) (*types.DeviceResponse, error) {
	out, err := s.presentAll(ctx, []models.Device{*d})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// Summaries returns the listing rows of the approved catalog. Each row
// carries the non-empty values of the configured filter fields.
func (s *DeviceService) Summaries(ctx context.Context) ([]catalog.Summary, error) {
	merged, err := s.settings.Merged(ctx)
	if err != nil {
		return nil, err
	}
	devices, err := s.scan(ctx, approved, false)
	if err != nil {
		return nil, err
	}
	return summarize(devices, merged.FilterFields), nil
}

func summarize(devices []models.Device, fields []settings.FilterField) []catalog.Summary {
	out := make([]catalog.Summary, 0, len(devices))
	for _, d := range devices {
		filters := map[string]any{}
		for _, ff := range fields {
			if ff.SectionID == "" || ff.FieldKey == "" {
				continue
			}
			v, ok := d.Specs.Sections[ff.SectionID][ff.FieldKey]
			if !ok || v == nil {
				continue
			}
			if str, isStr := v.(string); isStr && str == "" {
				continue
			}
			filters[ff.Key()] = v
		}
		images := d.Images
		if images == nil {
			images = []models.Image{}
		}
		out = append(out, catalog.Summary{
			ID:          d.ID,
			Brand:       d.Brand,
			Title:       d.Title,
			Images:      images,
			Category:    d.Category,
			Price:       d.Price,
			SubmittedAt: d.SubmittedAt,
			Filters:     filters,
		})
	}
	return out
}

// filterContext gathers the summaries and resolved filter fields a catalog
// query runs against.
func (s *DeviceService) filterContext(ctx context.Context, category string) ([]catalog.Summary, []catalog.Field, settings.Settings, error) {
	merged, err := s.settings.Merged(ctx)
	if err != nil {
		return nil, nil, merged, err
	}
	devices, err := s.scan(ctx, approved, false)
	if err != nil {
		return nil, nil, merged, err
	}
	items := summarize(devices, merged.FilterFields)
	fields := catalog.ResolveFields(settings.FilterFieldsFor(merged, category), settings.EffectiveSections(merged))
	return items, fields, merged, nil
}

// Search runs a catalog query over the approved summaries.
func (s *DeviceService) Search(ctx context.Context, c catalog.Criteria) (*types.SearchResponse, error) {
	items, fields, _, err := s.filterContext(ctx, c.Category)
	if err != nil {
		return nil, err
	}
	result := catalog.Filter(items, c, fields)
	return &types.SearchResponse{Items: result, Total: len(result)}, nil
}

// Filters describes the filter controls for category with range bounds
// over the whole approved catalog.
func (s *DeviceService) Filters(ctx context.Context, category string) (*types.FiltersResponse, error) {
	items, fields, merged, err := s.filterContext(ctx, category)
	if err != nil {
		return nil, err
	}
	bounds := catalog.Bounds(items, fields)
	out := &types.FiltersResponse{
		Category:   category,
		Fields:     make([]types.FilterFieldResponse, 0, len(fields)),
		Categories: append([]string{schema.AllCategoriesSentinel}, merged.Categories...),
		Brands:     catalog.Brands(items),
	}
	for _, f := range fields {
		row := types.FilterFieldResponse{Field: f}
		if b, ok := bounds[f.Key]; ok {
			row.Bound = &b
		}
		out.Fields = append(out.Fields, row)
	}
	out.PriceBound = priceBound(items)
	return out, nil
}

func priceBound(items []catalog.Summary) *catalog.Bound {
	var b *catalog.Bound
	for _, it := range items {
		p, ok := catalog.ParsePrice(it.Price)
		if !ok {
			continue
		}
		if b == nil {
			b = &catalog.Bound{Min: p, Max: p}
			continue
		}
		if p < b.Min {
			b.Min = p
		}
		if p > b.Max {
			b.Max = p
		}
	}
	return b
}

// Update replaces the content of a device. Identity and moderation fields
// are kept.
func (s *DeviceService) Update(ctx context.Context, id string, in DeviceInput) (*types.DeviceResponse, error) {
	merged, err := s.settings.Merged(ctx)
	if err != nil {
		return nil, err
	}
	var updated models.Device
	err = store.UpdateJSON(ctx, s.store, models.DeviceKey(id), func(cur models.Device, exists bool) (models.Device, error) {
		if !exists {
			return cur, models.NewNotFoundError("Phone")
		}
		next := cur
		if err := applyInput(&next, in, merged); err != nil {
			return cur, err
		}
		now := time.Now().UTC()
		next.UpdatedAt = &now
		updated = next
		return next, nil
	})
	if err != nil {
		return nil, err
	}
	return present(&updated, settings.EffectiveSections(merged)), nil
}

// Delete removes a device together with its comments and ratings.
func (s *DeviceService) Delete(ctx context.Context, id string) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, models.DeviceKey(id), models.CommentsKey(id), models.RatingsKey(id)); err != nil {
		return err
	}
	logger.WithFields(map[string]interface{}{"device_id": id}).Info("Device deleted")
	return nil
}

// Review approves or rejects a pending device.
func (s *DeviceService) Review(ctx context.Context, id, action, adminID string) (*types.DeviceResponse, error) {
	var status models.DeviceStatus
	switch action {
	case ActionApprove:
		status = models.StatusApproved
	case ActionReject:
		status = models.StatusRejected
	default:
		return nil, models.NewBadRequestError("Action must be approve or reject")
	}

	var reviewed models.Device
	err := store.UpdateJSON(ctx, s.store, models.DeviceKey(id), func(cur models.Device, exists bool) (models.Device, error) {
		if !exists {
			return cur, models.NewNotFoundError("Phone")
		}
		if cur.Status != models.StatusPending {
			return cur, models.NewConflictError("Phone is already " + string(cur.Status))
		}
		now := time.Now().UTC()
		cur.Status = status
		cur.ReviewedBy = adminID
		cur.ReviewedAt = &now
		reviewed = cur
		return cur, nil
	})
	if err != nil {
		return nil, err
	}

	logger.WithFields(map[string]interface{}{
		"device_id": id,
		"admin_id":  adminID,
		"status":    status,
	}).Info("Device reviewed")
	return s.presentOne(ctx, &reviewed)
}

// Compare lines up two approved devices addressed as "slugA-vs-slugB". An
// empty selection compares every effective section in schema order.
func (s *DeviceService) Compare(ctx context.Context, pair string, selected []string) (*types.CompareResponse, error) {
	slugA, slugB, ok := compare.ParsePair(pair)
	if !ok {
		return nil, models.NewBadRequestError("Comparison must look like first-vs-second")
	}
	merged, err := s.settings.Merged(ctx)
	if err != nil {
		return nil, err
	}
	devices, err := s.scan(ctx, approved, false)
	if err != nil {
		return nil, err
	}

	bySlug := make(map[string]*models.Device, len(devices))
	for i := range devices {
		slug := utils.DeviceSlug(devices[i].Brand, devices[i].Title)
		if _, dup := bySlug[slug]; !dup {
			bySlug[slug] = &devices[i]
		}
	}
	a, b := bySlug[slugA], bySlug[slugB]
	if a == nil || b == nil {
		return nil, models.NewNotFoundError("Phone")
	}

	sections := settings.EffectiveSections(merged)
	if len(selected) == 0 {
		for _, sec := range sections {
			selected = append(selected, sec.ID)
		}
	}
	return &types.CompareResponse{
		A:        present(a, sections),
		B:        present(b, sections),
		Sections: selected,
		Blocks:   compare.Compare(a.Specs.Sections, b.Specs.Sections, selected, sections),
	}, nil
}
