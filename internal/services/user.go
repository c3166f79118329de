package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/princeprakhar/device-catalog/internal/models"
	"github.com/princeprakhar/device-catalog/internal/store"
	"github.com/princeprakhar/device-catalog/internal/utils"
	"github.com/princeprakhar/device-catalog/pkg/logger"
)

// UserUpdate carries the admin-editable profile fields. Nil fields are left
// unchanged.
type UserUpdate struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Role   *string `json:"role"`
	Status *string `json:"status"`
}

type UserService struct {
	store             store.Store
	identity          IdentityProvider
	validationService EmailValidator
}

func NewUserService(s store.Store, identity IdentityProvider, validationService EmailValidator) *UserService {
	return &UserService{
		store:             s,
		identity:          identity,
		validationService: validationService,
	}
}

// Find returns the stored profile, or nil when there is none.
func (s *UserService) Find(ctx context.Context, id string) (*models.UserProfile, error) {
	profile, err := store.GetJSON[models.UserProfile](ctx, s.store, models.UserKey(id))
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *UserService) Save(ctx context.Context, profile *models.UserProfile) error {
	return store.SetJSON(ctx, s.store, models.UserKey(profile.ID), profile)
}

// Profile returns the caller's profile, falling back to a plain user view
// when none is stored.
func (s *UserService) Profile(p *Principal) *models.UserProfile {
	if p.Profile != nil {
		return p.Profile
	}
	return &models.UserProfile{ID: p.ID, Email: p.Email, Role: models.RoleUser}
}

// List returns every profile, most recently created first.
func (s *UserService) List(ctx context.Context) ([]models.UserProfile, error) {
	users, err := store.ScanJSON[models.UserProfile](ctx, s.store, models.UserKeyPrefix)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(users, func(i, j int) bool {
		return createdAt(users[i]).After(createdAt(users[j]))
	})
	return users, nil
}

func createdAt(u models.UserProfile) time.Time {
	if u.CreatedAt == nil {
		return time.Time{}
	}
	return *u.CreatedAt
}

func (s *UserService) Update(ctx context.Context, id string, in UserUpdate) (*models.UserProfile, error) {
	existing, err := s.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, models.NewNotFoundError("User")
	}

	var newEmail string
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if !strings.Contains(email, "@") {
			return nil, models.NewBadRequestError("Invalid email")
		}
		if email != existing.Email {
			newEmail = email
		}
	}
	if in.Role != nil && !utils.IsValidRole(*in.Role) {
		return nil, models.NewBadRequestError("Invalid role")
	}
	if in.Status != nil && !utils.IsValidUserStatus(*in.Status) {
		return nil, models.NewBadRequestError("Invalid status")
	}

	// The identity provider owns the address, so it changes there first.
	if newEmail != "" {
		if err := checkDeliverable(ctx, s.validationService, newEmail); err != nil {
			return nil, err
		}
		if err := s.identity.UpdateUserEmail(ctx, id, newEmail); err != nil {
			logger.WithFields(map[string]interface{}{"user_id": id, "error": err.Error()}).Warn("Failed to update user email")
			return nil, err
		}
	}

	var updated models.UserProfile
	err = store.UpdateJSON(ctx, s.store, models.UserKey(id), func(cur models.UserProfile, exists bool) (models.UserProfile, error) {
		if !exists {
			return cur, models.NewNotFoundError("User")
		}
		if in.Name != nil {
			cur.Name = utils.SanitizeString(*in.Name)
		}
		if newEmail != "" {
			cur.Email = newEmail
		}
		if in.Role != nil {
			cur.Role = models.Role(*in.Role)
		}
		if in.Status != nil {
			cur.Status = models.UserStatus(*in.Status)
		}
		now := time.Now().UTC()
		cur.UpdatedAt = &now
		updated = cur
		return cur, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// SetBanned bans or unbans a user. Any action other than "unban" bans.
func (s *UserService) SetBanned(ctx context.Context, id, action, adminID string) (*models.UserProfile, error) {
	ban := action != "unban"
	var updated models.UserProfile
	err := store.UpdateJSON(ctx, s.store, models.UserKey(id), func(cur models.UserProfile, exists bool) (models.UserProfile, error) {
		if !exists {
			return cur, models.NewNotFoundError("User")
		}
		now := time.Now().UTC()
		if ban {
			by := adminID
			cur.Status = models.UserBanned
			cur.BannedAt = &now
			cur.BannedBy = &by
		} else {
			cur.Status = models.UserActive
			cur.BannedAt = nil
			cur.BannedBy = nil
		}
		cur.UpdatedAt = &now
		updated = cur
		return cur, nil
	})
	if err != nil {
		return nil, err
	}

	logger.WithFields(map[string]interface{}{
		"user_id":  id,
		"admin_id": adminID,
		"banned":   ban,
	}).Info("User ban status changed")
	return &updated, nil
}

// FindByEmail looks a profile up by address, ignoring case.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	users, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if strings.EqualFold(users[i].Email, strings.TrimSpace(email)) {
			return &users[i], nil
		}
	}
	return nil, models.NewNotFoundError("User")
}

// SetRoleByEmail grants or revokes the admin role.
func (s *UserService) SetRoleByEmail(ctx context.Context, email string, role models.Role) (*models.UserProfile, error) {
	if !utils.IsValidRole(string(role)) {
		return nil, models.NewBadRequestError("Invalid role")
	}
	profile, err := s.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	r := string(role)
	return s.Update(ctx, profile.ID, UserUpdate{Role: &r})
}

func (s *UserService) ListAdmins(ctx context.Context) ([]models.UserProfile, error) {
	users, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	admins := make([]models.UserProfile, 0)
	for _, u := range users {
		if u.IsAdmin() {
			admins = append(admins, u)
		}
	}
	return admins, nil
}
