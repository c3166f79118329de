package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/princeprakhar/device-catalog/internal/models"
	"github.com/princeprakhar/device-catalog/internal/store"
)

// fakeIdentity is an in-memory identity provider. Tokens map directly to
// users.
type fakeIdentity struct {
	mu           sync.Mutex
	byToken      map[string]*IdentityUser
	created      []IdentityUser
	emailUpdates map[string]string
	createErr    error
	updateErr    error
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{
		byToken:      map[string]*IdentityUser{},
		emailUpdates: map[string]string{},
	}
}

func (f *fakeIdentity) GetUser(_ context.Context, token string) (*IdentityUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byToken[token]
	if !ok {
		return nil, models.NewUnauthorizedError("Unauthorized")
	}
	return u, nil
}

func (f *fakeIdentity) CreateUser(_ context.Context, email, _, name string) (*IdentityUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	u := IdentityUser{ID: "idp-" + email, Email: email, Name: name}
	f.created = append(f.created, u)
	return &u, nil
}

func (f *fakeIdentity) UpdateUserEmail(_ context.Context, id, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	f.emailUpdates[id] = email
	return nil
}

type fakeValidator struct {
	valid bool
	err   error
}

func (v fakeValidator) IsEmailValid(context.Context, string) (bool, error) {
	return v.valid, v.err
}

type fixture struct {
	store    store.Store
	identity *fakeIdentity
	settings *SettingsService
	devices  *DeviceService
	feedback *FeedbackService
	users    *UserService
	auth     *AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := store.NewMemoryStore()
	identity := newFakeIdentity()
	settingsService := NewSettingsService(s)
	users := NewUserService(s, identity, nil)
	return &fixture{
		store:    s,
		identity: identity,
		settings: settingsService,
		devices:  NewDeviceService(s, settingsService),
		feedback: NewFeedbackService(s),
		users:    users,
		auth:     NewAuthService(identity, users, nil),
	}
}

func (f *fixture) principal(t *testing.T, id string, role models.Role, status models.UserStatus) *Principal {
	t.Helper()
	created := time.Now().UTC()
	profile := &models.UserProfile{
		ID:        id,
		Email:     id + "@example.com",
		Name:      "User " + id,
		Role:      role,
		Status:    status,
		CreatedAt: &created,
	}
	require.NoError(t, f.users.Save(context.Background(), profile))
	return &Principal{ID: id, Email: profile.Email, Profile: profile}
}

func (f *fixture) putDevice(t *testing.T, d models.Device) {
	t.Helper()
	require.NoError(t, store.SetJSON(context.Background(), f.store, models.DeviceKey(d.ID), d))
}

func appKind(err error) models.ErrorKind {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}
