package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/princeprakhar/device-catalog/internal/models"
)

func strPtr(s string) *string { return &s }

func TestUpdateUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.principal(t, "u1", models.RoleUser, models.UserActive)

	updated, err := f.users.Update(ctx, "u1", UserUpdate{
		Name:   strPtr("  New Name "),
		Email:  strPtr(" new@example.com "),
		Role:   strPtr("admin"),
		Status: strPtr("banned"),
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "new@example.com", updated.Email)
	assert.Equal(t, models.RoleAdmin, updated.Role)
	assert.Equal(t, models.UserBanned, updated.Status)
	assert.NotNil(t, updated.UpdatedAt)
	assert.Equal(t, "new@example.com", f.identity.emailUpdates["u1"])

	// Same address does not touch the identity provider.
	delete(f.identity.emailUpdates, "u1")
	_, err = f.users.Update(ctx, "u1", UserUpdate{Email: strPtr("new@example.com")})
	require.NoError(t, err)
	assert.Empty(t, f.identity.emailUpdates)
}

func TestUpdateUserRejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.principal(t, "u1", models.RoleUser, models.UserActive)

	tests := []struct {
		name string
		id   string
		in   UserUpdate
		kind models.ErrorKind
	}{
		{"missing user", "nope", UserUpdate{}, models.KindNotFound},
		{"email without at", "u1", UserUpdate{Email: strPtr("nope")}, models.KindBadRequest},
		{"empty email", "u1", UserUpdate{Email: strPtr("  ")}, models.KindBadRequest},
		{"bad role", "u1", UserUpdate{Role: strPtr("owner")}, models.KindBadRequest},
		{"bad status", "u1", UserUpdate{Status: strPtr("frozen")}, models.KindBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.users.Update(ctx, tt.id, tt.in)
			assert.Equal(t, tt.kind, appKind(err))
		})
	}

	f.identity.updateErr = models.NewBadRequestError("Email already registered")
	_, err := f.users.Update(ctx, "u1", UserUpdate{Email: strPtr("taken@example.com")})
	assert.EqualError(t, err, "Email already registered")

	stored, err := f.users.Find(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1@example.com", stored.Email)
}

func TestBanAndUnban(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.principal(t, "u1", models.RoleUser, models.UserActive)

	banned, err := f.users.SetBanned(ctx, "u1", "ban", "a1")
	require.NoError(t, err)
	assert.Equal(t, models.UserBanned, banned.Status)
	require.NotNil(t, banned.BannedAt)
	require.NotNil(t, banned.BannedBy)
	assert.Equal(t, "a1", *banned.BannedBy)

	unbanned, err := f.users.SetBanned(ctx, "u1", "unban", "a1")
	require.NoError(t, err)
	assert.Equal(t, models.UserActive, unbanned.Status)
	assert.Nil(t, unbanned.BannedAt)
	assert.Nil(t, unbanned.BannedBy)

	again, err := f.users.SetBanned(ctx, "u1", "", "a1")
	require.NoError(t, err)
	assert.Equal(t, models.UserBanned, again.Status, "anything but unban bans")

	_, err = f.users.SetBanned(ctx, "nope", "ban", "a1")
	assert.Equal(t, models.KindNotFound, appKind(err))
}

func TestListUsersNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "new", "mid"} {
		created := base.Add(map[int]time.Duration{0: 0, 1: 2 * time.Hour, 2: time.Hour}[i])
		require.NoError(t, f.users.Save(ctx, &models.UserProfile{ID: id, Email: id + "@x.io", Role: models.RoleUser, CreatedAt: &created}))
	}
	require.NoError(t, f.users.Save(ctx, &models.UserProfile{ID: "undated", Email: "u@x.io", Role: models.RoleAdmin}))

	users, err := f.users.List(ctx)
	require.NoError(t, err)
	var got []string
	for _, u := range users {
		got = append(got, u.ID)
	}
	assert.Equal(t, []string{"new", "mid", "old", "undated"}, got)

	admins, err := f.users.ListAdmins(ctx)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "undated", admins[0].ID)
}

func TestSetRoleByEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.principal(t, "u1", models.RoleUser, models.UserActive)

	promoted, err := f.users.SetRoleByEmail(ctx, "U1@Example.com", models.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, promoted.IsAdmin())

	demoted, err := f.users.SetRoleByEmail(ctx, "u1@example.com", models.RoleUser)
	require.NoError(t, err)
	assert.False(t, demoted.IsAdmin())

	_, err = f.users.SetRoleByEmail(ctx, "ghost@example.com", models.RoleAdmin)
	assert.Equal(t, models.KindNotFound, appKind(err))
}

func TestProfileFallback(t *testing.T) {
	f := newFixture(t)
	p := &Principal{ID: "x", Email: "x@example.com"}
	profile := f.users.Profile(p)
	assert.Equal(t, &models.UserProfile{ID: "x", Email: "x@example.com", Role: models.RoleUser}, profile)
}

func TestSignup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	profile, err := f.auth.Signup(ctx, SignupRequest{Email: " ada@example.com ", Password: "secret1", Name: " Ada "})
	require.NoError(t, err)
	assert.Equal(t, "idp-ada@example.com", profile.ID)
	assert.Equal(t, "Ada", profile.Name)
	assert.Equal(t, models.RoleUser, profile.Role)
	assert.Equal(t, models.UserActive, profile.Status)
	assert.NotNil(t, profile.CreatedAt)

	stored, err := f.users.Find(ctx, profile.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "ada@example.com", stored.Email)
}

func TestSignupRejections(t *testing.T) {
	ctx := context.Background()

	f := newFixture(t)
	_, err := f.auth.Signup(ctx, SignupRequest{Email: "not-an-email", Password: "secret1"})
	assert.Equal(t, models.KindBadRequest, appKind(err))
	_, err = f.auth.Signup(ctx, SignupRequest{Email: "a@example.com", Password: "123"})
	assert.Equal(t, models.KindBadRequest, appKind(err))

	f.identity.createErr = models.NewBadRequestError("User already registered")
	_, err = f.auth.Signup(ctx, SignupRequest{Email: "a@example.com", Password: "secret1"})
	assert.EqualError(t, err, "User already registered")

	strict := NewAuthService(f.identity, f.users, fakeValidator{valid: false})
	f.identity.createErr = nil
	_, err = strict.Signup(ctx, SignupRequest{Email: "a@example.com", Password: "secret1"})
	assert.Equal(t, models.KindBadRequest, appKind(err))
	assert.Empty(t, f.identity.created)

	down := NewAuthService(f.identity, f.users, fakeValidator{err: errors.New("timeout")})
	_, err = down.Signup(ctx, SignupRequest{Email: "a@example.com", Password: "secret1"})
	assert.NoError(t, err, "validator outages do not block signup")
}

func TestAuthenticate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.identity.byToken["tok-admin"] = &IdentityUser{ID: "a1", Email: "a1@example.com"}
	f.identity.byToken["tok-new"] = &IdentityUser{ID: "n1", Email: "n1@example.com", Name: "Newbie"}
	f.principal(t, "a1", models.RoleAdmin, models.UserActive)

	p, err := f.auth.Authenticate(ctx, "tok-admin")
	require.NoError(t, err)
	assert.True(t, p.IsAdmin())
	assert.False(t, p.IsBanned())

	p, err = f.auth.Authenticate(ctx, "tok-new")
	require.NoError(t, err)
	assert.Nil(t, p.Profile)
	assert.Equal(t, models.RoleUser, p.Role())
	assert.Equal(t, "Newbie", p.DisplayName())

	_, err = f.auth.Authenticate(ctx, "bogus")
	assert.Equal(t, models.KindUnauthorized, appKind(err))
}
