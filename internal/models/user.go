package models

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type UserStatus string

const (
	UserActive UserStatus = "active"
	UserBanned UserStatus = "banned"
)

// UserProfile is the catalog's own record of an identity-provider user.
// Credentials stay with the identity provider.
type UserProfile struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name,omitempty"`
	Role      Role       `json:"role"`
	Status    UserStatus `json:"status,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
	BannedAt  *time.Time `json:"bannedAt"`
	BannedBy  *string    `json:"bannedBy"`
}

func (u *UserProfile) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *UserProfile) IsBanned() bool {
	return u.Status == UserBanned
}

const UserKeyPrefix = "user:"

func UserKey(id string) string {
	return UserKeyPrefix + id
}

// SettingsKey holds the site-wide catalog settings document.
const SettingsKey = "site:settings"
