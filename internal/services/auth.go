package services

import (
	"context"
	"strings"
	"time"

	"github.com/princeprakhar/device-catalog/internal/models"
	"github.com/princeprakhar/device-catalog/internal/utils"
	"github.com/princeprakhar/device-catalog/pkg/logger"
)

// Principal is the authenticated caller of a request.
type Principal struct {
	ID    string
	Email string
	// Name comes from the identity provider's user metadata.
	Name string
	// Profile is nil when the user has no stored profile.
	Profile *models.UserProfile
}

func (p *Principal) Role() models.Role {
	if p.Profile == nil || p.Profile.Role == "" {
		return models.RoleUser
	}
	return p.Profile.Role
}

func (p *Principal) IsAdmin() bool {
	return p.Role() == models.RoleAdmin
}

func (p *Principal) IsBanned() bool {
	return p.Profile != nil && p.Profile.IsBanned()
}

// DisplayName is the profile name, else the identity name, else the email.
func (p *Principal) DisplayName() string {
	if p.Profile != nil && strings.TrimSpace(p.Profile.Name) != "" {
		return p.Profile.Name
	}
	if strings.TrimSpace(p.Name) != "" {
		return p.Name
	}
	return p.Email
}

type SignupRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
}

type AuthService struct {
	identity          IdentityProvider
	users             *UserService
	validationService EmailValidator
}

// NewAuthService wires signup and token checks. validationService may be
// nil, in which case addresses are only checked for format.
func NewAuthService(identity IdentityProvider, users *UserService, validationService EmailValidator) *AuthService {
	return &AuthService{
		identity:          identity,
		users:             users,
		validationService: validationService,
	}
}

// Signup creates a confirmed account at the identity provider and the
// matching profile with the user role.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*models.UserProfile, error) {
	req.Email = utils.SanitizeString(req.Email)
	req.Name = utils.SanitizeString(req.Name)

	if !utils.IsValidEmail(req.Email) {
		return nil, models.NewBadRequestError("Invalid email format")
	}
	if !utils.IsValidPassword(req.Password) {
		return nil, models.NewBadRequestError("Password must be at least 6 characters")
	}
	if err := checkDeliverable(ctx, s.validationService, req.Email); err != nil {
		return nil, err
	}

	account, err := s.identity.CreateUser(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		logger.WithFields(map[string]interface{}{"email": req.Email, "error": err.Error()}).Warn("Signup rejected by identity provider")
		return nil, err
	}

	now := time.Now().UTC()
	profile := &models.UserProfile{
		ID:        account.ID,
		Email:     req.Email,
		Name:      req.Name,
		Role:      models.RoleUser,
		Status:    models.UserActive,
		CreatedAt: &now,
	}
	if err := s.users.Save(ctx, profile); err != nil {
		return nil, err
	}

	logger.WithFields(map[string]interface{}{"user_id": profile.ID}).Info("User signed up")
	return profile, nil
}

// Authenticate resolves an access token into the calling principal.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*Principal, error) {
	account, err := s.identity.GetUser(ctx, accessToken)
	if err != nil {
		if models.AsAppError(err).Kind == models.KindInternal {
			logger.WithFields(map[string]interface{}{"error": err.Error()}).Error("Token check failed")
		}
		return nil, err
	}
	profile, err := s.users.Find(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	return &Principal{
		ID:      account.ID,
		Email:   account.Email,
		Name:    account.Name,
		Profile: profile,
	}, nil
}

// checkDeliverable rejects addresses the validator reports as undeliverable.
// Validator outages do not block the caller.
func checkDeliverable(ctx context.Context, v EmailValidator, email string) error {
	if v == nil {
		return nil
	}
	ok, err := v.IsEmailValid(ctx, email)
	if err != nil {
		logger.WithFields(map[string]interface{}{"email": email, "error": err.Error()}).Warn("Email validation unavailable")
		return nil
	}
	if !ok {
		return models.NewBadRequestError("Email address is not valid or deliverable")
	}
	return nil
}
