package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/princeprakhar/device-catalog/internal/models"
	"github.com/princeprakhar/device-catalog/internal/utils"
	"github.com/princeprakhar/device-catalog/pkg/logger"
)

// IdentityUser is an account as the identity provider reports it.
type IdentityUser struct {
	ID    string
	Email string
	Name  string
}

// IdentityProvider is the external service that owns accounts, passwords
// and token issuance.
type IdentityProvider interface {
	GetUser(ctx context.Context, accessToken string) (*IdentityUser, error)
	CreateUser(ctx context.Context, email, password, name string) (*IdentityUser, error)
	UpdateUserEmail(ctx context.Context, userID, email string) error
}

// GoTrueClient talks to a GoTrue-compatible auth server. When a JWT secret
// is configured, access tokens are verified locally instead of with a
// round trip per request.
type GoTrueClient struct {
	baseURL    string
	serviceKey string
	jwtSecret  string
	client     *http.Client
}

func NewGoTrueClient(baseURL, serviceKey, jwtSecret string) *GoTrueClient {
	return &GoTrueClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		jwtSecret:  jwtSecret,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type gotrueUser struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	UserMetadata struct {
		Name string `json:"name"`
	} `json:"user_metadata"`
}

func (u gotrueUser) toIdentity() *IdentityUser {
	return &IdentityUser{ID: u.ID, Email: u.Email, Name: u.UserMetadata.Name}
}

type gotrueError struct {
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	ErrorDescription string `json:"error_description"`
}

func (e gotrueError) text(status int) string {
	for _, s := range []string{e.Msg, e.Message, e.ErrorDescription} {
		if s != "" {
			return s
		}
	}
	return fmt.Sprintf("identity provider returned status %d", status)
}

func (g *GoTrueClient) GetUser(ctx context.Context, accessToken string) (*IdentityUser, error) {
	if accessToken == "" {
		return nil, models.NewUnauthorizedError("Unauthorized")
	}
	if g.jwtSecret != "" {
		claims, err := utils.ValidateToken(accessToken, g.jwtSecret)
		if err != nil {
			return nil, models.NewUnauthorizedError("Unauthorized")
		}
		return &IdentityUser{ID: claims.Subject, Email: claims.Email, Name: claims.UserMetadata.Name}, nil
	}

	var user gotrueUser
	status, err := g.do(ctx, http.MethodGet, "/auth/v1/user", accessToken, nil, &user)
	if err != nil {
		if status == http.StatusUnauthorized || status == http.StatusForbidden {
			return nil, models.NewUnauthorizedError("Unauthorized")
		}
		return nil, err
	}
	if user.ID == "" {
		return nil, models.NewUnauthorizedError("Unauthorized")
	}
	return user.toIdentity(), nil
}

// CreateUser registers a confirmed account; no confirmation mail is sent.
func (g *GoTrueClient) CreateUser(ctx context.Context, email, password, name string) (*IdentityUser, error) {
	body := map[string]interface{}{
		"email":         email,
		"password":      password,
		"email_confirm": true,
		"user_metadata": map[string]string{"name": name},
	}
	var user gotrueUser
	status, err := g.do(ctx, http.MethodPost, "/auth/v1/admin/users", g.serviceKey, body, &user)
	if err != nil {
		if status >= 400 && status < 500 {
			return nil, models.NewBadRequestError(err.Error())
		}
		return nil, err
	}
	return user.toIdentity(), nil
}

func (g *GoTrueClient) UpdateUserEmail(ctx context.Context, userID, email string) error {
	body := map[string]interface{}{"email": email, "email_confirm": true}
	status, err := g.do(ctx, http.MethodPut, "/auth/v1/admin/users/"+userID, g.serviceKey, body, nil)
	if err != nil && status >= 400 && status < 500 {
		return models.NewBadRequestError(err.Error())
	}
	return err
}

// do sends a JSON request and decodes a 2xx response into out. The status
// code is returned alongside errors reported by the provider.
func (g *GoTrueClient) do(ctx context.Context, method, path, bearer string, in, out interface{}) (int, error) {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return 0, err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return 0, err
	}
	req.Header.Set("apikey", g.serviceKey)
	req.Header.Set("Authorization", "Bearer "+bearer)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		logger.WithFields(map[string]interface{}{"path": path, "error": err.Error()}).Error("Identity provider request failed")
		return 0, fmt.Errorf("identity provider request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("reading identity provider response: %w", err)
	}
	if resp.StatusCode >= 300 {
		var e gotrueError
		_ = json.Unmarshal(raw, &e)
		return resp.StatusCode, fmt.Errorf("%s", e.text(resp.StatusCode))
	}
	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp.StatusCode, fmt.Errorf("parsing identity provider response: %w", err)
		}
	}
	return resp.StatusCode, nil
}
