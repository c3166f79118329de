package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/princeprakhar/device-catalog/internal/config"
	"github.com/princeprakhar/device-catalog/internal/models"
	"github.com/princeprakhar/device-catalog/internal/services"
	"github.com/princeprakhar/device-catalog/internal/store"
)

const prefix = "/make-server"

type tokenIdentity map[string]*services.IdentityUser

func (t tokenIdentity) GetUser(_ context.Context, token string) (*services.IdentityUser, error) {
	if u, ok := t[token]; ok {
		return u, nil
	}
	return nil, models.NewUnauthorizedError("Unauthorized")
}

func (t tokenIdentity) CreateUser(_ context.Context, email, _, name string) (*services.IdentityUser, error) {
	return &services.IdentityUser{ID: "new-" + email, Email: email, Name: name}, nil
}

func (t tokenIdentity) UpdateUserEmail(context.Context, string, string) error { return nil }

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	router *gin.Engine
	store  store.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := store.NewMemoryStore()
	identity := tokenIdentity{
		"user-token":   {ID: "u1", Email: "u1@example.com"},
		"admin-token":  {ID: "a1", Email: "a1@example.com"},
		"banned-token": {ID: "b1", Email: "b1@example.com"},
	}
	ctx := context.Background()
	now := time.Now().UTC()
	for _, p := range []models.UserProfile{
		{ID: "u1", Email: "u1@example.com", Name: "Uma", Role: models.RoleUser, Status: models.UserActive, CreatedAt: &now},
		{ID: "a1", Email: "a1@example.com", Role: models.RoleAdmin, Status: models.UserActive, CreatedAt: &now},
		{ID: "b1", Email: "b1@example.com", Role: models.RoleUser, Status: models.UserBanned, CreatedAt: &now},
	} {
		require.NoError(t, store.SetJSON(ctx, s, models.UserKey(p.ID), p))
	}

	cfg := &config.Config{APIPrefix: prefix, AllowedOrigins: "*"}
	router := gin.New()
	SetupRoutes(router, cfg, &store.Backend{Store: s}, identity)
	return &testServer{router: router, store: s}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, prefix+path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

type deviceView struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	Slug       string `json:"slug"`
	ReviewedBy string `json:"reviewedBy"`
	ReviewedAt string `json:"reviewedAt"`
	Specs      struct {
		Display  map[string]any `json:"display"`
		Sections map[string]any `json:"sections"`
	} `json:"specs"`
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, prefix+"/health", nil)
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestUnknownRoute(t *testing.T) {
	ts := newTestServer(t)
	w, env := ts.do(t, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Route not found", env.Message)
}

func TestSubmitThenApprove(t *testing.T) {
	ts := newTestServer(t)

	w, env := ts.do(t, http.MethodPost, "/phones", "user-token", map[string]any{
		"brand": "Acme", "title": "One", "price": "19.999", "autoApprove": true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[deviceView](t, env.Data)
	assert.Equal(t, "pending", created.Status)
	assert.NotNil(t, created.Specs.Display)
	assert.NotNil(t, created.Specs.Sections)

	w, env = ts.do(t, http.MethodGet, "/admin/phones/pending", "admin-token", nil)
	require.Equal(t, http.StatusOK, w.Code)
	pending := decode[[]deviceView](t, env.Data)
	require.Len(t, pending, 1)
	assert.Equal(t, created.ID, pending[0].ID)

	w, env = ts.do(t, http.MethodGet, "/phones", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]deviceView](t, env.Data))
	assert.Equal(t, "public, max-age=30, s-maxage=60, stale-while-revalidate=120", w.Header().Get("Cache-Control"))

	w, _ = ts.do(t, http.MethodGet, "/phones/"+created.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env = ts.do(t, http.MethodPost, "/admin/phones/"+created.ID+"/approve", "admin-token", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	approved := decode[deviceView](t, env.Data)
	assert.Equal(t, "approved", approved.Status)
	assert.Equal(t, "a1", approved.ReviewedBy)
	assert.NotEmpty(t, approved.ReviewedAt)

	w, env = ts.do(t, http.MethodGet, "/phones", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	public := decode[[]deviceView](t, env.Data)
	require.Len(t, public, 1)
	assert.Equal(t, created.ID, public[0].ID)

	w, env = ts.do(t, http.MethodGet, "/admin/phones/pending", "admin-token", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]deviceView](t, env.Data))

	w, env = ts.do(t, http.MethodGet, "/phones/slug/acme-one", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created.ID, decode[deviceView](t, env.Data).ID)
	assert.Equal(t, "public, max-age=120, s-maxage=300, stale-while-revalidate=600", w.Header().Get("Cache-Control"))

	w, _ = ts.do(t, http.MethodPost, "/admin/phones/"+created.ID+"/reject", "admin-token", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestBannedUserCannotComment(t *testing.T) {
	ts := newTestServer(t)
	require.NoError(t, store.SetJSON(context.Background(), ts.store, models.DeviceKey("d1"),
		models.Device{ID: "d1", Brand: "Acme", Title: "One", Status: models.StatusApproved}))

	w, env := ts.do(t, http.MethodPost, "/phones/d1/comments", "banned-token", map[string]string{"message": "spam"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "User is banned", env.Message)

	w, env = ts.do(t, http.MethodGet, "/phones/d1/comments", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]models.Comment](t, env.Data))

	w, env = ts.do(t, http.MethodPost, "/phones/d1/comments", "user-token", map[string]string{"message": "  nice  "})
	require.Equal(t, http.StatusCreated, w.Code)
	comment := decode[models.Comment](t, env.Data)
	assert.Equal(t, "nice", comment.Message)
	assert.Equal(t, "Uma", comment.Name)

	w, _ = ts.do(t, http.MethodDelete, "/admin/phones/d1/comments/"+comment.ID, "user-token", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, _ = ts.do(t, http.MethodDelete, "/admin/phones/d1/comments/"+comment.ID, "admin-token", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDuplicateRatingConflicts(t *testing.T) {
	ts := newTestServer(t)
	require.NoError(t, store.SetJSON(context.Background(), ts.store, models.DeviceKey("d1"),
		models.Device{ID: "d1", Brand: "Acme", Title: "One", Status: models.StatusApproved}))

	w, env := ts.do(t, http.MethodGet, "/phones/d1/ratings/me", "user-token", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"score":null}`, string(env.Data))

	w, env = ts.do(t, http.MethodPost, "/phones/d1/ratings", "user-token", map[string]any{"score": 88.4})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.JSONEq(t, `{"average":88,"count":1,"score":88}`, string(env.Data))

	w, env = ts.do(t, http.MethodPost, "/phones/d1/ratings", "user-token", map[string]any{"score": 10})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Already rated", env.Message)

	w, env = ts.do(t, http.MethodGet, "/phones/d1/ratings", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"average":88,"count":1}`, string(env.Data))

	w, _ = ts.do(t, http.MethodPost, "/phones/d1/ratings", "admin-token", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthGuards(t *testing.T) {
	ts := newTestServer(t)

	w, _ := ts.do(t, http.MethodGet, "/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w, _ = ts.do(t, http.MethodGet, "/profile", "forged", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w, _ = ts.do(t, http.MethodGet, "/admin/users", "user-token", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env := ts.do(t, http.MethodGet, "/admin/users", "admin-token", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.UserProfile](t, env.Data), 3)
}

func TestProfileAndSignup(t *testing.T) {
	ts := newTestServer(t)

	w, env := ts.do(t, http.MethodPost, "/signup", "", map[string]string{"email": "new@example.com", "password": "secret1", "name": "New"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	user := decode[models.UserProfile](t, env.Data)
	assert.Equal(t, models.RoleUser, user.Role)

	w, _ = ts.do(t, http.MethodPost, "/signup", "", map[string]string{"email": "new@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = ts.do(t, http.MethodGet, "/profile", "user-token", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Uma", decode[models.UserProfile](t, env.Data).Name)
}

func TestAdminUserManagement(t *testing.T) {
	ts := newTestServer(t)

	w, env := ts.do(t, http.MethodPost, "/admin/users/u1/ban", "admin-token", map[string]string{"action": "ban"})
	require.Equal(t, http.StatusOK, w.Code)
	banned := decode[models.UserProfile](t, env.Data)
	assert.Equal(t, models.UserBanned, banned.Status)

	w, _ = ts.do(t, http.MethodPost, "/phones", "user-token", map[string]any{"brand": "Acme", "title": "One"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = ts.do(t, http.MethodPost, "/admin/users/u1/ban", "admin-token", map[string]string{"action": "unban"})
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = ts.do(t, http.MethodPut, "/admin/users/u1", "admin-token", map[string]string{"email": "broken"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = ts.do(t, http.MethodPut, "/admin/users/ghost", "admin-token", map[string]string{"name": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSettingsRoundTrip(t *testing.T) {
	ts := newTestServer(t)

	w, env := ts.do(t, http.MethodGet, "/settings", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"version":0}`, string(env.Data))

	w, _ = ts.do(t, http.MethodPut, "/admin/settings", "admin-token", map[string]any{"version": 0, "categories": []string{"Telefon", "Tablet"}})
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = ts.do(t, http.MethodPut, "/admin/settings", "admin-token", map[string]any{"version": 0, "categories": []string{"Saat"}})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, env = ts.do(t, http.MethodGet, "/settings/effective?category=Tablet", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var effective struct {
		Category     string `json:"category"`
		FormSections []any  `json:"formSections"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &effective))
	assert.Equal(t, "Tablet", effective.Category)
	assert.Empty(t, effective.FormSections)
}
