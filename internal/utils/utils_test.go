package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/princeprakhar/device-catalog/internal/models"
)

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Samsung Galaxy S24 Ultra":     "samsung-galaxy-s24-ultra",
		"Xiaomi Redmi Note 13 Pro+":    "xiaomi-redmi-note-13-pro",
		"  Çağlayan Işık Ürün Şöyle  ": "caglayan-isik-urun-soyle",
		"Café Über":                    "cafe-uber",
		"---":                          "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), in)
	}
	assert.Equal(t, "apple-iphone-15", DeviceSlug("Apple", "iPhone 15"))
	assert.Equal(t, "pixel-9", DeviceSlug("", "Pixel 9"))
}

func TestTokenRoundTrip(t *testing.T) {
	secret := "0123456789abcdef0123456789abcdef"
	token, exp, err := GenerateAccessToken("user-1", "a@example.com", "Ayşe", secret, time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := ValidateToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.Equal(t, "Ayşe", claims.UserMetadata.Name)

	_, err = ValidateToken(token, "another-secret-another-secret-xx")
	assert.Error(t, err)

	expired, _, err := GenerateAccessToken("user-1", "a@example.com", "", secret, -time.Minute)
	require.NoError(t, err)
	_, err = ValidateToken(expired, secret)
	assert.Error(t, err)
}

func TestValidators(t *testing.T) {
	assert.True(t, IsValidEmail("user@example.com"))
	assert.False(t, IsValidEmail("user@"))
	assert.True(t, IsValidPassword("secret"))
	assert.False(t, IsValidPassword("short"))
	assert.True(t, IsValidRole("admin"))
	assert.False(t, IsValidRole("customer"))
	assert.True(t, IsValidUserStatus("banned"))

	assert.Equal(t, 100, ClampScore(140))
	assert.Equal(t, 0, ClampScore(-3))
	assert.Equal(t, 73, ClampScore(72.6))
}

func TestSendAppError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		err        error
		wantStatus int
		wantMsg    string
	}{
		{models.NewConflictError("Already rated"), http.StatusConflict, "Already rated"},
		{models.NewNotFoundError("Device"), http.StatusNotFound, "Device not found"},
		{errors.New("redis down"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		SendAppError(c, tt.err)

		assert.Equal(t, tt.wantStatus, w.Code)
		var resp APIResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, tt.wantMsg, resp.Message)
	}
}
