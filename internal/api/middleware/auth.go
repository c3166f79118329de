package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/princeprakhar/device-catalog/internal/services"
	"github.com/princeprakhar/device-catalog/internal/utils"
)

const principalKey = "principal"

// AuthMiddleware resolves the bearer token into the calling principal.
func AuthMiddleware(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.SendUnauthorized(c, "Authorization header required")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || strings.TrimSpace(tokenString) == "" {
			utils.SendUnauthorized(c, "Bearer token required")
			c.Abort()
			return
		}

		principal, err := authService.Authenticate(c.Request.Context(), strings.TrimSpace(tokenString))
		if err != nil {
			utils.SendAppError(c, err)
			return
		}

		c.Set(principalKey, principal)
		c.Set("user_id", principal.ID)
		c.Set("user_email", principal.Email)
		c.Set("user_role", string(principal.Role()))
		c.Next()
	}
}

// CurrentPrincipal returns the caller set by AuthMiddleware, or nil.
func CurrentPrincipal(c *gin.Context) *services.Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	p, _ := v.(*services.Principal)
	return p
}

func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if p := CurrentPrincipal(c); p == nil || !p.IsAdmin() {
			utils.SendForbidden(c, "Forbidden - Admin only")
			c.Abort()
			return
		}
		c.Next()
	}
}

// NotBanned blocks banned users from write routes.
func NotBanned() gin.HandlerFunc {
	return func(c *gin.Context) {
		if p := CurrentPrincipal(c); p != nil && p.IsBanned() {
			utils.SendForbidden(c, "User is banned")
			c.Abort()
			return
		}
		c.Next()
	}
}
