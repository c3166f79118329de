package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/princeprakhar/device-catalog/internal/api/middleware"
	"github.com/princeprakhar/device-catalog/internal/services"
	"github.com/princeprakhar/device-catalog/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
	userService *services.UserService
}

func NewAuthHandler(authService *services.AuthService, userService *services.UserService) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req services.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), req)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SendCreated(c, "User created successfully", user)
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	profile := h.userService.Profile(middleware.CurrentPrincipal(c))
	utils.SendSuccess(c, "Profile retrieved successfully", profile)
}
