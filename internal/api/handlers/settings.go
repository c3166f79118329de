package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/princeprakhar/device-catalog/internal/api/middleware"
	"github.com/princeprakhar/device-catalog/internal/services"
	"github.com/princeprakhar/device-catalog/internal/settings"
	"github.com/princeprakhar/device-catalog/internal/utils"
)

type SettingsHandler struct {
	settingsService *services.SettingsService
}

func NewSettingsHandler(settingsService *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetSettings serves the stored overlay; admins read it through the same
// handler.
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	stored, err := h.settingsService.Stored(c.Request.Context())
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	utils.SendSuccess(c, "Settings retrieved successfully", stored)
}

func (h *SettingsHandler) GetEffective(c *gin.Context) {
	effective, err := h.settingsService.Effective(c.Request.Context(), c.Query("category"))
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	utils.SendSuccess(c, "Effective settings retrieved successfully", effective)
}

func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req settings.Settings
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	saved, err := h.settingsService.Save(c.Request.Context(), req, middleware.CurrentPrincipal(c).ID)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	utils.SendSuccess(c, "Settings saved successfully", saved)
}
