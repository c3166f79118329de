package handlers

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/princeprakhar/device-catalog/internal/api/middleware"
	"github.com/princeprakhar/device-catalog/internal/services"
	"github.com/princeprakhar/device-catalog/internal/utils"
)

// AdminHandler serves user management for administrators.
type AdminHandler struct {
	userService *services.UserService
}

func NewAdminHandler(userService *services.UserService) *AdminHandler {
	return &AdminHandler{userService: userService}
}

type banRequest struct {
	Action string `json:"action"`
}

func (h *AdminHandler) GetUsers(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	utils.SendSuccess(c, "Users retrieved successfully", users)
}

func (h *AdminHandler) UpdateUser(c *gin.Context) {
	var req services.UserUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	user, err := h.userService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	utils.SendSuccess(c, "User updated successfully", user)
}

func (h *AdminHandler) BanUser(c *gin.Context) {
	var req banRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	admin := middleware.CurrentPrincipal(c)
	user, err := h.userService.SetBanned(c.Request.Context(), c.Param("id"), req.Action, admin.ID)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	utils.SendSuccess(c, "User status updated successfully", user)
}
