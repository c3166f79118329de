package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/princeprakhar/device-catalog/internal/api/middleware"
	"github.com/princeprakhar/device-catalog/internal/catalog"
	"github.com/princeprakhar/device-catalog/internal/services"
	"github.com/princeprakhar/device-catalog/internal/utils"
)

// Cache-Control values; the more a listing aggregates, the longer it may
// be cached.
const (
	cacheCatalog = "public, max-age=30, s-maxage=60, stale-while-revalidate=120"
	cacheLatest  = "public, max-age=60, s-maxage=120, stale-while-revalidate=300"
	cacheSummary = "public, max-age=120, s-maxage=300, stale-while-revalidate=600"
)

type DeviceHandler struct {
	deviceService *services.DeviceService
}

func NewDeviceHandler(deviceService *services.DeviceService) *DeviceHandler {
	return &DeviceHandler{deviceService: deviceService}
}

func (h *DeviceHandler) GetPhones(c *gin.Context) {
	devices, err := h.deviceService.ListApproved(c.Request.Context())
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	c.Header("Cache-Control", cacheCatalog)
	utils.SendSuccess(c, "Phones retrieved successfully", devices)
}

func (h *DeviceHandler) GetLatest(c *gin.Context) {
	limit := services.DefaultLatestLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			utils.SendValidationError(c, "Invalid limit")
			return
		}
		limit = n
	}

	devices, err := h.deviceService.Latest(c.Request.Context(), c.Query("category"), limit)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	c.Header("Cache-Control", cacheLatest)
	utils.SendSuccess(c, "Latest phones retrieved successfully", devices)
}

func (h *DeviceHandler) GetSummary(c *gin.Context) {
	rows, err := h.deviceService.Summaries(c.Request.Context())
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	c.Header("Cache-Control", cacheSummary)
	utils.SendSuccess(c, "Phone summary retrieved successfully", rows)
}

func (h *DeviceHandler) GetFilters(c *gin.Context) {
	filters, err := h.deviceService.Filters(c.Request.Context(), c.Query("category"))
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	c.Header("Cache-Control", cacheSummary)
	utils.SendSuccess(c, "Filters retrieved successfully", filters)
}

func (h *DeviceHandler) Search(c *gin.Context) {
	var criteria catalog.Criteria
	if err := c.ShouldBindJSON(&criteria); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	result, err := h.deviceService.Search(c.Request.Context(), criteria)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	utils.SendSuccess(c, "Search completed", result)
}

func (h *DeviceHandler) GetBySlug(c *gin.Context) {
	device, err := h.deviceService.BySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	c.Header("Cache-Control", cacheSummary)
	utils.SendSuccess(c, "Phone retrieved successfully", device)
}

func (h *DeviceHandler) GetPhone(c *gin.Context) {
	device, err := h.deviceService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	utils.SendSuccess(c, "Phone retrieved successfully", device)
}

func (h *DeviceHandler) CreatePhone(c *gin.Context) {
	var req services.DeviceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	device, err := h.deviceService.Create(c.Request.Context(), req, middleware.CurrentPrincipal(c))
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	utils.SendCreated(c, "Phone submitted successfully", device)
}

func (h *DeviceHandler) Compare(c *gin.Context) {
	var sections []string
	for _, id := range strings.Split(c.Query("sections"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			sections = append(sections, id)
		}
	}

	result, err := h.deviceService.Compare(c.Request.Context(), c.Param("pair"), sections)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	c.Header("Cache-Control", cacheSummary)
	utils.SendSuccess(c, "Comparison ready", result)
}

// Admin moderation

func (h *DeviceHandler) GetAllPhones(c *gin.Context) {
	devices, err := h.deviceService.ListAll(c.Request.Context())
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	utils.SendSuccess(c, "Phones retrieved successfully", devices)
}

func (h *DeviceHandler) GetPendingPhones(c *gin.Context) {
	devices, err := h.deviceService.ListPending(c.Request.Context())
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	utils.SendSuccess(c, "Pending phones retrieved successfully", devices)
}

func (h *DeviceHandler) GetAnyPhone(c *gin.Context) {
	device, err := h.deviceService.GetAny(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	utils.SendSuccess(c, "Phone retrieved successfully", device)
}

func (h *DeviceHandler) UpdatePhone(c *gin.Context) {
	var req services.DeviceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	device, err := h.deviceService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	utils.SendSuccess(c, "Phone updated successfully", device)
}

func (h *DeviceHandler) DeletePhone(c *gin.Context) {
	if err := h.deviceService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.SendAppError(c, err)
		return
	}
	utils.SendSuccess(c, "Phone deleted successfully", nil)
}

func (h *DeviceHandler) ReviewPhone(c *gin.Context) {
	admin := middleware.CurrentPrincipal(c)
	device, err := h.deviceService.Review(c.Request.Context(), c.Param("id"), c.Param("action"), admin.ID)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	utils.SendSuccess(c, "Phone "+string(device.Status), device)
}
