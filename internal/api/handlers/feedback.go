package handlers

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/princeprakhar/device-catalog/internal/api/middleware"
	"github.com/princeprakhar/device-catalog/internal/services"
	"github.com/princeprakhar/device-catalog/internal/utils"
)

type FeedbackHandler struct {
	feedbackService *services.FeedbackService
}

func NewFeedbackHandler(feedbackService *services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

type commentRequest struct {
	Message string `json:"message"`
}

type ratingRequest struct {
	Score any `json:"score"`
}

func (h *FeedbackHandler) GetComments(c *gin.Context) {
	comments, err := h.feedbackService.Comments(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	utils.SendSuccess(c, "Comments retrieved successfully", comments)
}

func (h *FeedbackHandler) AddComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	comment, err := h.feedbackService.AddComment(c.Request.Context(), c.Param("id"), middleware.CurrentPrincipal(c), req.Message)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	utils.SendCreated(c, "Comment added successfully", comment)
}

func (h *FeedbackHandler) DeleteComment(c *gin.Context) {
	if err := h.feedbackService.DeleteComment(c.Request.Context(), c.Param("id"), c.Param("commentId")); err != nil {
		utils.SendAppError(c, err)
		return
	}
	utils.SendSuccess(c, "Comment deleted successfully", nil)
}

func (h *FeedbackHandler) GetRatings(c *gin.Context) {
	summary, err := h.feedbackService.Ratings(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	utils.SendSuccess(c, "Ratings retrieved successfully", summary)
}

func (h *FeedbackHandler) GetMyRating(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)
	mine, err := h.feedbackService.MyRating(c.Request.Context(), c.Param("id"), p.ID)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	utils.SendSuccess(c, "Rating retrieved successfully", mine)
}

func (h *FeedbackHandler) Rate(c *gin.Context) {
	var req ratingRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	result, err := h.feedbackService.Rate(c.Request.Context(), c.Param("id"), middleware.CurrentPrincipal(c), req.Score)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	utils.SendCreated(c, "Rating saved successfully", result)
}
