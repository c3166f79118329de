package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/princeprakhar/device-catalog/internal/models"
	"github.com/princeprakhar/device-catalog/pkg/logger"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func SendSuccess(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func SendCreated(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func SendError(c *gin.Context, statusCode int, message string, err error) {
	response := APIResponse{
		Success: false,
		Message: message,
	}

	if err != nil {
		response.Error = err.Error()
	}

	c.JSON(statusCode, response)
}

// SendAppError writes err with the status of its kind. Errors that are not
// an *AppError are internal; their text is passed through.
func SendAppError(c *gin.Context, err error) {
	appErr := models.AsAppError(err)
	status := appErr.Status()
	if status >= http.StatusInternalServerError {
		logger.WithFields(map[string]interface{}{
			"path":  c.FullPath(),
			"error": err.Error(),
		}).Error("Request failed")
	}

	response := APIResponse{Success: false, Message: appErr.Message}
	if appErr.Err != nil {
		response.Error = appErr.Err.Error()
	}
	c.AbortWithStatusJSON(status, response)
}

func SendValidationError(c *gin.Context, message string) {
	SendError(c, http.StatusBadRequest, message, nil)
}

func SendUnauthorized(c *gin.Context, message string) {
	SendError(c, http.StatusUnauthorized, message, nil)
}

func SendForbidden(c *gin.Context, message string) {
	SendError(c, http.StatusForbidden, message, nil)
}

func SendNotFound(c *gin.Context, message string) {
	SendError(c, http.StatusNotFound, message, nil)
}

func SendInternalError(c *gin.Context, message string, err error) {
	SendError(c, http.StatusInternalServerError, message, err)
}
