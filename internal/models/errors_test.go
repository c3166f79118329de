package models

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorStatus(t *testing.T) {
	tests := []struct {
		err  *AppError
		want int
	}{
		{NewBadRequestError("bad"), http.StatusBadRequest},
		{NewUnauthorizedError("who"), http.StatusUnauthorized},
		{NewForbiddenError("no"), http.StatusForbidden},
		{NewNotFoundError("Device"), http.StatusNotFound},
		{NewConflictError("Already rated"), http.StatusConflict},
		{NewInternalError(errors.New("boom")), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Status(), tt.err.Error())
	}
}

func TestAsAppError(t *testing.T) {
	wrapped := fmt.Errorf("rating: %w", NewConflictError("Already rated"))
	assert.Equal(t, KindConflict, AsAppError(wrapped).Kind)

	plain := AsAppError(errors.New("redis down"))
	assert.Equal(t, KindInternal, plain.Kind)
	assert.Equal(t, "Internal server error: redis down", plain.Error())
	assert.Equal(t, "Device not found", NewNotFoundError("Device").Error())
}
