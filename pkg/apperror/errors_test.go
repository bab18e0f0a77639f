package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetAppError_UnknownErrorIsHidden(t *testing.T) {
	cause := errors.New("pq: relation \"bills\" does not exist")

	appErr := GetAppError(cause)

	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
	assert.Equal(t, ReasonPersistence, appErr.Reason)
	assert.Equal(t, "Internal server error", appErr.Message)
	assert.ErrorIs(t, appErr, cause)
}

func TestGetAppError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("create bill: %w", NewNotFoundError("Feed"))

	appErr := GetAppError(wrapped)

	assert.Equal(t, http.StatusNotFound, appErr.Code)
	assert.Equal(t, "Feed not found", appErr.Message)
	assert.True(t, HasReason(wrapped, ReasonNotFound))
}

func TestDomainErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		code   int
		reason Reason
	}{
		{"insufficient stock", NewInsufficientStockError("Gold Feed", 3), http.StatusBadRequest, ReasonInsufficientStock},
		{"duplicate bill", NewDuplicateBillError("id", "BILL-000001"), http.StatusConflict, ReasonDuplicateBill},
		{"exceeds pending", NewAmountExceedsPendingError(12.5), http.StatusBadRequest, ReasonAmountExceedsPending},
		{"validation", NewFieldError("items", "required"), http.StatusUnprocessableEntity, ReasonValidation},
		{"persistence", NewPersistenceError("save bill", errors.New("boom")), http.StatusInternalServerError, ReasonPersistence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.reason, tt.err.Reason)
		})
	}
}

func TestInsufficientStockDetails(t *testing.T) {
	err := NewInsufficientStockError("Gold Feed", 3)

	assert.Equal(t, "Gold Feed", err.Details["feed_name"])
	assert.Equal(t, 3, err.Details["available"])
	assert.Contains(t, err.Message, "Available: 3")
}

func TestPersistenceErrorKeepsCauseOutOfMessage(t *testing.T) {
	err := NewPersistenceError("save bill", errors.New("disk full"))

	assert.Equal(t, "Failed to save bill", err.Message)
	assert.Contains(t, err.Error(), "disk full")
}
