package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"gymhub/internal/domain"
	"gymhub/internal/service"
)

// abortWithError maps the domain error taxonomy to HTTP status codes.
// Discount rejections surface as 400: the code is caller input, not a
// resource being addressed.
func abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrPermissionDenied):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidState),
		errors.Is(err, domain.ErrIllegalTransition),
		errors.Is(err, domain.ErrInsufficientFunds),
		isDiscountRejection(err):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func isDiscountRejection(err error) bool {
	return errors.Is(err, service.ErrCodeNotFound) ||
		errors.Is(err, service.ErrCodeInactive) ||
		errors.Is(err, service.ErrCodeNotStarted) ||
		errors.Is(err, service.ErrCodeExpired) ||
		errors.Is(err, service.ErrCodeUsageLimit) ||
		errors.Is(err, service.ErrCodePerUserLimit)
}
