// Package respond turns errors coming out of the services into the JSON error
// body used by every endpoint
package respond

import (
	"comply/media-api/internal/errs"
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error aborts the request with the status code matching err
func Error(c *gin.Context, err error) {
	requestID := c.GetString("requestID")
	code, msg := Status(err)

	switch {
	case code >= http.StatusInternalServerError:
		zap.L().Error("Request failed", zap.Error(err), zap.String("requestID", requestID))
	case code == http.StatusRequestTimeout:
		zap.L().Warn("Request context done before handler finished", zap.Error(err), zap.String("requestID", requestID))
	}

	c.AbortWithStatusJSON(code, gin.H{
		"error":     msg,
		"requestID": requestID,
	})
}

// Status maps err to a status code and a message that is safe to show
func Status(err error) (int, string) {
	switch {
	case errors.Is(err, errs.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, errs.ErrInactiveAccount):
		return http.StatusUnauthorized, "User account is inactive"
	case errors.Is(err, errs.ErrDuplicateEmail):
		return http.StatusConflict, "This email is already registered. Please login or use a different email"
	case errors.Is(err, errs.ErrUnauthenticated):
		return http.StatusUnauthorized, "Authorization token invalid"
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden, "You don't have permission to do this"
	case errors.Is(err, errs.ErrValidationRejected):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, errs.ErrSizeExceeded):
		return http.StatusRequestEntityTooLarge, err.Error()
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound, "Resource not found"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout, "Request was cancelled or timed out"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
