package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/pos_inventory_app/internal/apperrors"
	"github.com/SscSPs/pos_inventory_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// handleServiceError maps a service error onto an HTTP status and writes the JSON body.
// Internal failures are logged and answered with fallbackMsg only.
func handleServiceError(c *gin.Context, logger *slog.Logger, err error, fallbackMsg string) {
	var stockErr *apperrors.StockError
	switch {
	case errors.As(err, &stockErr):
		logger.Warn("Stock check failed", slog.String("product_id", stockErr.ProductID), slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{
			"error":     stockErr.Error(),
			"productID": stockErr.ProductID,
			"requested": stockErr.Requested,
			"available": stockErr.Available,
		})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Conflicting request", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrTransient):
		logger.Warn("Transient store failure", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service temporarily unavailable, please retry"})
	default:
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMsg})
	}
}

// requireUserID reads the authenticated user id or answers 401.
func requireUserID(c *gin.Context, logger *slog.Logger) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}
