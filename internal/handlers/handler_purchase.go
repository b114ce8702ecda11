package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/pos_inventory_app/internal/core/ports/services"
	"github.com/SscSPs/pos_inventory_app/internal/dto"
	"github.com/SscSPs/pos_inventory_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type purchaseHandler struct {
	purchaseService portssvc.PurchaseSvc
}

// RegisterPurchaseRoutes registers the /purchases routes.
func RegisterPurchaseRoutes(rg *gin.RouterGroup, purchaseService portssvc.PurchaseSvc) {
	registerValidators()
	h := &purchaseHandler{purchaseService: purchaseService}

	rg.POST("/purchases", h.createPurchase)
}

// createPurchase godoc
// @Summary Post a purchase
// @Description Restocks products, updates their cost price and credits the supplier or cash account
// @Tags purchases
// @Accept  json
// @Produce  json
// @Param   purchase body dto.CreatePurchaseRequest true "Purchase details"
// @Success 201 {object} dto.PurchaseResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Supplier or product not found"
// @Failure 500 {object} map[string]string "Failed to record purchase"
// @Failure 503 {object} map[string]string "Retry later"
// @Security BearerAuth
// @Router /purchases [post]
func (h *purchaseHandler) createPurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePurchase", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	result, err := h.purchaseService.PostPurchase(c.Request.Context(), req, userID)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to record purchase")
		return
	}

	logger.Info("Purchase recorded",
		slog.String("supplier_account_id", result.SupplierAccount.AccountID),
		slog.String("total", result.TotalAmount.String()))
	c.JSON(http.StatusCreated, dto.ToPurchaseResponse(result))
}
