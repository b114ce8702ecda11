package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/pos_inventory_app/internal/core/ports/services"
	"github.com/SscSPs/pos_inventory_app/internal/dto"
	"github.com/SscSPs/pos_inventory_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// saleHandler handles HTTP requests related to sales.
type saleHandler struct {
	saleService portssvc.SaleSvcFacade
}

func newSaleHandler(ss portssvc.SaleSvcFacade) *saleHandler {
	return &saleHandler{saleService: ss}
}

// RegisterSaleRoutes registers the /sales routes.
func RegisterSaleRoutes(rg *gin.RouterGroup, saleService portssvc.SaleSvcFacade) {
	registerValidators()
	h := newSaleHandler(saleService)

	sales := rg.Group("/sales")
	{
		sales.POST("", h.createSale)
		sales.GET("", h.listSales)
		sales.GET("/:saleID", h.getSale)
		sales.DELETE("/:saleID", h.deleteSale)
	}
}

// createSale godoc
// @Summary Post a sale
// @Description Reserves stock, records the sale and posts its ledger entry in one atomic step
// @Tags sales
// @Accept  json
// @Produce  json
// @Param   sale body dto.CreateSaleRequest true "Sale details"
// @Success 201 {object} dto.SaleResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Product or customer not found"
// @Failure 409 {object} map[string]string "Insufficient stock or stock update conflict"
// @Failure 500 {object} map[string]string "Failed to create sale"
// @Failure 503 {object} map[string]string "Retry later"
// @Security BearerAuth
// @Router /sales [post]
func (h *saleHandler) createSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateSale", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger.Info("Received request to create sale", slog.String("payment_type", string(req.PaymentType)), slog.Int("items", len(req.Items)))

	sale, err := h.saleService.PostSale(c.Request.Context(), req, userID)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to create sale")
		return
	}

	logger.Info("Sale created successfully", slog.String("sale_id", sale.SaleID), slog.String("total", sale.TotalAmount.String()))
	c.JSON(http.StatusCreated, dto.ToSaleResponse(sale))
}

// listSales godoc
// @Summary List sales
// @Description Lists live sales newest first using token-based pagination
// @Tags sales
// @Produce  json
// @Param   limit query int false "Number of sales to return" default(100)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListSalesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list sales"
// @Security BearerAuth
// @Router /sales [get]
func (h *saleHandler) listSales(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListSalesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListSales", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	sales, nextToken, err := h.saleService.ListSales(c.Request.Context(), params)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to list sales")
		return
	}

	c.JSON(http.StatusOK, dto.ToListSalesResponse(sales, nextToken))
}

// getSale godoc
// @Summary Get a sale by ID
// @Tags sales
// @Produce  json
// @Param   saleID path string true "Sale ID"
// @Success 200 {object} dto.SaleResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Sale not found"
// @Failure 500 {object} map[string]string "Failed to retrieve sale"
// @Security BearerAuth
// @Router /sales/{saleID} [get]
func (h *saleHandler) getSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	sale, err := h.saleService.GetSale(c.Request.Context(), c.Param("saleID"))
	if err != nil {
		handleServiceError(c, logger, err, "Failed to retrieve sale")
		return
	}

	c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}

// deleteSale godoc
// @Summary Delete a sale
// @Description Soft deletes the sale and its items. Stock and ledger entries are not reversed.
// @Tags sales
// @Param   saleID path string true "Sale ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Sale not found"
// @Failure 500 {object} map[string]string "Failed to delete sale"
// @Security BearerAuth
// @Router /sales/{saleID} [delete]
func (h *saleHandler) deleteSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	saleID := c.Param("saleID")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.saleService.DeleteSale(c.Request.Context(), saleID, userID); err != nil {
		handleServiceError(c, logger, err, "Failed to delete sale")
		return
	}

	logger.Info("Sale deleted", slog.String("sale_id", saleID))
	c.Status(http.StatusNoContent)
}
