package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/pos_inventory_app/internal/core/ports/services"
	"github.com/SscSPs/pos_inventory_app/internal/dto"
	"github.com/SscSPs/pos_inventory_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// productHandler handles HTTP requests related to the product catalog.
type productHandler struct {
	productService portssvc.ProductSvc
}

// RegisterProductRoutes registers the /products routes.
func RegisterProductRoutes(rg *gin.RouterGroup, productService portssvc.ProductSvc) {
	registerValidators()
	h := &productHandler{productService: productService}

	products := rg.Group("/products")
	{
		products.POST("", h.createProduct)
		products.GET("", h.listProducts)
	}
}

// createProduct godoc
// @Summary Create a product
// @Description Adds a product to the catalog. Names are stored lowercased with single spaces.
// @Tags products
// @Accept  json
// @Produce  json
// @Param   product body dto.CreateProductRequest true "Product details"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Product already exists"
// @Failure 500 {object} map[string]string "Failed to create product"
// @Security BearerAuth
// @Router /products [post]
func (h *productHandler) createProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateProduct", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), req, userID)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to create product")
		return
	}

	logger.Info("Product created", slog.String("product_id", product.ProductID))
	c.JSON(http.StatusCreated, dto.ToProductResponse(product))
}

// listProducts godoc
// @Summary List products
// @Tags products
// @Produce  json
// @Param   limit query int false "Limit number of results" default(100)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.ProductResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list products"
// @Security BearerAuth
// @Router /products [get]
func (h *productHandler) listProducts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListProductsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListProducts", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	products, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to list products")
		return
	}

	c.JSON(http.StatusOK, dto.ToListProductResponse(products))
}
