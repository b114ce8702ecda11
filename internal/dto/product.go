package dto

import (
	"github.com/SscSPs/pos_inventory_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateProductRequest defines the data needed to add a product to the catalog.
type CreateProductRequest struct {
	Name          string          `json:"name" binding:"required"`
	Price         decimal.Decimal `json:"price" binding:"dgte0,dscale2"`
	CostPrice     decimal.Decimal `json:"costPrice" binding:"dgte0,dscale2"`
	StockQuantity int64           `json:"stockQuantity" binding:"gte=0"`
	Unit          string          `json:"unit"`
	Barcode       string          `json:"barcode"`
	CategoryID    string          `json:"categoryID"`
}

// ListProductsParams defines the parameters for listing products
type ListProductsParams struct {
	Limit  int `form:"limit" binding:"omitempty,min=1,max=500"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}

// ProductResponse defines the data returned for a product.
type ProductResponse struct {
	ProductID     string          `json:"productID"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	CostPrice     decimal.Decimal `json:"costPrice"`
	StockQuantity int64           `json:"stockQuantity"`
	Unit          string          `json:"unit,omitempty"`
	Barcode       string          `json:"barcode,omitempty"`
	CategoryID    string          `json:"categoryID,omitempty"`
}

// ToProductResponse converts a domain.Product to ProductResponse DTO
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID:     p.ProductID,
		Name:          p.Name,
		Price:         p.Price,
		CostPrice:     p.CostPrice,
		StockQuantity: p.StockQuantity,
		Unit:          p.Unit,
		Barcode:       p.Barcode,
		CategoryID:    p.CategoryID,
	}
}

// ToListProductResponse converts a slice of domain.Product to response DTOs.
func ToListProductResponse(products []domain.Product) []ProductResponse {
	res := make([]ProductResponse, len(products))
	for i := range products {
		res[i] = ToProductResponse(&products[i])
	}
	return res
}
