package dto

import (
	"time"

	"github.com/SscSPs/pos_inventory_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SaleItemRequest is one requested sale line.
type SaleItemRequest struct {
	ProductID string `json:"productID" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required,gt=0"`
}

// CreateSaleRequest defines the data needed to post a sale.
// For CREDIT sales either CustomerAccountID or CustomerName must identify the customer.
type CreateSaleRequest struct {
	PaymentType       domain.PaymentType `json:"paymentType" binding:"required,oneof=CASH CARD CREDIT"`
	Items             []SaleItemRequest  `json:"items" binding:"required,min=1,dive"`
	CustomerName      string             `json:"customerName"`
	CustomerEmail     string             `json:"customerEmail" binding:"omitempty,email"`
	CustomerPhone     string             `json:"customerPhone"`
	CustomerAccountID string             `json:"customerAccountID"`
}

// ListSalesParams defines the parameters for listing sales
type ListSalesParams struct {
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken string `form:"nextToken"`
}

// SaleItemResponse defines the data returned for a sale line.
type SaleItemResponse struct {
	SaleItemID  string          `json:"saleItemID"`
	ProductID   string          `json:"productID"`
	ProductName string          `json:"productName"`
	Quantity    int64           `json:"quantity"`
	PriceAtSale decimal.Decimal `json:"priceAtSale"`
}

// SaleResponse defines the data returned for a sale.
type SaleResponse struct {
	SaleID            string             `json:"saleID"`
	UserID            string             `json:"userID"`
	PaymentType       domain.PaymentType `json:"paymentType"`
	TotalAmount       decimal.Decimal    `json:"totalAmount"`
	CustomerName      string             `json:"customerName,omitempty"`
	CustomerEmail     string             `json:"customerEmail,omitempty"`
	CustomerPhone     string             `json:"customerPhone,omitempty"`
	CustomerAccountID string             `json:"customerAccountID,omitempty"`
	Items             []SaleItemResponse `json:"items"`
	CreatedAt         time.Time          `json:"createdAt"`
}

// ListSalesResponse defines the paginated sale list.
type ListSalesResponse struct {
	Sales     []SaleResponse `json:"sales"`
	NextToken *string        `json:"nextToken,omitempty"`
}

// ToSaleResponse converts a domain.Sale to SaleResponse DTO
func ToSaleResponse(s *domain.Sale) SaleResponse {
	items := make([]SaleItemResponse, len(s.Items))
	for i, it := range s.Items {
		items[i] = SaleItemResponse{
			SaleItemID:  it.SaleItemID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			PriceAtSale: it.PriceAtSale,
		}
	}
	return SaleResponse{
		SaleID:            s.SaleID,
		UserID:            s.UserID,
		PaymentType:       s.PaymentType,
		TotalAmount:       s.TotalAmount,
		CustomerName:      s.CustomerName,
		CustomerEmail:     s.CustomerEmail,
		CustomerPhone:     s.CustomerPhone,
		CustomerAccountID: s.CustomerAccountID,
		Items:             items,
		CreatedAt:         s.CreatedAt,
	}
}

// ToListSalesResponse converts a page of sales to its response DTO.
func ToListSalesResponse(sales []domain.Sale, nextToken *string) ListSalesResponse {
	res := ListSalesResponse{Sales: make([]SaleResponse, len(sales)), NextToken: nextToken}
	for i := range sales {
		res.Sales[i] = ToSaleResponse(&sales[i])
	}
	return res
}
