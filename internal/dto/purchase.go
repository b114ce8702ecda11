package dto

import (
	"github.com/SscSPs/pos_inventory_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PurchaseItemRequest is one restocked line. CostPrice falls back to the product's current cost.
type PurchaseItemRequest struct {
	ProductID string           `json:"productID" binding:"required"`
	Quantity  int64            `json:"quantity" binding:"required,gt=0"`
	CostPrice *decimal.Decimal `json:"costPrice" binding:"omitempty,dgte0,dscale2"`
}

// CreatePurchaseRequest defines the data needed to post a purchase from a supplier.
type CreatePurchaseRequest struct {
	SupplierAccountID string                `json:"supplierAccountID" binding:"required"`
	PaymentType       domain.PaymentType    `json:"paymentType" binding:"required,oneof=CASH CREDIT"`
	Items             []PurchaseItemRequest `json:"items" binding:"required,min=1,dive"`
	Description       string                `json:"description"`
}

// PurchaseResponse is returned after a purchase is posted.
type PurchaseResponse struct {
	TotalAmount     decimal.Decimal       `json:"totalAmount"`
	SupplierAccount LedgerAccountResponse `json:"supplierAccount"`
}

// ToPurchaseResponse converts a domain.PurchaseResult to PurchaseResponse DTO.
func ToPurchaseResponse(p *domain.PurchaseResult) PurchaseResponse {
	return PurchaseResponse{
		TotalAmount:     p.TotalAmount,
		SupplierAccount: ToLedgerAccountResponse(&p.SupplierAccount),
	}
}
