package domain

import (
	"github.com/shopspring/decimal"
)

// PaymentType is how a sale or purchase was settled.
type PaymentType string

const (
	PaymentTypeCash   PaymentType = "CASH"
	PaymentTypeCard   PaymentType = "CARD"
	PaymentTypeCredit PaymentType = "CREDIT"
)

// IsValidForSale reports whether p may be used on a sale.
func (p PaymentType) IsValidForSale() bool {
	switch p {
	case PaymentTypeCash, PaymentTypeCard, PaymentTypeCredit:
		return true
	}
	return false
}

// IsValidForPurchase reports whether p may be used on a purchase. Card purchases are not supported.
func (p PaymentType) IsValidForPurchase() bool {
	return p == PaymentTypeCash || p == PaymentTypeCredit
}

// Sale is a completed point-of-sale transaction.
type Sale struct {
	SaleID            string          `json:"saleID"`
	UserID            string          `json:"userID"` // cashier
	PaymentType       PaymentType     `json:"paymentType"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	CustomerName      string          `json:"customerName,omitempty"`
	CustomerEmail     string          `json:"customerEmail,omitempty"`
	CustomerPhone     string          `json:"customerPhone,omitempty"`
	CustomerAccountID string          `json:"customerAccountID,omitempty"`
	IsDeleted         bool            `json:"-"`
	Items             []SaleItem      `json:"items"`
	AuditFields
}

// SaleItem is one line of a sale. PriceAtSale is the product price snapshotted when the sale was posted.
type SaleItem struct {
	SaleItemID  string          `json:"saleItemID"`
	SaleID      string          `json:"saleID"`
	ProductID   string          `json:"productID"`
	ProductName string          `json:"productName"`
	Quantity    int64           `json:"quantity"`
	PriceAtSale decimal.Decimal `json:"priceAtSale"`
	IsDeleted   bool            `json:"-"`
}

// LineTotal returns quantity times price at sale.
func (i SaleItem) LineTotal() decimal.Decimal {
	return i.PriceAtSale.Mul(decimal.NewFromInt(i.Quantity))
}

// PurchaseResult is returned after a purchase has been posted.
type PurchaseResult struct {
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	SupplierAccount LedgerAccount   `json:"supplierAccount"`
}
