package domain

import "github.com/shopspring/decimal"

// Product is an inventory item. StockQuantity never goes below zero.
type Product struct {
	ProductID     string          `json:"productID"`
	Name          string          `json:"name"` // normalised: lowercase, single spaces
	Price         decimal.Decimal `json:"price"`
	CostPrice     decimal.Decimal `json:"costPrice"`
	StockQuantity int64           `json:"stockQuantity"`
	Unit          string          `json:"unit,omitempty"`
	Barcode       string          `json:"barcode,omitempty"`
	CategoryID    string          `json:"categoryID,omitempty"`
	IsDeleted     bool            `json:"-"`
	AuditFields
}
