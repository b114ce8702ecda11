package mapping

import (
	"github.com/SscSPs/pos_inventory_app/internal/core/domain"
	"github.com/SscSPs/pos_inventory_app/internal/models"
)

// ToModelProduct converts a domain Product to a model Product
func ToModelProduct(d domain.Product) models.Product {
	return models.Product{
		ProductID:     d.ProductID,
		Name:          d.Name,
		Price:         d.Price,
		CostPrice:     d.CostPrice,
		StockQuantity: d.StockQuantity,
		Unit:          nullString(d.Unit),
		Barcode:       nullString(d.Barcode),
		CategoryID:    nullString(d.CategoryID),
		IsDeleted:     d.IsDeleted,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProduct converts a model Product to a domain Product
func ToDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ProductID:     m.ProductID,
		Name:          m.Name,
		Price:         m.Price,
		CostPrice:     m.CostPrice,
		StockQuantity: m.StockQuantity,
		Unit:          m.Unit.String,
		Barcode:       m.Barcode.String,
		CategoryID:    m.CategoryID.String,
		IsDeleted:     m.IsDeleted,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelSale converts a domain Sale to a model Sale and its items
func ToModelSale(d domain.Sale) (models.Sale, []models.SaleItem) {
	items := make([]models.SaleItem, len(d.Items))
	for i, it := range d.Items {
		items[i] = models.SaleItem{
			SaleItemID:  it.SaleItemID,
			SaleID:      d.SaleID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			PriceAtSale: it.PriceAtSale,
			IsDeleted:   it.IsDeleted,
		}
	}
	return models.Sale{
		SaleID:            d.SaleID,
		UserID:            d.UserID,
		PaymentType:       string(d.PaymentType),
		TotalAmount:       d.TotalAmount,
		CustomerName:      nullString(d.CustomerName),
		CustomerEmail:     nullString(d.CustomerEmail),
		CustomerPhone:     nullString(d.CustomerPhone),
		CustomerAccountID: nullString(d.CustomerAccountID),
		IsDeleted:         d.IsDeleted,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}, items
}

// ToDomainSale converts a model Sale and its items to a domain Sale
func ToDomainSale(m models.Sale, items []models.SaleItem) domain.Sale {
	ds := make([]domain.SaleItem, len(items))
	for i, it := range items {
		ds[i] = domain.SaleItem{
			SaleItemID:  it.SaleItemID,
			SaleID:      it.SaleID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			PriceAtSale: it.PriceAtSale,
			IsDeleted:   it.IsDeleted,
		}
	}
	return domain.Sale{
		SaleID:            m.SaleID,
		UserID:            m.UserID,
		PaymentType:       domain.PaymentType(m.PaymentType),
		TotalAmount:       m.TotalAmount,
		CustomerName:      m.CustomerName.String,
		CustomerEmail:     m.CustomerEmail.String,
		CustomerPhone:     m.CustomerPhone.String,
		CustomerAccountID: m.CustomerAccountID.String,
		IsDeleted:         m.IsDeleted,
		Items:             ds,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}
