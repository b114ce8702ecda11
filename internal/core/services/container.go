package services

import (
	portsrepo "github.com/SscSPs/pos_inventory_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_inventory_app/internal/core/ports/services"
)

// NewContainer creates a new service container with properly initialized dependencies.
// The options apply to every service, so all of them share one clock and one
// transaction deadline.
func NewContainer(repos portsrepo.RepositoryProvider, options ...ServiceOption) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Ledger:    NewLedgerService(repos, options...),
		Sale:      NewSaleService(repos, options...),
		Purchase:  NewPurchaseService(repos, options...),
		Product:   NewProductService(repos, options...),
		Reporting: NewReportingService(repos.ReportingRepo, options...),
	}
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.LedgerSvcFacade  = (*ledgerService)(nil)
	_ portssvc.SaleSvcFacade    = (*saleService)(nil)
	_ portssvc.PurchaseSvc      = (*purchaseService)(nil)
	_ portssvc.ProductSvc       = (*productService)(nil)
	_ portssvc.ReportingService = (*reportingService)(nil)
)
