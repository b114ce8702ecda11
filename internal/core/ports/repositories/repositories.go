package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	AccountRepo   LedgerAccountRepositoryFacade
	EntryRepo     LedgerEntryRepositoryFacade
	ProductRepo   ProductRepositoryFacade
	SaleRepo      SaleRepositoryFacade
	ReportingRepo ReportingRepository
	TxManager     TransactionManager
}
