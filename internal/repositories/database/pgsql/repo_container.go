package pgsql

import (
	portsrepo "github.com/SscSPs/pos_inventory_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every repository to the pool. Repositories used
// inside an atomic scope are rebuilt on the transaction by the TxManager.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:   newPgxLedgerAccountRepository(dbPool),
		EntryRepo:     newPgxLedgerEntryRepository(dbPool),
		ProductRepo:   newPgxProductRepository(dbPool),
		SaleRepo:      newPgxSaleRepository(dbPool),
		ReportingRepo: newReportingRepository(dbPool),
		TxManager:     newPgxTxManager(dbPool),
	}
}
