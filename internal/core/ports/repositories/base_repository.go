package repositories

import (
	"context"
)

// TxRepositories are the repositories bound to one atomic scope.
// Every read and write made through them commits or rolls back together.
type TxRepositories struct {
	Accounts LedgerAccountRepositoryFacade
	Entries  LedgerEntryRepositoryFacade
	Products ProductRepositoryFacade
	Sales    SaleRepositoryFacade
}

// TxFunc is the body of an atomic scope.
type TxFunc func(ctx context.Context, repos TxRepositories) error

// TransactionManager defines methods for transaction management
type TransactionManager interface {
	// WithinTx runs fn in a single transaction. It commits when fn returns nil and
	// rolls back otherwise. Store aborts that are safe to retry are reported as
	// apperrors.ErrTransient.
	WithinTx(ctx context.Context, fn TxFunc) error
}
