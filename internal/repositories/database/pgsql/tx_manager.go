package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/pos_inventory_app/internal/apperrors"
	portsrepo "github.com/SscSPs/pos_inventory_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxTxManager runs atomic scopes as PostgreSQL transactions.
type PgxTxManager struct {
	BaseRepository
}

func newPgxTxManager(pool *pgxpool.Pool) *PgxTxManager {
	return &PgxTxManager{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionManager = (*PgxTxManager)(nil)

// WithinTx begins a transaction, hands fn repositories bound to it and commits
// when fn succeeds. Any error or panic rolls the transaction back.
func (m *PgxTxManager) WithinTx(ctx context.Context, fn portsrepo.TxFunc) (err error) {
	tx, err := m.Begin(ctx)
	if err != nil {
		return classifyTxError(err)
	}
	// Rollback must still reach the server after the caller's deadline passed.
	cleanupCtx := context.WithoutCancel(ctx)
	defer func() {
		if p := recover(); p != nil {
			_ = m.Rollback(cleanupCtx, tx)
			panic(p)
		}
	}()

	if err = fn(ctx, portsrepo.TxRepositories{
		Accounts: newPgxLedgerAccountRepository(tx),
		Entries:  newPgxLedgerEntryRepository(tx),
		Products: newPgxProductRepository(tx),
		Sales:    newPgxSaleRepository(tx),
	}); err != nil {
		if rbErr := m.Rollback(cleanupCtx, tx); rbErr != nil {
			err = errors.Join(err, rbErr)
		}
		return classifyTxError(err)
	}

	if err = m.Commit(ctx, tx); err != nil {
		_ = m.Rollback(cleanupCtx, tx)
		return classifyTxError(err)
	}
	return nil
}

// classifyTxError marks aborts that are safe to retry as apperrors.ErrTransient.
func classifyTxError(err error) error {
	if err == nil || errors.Is(err, apperrors.ErrTransient) {
		return err
	}
	switch pgErrorCode(err) {
	case pgSerializationFailure, pgDeadlockDetected:
		return fmt.Errorf("%w: %v", apperrors.ErrTransient, err)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", apperrors.ErrTransient, err)
	}
	return err
}
