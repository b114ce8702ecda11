package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/pos_inventory_app/internal/apperrors"
	"github.com/SscSPs/pos_inventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_inventory_app/internal/core/ports/repositories"
	"github.com/SscSPs/pos_inventory_app/internal/models"
	"github.com/SscSPs/pos_inventory_app/internal/utils/mapping"
	"github.com/SscSPs/pos_inventory_app/internal/utils/normalize"
	"github.com/jackc/pgx/v5"
)

const ledgerAccountColumns = `account_id, account_type, name, contact_name, contact_email, contact_phone, is_deleted,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxLedgerAccountRepository struct {
	db dbtx
}

// newPgxLedgerAccountRepository creates a new repository for ledger accounts.
func newPgxLedgerAccountRepository(db dbtx) *PgxLedgerAccountRepository {
	return &PgxLedgerAccountRepository{db: db}
}

var _ portsrepo.LedgerAccountRepositoryFacade = (*PgxLedgerAccountRepository)(nil)

func (r *PgxLedgerAccountRepository) findOne(ctx context.Context, query string, args ...any) (*domain.LedgerAccount, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.LedgerAccount])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, err
	}
	acc := mapping.ToDomainLedgerAccount(m)
	return &acc, nil
}

// FindAccountByID retrieves a live account by its ID.
func (r *PgxLedgerAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.LedgerAccount, error) {
	query := `SELECT ` + ledgerAccountColumns + ` FROM ledger_accounts WHERE account_id = $1 AND NOT is_deleted;`
	acc, err := r.findOne(ctx, query, accountID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find ledger account %s: %w", accountID, err)
	}
	return acc, err
}

// FindCashAccount retrieves the live cash account.
func (r *PgxLedgerAccountRepository) FindCashAccount(ctx context.Context) (*domain.LedgerAccount, error) {
	query := `SELECT ` + ledgerAccountColumns + ` FROM ledger_accounts WHERE account_type = 'CASH' AND NOT is_deleted;`
	acc, err := r.findOne(ctx, query)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find cash account: %w", err)
	}
	return acc, err
}

// FindAccountByName matches the trimmed name case-insensitively within a type.
func (r *PgxLedgerAccountRepository) FindAccountByName(ctx context.Context, accountType domain.AccountType, name string) (*domain.LedgerAccount, error) {
	query := `SELECT ` + ledgerAccountColumns + ` FROM ledger_accounts
		WHERE account_type = $1 AND lower(name) = $2 AND NOT is_deleted;`
	acc, err := r.findOne(ctx, query, string(accountType), normalize.AccountNameKey(name))
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find %s account %q: %w", accountType, name, err)
	}
	return acc, err
}

// ListAccountsByType lists live accounts of one type ordered by name.
func (r *PgxLedgerAccountRepository) ListAccountsByType(ctx context.Context, accountType domain.AccountType) ([]domain.LedgerAccount, error) {
	query := `SELECT ` + ledgerAccountColumns + ` FROM ledger_accounts
		WHERE account_type = $1 AND NOT is_deleted
		ORDER BY name ASC, account_id ASC;`
	rows, err := r.db.Query(ctx, query, string(accountType))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s accounts: %w", accountType, err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.LedgerAccount])
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s accounts: %w", accountType, err)
	}
	return mapping.ToDomainLedgerAccountSlice(ms), nil
}

// SaveAccount inserts a new account. A live account clashing with the unique
// indexes is reported as apperrors.ErrDuplicateAccount.
func (r *PgxLedgerAccountRepository) SaveAccount(ctx context.Context, account domain.LedgerAccount) error {
	m := mapping.ToModelLedgerAccount(account)
	query := `
		INSERT INTO ledger_accounts (` + ledgerAccountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.db.Exec(ctx, query,
		m.AccountID, m.AccountType, m.Name, m.ContactName, m.ContactEmail, m.ContactPhone, m.IsDeleted,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return fmt.Errorf("%w: %s %q", apperrors.ErrDuplicateAccount, m.AccountType, m.Name)
		}
		return fmt.Errorf("failed to save ledger account %s: %w", m.AccountID, err)
	}
	return nil
}

// SaveAccountIfAbsent inserts the account unless a live account already owns its
// unique slot, in which case nothing is written and false is returned.
func (r *PgxLedgerAccountRepository) SaveAccountIfAbsent(ctx context.Context, account domain.LedgerAccount) (bool, error) {
	m := mapping.ToModelLedgerAccount(account)
	query := `
		INSERT INTO ledger_accounts (` + ledgerAccountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT DO NOTHING;
	`
	tag, err := r.db.Exec(ctx, query,
		m.AccountID, m.AccountType, m.Name, m.ContactName, m.ContactEmail, m.ContactPhone, m.IsDeleted,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return false, fmt.Errorf("failed to save ledger account %s: %w", m.AccountID, err)
	}
	return tag.RowsAffected() == 1, nil
}

// SoftDeleteAccount marks a live account deleted. Its entries are kept.
func (r *PgxLedgerAccountRepository) SoftDeleteAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE ledger_accounts
		SET is_deleted = TRUE, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1 AND NOT is_deleted;
	`
	tag, err := r.db.Exec(ctx, query, accountID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to delete ledger account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAccountNotFound
	}
	return nil
}
