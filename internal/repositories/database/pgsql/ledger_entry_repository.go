package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/pos_inventory_app/internal/apperrors"
	"github.com/SscSPs/pos_inventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_inventory_app/internal/core/ports/repositories"
	"github.com/SscSPs/pos_inventory_app/internal/models"
	"github.com/SscSPs/pos_inventory_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const ledgerEntryColumns = `entry_id, account_id, entry_date, description, debit, credit, ref_type, ref_id, seq,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxLedgerEntryRepository struct {
	db dbtx
}

// newPgxLedgerEntryRepository creates a new repository for ledger entries.
func newPgxLedgerEntryRepository(db dbtx) *PgxLedgerEntryRepository {
	return &PgxLedgerEntryRepository{db: db}
}

var _ portsrepo.LedgerEntryRepositoryFacade = (*PgxLedgerEntryRepository)(nil)

func collectEntries(rows pgx.Rows) ([]domain.LedgerEntry, error) {
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.LedgerEntry])
	if err != nil {
		return nil, err
	}
	entries := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		entries[i] = mapping.ToDomainLedgerEntry(m)
	}
	return entries, nil
}

// ListEntriesByAccount lists an account's entries in posting order inside an
// optional inclusive date window.
func (r *PgxLedgerEntryRepository) ListEntriesByAccount(ctx context.Context, accountID string, from, to *time.Time) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerEntryColumns + `
		FROM ledger_entries
		WHERE account_id = $1
			AND ($2::timestamptz IS NULL OR entry_date >= $2)
			AND ($3::timestamptz IS NULL OR entry_date <= $3)
		ORDER BY entry_date ASC, seq ASC;
	`
	rows, err := r.db.Query(ctx, query, accountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries for account %s: %w", accountID, err)
	}
	entries, err := collectEntries(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan entries for account %s: %w", accountID, err)
	}
	return entries, nil
}

// ListEntriesByAccountIDs returns each account's entries in posting order.
func (r *PgxLedgerEntryRepository) ListEntriesByAccountIDs(ctx context.Context, accountIDs []string) (map[string][]domain.LedgerEntry, error) {
	result := make(map[string][]domain.LedgerEntry, len(accountIDs))
	if len(accountIDs) == 0 {
		return result, nil
	}
	query := `
		SELECT ` + ledgerEntryColumns + `
		FROM ledger_entries
		WHERE account_id = ANY($1)
		ORDER BY account_id, entry_date ASC, seq ASC;
	`
	rows, err := r.db.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries by account IDs: %w", err)
	}
	entries, err := collectEntries(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan entries by account IDs: %w", err)
	}
	for _, e := range entries {
		result[e.AccountID] = append(result[e.AccountID], e)
	}
	return result, nil
}

// SaveEntries appends entries in one batch. Entries against unknown accounts or
// with negative amounts are rejected by the schema.
func (r *PgxLedgerEntryRepository) SaveEntries(ctx context.Context, entries []domain.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}
	query := `
		INSERT INTO ledger_entries (entry_id, account_id, entry_date, description, debit, credit, ref_type, ref_id,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	batch := &pgx.Batch{}
	for _, e := range entries {
		m := mapping.ToModelLedgerEntry(e)
		batch.Queue(query,
			m.EntryID, m.AccountID, m.EntryDate, m.Description, m.Debit, m.Credit, m.RefType, m.RefID,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
	}

	br := r.db.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		switch pgErrorCode(err) {
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: entry references an unknown account", apperrors.ErrAccountNotFound)
		case pgCheckViolation:
			return fmt.Errorf("%w: entry amounts must be non-negative", apperrors.ErrValidation)
		case pgNumericOutOfRange:
			return fmt.Errorf("%w: entry amount is out of range", apperrors.ErrValidation)
		}
		return fmt.Errorf("failed to save %d ledger entries: %w", len(entries), err)
	}
	return nil
}
