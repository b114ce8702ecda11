// Package memory is an in-process ledger store. It serves tests and STORE_DRIVER=memory.
//
// A single mutex serialises transactions. WithinTx snapshots the whole state before
// running the body and restores it if the body fails, so a failed posting leaves
// no partial writes behind.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/SscSPs/pos_inventory_app/internal/apperrors"
	"github.com/SscSPs/pos_inventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_inventory_app/internal/core/ports/repositories"
)

type state struct {
	accounts map[string]domain.LedgerAccount
	entries  []domain.LedgerEntry
	products map[string]domain.Product
	sales    map[string]domain.Sale
	seq      int64
}

func newState() *state {
	return &state{
		accounts: make(map[string]domain.LedgerAccount),
		products: make(map[string]domain.Product),
		sales:    make(map[string]domain.Sale),
	}
}

func (s *state) clone() *state {
	c := &state{
		accounts: make(map[string]domain.LedgerAccount, len(s.accounts)),
		entries:  make([]domain.LedgerEntry, len(s.entries)),
		products: make(map[string]domain.Product, len(s.products)),
		sales:    make(map[string]domain.Sale, len(s.sales)),
		seq:      s.seq,
	}
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	copy(c.entries, s.entries)
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.sales {
		c.sales[k] = copySale(v)
	}
	return c
}

func copySale(s domain.Sale) domain.Sale {
	items := make([]domain.SaleItem, len(s.Items))
	copy(items, s.Items)
	s.Items = items
	return s
}

// Store holds all ledger, inventory and sale data in memory.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{st: newState()}
}

// repo implements every repository port over the store. Inside a transaction
// the store lock is already held, so the view must not take it again.
type repo struct {
	store *Store
	inTx  bool
}

func (r *repo) read(fn func(st *state) error) error {
	if !r.inTx {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	return fn(r.store.st)
}

// write is read with a name that says what the caller intends.
func (r *repo) write(fn func(st *state) error) error {
	return r.read(fn)
}

// WithinTx runs fn with exclusive access to the store and rolls back on error.
func (s *Store) WithinTx(ctx context.Context, fn portsrepo.TxFunc) (err error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrTransient, ctxErr)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	defer func() {
		if p := recover(); p != nil {
			s.st = snapshot
			panic(p)
		}
		if err != nil {
			s.st = snapshot
		}
	}()

	view := &repo{store: s, inTx: true}
	err = fn(ctx, portsrepo.TxRepositories{
		Accounts: view,
		Entries:  view,
		Products: view,
		Sales:    view,
	})
	if err == nil {
		// A deadline that passed while the body ran aborts the commit, as it would in PostgreSQL.
		err = ctx.Err()
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		if !errors.Is(err, apperrors.ErrTransient) {
			err = fmt.Errorf("%w: %v", apperrors.ErrTransient, err)
		}
	}
	return err
}

// NewRepositoryProvider exposes the store through the repository ports.
func NewRepositoryProvider(s *Store) portsrepo.RepositoryProvider {
	view := &repo{store: s}
	return portsrepo.RepositoryProvider{
		AccountRepo:   view,
		EntryRepo:     view,
		ProductRepo:   view,
		SaleRepo:      view,
		ReportingRepo: view,
		TxManager:     s,
	}
}

var (
	_ portsrepo.LedgerAccountRepositoryFacade = (*repo)(nil)
	_ portsrepo.LedgerEntryRepositoryFacade   = (*repo)(nil)
	_ portsrepo.ProductRepositoryFacade       = (*repo)(nil)
	_ portsrepo.SaleRepositoryFacade          = (*repo)(nil)
	_ portsrepo.ReportingRepository           = (*repo)(nil)
	_ portsrepo.TransactionManager            = (*Store)(nil)
)
