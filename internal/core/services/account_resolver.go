package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/pos_inventory_app/internal/apperrors"
	"github.com/SscSPs/pos_inventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_inventory_app/internal/core/ports/repositories"
	"github.com/SscSPs/pos_inventory_app/internal/utils/normalize"
	"github.com/google/uuid"
)

// accountResolver finds or creates the accounts a posting needs. It always works
// against the repositories of the caller's atomic scope.
type accountResolver struct {
	now func() time.Time
}

// getOrCreateCash returns the live cash account, creating it on first use.
// Concurrent first uses are settled by the store's uniqueness rule: the loser's
// insert is ignored and it reads the winner's row.
func (r accountResolver) getOrCreateCash(ctx context.Context, accounts portsrepo.LedgerAccountRepositoryFacade) (*domain.LedgerAccount, error) {
	cash, err := accounts.FindCashAccount(ctx)
	if err == nil {
		return cash, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("finding cash account: %w", err)
	}

	candidate := domain.LedgerAccount{
		AccountID:   uuid.NewString(),
		Type:        domain.AccountTypeCash,
		Name:        domain.CashAccountName,
		AuditFields: domain.NewAuditFields("", r.now()),
	}
	if _, err := accounts.SaveAccountIfAbsent(ctx, candidate); err != nil {
		return nil, fmt.Errorf("creating cash account: %w", err)
	}
	cash, err = accounts.FindCashAccount(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading cash account after create: %w", err)
	}
	return cash, nil
}

// resolveParty fetches a live account and requires it to be of expectedType.
func (r accountResolver) resolveParty(ctx context.Context, accounts portsrepo.LedgerAccountReader, accountID string, expectedType domain.AccountType) (*domain.LedgerAccount, error) {
	if accountID == "" {
		return nil, fmt.Errorf("%w: %s account id is required", apperrors.ErrValidation, expectedType)
	}
	acc, err := accounts.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s account %s", apperrors.ErrAccountNotFound, expectedType, accountID)
		}
		return nil, fmt.Errorf("finding account %s: %w", accountID, err)
	}
	if acc.Type != expectedType {
		return nil, fmt.Errorf("%w: %s account %s", apperrors.ErrAccountNotFound, expectedType, accountID)
	}
	return acc, nil
}

// findOrCreateCustomer returns the customer named name, creating it with the given contacts if absent.
func (r accountResolver) findOrCreateCustomer(ctx context.Context, accounts portsrepo.LedgerAccountRepositoryFacade, name, email, phone, userID string) (*domain.LedgerAccount, error) {
	name = normalize.AccountName(name)
	if name == "" {
		return nil, fmt.Errorf("%w: customer name is required", apperrors.ErrValidation)
	}

	acc, err := accounts.FindAccountByName(ctx, domain.AccountTypeCustomer, name)
	if err == nil {
		return acc, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("finding customer %q: %w", name, err)
	}

	candidate := domain.LedgerAccount{
		AccountID:    uuid.NewString(),
		Type:         domain.AccountTypeCustomer,
		Name:         name,
		ContactName:  name,
		ContactEmail: email,
		ContactPhone: phone,
		AuditFields:  domain.NewAuditFields(userID, r.now()),
	}
	if _, err := accounts.SaveAccountIfAbsent(ctx, candidate); err != nil {
		return nil, fmt.Errorf("creating customer %q: %w", name, err)
	}
	acc, err = accounts.FindAccountByName(ctx, domain.AccountTypeCustomer, name)
	if err != nil {
		return nil, fmt.Errorf("reading customer %q after create: %w", name, err)
	}
	return acc, nil
}

// resolveSaleCustomer picks the account a credit sale is charged to: an explicit id wins,
// then a customer name. Having neither is a validation error.
func (r accountResolver) resolveSaleCustomer(ctx context.Context, accounts portsrepo.LedgerAccountRepositoryFacade, accountID, name, email, phone, userID string) (*domain.LedgerAccount, error) {
	if accountID != "" {
		return r.resolveParty(ctx, accounts, accountID, domain.AccountTypeCustomer)
	}
	if normalize.AccountName(name) != "" {
		return r.findOrCreateCustomer(ctx, accounts, name, email, phone, userID)
	}
	return nil, fmt.Errorf("%w: Customer account is required for credit sales", apperrors.ErrValidation)
}
