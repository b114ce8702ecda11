package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/pos_inventory_app/internal/apperrors"
	"github.com/SscSPs/pos_inventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_inventory_app/internal/core/ports/repositories"
	"github.com/SscSPs/pos_inventory_app/internal/dto"
	"github.com/SscSPs/pos_inventory_app/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// postingEngine turns business events into ledger entries. Every method writes
// through the repositories of the caller's atomic scope and never commits.
//
// Sales and purchases post a single entry on one account. Payments are the only
// events that post a matched pair.
type postingEngine struct {
	resolver accountResolver
	now      func() time.Time
}

func (p postingEngine) newEntry(accountID string, date time.Time, description string, debit, credit decimal.Decimal, refType domain.RefType, refID, userID string) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:     uuid.NewString(),
		AccountID:   accountID,
		Date:        date,
		Description: description,
		Debit:       debit,
		Credit:      credit,
		RefType:     refType,
		RefID:       refID,
		AuditFields: domain.NewAuditFields(userID, p.now()),
	}
}

func (p postingEngine) dateOrNow(date *time.Time) time.Time {
	if date == nil || date.IsZero() {
		return p.now()
	}
	return date.UTC()
}

func orDefault(description, fallback string) string {
	if d := strings.TrimSpace(description); d != "" {
		return d
	}
	return fallback
}

// validateManualEntry enforces the single-sided rule and returns the two amounts.
func validateManualEntry(req dto.CreateLedgerEntryRequest) (decimal.Decimal, decimal.Decimal, error) {
	if req.AccountID == "" {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: accountID is required", apperrors.ErrValidation)
	}
	if strings.TrimSpace(req.Description) == "" {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: description is required", apperrors.ErrValidation)
	}
	if !req.RefType.IsValid() {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: unknown refType %q", apperrors.ErrValidation, req.RefType)
	}

	debit, credit := decimal.Zero, decimal.Zero
	if req.Debit != nil {
		debit = *req.Debit
	}
	if req.Credit != nil {
		credit = *req.Credit
	}
	if debit.IsNegative() || credit.IsNegative() {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: amounts cannot be negative", apperrors.ErrValidation)
	}
	if !accounting.HasMoneyScale(debit) || !accounting.HasMoneyScale(credit) {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: amounts cannot have more than %d decimal places", apperrors.ErrValidation, accounting.MoneyScale)
	}
	if debit.IsPositive() == credit.IsPositive() {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: Either debit or credit must be provided (not both)", apperrors.ErrValidation)
	}
	return debit, credit, nil
}

// postManual appends one user-supplied entry to a live account.
func (p postingEngine) postManual(ctx context.Context, tx portsrepo.TxRepositories, req dto.CreateLedgerEntryRequest, userID string) (*domain.LedgerEntry, error) {
	debit, credit, err := validateManualEntry(req)
	if err != nil {
		return nil, err
	}
	acc, err := tx.Accounts.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		return nil, fmt.Errorf("ledger account %s: %w", req.AccountID, err)
	}

	entry := p.newEntry(acc.AccountID, p.dateOrNow(req.Date), strings.TrimSpace(req.Description), debit, credit, req.RefType, req.RefID, userID)
	if err := tx.Entries.SaveEntries(ctx, []domain.LedgerEntry{entry}); err != nil {
		return nil, fmt.Errorf("saving manual entry: %w", err)
	}
	return &entry, nil
}

// postSale debits the customer for a credit sale, or cash for any other payment type.
func (p postingEngine) postSale(ctx context.Context, tx portsrepo.TxRepositories, sale domain.Sale) error {
	var entry domain.LedgerEntry
	if sale.PaymentType == domain.PaymentTypeCredit {
		if sale.CustomerAccountID == "" {
			return fmt.Errorf("%w: Customer account is required for credit sales", apperrors.ErrValidation)
		}
		entry = p.newEntry(sale.CustomerAccountID, sale.CreatedAt,
			fmt.Sprintf("Credit Sale #%s", sale.SaleID),
			sale.TotalAmount, decimal.Zero, domain.RefTypeSale, sale.SaleID, sale.UserID)
	} else {
		cash, err := p.resolver.getOrCreateCash(ctx, tx.Accounts)
		if err != nil {
			return err
		}
		entry = p.newEntry(cash.AccountID, sale.CreatedAt,
			fmt.Sprintf("Sale #%s (%s)", sale.SaleID, sale.PaymentType),
			sale.TotalAmount, decimal.Zero, domain.RefTypeSale, sale.SaleID, sale.UserID)
	}
	if err := tx.Entries.SaveEntries(ctx, []domain.LedgerEntry{entry}); err != nil {
		return fmt.Errorf("posting sale %s: %w", sale.SaleID, err)
	}
	return nil
}

// postPurchase credits the supplier for a credit purchase, or cash for a cash purchase.
func (p postingEngine) postPurchase(ctx context.Context, tx portsrepo.TxRepositories, supplier domain.LedgerAccount, paymentType domain.PaymentType, total decimal.Decimal, description, userID string) error {
	accountID := supplier.AccountID
	if paymentType == domain.PaymentTypeCash {
		cash, err := p.resolver.getOrCreateCash(ctx, tx.Accounts)
		if err != nil {
			return err
		}
		accountID = cash.AccountID
	}
	entry := p.newEntry(accountID, p.now(),
		orDefault(description, fmt.Sprintf("Purchase from %s", supplier.Name)),
		decimal.Zero, total, domain.RefTypePurchase, "", userID)
	if err := tx.Entries.SaveEntries(ctx, []domain.LedgerEntry{entry}); err != nil {
		return fmt.Errorf("posting purchase from %s: %w", supplier.AccountID, err)
	}
	return nil
}

// postCustomerPayment credits the customer and debits cash by the same amount.
func (p postingEngine) postCustomerPayment(ctx context.Context, tx portsrepo.TxRepositories, customer domain.LedgerAccount, amount decimal.Decimal, description string, date *time.Time, userID string) error {
	cash, err := p.resolver.getOrCreateCash(ctx, tx.Accounts)
	if err != nil {
		return err
	}
	when := p.dateOrNow(date)
	entries := []domain.LedgerEntry{
		p.newEntry(customer.AccountID, when,
			orDefault(description, fmt.Sprintf("Payment received from %s", customer.Name)),
			decimal.Zero, amount, domain.RefTypePayment, "", userID),
		p.newEntry(cash.AccountID, when,
			orDefault(description, fmt.Sprintf("Payment from %s", customer.Name)),
			amount, decimal.Zero, domain.RefTypePayment, "", userID),
	}
	if err := tx.Entries.SaveEntries(ctx, entries); err != nil {
		return fmt.Errorf("posting payment from %s: %w", customer.AccountID, err)
	}
	return nil
}

// postSupplierPayment debits the supplier and credits cash by the same amount.
func (p postingEngine) postSupplierPayment(ctx context.Context, tx portsrepo.TxRepositories, supplier domain.LedgerAccount, amount decimal.Decimal, description string, date *time.Time, userID string) error {
	cash, err := p.resolver.getOrCreateCash(ctx, tx.Accounts)
	if err != nil {
		return err
	}
	when := p.dateOrNow(date)
	desc := orDefault(description, fmt.Sprintf("Payment to %s", supplier.Name))
	entries := []domain.LedgerEntry{
		p.newEntry(supplier.AccountID, when, desc, amount, decimal.Zero, domain.RefTypePayment, "", userID),
		p.newEntry(cash.AccountID, when, desc, decimal.Zero, amount, domain.RefTypePayment, "", userID),
	}
	if err := tx.Entries.SaveEntries(ctx, entries); err != nil {
		return fmt.Errorf("posting payment to %s: %w", supplier.AccountID, err)
	}
	return nil
}
