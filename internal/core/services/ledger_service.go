package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/pos_inventory_app/internal/apperrors"
	"github.com/SscSPs/pos_inventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_inventory_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_inventory_app/internal/core/ports/services"
	"github.com/SscSPs/pos_inventory_app/internal/dto"
	"github.com/SscSPs/pos_inventory_app/internal/utils/accounting"
	"github.com/SscSPs/pos_inventory_app/internal/utils/normalize"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ledgerService struct {
	BaseService
	accountRepo portsrepo.LedgerAccountRepositoryFacade
	entryRepo   portsrepo.LedgerEntryReader
	txManager   portsrepo.TransactionManager
	resolver    accountResolver
	engine      postingEngine
}

// NewLedgerService creates the service behind the ledger endpoints.
func NewLedgerService(repos portsrepo.RepositoryProvider, options ...ServiceOption) portssvc.LedgerSvcFacade {
	svc := &ledgerService{
		BaseService: newBaseService(options...),
		accountRepo: repos.AccountRepo,
		entryRepo:   repos.EntryRepo,
		txManager:   repos.TxManager,
	}
	svc.resolver = accountResolver{now: svc.Now}
	svc.engine = postingEngine{resolver: svc.resolver, now: svc.Now}
	return svc
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) GetOrCreateCashAccount(ctx context.Context) (*domain.LedgerAccount, error) {
	var cash *domain.LedgerAccount
	err := s.WithinTx(ctx, s.txManager, func(ctx context.Context, tx portsrepo.TxRepositories) error {
		var err error
		cash, err = s.resolver.getOrCreateCash(ctx, tx.Accounts)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve cash account")
		return nil, err
	}
	return cash, nil
}

func (s *ledgerService) ResolveAccount(ctx context.Context, accountID string, expectedType domain.AccountType) (*domain.LedgerAccount, error) {
	if !expectedType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, expectedType)
	}
	return s.resolver.resolveParty(ctx, s.accountRepo, accountID, expectedType)
}

func (s *ledgerService) FindOrCreateCustomerByName(ctx context.Context, name, email, phone string) (*domain.LedgerAccount, error) {
	var acc *domain.LedgerAccount
	err := s.WithinTx(ctx, s.txManager, func(ctx context.Context, tx portsrepo.TxRepositories) error {
		var err error
		acc, err = s.resolver.findOrCreateCustomer(ctx, tx.Accounts, name, email, phone, "")
		return err
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to find or create customer", slog.String("name", name))
		return nil, err
	}
	return acc, nil
}

func (s *ledgerService) ListAccounts(ctx context.Context, accountType domain.AccountType) ([]domain.LedgerAccountWithBalance, error) {
	if !accountType.IsValid() {
		return nil, fmt.Errorf("%w: type must be one of CASH, CUSTOMER, SUPPLIER", apperrors.ErrValidation)
	}

	accounts, err := s.accountRepo.ListAccountsByType(ctx, accountType)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("type", string(accountType)))
		return nil, fmt.Errorf("listing %s accounts: %w", accountType, err)
	}

	ids := make([]string, len(accounts))
	for i, acc := range accounts {
		ids[i] = acc.AccountID
	}
	entriesByAccount, err := s.entryRepo.ListEntriesByAccountIDs(ctx, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to load entries for account balances")
		return nil, fmt.Errorf("loading entries: %w", err)
	}

	result := make([]domain.LedgerAccountWithBalance, len(accounts))
	for i, acc := range accounts {
		result[i] = domain.LedgerAccountWithBalance{
			LedgerAccount: acc,
			Balance:       accounting.CalculateAccountBalance(entriesByAccount[acc.AccountID]),
		}
	}
	return result, nil
}

func (s *ledgerService) GetAccountLedger(ctx context.Context, accountID string) (*domain.AccountLedger, error) {
	acc, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, accountID)
		}
		s.LogError(ctx, err, "Failed to find account", slog.String("account_id", accountID))
		return nil, err
	}

	entries, err := s.entryRepo.ListEntriesByAccount(ctx, accountID, nil, nil)
	if err != nil {
		s.LogError(ctx, err, "Failed to list account entries", slog.String("account_id", accountID))
		return nil, fmt.Errorf("listing entries for %s: %w", accountID, err)
	}

	annotated := accounting.CalculateRunningBalance(entries)
	return &domain.AccountLedger{
		Account: *acc,
		Entries: annotated,
		Balance: accounting.ClosingBalance(decimal.Zero, annotated),
	}, nil
}

// endOfDay extends a date-only bound to the last instant of that UTC day.
func endOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 23, 59, 59, 999999999, time.UTC)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *ledgerService) GetCashLedger(ctx context.Context, params dto.CashLedgerParams) (*domain.CashLedger, error) {
	var from, to *time.Time
	if params.StartDate != nil {
		start := startOfDay(*params.StartDate)
		from = &start
	}
	if params.EndDate != nil {
		end := endOfDay(*params.EndDate)
		to = &end
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, fmt.Errorf("%w: startDate must not be after endDate", apperrors.ErrValidation)
	}

	empty := &domain.CashLedger{Entries: []domain.LedgerEntryWithBalance{}, OpeningBalance: decimal.Zero, ClosingBalance: decimal.Zero}

	cash, err := s.accountRepo.FindCashAccount(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return empty, nil
		}
		s.LogError(ctx, err, "Failed to find cash account")
		return nil, err
	}

	opening := decimal.Zero
	if from != nil {
		beforeStart := from.Add(-time.Nanosecond)
		earlier, err := s.entryRepo.ListEntriesByAccount(ctx, cash.AccountID, nil, &beforeStart)
		if err != nil {
			s.LogError(ctx, err, "Failed to load opening cash entries")
			return nil, fmt.Errorf("loading opening balance: %w", err)
		}
		opening = accounting.CalculateAccountBalance(earlier)
	}

	entries, err := s.entryRepo.ListEntriesByAccount(ctx, cash.AccountID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to list cash entries")
		return nil, fmt.Errorf("listing cash entries: %w", err)
	}

	annotated := accounting.CalculateRunningBalanceFrom(opening, entries)
	return &domain.CashLedger{
		Account:        cash,
		Entries:        annotated,
		OpeningBalance: opening,
		ClosingBalance: accounting.ClosingBalance(opening, annotated),
	}, nil
}

func (s *ledgerService) CreateAccount(ctx context.Context, req dto.CreateLedgerAccountRequest, userID string) (*domain.LedgerAccount, error) {
	if !req.Type.IsParty() {
		return nil, fmt.Errorf("%w: type must be CUSTOMER or SUPPLIER", apperrors.ErrValidation)
	}
	name := normalize.AccountName(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}

	acc := domain.LedgerAccount{
		AccountID:    uuid.NewString(),
		Type:         req.Type,
		Name:         name,
		ContactName:  normalize.AccountName(req.ContactName),
		ContactEmail: normalize.AccountName(req.ContactEmail),
		ContactPhone: normalize.AccountName(req.ContactPhone),
		AuditFields:  domain.NewAuditFields(userID, s.Now()),
	}
	if err := s.accountRepo.SaveAccount(ctx, acc); err != nil {
		s.logFailure(ctx, err, "Failed to save ledger account", slog.String("name", name), slog.String("type", string(req.Type)))
		return nil, err
	}

	s.LogInfo(ctx, "Ledger account created", slog.String("account_id", acc.AccountID), slog.String("type", string(acc.Type)))
	return &acc, nil
}

func (s *ledgerService) DeleteAccount(ctx context.Context, accountID string, userID string) error {
	acc, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, accountID)
		}
		return err
	}
	if !acc.Type.IsParty() {
		return fmt.Errorf("%w: the cash account cannot be deleted", apperrors.ErrValidation)
	}
	if err := s.accountRepo.SoftDeleteAccount(ctx, accountID, userID, s.Now()); err != nil {
		s.LogError(ctx, err, "Failed to delete ledger account", slog.String("account_id", accountID))
		return err
	}
	s.LogInfo(ctx, "Ledger account deleted", slog.String("account_id", accountID))
	return nil
}

func (s *ledgerService) PostManualEntry(ctx context.Context, req dto.CreateLedgerEntryRequest, userID string) (*domain.LedgerEntry, error) {
	if _, _, err := validateManualEntry(req); err != nil {
		return nil, err
	}

	var entry *domain.LedgerEntry
	err := s.WithinTx(ctx, s.txManager, func(ctx context.Context, tx portsrepo.TxRepositories) error {
		var err error
		entry, err = s.engine.postManual(ctx, tx, req, userID)
		return err
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to post manual entry", slog.String("account_id", req.AccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Manual ledger entry posted", slog.String("entry_id", entry.EntryID), slog.String("account_id", entry.AccountID))
	return entry, nil
}

func validatePayment(req dto.RecordPaymentRequest) error {
	if req.AccountID == "" {
		return fmt.Errorf("%w: accountID is required", apperrors.ErrValidation)
	}
	if !req.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)
	}
	if !accounting.HasMoneyScale(req.Amount) {
		return fmt.Errorf("%w: amount cannot have more than %d decimal places", apperrors.ErrValidation, accounting.MoneyScale)
	}
	return nil
}

func (s *ledgerService) RecordCustomerPayment(ctx context.Context, req dto.RecordPaymentRequest, userID string) (*domain.PaymentResult, error) {
	if err := validatePayment(req); err != nil {
		return nil, err
	}

	var result *domain.PaymentResult
	err := s.WithinTx(ctx, s.txManager, func(ctx context.Context, tx portsrepo.TxRepositories) error {
		customer, err := s.resolver.resolveParty(ctx, tx.Accounts, req.AccountID, domain.AccountTypeCustomer)
		if err != nil {
			return err
		}
		if err := s.engine.postCustomerPayment(ctx, tx, *customer, req.Amount, req.Description, req.Date, userID); err != nil {
			return err
		}
		result = &domain.PaymentResult{Account: *customer, Amount: req.Amount}
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to record customer payment", slog.String("account_id", req.AccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Customer payment recorded", slog.String("account_id", req.AccountID), slog.String("amount", req.Amount.String()))
	return result, nil
}

func (s *ledgerService) RecordSupplierPayment(ctx context.Context, req dto.RecordPaymentRequest, userID string) (*domain.PaymentResult, error) {
	if err := validatePayment(req); err != nil {
		return nil, err
	}

	var result *domain.PaymentResult
	err := s.WithinTx(ctx, s.txManager, func(ctx context.Context, tx portsrepo.TxRepositories) error {
		supplier, err := s.resolver.resolveParty(ctx, tx.Accounts, req.AccountID, domain.AccountTypeSupplier)
		if err != nil {
			return err
		}
		if err := s.engine.postSupplierPayment(ctx, tx, *supplier, req.Amount, req.Description, req.Date, userID); err != nil {
			return err
		}
		result = &domain.PaymentResult{Account: *supplier, Amount: req.Amount}
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to record supplier payment", slog.String("account_id", req.AccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Supplier payment recorded", slog.String("account_id", req.AccountID), slog.String("amount", req.Amount.String()))
	return result, nil
}
