package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/SscSPs/pos_inventory_app/internal/apperrors"
	"github.com/SscSPs/pos_inventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_inventory_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_inventory_app/internal/core/ports/services"
	"github.com/SscSPs/pos_inventory_app/internal/dto"
	"github.com/SscSPs/pos_inventory_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

type purchaseService struct {
	BaseService
	txManager portsrepo.TransactionManager
	resolver  accountResolver
	engine    postingEngine
}

// NewPurchaseService creates the purchase transaction coordinator.
func NewPurchaseService(repos portsrepo.RepositoryProvider, options ...ServiceOption) portssvc.PurchaseSvc {
	svc := &purchaseService{
		BaseService: newBaseService(options...),
		txManager:   repos.TxManager,
	}
	svc.resolver = accountResolver{now: svc.Now}
	svc.engine = postingEngine{resolver: svc.resolver, now: svc.Now}
	return svc
}

var _ portssvc.PurchaseSvc = (*purchaseService)(nil)

func validatePurchaseRequest(req dto.CreatePurchaseRequest) error {
	if req.SupplierAccountID == "" {
		return fmt.Errorf("%w: supplierAccountID is required", apperrors.ErrValidation)
	}
	if !req.PaymentType.IsValidForPurchase() {
		return fmt.Errorf("%w: paymentType must be CASH or CREDIT", apperrors.ErrValidation)
	}
	if len(req.Items) == 0 {
		return fmt.Errorf("%w: at least one item is required", apperrors.ErrValidation)
	}
	for i, item := range req.Items {
		if item.ProductID == "" {
			return fmt.Errorf("%w: item %d: productID is required", apperrors.ErrValidation, i)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: item %d: quantity must be greater than zero", apperrors.ErrValidation, i)
		}
		if item.CostPrice != nil && item.CostPrice.IsNegative() {
			return fmt.Errorf("%w: item %d: costPrice cannot be negative", apperrors.ErrValidation, i)
		}
		if item.CostPrice != nil && !accounting.HasMoneyScale(*item.CostPrice) {
			return fmt.Errorf("%w: item %d: costPrice cannot have more than %d decimal places", apperrors.ErrValidation, i, accounting.MoneyScale)
		}
	}
	return nil
}

// PostPurchase restocks every item, overwrites its cost price and posts a single
// credit to the supplier (CREDIT) or to cash (CASH), all in one atomic scope.
func (s *purchaseService) PostPurchase(ctx context.Context, req dto.CreatePurchaseRequest, userID string) (*domain.PurchaseResult, error) {
	if err := validatePurchaseRequest(req); err != nil {
		return nil, err
	}

	var result *domain.PurchaseResult
	err := s.WithinTx(ctx, s.txManager, func(ctx context.Context, tx portsrepo.TxRepositories) error {
		supplier, err := s.resolver.resolveParty(ctx, tx.Accounts, req.SupplierAccountID, domain.AccountTypeSupplier)
		if err != nil {
			return err
		}

		seen := make(map[string]bool, len(req.Items))
		ids := make([]string, 0, len(req.Items))
		for _, item := range req.Items {
			if !seen[item.ProductID] {
				seen[item.ProductID] = true
				ids = append(ids, item.ProductID)
			}
		}
		products, err := tx.Products.FindProductsByIDs(ctx, ids)
		if err != nil {
			return fmt.Errorf("loading products: %w", err)
		}
		var missing []string
		for _, id := range ids {
			if _, ok := products[id]; !ok {
				missing = append(missing, id)
			}
		}
		if len(missing) > 0 {
			return fmt.Errorf("%w: one or more products are missing or deleted: %s", apperrors.ErrProductNotFound, strings.Join(missing, ", "))
		}

		stock := make(map[string]int64, len(products))
		for id, p := range products {
			stock[id] = p.StockQuantity
		}

		now := s.Now()
		total := decimal.Zero
		for i, item := range req.Items {
			if stock[item.ProductID] > math.MaxInt64-item.Quantity {
				return fmt.Errorf("%w: item %d: stock for product %s would exceed the maximum", apperrors.ErrValidation, i, item.ProductID)
			}
			stock[item.ProductID] += item.Quantity

			cost := products[item.ProductID].CostPrice
			if item.CostPrice != nil {
				cost = *item.CostPrice
			}
			total = total.Add(cost.Mul(decimal.NewFromInt(item.Quantity)))
			if err := tx.Products.IncrementStock(ctx, item.ProductID, item.Quantity, cost, now); err != nil {
				return fmt.Errorf("restocking %s: %w", item.ProductID, err)
			}
		}

		if err := s.engine.postPurchase(ctx, tx, *supplier, req.PaymentType, total, req.Description, userID); err != nil {
			return err
		}
		result = &domain.PurchaseResult{TotalAmount: total, SupplierAccount: *supplier}
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to post purchase", slog.String("supplier_account_id", req.SupplierAccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Purchase posted",
		slog.String("supplier_account_id", req.SupplierAccountID),
		slog.String("payment_type", string(req.PaymentType)),
		slog.String("total", result.TotalAmount.String()))
	return result, nil
}
