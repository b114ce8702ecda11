package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/SscSPs/pos_inventory_app/internal/apperrors"
	"github.com/SscSPs/pos_inventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_inventory_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_inventory_app/internal/core/ports/services"
	"github.com/SscSPs/pos_inventory_app/internal/dto"
	"github.com/SscSPs/pos_inventory_app/internal/utils/normalize"
	"github.com/SscSPs/pos_inventory_app/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const maxSalesPageSize = 100

type saleService struct {
	BaseService
	saleRepo  portsrepo.SaleReader
	txManager portsrepo.TransactionManager
	resolver  accountResolver
	engine    postingEngine
}

// NewSaleService creates the sale transaction coordinator.
func NewSaleService(repos portsrepo.RepositoryProvider, options ...ServiceOption) portssvc.SaleSvcFacade {
	svc := &saleService{
		BaseService: newBaseService(options...),
		saleRepo:    repos.SaleRepo,
		txManager:   repos.TxManager,
	}
	svc.resolver = accountResolver{now: svc.Now}
	svc.engine = postingEngine{resolver: svc.resolver, now: svc.Now}
	return svc
}

var _ portssvc.SaleSvcFacade = (*saleService)(nil)

// saleLine is a requested product with its total quantity across duplicate lines.
type saleLine struct {
	productID string
	quantity  int64
}

// validateSaleRequest checks the request shape and merges lines for the same product,
// keeping first-seen order.
func validateSaleRequest(req dto.CreateSaleRequest) ([]saleLine, error) {
	if !req.PaymentType.IsValidForSale() {
		return nil, fmt.Errorf("%w: paymentType must be one of CASH, CARD, CREDIT", apperrors.ErrValidation)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: at least one item is required", apperrors.ErrValidation)
	}

	index := make(map[string]int, len(req.Items))
	lines := make([]saleLine, 0, len(req.Items))
	for i, item := range req.Items {
		if item.ProductID == "" {
			return nil, fmt.Errorf("%w: item %d: productID is required", apperrors.ErrValidation, i)
		}
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: item %d: quantity must be greater than zero", apperrors.ErrValidation, i)
		}
		if at, seen := index[item.ProductID]; seen {
			if lines[at].quantity > math.MaxInt64-item.Quantity {
				return nil, fmt.Errorf("%w: item %d: total quantity for product %s is too large", apperrors.ErrValidation, i, item.ProductID)
			}
			lines[at].quantity += item.Quantity
			continue
		}
		index[item.ProductID] = len(lines)
		lines = append(lines, saleLine{productID: item.ProductID, quantity: item.Quantity})
	}

	if req.PaymentType == domain.PaymentTypeCredit && req.CustomerAccountID == "" && normalize.AccountName(req.CustomerName) == "" {
		return nil, fmt.Errorf("%w: Customer account is required for credit sales", apperrors.ErrValidation)
	}
	return lines, nil
}

func missingProducts(lines []saleLine, found map[string]domain.Product) []string {
	var missing []string
	for _, l := range lines {
		if _, ok := found[l.productID]; !ok {
			missing = append(missing, l.productID)
		}
	}
	return missing
}

// PostSale runs validation, stock check, stock reservation, customer resolution,
// persistence and ledger posting inside one atomic scope.
func (s *saleService) PostSale(ctx context.Context, req dto.CreateSaleRequest, userID string) (*domain.Sale, error) {
	lines, err := validateSaleRequest(req)
	if err != nil {
		return nil, err
	}

	var posted *domain.Sale
	err = s.WithinTx(ctx, s.txManager, func(ctx context.Context, tx portsrepo.TxRepositories) error {
		ids := make([]string, len(lines))
		for i, l := range lines {
			ids[i] = l.productID
		}

		s.LogDebug(ctx, "Checking stock for sale", slog.Int("lines", len(lines)))
		products, err := tx.Products.FindProductsByIDs(ctx, ids)
		if err != nil {
			return fmt.Errorf("loading products: %w", err)
		}
		if missing := missingProducts(lines, products); len(missing) > 0 {
			return fmt.Errorf("%w: one or more products are missing or deleted: %s", apperrors.ErrProductNotFound, strings.Join(missing, ", "))
		}

		now := s.Now()
		saleID := uuid.NewString()
		total := decimal.Zero
		items := make([]domain.SaleItem, len(lines))
		for i, l := range lines {
			p := products[l.productID]
			if p.StockQuantity < l.quantity {
				return apperrors.NewInsufficientStockError(p.ProductID, p.Name, l.quantity, p.StockQuantity)
			}
			items[i] = domain.SaleItem{
				SaleItemID:  uuid.NewString(),
				SaleID:      saleID,
				ProductID:   p.ProductID,
				ProductName: p.Name,
				Quantity:    l.quantity,
				PriceAtSale: p.Price,
			}
			total = total.Add(items[i].LineTotal())
		}

		s.LogDebug(ctx, "Reserving stock for sale", slog.String("sale_id", saleID))
		for _, l := range lines {
			ok, err := tx.Products.DecrementStock(ctx, l.productID, l.quantity, now)
			if err != nil {
				return fmt.Errorf("decrementing stock for %s: %w", l.productID, err)
			}
			if !ok {
				return apperrors.NewStockConflictError(l.productID, products[l.productID].Name, l.quantity)
			}
		}

		sale := domain.Sale{
			SaleID:        saleID,
			UserID:        userID,
			PaymentType:   req.PaymentType,
			TotalAmount:   total,
			CustomerName:  normalize.AccountName(req.CustomerName),
			CustomerEmail: normalize.AccountName(req.CustomerEmail),
			CustomerPhone: normalize.AccountName(req.CustomerPhone),
			Items:         items,
			AuditFields:   domain.NewAuditFields(userID, now),
		}

		if req.PaymentType == domain.PaymentTypeCredit {
			customer, err := s.resolver.resolveSaleCustomer(ctx, tx.Accounts,
				req.CustomerAccountID, req.CustomerName, sale.CustomerEmail, sale.CustomerPhone, userID)
			if err != nil {
				return err
			}
			sale.CustomerAccountID = customer.AccountID
			if sale.CustomerName == "" {
				sale.CustomerName = customer.Name
			}
		}

		if err := tx.Sales.SaveSale(ctx, sale); err != nil {
			return fmt.Errorf("saving sale: %w", err)
		}

		s.LogDebug(ctx, "Posting sale to ledger", slog.String("sale_id", saleID))
		if err := s.engine.postSale(ctx, tx, sale); err != nil {
			return err
		}
		posted = &sale
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to post sale", slog.String("payment_type", string(req.PaymentType)))
		return nil, err
	}

	s.LogInfo(ctx, "Sale posted",
		slog.String("sale_id", posted.SaleID),
		slog.String("payment_type", string(posted.PaymentType)),
		slog.String("total", posted.TotalAmount.String()))
	return posted, nil
}

func (s *saleService) GetSale(ctx context.Context, saleID string) (*domain.Sale, error) {
	sale, err := s.saleRepo.FindSaleByID(ctx, saleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrSaleNotFound, saleID)
		}
		s.LogError(ctx, err, "Failed to find sale", slog.String("sale_id", saleID))
		return nil, err
	}
	return sale, nil
}

func (s *saleService) ListSales(ctx context.Context, params dto.ListSalesParams) ([]domain.Sale, *string, error) {
	limit := pagination.NormalizeLimit(params.Limit, maxSalesPageSize)
	var token *string
	if params.NextToken != "" {
		token = &params.NextToken
	}
	sales, next, err := s.saleRepo.ListSales(ctx, limit, token)
	if err != nil {
		s.logFailure(ctx, err, "Failed to list sales")
		return nil, nil, err
	}
	return sales, next, nil
}

// DeleteSale soft deletes the sale and its items. Stock is not restored and the
// ledger entry stays, matching how deletions have always behaved.
func (s *saleService) DeleteSale(ctx context.Context, saleID string, userID string) error {
	err := s.WithinTx(ctx, s.txManager, func(ctx context.Context, tx portsrepo.TxRepositories) error {
		return tx.Sales.SoftDeleteSale(ctx, saleID, userID, s.Now())
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrSaleNotFound) {
			err = fmt.Errorf("%w: %s", apperrors.ErrSaleNotFound, saleID)
		}
		s.logFailure(ctx, err, "Failed to delete sale", slog.String("sale_id", saleID))
		return err
	}
	s.LogInfo(ctx, "Sale deleted", slog.String("sale_id", saleID))
	return nil
}
