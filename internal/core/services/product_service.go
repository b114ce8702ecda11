package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/pos_inventory_app/internal/apperrors"
	"github.com/SscSPs/pos_inventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_inventory_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_inventory_app/internal/core/ports/services"
	"github.com/SscSPs/pos_inventory_app/internal/dto"
	"github.com/SscSPs/pos_inventory_app/internal/utils/accounting"
	"github.com/SscSPs/pos_inventory_app/internal/utils/normalize"
	"github.com/google/uuid"
)

const defaultProductPageSize = 100

type productService struct {
	BaseService
	productRepo portsrepo.ProductReader
	txManager   portsrepo.TransactionManager
}

// NewProductService creates the catalog service.
func NewProductService(repos portsrepo.RepositoryProvider, options ...ServiceOption) portssvc.ProductSvc {
	return &productService{
		BaseService: newBaseService(options...),
		productRepo: repos.ProductRepo,
		txManager:   repos.TxManager,
	}
}

var _ portssvc.ProductSvc = (*productService)(nil)

// CreateProduct adds a product under its normalised name. A soft-deleted product
// with the same name is revived instead of duplicated.
func (s *productService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, userID string) (*domain.Product, error) {
	name := normalize.ProductName(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	if req.Price.IsNegative() || req.CostPrice.IsNegative() {
		return nil, fmt.Errorf("%w: prices cannot be negative", apperrors.ErrValidation)
	}
	if !accounting.HasMoneyScale(req.Price) || !accounting.HasMoneyScale(req.CostPrice) {
		return nil, fmt.Errorf("%w: prices cannot have more than %d decimal places", apperrors.ErrValidation, accounting.MoneyScale)
	}
	if req.StockQuantity < 0 {
		return nil, fmt.Errorf("%w: stockQuantity cannot be negative", apperrors.ErrValidation)
	}

	product := domain.Product{
		ProductID:     uuid.NewString(),
		Name:          name,
		Price:         req.Price,
		CostPrice:     req.CostPrice,
		StockQuantity: req.StockQuantity,
		Unit:          strings.TrimSpace(req.Unit),
		Barcode:       strings.TrimSpace(req.Barcode),
		CategoryID:    strings.TrimSpace(req.CategoryID),
		AuditFields:   domain.NewAuditFields(userID, s.Now()),
	}

	restored := false
	err := s.WithinTx(ctx, s.txManager, func(ctx context.Context, tx portsrepo.TxRepositories) error {
		existing, err := tx.Products.FindProductByName(ctx, name, true)
		switch {
		case err == nil && !existing.IsDeleted:
			return fmt.Errorf("%w: %q", apperrors.ErrDuplicateProduct, name)
		case err == nil:
			product.ProductID = existing.ProductID
			restored = true
			return tx.Products.RestoreProduct(ctx, product)
		case errors.Is(err, apperrors.ErrNotFound):
			return tx.Products.SaveProduct(ctx, product)
		default:
			return fmt.Errorf("finding product %q: %w", name, err)
		}
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to create product", slog.String("name", name))
		return nil, err
	}

	s.LogInfo(ctx, "Product saved", slog.String("product_id", product.ProductID), slog.Bool("restored", restored))
	return &product, nil
}

func (s *productService) ListProducts(ctx context.Context, params dto.ListProductsParams) ([]domain.Product, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultProductPageSize
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}
	products, err := s.productRepo.ListProducts(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list products")
		return nil, err
	}
	return products, nil
}
