package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vintagenote/vn_backend/internal/apperrors"
	"github.com/vintagenote/vn_backend/internal/core/domain"
	portsrepo "github.com/vintagenote/vn_backend/internal/core/ports/repositories"
	portssvc "github.com/vintagenote/vn_backend/internal/core/ports/services"
	"github.com/vintagenote/vn_backend/internal/dto"
	"github.com/vintagenote/vn_backend/internal/utils/pagination"
)

type productService struct {
	BaseService
	productRepo portsrepo.ProductRepositoryFacade
	packageRepo portsrepo.PackageRepositoryFacade
	users       portssvc.UserReaderSvc
	money       moneyResolver
}

// NewProductService creates the product lifecycle service.
func NewProductService(
	productRepo portsrepo.ProductRepositoryFacade,
	packageRepo portsrepo.PackageRepositoryFacade,
	users portssvc.UserReaderSvc,
	rates portssvc.ExchangeRateSvcFacade,
) portssvc.ProductSvcFacade {
	return &productService{
		BaseService: newBaseService(),
		productRepo: productRepo,
		packageRepo: packageRepo,
		users:       users,
		money:       moneyResolver{rates: rates},
	}
}

// CreateProduct records one item in a package of its own. Shipping and fee stay on the
// product since there is nothing to share them with.
func (s *productService) CreateProduct(ctx context.Context, userID string, req dto.CreateProductRequest) (*domain.Product, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	cost, err := s.money.resolve(ctx, user, req.Cost)
	if err != nil {
		return nil, fmt.Errorf("cost: %w", err)
	}
	shipping, err := s.money.resolveOptional(ctx, user, req.Shipping)
	if err != nil {
		return nil, fmt.Errorf("shipping: %w", err)
	}
	fee, err := s.money.resolveOptional(ctx, user, req.Fee)
	if err != nil {
		return nil, fmt.Errorf("fee: %w", err)
	}

	now := s.Now()
	packageID := uuid.NewString()
	product := domain.Product{
		ProductID:   uuid.NewString(),
		UserID:      userID,
		PackageID:   &packageID,
		Category:    strings.TrimSpace(req.Category),
		Brand:       strings.TrimSpace(req.Brand),
		Name:        strings.TrimSpace(req.Name),
		Cost:        cost,
		Shipping:    shipping,
		Fee:         fee,
		AuditFields: domain.NewAuditFields(userID, now),
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	pkg := domain.Package{
		PackageID:   packageID,
		UserID:      userID,
		Name:        product.Name,
		ProductIDs:  []string{product.ProductID},
		AuditFields: domain.NewAuditFields(userID, now),
	}

	if err := s.packageRepo.CreatePackage(ctx, pkg, []domain.Product{product}); err != nil {
		s.LogError(ctx, err, "Failed to create product", slog.String("product_id", product.ProductID))
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	s.LogInfo(ctx, "Product created", slog.String("product_id", product.ProductID), slog.String("currency", string(cost.Exchange.Code)))
	return &product, nil
}

func (s *productService) GetProduct(ctx context.Context, userID, productID string) (*domain.Product, error) {
	p, err := s.productRepo.FindProductByID(ctx, userID, productID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("product not found")
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return p, nil
}

func (s *productService) ListProducts(ctx context.Context, userID string, q portssvc.ProductListQuery) ([]domain.Product, string, error) {
	limit := pagination.ClampLimit(q.Limit)
	query := portsrepo.ProductQuery{
		UserID: userID,
		Period: q.Period,
		State:  q.State,
		Limit:  limit + 1,
	}
	if q.NextToken != "" {
		createdAt, id, err := pagination.DecodeToken(q.NextToken)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		query.AfterCreatedAt = &createdAt
		query.AfterID = id
	}

	products, err := s.productRepo.ListProducts(ctx, query)
	if err != nil {
		s.LogError(ctx, err, "Failed to list products")
		return nil, "", fmt.Errorf("failed to list products: %w", err)
	}

	var next string
	if len(products) > limit {
		products = products[:limit]
		last := products[limit-1]
		next = pagination.EncodeToken(last.CreatedAt, last.ProductID)
	}
	return products, next, nil
}

func (s *productService) UpdateProduct(ctx context.Context, userID, productID string, req dto.UpdateProductRequest) (*domain.Product, error) {
	p, err := s.GetProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if req.Category != nil {
		p.Category = strings.TrimSpace(*req.Category)
	}
	if req.Brand != nil {
		p.Brand = strings.TrimSpace(*req.Brand)
	}
	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if p.Name == "" {
		return nil, apperrors.NewValidationError("product name is required")
	}
	return s.save(ctx, userID, p)
}

func (s *productService) save(ctx context.Context, userID string, p *domain.Product) (*domain.Product, error) {
	p.Touch(userID, s.Now())
	if err := s.productRepo.UpdateProduct(ctx, *p); err != nil {
		s.LogError(ctx, err, "Failed to update product", slog.String("product_id", p.ProductID))
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return p, nil
}

// packageOf returns the package of p, or nil for a product outside any package.
func (s *productService) packageOf(ctx context.Context, p *domain.Product) (*domain.Package, error) {
	if p.PackageID == nil {
		return nil, nil
	}
	pkg, err := s.packageRepo.FindPackageByID(ctx, p.UserID, *p.PackageID)
	if err != nil {
		return nil, fmt.Errorf("failed to load package of product %s: %w", p.ProductID, err)
	}
	return pkg, nil
}

func (s *productService) ensureSaleRegistered(ctx context.Context, p *domain.Product) error {
	pkg, err := s.packageOf(ctx, p)
	if err != nil {
		return err
	}
	if pkg != nil && !pkg.IsSaleRegistered() {
		return fmt.Errorf("%w: register the package for sale first", apperrors.ErrValidation)
	}
	return nil
}

func (s *productService) DeleteProduct(ctx context.Context, userID, productID string) error {
	p, err := s.GetProduct(ctx, userID, productID)
	if err != nil {
		return err
	}
	pkg, err := s.packageOf(ctx, p)
	if err != nil {
		return err
	}
	if pkg != nil {
		if err := pkg.EnsureMutable(); err != nil {
			return err
		}
	}
	if err := s.productRepo.DeleteProduct(ctx, userID, productID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("product not found")
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}
	s.LogInfo(ctx, "Product deleted", slog.String("product_id", productID))
	return nil
}

func (s *productService) BulkDeleteProducts(ctx context.Context, userID string, productIDs []string) dto.BulkDeleteResponse {
	resp := dto.BulkDeleteResponse{Deleted: []string{}, Failed: []dto.BulkDeleteFailure{}}
	for _, id := range productIDs {
		if err := s.DeleteProduct(ctx, userID, id); err != nil {
			s.LogError(ctx, err, "Bulk delete item failed", slog.String("product_id", id))
			resp.Failed = append(resp.Failed, dto.BulkDeleteFailure{ProductID: id, Error: err.Error()})
			continue
		}
		resp.Deleted = append(resp.Deleted, id)
	}
	return resp
}

func (s *productService) AssignSalePrice(ctx context.Context, userID, productID string, price decimal.Decimal) (*domain.Product, error) {
	p, err := s.GetProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureSaleRegistered(ctx, p); err != nil {
		return nil, err
	}
	if err := p.AssignSalePrice(price); err != nil {
		return nil, err
	}
	return s.save(ctx, userID, p)
}

func (s *productService) MarkSold(ctx context.Context, userID, productID string, at *time.Time) (*domain.Product, error) {
	p, err := s.GetProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureSaleRegistered(ctx, p); err != nil {
		return nil, err
	}
	soldAt := s.Now()
	if at != nil {
		soldAt = *at
	}
	if err := p.MarkSold(soldAt); err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Product sold", slog.String("product_id", productID), slog.String("profit", p.Profit.String()))
	return s.save(ctx, userID, p)
}

func (s *productService) UndoSold(ctx context.Context, userID, productID string) (*domain.Product, error) {
	p, err := s.GetProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if err := p.UndoSold(); err != nil {
		return nil, err
	}
	return s.save(ctx, userID, p)
}
