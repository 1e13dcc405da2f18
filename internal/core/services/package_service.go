package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vintagenote/vn_backend/internal/apperrors"
	"github.com/vintagenote/vn_backend/internal/core/domain"
	portsrepo "github.com/vintagenote/vn_backend/internal/core/ports/repositories"
	portssvc "github.com/vintagenote/vn_backend/internal/core/ports/services"
	"github.com/vintagenote/vn_backend/internal/dto"
)

type packageService struct {
	BaseService
	packageRepo portsrepo.PackageRepositoryFacade
	productRepo portsrepo.ProductReader
	users       portssvc.UserReaderSvc
	money       moneyResolver
}

// NewPackageService creates the package bundling service.
func NewPackageService(
	packageRepo portsrepo.PackageRepositoryFacade,
	productRepo portsrepo.ProductReader,
	users portssvc.UserReaderSvc,
	rates portssvc.ExchangeRateSvcFacade,
) portssvc.PackageSvcFacade {
	return &packageService{
		BaseService: newBaseService(),
		packageRepo: packageRepo,
		productRepo: productRepo,
		users:       users,
		money:       moneyResolver{rates: rates},
	}
}

// CreatePackage records a shipment. Shipping and fee stay on the package until the
// sale registration splits them across the members.
func (s *packageService) CreatePackage(ctx context.Context, userID string, req dto.CreatePackageRequest) (*domain.Package, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
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
	pkg := domain.Package{
		PackageID:   uuid.NewString(),
		UserID:      userID,
		Name:        strings.TrimSpace(req.Name),
		Shipping:    shipping,
		Fee:         fee,
		AuditFields: domain.NewAuditFields(userID, now),
	}
	products := make([]domain.Product, 0, len(req.Products))
	for i, item := range req.Products {
		cost, err := s.money.resolve(ctx, user, item.Cost)
		if err != nil {
			return nil, fmt.Errorf("products[%d].cost: %w", i, err)
		}
		p := domain.Product{
			ProductID:   uuid.NewString(),
			UserID:      userID,
			PackageID:   &pkg.PackageID,
			Position:    i,
			Category:    strings.TrimSpace(item.Category),
			Brand:       strings.TrimSpace(item.Brand),
			Name:        strings.TrimSpace(item.Name),
			Cost:        cost,
			AuditFields: domain.NewAuditFields(userID, now),
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("products[%d]: %w", i, err)
		}
		products = append(products, p)
		pkg.ProductIDs = append(pkg.ProductIDs, p.ProductID)
	}
	if len(products) == 0 {
		return nil, apperrors.NewValidationError("a package needs at least one product")
	}

	if err := s.packageRepo.CreatePackage(ctx, pkg, products); err != nil {
		s.LogError(ctx, err, "Failed to create package", slog.String("package_id", pkg.PackageID))
		return nil, fmt.Errorf("failed to create package: %w", err)
	}
	s.LogInfo(ctx, "Package created", slog.String("package_id", pkg.PackageID), slog.Int("products", len(products)))
	return &pkg, nil
}

func (s *packageService) findPackage(ctx context.Context, userID, packageID string) (*domain.Package, error) {
	pkg, err := s.packageRepo.FindPackageByID(ctx, userID, packageID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("package not found")
		}
		return nil, fmt.Errorf("failed to get package: %w", err)
	}
	return pkg, nil
}

func (s *packageService) GetPackage(ctx context.Context, userID, packageID string) (*domain.Package, []domain.Product, error) {
	pkg, err := s.findPackage(ctx, userID, packageID)
	if err != nil {
		return nil, nil, err
	}
	products, err := s.productRepo.FindProductsByPackage(ctx, userID, packageID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load package products: %w", err)
	}
	return pkg, products, nil
}

func (s *packageService) ListPackages(ctx context.Context, userID string, period domain.Period) ([]domain.Package, error) {
	pkgs, err := s.packageRepo.FindPackagesByPeriod(ctx, userID, period)
	if err != nil {
		s.LogError(ctx, err, "Failed to list packages")
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	return pkgs, nil
}

func (s *packageService) DeletePackage(ctx context.Context, userID, packageID string) error {
	pkg, err := s.findPackage(ctx, userID, packageID)
	if err != nil {
		return err
	}
	if err := pkg.EnsureMutable(); err != nil {
		return err
	}
	if err := s.packageRepo.DeletePackage(ctx, userID, packageID); err != nil {
		s.LogError(ctx, err, "Failed to delete package", slog.String("package_id", packageID))
		return fmt.Errorf("failed to delete package: %w", err)
	}
	s.LogInfo(ctx, "Package deleted", slog.String("package_id", packageID))
	return nil
}

// MergePackages bundles the given packages in request order and deletes them.
func (s *packageService) MergePackages(ctx context.Context, userID string, req dto.MergePackagesRequest) (*domain.Package, error) {
	seen := make(map[string]bool, len(req.PackageIDs))
	for _, id := range req.PackageIDs {
		if seen[id] {
			return nil, fmt.Errorf("%w: package %s listed twice", apperrors.ErrValidation, id)
		}
		seen[id] = true
	}

	pkgs, err := s.packageRepo.FindPackagesByIDs(ctx, userID, req.PackageIDs)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("one or more packages not found")
		}
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	merged, err := domain.MergePackages(uuid.NewString(), userID, strings.TrimSpace(req.Name), pkgs, s.Now())
	if err != nil {
		return nil, err
	}
	if err := s.packageRepo.MergePackages(ctx, *merged, req.PackageIDs); err != nil {
		s.LogError(ctx, err, "Failed to merge packages", slog.Any("package_ids", req.PackageIDs))
		return nil, fmt.Errorf("failed to merge packages: %w", err)
	}
	s.LogInfo(ctx, "Packages merged", slog.String("package_id", merged.PackageID), slog.Int("sources", len(pkgs)))
	return merged, nil
}

// RegisterSale releases the members for sale and splits the package costs across them.
func (s *packageService) RegisterSale(ctx context.Context, userID, packageID string, at *time.Time) (*domain.Package, error) {
	pkg, err := s.findPackage(ctx, userID, packageID)
	if err != nil {
		return nil, err
	}
	registeredAt := s.Now()
	if at != nil {
		registeredAt = *at
	}
	if err := pkg.RegisterSale(registeredAt); err != nil {
		return nil, err
	}
	pkg.Touch(userID, s.Now())

	if err := s.packageRepo.RegisterPackageSale(ctx, *pkg, pkg.Allocate()); err != nil {
		s.LogError(ctx, err, "Failed to register package sale", slog.String("package_id", packageID))
		return nil, fmt.Errorf("failed to register package sale: %w", err)
	}
	s.LogInfo(ctx, "Package registered for sale", slog.String("package_id", packageID))
	return pkg, nil
}
