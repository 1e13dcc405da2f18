package services

import (
	"context"
	"time"

	"github.com/vintagenote/vn_backend/internal/core/domain"
	"github.com/vintagenote/vn_backend/internal/dto"
)

// PackageSvcFacade manages packages and their bundling and sale registration.
type PackageSvcFacade interface {
	CreatePackage(ctx context.Context, userID string, req dto.CreatePackageRequest) (*domain.Package, error)
	GetPackage(ctx context.Context, userID, packageID string) (*domain.Package, []domain.Product, error)
	ListPackages(ctx context.Context, userID string, period domain.Period) ([]domain.Package, error)
	DeletePackage(ctx context.Context, userID, packageID string) error
	MergePackages(ctx context.Context, userID string, req dto.MergePackagesRequest) (*domain.Package, error)
	RegisterSale(ctx context.Context, userID, packageID string, at *time.Time) (*domain.Package, error)
}
