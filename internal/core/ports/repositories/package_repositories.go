package repositories

import (
	"context"

	"github.com/vintagenote/vn_backend/internal/core/domain"
)

// PackageReader defines read operations for package data
type PackageReader interface {
	// FindPackageByID retrieves a package with its ordered member IDs.
	FindPackageByID(ctx context.Context, userID, packageID string) (*domain.Package, error)

	// FindPackagesByIDs retrieves packages in the order of ids. Missing ids yield apperrors.ErrNotFound.
	FindPackagesByIDs(ctx context.Context, userID string, ids []string) ([]domain.Package, error)

	// FindPackagesByPeriod returns packages created in the period.
	FindPackagesByPeriod(ctx context.Context, userID string, period domain.Period) ([]domain.Package, error)
}

// PackageWriter defines write operations for package data.
// Every method runs in a single transaction.
type PackageWriter interface {
	// CreatePackage inserts a package and its member products.
	CreatePackage(ctx context.Context, pkg domain.Package, products []domain.Product) error

	// DeletePackage removes a package together with its members.
	DeletePackage(ctx context.Context, userID, packageID string) error

	// MergePackages inserts merged, moves the members of sourceIDs into it and deletes the sources.
	MergePackages(ctx context.Context, merged domain.Package, sourceIDs []string) error

	// RegisterPackageSale stores addSaleAt and writes the allocated shipping/fee onto the members.
	RegisterPackageSale(ctx context.Context, pkg domain.Package, allocations []domain.Allocation) error
}

// PackageRepositoryFacade combines all package-related repository interfaces
type PackageRepositoryFacade interface {
	PackageReader
	PackageWriter
}

// PackageRepositoryWithTx extends PackageRepositoryFacade with transaction capabilities
type PackageRepositoryWithTx interface {
	PackageRepositoryFacade
	TransactionManager
}
