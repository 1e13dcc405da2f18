package repositories

import (
	"context"
	"time"

	"github.com/vintagenote/vn_backend/internal/core/domain"
)

// ProductQuery selects one keyset page of a user's products, newest first.
type ProductQuery struct {
	UserID string
	Period domain.Period
	State  *domain.ProductState
	Limit  int
	// After is the (created_at, product_id) of the last row of the previous page.
	AfterCreatedAt *time.Time
	AfterID        string
}

// ProductReader defines read operations for product data
type ProductReader interface {
	// FindProductByID retrieves a product owned by userID.
	FindProductByID(ctx context.Context, userID, productID string) (*domain.Product, error)

	// FindProductsByPeriod returns every product created in the period, for aggregation.
	FindProductsByPeriod(ctx context.Context, userID string, period domain.Period) ([]domain.Product, error)

	// FindProductsByPackage returns the members of a package in position order.
	FindProductsByPackage(ctx context.Context, userID, packageID string) ([]domain.Product, error)

	// ListProducts returns one page of products matching q.
	ListProducts(ctx context.Context, q ProductQuery) ([]domain.Product, error)
}

// ProductWriter defines write operations for product data
type ProductWriter interface {
	// UpdateProduct stores the editable and lifecycle fields. Cost fields are never rewritten.
	UpdateProduct(ctx context.Context, product domain.Product) error

	// DeleteProduct removes a product, and its package when it was the last member.
	DeleteProduct(ctx context.Context, userID, productID string) error
}

// ProductRepositoryFacade combines all product-related repository interfaces
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
}
