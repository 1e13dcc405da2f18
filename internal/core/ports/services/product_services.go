package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vintagenote/vn_backend/internal/core/domain"
	"github.com/vintagenote/vn_backend/internal/dto"
)

// ProductListQuery is a validated product listing request.
type ProductListQuery struct {
	Period    domain.Period
	State     *domain.ProductState
	Limit     int
	NextToken string
}

// ProductReaderSvc defines read operations for products
type ProductReaderSvc interface {
	GetProduct(ctx context.Context, userID, productID string) (*domain.Product, error)

	// ListProducts returns one page and the token of the next page, empty on the last one.
	ListProducts(ctx context.Context, userID string, q ProductListQuery) ([]domain.Product, string, error)
}

// ProductWriterSvc defines intake, edit and delete operations
type ProductWriterSvc interface {
	CreateProduct(ctx context.Context, userID string, req dto.CreateProductRequest) (*domain.Product, error)
	UpdateProduct(ctx context.Context, userID, productID string, req dto.UpdateProductRequest) (*domain.Product, error)
	DeleteProduct(ctx context.Context, userID, productID string) error

	// BulkDeleteProducts deletes in order; a failing id is reported and the rest still run.
	BulkDeleteProducts(ctx context.Context, userID string, productIDs []string) dto.BulkDeleteResponse
}

// ProductLifecycleSvc drives Intake -> Listed -> Sold.
type ProductLifecycleSvc interface {
	AssignSalePrice(ctx context.Context, userID, productID string, price decimal.Decimal) (*domain.Product, error)
	MarkSold(ctx context.Context, userID, productID string, at *time.Time) (*domain.Product, error)
	UndoSold(ctx context.Context, userID, productID string) (*domain.Product, error)
}

// ProductSvcFacade combines all product-related service interfaces
type ProductSvcFacade interface {
	ProductReaderSvc
	ProductWriterSvc
	ProductLifecycleSvc
}
