package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/vintagenote/vn_backend/internal/core/domain"
)

// CreateProductRequest records a single purchased item. It is wrapped in its own package.
type CreateProductRequest struct {
	Category string      `json:"category" binding:"max=50"`
	Brand    string      `json:"brand" binding:"max=100"`
	Name     string      `json:"name" binding:"required,max=200"`
	Cost     MoneyInput  `json:"cost" binding:"required"`
	Shipping *MoneyInput `json:"shipping"`
	Fee      *MoneyInput `json:"fee"`
}

// UpdateProductRequest edits descriptive fields only; cost data is frozen at intake.
type UpdateProductRequest struct {
	Category *string `json:"category" binding:"omitempty,max=50"`
	Brand    *string `json:"brand" binding:"omitempty,max=100"`
	Name     *string `json:"name" binding:"omitempty,min=1,max=200"`
}

// SalePriceRequest assigns a sale price in won.
type SalePriceRequest struct {
	SalePrice *decimal.Decimal `json:"salePrice" binding:"required" swaggertype:"string" example:"200000"`
}

// MarkSoldRequest optionally backdates the sale.
type MarkSoldRequest struct {
	SoldAt *time.Time `json:"soldAt"`
}

// BulkDeleteRequest lists products to delete, processed in order.
type BulkDeleteRequest struct {
	ProductIDs []string `json:"productIDs" binding:"required,min=1,max=100,dive,required"`
}

// BulkDeleteFailure reports one product that could not be deleted.
type BulkDeleteFailure struct {
	ProductID string `json:"productID"`
	Error     string `json:"error"`
}

// BulkDeleteResponse reports the outcome of every requested id.
type BulkDeleteResponse struct {
	Deleted []string            `json:"deleted"`
	Failed  []BulkDeleteFailure `json:"failed"`
}

// ListProductsParams defines query parameters for listing products.
type ListProductsParams struct {
	Month     string `form:"month"` // YYYY-MM, defaults to the current month
	View      string `form:"view"`
	Status    string `form:"status"`
	Limit     int    `form:"limit,default=20"`
	NextToken string `form:"nextToken"`
}

// ProductResponse is a product with its prices rendered in the requested view.
type ProductResponse struct {
	ProductID string         `json:"productID"`
	PackageID *string        `json:"packageID,omitempty"`
	Position  int            `json:"position"`
	Category  string         `json:"category"`
	Brand     string         `json:"brand"`
	Name      string         `json:"name"`
	State     string         `json:"state"`
	Cost      MoneyResponse  `json:"cost"`
	Shipping  *MoneyResponse `json:"shipping,omitempty"`
	Fee       *MoneyResponse `json:"fee,omitempty"`
	SalePrice *string        `json:"salePrice,omitempty"`
	Profit    *string        `json:"profit,omitempty"`
	SoldAt    *time.Time     `json:"soldAt,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`

	View    string         `json:"view"`
	Display ProductDisplay `json:"display"`
}

// ProductDisplay holds the formatted prices. A price that cannot be shown reads "N/A"
// and DisplayError says why.
type ProductDisplay struct {
	Cost         string `json:"cost"`
	Shipping     string `json:"shipping,omitempty"`
	Fee          string `json:"fee,omitempty"`
	SalePrice    string `json:"salePrice,omitempty"`
	Profit       string `json:"profit,omitempty"`
	DisplayError string `json:"displayError,omitempty"`
}

// ListProductsResponse wraps one page of products.
type ListProductsResponse struct {
	Products  []ProductResponse `json:"products"`
	NextToken *string           `json:"nextToken,omitempty"`
}

func decimalString(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

// ToProductResponse renders p in view. Sale price and profit are won amounts and use
// the product's intake rate for the USD view.
func ToProductResponse(p *domain.Product, view domain.CurrencyCode) ProductResponse {
	d := &displayCollector{view: view}
	krwPerUSD := p.Cost.Exchange.KRWPerUSD()

	resp := ProductResponse{
		ProductID: p.ProductID,
		PackageID: p.PackageID,
		Position:  p.Position,
		Category:  p.Category,
		Brand:     p.Brand,
		Name:      p.Name,
		State:     string(p.State()),
		Cost:      *ToMoneyResponse(&p.Cost),
		Shipping:  ToMoneyResponse(p.Shipping),
		Fee:       ToMoneyResponse(p.Fee),
		SalePrice: decimalString(p.SalePrice),
		Profit:    decimalString(p.Profit),
		SoldAt:    p.SoldAt,
		CreatedAt: p.CreatedAt,
		View:      string(view),
		Display: ProductDisplay{
			Cost:      d.price(&p.Cost),
			Shipping:  d.price(p.Shipping),
			Fee:       d.price(p.Fee),
			SalePrice: d.won(p.SalePrice, krwPerUSD),
			Profit:    d.won(p.Profit, krwPerUSD),
		},
	}
	resp.Display.DisplayError = d.errorString()
	return resp
}

func ToListProductsResponse(products []domain.Product, view domain.CurrencyCode, nextToken string) ListProductsResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = ToProductResponse(&products[i], view)
	}
	resp := ListProductsResponse{Products: out}
	if nextToken != "" {
		resp.NextToken = &nextToken
	}
	return resp
}
