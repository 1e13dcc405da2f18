package dto

import (
	"time"

	"github.com/vintagenote/vn_backend/internal/core/domain"
)

// PackageItemInput is one member of a new package. Shipping and fee live on the package.
type PackageItemInput struct {
	Category string     `json:"category" binding:"max=50"`
	Brand    string     `json:"brand" binding:"max=100"`
	Name     string     `json:"name" binding:"required,max=200"`
	Cost     MoneyInput `json:"cost" binding:"required"`
}

// CreatePackageRequest records one shipment holding several items.
type CreatePackageRequest struct {
	Name     string             `json:"name" binding:"required,max=200"`
	Shipping *MoneyInput        `json:"shipping"`
	Fee      *MoneyInput        `json:"fee"`
	Products []PackageItemInput `json:"products" binding:"required,min=1,max=100,dive"`
}

// MergePackagesRequest merges packages in the given order.
type MergePackagesRequest struct {
	PackageIDs []string `json:"packageIDs" binding:"required,min=2,dive,required"`
	Name       string   `json:"name" binding:"max=200"`
}

// RegisterSaleRequest optionally backdates the sale registration.
type RegisterSaleRequest struct {
	At *time.Time `json:"at"`
}

// ListPackagesParams defines query parameters for listing packages.
type ListPackagesParams struct {
	Month string `form:"month"`
	View  string `form:"view"`
}

// PackageResponse is a package with its costs rendered in the requested view.
type PackageResponse struct {
	PackageID  string         `json:"packageID"`
	Name       string         `json:"name"`
	Shipping   *MoneyResponse `json:"shipping,omitempty"`
	Fee        *MoneyResponse `json:"fee,omitempty"`
	ProductIDs []string       `json:"productIDs"`
	Bundled    bool           `json:"bundled"`
	AddSaleAt  *time.Time     `json:"addSaleAt,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`

	View    string         `json:"view"`
	Display PackageDisplay `json:"display"`
}

// PackageDisplay holds the formatted package costs.
type PackageDisplay struct {
	Shipping     string `json:"shipping,omitempty"`
	Fee          string `json:"fee,omitempty"`
	DisplayError string `json:"displayError,omitempty"`
}

// PackageDetailResponse adds the member products.
type PackageDetailResponse struct {
	PackageResponse
	Products []ProductResponse `json:"products"`
}

func ToPackageResponse(p *domain.Package, view domain.CurrencyCode) PackageResponse {
	d := &displayCollector{view: view}
	ids := p.ProductIDs
	if ids == nil {
		ids = []string{}
	}
	resp := PackageResponse{
		PackageID:  p.PackageID,
		Name:       p.Name,
		Shipping:   ToMoneyResponse(p.Shipping),
		Fee:        ToMoneyResponse(p.Fee),
		ProductIDs: ids,
		Bundled:    p.IsBundled(),
		AddSaleAt:  p.AddSaleAt,
		CreatedAt:  p.CreatedAt,
		View:       string(view),
		Display: PackageDisplay{
			Shipping: d.price(p.Shipping),
			Fee:      d.price(p.Fee),
		},
	}
	resp.Display.DisplayError = d.errorString()
	return resp
}

func ToListPackagesResponse(pkgs []domain.Package, view domain.CurrencyCode) []PackageResponse {
	out := make([]PackageResponse, len(pkgs))
	for i := range pkgs {
		out[i] = ToPackageResponse(&pkgs[i], view)
	}
	return out
}
