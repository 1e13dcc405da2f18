package dto

import (
	"time"

	"github.com/vintagenote/vn_backend/internal/core/domain"
)

// ProductCSVRow is one line of the product export. Amounts are whole won.
type ProductCSVRow struct {
	ProductID string `csv:"product_id"`
	PackageID string `csv:"package_id"`
	CreatedAt string `csv:"created_at"`
	Category  string `csv:"category"`
	Brand     string `csv:"brand"`
	Name      string `csv:"name"`
	State     string `csv:"state"`
	Currency  string `csv:"currency"`
	Cost      string `csv:"cost"`
	CostKRW   string `csv:"cost_krw"`
	Shipping  string `csv:"shipping_krw"`
	Fee       string `csv:"fee_krw"`
	SalePrice string `csv:"sale_price_krw"`
	Profit    string `csv:"profit_krw"`
	SoldAt    string `csv:"sold_at"`
}

func ToProductCSVRow(p *domain.Product, loc *time.Location) ProductCSVRow {
	row := ProductCSVRow{
		ProductID: p.ProductID,
		CreatedAt: p.CreatedAt.In(loc).Format(time.RFC3339),
		Category:  p.Category,
		Brand:     p.Brand,
		Name:      p.Name,
		State:     string(p.State()),
		Currency:  string(p.Cost.Exchange.Code),
		Cost:      p.Cost.Amount.String(),
		CostKRW:   p.CostKRW().String(),
		Shipping:  p.ShippingKRW().String(),
		Fee:       p.FeeKRW().String(),
	}
	if p.PackageID != nil {
		row.PackageID = *p.PackageID
	}
	if p.SalePrice != nil {
		row.SalePrice = p.SalePrice.String()
	}
	if p.Profit != nil {
		row.Profit = p.Profit.String()
	}
	if p.SoldAt != nil {
		row.SoldAt = p.SoldAt.In(loc).Format(time.RFC3339)
	}
	return row
}
