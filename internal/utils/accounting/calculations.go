package accounting

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vintagenote/vn_backend/internal/core/domain"
)

// SumField adds selector(r) over records. Invalid (null) values count as zero, so an
// empty or all-null input sums to zero. Decimal addition keeps the result independent
// of iteration order.
func SumField[T any](records []T, selector func(T) decimal.NullDecimal) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		v := selector(r)
		if !v.Valid {
			continue
		}
		total = total.Add(v.Decimal)
	}
	return total
}

// CountWhere counts records matching pred.
func CountWhere[T any](records []T, pred func(T) bool) int {
	n := 0
	for _, r := range records {
		if pred(r) {
			n++
		}
	}
	return n
}

func valid(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

func nullable(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return valid(*d)
}

// Selectors used by the dashboard. Revenue and profit only count once a product is sold.
var (
	CostKRW     = func(p domain.Product) decimal.NullDecimal { return valid(p.CostKRW()) }
	ShippingKRW = func(p domain.Product) decimal.NullDecimal {
		if p.Shipping == nil {
			return decimal.NullDecimal{}
		}
		return valid(p.Shipping.KRWValue())
	}
	FeeKRW = func(p domain.Product) decimal.NullDecimal {
		if p.Fee == nil {
			return decimal.NullDecimal{}
		}
		return valid(p.Fee.KRWValue())
	}
	Revenue = func(p domain.Product) decimal.NullDecimal {
		if p.SoldAt == nil {
			return decimal.NullDecimal{}
		}
		return nullable(p.SalePrice)
	}
	Profit = func(p domain.Product) decimal.NullDecimal {
		if p.SoldAt == nil {
			return decimal.NullDecimal{}
		}
		return nullable(p.Profit)
	}
)

// Summarize computes the dashboard totals for a set of products.
func Summarize(products []domain.Product, period domain.Period) domain.DashboardSummary {
	inStock := CountWhere(products, func(p domain.Product) bool { return p.InStock() })
	return domain.DashboardSummary{
		PeriodStart:   period.Start,
		PeriodEnd:     period.End,
		TotalCost:     SumField(products, CostKRW),
		TotalShipping: SumField(products, ShippingKRW),
		TotalFee:      SumField(products, FeeKRW),
		TotalRevenue:  SumField(products, Revenue),
		TotalProfit:   SumField(products, Profit),
		InStockCount:  inStock,
		SoldCount:     len(products) - inStock,
	}
}

// SummarizeByCategory groups products by category, sorted by category name.
func SummarizeByCategory(products []domain.Product) []domain.CategorySummary {
	groups := make(map[string][]domain.Product)
	for _, p := range products {
		groups[p.Category] = append(groups[p.Category], p)
	}

	out := make([]domain.CategorySummary, 0, len(groups))
	for category, items := range groups {
		out = append(out, domain.CategorySummary{
			Category: category,
			Count:    len(items),
			Sold:     CountWhere(items, func(p domain.Product) bool { return !p.InStock() }),
			Cost:     SumField(items, CostKRW),
			Revenue:  SumField(items, Revenue),
			Profit:   SumField(items, Profit),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// DailySalesSeries groups sold products by the calendar day of their sale in loc.
func DailySalesSeries(products []domain.Product, loc *time.Location) []domain.DailySales {
	groups := make(map[string][]domain.Product)
	for _, p := range products {
		if p.SoldAt == nil {
			continue
		}
		day := domain.DayKey(*p.SoldAt, loc)
		groups[day] = append(groups[day], p)
	}

	out := make([]domain.DailySales, 0, len(groups))
	for day, items := range groups {
		out = append(out, domain.DailySales{
			Day:     day,
			Count:   len(items),
			Revenue: SumField(items, Revenue),
			Profit:  SumField(items, Profit),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out
}
