package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/vintagenote/vn_backend/internal/core/domain"
	"github.com/vintagenote/vn_backend/internal/utils"
)

// DashboardParams defines query parameters for the dashboard.
type DashboardParams struct {
	Month string `form:"month"`
	View  string `form:"view"`
}

// DashboardTotals are whole units of the view currency.
type DashboardTotals struct {
	Cost     decimal.Decimal `json:"cost"`
	Shipping decimal.Decimal `json:"shipping"`
	Fee      decimal.Decimal `json:"fee"`
	Revenue  decimal.Decimal `json:"revenue"`
	Profit   decimal.Decimal `json:"profit"`
}

// DashboardResponse is the monthly summary rendered in one view currency.
type DashboardResponse struct {
	PeriodStart  time.Time         `json:"periodStart"`
	PeriodEnd    time.Time         `json:"periodEnd"`
	View         string            `json:"view"`
	Totals       DashboardTotals   `json:"totals"`
	Display      map[string]string `json:"display"`
	InStockCount int               `json:"inStockCount"`
	SoldCount    int               `json:"soldCount"`

	Categories []CategoryRow `json:"categories,omitempty"`
	DailySales []DailyRow    `json:"dailySales,omitempty"`
}

// CategoryRow is one line of the per-category breakdown.
type CategoryRow struct {
	Category string          `json:"category"`
	Count    int             `json:"count"`
	Sold     int             `json:"sold"`
	Cost     decimal.Decimal `json:"cost"`
	Revenue  decimal.Decimal `json:"revenue"`
	Profit   decimal.Decimal `json:"profit"`
}

// DailyRow is one point of the daily sales series.
type DailyRow struct {
	Day     string          `json:"day"`
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
	Profit  decimal.Decimal `json:"profit"`
}

// dashboardConverter converts won totals and remembers the first failure.
type dashboardConverter struct {
	view      domain.CurrencyCode
	krwPerUSD decimal.Decimal
	err       error
}

func (c *dashboardConverter) convert(amountKRW decimal.Decimal) decimal.Decimal {
	v, err := utils.ConvertKRW(amountKRW, c.view, c.krwPerUSD)
	if err != nil && c.err == nil {
		c.err = err
	}
	return v
}

// ToDashboardResponse converts the won summary into view. It fails when the view cannot be
// rendered instead of reporting zero totals.
func ToDashboardResponse(s *domain.DashboardSummary, view domain.CurrencyCode, krwPerUSD decimal.Decimal) (*DashboardResponse, error) {
	c := &dashboardConverter{view: view, krwPerUSD: krwPerUSD}
	totals := DashboardTotals{
		Cost:     c.convert(s.TotalCost),
		Shipping: c.convert(s.TotalShipping),
		Fee:      c.convert(s.TotalFee),
		Revenue:  c.convert(s.TotalRevenue),
		Profit:   c.convert(s.TotalProfit),
	}
	if c.err != nil {
		return nil, c.err
	}

	resp := &DashboardResponse{
		PeriodStart:  s.PeriodStart,
		PeriodEnd:    s.PeriodEnd,
		View:         string(view),
		Totals:       totals,
		InStockCount: s.InStockCount,
		SoldCount:    s.SoldCount,
		Display: map[string]string{
			"cost":     utils.FormatWholeUnits(totals.Cost, view),
			"shipping": utils.FormatWholeUnits(totals.Shipping, view),
			"fee":      utils.FormatWholeUnits(totals.Fee, view),
			"revenue":  utils.FormatWholeUnits(totals.Revenue, view),
			"profit":   utils.FormatWholeUnits(totals.Profit, view),
		},
	}
	for _, cat := range s.Categories {
		resp.Categories = append(resp.Categories, CategoryRow{
			Category: cat.Category,
			Count:    cat.Count,
			Sold:     cat.Sold,
			Cost:     c.convert(cat.Cost),
			Revenue:  c.convert(cat.Revenue),
			Profit:   c.convert(cat.Profit),
		})
	}
	for _, day := range s.DailySales {
		resp.DailySales = append(resp.DailySales, DailyRow{
			Day:     day.Day,
			Count:   day.Count,
			Revenue: c.convert(day.Revenue),
			Profit:  c.convert(day.Profit),
		})
	}
	return resp, nil
}
