package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vintagenote/vn_backend/internal/apperrors"
)

// DashboardSummary holds the monthly purchase and sale totals, all in won.
type DashboardSummary struct {
	PeriodStart   time.Time       `json:"periodStart"`
	PeriodEnd     time.Time       `json:"periodEnd"`
	TotalCost     decimal.Decimal `json:"totalCost"`
	TotalShipping decimal.Decimal `json:"totalShipping"`
	TotalFee      decimal.Decimal `json:"totalFee"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalProfit   decimal.Decimal `json:"totalProfit"`
	InStockCount  int             `json:"inStockCount"`
	SoldCount     int             `json:"soldCount"`

	// Only filled for pro users.
	Categories []CategorySummary `json:"categories,omitempty"`
	DailySales []DailySales      `json:"dailySales,omitempty"`
}

// CategorySummary is one row of the per-category breakdown.
type CategorySummary struct {
	Category string          `json:"category"`
	Count    int             `json:"count"`
	Sold     int             `json:"sold"`
	Cost     decimal.Decimal `json:"cost"`
	Revenue  decimal.Decimal `json:"revenue"`
	Profit   decimal.Decimal `json:"profit"`
}

// DailySales aggregates sold products by sale day.
type DailySales struct {
	Day     string          `json:"day"` // YYYY-MM-DD
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
	Profit  decimal.Decimal `json:"profit"`
}

// Period is a half-open [Start, End) range of creation times.
type Period struct {
	Start time.Time
	End   time.Time
}

// MonthPeriod returns the calendar month containing t in loc.
func MonthPeriod(t time.Time, loc *time.Location) Period {
	if loc == nil {
		loc = time.UTC
	}
	t = t.In(loc)
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
	return Period{Start: start, End: start.AddDate(0, 1, 0)}
}

// ParseMonthPeriod parses "YYYY-MM" in loc. An empty string selects the month containing now.
func ParseMonthPeriod(s string, now time.Time, loc *time.Location) (Period, error) {
	if loc == nil {
		loc = time.UTC
	}
	if s == "" {
		return MonthPeriod(now, loc), nil
	}
	t, err := time.ParseInLocation("2006-01", s, loc)
	if err != nil {
		return Period{}, fmt.Errorf("%w: month must be formatted as YYYY-MM", apperrors.ErrValidation)
	}
	return MonthPeriod(t, loc), nil
}
