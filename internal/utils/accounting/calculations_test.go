package accounting

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vintagenote/vn_backend/internal/core/domain"
)

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func timePtr(t time.Time) *time.Time {
	return &t
}

var usd = domain.Currency{Code: domain.USD, Label: "$", Rate: decimal.NewFromInt(1), KRW: decimal.NewFromInt(1350)}

func soldProduct(category string, cost, price, profit int64, soldAt time.Time) domain.Product {
	return domain.Product{
		Category:  category,
		Cost:      domain.Money{Amount: decimal.NewFromInt(cost), Exchange: usd},
		SalePrice: decimalPtr(decimal.NewFromInt(price)),
		Profit:    decimalPtr(decimal.NewFromInt(profit)),
		SoldAt:    timePtr(soldAt),
	}
}

func TestSumField(t *testing.T) {
	selector := func(v *int64) decimal.NullDecimal {
		if v == nil {
			return decimal.NullDecimal{}
		}
		return decimal.NullDecimal{Decimal: decimal.NewFromInt(*v), Valid: true}
	}
	a, b, c := int64(10000), int64(-2000), int64(5000)

	tests := []struct {
		name    string
		records []*int64
		want    string
	}{
		{"profits", []*int64{&a, &b, &c}, "13000"},
		{"reordered", []*int64{&c, &a, &b}, "13000"},
		{"nulls count as zero", []*int64{&a, nil, &c, nil}, "15000"},
		{"empty is identity", nil, "0"},
		{"all null", []*int64{nil, nil}, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SumField(tt.records, selector).String())
		})
	}
}

func TestSumField_OrderIndependentForFractions(t *testing.T) {
	values := []string{"0.1", "0.2", "0.3", "1e-10", "123456789.987654321"}
	forward := make([]decimal.NullDecimal, len(values))
	backward := make([]decimal.NullDecimal, len(values))
	for i, v := range values {
		d := decimal.NullDecimal{Decimal: decimal.RequireFromString(v), Valid: true}
		forward[i] = d
		backward[len(values)-1-i] = d
	}
	id := func(d decimal.NullDecimal) decimal.NullDecimal { return d }

	assert.True(t, SumField(forward, id).Equal(SumField(backward, id)))
}

func TestSummarize(t *testing.T) {
	soldAt := time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC)
	shipping := domain.Money{Amount: decimal.NewFromInt(2), Exchange: usd}
	fee := domain.Money{Amount: decimal.NewFromInt(500), Exchange: domain.KRWCurrency(decimal.NewFromInt(1350))}

	inStock := domain.Product{
		Category:  "bag",
		Cost:      domain.Money{Amount: decimal.NewFromInt(10), Exchange: usd},
		Shipping:  &shipping,
		Fee:       &fee,
		SalePrice: decimalPtr(decimal.NewFromInt(99999)), // listed, not sold: no revenue
		Profit:    decimalPtr(decimal.NewFromInt(777)),   // stale profit after undo: ignored
	}
	products := []domain.Product{
		soldProduct("bag", 100, 200000, 10000, soldAt),
		soldProduct("watch", 20, 30000, -2000, soldAt),
		soldProduct("bag", 1, 7000, 5000, soldAt.Add(24*time.Hour)),
		inStock,
	}
	period := domain.MonthPeriod(soldAt, time.UTC)

	summary := Summarize(products, period)

	assert.Equal(t, period.Start, summary.PeriodStart)
	assert.Equal(t, period.End, summary.PeriodEnd)
	assert.Equal(t, "176850", summary.TotalCost.String()) // (100+20+1+10) * 1350
	assert.Equal(t, "2700", summary.TotalShipping.String())
	assert.Equal(t, "500", summary.TotalFee.String())
	assert.Equal(t, "237000", summary.TotalRevenue.String())
	assert.Equal(t, "13000", summary.TotalProfit.String())
	assert.Equal(t, 1, summary.InStockCount)
	assert.Equal(t, 3, summary.SoldCount)
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil, domain.Period{})
	assert.True(t, summary.TotalCost.IsZero())
	assert.True(t, summary.TotalProfit.IsZero())
	assert.Zero(t, summary.InStockCount)
	assert.Zero(t, summary.SoldCount)
}

func TestSummarizeByCategory(t *testing.T) {
	soldAt := time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC)
	products := []domain.Product{
		soldProduct("watch", 20, 30000, -2000, soldAt),
		soldProduct("bag", 100, 200000, 10000, soldAt),
		{Category: "bag", Cost: domain.Money{Amount: decimal.NewFromInt(1), Exchange: usd}},
	}

	rows := SummarizeByCategory(products)

	require.Len(t, rows, 2)
	assert.Equal(t, "bag", rows[0].Category)
	assert.Equal(t, 2, rows[0].Count)
	assert.Equal(t, 1, rows[0].Sold)
	assert.Equal(t, "136350", rows[0].Cost.String())
	assert.Equal(t, "200000", rows[0].Revenue.String())
	assert.Equal(t, "watch", rows[1].Category)
	assert.Equal(t, "-2000", rows[1].Profit.String())
}

func TestDailySalesSeries(t *testing.T) {
	seoul := time.FixedZone("KST", 9*60*60)
	day1 := time.Date(2024, 6, 3, 1, 0, 0, 0, time.UTC)
	late := time.Date(2024, 6, 3, 16, 0, 0, 0, time.UTC) // June 4th in Seoul
	products := []domain.Product{
		soldProduct("bag", 1, 1000, 100, late),
		soldProduct("bag", 1, 2000, 200, day1),
		soldProduct("bag", 1, 3000, 300, day1),
		{Category: "bag"},
	}

	series := DailySalesSeries(products, seoul)

	require.Len(t, series, 2)
	assert.Equal(t, "2024-06-03", series[0].Day)
	assert.Equal(t, 2, series[0].Count)
	assert.Equal(t, "5000", series[0].Revenue.String())
	assert.Equal(t, "2024-06-04", series[1].Day)
	assert.Equal(t, "100", series[1].Profit.String())
}
