package dto

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vintagenote/vn_backend/internal/apperrors"
	"github.com/vintagenote/vn_backend/internal/core/domain"
	"github.com/vintagenote/vn_backend/internal/utils"
)

var usd1350 = domain.Currency{Code: domain.USD, Label: "$", Rate: decimal.NewFromInt(1), KRW: decimal.NewFromInt(1350)}

func TestToProductResponse_Display(t *testing.T) {
	price := decimal.NewFromInt(270000)
	p := &domain.Product{
		ProductID: "p1",
		Name:      "Leather bag",
		Cost:      domain.Money{Amount: decimal.NewFromInt(100), Exchange: usd1350},
		SalePrice: &price,
	}

	krw := ToProductResponse(p, domain.KRW)
	assert.Equal(t, "135,000 ₩", krw.Display.Cost)
	assert.Equal(t, "270,000 ₩", krw.Display.SalePrice)
	assert.Equal(t, "LISTED", krw.State)
	assert.Empty(t, krw.Display.DisplayError)

	usd := ToProductResponse(p, domain.USD)
	assert.Equal(t, "100 $", usd.Display.Cost)
	assert.Equal(t, "200 $", usd.Display.SalePrice)

	jpy := ToProductResponse(p, domain.JPY)
	assert.Equal(t, utils.UnsupportedDisplay, jpy.Display.Cost)
	assert.NotEmpty(t, jpy.Display.DisplayError)
}

func TestToProductResponse_KRWWithoutRateInUSDView(t *testing.T) {
	p := &domain.Product{
		ProductID: "p1",
		Cost:      domain.Money{Amount: decimal.NewFromInt(50000), Exchange: domain.KRWCurrency(decimal.Zero)},
	}

	resp := ToProductResponse(p, domain.USD)

	assert.Equal(t, utils.UnsupportedDisplay, resp.Display.Cost)
	assert.Contains(t, resp.Display.DisplayError, apperrors.ErrRateUnavailable.Error())
	assert.Equal(t, "50000", resp.Cost.KRWValue.String())
}

func TestToDashboardResponse(t *testing.T) {
	summary := &domain.DashboardSummary{
		TotalCost:    decimal.NewFromInt(135000),
		TotalProfit:  decimal.NewFromInt(13000),
		InStockCount: 2,
		SoldCount:    3,
	}

	resp, err := ToDashboardResponse(summary, domain.KRW, decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, "135,000 ₩", resp.Display["cost"])
	assert.Equal(t, "13,000 ₩", resp.Display["profit"])
	assert.Equal(t, 3, resp.SoldCount)

	resp, err = ToDashboardResponse(summary, domain.USD, decimal.NewFromInt(1350))
	require.NoError(t, err)
	assert.Equal(t, "100", resp.Totals.Cost.String())
	assert.Equal(t, "10", resp.Totals.Profit.String())

	_, err = ToDashboardResponse(summary, domain.USD, decimal.Zero)
	assert.ErrorIs(t, err, apperrors.ErrRateUnavailable)
}

func TestToProductCSVRow(t *testing.T) {
	soldAt := time.Date(2024, 6, 3, 15, 30, 0, 0, time.UTC)
	pkg := "pkg_1"
	price, profit := decimal.NewFromInt(200000), decimal.NewFromInt(48500)
	p := &domain.Product{
		ProductID: "p1",
		PackageID: &pkg,
		Name:      "Watch",
		Cost:      domain.Money{Amount: decimal.NewFromInt(100), Exchange: usd1350},
		SalePrice: &price,
		Profit:    &profit,
		SoldAt:    &soldAt,
	}

	row := ToProductCSVRow(p, time.FixedZone("KST", 9*60*60))

	assert.Equal(t, "pkg_1", row.PackageID)
	assert.Equal(t, "135000", row.CostKRW)
	assert.Equal(t, "0", row.Shipping)
	assert.Equal(t, "SOLD", row.State)
	assert.Equal(t, "2024-06-04T00:30:00+09:00", row.SoldAt)
}
