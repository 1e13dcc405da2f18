package services_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/vintagenote/vn_backend/internal/apperrors"
	"github.com/vintagenote/vn_backend/internal/core/domain"
	portssvc "github.com/vintagenote/vn_backend/internal/core/ports/services"
	"github.com/vintagenote/vn_backend/internal/core/services"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	productRepo *MockProductRepository
	users       *MockUserReader
	rates       *MockExchangeRateService
	dashboard   portssvc.DashboardSvc
	export      portssvc.ExportSvc
	ctx         context.Context
	userID      string
	period      domain.Period
}

func (s *ReportingServiceTestSuite) SetupTest() {
	s.productRepo = new(MockProductRepository)
	s.users = new(MockUserReader)
	s.rates = new(MockExchangeRateService)
	s.dashboard = services.NewDashboardService(s.productRepo, s.users, s.rates, services.WithReportingLocation(seoul))
	s.export = services.NewExportService(s.productRepo, s.users, services.WithReportingLocation(seoul))
	s.ctx = context.Background()
	s.userID = "user-1"
	s.period = domain.MonthPeriod(time.Date(2024, 6, 15, 0, 0, 0, 0, seoul), seoul)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}

func (s *ReportingServiceTestSuite) monthProducts() []domain.Product {
	soldAt := time.Date(2024, 6, 10, 15, 0, 0, 0, seoul)
	price := decimal.NewFromInt(270000)
	profit := decimal.NewFromInt(135000)
	return []domain.Product{
		{
			ProductID: "sold",
			Category:  "bag",
			Name:      "Bag",
			Cost:      domain.Money{Amount: decimal.NewFromInt(100), Exchange: usd(1350)},
			SalePrice: &price,
			Profit:    &profit,
			SoldAt:    &soldAt,
			AuditFields: domain.AuditFields{
				CreatedAt: time.Date(2024, 6, 1, 9, 0, 0, 0, seoul),
			},
		},
		{
			ProductID: "stock",
			Category:  "watch",
			Name:      "Watch",
			Cost:      domain.Money{Amount: decimal.NewFromInt(13500), Exchange: domain.KRWCurrency(decimal.NewFromInt(1350))},
			AuditFields: domain.AuditFields{
				CreatedAt: time.Date(2024, 6, 2, 9, 0, 0, 0, seoul),
			},
		},
	}
}

func (s *ReportingServiceTestSuite) TestGetDashboard_FreeUserKRW() {
	s.users.On("GetUserByID", s.ctx, s.userID).Return(freeUser(s.userID), nil)
	s.productRepo.On("FindProductsByPeriod", s.ctx, s.userID, s.period).Return(s.monthProducts(), nil)

	resp, err := s.dashboard.GetDashboard(s.ctx, s.userID, s.period, domain.KRW)

	s.Require().NoError(err)
	s.Equal("148500", resp.Totals.Cost.String())
	s.Equal("270000", resp.Totals.Revenue.String())
	s.Equal("135000", resp.Totals.Profit.String())
	s.Equal("148,500 ₩", resp.Display["cost"])
	s.Equal(1, resp.InStockCount)
	s.Equal(1, resp.SoldCount)
	s.Empty(resp.Categories)
	s.Empty(resp.DailySales)
	s.rates.AssertNumberOfCalls(s.T(), "CurrencyFor", 0)
}

func (s *ReportingServiceTestSuite) TestGetDashboard_FreeUserUSDForbidden() {
	s.users.On("GetUserByID", s.ctx, s.userID).Return(freeUser(s.userID), nil)

	_, err := s.dashboard.GetDashboard(s.ctx, s.userID, s.period, domain.USD)

	s.ErrorIs(err, apperrors.ErrForbidden)
	s.productRepo.AssertNumberOfCalls(s.T(), "FindProductsByPeriod", 0)
}

func (s *ReportingServiceTestSuite) TestGetDashboard_ProUserUSD() {
	s.users.On("GetUserByID", s.ctx, s.userID).Return(proUser(s.userID), nil)
	s.rates.On("CurrencyFor", s.ctx, domain.USD).Return(usd(1350), nil)
	s.productRepo.On("FindProductsByPeriod", s.ctx, s.userID, s.period).Return(s.monthProducts(), nil)

	resp, err := s.dashboard.GetDashboard(s.ctx, s.userID, s.period, domain.USD)

	s.Require().NoError(err)
	s.Equal("USD", resp.View)
	s.Equal("110", resp.Totals.Cost.String())
	s.Equal("200", resp.Totals.Revenue.String())
	s.Equal("200 $", resp.Display["revenue"])
	s.Require().Len(resp.Categories, 2)
	s.Equal("bag", resp.Categories[0].Category)
	s.Require().Len(resp.DailySales, 1)
	s.Equal("2024-06-10", resp.DailySales[0].Day)
}

func (s *ReportingServiceTestSuite) TestGetDashboard_USDWithoutRates() {
	s.users.On("GetUserByID", s.ctx, s.userID).Return(proUser(s.userID), nil)
	s.rates.On("CurrencyFor", s.ctx, domain.USD).Return(domain.Currency{}, apperrors.ErrRateUnavailable)

	_, err := s.dashboard.GetDashboard(s.ctx, s.userID, s.period, domain.USD)

	s.ErrorIs(err, apperrors.ErrRateUnavailable)
}

func (s *ReportingServiceTestSuite) TestGetDashboard_JPYViewUnsupported() {
	s.users.On("GetUserByID", s.ctx, s.userID).Return(proUser(s.userID), nil)

	_, err := s.dashboard.GetDashboard(s.ctx, s.userID, s.period, domain.JPY)

	s.ErrorIs(err, apperrors.ErrUnsupportedView)
}

func (s *ReportingServiceTestSuite) TestExportProductsCSV() {
	s.users.On("GetUserByID", s.ctx, s.userID).Return(proUser(s.userID), nil)
	s.productRepo.On("FindProductsByPeriod", s.ctx, s.userID, s.period).Return(s.monthProducts(), nil)

	var buf bytes.Buffer
	err := s.export.ExportProductsCSV(s.ctx, s.userID, s.period, &buf)

	s.Require().NoError(err)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	s.Require().Len(lines, 3)
	s.True(strings.HasPrefix(lines[0], "product_id,package_id,created_at"))
	s.Contains(lines[1], "sold")
	s.Contains(lines[1], "SOLD")
	s.Contains(lines[1], "2024-06-10T15:00:00+09:00")
	s.Contains(lines[2], "INTAKE")
}

func (s *ReportingServiceTestSuite) TestExportProductsCSV_FreeUserForbidden() {
	s.users.On("GetUserByID", s.ctx, s.userID).Return(freeUser(s.userID), nil)

	var buf bytes.Buffer
	err := s.export.ExportProductsCSV(s.ctx, s.userID, s.period, &buf)

	s.ErrorIs(err, apperrors.ErrForbidden)
	s.Zero(buf.Len())
}
