package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"github.com/vintagenote/vn_backend/internal/apperrors"
	"github.com/vintagenote/vn_backend/internal/core/domain"
	portsrepo "github.com/vintagenote/vn_backend/internal/core/ports/repositories"
	portssvc "github.com/vintagenote/vn_backend/internal/core/ports/services"
	"github.com/vintagenote/vn_backend/internal/dto"
	"github.com/vintagenote/vn_backend/internal/utils/accounting"
)

// reportingService implements the dashboard and the CSV export.
type reportingService struct {
	BaseService
	productRepo portsrepo.ProductReader
	users       portssvc.UserReaderSvc
	rates       portssvc.ExchangeRateSvcFacade
	loc         *time.Location
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingLocation sets the timezone used for the daily sales series.
func WithReportingLocation(loc *time.Location) ReportingServiceOption {
	return func(s *reportingService) {
		s.loc = loc
	}
}

func newReportingService(productRepo portsrepo.ProductReader, users portssvc.UserReaderSvc, rates portssvc.ExchangeRateSvcFacade, options ...ReportingServiceOption) *reportingService {
	svc := &reportingService{
		BaseService: newBaseService(),
		productRepo: productRepo,
		users:       users,
		rates:       rates,
		loc:         time.UTC,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// NewDashboardService creates the monthly dashboard service.
func NewDashboardService(productRepo portsrepo.ProductReader, users portssvc.UserReaderSvc, rates portssvc.ExchangeRateSvcFacade, options ...ReportingServiceOption) portssvc.DashboardSvc {
	return newReportingService(productRepo, users, rates, options...)
}

// NewExportService creates the CSV export service.
func NewExportService(productRepo portsrepo.ProductReader, users portssvc.UserReaderSvc, options ...ReportingServiceOption) portssvc.ExportSvc {
	return newReportingService(productRepo, users, nil, options...)
}

var (
	_ portssvc.DashboardSvc = (*reportingService)(nil)
	_ portssvc.ExportSvc    = (*reportingService)(nil)
)

// GetDashboard aggregates the products created in period.
// The USD view converts the won totals at today's rate.
func (s *reportingService) GetDashboard(ctx context.Context, userID string, period domain.Period, view domain.CurrencyCode) (*dto.DashboardResponse, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if view != domain.KRW && view != domain.USD {
		return nil, fmt.Errorf("%w: '%s'", apperrors.ErrUnsupportedView, view)
	}
	if !user.CanUseCurrency(view) {
		return nil, fmt.Errorf("%w: the %s view requires the pro grade", apperrors.ErrForbidden, view)
	}

	krwPerUSD := decimal.Zero
	if view == domain.USD {
		usd, err := s.rates.CurrencyFor(ctx, domain.USD)
		if err != nil {
			return nil, err
		}
		krwPerUSD = usd.KRW
	}

	products, err := s.productRepo.FindProductsByPeriod(ctx, userID, period)
	if err != nil {
		s.LogError(ctx, err, "Failed to load products for dashboard")
		return nil, fmt.Errorf("failed to load dashboard data: %w", err)
	}

	summary := accounting.Summarize(products, period)
	if user.HasExtendedDashboard() {
		summary.Categories = accounting.SummarizeByCategory(products)
		summary.DailySales = accounting.DailySalesSeries(products, s.loc)
	}
	s.LogDebug(ctx, "Dashboard computed", slog.Int("products", len(products)), slog.String("view", string(view)))
	return dto.ToDashboardResponse(&summary, view, krwPerUSD)
}

// ExportProductsCSV writes the products created in period, oldest first.
func (s *reportingService) ExportProductsCSV(ctx context.Context, userID string, period domain.Period, w io.Writer) error {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.HasExtendedDashboard() {
		return fmt.Errorf("%w: export requires the pro grade", apperrors.ErrForbidden)
	}

	products, err := s.productRepo.FindProductsByPeriod(ctx, userID, period)
	if err != nil {
		s.LogError(ctx, err, "Failed to load products for export")
		return fmt.Errorf("failed to load export data: %w", err)
	}
	rows := make([]dto.ProductCSVRow, len(products))
	for i := range products {
		rows[i] = dto.ToProductCSVRow(&products[i], s.loc)
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	s.LogInfo(ctx, "Products exported", slog.Int("rows", len(rows)))
	return nil
}
