package handlers_test

import (
	"context"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/vintagenote/vn_backend/internal/core/domain"
	portssvc "github.com/vintagenote/vn_backend/internal/core/ports/services"
	"github.com/vintagenote/vn_backend/internal/dto"
)

// --- Mock ProductService ---
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) GetProduct(ctx context.Context, userID, productID string) (*domain.Product, error) {
	args := m.Called(ctx, userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductService) ListProducts(ctx context.Context, userID string, q portssvc.ProductListQuery) ([]domain.Product, string, error) {
	args := m.Called(ctx, userID, q)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]domain.Product), args.String(1), args.Error(2)
}

func (m *MockProductService) CreateProduct(ctx context.Context, userID string, req dto.CreateProductRequest) (*domain.Product, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductService) UpdateProduct(ctx context.Context, userID, productID string, req dto.UpdateProductRequest) (*domain.Product, error) {
	args := m.Called(ctx, userID, productID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductService) DeleteProduct(ctx context.Context, userID, productID string) error {
	return m.Called(ctx, userID, productID).Error(0)
}

func (m *MockProductService) BulkDeleteProducts(ctx context.Context, userID string, productIDs []string) dto.BulkDeleteResponse {
	return m.Called(ctx, userID, productIDs).Get(0).(dto.BulkDeleteResponse)
}

func (m *MockProductService) AssignSalePrice(ctx context.Context, userID, productID string, price decimal.Decimal) (*domain.Product, error) {
	args := m.Called(ctx, userID, productID, price)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductService) MarkSold(ctx context.Context, userID, productID string, at *time.Time) (*domain.Product, error) {
	args := m.Called(ctx, userID, productID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductService) UndoSold(ctx context.Context, userID, productID string) (*domain.Product, error) {
	args := m.Called(ctx, userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

// --- Mock PackageService ---
type MockPackageService struct {
	mock.Mock
}

func (m *MockPackageService) CreatePackage(ctx context.Context, userID string, req dto.CreatePackageRequest) (*domain.Package, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Package), args.Error(1)
}

func (m *MockPackageService) GetPackage(ctx context.Context, userID, packageID string) (*domain.Package, []domain.Product, error) {
	args := m.Called(ctx, userID, packageID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Package), args.Get(1).([]domain.Product), args.Error(2)
}

func (m *MockPackageService) ListPackages(ctx context.Context, userID string, period domain.Period) ([]domain.Package, error) {
	args := m.Called(ctx, userID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Package), args.Error(1)
}

func (m *MockPackageService) DeletePackage(ctx context.Context, userID, packageID string) error {
	return m.Called(ctx, userID, packageID).Error(0)
}

func (m *MockPackageService) MergePackages(ctx context.Context, userID string, req dto.MergePackagesRequest) (*domain.Package, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Package), args.Error(1)
}

func (m *MockPackageService) RegisterSale(ctx context.Context, userID, packageID string, at *time.Time) (*domain.Package, error) {
	args := m.Called(ctx, userID, packageID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Package), args.Error(1)
}

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) CheckCurrencyAccess(ctx context.Context, userID string, code domain.CurrencyCode) error {
	return m.Called(ctx, userID, code).Error(0)
}

func (m *MockUserService) userResult(args mock.Arguments) (*domain.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	return m.userResult(m.Called(ctx, req))
}

func (m *MockUserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	return m.userResult(m.Called(ctx, userID, req))
}

func (m *MockUserService) UpdateGrade(ctx context.Context, userID string, grade domain.UserGrade) (*domain.User, error) {
	return m.userResult(m.Called(ctx, userID, grade))
}

func (m *MockUserService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	return m.userResult(m.Called(ctx, username, password))
}

func (m *MockUserService) FindOrCreateGoogleUser(ctx context.Context, subject, email, name string) (*domain.User, error) {
	return m.userResult(m.Called(ctx, subject, email, name))
}

// --- Mock ExchangeRateService ---
type MockExchangeRateService struct {
	mock.Mock
}

func (m *MockExchangeRateService) GetRates(ctx context.Context) (*domain.RateTable, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateTable), args.Error(1)
}

func (m *MockExchangeRateService) CurrencyFor(ctx context.Context, code domain.CurrencyCode) (domain.Currency, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(domain.Currency), args.Error(1)
}

func (m *MockExchangeRateService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

// --- Mock reporting services ---
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) GetDashboard(ctx context.Context, userID string, period domain.Period, view domain.CurrencyCode) (*dto.DashboardResponse, error) {
	args := m.Called(ctx, userID, period, view)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DashboardResponse), args.Error(1)
}

type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) ExportProductsCSV(ctx context.Context, userID string, period domain.Period, w io.Writer) error {
	return m.Called(ctx, userID, period, w).Error(0)
}

var (
	_ portssvc.ProductSvcFacade      = (*MockProductService)(nil)
	_ portssvc.PackageSvcFacade      = (*MockPackageService)(nil)
	_ portssvc.UserSvcFacade         = (*MockUserService)(nil)
	_ portssvc.ExchangeRateSvcFacade = (*MockExchangeRateService)(nil)
	_ portssvc.DashboardSvc          = (*MockDashboardService)(nil)
	_ portssvc.ExportSvc             = (*MockExportService)(nil)
)
