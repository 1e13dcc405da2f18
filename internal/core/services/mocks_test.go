package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/vintagenote/vn_backend/internal/core/domain"
	portsrepo "github.com/vintagenote/vn_backend/internal/core/ports/repositories"
	portssvc "github.com/vintagenote/vn_backend/internal/core/ports/services"
)

var (
	_ portsrepo.UserRepositoryFacade    = (*MockUserRepository)(nil)
	_ portsrepo.ProductRepositoryFacade = (*MockProductRepository)(nil)
	_ portsrepo.PackageRepositoryWithTx = (*MockPackageRepository)(nil)
	_ portsrepo.RateSource              = (*MockRateSource)(nil)
	_ portssvc.UserReaderSvc            = (*MockUserReader)(nil)
	_ portssvc.ExchangeRateSvcFacade    = (*MockExchangeRateService)(nil)
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByProvider(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error) {
	args := m.Called(ctx, provider, providerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time) error {
	return m.Called(ctx, userID, deletedAt).Error(0)
}

// --- Mock UserReaderSvc ---
type MockUserReader struct {
	mock.Mock
}

func (m *MockUserReader) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserReader) CheckCurrencyAccess(ctx context.Context, userID string, code domain.CurrencyCode) error {
	return m.Called(ctx, userID, code).Error(0)
}

// --- Mock ExchangeRateSvcFacade ---
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

// --- Mock RateSource ---
type MockRateSource struct {
	mock.Mock
}

func (m *MockRateSource) FetchRates(ctx context.Context) (*domain.RateTable, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateTable), args.Error(1)
}

// --- Mock ProductRepository ---
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindProductByID(ctx context.Context, userID, productID string) (*domain.Product, error) {
	args := m.Called(ctx, userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindProductsByPeriod(ctx context.Context, userID string, period domain.Period) ([]domain.Product, error) {
	args := m.Called(ctx, userID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindProductsByPackage(ctx context.Context, userID, packageID string) ([]domain.Product, error) {
	args := m.Called(ctx, userID, packageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) ListProducts(ctx context.Context, q portsrepo.ProductQuery) ([]domain.Product, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) DeleteProduct(ctx context.Context, userID, productID string) error {
	return m.Called(ctx, userID, productID).Error(0)
}

// --- Mock PackageRepository ---
type MockPackageRepository struct {
	mock.Mock
}

func (m *MockPackageRepository) FindPackageByID(ctx context.Context, userID, packageID string) (*domain.Package, error) {
	args := m.Called(ctx, userID, packageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Package), args.Error(1)
}

func (m *MockPackageRepository) FindPackagesByIDs(ctx context.Context, userID string, ids []string) ([]domain.Package, error) {
	args := m.Called(ctx, userID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Package), args.Error(1)
}

func (m *MockPackageRepository) FindPackagesByPeriod(ctx context.Context, userID string, period domain.Period) ([]domain.Package, error) {
	args := m.Called(ctx, userID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Package), args.Error(1)
}

func (m *MockPackageRepository) CreatePackage(ctx context.Context, pkg domain.Package, products []domain.Product) error {
	return m.Called(ctx, pkg, products).Error(0)
}

func (m *MockPackageRepository) DeletePackage(ctx context.Context, userID, packageID string) error {
	return m.Called(ctx, userID, packageID).Error(0)
}

func (m *MockPackageRepository) MergePackages(ctx context.Context, merged domain.Package, sourceIDs []string) error {
	return m.Called(ctx, merged, sourceIDs).Error(0)
}

func (m *MockPackageRepository) RegisterPackageSale(ctx context.Context, pkg domain.Package, allocations []domain.Allocation) error {
	return m.Called(ctx, pkg, allocations).Error(0)
}

func (m *MockPackageRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockPackageRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockPackageRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

// --- fixtures ---

func usd(krw int64) domain.Currency {
	return domain.Currency{Code: domain.USD, Label: "$", Rate: decimal.NewFromInt(1), KRW: decimal.NewFromInt(krw)}
}

func freeUser(id string) *domain.User {
	return &domain.User{UserID: id, Username: id, Grade: domain.GradeFree, AuthProvider: domain.ProviderLocal}
}

func proUser(id string) *domain.User {
	return &domain.User{UserID: id, Username: id, Grade: domain.GradePro, AuthProvider: domain.ProviderLocal}
}

func ptr[T any](v T) *T {
	return &v
}
