package services

import (
	portsrepo "github.com/vintagenote/vn_backend/internal/core/ports/repositories"
	portssvc "github.com/vintagenote/vn_backend/internal/core/ports/services"
	"github.com/vintagenote/vn_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, rateSource portsrepo.RateSource, rateCache portsrepo.RateCache) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg)
	container.GoogleAuth = NewGoogleAuthService(cfg.GoogleClientID, nil)

	container.ExchangeRate = NewExchangeRateService(rateSource, rateCache, WithRateLocation(cfg.Location))

	container.Product = NewProductService(repos.ProductRepo, repos.PackageRepo, container.User, container.ExchangeRate)
	container.Package = NewPackageService(repos.PackageRepo, repos.ProductRepo, container.User, container.ExchangeRate)
	container.Dashboard = NewDashboardService(repos.ProductRepo, container.User, container.ExchangeRate, WithReportingLocation(cfg.Location))
	container.Export = NewExportService(repos.ProductRepo, container.User, WithReportingLocation(cfg.Location))

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.UserSvcFacade         = (*userService)(nil)
	_ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)
	_ portssvc.ProductSvcFacade      = (*productService)(nil)
	_ portssvc.PackageSvcFacade      = (*packageService)(nil)
)
