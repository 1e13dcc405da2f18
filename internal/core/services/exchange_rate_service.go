package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/vintagenote/vn_backend/internal/apperrors"
	"github.com/vintagenote/vn_backend/internal/core/domain"
	portsrepo "github.com/vintagenote/vn_backend/internal/core/ports/repositories"
	portssvc "github.com/vintagenote/vn_backend/internal/core/ports/services"
)

type exchangeRateService struct {
	BaseService
	source portsrepo.RateSource
	cache  portsrepo.RateCache
	loc    *time.Location

	// fetchMu keeps concurrent misses from hitting upstream more than once.
	fetchMu sync.Mutex
}

// ExchangeRateOption configures the exchange rate service.
type ExchangeRateOption func(*exchangeRateService)

// WithRateClock overrides the clock used to pick the calendar day.
func WithRateClock(now func() time.Time) ExchangeRateOption {
	return func(s *exchangeRateService) {
		s.Now = now
	}
}

// WithRateLocation sets the timezone whose midnight starts a new rate day.
func WithRateLocation(loc *time.Location) ExchangeRateOption {
	return func(s *exchangeRateService) {
		s.loc = loc
	}
}

// NewExchangeRateService creates a rate provider backed by source and cache.
func NewExchangeRateService(source portsrepo.RateSource, cache portsrepo.RateCache, opts ...ExchangeRateOption) portssvc.ExchangeRateSvcFacade {
	s := &exchangeRateService{
		BaseService: newBaseService(),
		source:      source,
		cache:       cache,
		loc:         time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *exchangeRateService) cached(ctx context.Context, day string) (*domain.RateTable, bool) {
	table, err := s.cache.Get(ctx, day)
	if err != nil {
		if !errors.Is(err, portsrepo.ErrCacheMiss) {
			s.LogError(ctx, err, "Failed to read rate cache", slog.String("day", day))
		}
		return nil, false
	}
	table.Cached = true
	table.Stale = false
	return table, true
}

// GetRates returns the table of the current calendar day. The first call of a day fetches
// upstream; later calls that day are served from the cache. When upstream fails the most
// recent cached table is returned flagged stale, and with no cache at all the call fails
// with apperrors.ErrRateUnavailable.
func (s *exchangeRateService) GetRates(ctx context.Context) (*domain.RateTable, error) {
	now := s.Now()
	day := domain.DayKey(now, s.loc)

	if table, ok := s.cached(ctx, day); ok {
		return table, nil
	}

	s.fetchMu.Lock()
	defer s.fetchMu.Unlock()
	if table, ok := s.cached(ctx, day); ok {
		return table, nil
	}

	fetched, err := s.source.FetchRates(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch exchange rates", slog.String("day", day))
		latest, lerr := s.cache.Latest(ctx)
		if lerr != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrRateUnavailable, err)
		}
		s.LogWarn(ctx, "Serving stale exchange rates", slog.String("day", day), slog.String("stale_day", latest.Day))
		latest.Cached = true
		latest.Stale = true
		return latest, nil
	}

	fetched.Day = day
	if fetched.FetchedAt.IsZero() {
		fetched.FetchedAt = now
	}
	fetched.Cached = false
	fetched.Stale = false
	if err := s.cache.Set(ctx, day, fetched, now); err != nil {
		s.LogError(ctx, err, "Failed to store exchange rates", slog.String("day", day))
	}
	s.LogInfo(ctx, "Fetched exchange rates", slog.String("day", day), slog.String("krw", fetched.Rates[domain.KRW].String()))
	return fetched, nil
}

func (s *exchangeRateService) CurrencyFor(ctx context.Context, code domain.CurrencyCode) (domain.Currency, error) {
	if _, err := domain.ParseCurrencyCode(string(code)); err != nil {
		return domain.Currency{}, err
	}
	table, err := s.GetRates(ctx)
	if err != nil {
		return domain.Currency{}, err
	}
	return table.Currency(code)
}

func (s *exchangeRateService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	table, err := s.GetRates(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Currency, 0, len(domain.SupportedCurrencies))
	for _, code := range domain.SupportedCurrencies {
		c, err := table.Currency(code)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
