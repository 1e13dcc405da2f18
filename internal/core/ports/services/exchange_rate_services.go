package services

import (
	"context"

	"github.com/vintagenote/vn_backend/internal/core/domain"
)

// ExchangeRateSvcFacade exposes the rate table of the current day.
type ExchangeRateSvcFacade interface {
	// GetRates returns today's table, fetching it at most once per calendar day.
	GetRates(ctx context.Context) (*domain.RateTable, error)

	// CurrencyFor derives the conversion snapshot of code from today's table.
	CurrencyFor(ctx context.Context, code domain.CurrencyCode) (domain.Currency, error)

	// ListCurrencies returns every supported currency in display order.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}
