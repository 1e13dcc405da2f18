package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/vintagenote/vn_backend/internal/core/domain"
)

// ErrCacheMiss is returned by RateCache lookups that found nothing.
var ErrCacheMiss = errors.New("rate cache miss")

// RateSource fetches the current USD based rate table from upstream.
type RateSource interface {
	FetchRates(ctx context.Context) (*domain.RateTable, error)
}

// RateCache stores one rate table per calendar day.
type RateCache interface {
	// Get returns the table stored under dayKey or ErrCacheMiss.
	Get(ctx context.Context, dayKey string) (*domain.RateTable, error)

	// Set stores table under dayKey and records it as the latest known table.
	Set(ctx context.Context, dayKey string, table *domain.RateTable, observedAt time.Time) error

	// Latest returns the most recently stored table of any day or ErrCacheMiss.
	Latest(ctx context.Context) (*domain.RateTable, error)
}
