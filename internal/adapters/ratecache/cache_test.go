package ratecache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/vintagenote/vn_backend/internal/core/domain"
	portsrepo "github.com/vintagenote/vn_backend/internal/core/ports/repositories"
)

func table(krw int64, day string) *domain.RateTable {
	return &domain.RateTable{
		Base:      domain.USD,
		Rates:     map[domain.CurrencyCode]decimal.Decimal{domain.KRW: decimal.NewFromInt(krw), domain.JPY: decimal.NewFromInt(150)},
		Day:       day,
		FetchedAt: time.Date(2024, 6, 1, 3, 0, 0, 0, time.UTC),
	}
}

// RateCacheSuite runs the same contract against every backend.
type RateCacheSuite struct {
	suite.Suite
	newCache func() portsrepo.RateCache
	cache    portsrepo.RateCache
}

func (s *RateCacheSuite) SetupTest() {
	s.cache = s.newCache()
}

func (s *RateCacheSuite) TestMissOnEmpty() {
	ctx := context.Background()
	_, err := s.cache.Get(ctx, "2024-06-01")
	s.ErrorIs(err, portsrepo.ErrCacheMiss)
	_, err = s.cache.Latest(ctx)
	s.ErrorIs(err, portsrepo.ErrCacheMiss)
}

func (s *RateCacheSuite) TestSetThenGet() {
	ctx := context.Background()
	now := time.Now()
	s.Require().NoError(s.cache.Set(ctx, "2024-06-01", table(1350, "2024-06-01"), now))

	got, err := s.cache.Get(ctx, "2024-06-01")
	s.Require().NoError(err)
	s.Equal("1350", got.Rates[domain.KRW].String())
	s.Equal("2024-06-01", got.Day)

	_, err = s.cache.Get(ctx, "2024-06-02")
	s.ErrorIs(err, portsrepo.ErrCacheMiss)
}

func (s *RateCacheSuite) TestLatestFollowsNewestDay() {
	ctx := context.Background()
	now := time.Now()
	s.Require().NoError(s.cache.Set(ctx, "2024-06-01", table(1350, "2024-06-01"), now))
	s.Require().NoError(s.cache.Set(ctx, "2024-06-02", table(1360, "2024-06-02"), now.Add(24*time.Hour)))

	latest, err := s.cache.Latest(ctx)
	s.Require().NoError(err)
	s.Equal("2024-06-02", latest.Day)
	s.Equal("1360", latest.Rates[domain.KRW].String())
}

func TestMemoryCache(t *testing.T) {
	suite.Run(t, &RateCacheSuite{newCache: func() portsrepo.RateCache { return NewMemoryCache() }})
}

// The redis backend is exercised only when a server is available.
func TestRedisCache(t *testing.T) {
	addr := os.Getenv("VN_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("VN_TEST_REDIS_ADDR not set")
	}
	client := NewRedisClient(addr, "", 15)
	t.Cleanup(func() { _ = client.Close() })

	suite.Run(t, &RateCacheSuite{newCache: func() portsrepo.RateCache {
		require.NoError(t, client.FlushDB(context.Background()).Err())
		return NewRedisCache(client)
	}})
}

func TestMemoryCache_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	original := table(1350, "2024-06-01")
	require.NoError(t, c.Set(ctx, "2024-06-01", original, time.Now()))

	original.Rates[domain.KRW] = decimal.Zero
	got, err := c.Get(ctx, "2024-06-01")
	require.NoError(t, err)
	got.Rates[domain.KRW] = decimal.NewFromInt(1)

	again, err := c.Get(ctx, "2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, "1350", again.Rates[domain.KRW].String())
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				_ = c.Set(ctx, "2024-06-01", table(1350, "2024-06-01"), time.Now())
				_, _ = c.Get(ctx, "2024-06-01")
				_, _ = c.Latest(ctx)
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
	_, err := c.Latest(ctx)
	assert.NoError(t, err)
}
