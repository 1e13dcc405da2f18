package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/vintagenote/vn_backend/internal/adapters/ratecache"
	"github.com/vintagenote/vn_backend/internal/apperrors"
	"github.com/vintagenote/vn_backend/internal/core/domain"
	portssvc "github.com/vintagenote/vn_backend/internal/core/ports/services"
	"github.com/vintagenote/vn_backend/internal/core/services"
)

var seoul = time.FixedZone("KST", 9*60*60)

func upstreamTable(krw, jpy int64) *domain.RateTable {
	return &domain.RateTable{
		Base: domain.USD,
		Rates: map[domain.CurrencyCode]decimal.Decimal{
			domain.USD: decimal.NewFromInt(1),
			domain.KRW: decimal.NewFromInt(krw),
			domain.JPY: decimal.NewFromInt(jpy),
		},
	}
}

type ExchangeRateServiceTestSuite struct {
	suite.Suite
	source  *MockRateSource
	cache   *ratecache.MemoryCache
	now     time.Time
	service portssvc.ExchangeRateSvcFacade
	ctx     context.Context
}

func (s *ExchangeRateServiceTestSuite) SetupTest() {
	s.source = new(MockRateSource)
	s.cache = ratecache.NewMemoryCache()
	s.now = time.Date(2024, 6, 3, 10, 0, 0, 0, seoul)
	s.service = services.NewExchangeRateService(s.source, s.cache,
		services.WithRateClock(func() time.Time { return s.now }),
		services.WithRateLocation(seoul),
	)
	s.ctx = context.Background()
}

func TestExchangeRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}

func (s *ExchangeRateServiceTestSuite) TestGetRates_SecondCallSameDayIsCached() {
	s.source.On("FetchRates", mock.Anything).Return(upstreamTable(1350, 150), nil).Once()

	first, err := s.service.GetRates(s.ctx)
	s.Require().NoError(err)
	s.False(first.Cached)
	s.Equal("2024-06-03", first.Day)

	s.now = s.now.Add(13 * time.Hour) // 23:00 the same day in Seoul
	second, err := s.service.GetRates(s.ctx)
	s.Require().NoError(err)
	s.True(second.Cached)
	s.False(second.Stale)
	s.Equal("1350", second.Rates[domain.KRW].String())

	s.source.AssertNumberOfCalls(s.T(), "FetchRates", 1)
}

func (s *ExchangeRateServiceTestSuite) TestGetRates_NextDayFetchesAgain() {
	s.source.On("FetchRates", mock.Anything).Return(upstreamTable(1350, 150), nil).Once()
	_, err := s.service.GetRates(s.ctx)
	s.Require().NoError(err)

	s.source.On("FetchRates", mock.Anything).Return(upstreamTable(1360, 151), nil).Once()
	s.now = s.now.Add(14 * time.Hour) // past midnight in Seoul
	next, err := s.service.GetRates(s.ctx)
	s.Require().NoError(err)
	s.False(next.Cached)
	s.Equal("2024-06-04", next.Day)
	s.Equal("1360", next.Rates[domain.KRW].String())

	s.source.AssertNumberOfCalls(s.T(), "FetchRates", 2)
}

func (s *ExchangeRateServiceTestSuite) TestGetRates_UpstreamFailureServesStale() {
	s.source.On("FetchRates", mock.Anything).Return(upstreamTable(1350, 150), nil).Once()
	_, err := s.service.GetRates(s.ctx)
	s.Require().NoError(err)

	s.source.On("FetchRates", mock.Anything).Return(nil, errors.New("upstream down")).Once()
	s.now = s.now.Add(24 * time.Hour)
	table, err := s.service.GetRates(s.ctx)
	s.Require().NoError(err)
	s.True(table.Stale)
	s.Equal("2024-06-03", table.Day)
	s.Equal("1350", table.Rates[domain.KRW].String())
}

func (s *ExchangeRateServiceTestSuite) TestGetRates_NoCacheAndUpstreamFailure() {
	s.source.On("FetchRates", mock.Anything).Return(nil, errors.New("timeout"))

	table, err := s.service.GetRates(s.ctx)
	s.Nil(table)
	s.ErrorIs(err, apperrors.ErrRateUnavailable)

	_, err = s.service.CurrencyFor(s.ctx, domain.USD)
	s.ErrorIs(err, apperrors.ErrRateUnavailable)
}

func (s *ExchangeRateServiceTestSuite) TestCurrencyFor() {
	s.source.On("FetchRates", mock.Anything).Return(upstreamTable(1350, 150), nil).Once()

	jpy, err := s.service.CurrencyFor(s.ctx, domain.JPY)
	s.Require().NoError(err)
	s.Equal(domain.JPY, jpy.Code)
	s.Equal("150", jpy.Rate.String())
	s.Equal("9", jpy.KRW.String())

	krw, err := s.service.CurrencyFor(s.ctx, domain.KRW)
	s.Require().NoError(err)
	s.Equal("1", krw.KRW.String())
	s.Equal("1350", krw.Rate.String())

	_, err = s.service.CurrencyFor(s.ctx, domain.CurrencyCode("EUR"))
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *ExchangeRateServiceTestSuite) TestListCurrencies() {
	s.source.On("FetchRates", mock.Anything).Return(upstreamTable(1350, 150), nil).Once()

	list, err := s.service.ListCurrencies(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 3)
	s.Equal(domain.KRW, list[0].Code)
	s.Equal(domain.USD, list[1].Code)
	s.Equal("1350", list[1].KRW.String())
	s.Equal(domain.JPY, list[2].Code)
}
