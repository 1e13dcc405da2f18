package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vintagenote/vn_backend/internal/core/domain"
)

type mockRates struct {
	mock.Mock
}

func (m *mockRates) GetRates(ctx context.Context) (*domain.RateTable, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateTable), args.Error(1)
}

func (m *mockRates) CurrencyFor(ctx context.Context, code domain.CurrencyCode) (domain.Currency, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(domain.Currency), args.Error(1)
}

func (m *mockRates) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestAddRateWarmup_InvalidSchedule(t *testing.T) {
	s := New(time.UTC, quietLogger())
	err := s.AddRateWarmup("every day", new(mockRates))
	assert.ErrorContains(t, err, "invalid rate warmup schedule")
}

func TestAddRateWarmup_Schedules(t *testing.T) {
	seoul := time.FixedZone("KST", 9*3600)
	s := New(seoul, quietLogger())
	require.NoError(t, s.AddRateWarmup("5 0 * * *", new(mockRates)))

	entries := s.cron.Entries()
	require.Len(t, entries, 1)
	from := time.Date(2024, 6, 3, 12, 0, 0, 0, seoul)
	assert.Equal(t, time.Date(2024, 6, 4, 0, 5, 0, 0, seoul), entries[0].Schedule.Next(from))
}

func TestWarmRates(t *testing.T) {
	rates := new(mockRates)
	rates.On("GetRates", mock.Anything).Return(&domain.RateTable{Day: "2024-06-04"}, nil).Once()
	rates.On("GetRates", mock.Anything).Return(nil, errors.New("upstream down")).Once()

	s := New(time.UTC, quietLogger())
	s.warmRates(rates)
	s.warmRates(rates)

	rates.AssertNumberOfCalls(t, "GetRates", 2)
}

func TestWarmRates_RecoversPanic(t *testing.T) {
	rates := new(mockRates)
	rates.On("GetRates", mock.Anything).Run(func(mock.Arguments) { panic("boom") })

	s := New(time.UTC, quietLogger())
	assert.NotPanics(t, func() { s.warmRates(rates) })
}

func TestStartStop(t *testing.T) {
	s := New(nil, nil)
	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
