package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vintagenote/vn_backend/internal/apperrors"
)

const dayKeyLayout = "2006-01-02"

// RateTable is a USD based rate table as returned by the upstream rate API.
type RateTable struct {
	Base      CurrencyCode                     `json:"base"`
	Rates     map[CurrencyCode]decimal.Decimal `json:"rates"` // units of currency per 1 Base
	Day       string                           `json:"day"`   // calendar day the table was fetched for
	FetchedAt time.Time                        `json:"fetchedAt"`
	Cached    bool                             `json:"cached"`
	Stale     bool                             `json:"stale"` // served from an older day after an upstream failure
}

// DayKey returns the calendar day of t in loc, used as the rate cache key.
func DayKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(dayKeyLayout)
}

// Clone returns a deep copy so cached tables are never mutated by callers.
func (t *RateTable) Clone() *RateTable {
	if t == nil {
		return nil
	}
	c := *t
	c.Rates = make(map[CurrencyCode]decimal.Decimal, len(t.Rates))
	for k, v := range t.Rates {
		c.Rates[k] = v
	}
	return &c
}

func (t *RateTable) positiveRate(code CurrencyCode) (decimal.Decimal, error) {
	if code == USD {
		return decimal.NewFromInt(1), nil
	}
	r, ok := t.Rates[code]
	if !ok || !r.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: no usable %s rate", apperrors.ErrRateUnavailable, code)
	}
	return r, nil
}

// Currency derives the conversion snapshot for code from the table.
func (t *RateTable) Currency(code CurrencyCode) (Currency, error) {
	if t == nil {
		return Currency{}, apperrors.ErrRateUnavailable
	}
	krwPerUSD, err := t.positiveRate(KRW)
	if err != nil {
		return Currency{}, err
	}

	switch code {
	case KRW:
		return KRWCurrency(krwPerUSD), nil
	case USD:
		return Currency{Code: USD, Label: USD.Label(), Rate: decimal.NewFromInt(1), KRW: krwPerUSD}, nil
	case JPY:
		jpyPerUSD, err := t.positiveRate(JPY)
		if err != nil {
			return Currency{}, err
		}
		return Currency{Code: JPY, Label: JPY.Label(), Rate: jpyPerUSD, KRW: krwPerUSD.Div(jpyPerUSD)}, nil
	default:
		return Currency{}, fmt.Errorf("%w: unsupported currency code '%s'", apperrors.ErrValidation, code)
	}
}
