package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vintagenote/vn_backend/internal/apperrors"
)

// CurrencyCode identifies one of the currencies the application tracks.
type CurrencyCode string

const (
	KRW CurrencyCode = "KRW"
	USD CurrencyCode = "USD"
	JPY CurrencyCode = "JPY"
)

// SupportedCurrencies lists every currency in display order.
var SupportedCurrencies = []CurrencyCode{KRW, USD, JPY}

var currencyLabels = map[CurrencyCode]string{
	KRW: "₩",
	USD: "$",
	JPY: "¥",
}

// ParseCurrencyCode normalizes and validates a currency code.
func ParseCurrencyCode(s string) (CurrencyCode, error) {
	code := CurrencyCode(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := currencyLabels[code]; !ok {
		return "", fmt.Errorf("%w: unsupported currency code '%s'", apperrors.ErrValidation, s)
	}
	return code, nil
}

// Label returns the display symbol for the code.
func (c CurrencyCode) Label() string {
	return currencyLabels[c]
}

// Currency is a point-in-time conversion snapshot for one currency.
type Currency struct {
	Code  CurrencyCode    `json:"code"`  // e.g. "USD"
	Label string          `json:"label"` // e.g. "$"
	Rate  decimal.Decimal `json:"rate"`  // units of this currency per 1 USD; zero when unknown
	KRW   decimal.Decimal `json:"krw"`   // units of KRW per 1 unit of this currency
}

// KRWCurrency builds the home currency. krwPerUSD may be zero when no rate table is
// available; the USD view is then reported as unavailable.
func KRWCurrency(krwPerUSD decimal.Decimal) Currency {
	return Currency{
		Code:  KRW,
		Label: KRW.Label(),
		Rate:  krwPerUSD,
		KRW:   decimal.NewFromInt(1),
	}
}

// KRWPerUSD is the pivot rate implied by this snapshot.
func (c Currency) KRWPerUSD() decimal.Decimal {
	return c.KRW.Mul(c.Rate)
}

// Validate checks the invariants of a currency snapshot.
func (c Currency) Validate() error {
	if _, ok := currencyLabels[c.Code]; !ok {
		return fmt.Errorf("%w: currency code is missing or unsupported", apperrors.ErrValidation)
	}
	if !c.KRW.IsPositive() {
		return fmt.Errorf("%w: %s conversion to KRW must be positive", apperrors.ErrValidation, c.Code)
	}
	if c.Rate.IsNegative() {
		return fmt.Errorf("%w: %s rate cannot be negative", apperrors.ErrValidation, c.Code)
	}
	return nil
}
