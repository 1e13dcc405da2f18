package utils

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vintagenote/vn_backend/internal/apperrors"
	"github.com/vintagenote/vn_backend/internal/core/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// UnsupportedDisplay is rendered in place of a price that could not be converted.
// It is deliberately non-numeric.
const UnsupportedDisplay = "N/A"

var groupingPrinter = message.NewPrinter(language.English)

// FormatDisplayPrice renders money in the requested view currency.
// Example: 100 USD at 1350 KRW/USD viewed in KRW returns "135,000 ₩"
// Example: 135000 KRW at 1350 KRW/USD viewed in USD returns "100 $"
func FormatDisplayPrice(view domain.CurrencyCode, m domain.Money) (string, error) {
	switch view {
	case domain.KRW:
		return FormatWholeUnits(m.Amount.Mul(m.Exchange.KRW), domain.KRW), nil
	case domain.USD:
		if !m.Exchange.Rate.IsPositive() {
			return "", fmt.Errorf("%w: no USD rate recorded for %s amount", apperrors.ErrRateUnavailable, m.Exchange.Code)
		}
		return FormatWholeUnits(m.Amount.Div(m.Exchange.Rate), domain.USD), nil
	default:
		return "", fmt.Errorf("%w: '%s'", apperrors.ErrUnsupportedView, view)
	}
}

var (
	minInt64 = decimal.NewFromInt(math.MinInt64)
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
)

// FormatWholeUnits rounds half away from zero and adds grouping and the currency symbol.
func FormatWholeUnits(amount decimal.Decimal, code domain.CurrencyCode) string {
	rounded := amount.Round(0)
	if rounded.LessThan(minInt64) || rounded.GreaterThan(maxInt64) {
		return groupDigits(rounded.String()) + " " + code.Label()
	}
	return groupingPrinter.Sprintf("%d %s", rounded.IntPart(), code.Label())
}

// groupDigits inserts thousands separators into an integer string.
func groupDigits(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String()
}

// ConvertKRW expresses a won amount in the view currency, in whole units.
// krwPerUSD is only needed for the USD view.
func ConvertKRW(amountKRW decimal.Decimal, view domain.CurrencyCode, krwPerUSD decimal.Decimal) (decimal.Decimal, error) {
	switch view {
	case domain.KRW:
		return amountKRW.Round(0), nil
	case domain.USD:
		if !krwPerUSD.IsPositive() {
			return decimal.Zero, apperrors.ErrRateUnavailable
		}
		return amountKRW.Div(krwPerUSD).Round(0), nil
	default:
		return decimal.Zero, fmt.Errorf("%w: '%s'", apperrors.ErrUnsupportedView, view)
	}
}
