package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/vintagenote/vn_backend/internal/apperrors"
)

// MaxAmount caps any recorded amount or sale price so whole-unit values stay within int64.
var MaxAmount = decimal.New(1, 12)

// Money is an amount denominated in Exchange.Code together with the conversion snapshot
// that was current when the amount was recorded.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Exchange Currency        `json:"exchange"`
}

// KRWValue converts the amount to whole won, rounding half away from zero.
func (m Money) KRWValue() decimal.Decimal {
	return m.Amount.Mul(m.Exchange.KRW).Round(0)
}

// Validate checks that the amount is within range and the snapshot is usable.
func (m Money) Validate() error {
	if m.Amount.IsNegative() {
		return fmt.Errorf("%w: amount cannot be negative", apperrors.ErrValidation)
	}
	if m.Amount.GreaterThan(MaxAmount) {
		return fmt.Errorf("%w: amount cannot exceed %s", apperrors.ErrValidation, MaxAmount)
	}
	return m.Exchange.Validate()
}

// KRWValueOrZero treats a missing value as zero won.
func KRWValueOrZero(m *Money) decimal.Decimal {
	if m == nil {
		return decimal.Zero
	}
	return m.KRWValue()
}
