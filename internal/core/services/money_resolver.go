package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/vintagenote/vn_backend/internal/apperrors"
	"github.com/vintagenote/vn_backend/internal/core/domain"
	portssvc "github.com/vintagenote/vn_backend/internal/core/ports/services"
	"github.com/vintagenote/vn_backend/internal/dto"
)

// moneyResolver turns user input into Money carrying the conversion snapshot of the day.
type moneyResolver struct {
	rates portssvc.ExchangeRateSvcFacade
}

func (r moneyResolver) resolve(ctx context.Context, user *domain.User, in dto.MoneyInput) (domain.Money, error) {
	code, err := domain.ParseCurrencyCode(in.Currency)
	if err != nil {
		return domain.Money{}, err
	}
	if !user.CanUseCurrency(code) {
		return domain.Money{}, fmt.Errorf("%w: %s amounts require the pro grade", apperrors.ErrForbidden, code)
	}
	if in.Amount == nil {
		return domain.Money{}, fmt.Errorf("%w: amount is required", apperrors.ErrValidation)
	}
	if in.Amount.IsNegative() {
		return domain.Money{}, fmt.Errorf("%w: amount cannot be negative", apperrors.ErrValidation)
	}

	exchange, err := r.rates.CurrencyFor(ctx, code)
	if err != nil {
		// Won amounts keep their value without rates; only the USD view is lost.
		if code != domain.KRW || !errors.Is(err, apperrors.ErrRateUnavailable) {
			return domain.Money{}, err
		}
		exchange = domain.KRWCurrency(decimal.Zero)
	}

	m := domain.Money{Amount: *in.Amount, Exchange: exchange}
	if err := m.Validate(); err != nil {
		return domain.Money{}, err
	}
	return m, nil
}

func (r moneyResolver) resolveOptional(ctx context.Context, user *domain.User, in *dto.MoneyInput) (*domain.Money, error) {
	if in == nil {
		return nil, nil
	}
	m, err := r.resolve(ctx, user, *in)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
