package mapping

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/vintagenote/vn_backend/internal/core/domain"
	"github.com/vintagenote/vn_backend/internal/models"
)

// ToModelMoney converts domain Money to its JSONB form.
func ToModelMoney(d domain.Money) models.Money {
	return models.Money{
		Amount:   d.Amount.String(),
		Currency: string(d.Exchange.Code),
		Label:    d.Exchange.Label,
		Rate:     d.Exchange.Rate.String(),
		KRW:      d.Exchange.KRW.String(),
	}
}

// ToModelMoneyPtr converts optional money, keeping nil as nil.
func ToModelMoneyPtr(d *domain.Money) *models.Money {
	if d == nil {
		return nil
	}
	m := ToModelMoney(*d)
	return &m
}

// ToDomainMoney parses the JSONB form back into domain Money.
func ToDomainMoney(m models.Money) (domain.Money, error) {
	amount, err := decimal.NewFromString(m.Amount)
	if err != nil {
		return domain.Money{}, fmt.Errorf("invalid stored amount %q: %w", m.Amount, err)
	}
	rate, err := decimal.NewFromString(m.Rate)
	if err != nil {
		return domain.Money{}, fmt.Errorf("invalid stored rate %q: %w", m.Rate, err)
	}
	krw, err := decimal.NewFromString(m.KRW)
	if err != nil {
		return domain.Money{}, fmt.Errorf("invalid stored krw %q: %w", m.KRW, err)
	}
	code := domain.CurrencyCode(m.Currency)
	label := m.Label
	if label == "" {
		label = code.Label()
	}
	return domain.Money{
		Amount:   amount,
		Exchange: domain.Currency{Code: code, Label: label, Rate: rate, KRW: krw},
	}, nil
}

// ToDomainMoneyPtr converts optional stored money.
func ToDomainMoneyPtr(m *models.Money) (*domain.Money, error) {
	if m == nil {
		return nil, nil
	}
	d, err := ToDomainMoney(*m)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
