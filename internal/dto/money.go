package dto

import (
	"github.com/shopspring/decimal"
	"github.com/vintagenote/vn_backend/internal/core/domain"
	"github.com/vintagenote/vn_backend/internal/utils"
)

// MoneyInput is an amount typed by the user. The conversion snapshot is resolved server side.
type MoneyInput struct {
	Amount   *decimal.Decimal `json:"amount" binding:"required" swaggertype:"string" example:"100.50"`
	Currency string           `json:"currency" binding:"required,currency" example:"USD"`
}

// MoneyResponse exposes a stored Money value together with its won value.
type MoneyResponse struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Label    string          `json:"label"`
	Rate     decimal.Decimal `json:"rate"`
	KRW      decimal.Decimal `json:"krw"`
	KRWValue decimal.Decimal `json:"krwValue"`
}

func ToMoneyResponse(m *domain.Money) *MoneyResponse {
	if m == nil {
		return nil
	}
	return &MoneyResponse{
		Amount:   m.Amount,
		Currency: string(m.Exchange.Code),
		Label:    m.Exchange.Label,
		Rate:     m.Exchange.Rate,
		KRW:      m.Exchange.KRW,
		KRWValue: m.KRWValue(),
	}
}

// displayCollector renders several prices in one view and keeps the first failure.
type displayCollector struct {
	view domain.CurrencyCode
	err  error
}

func (d *displayCollector) price(m *domain.Money) string {
	if m == nil {
		return ""
	}
	s, err := utils.FormatDisplayPrice(d.view, *m)
	if err != nil {
		if d.err == nil {
			d.err = err
		}
		return utils.UnsupportedDisplay
	}
	return s
}

// won renders a KRW amount using krwPerUSD for the USD view.
func (d *displayCollector) won(amount *decimal.Decimal, krwPerUSD decimal.Decimal) string {
	if amount == nil {
		return ""
	}
	return d.price(&domain.Money{Amount: *amount, Exchange: domain.KRWCurrency(krwPerUSD)})
}

func (d *displayCollector) errorString() string {
	if d.err == nil {
		return ""
	}
	return d.err.Error()
}
