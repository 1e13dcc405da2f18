package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/vintagenote/vn_backend/internal/core/domain"
)

// RateTableResponse exposes the rate table of the day.
type RateTableResponse struct {
	Base      string                     `json:"base"`
	Rates     map[string]decimal.Decimal `json:"rates"`
	Day       string                     `json:"day"`
	FetchedAt time.Time                  `json:"fetchedAt"`
	Cached    bool                       `json:"cached"`
	Stale     bool                       `json:"stale"`
}

func ToRateTableResponse(t *domain.RateTable) RateTableResponse {
	rates := make(map[string]decimal.Decimal, len(t.Rates))
	for code, r := range t.Rates {
		rates[string(code)] = r
	}
	return RateTableResponse{
		Base:      string(t.Base),
		Rates:     rates,
		Day:       t.Day,
		FetchedAt: t.FetchedAt,
		Cached:    t.Cached,
		Stale:     t.Stale,
	}
}

// CurrencyResponse is one conversion snapshot.
type CurrencyResponse struct {
	Code  string          `json:"code"`
	Label string          `json:"label"`
	Rate  decimal.Decimal `json:"rate"`
	KRW   decimal.Decimal `json:"krw"`
}

func ToCurrencyResponse(c domain.Currency) CurrencyResponse {
	return CurrencyResponse{Code: string(c.Code), Label: c.Label, Rate: c.Rate, KRW: c.KRW}
}

func ToListCurrencyResponse(cs []domain.Currency) []CurrencyResponse {
	out := make([]CurrencyResponse, len(cs))
	for i, c := range cs {
		out[i] = ToCurrencyResponse(c)
	}
	return out
}

// DisplayPriceParams renders an ad hoc amount of a currency.
type DisplayPriceParams struct {
	Amount string `form:"amount" binding:"required"`
	View   string `form:"view" binding:"required"`
}

// DisplayPriceResponse carries the formatted price, or "N/A" with an error.
type DisplayPriceResponse struct {
	Display string `json:"display"`
	Error   string `json:"error,omitempty"`
}
