package ratesource

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/guonaihong/gout"
	"github.com/shopspring/decimal"
	"github.com/vintagenote/vn_backend/internal/core/domain"
	portsrepo "github.com/vintagenote/vn_backend/internal/core/ports/repositories"
)

// apiResponse is the subset of the open.er-api.com payload that is consumed.
type apiResponse struct {
	Result    string                     `json:"result"`
	ErrorType string                     `json:"error-type"`
	BaseCode  string                     `json:"base_code"`
	Rates     map[string]decimal.Decimal `json:"rates"`
}

// HTTPSource fetches the USD based rate table from a JSON HTTP API.
type HTTPSource struct {
	url     string
	timeout time.Duration
	now     func() time.Time
}

var _ portsrepo.RateSource = (*HTTPSource)(nil)

// NewHTTPSource builds a source for url with a per-request timeout.
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		url:     url,
		timeout: timeout,
		now:     time.Now,
	}
}

// FetchRates performs one upstream request. A table without a positive KRW rate is an error.
func (s *HTTPSource) FetchRates(ctx context.Context) (*domain.RateTable, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	var (
		payload apiResponse
		code    int
	)
	err := gout.GET(s.url).
		WithContext(ctx).
		SetHeader(gout.H{"Accept": "application/json"}).
		BindJSON(&payload).
		Code(&code).
		Do()
	if code != 0 && code != http.StatusOK {
		return nil, fmt.Errorf("rate api returned non-200 status: %d", code)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rates: %w", err)
	}

	if payload.Result != "" && payload.Result != "success" {
		return nil, fmt.Errorf("rate api reported %q: %s", payload.Result, payload.ErrorType)
	}
	if payload.BaseCode != "" && !strings.EqualFold(payload.BaseCode, string(domain.USD)) {
		return nil, fmt.Errorf("rate api returned base %q, expected USD", payload.BaseCode)
	}

	table := &domain.RateTable{
		Base:      domain.USD,
		Rates:     make(map[domain.CurrencyCode]decimal.Decimal, len(domain.SupportedCurrencies)),
		FetchedAt: s.now(),
	}
	for _, c := range domain.SupportedCurrencies {
		if r, ok := payload.Rates[string(c)]; ok {
			table.Rates[c] = r
		}
	}
	if krw := table.Rates[domain.KRW]; !krw.IsPositive() {
		return nil, fmt.Errorf("rate api response has no usable KRW rate")
	}
	return table, nil
}
