package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/vintagenote/vn_backend/internal/apperrors"
	"github.com/vintagenote/vn_backend/internal/core/domain"
	portssvc "github.com/vintagenote/vn_backend/internal/core/ports/services"
	"github.com/vintagenote/vn_backend/internal/dto"
	"github.com/vintagenote/vn_backend/internal/utils"
)

// exchangeRateHandler serves the daily rate table and price rendering.
type exchangeRateHandler struct {
	rateService portssvc.ExchangeRateSvcFacade
	userService portssvc.UserReaderSvc
}

// RegisterExchangeRateRoutes registers rate and currency routes.
func RegisterExchangeRateRoutes(rg *gin.RouterGroup, rates portssvc.ExchangeRateSvcFacade, users portssvc.UserReaderSvc) {
	mustRegisterValidators()
	h := &exchangeRateHandler{rateService: rates, userService: users}

	rg.GET("/rates", h.getRates)
	currencies := rg.Group("/currencies")
	{
		currencies.GET("", h.listCurrencies)
		currencies.GET("/:code/display", h.displayPrice)
	}
}

// getRates godoc
// @Summary Get today's rate table
// @Description Returns the USD based rate table, fetched at most once per day.
// @Tags rates
// @Produce json
// @Success 200 {object} dto.RateTableResponse
// @Failure 503 {object} ErrorResponse "No rate available"
// @Security BearerAuth
// @Router /rates [get]
func (h *exchangeRateHandler) getRates(c *gin.Context) {
	table, err := h.rateService.GetRates(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to retrieve exchange rates")
		return
	}
	c.JSON(http.StatusOK, dto.ToRateTableResponse(table))
}

// listCurrencies godoc
// @Summary List supported currencies
// @Description Lists KRW, USD and JPY with today's conversion snapshot.
// @Tags rates
// @Produce json
// @Success 200 {array} dto.CurrencyResponse
// @Failure 503 {object} ErrorResponse
// @Security BearerAuth
// @Router /currencies [get]
func (h *exchangeRateHandler) listCurrencies(c *gin.Context) {
	currencies, err := h.rateService.ListCurrencies(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list currencies")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCurrencyResponse(currencies))
}

// displayPrice godoc
// @Summary Render an amount in a view currency
// @Description Converts amount of the path currency at today's rate. Views without a rendering yield "N/A" and an error.
// @Tags rates
// @Produce json
// @Param code path string true "Currency of the amount" Enums(KRW, USD, JPY)
// @Param amount query string true "Amount in the path currency"
// @Param view query string true "View currency" Enums(KRW, USD, JPY)
// @Success 200 {object} dto.DisplayPriceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Grade does not allow the currency"
// @Security BearerAuth
// @Router /currencies/{code}/display [get]
func (h *exchangeRateHandler) displayPrice(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.DisplayPriceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, err)
		return
	}
	code, err := domain.ParseCurrencyCode(c.Param("code"))
	if err != nil {
		respondError(c, err, "Invalid currency")
		return
	}
	amount, err := decimal.NewFromString(params.Amount)
	if err != nil {
		respondError(c, fmt.Errorf("%w: amount must be a number", apperrors.ErrValidation), "Invalid amount")
		return
	}
	if amount.Abs().GreaterThan(domain.MaxAmount) {
		respondError(c, fmt.Errorf("%w: amount cannot exceed %s", apperrors.ErrValidation, domain.MaxAmount), "Invalid amount")
		return
	}
	if err := h.userService.CheckCurrencyAccess(c.Request.Context(), userID, code); err != nil {
		respondError(c, err, "Invalid currency")
		return
	}
	view, err := resolveView(c, h.userService, userID, params.View)
	if err != nil {
		respondError(c, err, "Invalid view")
		return
	}

	currency, err := h.rateService.CurrencyFor(c.Request.Context(), code)
	if err != nil {
		respondError(c, err, "Failed to resolve exchange rate")
		return
	}
	display, err := utils.FormatDisplayPrice(view, domain.Money{Amount: amount, Exchange: currency})
	if err != nil {
		if errors.Is(err, apperrors.ErrUnsupportedView) || errors.Is(err, apperrors.ErrRateUnavailable) {
			c.JSON(http.StatusOK, dto.DisplayPriceResponse{Display: utils.UnsupportedDisplay, Error: err.Error()})
			return
		}
		respondError(c, err, "Failed to render price")
		return
	}
	c.JSON(http.StatusOK, dto.DisplayPriceResponse{Display: display})
}
