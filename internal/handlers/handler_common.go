package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/vintagenote/vn_backend/internal/apperrors"
	"github.com/vintagenote/vn_backend/internal/core/domain"
	portssvc "github.com/vintagenote/vn_backend/internal/core/ports/services"
	"github.com/vintagenote/vn_backend/internal/middleware"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

var registerValidatorsOnce sync.Once

// RegisterValidators adds the custom binding tags used by the DTOs to gin's validator.
func RegisterValidators() error {
	return registerValidatorsOn(binding.Validator)
}

func registerValidatorsOn(sv binding.StructValidator) error {
	v, ok := sv.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine %T", sv.Engine())
	}
	err := v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseCurrencyCode(fl.Field().String())
		return err == nil
	})
	if err != nil {
		return fmt.Errorf("failed to register currency validator: %w", err)
	}
	return nil
}

// mustRegisterValidators panics if the custom tags cannot be registered.
func mustRegisterValidators() {
	registerValidatorsOnce.Do(func() {
		if err := RegisterValidators(); err != nil {
			panic(err)
		}
	})
}

// respondError writes err with the status its sentinel maps to. Internal errors are
// logged and hidden behind fallback.
func respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(status, ErrorResponse{Error: fallback})
		return
	}
	logger.Warn(fallback, slog.String("error", err.Error()), slog.Int("status", status))
	c.JSON(status, ErrorResponse{Error: err.Error()})
}

func badRequest(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Invalid request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
}

// requireUserID reads the authenticated user or aborts with 401.
func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	}
	return userID, ok
}

// resolveView parses the view query value, defaulting to KRW, and applies the grade gate.
func resolveView(c *gin.Context, users portssvc.UserReaderSvc, userID, raw string) (domain.CurrencyCode, error) {
	if raw == "" {
		return domain.KRW, nil
	}
	view, err := domain.ParseCurrencyCode(raw)
	if err != nil {
		return "", err
	}
	if err := users.CheckCurrencyAccess(c.Request.Context(), userID, view); err != nil {
		return "", err
	}
	return view, nil
}

// monthParser turns "YYYY-MM" into a period in the configured timezone.
type monthParser struct {
	loc *time.Location
	now func() time.Time
}

func newMonthParser(loc *time.Location) monthParser {
	if loc == nil {
		loc = time.UTC
	}
	return monthParser{loc: loc, now: time.Now}
}

func (p monthParser) parse(month string) (domain.Period, error) {
	return domain.ParseMonthPeriod(month, p.now(), p.loc)
}
