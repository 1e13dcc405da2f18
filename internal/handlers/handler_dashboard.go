package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vintagenote/vn_backend/internal/core/domain"
	portssvc "github.com/vintagenote/vn_backend/internal/core/ports/services"
	"github.com/vintagenote/vn_backend/internal/dto"
)

type dashboardHandler struct {
	dashboardService portssvc.DashboardSvc
	months           monthParser
}

// RegisterDashboardRoutes registers the monthly dashboard route.
func RegisterDashboardRoutes(rg *gin.RouterGroup, dashboard portssvc.DashboardSvc, loc *time.Location) {
	mustRegisterValidators()
	h := &dashboardHandler{dashboardService: dashboard, months: newMonthParser(loc)}
	rg.GET("/dashboard", h.getDashboard)
}

// getDashboard godoc
// @Summary Monthly dashboard
// @Description Totals of the products created in the month. Pro users also get category and daily breakdowns.
// @Tags dashboard
// @Produce json
// @Param month query string false "Month as YYYY-MM, defaults to the current month"
// @Param view query string false "View currency" Enums(KRW, USD)
// @Success 200 {object} dto.DashboardResponse
// @Failure 400 {object} ErrorResponse "Invalid month or unsupported view"
// @Failure 403 {object} ErrorResponse "View requires the pro grade"
// @Failure 503 {object} ErrorResponse "No rate available for the USD view"
// @Security BearerAuth
// @Router /dashboard [get]
func (h *dashboardHandler) getDashboard(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.DashboardParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, err)
		return
	}
	period, err := h.months.parse(params.Month)
	if err != nil {
		respondError(c, err, "Invalid month")
		return
	}
	view := domain.KRW
	if params.View != "" {
		if view, err = domain.ParseCurrencyCode(params.View); err != nil {
			respondError(c, err, "Invalid view")
			return
		}
	}

	resp, err := h.dashboardService.GetDashboard(c.Request.Context(), userID, period, view)
	if err != nil {
		respondError(c, err, "Failed to build dashboard")
		return
	}
	c.JSON(http.StatusOK, resp)
}
