package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/SscSPs/builder_crm/internal/core/ports/services"
	"github.com/SscSPs/builder_crm/internal/dto"
	"github.com/gin-gonic/gin"
)

// dashboardHandler serves the derived financial and follow-up views.
type dashboardHandler struct {
	financeService  portssvc.FinanceSvc
	followupService portssvc.FollowupSvc
	clock           func() time.Time
}

func newDashboardHandler(fs portssvc.FinanceSvc, fus portssvc.FollowupSvc) *dashboardHandler {
	return &dashboardHandler{financeService: fs, followupService: fus, clock: time.Now}
}

func registerDashboardRoutes(rg *gin.RouterGroup, fs portssvc.FinanceSvc, fus portssvc.FollowupSvc) {
	h := newDashboardHandler(fs, fus)

	dashboard := rg.Group("/dashboard")
	{
		dashboard.GET("/overview", h.overview)
		dashboard.GET("/profit-summary", h.profitSummary)
		dashboard.GET("/followup-alerts", h.followupAlerts)
	}
}

// overview godoc
// @Summary Company overview
// @Description Totals, lead funnel and the most recent leads and bookings.
// @Tags dashboard
// @Produce  json
// @Success 200 {object} domain.TenantOverview
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard/overview [get]
func (h *dashboardHandler) overview(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	overview, err := h.financeService.TenantOverview(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err, "build overview")
		return
	}
	c.JSON(http.StatusOK, overview)
}

// profitSummary godoc
// @Summary Profit per project
// @Tags dashboard
// @Produce  json
// @Success 200 {array} domain.ProjectProfit
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard/profit-summary [get]
func (h *dashboardHandler) profitSummary(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	profits, err := h.financeService.ProjectProfitSummary(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err, "build profit summary")
		return
	}
	c.JSON(http.StatusOK, profits)
}

// followupAlerts godoc
// @Summary Follow-up alerts
// @Description Leads due today and overdue. date overrides today (YYYY-MM-DD).
// @Tags dashboard
// @Produce  json
// @Param   date query string false "Reference day"
// @Success 200 {object} domain.FollowupAlerts
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard/followup-alerts [get]
func (h *dashboardHandler) followupAlerts(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}

	now := h.clock()
	if raw := c.Query("date"); raw != "" {
		at, _, err := dto.ParseDate(raw, h.followupService.Location())
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		now = at
	}

	alerts, err := h.followupService.FollowupAlerts(c.Request.Context(), identity, now)
	if err != nil {
		respondError(c, err, "compute follow-up alerts")
		return
	}
	c.JSON(http.StatusOK, alerts)
}
