package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/rodrigovixc/finance-bolt/internal/errors"
	"github.com/rodrigovixc/finance-bolt/internal/services"
	"github.com/rodrigovixc/finance-bolt/internal/summary"
)

// monthLayout is the wire format for the dashboard month parameter.
const monthLayout = "2006-01"

// DashboardHandler handles dashboard aggregation requests.
type DashboardHandler struct {
	dashboardService services.DashboardServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService services.DashboardServicer) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetDashboard returns every aggregated view the dashboard renders
// @Summary     Get dashboard
// @Description Get totals, monthly flow, running balance, per-card and per-category groupings, installment plans and recent activity
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Param       month query string false "Month to narrow the monthly flow and running balance to (YYYY-MM, default current month)"
// @Param       installment_mode query string false "Installment aggregation: rows (default) or purchases"
// @Success     200 {object} services.Dashboard "Dashboard views"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	now := time.Now()
	year, month := now.Year(), now.Month()
	if raw := c.Query("month"); raw != "" {
		parsed, err := time.Parse(monthLayout, raw)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be in YYYY-MM format"))
			return
		}
		year, month = parsed.Year(), parsed.Month()
	}

	mode, ok := summary.ParseInstallmentMode(c.Query("installment_mode"))
	if !ok {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "installment_mode must be rows or purchases"))
		return
	}

	dashboard, err := h.dashboardService.GetDashboard(c.Request.Context(), userID, year, month, mode)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
