package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rodrigovixc/finance-bolt/internal/services"
	"github.com/rodrigovixc/finance-bolt/internal/summary"
)

// --- mock dashboard service ---

type mockDashboardService struct {
	getDashboardFn func(ctx context.Context, userID uint, year int, month time.Month, mode summary.InstallmentMode) (*services.Dashboard, error)
}

func (m *mockDashboardService) GetDashboard(ctx context.Context, userID uint, year int, month time.Month, mode summary.InstallmentMode) (*services.Dashboard, error) {
	if m.getDashboardFn != nil {
		return m.getDashboardFn(ctx, userID, year, month, mode)
	}
	return &services.Dashboard{}, nil
}

var _ services.DashboardServicer = (*mockDashboardService)(nil)

func setupDashboardRouter(handler *DashboardHandler) *gin.Engine {
	r := gin.New()
	r.GET("/dashboard", injectUserID(1), handler.GetDashboard)
	return r
}

func TestDashboardHandler_GetDashboard(t *testing.T) {
	t.Run("passes parsed month and mode", func(t *testing.T) {
		var gotYear int
		var gotMonth time.Month
		var gotMode summary.InstallmentMode
		svc := &mockDashboardService{
			getDashboardFn: func(_ context.Context, _ uint, year int, month time.Month, mode summary.InstallmentMode) (*services.Dashboard, error) {
				gotYear, gotMonth, gotMode = year, month, mode
				return &services.Dashboard{Month: "2026-03"}, nil
			},
		}
		r := setupDashboardRouter(NewDashboardHandler(svc))

		rec := doRequest(r, http.MethodGet, "/dashboard?month=2026-03&installment_mode=purchases", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotYear != 2026 || gotMonth != time.March {
			t.Errorf("expected March 2026, got %d-%d", gotYear, gotMonth)
		}
		if gotMode != summary.ModeByPurchase {
			t.Errorf("expected purchases mode, got %q", gotMode)
		}
	})

	t.Run("defaults to the current month and per-row mode", func(t *testing.T) {
		var gotYear int
		var gotMonth time.Month
		var gotMode summary.InstallmentMode
		svc := &mockDashboardService{
			getDashboardFn: func(_ context.Context, _ uint, year int, month time.Month, mode summary.InstallmentMode) (*services.Dashboard, error) {
				gotYear, gotMonth, gotMode = year, month, mode
				return &services.Dashboard{}, nil
			},
		}
		r := setupDashboardRouter(NewDashboardHandler(svc))

		rec := doRequest(r, http.MethodGet, "/dashboard", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		now := time.Now()
		if gotYear != now.Year() || gotMonth != now.Month() {
			t.Errorf("expected current month, got %d-%d", gotYear, gotMonth)
		}
		if gotMode != summary.ModePerRow {
			t.Errorf("expected per-row default, got %q", gotMode)
		}
	})

	t.Run("returns 400 for malformed month", func(t *testing.T) {
		r := setupDashboardRouter(NewDashboardHandler(&mockDashboardService{}))

		rec := doRequest(r, http.MethodGet, "/dashboard?month=March", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 for unknown mode", func(t *testing.T) {
		r := setupDashboardRouter(NewDashboardHandler(&mockDashboardService{}))

		rec := doRequest(r, http.MethodGet, "/dashboard?installment_mode=weekly", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
