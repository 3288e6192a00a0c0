package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	apperrors "github.com/rodrigovixc/finance-bolt/internal/errors"
	"github.com/rodrigovixc/finance-bolt/internal/models"
	"github.com/rodrigovixc/finance-bolt/internal/summary"
)

// recentTransactionCount is how many rows the dashboard shows in its
// recent-activity panel.
const recentTransactionCount = 5

// dashboardService composes the aggregation views served by the dashboard
// endpoint. It loads the raw rows itself and delegates the arithmetic to the
// summary package.
type dashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService(db *gorm.DB) DashboardServicer {
	return &dashboardService{db: db}
}

// GetDashboard loads the user's transactions, cards and categories in
// parallel and computes every dashboard view. The overall totals, groupings
// and installment plans cover the full history; MonthlyFlow and
// RunningBalance are narrowed to the requested month. Any load failure fails
// the whole dashboard rather than serving partially empty views.
func (s *dashboardService) GetDashboard(ctx context.Context, userID uint, year int, month time.Month, mode summary.InstallmentMode) (*Dashboard, error) {
	var (
		transactions []models.Transaction
		cards        []models.Card
		categories   []models.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.db.WithContext(gctx).
			Where("user_id = ?", userID).
			Order("date ASC, id ASC").
			Find(&transactions).Error
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).
			Where("user_id = ?", userID).
			Find(&cards).Error
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).
			Where("user_id = ?", userID).
			Find(&categories).Error
	})
	if err := g.Wait(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	recent := recentTransactions(transactions, recentTransactionCount)
	monthTransactions := summary.FilterMonth(transactions, year, month)

	return &Dashboard{
		Totals:         summary.ComputeTotals(transactions),
		Month:          fmt.Sprintf("%04d-%02d", year, int(month)),
		MonthlyFlow:    summary.MonthlyFlow(transactions, year, month),
		RunningBalance: summary.RunningBalance(monthTransactions),
		ByCard:         summary.ExpensesByCard(transactions, cards),
		ByCategory:     summary.ExpensesByCategory(transactions, categories),
		Installments:   summary.InstallmentRemainders(transactions, mode),
		Recent:         recent,
	}, nil
}

// recentTransactions returns the last n transactions, newest first. The
// input is expected to be sorted ascending by date.
func recentTransactions(txs []models.Transaction, n int) []models.Transaction {
	recent := make([]models.Transaction, 0, n)
	for i := len(txs) - 1; i >= 0 && len(recent) < n; i-- {
		recent = append(recent, txs[i])
	}
	return recent
}
