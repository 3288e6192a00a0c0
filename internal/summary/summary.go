// Package summary contains pure aggregation functions over in-memory
// transaction lists. Nothing here touches the database; callers fetch the
// rows and hand them over. All arithmetic is plain float64 addition, which
// is fine for two-decimal display but not for audited ledgers.
package summary

import (
	"sort"
	"time"

	"github.com/rodrigovixc/finance-bolt/internal/models"
)

// Totals holds the overall income/expense sums and their difference.
type Totals struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}

// ComputeTotals sums income and expense amounts separately.
// Balance = Income - Expense. An empty list yields all zeros.
func ComputeTotals(txs []models.Transaction) Totals {
	var t Totals
	for _, tx := range txs {
		switch tx.Type {
		case models.TransactionTypeIncome:
			t.Income += tx.Amount
		case models.TransactionTypeExpense:
			t.Expense += tx.Amount
		}
	}
	t.Balance = t.Income - t.Expense
	return t
}

// CardSum is the total spent on a single card.
type CardSum struct {
	CardID uint    `json:"card_id"`
	Label  string  `json:"label"`
	Total  float64 `json:"total"`
}

// ExpensesByCard sums expense transactions per card and joins against the
// card list for display labels. Expenses without a card reference, or whose
// card cannot be resolved, are dropped. Results are ordered by descending
// total.
func ExpensesByCard(txs []models.Transaction, cards []models.Card) []CardSum {
	byID := make(map[uint]*models.Card, len(cards))
	for i := range cards {
		byID[cards[i].ID] = &cards[i]
	}

	sums := make(map[uint]float64)
	for _, tx := range txs {
		if tx.Type != models.TransactionTypeExpense || tx.CardID == nil {
			continue
		}
		if _, ok := byID[*tx.CardID]; !ok {
			continue
		}
		sums[*tx.CardID] += tx.Amount
	}

	result := make([]CardSum, 0, len(sums))
	for id, total := range sums {
		result = append(result, CardSum{
			CardID: id,
			Label:  byID[id].Label(),
			Total:  total,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Total != result[j].Total {
			return result[i].Total > result[j].Total
		}
		return result[i].CardID < result[j].CardID
	})
	return result
}

// CategorySum is the total spent in a single category, with its share of
// all categorized expenses.
type CategorySum struct {
	CategoryID uint    `json:"category_id"`
	Name       string  `json:"name"`
	Color      string  `json:"color"`
	Total      float64 `json:"total"`
	Percentage float64 `json:"percentage"`
}

// ExpensesByCategory sums expense transactions per category. The percentage
// denominator is the sum of categorized expenses only, not of all expenses;
// uncategorized spending does not dilute the shares. With no categorized
// expenses the result is empty (never NaN). Results are ordered by
// descending total.
func ExpensesByCategory(txs []models.Transaction, categories []models.Category) []CategorySum {
	byID := make(map[uint]*models.Category, len(categories))
	for i := range categories {
		byID[categories[i].ID] = &categories[i]
	}

	sums := make(map[uint]float64)
	var categorized float64
	for _, tx := range txs {
		if tx.Type != models.TransactionTypeExpense || tx.CategoryID == nil {
			continue
		}
		if _, ok := byID[*tx.CategoryID]; !ok {
			continue
		}
		sums[*tx.CategoryID] += tx.Amount
		categorized += tx.Amount
	}

	if categorized == 0 {
		return []CategorySum{}
	}

	result := make([]CategorySum, 0, len(sums))
	for id, total := range sums {
		cat := byID[id]
		result = append(result, CategorySum{
			CategoryID: id,
			Name:       cat.Name,
			Color:      cat.Color,
			Total:      total,
			Percentage: total / categorized * 100,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Total != result[j].Total {
			return result[i].Total > result[j].Total
		}
		return result[i].CategoryID < result[j].CategoryID
	})
	return result
}

// BalancePoint is one step of the running balance series.
type BalancePoint struct {
	Date    string  `json:"date"`
	Balance float64 `json:"balance"`
}

// RunningBalance sorts transactions ascending by date and folds them into a
// cumulative signed balance, one point per transaction. There is no
// same-day aggregation: several transactions on the same day produce
// several points sharing a date label. The input slice is not modified.
func RunningBalance(txs []models.Transaction) []BalancePoint {
	sorted := make([]models.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	points := make([]BalancePoint, 0, len(sorted))
	var balance float64
	for _, tx := range sorted {
		balance += tx.SignedAmount()
		points = append(points, BalancePoint{
			Date:    tx.Date.Format("02/01/2006"),
			Balance: balance,
		})
	}
	return points
}

// Flow holds the income and expense sums for one window.
type Flow struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// MonthlyFlow sums income and expense for transactions whose date falls in
// the given calendar month. Matching is on the stored date's year and
// month; no timezone normalization is applied.
func MonthlyFlow(txs []models.Transaction, year int, month time.Month) Flow {
	t := ComputeTotals(FilterMonth(txs, year, month))
	return Flow{Income: t.Income, Expense: t.Expense}
}

// FilterMonth returns the transactions whose date falls in the given
// calendar month.
func FilterMonth(txs []models.Transaction, year int, month time.Month) []models.Transaction {
	out := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.Date.Year() == year && tx.Date.Month() == month {
			out = append(out, tx)
		}
	}
	return out
}

// InstallmentMode selects how installment siblings are aggregated.
type InstallmentMode string

const (
	// ModePerRow emits one plan entry per installment row, so a purchase
	// split into N rows appears N times. This matches the original
	// per-row rendering.
	ModePerRow InstallmentMode = "rows"
	// ModeByPurchase collapses sibling rows that share a description,
	// keeping the row with the highest current index (the latest slice).
	ModeByPurchase InstallmentMode = "purchases"
)

// ParseInstallmentMode parses a mode string, defaulting to ModePerRow for
// the empty string.
func ParseInstallmentMode(s string) (InstallmentMode, bool) {
	switch InstallmentMode(s) {
	case "":
		return ModePerRow, true
	case ModePerRow, ModeByPurchase:
		return InstallmentMode(s), true
	}
	return "", false
}

// InstallmentPlan describes the remaining schedule of one installment
// purchase, recomputed from a single sibling row.
type InstallmentPlan struct {
	TransactionID   uint    `json:"transaction_id"`
	Description     string  `json:"description"`
	CardID          *uint   `json:"card_id,omitempty"`
	PerInstallment  float64 `json:"per_installment"`
	PlanTotal       float64 `json:"plan_total"`
	RemainingAmount float64 `json:"remaining_amount"`
	RemainingCount  int     `json:"remaining_count"`
	Total           int     `json:"total"`
	Current         int     `json:"current"`
}

// InstallmentRemainders computes the remainder view for expense
// transactions carrying an installment descriptor: plan total =
// amount * total, remaining = amount * (total - current). Plans are
// ordered by transaction date ascending, then ID.
func InstallmentRemainders(txs []models.Transaction, mode InstallmentMode) []InstallmentPlan {
	rows := make([]models.Transaction, 0)
	for _, tx := range txs {
		if tx.Type == models.TransactionTypeExpense && tx.HasInstallments() {
			rows = append(rows, tx)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].Date.Equal(rows[j].Date) {
			return rows[i].Date.Before(rows[j].Date)
		}
		return rows[i].ID < rows[j].ID
	})

	if mode == ModeByPurchase {
		latest := make(map[string]models.Transaction)
		order := make([]string, 0)
		for _, tx := range rows {
			prev, seen := latest[tx.Description]
			if !seen {
				order = append(order, tx.Description)
				latest[tx.Description] = tx
				continue
			}
			if *tx.InstallmentCurrent > *prev.InstallmentCurrent {
				latest[tx.Description] = tx
			}
		}
		rows = rows[:0]
		for _, desc := range order {
			rows = append(rows, latest[desc])
		}
	}

	plans := make([]InstallmentPlan, 0, len(rows))
	for _, tx := range rows {
		total := *tx.InstallmentTotal
		current := *tx.InstallmentCurrent
		plans = append(plans, InstallmentPlan{
			TransactionID:   tx.ID,
			Description:     tx.Description,
			CardID:          tx.CardID,
			PerInstallment:  tx.Amount,
			PlanTotal:       tx.Amount * float64(total),
			RemainingAmount: tx.Amount * float64(total-current),
			RemainingCount:  total - current,
			Total:           total,
			Current:         current,
		})
	}
	return plans
}
