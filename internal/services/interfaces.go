package services

import (
	"context"
	"time"

	"github.com/rodrigovixc/finance-bolt/internal/models"
	"github.com/rodrigovixc/finance-bolt/internal/pagination"
	"github.com/rodrigovixc/finance-bolt/internal/summary"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID uint, tokenHash string) error
	GetRefreshTokenHash(userID uint) (string, error)
	ClearRefreshTokenHash(userID uint) error
}

// CardServicer defines the contract for card-related business logic.
type CardServicer interface {
	CreateCard(userID uint, bank, lastDigits string) (*models.Card, error)
	GetUserCards(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Card], error)
	GetCardByID(userID, cardID uint) (*models.Card, error)
	UpdateCard(userID, cardID uint, bank, lastDigits string) (*models.Card, error)
	DeleteCard(userID, cardID uint) error
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(userID uint, name, description, color, icon string) (*models.Category, error)
	GetUserCategories(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	GetCategoryByID(userID, categoryID uint) (*models.Category, error)
	UpdateCategory(userID, categoryID uint, name, description, color, icon string) (*models.Category, error)
	DeleteCategory(userID, categoryID uint) error
}

// IncomeTypeServicer defines the contract for income-type-related business logic.
type IncomeTypeServicer interface {
	CreateIncomeType(userID uint, name, description string) (*models.IncomeType, error)
	GetUserIncomeTypes(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.IncomeType], error)
	GetIncomeTypeByID(userID, incomeTypeID uint) (*models.IncomeType, error)
	UpdateIncomeType(userID, incomeTypeID uint, name, description string) (*models.IncomeType, error)
	DeleteIncomeType(userID, incomeTypeID uint) error
}

// NewTransaction carries the input for creating a transaction. Amount is the
// full purchase value; when Installments > 1 it is split evenly across the
// generated sibling rows.
type NewTransaction struct {
	Description       string
	Amount            float64
	Date              time.Time
	Type              models.TransactionType
	CardID            *uint
	CategoryID        *uint
	IncomeTypeID      *uint
	IsRecurring       bool
	RecurrencePeriod  *models.RecurrencePeriod
	RecurrenceEndDate *time.Time
	Installments      int
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate     *time.Time
	ToDate       *time.Time
	Type         *models.TransactionType
	CardID       *uint
	CategoryID   *uint
	IncomeTypeID *uint
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID uint, input NewTransaction) ([]models.Transaction, error)
	GetUserTransactions(userID uint, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetAllUserTransactions(ctx context.Context, userID uint) ([]models.Transaction, error)
	GetTransactionByID(userID, transactionID uint) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID uint, description string, amount *float64, date *time.Time) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID uint) error
}

// Dashboard aggregates every view the dashboard renders, computed from the
// user's full transaction list.
type Dashboard struct {
	Totals         summary.Totals            `json:"totals"`
	Month          string                    `json:"month"`
	MonthlyFlow    summary.Flow              `json:"monthly_flow"`
	RunningBalance []summary.BalancePoint    `json:"running_balance"`
	ByCard         []summary.CardSum         `json:"by_card"`
	ByCategory     []summary.CategorySum     `json:"by_category"`
	Installments   []summary.InstallmentPlan `json:"installments"`
	Recent         []models.Transaction      `json:"recent"`
}

// DashboardServicer defines the contract for dashboard aggregation.
type DashboardServicer interface {
	GetDashboard(ctx context.Context, userID uint, year int, month time.Month, mode summary.InstallmentMode) (*Dashboard, error)
}
