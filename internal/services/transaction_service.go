package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/rodrigovixc/finance-bolt/internal/errors"
	"github.com/rodrigovixc/finance-bolt/internal/models"
	"github.com/rodrigovixc/finance-bolt/internal/pagination"
)

// maxInstallments caps how many sibling rows a single purchase can expand
// into. 120 covers ten years of monthly installments.
const maxInstallments = 120

// transactionService handles transaction-related business logic.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// CreateTransaction validates and persists a transaction. A purchase with
// Installments = N > 1 is expanded into N sibling rows of amount/N, dated one
// month apart and numbered 1..N; the expansion is written in a single
// database transaction so a failure leaves no partial plan behind. The
// created rows are returned in installment order.
func (s *transactionService) CreateTransaction(userID uint, input NewTransaction) ([]models.Transaction, error) {
	if err := s.validateNewTransaction(userID, input); err != nil {
		return nil, err
	}

	count := input.Installments
	if count < 1 {
		count = 1
	}

	rows := make([]models.Transaction, 0, count)
	if count == 1 {
		rows = append(rows, models.Transaction{
			UserID:            userID,
			Description:       input.Description,
			Amount:            input.Amount,
			Date:              input.Date,
			Type:              input.Type,
			CardID:            input.CardID,
			CategoryID:        input.CategoryID,
			IncomeTypeID:      input.IncomeTypeID,
			IsRecurring:       input.IsRecurring,
			RecurrencePeriod:  input.RecurrencePeriod,
			RecurrenceEndDate: input.RecurrenceEndDate,
		})
	} else {
		perInstallment := input.Amount / float64(count)
		for i := 1; i <= count; i++ {
			current := i
			total := count
			rows = append(rows, models.Transaction{
				UserID:             userID,
				Description:        input.Description,
				Amount:             perInstallment,
				Date:               input.Date.AddDate(0, i-1, 0),
				Type:               input.Type,
				CardID:             input.CardID,
				CategoryID:         input.CategoryID,
				InstallmentTotal:   &total,
				InstallmentCurrent: &current,
			})
		}
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&rows).Error
	}); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return rows, nil
}

func (s *transactionService) validateNewTransaction(userID uint, input NewTransaction) error {
	if input.Description == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}
	if input.Amount <= 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if input.Date.IsZero() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}

	switch input.Type {
	case models.TransactionTypeIncome:
		if input.CardID != nil || input.CategoryID != nil {
			return apperrors.ErrConflictingReferences
		}
		if input.Installments > 1 {
			return apperrors.WithMessage(apperrors.ErrInvalidInstallmentCount, "income cannot be paid in installments")
		}
	case models.TransactionTypeExpense:
		if input.IncomeTypeID != nil {
			return apperrors.ErrConflictingReferences
		}
	default:
		return apperrors.ErrInvalidTransactionType
	}

	if input.Installments < 0 || input.Installments > maxInstallments {
		return apperrors.ErrInvalidInstallmentCount
	}

	if input.IsRecurring && input.RecurrencePeriod == nil {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "recurring transactions require a recurrence period")
	}
	if input.IsRecurring && input.Installments > 1 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "a transaction cannot be both recurring and paid in installments")
	}
	if input.RecurrencePeriod != nil && !input.RecurrencePeriod.IsValid() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid recurrence period")
	}

	return s.checkReferences(userID, input)
}

// checkReferences verifies that every referenced card, category and income
// type exists and belongs to the caller.
func (s *transactionService) checkReferences(userID uint, input NewTransaction) error {
	if input.CardID != nil {
		if err := s.ownedRecordExists(&models.Card{}, userID, *input.CardID, apperrors.ErrCardNotFound); err != nil {
			return err
		}
	}
	if input.CategoryID != nil {
		if err := s.ownedRecordExists(&models.Category{}, userID, *input.CategoryID, apperrors.ErrCategoryNotFound); err != nil {
			return err
		}
	}
	if input.IncomeTypeID != nil {
		if err := s.ownedRecordExists(&models.IncomeType{}, userID, *input.IncomeTypeID, apperrors.ErrIncomeTypeNotFound); err != nil {
			return err
		}
	}
	return nil
}

func (s *transactionService) ownedRecordExists(model interface{}, userID, id uint, notFound *apperrors.AppError) error {
	var count int64
	if err := s.db.Model(model).Where("id = ? AND user_id = ?", id, userID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return notFound
	}
	return nil
}

// GetUserTransactions retrieves a filtered, paginated list of transactions
// for a user, newest first.
func (s *transactionService) GetUserTransactions(userID uint, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	base = applyTransactionFilter(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC, id DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func applyTransactionFilter(db *gorm.DB, filter TransactionFilter) *gorm.DB {
	if filter.FromDate != nil {
		db = db.Where("date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		db = db.Where("date <= ?", *filter.ToDate)
	}
	if filter.Type != nil {
		db = db.Where("type = ?", *filter.Type)
	}
	if filter.CardID != nil {
		db = db.Where("card_id = ?", *filter.CardID)
	}
	if filter.CategoryID != nil {
		db = db.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.IncomeTypeID != nil {
		db = db.Where("income_type_id = ?", *filter.IncomeTypeID)
	}
	return db
}

// GetAllUserTransactions loads every transaction of a user ordered by date
// ascending. The aggregation functions expect the full list.
func (s *transactionService) GetAllUserTransactions(ctx context.Context, userID uint) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date ASC, id ASC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// GetTransactionByID retrieves a transaction by ID for a specific user
func (s *transactionService) GetTransactionByID(userID, transactionID uint) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// UpdateTransaction edits the description, amount or date of a single row.
// Installment siblings are edited individually; the plan descriptor itself
// is immutable after creation.
func (s *transactionService) UpdateTransaction(userID, transactionID uint, description string, amount *float64, date *time.Time) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if description != "" {
		updates["description"] = description
	}
	if amount != nil {
		if *amount <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
		}
		updates["amount"] = *amount
	}
	if date != nil {
		updates["date"] = *date
	}

	if len(updates) > 0 {
		if err := s.db.Model(transaction).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return transaction, nil
}

// DeleteTransaction removes a single row, scoped by record ID and owner ID.
// Deleting one installment sibling leaves the rest of the plan untouched.
func (s *transactionService) DeleteTransaction(userID, transactionID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", transactionID, userID).Delete(&models.Transaction{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}
