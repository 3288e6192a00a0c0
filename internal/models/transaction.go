package models

import "time"

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// RecurrencePeriod represents how often a recurring transaction repeats.
// The descriptor is stored and returned as-is; future occurrences are
// never materialized into rows.
type RecurrencePeriod string

const (
	RecurrenceMonthly   RecurrencePeriod = "monthly"
	RecurrenceQuarterly RecurrencePeriod = "quarterly"
	RecurrenceYearly    RecurrencePeriod = "yearly"
)

// IsValid reports whether the period is one of the supported values.
func (p RecurrencePeriod) IsValid() bool {
	switch p {
	case RecurrenceMonthly, RecurrenceQuarterly, RecurrenceYearly:
		return true
	}
	return false
}

// IsValid reports whether the type is income or expense.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Transaction represents a financial record. Amount is always stored
// positive; the sign is implied by Type.
//
// An installment purchase of N parts is stored as N sibling rows, each
// holding amount/N and the descriptor {InstallmentTotal: N,
// InstallmentCurrent: i}. The siblings share only their description;
// there is no parent row.
type Transaction struct {
	Base
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	Description string          `gorm:"not null" json:"description"`
	Amount      float64         `gorm:"not null" json:"amount"`
	Date        time.Time       `gorm:"not null" json:"date"`
	Type        TransactionType `gorm:"not null" json:"type"`

	CardID       *uint `json:"card_id,omitempty"`
	CategoryID   *uint `json:"category_id,omitempty"`
	IncomeTypeID *uint `json:"income_type_id,omitempty"`

	IsRecurring       bool              `gorm:"default:false" json:"is_recurring"`
	RecurrencePeriod  *RecurrencePeriod `json:"recurrence_period,omitempty"`
	RecurrenceEndDate *time.Time        `json:"recurrence_end_date,omitempty"`

	InstallmentTotal   *int `json:"installment_total,omitempty"`
	InstallmentCurrent *int `json:"installment_current,omitempty"`

	// Relationships. Deleting a referenced card, category or income type
	// clears the reference on historical rows.
	Card       *Card       `gorm:"foreignKey:CardID;constraint:OnDelete:SET NULL" json:"card,omitempty"`
	Category   *Category   `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	IncomeType *IncomeType `gorm:"foreignKey:IncomeTypeID;constraint:OnDelete:SET NULL" json:"income_type,omitempty"`
}

// HasInstallments reports whether the transaction carries an installment
// descriptor.
func (t *Transaction) HasInstallments() bool {
	return t.InstallmentTotal != nil && t.InstallmentCurrent != nil && *t.InstallmentTotal > 1
}

// SignedAmount returns the amount with the sign implied by the type:
// positive for income, negative for expense.
func (t *Transaction) SignedAmount() float64 {
	if t.Type == TransactionTypeExpense {
		return -t.Amount
	}
	return t.Amount
}
