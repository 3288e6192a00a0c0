package models

// IncomeType represents a kind of income (salary, freelance, ...).
// It plays the same role for income transactions that Category plays
// for expenses.
type IncomeType struct {
	Base
	UserID      uint   `gorm:"not null;index" json:"user_id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`

	Transactions []Transaction `gorm:"foreignKey:IncomeTypeID" json:"transactions,omitempty"`
}
