package models

// Card represents a payment card registered by a user.
// LastDigits is always a 4-character numeric string; the full card number
// is never stored.
type Card struct {
	Base
	UserID     uint   `gorm:"not null;index" json:"user_id"`
	Bank       string `gorm:"not null" json:"bank"`
	LastDigits string `gorm:"size:4;not null" json:"last_digits"`

	Transactions []Transaction `gorm:"foreignKey:CardID" json:"transactions,omitempty"`
}

// Label returns the display label used for the card in lists and charts,
// e.g. "Nubank (****1234)".
func (c *Card) Label() string {
	return c.Bank + " (****" + c.LastDigits + ")"
}
