package models

import "time"

// Base contains common columns for all tables. Records are hard-deleted;
// there is no soft-delete or audit trail in this system.
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
