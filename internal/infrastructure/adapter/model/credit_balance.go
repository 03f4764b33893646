package model

import "time"

// CreditBalance represents the database model for per-address credits
type CreditBalance struct {
	Address   string    `gorm:"primaryKey;size:256"`
	Balance   int64     `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false"`
}

// TableName specifies the table name for CreditBalance
func (CreditBalance) TableName() string {
	return "credit_balances"
}
