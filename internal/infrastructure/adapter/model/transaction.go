package model

import (
	"time"
)

// Transaction represents the database model for ledger transactions
type Transaction struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement:false"`
	Seller         string    `gorm:"not null;size:256;index"`
	CreditedPerson string    `gorm:"not null;size:256;index"`
	Description    string    `gorm:"not null;type:text"`
	Amount         int64     `gorm:"not null"`
	Status         string    `gorm:"not null;size:16;index"`
	CreatedAt      time.Time `gorm:"not null;autoCreateTime:false"`
	DecidedAt      *time.Time
	DecidedBy      string `gorm:"size:256"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "ledger_transactions"
}
