package model

import (
	"time"
)

// UserRecord represents the database model for user records.
// The (owner, id) index is the owner index; it lives in the same row as the record.
type UserRecord struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement:false;index:idx_user_records_owner_id,priority:2"`
	Owner     string    `gorm:"not null;size:256;index:idx_user_records_owner_id,priority:1"`
	Name      string    `gorm:"not null;type:text"`
	Email     string    `gorm:"not null;type:text"`
	Age       uint32    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false"`
}

// TableName specifies the table name for UserRecord
func (UserRecord) TableName() string {
	return "user_records"
}
