package model

import "time"

// Event represents the database model for the audit feed
type Event struct {
	Seq       uint64            `gorm:"primaryKey;autoIncrement:false"`
	Kind      string            `gorm:"not null;size:64;index"`
	SubjectID uint64            `gorm:"not null"`
	Actor     string            `gorm:"not null;size:256"`
	Payload   map[string]string `gorm:"serializer:json;type:text"`
	Timestamp time.Time         `gorm:"not null"`
}

// TableName specifies the table name for Event
func (Event) TableName() string {
	return "events"
}
