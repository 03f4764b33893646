package model

// Sequence is a named gapless counter
type Sequence struct {
	Name  string `gorm:"primaryKey;size:64"`
	Value int64  `gorm:"not null;default:0"`
}

// TableName specifies the table name for Sequence
func (Sequence) TableName() string {
	return "sequences"
}
