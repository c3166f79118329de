package models

import "time"

// KVRecord is the row backing the SQL record store.
type KVRecord struct {
	Key       string    `gorm:"primaryKey;size:255"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (KVRecord) TableName() string {
	return "kv_records"
}
