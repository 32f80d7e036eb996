package models

import "time"

// KeyValue is the opaque persistence row: every stored record (preferences,
// saved ids, digests) is a JSON blob behind a string key.
type KeyValue struct {
	ID        string `gorm:"primaryKey"`
	Value     []byte
	UpdatedAt time.Time
}
