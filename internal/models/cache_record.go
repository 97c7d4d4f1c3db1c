package models

import "time"

// CacheRecord is one serialized cache snapshot in the durable key/value
// store. Each cache instance writes under its own record name. No soft
// deletes: removing a record must actually free the primary key.
type CacheRecord struct {
	Name      string    `json:"name" gorm:"primaryKey"`
	Payload   string    `json:"payload"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for CacheRecord Model
func (CacheRecord) TableName() string {
	return "cache_records"
}
