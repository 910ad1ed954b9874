package entities

import (
	"time"
)

type Timestamp struct {
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp" json:"updated_at"`
}

// StoreEntry is one key of the key-value store. Value holds a JSON document.
type StoreEntry struct {
	Key   string `gorm:"column:entry_key;primaryKey;size:64" json:"key"`
	Value string `gorm:"column:entry_value;type:text" json:"value"`
	Timestamp
}

func (StoreEntry) TableName() string {
	return "kv_entries"
}
