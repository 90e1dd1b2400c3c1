package store

import "time"

// StoreDocument is one whole aggregate document under a logical key.
// The payload is opaque to the store; clients own its schema.
type StoreDocument struct {
	Key       string    `gorm:"primaryKey;size:128" json:"key"`
	Data      []byte    `gorm:"type:jsonb;not null" json:"data"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (StoreDocument) TableName() string {
	return "store_documents"
}
