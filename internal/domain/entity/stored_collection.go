package entity

import "time"

// StoredCollection is one persisted JSON document keyed by a fixed collection name
type StoredCollection struct {
	Key       string    `gorm:"primaryKey;size:100" json:"key"`
	Payload   string    `gorm:"type:text;not null" json:"payload"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the StoredCollection model
func (StoredCollection) TableName() string {
	return "stored_collections"
}
