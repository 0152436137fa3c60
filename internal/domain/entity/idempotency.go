package entity

import (
	"time"
)

// IdempotencyKey stores a processed write request so retries replay the first response
type IdempotencyKey struct {
	ID           string    `gorm:"primaryKey;size:36"`
	Key          string    `gorm:"uniqueIndex:idx_idempotency_client_key;size:255;not null"` // Idempotency-Key header
	ClientID     string    `gorm:"uniqueIndex:idx_idempotency_client_key;size:128;not null"` // operator id or client address
	Endpoint     string    `gorm:"size:255;not null"`                                        // e.g. "POST /api/v1/purchases"
	ResponseCode int       `gorm:"not null"`
	ResponseBody string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	ExpiresAt    time.Time `gorm:"not null;index"`
}

// TableName returns the table name for IdempotencyKey
func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// IsExpired checks if the idempotency key has expired
func (i *IdempotencyKey) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}
