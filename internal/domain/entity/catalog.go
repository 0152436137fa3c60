package entity

import (
	"time"

	"github.com/sangkips/gestor-mesas/internal/domain/enum"
)

// MenuItem represents a catalog entry used for autocomplete and default pricing
type MenuItem struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// InventoryItem represents a raw-stock entry
type InventoryItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
}

// Purchase represents an expense paid out of one payment channel
type Purchase struct {
	ID          string             `json:"id"`
	Description string             `json:"description"`
	Amount      float64            `json:"amount"`
	Method      enum.PaymentMethod `json:"method"`
	CreatedAt   int64              `json:"createdAt"` // Unix milliseconds
}

// CreatedTime returns the purchase timestamp
func (p Purchase) CreatedTime() time.Time {
	return time.UnixMilli(p.CreatedAt)
}
