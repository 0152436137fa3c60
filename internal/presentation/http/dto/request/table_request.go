package request

import (
	"github.com/sangkips/gestor-mesas/internal/domain/entity"
	"github.com/sangkips/gestor-mesas/internal/domain/enum"
)

// RenameTableRequest represents a table rename
type RenameTableRequest struct {
	Name string `json:"name" binding:"max=255"`
}

// SplitRequest sets how many people share the bill
type SplitRequest struct {
	SplitCount int `json:"split_count"`
}

// ManualTotalRequest overrides the displayed total
type ManualTotalRequest struct {
	Total float64 `json:"total"`
}

// PaymentsRequest edits the per-method totals directly
type PaymentsRequest struct {
	Payments entity.PaymentTotals `json:"payments"`
}

// AddProductRequest adds an order line, either from the menu or free text
type AddProductRequest struct {
	MenuItemID  string  `json:"menu_item_id"`
	Description string  `json:"description" binding:"required_without=MenuItemID,max=255"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Delivered   bool    `json:"delivered"`
}

// UpdateProductRequest edits an order line
type UpdateProductRequest struct {
	Description string  `json:"description" binding:"max=255"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Delivered   bool    `json:"delivered"`
}

// DeliverRequest marks an order line as delivered or pending. An empty body means delivered.
type DeliverRequest struct {
	Delivered *bool `json:"delivered"`
}

// AddPaymentRequest records a payment. Method accepts "cash", "pix", "debit" or "credit".
type AddPaymentRequest struct {
	Amount float64            `json:"amount" binding:"gt=0"`
	Method enum.PaymentMethod `json:"method"`
}

// SetViewRequest switches the active screen
type SetViewRequest struct {
	View    enum.View `json:"view"`
	TableID string    `json:"table_id"`
}
