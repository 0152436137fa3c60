package request

import (
	"github.com/sangkips/gestor-mesas/internal/domain/entity"
	"github.com/sangkips/gestor-mesas/internal/domain/enum"
)

// CreateMenuItemRequest represents a catalog entry creation
type CreateMenuItemRequest struct {
	Name  string  `json:"name" binding:"required,max=255"`
	Price float64 `json:"price" binding:"gt=0"`
}

// ReplaceMenuRequest swaps the whole catalog
type ReplaceMenuRequest struct {
	Items []entity.MenuItem `json:"items" binding:"required"`
}

// CreateInventoryItemRequest represents a stock entry creation
type CreateInventoryItemRequest struct {
	Name     string  `json:"name" binding:"required,max=255"`
	Quantity float64 `json:"quantity"`
}

// ReplaceInventoryRequest swaps the whole stock list
type ReplaceInventoryRequest struct {
	Items []entity.InventoryItem `json:"items" binding:"required"`
}

// CreatePurchaseRequest represents an expense paid out of the register
type CreatePurchaseRequest struct {
	Description string             `json:"description" binding:"required,max=255"`
	Amount      float64            `json:"amount" binding:"gt=0"`
	Method      enum.PaymentMethod `json:"method"`
}

// ReplacePurchasesRequest swaps the whole purchase list
type ReplacePurchasesRequest struct {
	Purchases []entity.Purchase `json:"purchases" binding:"required"`
}
