package service

import (
	"context"

	"github.com/sangkips/gestor-mesas/internal/domain/entity"
	"github.com/sangkips/gestor-mesas/internal/domain/enum"
	"github.com/sangkips/gestor-mesas/internal/domain/state"
	"github.com/sangkips/gestor-mesas/pkg/apperror"
	"github.com/sangkips/gestor-mesas/pkg/pagination"
)

// PurchaseService handles expenses paid out of the register
type PurchaseService struct {
	floor *FloorService
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(floor *FloorService) *PurchaseService {
	return &PurchaseService{floor: floor}
}

// CreatePurchaseInput represents the create purchase input
type CreatePurchaseInput struct {
	Description string
	Amount      float64
	Method      enum.PaymentMethod
}

// CreatePurchase records an expense. Blank descriptions and non-positive amounts are rejected.
func (s *PurchaseService) CreatePurchase(ctx context.Context, input *CreatePurchaseInput) (*entity.Purchase, error) {
	p := entity.Purchase{
		ID:          s.floor.NewID(),
		Description: input.Description,
		Amount:      input.Amount,
		Method:      input.Method,
		CreatedAt:   s.floor.Now().UnixMilli(),
	}
	out, err := s.floor.Dispatch(ctx, state.AddPurchase{Purchase: p})
	if err != nil {
		return nil, err
	}
	if out.Ignored {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "description", Message: "description is required"},
			{Field: "amount", Message: "amount must be positive"},
		})
	}
	for _, created := range s.floor.Snapshot().Purchases {
		if created.ID == p.ID {
			return &created, nil
		}
	}
	return &p, nil
}

// ListPurchases returns one page of purchases, newest first
func (s *PurchaseService) ListPurchases(params *pagination.PaginationParams) *pagination.PaginatedResult[entity.Purchase] {
	return pagination.Paginate(s.floor.Snapshot().Purchases, params)
}

// DeletePurchase removes an expense
func (s *PurchaseService) DeletePurchase(ctx context.Context, id string) error {
	out, err := s.floor.Dispatch(ctx, state.RemovePurchase{ID: id})
	if err != nil {
		return err
	}
	if out.Ignored {
		return apperror.NewNotFoundError("Purchase")
	}
	return nil
}

// ReplacePurchases swaps the whole purchase list
func (s *PurchaseService) ReplacePurchases(ctx context.Context, purchases []entity.Purchase) ([]entity.Purchase, error) {
	for i := range purchases {
		if purchases[i].ID == "" {
			purchases[i].ID = s.floor.NewID()
		}
	}
	if _, err := s.floor.Dispatch(ctx, state.ReplacePurchases{Purchases: purchases}); err != nil {
		return nil, err
	}
	return s.floor.Snapshot().Purchases, nil
}
