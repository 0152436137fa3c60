package service

import (
	"context"
	"strings"

	"github.com/sangkips/gestor-mesas/internal/domain/billing"
	"github.com/sangkips/gestor-mesas/internal/domain/entity"
	"github.com/sangkips/gestor-mesas/internal/domain/enum"
	"github.com/sangkips/gestor-mesas/internal/domain/state"
	"github.com/sangkips/gestor-mesas/pkg/apperror"
)

// TableService handles table, order line and payment operations
type TableService struct {
	floor *FloorService
}

// NewTableService creates a new table service
func NewTableService(floor *FloorService) *TableService {
	return &TableService{floor: floor}
}

// TableDetail is a table together with its derived billing values
type TableDetail struct {
	Table   entity.Table    `json:"table"`
	Summary billing.Summary `json:"summary"`
}

// TableResult is returned by every table mutation
type TableResult struct {
	TableDetail
	Transition       string `json:"transition"`
	SelectionCleared bool   `json:"selection_cleared"`
	Ignored          bool   `json:"ignored,omitempty"`
}

func detailOf(t entity.Table) *TableDetail {
	return &TableDetail{Table: t, Summary: billing.Evaluate(&t)}
}

// List returns every table in floor order, the counter first
func (s *TableService) List() []entity.Table {
	return s.floor.Snapshot().Tables
}

// Get returns one table with its billing summary
func (s *TableService) Get(id string) (*TableDetail, error) {
	snap := s.floor.Snapshot()
	t, ok := snap.Table(id)
	if !ok {
		return nil, apperror.NewNotFoundError("Table")
	}
	return detailOf(t), nil
}

func (s *TableService) dispatch(ctx context.Context, tableID string, action state.Action) (*TableResult, error) {
	out, err := s.floor.Dispatch(ctx, action)
	if err != nil {
		return nil, err
	}
	if out.TableID != "" {
		tableID = out.TableID
	}
	detail, err := s.Get(tableID)
	if err != nil {
		return nil, err
	}
	return &TableResult{
		TableDetail:      *detail,
		Transition:       out.Transition.String(),
		SelectionCleared: out.SelectionCleared,
		Ignored:          out.Ignored,
	}, nil
}

// Create opens a new regular table
func (s *TableService) Create(ctx context.Context) (*TableResult, error) {
	id := s.floor.NewID()
	return s.dispatch(ctx, id, state.AddTable{ID: id})
}

// Update replaces a table and re-derives its billing state
func (s *TableService) Update(ctx context.Context, t entity.Table) (*TableResult, error) {
	return s.dispatch(ctx, t.ID, state.UpdateTable{Table: t, Now: s.floor.Now().UnixMilli()})
}

// Rename changes the display name of a regular table
func (s *TableService) Rename(ctx context.Context, id, name string) (*TableResult, error) {
	return s.dispatch(ctx, id, state.RenameTable{ID: id, Name: name})
}

// Delete removes a regular table
func (s *TableService) Delete(ctx context.Context, id string) error {
	_, err := s.floor.Dispatch(ctx, state.DeleteTable{ID: id})
	return err
}

// AddProductInput describes a new order line. When MenuItemID is set the
// description and price come from the catalog.
type AddProductInput struct {
	MenuItemID  string
	Description string
	Quantity    float64
	UnitPrice   float64
	Delivered   bool
}

// AddProduct appends an order line stamped with the current time
func (s *TableService) AddProduct(ctx context.Context, tableID string, input *AddProductInput) (*TableResult, error) {
	line := entity.OrderLine{
		ID:          s.floor.NewID(),
		Quantity:    input.Quantity,
		Description: strings.TrimSpace(input.Description),
		UnitPrice:   input.UnitPrice,
		Delivered:   input.Delivered,
		CreatedAt:   s.floor.Now().UnixMilli(),
	}
	if input.MenuItemID != "" {
		item, ok := s.menuItem(input.MenuItemID)
		if !ok {
			return nil, apperror.NewNotFoundError("Menu item")
		}
		line.Description = item.Name
		line.UnitPrice = item.Price
	}
	if line.Quantity == 0 {
		line.Quantity = 1
	}
	return s.dispatch(ctx, tableID, state.AddOrderLine{TableID: tableID, Line: line})
}

func (s *TableService) menuItem(id string) (entity.MenuItem, bool) {
	for _, it := range s.floor.Snapshot().Catalog {
		if it.ID == id {
			return it, true
		}
	}
	return entity.MenuItem{}, false
}

// UpdateProductInput carries the editable fields of an order line
type UpdateProductInput struct {
	Description string
	Quantity    float64
	UnitPrice   float64
	Delivered   bool
}

// UpdateProduct edits an order line in place
func (s *TableService) UpdateProduct(ctx context.Context, tableID, productID string, input *UpdateProductInput) (*TableResult, error) {
	line := entity.OrderLine{
		ID:          productID,
		Quantity:    input.Quantity,
		Description: strings.TrimSpace(input.Description),
		UnitPrice:   input.UnitPrice,
		Delivered:   input.Delivered,
	}
	return s.dispatch(ctx, tableID, state.UpdateOrderLine{TableID: tableID, Line: line})
}

// RemoveProduct deletes an order line
func (s *TableService) RemoveProduct(ctx context.Context, tableID, productID string) (*TableResult, error) {
	return s.dispatch(ctx, tableID, state.RemoveOrderLine{TableID: tableID, LineID: productID})
}

// SetDelivered marks an order line as delivered or pending
func (s *TableService) SetDelivered(ctx context.Context, tableID, productID string, delivered bool) (*TableResult, error) {
	return s.dispatch(ctx, tableID, state.MarkDelivered{TableID: tableID, LineID: productID, Delivered: delivered})
}

// AddPayment records a payment against a table
func (s *TableService) AddPayment(ctx context.Context, tableID string, amount float64, method enum.PaymentMethod) (*TableResult, error) {
	if !method.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid payment method")
	}
	record := entity.PaymentRecord{ID: s.floor.NewID(), Amount: amount, Method: method}
	return s.dispatch(ctx, tableID, state.AddPayment{TableID: tableID, Record: record})
}

// RemovePayment retracts a payment record
func (s *TableService) RemovePayment(ctx context.Context, tableID, recordID string) (*TableResult, error) {
	return s.dispatch(ctx, tableID, state.RemovePayment{TableID: tableID, RecordID: recordID})
}

// SetPayments edits the per-method totals directly
func (s *TableService) SetPayments(ctx context.Context, tableID string, payments entity.PaymentTotals) (*TableResult, error) {
	return s.dispatch(ctx, tableID, state.SetPayments{TableID: tableID, Payments: payments})
}

// SetSplit sets how many people share the bill
func (s *TableService) SetSplit(ctx context.Context, tableID string, count int) (*TableResult, error) {
	return s.dispatch(ctx, tableID, state.SetSplitCount{TableID: tableID, Count: count})
}

// SetManualTotal overrides the displayed total of a regular table
func (s *TableService) SetManualTotal(ctx context.Context, tableID string, total float64) (*TableResult, error) {
	return s.dispatch(ctx, tableID, state.SetManualTotal{TableID: tableID, Total: total})
}
