package service

import (
	"context"

	"github.com/sangkips/gestor-mesas/internal/domain/entity"
	"github.com/sangkips/gestor-mesas/internal/domain/state"
	"github.com/sangkips/gestor-mesas/pkg/apperror"
)

// CatalogService handles the menu and the stock list
type CatalogService struct {
	floor *FloorService
}

// NewCatalogService creates a new catalog service
func NewCatalogService(floor *FloorService) *CatalogService {
	return &CatalogService{floor: floor}
}

// ListMenu returns the catalog, filtered by a case-insensitive name search when query is set
func (s *CatalogService) ListMenu(query string) []entity.MenuItem {
	return state.SearchCatalog(s.floor.Snapshot().Catalog, query)
}

// AddMenuItem appends a catalog entry
func (s *CatalogService) AddMenuItem(ctx context.Context, name string, price float64) (*entity.MenuItem, error) {
	item := entity.MenuItem{ID: s.floor.NewID(), Name: name, Price: price}
	out, err := s.floor.Dispatch(ctx, state.AddMenuItem{Item: item})
	if err != nil {
		return nil, err
	}
	if out.Ignored {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "name", Message: "name is required and price must be positive"},
		})
	}
	for _, it := range s.floor.Snapshot().Catalog {
		if it.ID == item.ID {
			return &it, nil
		}
	}
	return &item, nil
}

// RemoveMenuItem deletes a catalog entry
func (s *CatalogService) RemoveMenuItem(ctx context.Context, id string) error {
	out, err := s.floor.Dispatch(ctx, state.RemoveMenuItem{ID: id})
	if err != nil {
		return err
	}
	if out.Ignored {
		return apperror.NewNotFoundError("Menu item")
	}
	return nil
}

// ReplaceMenu swaps the whole catalog, assigning ids to entries that lack one
func (s *CatalogService) ReplaceMenu(ctx context.Context, items []entity.MenuItem) ([]entity.MenuItem, error) {
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = s.floor.NewID()
		}
	}
	if _, err := s.floor.Dispatch(ctx, state.ReplaceCatalog{Items: items}); err != nil {
		return nil, err
	}
	return s.floor.Snapshot().Catalog, nil
}

// ListInventory returns the stock list ordered by name
func (s *CatalogService) ListInventory() []entity.InventoryItem {
	return state.SortedInventory(s.floor.Snapshot().Inventory)
}

// AddInventoryItem appends a stock entry
func (s *CatalogService) AddInventoryItem(ctx context.Context, name string, quantity float64) (*entity.InventoryItem, error) {
	item := entity.InventoryItem{ID: s.floor.NewID(), Name: name, Quantity: quantity}
	out, err := s.floor.Dispatch(ctx, state.AddInventoryItem{Item: item})
	if err != nil {
		return nil, err
	}
	if out.Ignored {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "name", Message: "name is required"},
		})
	}
	for _, it := range s.floor.Snapshot().Inventory {
		if it.ID == item.ID {
			return &it, nil
		}
	}
	return &item, nil
}

// RemoveInventoryItem deletes a stock entry
func (s *CatalogService) RemoveInventoryItem(ctx context.Context, id string) error {
	out, err := s.floor.Dispatch(ctx, state.RemoveInventoryItem{ID: id})
	if err != nil {
		return err
	}
	if out.Ignored {
		return apperror.NewNotFoundError("Inventory item")
	}
	return nil
}

// ReplaceInventory swaps the whole stock list
func (s *CatalogService) ReplaceInventory(ctx context.Context, items []entity.InventoryItem) ([]entity.InventoryItem, error) {
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = s.floor.NewID()
		}
	}
	if _, err := s.floor.Dispatch(ctx, state.ReplaceInventory{Items: items}); err != nil {
		return nil, err
	}
	return s.ListInventory(), nil
}
