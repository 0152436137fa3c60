package state

import (
	"sort"
	"strings"

	"github.com/sangkips/gestor-mesas/internal/domain/billing"
	"github.com/sangkips/gestor-mesas/internal/domain/entity"
	"github.com/sangkips/gestor-mesas/internal/domain/enum"
)

// SeedCatalog is installed when no catalog has ever been stored
func SeedCatalog(newID func() string) []entity.MenuItem {
	seed := []struct {
		name  string
		price float64
	}{
		{"Cerveja 600ml", 12},
		{"Refrigerante Lata", 6},
		{"Água Mineral", 4},
		{"Suco Natural", 9},
		{"Caipirinha", 18},
		{"Porção de Fritas", 28},
		{"Porção de Calabresa", 35},
		{"Picanha na Chapa", 89},
		{"Prato Feito", 25},
		{"Pastel", 8},
	}
	items := make([]entity.MenuItem, 0, len(seed))
	for _, s := range seed {
		items = append(items, entity.MenuItem{ID: newID(), Name: s.name, Price: s.price})
	}
	return items
}

// SearchCatalog returns catalog items whose name contains query, case-insensitively
func SearchCatalog(items []entity.MenuItem, query string) []entity.MenuItem {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]entity.MenuItem, 0)
	for _, it := range items {
		if q == "" || strings.Contains(strings.ToLower(it.Name), q) {
			out = append(out, it)
		}
	}
	return out
}

// SortedInventory returns a copy of the inventory ordered by name
func SortedInventory(items []entity.InventoryItem) []entity.InventoryItem {
	out := make([]entity.InventoryItem, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// SelectTable opens the detail view of a table; an empty id goes back to the dashboard
type SelectTable struct {
	ID string
}

func (a SelectTable) apply(s *State) (Outcome, error) {
	if a.ID == "" {
		s.SelectedTableID = ""
		s.View = enum.ViewDashboard
		return Outcome{SelectionCleared: true}, nil
	}
	if s.FindTable(a.ID) < 0 {
		return Outcome{}, ErrTableNotFound
	}
	s.SelectedTableID = a.ID
	s.View = enum.ViewTableDetail
	return Outcome{TableID: a.ID}, nil
}

// SetView switches the active screen; leaving the detail view drops the selection
type SetView struct {
	View enum.View
}

func (a SetView) apply(s *State) (Outcome, error) {
	if a.View == enum.ViewTableDetail && s.SelectedTableID == "" {
		return Outcome{Ignored: true}, nil
	}
	out := Outcome{}
	if a.View != enum.ViewTableDetail && s.SelectedTableID != "" {
		s.SelectedTableID = ""
		out.SelectionCleared = true
	}
	s.View = a.View
	return out, nil
}

// AddMenuItem appends a catalog entry; blank names and non-positive prices are ignored
type AddMenuItem struct {
	Item entity.MenuItem
}

func (a AddMenuItem) apply(s *State) (Outcome, error) {
	item, ok := cleanMenuItem(a.Item)
	if !ok {
		return Outcome{Ignored: true}, nil
	}
	s.Catalog = append(s.Catalog, item)
	return Outcome{Changed: CollectionCatalog}, nil
}

// RemoveMenuItem drops a catalog entry by id
type RemoveMenuItem struct {
	ID string
}

func (a RemoveMenuItem) apply(s *State) (Outcome, error) {
	for i := range s.Catalog {
		if s.Catalog[i].ID == a.ID {
			s.Catalog = append(s.Catalog[:i:i], s.Catalog[i+1:]...)
			return Outcome{Changed: CollectionCatalog}, nil
		}
	}
	return Outcome{Ignored: true}, nil
}

func cleanMenuItem(item entity.MenuItem) (entity.MenuItem, bool) {
	item.Name = strings.TrimSpace(item.Name)
	item.Price = billing.Clamp(item.Price)
	return item, item.ID != "" && item.Name != "" && item.Price > 0
}

// ReplaceCatalog swaps the whole catalog; entries AddMenuItem would refuse are dropped
type ReplaceCatalog struct {
	Items []entity.MenuItem
}

func (a ReplaceCatalog) apply(s *State) (Outcome, error) {
	items := make([]entity.MenuItem, 0, len(a.Items))
	for _, it := range a.Items {
		if it, ok := cleanMenuItem(it); ok {
			items = append(items, it)
		}
	}
	s.Catalog = items
	return Outcome{Changed: CollectionCatalog}, nil
}

// AddInventoryItem appends a stock entry with its name upper-cased
type AddInventoryItem struct {
	Item entity.InventoryItem
}

func (a AddInventoryItem) apply(s *State) (Outcome, error) {
	item, ok := cleanInventoryItem(a.Item)
	if !ok {
		return Outcome{Ignored: true}, nil
	}
	s.Inventory = append(s.Inventory, item)
	return Outcome{Changed: CollectionInventory}, nil
}

// RemoveInventoryItem drops a stock entry by id
type RemoveInventoryItem struct {
	ID string
}

func (a RemoveInventoryItem) apply(s *State) (Outcome, error) {
	for i := range s.Inventory {
		if s.Inventory[i].ID == a.ID {
			s.Inventory = append(s.Inventory[:i:i], s.Inventory[i+1:]...)
			return Outcome{Changed: CollectionInventory}, nil
		}
	}
	return Outcome{Ignored: true}, nil
}

func cleanInventoryItem(item entity.InventoryItem) (entity.InventoryItem, bool) {
	item.Name = strings.ToUpper(strings.TrimSpace(item.Name))
	item.Quantity = billing.Clamp(item.Quantity)
	return item, item.ID != "" && item.Name != ""
}

// ReplaceInventory swaps the whole inventory; unnamed entries are dropped
type ReplaceInventory struct {
	Items []entity.InventoryItem
}

func (a ReplaceInventory) apply(s *State) (Outcome, error) {
	items := make([]entity.InventoryItem, 0, len(a.Items))
	for _, it := range a.Items {
		if it, ok := cleanInventoryItem(it); ok {
			items = append(items, it)
		}
	}
	s.Inventory = items
	return Outcome{Changed: CollectionInventory}, nil
}

// AddPurchase records an expense, newest first. Blank descriptions,
// non-positive amounts and unknown methods are ignored.
type AddPurchase struct {
	Purchase entity.Purchase
}

func (a AddPurchase) apply(s *State) (Outcome, error) {
	p, ok := cleanPurchase(a.Purchase)
	if !ok {
		return Outcome{Ignored: true}, nil
	}
	purchases := make([]entity.Purchase, 0, len(s.Purchases)+1)
	purchases = append(purchases, p)
	s.Purchases = append(purchases, s.Purchases...)
	return Outcome{Changed: CollectionPurchases}, nil
}

// RemovePurchase drops an expense by id
type RemovePurchase struct {
	ID string
}

func (a RemovePurchase) apply(s *State) (Outcome, error) {
	for i := range s.Purchases {
		if s.Purchases[i].ID == a.ID {
			s.Purchases = append(s.Purchases[:i:i], s.Purchases[i+1:]...)
			return Outcome{Changed: CollectionPurchases}, nil
		}
	}
	return Outcome{Ignored: true}, nil
}

func cleanPurchase(p entity.Purchase) (entity.Purchase, bool) {
	p.Description = strings.ToUpper(strings.TrimSpace(p.Description))
	return p, p.ID != "" && p.Description != "" && billing.Clamp(p.Amount) > 0 && p.Method.IsValid()
}

// ReplacePurchases swaps the whole purchase list, keeping its order;
// entries AddPurchase would refuse are dropped
type ReplacePurchases struct {
	Purchases []entity.Purchase
}

func (a ReplacePurchases) apply(s *State) (Outcome, error) {
	purchases := make([]entity.Purchase, 0, len(a.Purchases))
	for _, p := range a.Purchases {
		if p, ok := cleanPurchase(p); ok {
			purchases = append(purchases, p)
		}
	}
	s.Purchases = purchases
	return Outcome{Changed: CollectionPurchases}, nil
}
