// Package state holds the floor state and the pure reducer that applies user
// actions to it. Persistence and event publishing are left to the caller.
package state

import (
	"errors"

	"github.com/sangkips/gestor-mesas/internal/domain/billing"
	"github.com/sangkips/gestor-mesas/internal/domain/entity"
	"github.com/sangkips/gestor-mesas/internal/domain/enum"
)

var (
	ErrProtectedTable   = errors.New("the counter table cannot be deleted or renamed")
	ErrTableNotFound    = errors.New("table not found")
	ErrProductNotFound  = errors.New("order line not found")
	ErrPaymentNotFound  = errors.New("payment record not found")
	ErrDuplicateTableID = errors.New("table id already exists")
	ErrInvalidOrderLine = errors.New("order lines need a unique id")
)

// Collection is a bit set naming the persisted collections an action touched
type Collection uint8

const (
	CollectionTables Collection = 1 << iota
	CollectionCatalog
	CollectionInventory
	CollectionPurchases
)

// Has reports whether c includes other
func (c Collection) Has(other Collection) bool {
	return c&other != 0
}

// State is the whole in-memory floor
type State struct {
	Tables          []entity.Table         `json:"tables"`
	Catalog         []entity.MenuItem      `json:"catalog"`
	Inventory       []entity.InventoryItem `json:"inventory"`
	Purchases       []entity.Purchase      `json:"purchases"`
	View            enum.View              `json:"view"`
	SelectedTableID string                 `json:"selected_table_id,omitempty"`
}

// Outcome describes what an applied action did
type Outcome struct {
	Changed          Collection
	TableID          string
	Transition       billing.Transition
	SelectionCleared bool
	// Ignored is set when invalid input was silently refused
	Ignored bool
}

// Action is a single user intent applied by Apply
type Action interface {
	apply(s *State) (Outcome, error)
}

// Apply returns the state that results from applying a to s. The input state
// is never modified; on error the input state is returned unchanged.
func Apply(s State, a Action) (State, Outcome, error) {
	next := s.clone()
	out, err := a.apply(&next)
	if err != nil {
		return s, Outcome{}, err
	}
	return next, out, nil
}

func (s State) clone() State {
	c := s
	c.Tables = cloneSlice(s.Tables)
	c.Catalog = cloneSlice(s.Catalog)
	c.Inventory = cloneSlice(s.Inventory)
	c.Purchases = cloneSlice(s.Purchases)
	return c
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

// FindTable returns the index of the table with the given id, or -1
func (s *State) FindTable(id string) int {
	for i := range s.Tables {
		if s.Tables[i].ID == id {
			return i
		}
	}
	return -1
}

// Table returns a copy of the table with the given id
func (s *State) Table(id string) (entity.Table, bool) {
	i := s.FindTable(id)
	if i < 0 {
		return entity.Table{}, false
	}
	return s.Tables[i].Clone(), true
}

// Totals folds the current state into the floor-wide rollup
func (s *State) Totals() billing.GlobalTotals {
	return billing.Aggregate(s.Tables, s.Purchases)
}

// NextTableNumber is one more than the highest regular table number
func NextTableNumber(tables []entity.Table) int {
	max := 0
	for i := range tables {
		if tables[i].IsCounter() {
			continue
		}
		if tables[i].Number > max {
			max = tables[i].Number
		}
	}
	return max + 1
}

// EnsureCounter prepends a fresh counter table when none is present
func EnsureCounter(tables []entity.Table) ([]entity.Table, bool) {
	for i := range tables {
		if tables[i].IsCounter() {
			return tables, false
		}
	}
	out := make([]entity.Table, 0, len(tables)+1)
	out = append(out, entity.NewCounterTable())
	out = append(out, tables...)
	return out, true
}

// Normalize prepares freshly loaded state: the counter exists, numeric fields
// are clamped and derived fields are current. Invoicing flags are kept as stored.
func Normalize(s State) State {
	next := s.clone()
	next.Tables, _ = EnsureCounter(next.Tables)
	for i := range next.Tables {
		invoiced := next.Tables[i].IsInvoiced
		derived, _ := billing.Derive(next.Tables[i])
		if !derived.IsCounter() {
			derived.IsInvoiced = invoiced
		}
		next.Tables[i] = derived
	}
	if next.Catalog == nil {
		next.Catalog = []entity.MenuItem{}
	}
	if next.Inventory == nil {
		next.Inventory = []entity.InventoryItem{}
	}
	if next.Purchases == nil {
		next.Purchases = []entity.Purchase{}
	}
	if next.SelectedTableID != "" && next.FindTable(next.SelectedTableID) < 0 {
		next.SelectedTableID = ""
		next.View = enum.ViewDashboard
	}
	return next
}
