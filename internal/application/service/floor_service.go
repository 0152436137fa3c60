package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/sangkips/gestor-mesas/internal/domain/billing"
	"github.com/sangkips/gestor-mesas/internal/domain/entity"
	"github.com/sangkips/gestor-mesas/internal/domain/repository"
	"github.com/sangkips/gestor-mesas/internal/domain/state"
	"github.com/sangkips/gestor-mesas/internal/infrastructure/messaging"
	"github.com/sangkips/gestor-mesas/pkg/apperror"
	"github.com/sangkips/gestor-mesas/pkg/utils"
)

const publishTimeout = 5 * time.Second

// FloorService owns the single floor state. Updates are applied one at a
// time; each changed collection is written back to the store.
type FloorService struct {
	mu     sync.Mutex
	st     state.State
	store  repository.CollectionRepository
	events messaging.EventPublisher

	now   func() time.Time
	newID func() string
}

// NewFloorService creates a floor service. Call Load before serving requests.
func NewFloorService(store repository.CollectionRepository, events messaging.EventPublisher) *FloorService {
	if events == nil {
		events = messaging.NewLogPublisher()
	}
	return &FloorService{
		st:     state.Normalize(state.State{}),
		store:  store,
		events: events,
		now:    time.Now,
		newID:  utils.NewID,
	}
}

// SetClock replaces the time source used for order and purchase timestamps
func (s *FloorService) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Now returns the current time of the service clock
func (s *FloorService) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now()
}

// NewID returns a fresh identifier
func (s *FloorService) NewID() string {
	return s.newID()
}

// Load reads every collection from the store. Malformed documents are logged
// and treated as empty; a catalog that was never stored is seeded.
func (s *FloorService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		next         state.State
		tablesFound  bool
		catalogFound bool
		err          error
	)
	if next.Tables, tablesFound, err = loadCollection[entity.Table](ctx, s.store, repository.KeyTables); err != nil {
		return err
	}
	if next.Catalog, catalogFound, err = loadCollection[entity.MenuItem](ctx, s.store, repository.KeyCatalog); err != nil {
		return err
	}
	if next.Inventory, _, err = loadCollection[entity.InventoryItem](ctx, s.store, repository.KeyInventory); err != nil {
		return err
	}
	if next.Purchases, _, err = loadCollection[entity.Purchase](ctx, s.store, repository.KeyPurchases); err != nil {
		return err
	}

	var seeded state.Collection
	if !catalogFound {
		next.Catalog = state.SeedCatalog(s.newID)
		seeded |= state.CollectionCatalog
		log.Printf("Seeded catalog with %d items", len(next.Catalog))
	}

	hadCounter := false
	for i := range next.Tables {
		if next.Tables[i].IsCounter() {
			hadCounter = true
			break
		}
	}
	next = state.Normalize(next)
	if !tablesFound || !hadCounter {
		seeded |= state.CollectionTables
	}
	s.st = next
	s.persist(ctx, seeded)

	log.Printf("Floor loaded: %d tables, %d menu items, %d inventory items, %d purchases",
		len(next.Tables), len(next.Catalog), len(next.Inventory), len(next.Purchases))
	return nil
}

// loadCollection also reports whether the key held a document at all
func loadCollection[T any](ctx context.Context, store repository.CollectionRepository, key string) ([]T, bool, error) {
	payload, err := store.Get(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load %s: %w", key, err)
	}
	if payload == nil {
		return []T{}, false, nil
	}
	var items []T
	if err := json.Unmarshal(payload, &items); err != nil {
		log.Printf("Warning: discarding malformed %s: %v", key, err)
		return []T{}, true, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, true, nil
}

// Snapshot returns a copy of the current state
func (s *FloorService) Snapshot() state.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyState(s.st)
}

// Dispatch applies an action, persists what changed and publishes the
// resulting events. Domain errors come back as *apperror.AppError.
func (s *FloorService) Dispatch(ctx context.Context, action state.Action) (state.Outcome, error) {
	s.mu.Lock()
	next, out, err := state.Apply(s.st, action)
	if err != nil {
		s.mu.Unlock()
		return out, mapStateError(err)
	}
	s.st = next
	s.persist(ctx, out.Changed)

	var table entity.Table
	if out.TableID != "" {
		table, _ = s.st.Table(out.TableID)
	}
	s.mu.Unlock()

	s.publish(action, out, table)
	return out, nil
}

// persist writes each changed collection; failures are logged, never returned
func (s *FloorService) persist(ctx context.Context, changed state.Collection) {
	if changed == 0 {
		return
	}
	write := func(key string, v interface{}) {
		payload, err := json.Marshal(v)
		if err != nil {
			log.Printf("Warning: failed to encode %s: %v", key, err)
			return
		}
		if err := s.store.Put(ctx, key, payload); err != nil {
			log.Printf("Warning: failed to persist %s: %v", key, err)
		}
	}
	if changed.Has(state.CollectionTables) {
		write(repository.KeyTables, s.st.Tables)
	}
	if changed.Has(state.CollectionCatalog) {
		write(repository.KeyCatalog, s.st.Catalog)
	}
	if changed.Has(state.CollectionInventory) {
		write(repository.KeyInventory, s.st.Inventory)
	}
	if changed.Has(state.CollectionPurchases) {
		write(repository.KeyPurchases, s.st.Purchases)
	}
}

func (s *FloorService) publish(action state.Action, out state.Outcome, table entity.Table) {
	var events []messaging.Event

	switch out.Transition {
	case billing.TransitionInvoiced:
		events = append(events, messaging.Event{Type: messaging.EventTableInvoiced, Payload: billing.Evaluate(&table)})
	case billing.TransitionReopened:
		events = append(events, messaging.Event{Type: messaging.EventTableReopened, Payload: billing.Evaluate(&table)})
	}
	if a, ok := action.(state.AddOrderLine); ok && out.Changed != 0 {
		events = append(events, messaging.Event{Type: messaging.EventOrderAdded, Payload: a.Line})
	}
	if len(events) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	for _, e := range events {
		e.TableID = table.ID
		e.TableName = table.Name
		e.OccurredAt = s.Now()
		if err := s.events.Publish(ctx, e); err != nil {
			log.Printf("Warning: failed to publish %s for table %s: %v", e.Type, table.ID, err)
		}
	}
}

func copyState(st state.State) state.State {
	c := st
	c.Tables = make([]entity.Table, len(st.Tables))
	for i := range st.Tables {
		c.Tables[i] = st.Tables[i].Clone()
	}
	c.Catalog = append([]entity.MenuItem{}, st.Catalog...)
	c.Inventory = append([]entity.InventoryItem{}, st.Inventory...)
	c.Purchases = append([]entity.Purchase{}, st.Purchases...)
	return c
}

func mapStateError(err error) error {
	switch {
	case errors.Is(err, state.ErrTableNotFound):
		return apperror.NewNotFoundError("Table")
	case errors.Is(err, state.ErrProductNotFound):
		return apperror.NewNotFoundError("Order line")
	case errors.Is(err, state.ErrPaymentNotFound):
		return apperror.NewNotFoundError("Payment record")
	case errors.Is(err, state.ErrProtectedTable):
		return apperror.NewForbiddenError("The counter table cannot be deleted or renamed")
	case errors.Is(err, state.ErrInvalidOrderLine):
		return apperror.NewBadRequestError("Every order line needs a unique id")
	case errors.Is(err, state.ErrDuplicateTableID):
		return apperror.NewConflictError("Table already exists")
	}
	return err
}
