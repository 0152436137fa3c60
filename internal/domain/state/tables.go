package state

import (
	"fmt"
	"strings"

	"github.com/sangkips/gestor-mesas/internal/domain/billing"
	"github.com/sangkips/gestor-mesas/internal/domain/entity"
	"github.com/sangkips/gestor-mesas/internal/domain/enum"
)

// commit derives t, stores it at index i and handles the selection rule:
// a table that gets invoiced or reopened while selected drops back to the dashboard.
func (s *State) commit(i int, t entity.Table) Outcome {
	derived, tr := billing.Derive(t)
	s.Tables[i] = derived

	out := Outcome{Changed: CollectionTables, TableID: derived.ID, Transition: tr}
	if tr.Changed() && s.SelectedTableID == derived.ID {
		s.SelectedTableID = ""
		s.View = enum.ViewDashboard
		out.SelectionCleared = true
	}
	return out
}

func (s *State) mustTable(id string) (int, entity.Table, error) {
	i := s.FindTable(id)
	if i < 0 {
		return -1, entity.Table{}, ErrTableNotFound
	}
	return i, s.Tables[i].Clone(), nil
}

// AddTable opens a new regular table numbered after the highest existing one
type AddTable struct {
	ID string
}

func (a AddTable) apply(s *State) (Outcome, error) {
	if a.ID == "" || a.ID == entity.CounterTableID || s.FindTable(a.ID) >= 0 {
		return Outcome{}, ErrDuplicateTableID
	}
	n := NextTableNumber(s.Tables)
	t := entity.Table{
		ID:             a.ID,
		Number:         n,
		Name:           fmt.Sprintf("Mesa %d", n),
		Products:       []entity.OrderLine{},
		SplitCount:     1,
		PaymentRecords: []entity.PaymentRecord{},
	}
	s.Tables = append(s.Tables, t)
	return s.commit(len(s.Tables)-1, t), nil
}

// UpdateTable replaces a table wholesale, then re-derives it. The invoicing
// flag and the creation time of existing lines are kept from the stored
// table; lines not stored yet are stamped with Now (Unix milliseconds).
type UpdateTable struct {
	Table entity.Table
	Now   int64
}

func (a UpdateTable) apply(s *State) (Outcome, error) {
	i, current, err := s.mustTable(a.Table.ID)
	if err != nil {
		return Outcome{}, err
	}
	t := a.Table.Clone()
	if current.IsCounter() {
		if t.Name != current.Name {
			return Outcome{}, ErrProtectedTable
		}
		t.Number = current.Number
	}
	t.IsInvoiced = current.IsInvoiced

	seen := make(map[string]bool, len(t.Products))
	for j := range t.Products {
		id := t.Products[j].ID
		if id == "" || seen[id] {
			return Outcome{}, ErrInvalidOrderLine
		}
		seen[id] = true
		if k := current.FindProduct(id); k >= 0 {
			t.Products[j].CreatedAt = current.Products[k].CreatedAt
		} else {
			t.Products[j].CreatedAt = a.Now
		}
	}
	return s.commit(i, t), nil
}

// DeleteTable removes a table; the counter is never removed
type DeleteTable struct {
	ID string
}

func (a DeleteTable) apply(s *State) (Outcome, error) {
	if a.ID == entity.CounterTableID {
		return Outcome{}, ErrProtectedTable
	}
	i := s.FindTable(a.ID)
	if i < 0 {
		return Outcome{}, ErrTableNotFound
	}
	s.Tables = append(s.Tables[:i:i], s.Tables[i+1:]...)

	out := Outcome{Changed: CollectionTables, TableID: a.ID}
	if s.SelectedTableID == a.ID {
		s.SelectedTableID = ""
		s.View = enum.ViewDashboard
		out.SelectionCleared = true
	}
	return out, nil
}

// RenameTable changes a regular table's display name
type RenameTable struct {
	ID   string
	Name string
}

func (a RenameTable) apply(s *State) (Outcome, error) {
	if a.ID == entity.CounterTableID {
		return Outcome{}, ErrProtectedTable
	}
	i, t, err := s.mustTable(a.ID)
	if err != nil {
		return Outcome{}, err
	}
	name := strings.TrimSpace(a.Name)
	if name == "" {
		name = fmt.Sprintf("Mesa %d", t.Number)
	}
	t.Name = name
	return s.commit(i, t), nil
}

// AddOrderLine appends a product to a table
type AddOrderLine struct {
	TableID string
	Line    entity.OrderLine
}

func (a AddOrderLine) apply(s *State) (Outcome, error) {
	i, t, err := s.mustTable(a.TableID)
	if err != nil {
		return Outcome{}, err
	}
	if a.Line.ID == "" || t.FindProduct(a.Line.ID) >= 0 {
		return Outcome{Ignored: true, TableID: t.ID}, nil
	}
	line := a.Line
	line.Description = strings.TrimSpace(line.Description)
	t.Products = append(t.Products, line)
	return s.commit(i, t), nil
}

// UpdateOrderLine edits quantity, description, price and delivery of a line.
// The creation timestamp is kept from the stored line.
type UpdateOrderLine struct {
	TableID string
	Line    entity.OrderLine
}

func (a UpdateOrderLine) apply(s *State) (Outcome, error) {
	i, t, err := s.mustTable(a.TableID)
	if err != nil {
		return Outcome{}, err
	}
	j := t.FindProduct(a.Line.ID)
	if j < 0 {
		return Outcome{}, ErrProductNotFound
	}
	line := a.Line
	line.CreatedAt = t.Products[j].CreatedAt
	t.Products[j] = line
	return s.commit(i, t), nil
}

// RemoveOrderLine deletes a line from a table
type RemoveOrderLine struct {
	TableID string
	LineID  string
}

func (a RemoveOrderLine) apply(s *State) (Outcome, error) {
	i, t, err := s.mustTable(a.TableID)
	if err != nil {
		return Outcome{}, err
	}
	j := t.FindProduct(a.LineID)
	if j < 0 {
		return Outcome{}, ErrProductNotFound
	}
	t.Products = append(t.Products[:j:j], t.Products[j+1:]...)
	return s.commit(i, t), nil
}

// MarkDelivered sets the delivered flag of one line
type MarkDelivered struct {
	TableID   string
	LineID    string
	Delivered bool
}

func (a MarkDelivered) apply(s *State) (Outcome, error) {
	i, t, err := s.mustTable(a.TableID)
	if err != nil {
		return Outcome{}, err
	}
	j := t.FindProduct(a.LineID)
	if j < 0 {
		return Outcome{}, ErrProductNotFound
	}
	t.Products[j].Delivered = a.Delivered
	return s.commit(i, t), nil
}

// AddPayment records a payment and adds it to the method total.
// Non-positive amounts and unknown methods are ignored.
type AddPayment struct {
	TableID string
	Record  entity.PaymentRecord
}

func (a AddPayment) apply(s *State) (Outcome, error) {
	i, t, err := s.mustTable(a.TableID)
	if err != nil {
		return Outcome{}, err
	}
	r := a.Record
	if r.ID == "" || billing.Clamp(r.Amount) <= 0 || !r.Method.IsValid() {
		return Outcome{Ignored: true, TableID: t.ID}, nil
	}
	t.PaymentRecords = append(t.PaymentRecords, r)
	t.Payments = t.Payments.With(r.Method, billing.AddAmount(t.Payments.Get(r.Method), r.Amount))
	return s.commit(i, t), nil
}

// RemovePayment retracts a payment record; the method total never drops below zero
type RemovePayment struct {
	TableID  string
	RecordID string
}

func (a RemovePayment) apply(s *State) (Outcome, error) {
	i, t, err := s.mustTable(a.TableID)
	if err != nil {
		return Outcome{}, err
	}
	for j, r := range t.PaymentRecords {
		if r.ID != a.RecordID {
			continue
		}
		t.PaymentRecords = append(t.PaymentRecords[:j:j], t.PaymentRecords[j+1:]...)
		t.Payments = t.Payments.With(r.Method, billing.SubtractAmount(t.Payments.Get(r.Method), r.Amount))
		return s.commit(i, t), nil
	}
	return Outcome{}, ErrPaymentNotFound
}

// SetPayments overwrites the per-method totals directly
type SetPayments struct {
	TableID  string
	Payments entity.PaymentTotals
}

func (a SetPayments) apply(s *State) (Outcome, error) {
	i, t, err := s.mustTable(a.TableID)
	if err != nil {
		return Outcome{}, err
	}
	t.Payments = a.Payments
	return s.commit(i, t), nil
}

// SetSplitCount sets how many people share the bill
type SetSplitCount struct {
	TableID string
	Count   int
}

func (a SetSplitCount) apply(s *State) (Outcome, error) {
	i, t, err := s.mustTable(a.TableID)
	if err != nil {
		return Outcome{}, err
	}
	t.SplitCount = billing.ClampSplit(a.Count)
	return s.commit(i, t), nil
}

// SetManualTotal overrides the displayed total of a regular table
type SetManualTotal struct {
	TableID string
	Total   float64
}

func (a SetManualTotal) apply(s *State) (Outcome, error) {
	i, t, err := s.mustTable(a.TableID)
	if err != nil {
		return Outcome{}, err
	}
	t.ManualTotal = a.Total
	return s.commit(i, t), nil
}
