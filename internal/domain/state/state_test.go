package state

import (
	"fmt"
	"testing"

	"github.com/sangkips/gestor-mesas/internal/domain/billing"
	"github.com/sangkips/gestor-mesas/internal/domain/entity"
	"github.com/sangkips/gestor-mesas/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freshState() State {
	return Normalize(State{})
}

func mustApply(t *testing.T, s State, a Action) (State, Outcome) {
	t.Helper()
	next, out, err := Apply(s, a)
	require.NoError(t, err)
	return next, out
}

func TestNormalizeSeedsCounter(t *testing.T) {
	s := freshState()
	require.Len(t, s.Tables, 1)
	assert.Equal(t, entity.CounterTableID, s.Tables[0].ID)
	assert.Equal(t, entity.CounterTableName, s.Tables[0].Name)

	again := Normalize(s)
	assert.Len(t, again.Tables, 1)
}

func TestNormalizePrependsCounterAndKeepsInvoicedFlag(t *testing.T) {
	s := Normalize(State{Tables: []entity.Table{
		{ID: "a", Number: 3, Name: "Mesa 3", IsInvoiced: true},
	}, SelectedTableID: "gone", View: enum.ViewTableDetail})

	require.Len(t, s.Tables, 2)
	assert.True(t, s.Tables[0].IsCounter())
	assert.True(t, s.Tables[1].IsInvoiced)
	assert.Equal(t, 1, s.Tables[1].SplitCount)
	assert.Empty(t, s.SelectedTableID)
	assert.Equal(t, enum.ViewDashboard, s.View)
}

func TestAddTableNumbersAfterHighestRegular(t *testing.T) {
	s := freshState()
	s, _ = mustApply(t, s, AddTable{ID: "a"})
	s, _ = mustApply(t, s, AddTable{ID: "b"})
	s, _ = mustApply(t, s, DeleteTable{ID: "a"})
	s, out := mustApply(t, s, AddTable{ID: "c"})

	assert.True(t, out.Changed.Has(CollectionTables))
	table, ok := s.Table("c")
	require.True(t, ok)
	assert.Equal(t, 3, table.Number)
	assert.Equal(t, "Mesa 3", table.Name)
	assert.Equal(t, 1, table.SplitCount)
	assert.False(t, table.IsInvoiced)

	_, _, err := Apply(s, AddTable{ID: "c"})
	assert.ErrorIs(t, err, ErrDuplicateTableID)
}

func TestNextTableNumberIgnoresCounter(t *testing.T) {
	assert.Equal(t, 1, NextTableNumber(nil))
	assert.Equal(t, 1, NextTableNumber([]entity.Table{entity.NewCounterTable()}))
	assert.Equal(t, 8, NextTableNumber([]entity.Table{{ID: "x", Number: 7}, {ID: "y", Number: 2}}))
}

func TestCounterIsProtected(t *testing.T) {
	s := freshState()

	_, _, err := Apply(s, DeleteTable{ID: entity.CounterTableID})
	assert.ErrorIs(t, err, ErrProtectedTable)

	_, _, err = Apply(s, RenameTable{ID: entity.CounterTableID, Name: "Janela"})
	assert.ErrorIs(t, err, ErrProtectedTable)

	counter := s.Tables[0].Clone()
	counter.Name = "Janela"
	_, _, err = Apply(s, UpdateTable{Table: counter})
	assert.ErrorIs(t, err, ErrProtectedTable)
	assert.Equal(t, entity.CounterTableName, s.Tables[0].Name)
}

func TestUnknownTable(t *testing.T) {
	s := freshState()
	_, _, err := Apply(s, UpdateTable{Table: entity.Table{ID: "nope"}})
	assert.ErrorIs(t, err, ErrTableNotFound)

	_, _, err = Apply(s, DeleteTable{ID: "nope"})
	assert.ErrorIs(t, err, ErrTableNotFound)
}

func tableWithLine(t *testing.T) State {
	t.Helper()
	s := freshState()
	s, _ = mustApply(t, s, AddTable{ID: "a"})
	s, _ = mustApply(t, s, AddOrderLine{TableID: "a", Line: entity.OrderLine{
		ID: "p1", Quantity: 2, UnitPrice: 10, CreatedAt: 1000,
	}})
	return s
}

func TestUpdateTableCannotForceInvoiced(t *testing.T) {
	s := tableWithLine(t)
	table, _ := s.Table("a")
	table.IsInvoiced = true
	table.Payments.Cash = 20
	table.Products[0].CreatedAt = 999999

	s, out := mustApply(t, s, UpdateTable{Table: table, Now: 5000})
	got, _ := s.Table("a")
	assert.False(t, got.IsInvoiced)
	assert.Equal(t, billing.TransitionNone, out.Transition)
	assert.Equal(t, int64(1000), got.Products[0].CreatedAt)
}

func TestUpdateTableInvoicesThroughTheRules(t *testing.T) {
	s := tableWithLine(t)
	s, _ = mustApply(t, s, SelectTable{ID: "a"})
	table, _ := s.Table("a")
	table.Products[0].Delivered = true
	table.Payments.Cash = 20

	s, out := mustApply(t, s, UpdateTable{Table: table})
	assert.Equal(t, billing.TransitionInvoiced, out.Transition)
	assert.True(t, out.SelectionCleared)

	again, _ := s.Table("a")
	again.IsInvoiced = false
	_, out = mustApply(t, s, UpdateTable{Table: again})
	assert.Equal(t, billing.TransitionNone, out.Transition)
}

func TestUpdateTableUnpaidClaimNeverReopens(t *testing.T) {
	s := tableWithLine(t)
	table, _ := s.Table("a")
	table.IsInvoiced = true

	_, out := mustApply(t, s, UpdateTable{Table: table})
	assert.Equal(t, billing.TransitionNone, out.Transition)
}

func TestUpdateTableStampsNewLines(t *testing.T) {
	s := tableWithLine(t)
	table, _ := s.Table("a")
	table.Products = append(table.Products, entity.OrderLine{ID: "p2", Quantity: 1, UnitPrice: 5, CreatedAt: 1})

	s, _ = mustApply(t, s, UpdateTable{Table: table, Now: 7000})
	got, _ := s.Table("a")
	require.Len(t, got.Products, 2)
	assert.Equal(t, int64(1000), got.Products[0].CreatedAt)
	assert.Equal(t, int64(7000), got.Products[1].CreatedAt)

	table.Products = append(table.Products, entity.OrderLine{Quantity: 1})
	_, _, err := Apply(s, UpdateTable{Table: table})
	assert.ErrorIs(t, err, ErrInvalidOrderLine)

	table.Products = []entity.OrderLine{{ID: "p1"}, {ID: "p1"}}
	_, _, err = Apply(s, UpdateTable{Table: table})
	assert.ErrorIs(t, err, ErrInvalidOrderLine)
}

func TestApplyDoesNotModifyInput(t *testing.T) {
	s := freshState()
	s, _ = mustApply(t, s, AddTable{ID: "a"})
	before := s.Tables[1].Clone()

	_, _ = mustApply(t, s, AddOrderLine{TableID: "a", Line: entity.OrderLine{ID: "p1", Quantity: 1, UnitPrice: 5}})
	assert.Equal(t, before, s.Tables[1])
	assert.Len(t, s.Tables, 2)
}

func TestTableGetsInvoicedAndSelectionClears(t *testing.T) {
	s := freshState()
	s, _ = mustApply(t, s, AddTable{ID: "a"})
	s, _ = mustApply(t, s, SelectTable{ID: "a"})
	assert.Equal(t, enum.ViewTableDetail, s.View)

	s, _ = mustApply(t, s, AddOrderLine{TableID: "a", Line: entity.OrderLine{
		ID: "p1", Quantity: 2, UnitPrice: 10, Description: "Cerveja",
	}})
	s, out := mustApply(t, s, MarkDelivered{TableID: "a", LineID: "p1", Delivered: true})
	assert.Equal(t, billing.TransitionNone, out.Transition)

	s, out = mustApply(t, s, AddPayment{TableID: "a", Record: entity.PaymentRecord{
		ID: "r1", Amount: 20, Method: enum.PaymentMethodCash,
	}})
	assert.Equal(t, billing.TransitionInvoiced, out.Transition)
	assert.True(t, out.SelectionCleared)
	assert.Empty(t, s.SelectedTableID)
	assert.Equal(t, enum.ViewDashboard, s.View)

	table, _ := s.Table("a")
	assert.True(t, table.IsInvoiced)
	assert.InDelta(t, 20, table.Payments.Cash, 1e-9)
	assert.Zero(t, table.ManualServiceFee)
}

func TestRemovingPaymentReopensTable(t *testing.T) {
	s := freshState()
	s, _ = mustApply(t, s, AddTable{ID: "a"})
	s, _ = mustApply(t, s, AddOrderLine{TableID: "a", Line: entity.OrderLine{ID: "p1", Quantity: 1, UnitPrice: 30, Delivered: true}})
	s, _ = mustApply(t, s, AddPayment{TableID: "a", Record: entity.PaymentRecord{ID: "r1", Amount: 30, Method: enum.PaymentMethodPix}})

	s, out := mustApply(t, s, RemovePayment{TableID: "a", RecordID: "r1"})
	assert.Equal(t, billing.TransitionReopened, out.Transition)

	table, _ := s.Table("a")
	assert.False(t, table.IsInvoiced)
	assert.Zero(t, table.Payments.Pix)
	assert.Empty(t, table.PaymentRecords)

	_, _, err := Apply(s, RemovePayment{TableID: "a", RecordID: "r1"})
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestPaymentRecordsMatchMethodTotals(t *testing.T) {
	s := freshState()
	s, _ = mustApply(t, s, AddTable{ID: "a"})
	records := []entity.PaymentRecord{
		{ID: "r1", Amount: 0.1, Method: enum.PaymentMethodCash},
		{ID: "r2", Amount: 0.2, Method: enum.PaymentMethodCash},
		{ID: "r3", Amount: 15, Method: enum.PaymentMethodCredit},
	}
	for _, r := range records {
		s, _ = mustApply(t, s, AddPayment{TableID: "a", Record: r})
	}
	s, _ = mustApply(t, s, RemovePayment{TableID: "a", RecordID: "r1"})

	table, _ := s.Table("a")
	assert.Equal(t, 0.2, table.Payments.Cash)
	assert.Equal(t, float64(15), table.Payments.Credit)
	assert.Len(t, table.PaymentRecords, 2)
}

func TestRemovePaymentNeverGoesNegative(t *testing.T) {
	s := freshState()
	s, _ = mustApply(t, s, AddTable{ID: "a"})
	s, _ = mustApply(t, s, AddPayment{TableID: "a", Record: entity.PaymentRecord{ID: "r1", Amount: 50, Method: enum.PaymentMethodDebit}})
	s, _ = mustApply(t, s, SetPayments{TableID: "a", Payments: entity.PaymentTotals{Debit: 10}})

	s, _ = mustApply(t, s, RemovePayment{TableID: "a", RecordID: "r1"})
	table, _ := s.Table("a")
	assert.Zero(t, table.Payments.Debit)
}

func TestInvalidPaymentsAreIgnored(t *testing.T) {
	s := freshState()
	s, _ = mustApply(t, s, AddTable{ID: "a"})

	for _, r := range []entity.PaymentRecord{
		{ID: "r1", Amount: 0, Method: enum.PaymentMethodCash},
		{ID: "r2", Amount: -5, Method: enum.PaymentMethodCash},
		{ID: "r3", Amount: 5, Method: enum.PaymentMethod(9)},
	} {
		next, out := mustApply(t, s, AddPayment{TableID: "a", Record: r})
		assert.True(t, out.Ignored, r.ID)
		assert.Zero(t, out.Changed)
		table, _ := next.Table("a")
		assert.Empty(t, table.PaymentRecords)
	}
}

func TestOrderLineLifecycle(t *testing.T) {
	s := freshState()
	s, _ = mustApply(t, s, AddTable{ID: "a"})
	s, _ = mustApply(t, s, AddOrderLine{TableID: "a", Line: entity.OrderLine{
		ID: "p1", Quantity: 1, UnitPrice: 8, Description: " Pastel ", CreatedAt: 1000,
	}})

	s, _ = mustApply(t, s, UpdateOrderLine{TableID: "a", Line: entity.OrderLine{
		ID: "p1", Quantity: 3, UnitPrice: 8, Description: "Pastel",
	}})
	table, _ := s.Table("a")
	require.Len(t, table.Products, 1)
	assert.Equal(t, "Pastel", table.Products[0].Description)
	assert.Equal(t, int64(1000), table.Products[0].CreatedAt)
	assert.InDelta(t, 24, billing.Subtotal(table.Products), 1e-9)

	s, _ = mustApply(t, s, RemoveOrderLine{TableID: "a", LineID: "p1"})
	table, _ = s.Table("a")
	assert.Empty(t, table.Products)

	_, _, err := Apply(s, MarkDelivered{TableID: "a", LineID: "p1"})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCounterFeeAndTotalAreDerived(t *testing.T) {
	s := freshState()
	s, out := mustApply(t, s, AddOrderLine{TableID: entity.CounterTableID, Line: entity.OrderLine{
		ID: "p1", Quantity: 4, UnitPrice: 5, Delivered: true,
	}})
	s, out = mustApply(t, s, AddPayment{TableID: entity.CounterTableID, Record: entity.PaymentRecord{
		ID: "r1", Amount: 20, Method: enum.PaymentMethodCash,
	}})
	assert.Equal(t, billing.TransitionNone, out.Transition)

	counter, _ := s.Table(entity.CounterTableID)
	assert.False(t, counter.IsInvoiced)
	assert.InDelta(t, 20, counter.ManualTotal, 1e-9)
	assert.InDelta(t, 1, counter.ManualServiceFee, 1e-9)
}

func TestRenameAndSplit(t *testing.T) {
	s := freshState()
	s, _ = mustApply(t, s, AddTable{ID: "a"})
	s, _ = mustApply(t, s, RenameTable{ID: "a", Name: "  Varanda "})
	s, _ = mustApply(t, s, SetSplitCount{TableID: "a", Count: -3})

	table, _ := s.Table("a")
	assert.Equal(t, "Varanda", table.Name)
	assert.Equal(t, 1, table.SplitCount)

	s, _ = mustApply(t, s, RenameTable{ID: "a", Name: ""})
	table, _ = s.Table("a")
	assert.Equal(t, "Mesa 1", table.Name)
}

func TestDeletingSelectedTableClearsSelection(t *testing.T) {
	s := freshState()
	s, _ = mustApply(t, s, AddTable{ID: "a"})
	s, _ = mustApply(t, s, SelectTable{ID: "a"})

	s, out := mustApply(t, s, DeleteTable{ID: "a"})
	assert.True(t, out.SelectionCleared)
	assert.Equal(t, enum.ViewDashboard, s.View)
	assert.Len(t, s.Tables, 1)
}

func TestSetView(t *testing.T) {
	s := freshState()
	s, out := mustApply(t, s, SetView{View: enum.ViewTableDetail})
	assert.True(t, out.Ignored)
	assert.Equal(t, enum.ViewDashboard, s.View)

	s, _ = mustApply(t, s, AddTable{ID: "a"})
	s, _ = mustApply(t, s, SelectTable{ID: "a"})
	s, out = mustApply(t, s, SetView{View: enum.ViewPurchases})
	assert.True(t, out.SelectionCleared)
	assert.Equal(t, enum.ViewPurchases, s.View)

	_, _, err := Apply(s, SelectTable{ID: "missing"})
	assert.ErrorIs(t, err, ErrTableNotFound)
}

func TestCatalogActions(t *testing.T) {
	s := freshState()
	s, out := mustApply(t, s, AddMenuItem{Item: entity.MenuItem{ID: "m1", Name: " Cerveja ", Price: 12}})
	assert.True(t, out.Changed.Has(CollectionCatalog))
	s, out = mustApply(t, s, AddMenuItem{Item: entity.MenuItem{ID: "m2", Name: "  ", Price: 3}})
	assert.True(t, out.Ignored)
	s, out = mustApply(t, s, AddMenuItem{Item: entity.MenuItem{ID: "m3", Name: "Brinde", Price: 0}})
	assert.True(t, out.Ignored)

	require.Len(t, s.Catalog, 1)
	assert.Equal(t, "Cerveja", s.Catalog[0].Name)
	assert.Len(t, SearchCatalog(s.Catalog, "CERV"), 1)
	assert.Empty(t, SearchCatalog(s.Catalog, "suco"))

	s, _ = mustApply(t, s, RemoveMenuItem{ID: "m1"})
	assert.Empty(t, s.Catalog)
}

func TestSeedCatalog(t *testing.T) {
	n := 0
	items := SeedCatalog(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	})
	require.NotEmpty(t, items)
	assert.Equal(t, "id-1", items[0].ID)
	for _, it := range items {
		assert.NotEmpty(t, it.Name)
		assert.Positive(t, it.Price)
	}
}

func TestInventoryActions(t *testing.T) {
	s := freshState()
	s, _ = mustApply(t, s, AddInventoryItem{Item: entity.InventoryItem{ID: "i1", Name: "gelo", Quantity: 10}})
	s, _ = mustApply(t, s, AddInventoryItem{Item: entity.InventoryItem{ID: "i2", Name: "carvão", Quantity: -1}})
	s, out := mustApply(t, s, AddInventoryItem{Item: entity.InventoryItem{ID: "i3", Name: " "}})
	assert.True(t, out.Ignored)

	sorted := SortedInventory(s.Inventory)
	require.Len(t, sorted, 2)
	assert.Equal(t, "CARVÃO", sorted[0].Name)
	assert.Zero(t, sorted[0].Quantity)
	assert.Equal(t, "GELO", sorted[1].Name)

	s, _ = mustApply(t, s, RemoveInventoryItem{ID: "i1"})
	assert.Len(t, s.Inventory, 1)
}

func TestPurchasesAreNewestFirst(t *testing.T) {
	s := freshState()
	s, _ = mustApply(t, s, AddPurchase{Purchase: entity.Purchase{ID: "1", Description: "gelo", Amount: 3, Method: enum.PaymentMethodCash}})
	s, _ = mustApply(t, s, AddPurchase{Purchase: entity.Purchase{ID: "2", Description: " carvão ", Amount: 15, Method: enum.PaymentMethodPix}})

	for _, p := range []entity.Purchase{
		{ID: "3", Description: "", Amount: 5},
		{ID: "4", Description: "limão", Amount: 0},
		{ID: "5", Description: "limão", Amount: -2},
	} {
		var out Outcome
		s, out = mustApply(t, s, AddPurchase{Purchase: p})
		assert.True(t, out.Ignored, p.ID)
	}

	require.Len(t, s.Purchases, 2)
	assert.Equal(t, "CARVÃO", s.Purchases[0].Description)
	assert.Equal(t, "GELO", s.Purchases[1].Description)

	totals := s.Totals()
	assert.InDelta(t, 18, totals.TotalPurchases, 1e-9)
	assert.InDelta(t, -3, totals.TotalCash, 1e-9)

	s, _ = mustApply(t, s, RemovePurchase{ID: "1"})
	assert.Len(t, s.Purchases, 1)
}

func TestReplaceActionsFilterLikeAdds(t *testing.T) {
	s := freshState()

	s, _ = mustApply(t, s, ReplaceCatalog{Items: []entity.MenuItem{
		{ID: "m1", Name: " Cerveja ", Price: 12},
		{ID: "m2", Name: "", Price: 3},
		{ID: "m3", Name: "Brinde", Price: 0},
		{Name: "Sem id", Price: 5},
	}})
	require.Len(t, s.Catalog, 1)
	assert.Equal(t, "Cerveja", s.Catalog[0].Name)

	s, _ = mustApply(t, s, ReplaceInventory{Items: []entity.InventoryItem{
		{ID: "i1", Name: " gelo ", Quantity: -4},
		{ID: "i2", Name: "  "},
	}})
	require.Len(t, s.Inventory, 1)
	assert.Equal(t, "GELO", s.Inventory[0].Name)
	assert.Zero(t, s.Inventory[0].Quantity)

	s, _ = mustApply(t, s, ReplacePurchases{Purchases: []entity.Purchase{
		{ID: "1", Description: " limão ", Amount: 5, Method: enum.PaymentMethodPix},
		{ID: "2", Description: "", Amount: 5},
		{ID: "3", Description: "gelo", Amount: 0},
		{ID: "4", Description: "gelo", Amount: 2, Method: enum.PaymentMethod(9)},
	}})
	require.Len(t, s.Purchases, 1)
	assert.Equal(t, "LIMÃO", s.Purchases[0].Description)
}
