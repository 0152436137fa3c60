package billing

import (
	"math"
	"testing"

	"github.com/sangkips/gestor-mesas/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ordinaryTable(products ...entity.OrderLine) entity.Table {
	return entity.Table{
		ID:         "t1",
		Number:     1,
		Name:       "Mesa 1",
		Products:   products,
		SplitCount: 1,
	}
}

func line(qty, price float64, delivered bool) entity.OrderLine {
	return entity.OrderLine{ID: "p", Quantity: qty, UnitPrice: price, Delivered: delivered}
}

func TestSubtotalAndSuggestedFee(t *testing.T) {
	products := []entity.OrderLine{line(2, 10, false), line(3, 4.5, true)}

	assert.InDelta(t, 33.5, Subtotal(products), 1e-9)
	assert.InDelta(t, 3.35, SuggestedFee(33.5), 1e-9)
	assert.InDelta(t, 5, TotalQuantity(products), 1e-9)
}

func TestEmptyTableIsNeverPaid(t *testing.T) {
	table := ordinaryTable()
	table.Payments.Cash = 50

	s := Evaluate(&table)
	assert.Zero(t, s.Subtotal)
	assert.False(t, s.IsPaid)
	assert.False(t, s.AllDelivered)
}

func TestOrdinaryAccountedFeeIsPaymentSurplus(t *testing.T) {
	table := ordinaryTable(line(1, 100, true))
	table.Payments.Cash = 100
	table.Payments.Credit = 15

	assert.InDelta(t, 15, AccountedFee(&table), 1e-9)

	table.Payments.Credit = 0
	table.Payments.Cash = 80
	assert.Zero(t, AccountedFee(&table))
}

func TestCounterFeeIsPerItemSurcharge(t *testing.T) {
	counter := entity.NewCounterTable()
	counter.Products = []entity.OrderLine{line(3, 7, false), line(1, 2, false)}

	assert.InDelta(t, 1.00, AccountedFee(&counter), 1e-9)

	counter.Payments.Pix = 500
	assert.InDelta(t, 1.00, AccountedFee(&counter), 1e-9, "payments do not affect the counter fee")
}

func TestDeriveCounterForcesTotalToSubtotal(t *testing.T) {
	counter := entity.NewCounterTable()
	counter.Products = []entity.OrderLine{line(4, 5, true)}
	counter.Payments.Cash = 20
	counter.ManualTotal = 999

	out, tr := Derive(counter)
	assert.Equal(t, TransitionNone, tr)
	assert.False(t, out.IsInvoiced)
	assert.InDelta(t, 20, out.ManualTotal, 1e-9)
	assert.InDelta(t, 1.00, out.ManualServiceFee, 1e-9)
}

func TestDeriveInvoicesWhenDeliveredAndPaid(t *testing.T) {
	table := ordinaryTable(line(2, 10, true))
	table.Payments.Cash = 20

	out, tr := Derive(table)
	assert.Equal(t, TransitionInvoiced, tr)
	assert.True(t, out.IsInvoiced)
	assert.Zero(t, out.ManualServiceFee)
}

func TestDeriveStaysOpenWhileUndelivered(t *testing.T) {
	table := ordinaryTable(line(2, 10, true), line(1, 5, false))
	table.Payments.Cash = 25

	out, tr := Derive(table)
	assert.Equal(t, TransitionNone, tr)
	assert.False(t, out.IsInvoiced)
}

func TestDeriveReopensWhenPaymentRetracted(t *testing.T) {
	table := ordinaryTable(line(2, 10, true))
	table.IsInvoiced = true
	table.Payments.Cash = 5

	out, tr := Derive(table)
	assert.Equal(t, TransitionReopened, tr)
	assert.False(t, out.IsInvoiced)
}

func TestDeriveInvoicedTableStaysInvoicedWhenStillPaid(t *testing.T) {
	table := ordinaryTable(line(2, 10, false))
	table.IsInvoiced = true
	table.Payments.Cash = 20

	out, tr := Derive(table)
	assert.Equal(t, TransitionNone, tr)
	assert.True(t, out.IsInvoiced)
}

func TestDeriveIsIdempotent(t *testing.T) {
	table := ordinaryTable(line(2, 10, true), line(1, 3, false))
	table.Payments.Pix = 30

	first, _ := Derive(table)
	second, tr := Derive(first)
	assert.Equal(t, TransitionNone, tr)
	assert.Equal(t, first, second)

	again, _ := Derive(table)
	assert.Equal(t, first, again)
}

func TestDeriveDoesNotMutateInput(t *testing.T) {
	table := ordinaryTable(line(-2, 10, true))
	table.Payments.Cash = 20

	_, _ = Derive(table)
	assert.Equal(t, float64(-2), table.Products[0].Quantity)
	assert.False(t, table.IsInvoiced)
}

func TestSanitizeClampsBadNumbers(t *testing.T) {
	table := ordinaryTable(line(math.NaN(), -3, false))
	table.Payments.Debit = math.Inf(1)
	table.Payments.Cash = -10
	table.SplitCount = 0

	out := Sanitize(table)
	require.Len(t, out.Products, 1)
	assert.Zero(t, out.Products[0].Quantity)
	assert.Zero(t, out.Products[0].UnitPrice)
	assert.Zero(t, out.Payments.Debit)
	assert.Zero(t, out.Payments.Cash)
	assert.Equal(t, 1, out.SplitCount)
	assert.NotNil(t, out.PaymentRecords)
}

func TestPerPersonDividesTotal(t *testing.T) {
	table := ordinaryTable(line(1, 90, false))
	table.Payments.Cash = 100
	table.SplitCount = 4

	assert.InDelta(t, 25, PerPerson(&table), 1e-9)

	table.SplitCount = 0
	assert.InDelta(t, 100, PerPerson(&table), 1e-9)
}

func TestEvaluateRemaining(t *testing.T) {
	table := ordinaryTable(line(3, 10, false))
	table.Payments.Cash = 12

	s := Evaluate(&table)
	assert.InDelta(t, 18, s.Remaining, 1e-9)
	assert.InDelta(t, 33, s.SuggestedTotal, 1e-9)
	assert.InDelta(t, 30, s.Total, 1e-9)
}

func TestTransitionString(t *testing.T) {
	assert.Equal(t, "none", TransitionNone.String())
	assert.Equal(t, "invoiced", TransitionInvoiced.String())
	assert.Equal(t, "reopened", TransitionReopened.String())
	assert.Equal(t, "Transition(7)", Transition(7).String())
	assert.False(t, TransitionNone.Changed())
}
