// Package billing derives a table's financial status from its order lines and
// payments, and folds every table and purchase into the floor-wide totals.
//
// All functions are pure: they never modify their arguments and give the same
// result for the same input.
package billing

import (
	"fmt"
	"math"

	"github.com/sangkips/gestor-mesas/internal/domain/entity"
	"github.com/sangkips/gestor-mesas/internal/domain/enum"
	"github.com/shopspring/decimal"
)

var (
	// SuggestedFeeRate is the service fee shown as a suggestion on ordinary tables
	SuggestedFeeRate = decimal.RequireFromString("0.10")
	// CounterFeePerItem is the fixed surcharge per item sold at the counter
	CounterFeePerItem = decimal.RequireFromString("0.25")
)

// Transition is the invoicing state change produced by Derive
type Transition int

const (
	TransitionNone     Transition = 0
	TransitionInvoiced Transition = 1
	TransitionReopened Transition = 2
)

func (t Transition) String() string {
	switch t {
	case TransitionNone:
		return "none"
	case TransitionInvoiced:
		return "invoiced"
	case TransitionReopened:
		return "reopened"
	}
	return fmt.Sprintf("Transition(%d)", int(t))
}

// Changed reports whether the table moved between open and invoiced
func (t Transition) Changed() bool {
	return t != TransitionNone
}

// Summary holds every value derived for a table
type Summary struct {
	Subtotal       float64 `json:"subtotal"`
	TotalQuantity  float64 `json:"total_quantity"`
	TotalPayments  float64 `json:"total_payments"`
	SuggestedFee   float64 `json:"suggested_fee"`
	SuggestedTotal float64 `json:"suggested_total"`
	AccountedFee   float64 `json:"accounted_fee"`
	Total          float64 `json:"total"`
	Remaining      float64 `json:"remaining"`
	PerPerson      float64 `json:"per_person"`
	AllDelivered   bool    `json:"all_delivered"`
	IsPaid         bool    `json:"is_paid"`
	IsCounter      bool    `json:"is_counter"`
}

// Clamp coerces non-finite or negative input to zero
func Clamp(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// ClampSplit coerces a split count to at least one
func ClampSplit(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

func dec(v float64) decimal.Decimal {
	return decimal.NewFromFloat(Clamp(v))
}

func subtotal(products []entity.OrderLine) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range products {
		sum = sum.Add(dec(p.Quantity).Mul(dec(p.UnitPrice)))
	}
	return sum
}

func totalQuantity(products []entity.OrderLine) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range products {
		sum = sum.Add(dec(p.Quantity))
	}
	return sum
}

func totalPayments(p entity.PaymentTotals) decimal.Decimal {
	sum := decimal.Zero
	for _, m := range enum.PaymentMethods {
		sum = sum.Add(dec(p.Get(m)))
	}
	return sum
}

// Subtotal returns the sum of quantity times unit price over all order lines
func Subtotal(products []entity.OrderLine) float64 {
	return subtotal(products).InexactFloat64()
}

// TotalQuantity returns the number of items ordered
func TotalQuantity(products []entity.OrderLine) float64 {
	return totalQuantity(products).InexactFloat64()
}

// TotalPayments returns cash + pix + debit + credit
func TotalPayments(p entity.PaymentTotals) float64 {
	return totalPayments(p).InexactFloat64()
}

// AllDelivered reports whether there is at least one order line and every line was delivered
func AllDelivered(products []entity.OrderLine) bool {
	if len(products) == 0 {
		return false
	}
	for _, p := range products {
		if !p.Delivered {
			return false
		}
	}
	return true
}

// SuggestedFee returns the 10% service fee suggestion for a subtotal
func SuggestedFee(subtotal float64) float64 {
	return dec(subtotal).Mul(SuggestedFeeRate).InexactFloat64()
}

func isPaid(sub, paid decimal.Decimal) bool {
	return sub.IsPositive() && paid.GreaterThanOrEqual(sub)
}

// IsPaid reports whether the payments cover a positive subtotal
func IsPaid(t *entity.Table) bool {
	return isPaid(subtotal(t.Products), totalPayments(t.Payments))
}

func accountedFee(t *entity.Table, sub, paid decimal.Decimal) decimal.Decimal {
	if t.IsCounter() {
		return totalQuantity(t.Products).Mul(CounterFeePerItem)
	}
	surplus := paid.Sub(sub)
	if surplus.IsNegative() {
		return decimal.Zero
	}
	return surplus
}

// AccountedFee returns the service fee actually booked for the table.
// Ordinary tables book any payment surplus over the subtotal; the counter
// books a fixed surcharge per item regardless of payments.
func AccountedFee(t *entity.Table) float64 {
	return accountedFee(t, subtotal(t.Products), totalPayments(t.Payments)).InexactFloat64()
}

// billTotal is what the table owes: subtotal plus booked fee, except at the
// counter where the fee is tracked apart from the total.
func billTotal(t *entity.Table, sub, fee decimal.Decimal) decimal.Decimal {
	if t.IsCounter() {
		return sub
	}
	return sub.Add(fee)
}

func perPerson(t *entity.Table, total decimal.Decimal) decimal.Decimal {
	return total.Div(decimal.NewFromInt(int64(ClampSplit(t.SplitCount))))
}

// PerPerson splits the table total across its split count
func PerPerson(t *entity.Table) float64 {
	sub := subtotal(t.Products)
	total := billTotal(t, sub, accountedFee(t, sub, totalPayments(t.Payments)))
	return perPerson(t, total).InexactFloat64()
}

// Evaluate computes every derived value for the table without changing it
func Evaluate(t *entity.Table) Summary {
	sub := subtotal(t.Products)
	paid := totalPayments(t.Payments)
	fee := accountedFee(t, sub, paid)
	suggested := sub.Mul(SuggestedFeeRate)

	total := billTotal(t, sub, fee)
	remaining := sub.Sub(paid)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	return Summary{
		Subtotal:       sub.InexactFloat64(),
		TotalQuantity:  totalQuantity(t.Products).InexactFloat64(),
		TotalPayments:  paid.InexactFloat64(),
		SuggestedFee:   suggested.InexactFloat64(),
		SuggestedTotal: sub.Add(suggested).InexactFloat64(),
		AccountedFee:   fee.InexactFloat64(),
		Total:          total.InexactFloat64(),
		Remaining:      remaining.InexactFloat64(),
		PerPerson:      perPerson(t, total).InexactFloat64(),
		AllDelivered:   AllDelivered(t.Products),
		IsPaid:         isPaid(sub, paid),
		IsCounter:      t.IsCounter(),
	}
}

// Derive returns a copy of the table with its derived fields refreshed and
// the invoicing state machine applied.
//
// Ordinary tables move Open -> Invoiced once every line is delivered and the
// bill is paid, and Invoiced -> Open when the bill stops being paid. The
// counter never becomes invoiced.
func Derive(t entity.Table) (entity.Table, Transition) {
	out := Sanitize(t)
	s := Evaluate(&out)

	out.ManualServiceFee = s.AccountedFee

	if out.IsCounter() {
		out.ManualTotal = s.Subtotal
		out.IsInvoiced = false
		return out, TransitionNone
	}

	switch {
	case !out.IsInvoiced && s.AllDelivered && s.IsPaid:
		out.IsInvoiced = true
		return out, TransitionInvoiced
	case out.IsInvoiced && !s.IsPaid:
		out.IsInvoiced = false
		return out, TransitionReopened
	}
	return out, TransitionNone
}

// Sanitize applies the silent-clamp policy to every numeric field of the table
func Sanitize(t entity.Table) entity.Table {
	out := t.Clone()
	if out.Products == nil {
		out.Products = []entity.OrderLine{}
	}
	if out.PaymentRecords == nil {
		out.PaymentRecords = []entity.PaymentRecord{}
	}
	for i := range out.Products {
		out.Products[i].Quantity = Clamp(out.Products[i].Quantity)
		out.Products[i].UnitPrice = Clamp(out.Products[i].UnitPrice)
	}
	for _, m := range enum.PaymentMethods {
		out.Payments = out.Payments.With(m, Clamp(out.Payments.Get(m)))
	}
	out.ManualTotal = Clamp(out.ManualTotal)
	out.SplitCount = ClampSplit(out.SplitCount)
	return out
}

// AddAmount adds two money values without float drift
func AddAmount(a, b float64) float64 {
	return dec(a).Add(dec(b)).InexactFloat64()
}

// SubtractAmount subtracts b from a, floored at zero
func SubtractAmount(a, b float64) float64 {
	d := dec(a).Sub(dec(b))
	if d.IsNegative() {
		return 0
	}
	return d.InexactFloat64()
}
