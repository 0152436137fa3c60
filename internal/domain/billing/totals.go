package billing

import (
	"github.com/sangkips/gestor-mesas/internal/domain/entity"
	"github.com/sangkips/gestor-mesas/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// GlobalTotals is the cross-table, cross-purchase financial rollup
type GlobalTotals struct {
	TotalBilled     float64 `json:"total_billed"`
	TotalServiceFee float64 `json:"total_service_fee"`
	TotalCash       float64 `json:"total_cash"`
	TotalPix        float64 `json:"total_pix"`
	TotalDebit      float64 `json:"total_debit"`
	TotalCredit     float64 `json:"total_credit"`
	TotalPurchases  float64 `json:"total_purchases"`
}

// ByMethod returns the net total for one payment channel
func (g GlobalTotals) ByMethod(m enum.PaymentMethod) float64 {
	switch m {
	case enum.PaymentMethodCash:
		return g.TotalCash
	case enum.PaymentMethodPix:
		return g.TotalPix
	case enum.PaymentMethodDebit:
		return g.TotalDebit
	case enum.PaymentMethodCredit:
		return g.TotalCredit
	}
	return 0
}

// Aggregate folds every table and purchase into one GlobalTotals snapshot.
// Purchases leave the channel they were paid from, so they are subtracted
// from the matching method total.
func Aggregate(tables []entity.Table, purchases []entity.Purchase) GlobalTotals {
	var methods [len(enum.PaymentMethods)]decimal.Decimal
	billed := decimal.Zero
	fees := decimal.Zero
	spent := decimal.Zero

	for i := range tables {
		t := &tables[i]
		for _, m := range enum.PaymentMethods {
			amount := dec(t.Payments.Get(m))
			methods[m] = methods[m].Add(amount)
			billed = billed.Add(amount)
		}
		fees = fees.Add(accountedFee(t, subtotal(t.Products), totalPayments(t.Payments)))
	}

	for _, p := range purchases {
		amount := dec(p.Amount)
		spent = spent.Add(amount)
		if p.Method.IsValid() {
			methods[p.Method] = methods[p.Method].Sub(amount)
		}
	}

	return GlobalTotals{
		TotalBilled:     billed.InexactFloat64(),
		TotalServiceFee: fees.InexactFloat64(),
		TotalCash:       methods[enum.PaymentMethodCash].InexactFloat64(),
		TotalPix:        methods[enum.PaymentMethodPix].InexactFloat64(),
		TotalDebit:      methods[enum.PaymentMethodDebit].InexactFloat64(),
		TotalCredit:     methods[enum.PaymentMethodCredit].InexactFloat64(),
		TotalPurchases:  spent.InexactFloat64(),
	}
}
