package entity

import (
	"time"

	"github.com/sangkips/gestor-mesas/internal/domain/enum"
)

const (
	// CounterTableID is the fixed id of the walk-up counter account
	CounterTableID = "table-balcao"
	// CounterTableName is the display name of the counter account
	CounterTableName = "BALCAO"
)

// OrderLine represents one product entry on a table's bill
type OrderLine struct {
	ID          string  `json:"id"`
	Quantity    float64 `json:"quantity"`
	Description string  `json:"description"`
	UnitPrice   float64 `json:"unitPrice"`
	Delivered   bool    `json:"delivered"`
	CreatedAt   int64   `json:"createdAt,omitempty"` // Unix milliseconds, set once
}

// CreatedTime returns the creation timestamp, or the zero time if unset
func (l OrderLine) CreatedTime() time.Time {
	if l.CreatedAt == 0 {
		return time.Time{}
	}
	return time.UnixMilli(l.CreatedAt)
}

// PaymentRecord represents a single payment event on a table
type PaymentRecord struct {
	ID     string             `json:"id"`
	Amount float64            `json:"amount"`
	Method enum.PaymentMethod `json:"method"`
}

// PaymentTotals holds the running totals per payment method
type PaymentTotals struct {
	Cash   float64 `json:"cash"`
	Pix    float64 `json:"pix"`
	Debit  float64 `json:"debit"`
	Credit float64 `json:"credit"`
}

// Get returns the total for a method
func (p PaymentTotals) Get(m enum.PaymentMethod) float64 {
	switch m {
	case enum.PaymentMethodCash:
		return p.Cash
	case enum.PaymentMethodPix:
		return p.Pix
	case enum.PaymentMethodDebit:
		return p.Debit
	case enum.PaymentMethodCredit:
		return p.Credit
	}
	return 0
}

// With returns a copy with the total for m replaced by v
func (p PaymentTotals) With(m enum.PaymentMethod, v float64) PaymentTotals {
	switch m {
	case enum.PaymentMethodCash:
		p.Cash = v
	case enum.PaymentMethodPix:
		p.Pix = v
	case enum.PaymentMethodDebit:
		p.Debit = v
	case enum.PaymentMethodCredit:
		p.Credit = v
	}
	return p
}

// Table is one billing unit: a dining table or the counter
type Table struct {
	ID               string          `json:"id"`
	Number           int             `json:"number"`
	Name             string          `json:"name"`
	Products         []OrderLine     `json:"products"`
	ManualServiceFee float64         `json:"manualServiceFee"`
	ManualTotal      float64         `json:"manualTotal"`
	Payments         PaymentTotals   `json:"payments"`
	SplitCount       int             `json:"splitCount"`
	PaymentRecords   []PaymentRecord `json:"paymentRecords"`
	IsInvoiced       bool            `json:"isInvoiced"`
}

// IsCounter reports whether t is the counter account
func (t *Table) IsCounter() bool {
	return t.ID == CounterTableID
}

// Clone returns a deep copy so callers can modify slices freely
func (t Table) Clone() Table {
	c := t
	if t.Products != nil {
		c.Products = make([]OrderLine, len(t.Products))
		copy(c.Products, t.Products)
	}
	if t.PaymentRecords != nil {
		c.PaymentRecords = make([]PaymentRecord, len(t.PaymentRecords))
		copy(c.PaymentRecords, t.PaymentRecords)
	}
	return c
}

// FindProduct returns the index of the order line with the given id, or -1
func (t *Table) FindProduct(id string) int {
	for i := range t.Products {
		if t.Products[i].ID == id {
			return i
		}
	}
	return -1
}

// NewCounterTable builds the counter account in its initial state
func NewCounterTable() Table {
	return Table{
		ID:             CounterTableID,
		Number:         0,
		Name:           CounterTableName,
		Products:       []OrderLine{},
		SplitCount:     1,
		PaymentRecords: []PaymentRecord{},
	}
}
