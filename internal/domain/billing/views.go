package billing

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sangkips/gestor-mesas/internal/domain/entity"
	"github.com/sangkips/gestor-mesas/internal/domain/enum"
	"github.com/shopspring/decimal"
)

const (
	// UnnamedProduct groups order lines with a blank description in the sales summary
	UnnamedProduct = "Sem descrição"

	waitWarningAfter  = 15 * time.Minute
	waitCriticalAfter = 30 * time.Minute
)

// SalesLine is one product row of the sales summary
type SalesLine struct {
	Name         string  `json:"name"`
	Quantity     float64 `json:"quantity"`
	TotalRevenue float64 `json:"total_revenue"`
}

// SalesSummary groups every order line on the floor by description, sorted by revenue descending
func SalesSummary(tables []entity.Table) []SalesLine {
	type acc struct {
		qty     decimal.Decimal
		revenue decimal.Decimal
	}
	byName := make(map[string]*acc)
	order := make([]string, 0)

	for _, t := range tables {
		for _, p := range t.Products {
			name := strings.TrimSpace(p.Description)
			if name == "" {
				name = UnnamedProduct
			}
			a, ok := byName[name]
			if !ok {
				a = &acc{}
				byName[name] = a
				order = append(order, name)
			}
			a.qty = a.qty.Add(dec(p.Quantity))
			a.revenue = a.revenue.Add(dec(p.Quantity).Mul(dec(p.UnitPrice)))
		}
	}

	lines := make([]SalesLine, 0, len(order))
	for _, name := range order {
		a := byName[name]
		lines = append(lines, SalesLine{
			Name:         name,
			Quantity:     a.qty.InexactFloat64(),
			TotalRevenue: a.revenue.InexactFloat64(),
		})
	}
	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].TotalRevenue > lines[j].TotalRevenue
	})
	return lines
}

// PendingItem is an undelivered order line in the kitchen queue
type PendingItem struct {
	TableID     string           `json:"table_id"`
	TableName   string           `json:"table_name"`
	TableNumber int              `json:"table_number"`
	Product     entity.OrderLine `json:"product"`
	WaitSeconds int64            `json:"wait_seconds"`
	WaitLabel   string           `json:"wait_label"`
	WaitLevel   enum.WaitLevel   `json:"wait_level"`
}

// PendingQueue lists every undelivered order line across all tables, oldest first
func PendingQueue(tables []entity.Table, now time.Time) []PendingItem {
	items := make([]PendingItem, 0)
	for _, t := range tables {
		for _, p := range t.Products {
			if p.Delivered {
				continue
			}
			item := PendingItem{
				TableID:     t.ID,
				TableName:   t.Name,
				TableNumber: t.Number,
				Product:     p,
				WaitLabel:   FormatElapsed(p.CreatedTime(), now),
				WaitLevel:   ClassifyWait(p.CreatedTime(), now),
			}
			if p.CreatedAt != 0 {
				item.WaitSeconds = int64(now.Sub(p.CreatedTime()) / time.Second)
			}
			items = append(items, item)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Product.CreatedAt < items[j].Product.CreatedAt
	})
	return items
}

// FormatElapsed renders the wait time as MM:SS, or +H°MM' past 99 minutes
func FormatElapsed(since, now time.Time) string {
	if since.IsZero() {
		return "--:--"
	}
	elapsed := now.Sub(since)
	if elapsed < 0 {
		elapsed = 0
	}
	totalSeconds := int64(elapsed / time.Second)
	totalMinutes := totalSeconds / 60
	if totalMinutes < 99 {
		return fmt.Sprintf("%02d:%02d", totalMinutes, totalSeconds%60)
	}
	return fmt.Sprintf("+%d°%02d'", totalMinutes/60, totalMinutes%60)
}

// ClassifyWait maps the wait time onto ok / warning / critical
func ClassifyWait(since, now time.Time) enum.WaitLevel {
	if since.IsZero() {
		return enum.WaitLevelUnknown
	}
	elapsed := now.Sub(since).Truncate(time.Minute)
	switch {
	case elapsed >= waitCriticalAfter:
		return enum.WaitLevelCritical
	case elapsed >= waitWarningAfter:
		return enum.WaitLevelWarning
	}
	return enum.WaitLevelOK
}

// TableRow is the list projection of a table used by the open and invoiced views
type TableRow struct {
	ID             string               `json:"id"`
	Number         int                  `json:"number"`
	Name           string               `json:"name"`
	ProductCount   int                  `json:"product_count"`
	DeliveredCount int                  `json:"delivered_count"`
	Subtotal       float64              `json:"subtotal"`
	TotalPaid      float64              `json:"total_paid"`
	ServiceFee     float64              `json:"service_fee"`
	Payments       entity.PaymentTotals `json:"payments"`
	IsCounter      bool                 `json:"is_counter"`
}

func tableRow(t *entity.Table) TableRow {
	delivered := 0
	for _, p := range t.Products {
		if p.Delivered {
			delivered++
		}
	}
	return TableRow{
		ID:             t.ID,
		Number:         t.Number,
		Name:           t.Name,
		ProductCount:   len(t.Products),
		DeliveredCount: delivered,
		Subtotal:       Subtotal(t.Products),
		TotalPaid:      TotalPayments(t.Payments),
		ServiceFee:     AccountedFee(t),
		Payments:       t.Payments,
		IsCounter:      t.IsCounter(),
	}
}

// OpenTables lists tables that are not invoiced, the counter included
func OpenTables(tables []entity.Table) []TableRow {
	rows := make([]TableRow, 0, len(tables))
	for i := range tables {
		if !tables[i].IsInvoiced {
			rows = append(rows, tableRow(&tables[i]))
		}
	}
	return rows
}

// InvoicedTables lists tables that were fully delivered and paid
func InvoicedTables(tables []entity.Table) []TableRow {
	rows := make([]TableRow, 0)
	for i := range tables {
		if tables[i].IsInvoiced {
			rows = append(rows, tableRow(&tables[i]))
		}
	}
	return rows
}
