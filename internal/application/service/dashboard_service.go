package service

import (
	"context"
	"fmt"

	"github.com/sangkips/gestor-mesas/internal/domain/billing"
	"github.com/sangkips/gestor-mesas/internal/domain/enum"
	"github.com/sangkips/gestor-mesas/internal/domain/state"
	"github.com/xuri/excelize/v2"
)

const salesSheet = "Vendas"

// DashboardService provides the floor-wide views and reports
type DashboardService struct {
	floor *FloorService
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(floor *FloorService) *DashboardService {
	return &DashboardService{floor: floor}
}

// DashboardStats is the summary panel: the global totals and table counts
type DashboardStats struct {
	Totals         billing.GlobalTotals `json:"totals"`
	TableCount     int                  `json:"table_count"`
	OpenCount      int                  `json:"open_count"`
	InvoicedCount  int                  `json:"invoiced_count"`
	PendingCount   int                  `json:"pending_count"`
	PurchasesCount int                  `json:"purchases_count"`
}

// GetDashboardStats returns the global totals and counters
func (s *DashboardService) GetDashboardStats() *DashboardStats {
	snap := s.floor.Snapshot()
	invoiced := len(billing.InvoicedTables(snap.Tables))
	return &DashboardStats{
		Totals:         snap.Totals(),
		TableCount:     len(snap.Tables),
		OpenCount:      len(snap.Tables) - invoiced,
		InvoicedCount:  invoiced,
		PendingCount:   len(billing.PendingQueue(snap.Tables, s.floor.Now())),
		PurchasesCount: len(snap.Purchases),
	}
}

// ViewState is the active screen and selected table
type ViewState struct {
	View            enum.View `json:"view"`
	SelectedTableID string    `json:"selected_table_id,omitempty"`
}

// GetView returns the active view
func (s *DashboardService) GetView() *ViewState {
	snap := s.floor.Snapshot()
	return &ViewState{View: snap.View, SelectedTableID: snap.SelectedTableID}
}

// SetView switches screens; a table id selects that table's detail view
func (s *DashboardService) SetView(ctx context.Context, view enum.View, tableID string) (*ViewState, error) {
	var action state.Action = state.SetView{View: view}
	if tableID != "" {
		action = state.SelectTable{ID: tableID}
	}
	if _, err := s.floor.Dispatch(ctx, action); err != nil {
		return nil, err
	}
	return s.GetView(), nil
}

// OpenTables lists tables still being served
func (s *DashboardService) OpenTables() []billing.TableRow {
	return billing.OpenTables(s.floor.Snapshot().Tables)
}

// InvoicedTables lists closed tables
func (s *DashboardService) InvoicedTables() []billing.TableRow {
	return billing.InvoicedTables(s.floor.Snapshot().Tables)
}

// WaitingList returns undelivered order lines, oldest first
func (s *DashboardService) WaitingList() []billing.PendingItem {
	return billing.PendingQueue(s.floor.Snapshot().Tables, s.floor.Now())
}

// SalesReport is the per-product summary plus the global totals
type SalesReport struct {
	Lines  []billing.SalesLine  `json:"lines"`
	Totals billing.GlobalTotals `json:"totals"`
}

// Sales groups every order line by product
func (s *DashboardService) Sales() *SalesReport {
	snap := s.floor.Snapshot()
	return &SalesReport{
		Lines:  billing.SalesSummary(snap.Tables),
		Totals: snap.Totals(),
	}
}

// ExportSalesXLSX renders the sales report as a spreadsheet
func (s *DashboardService) ExportSalesXLSX() ([]byte, error) {
	report := s.Sales()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", salesSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	rows := [][]interface{}{{"Produto", "Quantidade", "Receita"}}
	for _, l := range report.Lines {
		rows = append(rows, []interface{}{l.Name, l.Quantity, l.TotalRevenue})
	}
	rows = append(rows,
		[]interface{}{},
		[]interface{}{"Total faturado", "", report.Totals.TotalBilled},
		[]interface{}{"Taxa de serviço", "", report.Totals.TotalServiceFee},
		[]interface{}{"Compras", "", report.Totals.TotalPurchases},
	)
	for _, m := range enum.PaymentMethods {
		rows = append(rows, []interface{}{m.Label(), "", report.Totals.ByMethod(m)})
	}

	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(salesSheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write %s: %w", cell, err)
			}
		}
	}
	if err := f.SetCellStyle(salesSheet, "A1", "C1", bold); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
