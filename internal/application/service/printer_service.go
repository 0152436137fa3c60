package service

import (
	"context"
	"fmt"
	"log"

	"github.com/sangkips/gestor-mesas/internal/domain/billing"
	"github.com/sangkips/gestor-mesas/internal/domain/entity"
	"github.com/sangkips/gestor-mesas/internal/domain/enum"
	"github.com/sangkips/gestor-mesas/pkg/apperror"
	"github.com/sangkips/gestor-mesas/pkg/printer"
)

// PrinterService handles bill formatting and thermal printing.
type PrinterService struct {
	printer     printer.Printer
	floor       *FloorService
	settings    *SettingsService
	printerType string
	width       int
}

// NewPrinterService creates a new printer service.
func NewPrinterService(p printer.Printer, floor *FloorService, settings *SettingsService, printerType string, width int) *PrinterService {
	return &PrinterService{
		printer:     p,
		floor:       floor,
		settings:    settings,
		printerType: printerType,
		width:       width,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// PrintTableBill prints the bill of a table. The receipt is returned even
// when printing fails so the client can show it on screen.
func (s *PrinterService) PrintTableBill(ctx context.Context, tableID string) (*entity.Receipt, error) {
	snap := s.floor.Snapshot()
	table, ok := snap.Table(tableID)
	if !ok {
		return nil, apperror.NewNotFoundError("Table")
	}

	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	receipt := BuildReceipt(&table, settings.Header())
	receipt.Footer = settings.ReceiptFooter
	receipt.Date = s.floor.Now().Format("02/01/2006 15:04")

	data := FormatReceipt(receipt, s.width)
	if err := s.printer.Print(data); err != nil {
		log.Printf("Printer error (table %s): %v", tableID, err)
		return receipt, fmt.Errorf("failed to print bill: %w", err)
	}
	return receipt, nil
}

// BuildReceipt composes the printable bill of a table
func BuildReceipt(t *entity.Table, header entity.ReceiptHeader) *entity.Receipt {
	sum := billing.Evaluate(t)
	r := &entity.Receipt{
		Header:       header,
		TableName:    t.Name,
		SubTotal:     sum.Subtotal,
		SuggestedFee: sum.SuggestedFee,
		ServiceFee:   sum.AccountedFee,
		Total:        sum.Total,
		Paid:         sum.TotalPayments,
		Due:          sum.Remaining,
		SplitCount:   billing.ClampSplit(t.SplitCount),
		PerPerson:    sum.PerPerson,
		IsCounter:    sum.IsCounter,
		Items:        make([]entity.ReceiptItem, 0, len(t.Products)),
	}
	for _, p := range t.Products {
		name := p.Description
		if name == "" {
			name = billing.UnnamedProduct
		}
		r.Items = append(r.Items, entity.ReceiptItem{
			Name:      name,
			Quantity:  p.Quantity,
			UnitPrice: p.UnitPrice,
			Total:     billing.Subtotal([]entity.OrderLine{p}),
		})
	}
	for _, m := range enum.PaymentMethods {
		if amount := t.Payments.Get(m); amount > 0 {
			r.Payments = append(r.Payments, entity.ReceiptPayment{Method: m.Label(), Amount: amount})
		}
	}
	return r
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func FormatReceipt(r *entity.Receipt, width int) []byte {
	doc := printer.NewDocument(width)

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Mesa:", r.TableName)
	if r.Date != "" {
		doc.KeyValue("Data:", r.Date)
	}

	doc.Separator('-')

	// Items
	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.Name, fmt.Sprintf("%.2f", item.Total))
		if item.Quantity > 1 {
			doc.Text(fmt.Sprintf("  @ %.2f cada", item.UnitPrice))
		}
	}

	doc.Separator('-')

	// Totals
	doc.KeyValue("Subtotal:", fmt.Sprintf("%.2f", r.SubTotal))
	if r.IsCounter {
		doc.KeyValue("Taxa balcao:", fmt.Sprintf("%.2f", r.ServiceFee))
	} else {
		doc.KeyValue("Servico 10% (sug.):", fmt.Sprintf("%.2f", r.SuggestedFee))
		if r.ServiceFee > 0 {
			doc.KeyValue("Servico pago:", fmt.Sprintf("%.2f", r.ServiceFee))
		}
	}
	doc.SetBold(true).
		KeyValue("TOTAL:", fmt.Sprintf("%.2f", r.Total)).
		SetBold(false)

	for _, p := range r.Payments {
		doc.KeyValue(p.Method+":", fmt.Sprintf("%.2f", p.Amount))
	}
	if r.Due > 0 {
		doc.KeyValue("Falta:", fmt.Sprintf("%.2f", r.Due))
	}
	if r.SplitCount > 1 {
		doc.KeyValue(fmt.Sprintf("Por pessoa (%d):", r.SplitCount), fmt.Sprintf("%.2f", r.PerPerson))
	}

	doc.Separator('-')

	if r.Footer != "" {
		doc.SetAlign(printer.AlignCenter).
			LineFeed().
			Text(r.Footer).
			LineFeed().
			SetAlign(printer.AlignLeft)
	}

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
