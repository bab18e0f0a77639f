package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/entity"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/pkg/apperror"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/pkg/printer"
	"go.uber.org/zap"
)

// ReceiptService prints bill receipts on the counter's thermal printer
type ReceiptService struct {
	printer     printer.Printer
	bills       *BillService
	printerType string
	width       int
	log         *zap.Logger
}

// NewReceiptService creates a new receipt service. width is the paper
// width in characters.
func NewReceiptService(p printer.Printer, bills *BillService, printerType string, width int, log *zap.Logger) *ReceiptService {
	return &ReceiptService{
		printer:     p,
		bills:       bills,
		printerType: printerType,
		width:       width,
		log:         log,
	}
}

// PrinterStatus describes the configured printer
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// Status reports whether a printer is configured and reachable
func (s *ReceiptService) Status(ctx context.Context) *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "" && s.printerType != "none",
		Connected:  s.printer.Ready(ctx),
		Type:       s.printerType,
	}
}

// PrintBill sends the receipt of a bill to the printer and returns the
// invoice that was printed
func (s *ReceiptService) PrintBill(ctx context.Context, billID uuid.UUID) (*entity.Invoice, error) {
	inv, err := s.bills.BuildInvoice(ctx, billID)
	if err != nil {
		return nil, err
	}

	if err := s.printer.Print(ctx, FormatReceipt(inv, s.width)); err != nil {
		if errors.Is(err, printer.ErrNotConfigured) {
			return nil, apperror.NewUnavailableError("No receipt printer is configured", err)
		}
		s.log.Warn("receipt print failed", zap.String("bill_number", inv.BillNumber), zap.Error(err))
		return nil, apperror.NewUnavailableError("Receipt printer is not reachable", err)
	}
	return inv, nil
}

// FormatReceipt lays an invoice out as ESC/POS bytes
func FormatReceipt(inv *entity.Invoice, width int) []byte {
	doc := printer.NewDocument(width)

	doc.Align(printer.AlignCenter).
		Bold(true).
		Size(printer.SizeDouble).
		Line(inv.Header.BusinessName).
		Size(printer.SizeNormal).
		Bold(false)
	if inv.Header.Address != "" {
		doc.Line(inv.Header.Address)
	}
	if inv.Header.Phone != "" {
		doc.Line("Ph: " + inv.Header.Phone)
	}

	doc.Align(printer.AlignLeft).
		Rule('-').
		Columns("Bill:", inv.BillNumber).
		Columns("Date:", inv.Date)
	if inv.CustomerName != "" {
		customer := inv.CustomerName
		if inv.CustomerCode != "" {
			customer += " (" + inv.CustomerCode + ")"
		}
		doc.Columns("Customer:", customer)
	}
	doc.Rule('-')

	for _, line := range inv.Lines {
		doc.Columns(fmt.Sprintf("%d x %s", line.Quantity, line.Name), rupees(line.Total))
		if line.Quantity > 1 {
			doc.Line(fmt.Sprintf("  @ %s [%s]", rupees(line.UnitPrice), line.Location))
		}
	}

	doc.Rule('-').
		Bold(true).
		Columns("TOTAL:", rupees(inv.Total)).
		Bold(false).
		Columns("Paid:", rupees(inv.Paid)).
		Columns("Pending:", rupees(inv.Pending)).
		Columns("Status:", inv.Status).
		Rule('-')

	doc.Align(printer.AlignCenter).
		Feed(1).
		Line("Thank you!").
		Align(printer.AlignLeft).
		Feed(3).
		Cut(true)

	return doc.Bytes()
}

func rupees(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
