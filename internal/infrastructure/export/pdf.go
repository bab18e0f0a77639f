package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/entity"
)

// SalesReportRow is one bill line of the sales report
type SalesReportRow struct {
	Date       string
	BillNumber string
	Customer   string
	Total      float64
	Paid       float64
	Pending    float64
	Status     string
}

// SalesReport is the printable sales summary for a period
type SalesReport struct {
	Header    entity.InvoiceHeader
	Title     string
	From      time.Time
	To        time.Time
	Rows      []SalesReportRow
	Generated time.Time
}

func rupees(v float64) string {
	return fmt.Sprintf("Rs. %.2f", v)
}

func writeHeader(pdf *gofpdf.Fpdf, h entity.InvoiceHeader) {
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, h.BusinessName, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	if h.Address != "" {
		pdf.CellFormat(0, 6, h.Address, "", 1, "C", false, 0, "")
	}
	if h.Phone != "" {
		pdf.CellFormat(0, 6, "Phone: "+h.Phone, "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)
}

func output(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderSalesReport draws the sales table with period totals
func RenderSalesReport(r *SalesReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	writeHeader(pdf, r.Header)

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, r.Title, "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 8, fmt.Sprintf("Date Range: %s to %s", r.From.Format("2006-01-02"), r.To.Format("2006-01-02")), "", 1, "L", false, 0, "")

	var total, paid, pending float64
	for _, row := range r.Rows {
		total += row.Total
		paid += row.Paid
		pending += row.Pending
	}
	pdf.CellFormat(0, 8, fmt.Sprintf("Bills: %d   Sales: %s   Collected: %s   Pending: %s",
		len(r.Rows), rupees(total), rupees(paid), rupees(pending)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Table Header
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(25, 8, "Date", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 8, "Bill No", "1", 0, "C", false, 0, "")
	pdf.CellFormat(45, 8, "Customer", "1", 0, "C", false, 0, "")
	pdf.CellFormat(28, 8, "Total", "1", 0, "C", false, 0, "")
	pdf.CellFormat(28, 8, "Paid", "1", 0, "C", false, 0, "")
	pdf.CellFormat(28, 8, "Pending", "1", 1, "C", false, 0, "")

	// Table Rows
	pdf.SetFont("Arial", "", 10)
	for _, row := range r.Rows {
		pdf.CellFormat(25, 8, row.Date, "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 8, row.BillNumber, "1", 0, "C", false, 0, "")
		pdf.CellFormat(45, 8, row.Customer, "1", 0, "L", false, 0, "")
		pdf.CellFormat(28, 8, rupees(row.Total), "1", 0, "R", false, 0, "")
		pdf.CellFormat(28, 8, rupees(row.Paid), "1", 0, "R", false, 0, "")
		pdf.CellFormat(28, 8, rupees(row.Pending), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "I", 8)
	pdf.CellFormat(0, 6, "Generated "+r.Generated.Format("2006-01-02 15:04"), "", 1, "R", false, 0, "")

	return output(pdf)
}

// RenderInvoice draws a single bill
func RenderInvoice(inv *entity.Invoice) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	writeHeader(pdf, inv.Header)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(95, 8, "Bill No: "+inv.BillNumber, "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 8, "Date: "+inv.Date, "", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 8, fmt.Sprintf("Customer: %s (%s)", inv.CustomerName, inv.CustomerCode), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(10, 8, "#", "1", 0, "C", false, 0, "")
	pdf.CellFormat(70, 8, "Feed", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 8, "Location", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 8, "Qty", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 8, "Rate", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 8, "Amount", "1", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for i, line := range inv.Lines {
		pdf.CellFormat(10, 8, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(70, 8, line.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 8, line.Location, "1", 0, "C", false, 0, "")
		pdf.CellFormat(20, 8, fmt.Sprintf("%d", line.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 8, rupees(line.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, rupees(line.Total), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 10)
	for _, t := range []struct {
		label string
		value float64
	}{{"Total", inv.Total}, {"Paid", inv.Paid}, {"Pending", inv.Pending}} {
		pdf.CellFormat(155, 8, t.label, "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, rupees(t.value), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 8, "Status: "+inv.Status, "", 1, "L", false, 0, "")

	return output(pdf)
}
