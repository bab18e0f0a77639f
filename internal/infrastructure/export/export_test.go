package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFeedSheet(t *testing.T) {
	data, err := FeedSheetTemplate([][]interface{}{
		{"Cattle Feed Gold", "Godrej", 50, 1350.5, 10, 90, 5},
		{"Broken Row", "X", 50, "abc", 1, 1, 1},
		{"Mineral Mix", "", "", "", "", 20, ""},
	})
	require.NoError(t, err)

	rows, rowErrs, err := ParseFeedSheet(bytes.NewReader(data))
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "Cattle Feed Gold", rows[0].Name)
	assert.Equal(t, 1350.5, rows[0].Price)
	assert.Equal(t, 90, rows[0].GodownStock)
	assert.Equal(t, 2, rows[0].Row)
	assert.Equal(t, 20, rows[1].GodownStock)

	require.Len(t, rowErrs, 1)
	assert.Equal(t, 3, rowErrs[0].Row)
	assert.Equal(t, "price", rowErrs[0].Field)
}

func TestParseFeedSheet_NotAWorkbook(t *testing.T) {
	_, _, err := ParseFeedSheet(bytes.NewReader([]byte("name,brand\n")))
	assert.Error(t, err)
}

func TestRenderPDFs(t *testing.T) {
	header := entity.InvoiceHeader{BusinessName: "Gurudatta Traders", Phone: "9999999999"}

	report, err := RenderSalesReport(&SalesReport{
		Header: header,
		Title:  "Sales Report",
		From:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		To:     time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		Rows: []SalesReportRow{
			{Date: "2026-03-02", BillNumber: "BILL-000001", Customer: "Ramesh", Total: 8500, Paid: 8500},
		},
		Generated: time.Now(),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(report, []byte("%PDF")))

	invoice, err := RenderInvoice(&entity.Invoice{
		Header:       header,
		BillNumber:   "BILL-000001",
		Date:         "2026-03-02",
		CustomerName: "Ramesh",
		CustomerCode: "CUS-0001",
		Status:       "paid",
		Lines:        []entity.InvoiceLine{{Name: "Cattle Feed Gold", Location: "godown", Quantity: 10, UnitPrice: 850, Total: 8500}},
		Total:        8500,
		Paid:         8500,
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(invoice, []byte("%PDF")))
}
