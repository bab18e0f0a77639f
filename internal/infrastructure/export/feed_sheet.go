package export

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// FeedSheetColumns is the header row expected in feed import files
var FeedSheetColumns = []string{"name", "brand", "weight", "price", "shop_stock", "godown_stock", "low_stock_alert"}

// FeedSheetRow is one parsed data row. Row is the 1-based sheet row.
type FeedSheetRow struct {
	Row           int
	Name          string
	Brand         string
	Weight        float64
	Price         float64
	ShopStock     int
	GodownStock   int
	LowStockAlert int
}

// FeedSheetError describes a cell that could not be parsed
type FeedSheetError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ParseFeedSheet reads the first worksheet of an xlsx file. Columns are
// matched by header name, case-insensitively, so their order is free.
func ParseFeedSheet(r io.Reader) ([]FeedSheetRow, []FeedSheetError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("sheet is empty")
	}

	index := make(map[string]int)
	for i, h := range rows[0] {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := index["name"]; !ok {
		return nil, nil, fmt.Errorf("missing required column \"name\"")
	}

	cell := func(row []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var out []FeedSheetRow
	var sheetErrs []FeedSheetError

	for i, row := range rows[1:] {
		rowNum := i + 2
		if strings.Join(row, "") == "" {
			continue
		}

		parsed := FeedSheetRow{
			Row:   rowNum,
			Name:  cell(row, "name"),
			Brand: cell(row, "brand"),
		}

		ok := true
		parseFloat := func(col string, dst *float64) {
			v := cell(row, col)
			if v == "" {
				return
			}
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				sheetErrs = append(sheetErrs, FeedSheetError{Row: rowNum, Field: col, Message: "must be a number"})
				ok = false
				return
			}
			*dst = f
		}
		parseInt := func(col string, dst *int) {
			v := cell(row, col)
			if v == "" {
				return
			}
			n, err := strconv.Atoi(v)
			if err != nil {
				sheetErrs = append(sheetErrs, FeedSheetError{Row: rowNum, Field: col, Message: "must be a whole number"})
				ok = false
				return
			}
			*dst = n
		}

		parseFloat("weight", &parsed.Weight)
		parseFloat("price", &parsed.Price)
		parseInt("shop_stock", &parsed.ShopStock)
		parseInt("godown_stock", &parsed.GodownStock)
		parseInt("low_stock_alert", &parsed.LowStockAlert)

		if ok {
			out = append(out, parsed)
		}
	}

	return out, sheetErrs, nil
}

// FeedSheetTemplate builds an xlsx with the header row and optional rows
func FeedSheetTemplate(rows [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := make([]interface{}, len(FeedSheetColumns))
	for i, c := range FeedSheetColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, row := range rows {
		r := row
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &r); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
