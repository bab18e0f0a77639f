package entity

// InvoiceHeader holds the business header printed at the top of an invoice.
type InvoiceHeader struct {
	BusinessName string `json:"business_name"`
	Address      string `json:"address,omitempty"`
	Phone        string `json:"phone,omitempty"`
}

// InvoiceLine represents a single printed line of an invoice.
type InvoiceLine struct {
	Name      string  `json:"name"`
	Location  string  `json:"location"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
}

// Invoice is a printable view of a bill. It is not stored; it is composed
// from a bill and its customer when a PDF is requested.
type Invoice struct {
	Header       InvoiceHeader `json:"header"`
	BillNumber   string        `json:"bill_number"`
	Date         string        `json:"date"`
	CustomerName string        `json:"customer_name"`
	CustomerCode string        `json:"customer_code"`
	Status       string        `json:"status"`
	Lines        []InvoiceLine `json:"lines"`
	Total        float64       `json:"total"`
	Paid         float64       `json:"paid"`
	Pending      float64       `json:"pending"`
}
