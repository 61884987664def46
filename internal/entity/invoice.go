package entity

import (
	"time"

	"github.com/google/uuid"
)

// ExtractionResult is the structured record produced from one invoice text.
// Every field degrades to its zero value when the heuristics find nothing:
// empty strings mean "not found", TotalAmount 0 means "not found", and Items
// is empty rather than nil-vs-missing. Callers must not treat a zero total
// as a valid zero-value invoice.
type ExtractionResult struct {
	VendorName    string     `json:"vendor_name,omitempty"`
	InvoiceNumber string     `json:"invoice_number,omitempty"`
	InvoiceDate   string     `json:"invoice_date,omitempty"` // YYYY-MM-DD
	DueDate       string     `json:"due_date,omitempty"`     // YYYY-MM-DD
	TotalAmount   float64    `json:"total_amount"`
	Items         []LineItem `json:"items"`
}

// LineItem is one purchased product row reconstructed from the invoice table.
type LineItem struct {
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	TotalPrice float64 `json:"total_price"`
	Code       string  `json:"code,omitempty"`
	Brand      string  `json:"brand,omitempty"`
}

// ExtractionTrace records which strategy resolved each field, so that
// misclassifications can be diagnosed without ambient logging state.
type ExtractionTrace struct {
	ID                    uuid.UUID     `json:"id"`
	VendorStrategy        string        `json:"vendor_strategy,omitempty"`
	InvoiceNumberStrategy string        `json:"invoice_number_strategy,omitempty"`
	IssueDateStrategy     string        `json:"issue_date_strategy,omitempty"`
	DueDateStrategy       string        `json:"due_date_strategy,omitempty"`
	TotalStrategy         string        `json:"total_strategy,omitempty"`
	ItemStrategy          string        `json:"item_strategy,omitempty"`
	ItemsFound            int           `json:"items_found"`
	ItemsKept             int           `json:"items_kept"`
	Duration              time.Duration `json:"duration_ns"`
}
