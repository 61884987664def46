// Package extract turns OCR text of a regional-convention invoice into a
// structured record. Each field has its own ordered chain of strategies; the
// first one that matches wins and its name is recorded on the trace.
package extract

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/smartinez/factura-extractor/internal/amount"
	"github.com/smartinez/factura-extractor/internal/document"
	"github.com/smartinez/factura-extractor/internal/entity"
)

// Config holds the scan windows and bounds for the field extractors.
// Zero values fall back to the defaults below.
type Config struct {
	VendorScanLines     int // top-of-document lines scanned for the supplier name
	NumberFallbackLines int // lines scanned by the positional invoice-number fallback
	DateFallbackLines   int // lines scanned by the positional issue-date fallback
	TotalWindowBefore   int // lines before the "total" line searched for amounts
	TotalWindowAfter    int // lines after the "total" line searched for amounts
	GroupLookback       int // backward window for multi-line item grouping
}

func (c *Config) setDefaults() {
	if c.VendorScanLines <= 0 {
		c.VendorScanLines = 15
	}
	if c.NumberFallbackLines <= 0 {
		c.NumberFallbackLines = 30
	}
	if c.DateFallbackLines <= 0 {
		c.DateFallbackLines = 20
	}
	if c.TotalWindowBefore <= 0 {
		c.TotalWindowBefore = 3
	}
	if c.TotalWindowAfter <= 0 {
		c.TotalWindowAfter = 15
	}
	if c.GroupLookback <= 0 {
		c.GroupLookback = 9
	}
}

// Pipeline is the text -> ExtractionResult transformation. It holds no
// per-invocation state: Extract is a pure function of its input and the
// pipeline may be shared across goroutines.
type Pipeline struct {
	cfg Config
	log *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	cfg.setDefaults()
	return &Pipeline{cfg: cfg, log: logger}
}

// Extract runs every field extractor against the normalized line set and
// assembles the result. It never fails: when a heuristic finds nothing the
// field keeps its zero value and the caller's reviewer fills the gap.
func (p *Pipeline) Extract(text string) (entity.ExtractionResult, entity.ExtractionTrace) {
	start := time.Now()
	trace := entity.ExtractionTrace{ID: uuid.New()}
	res := entity.ExtractionResult{Items: []entity.LineItem{}}

	doc := document.New(text)
	if doc.Empty() {
		trace.Duration = time.Since(start)
		p.log.Debug("extract.empty_input", "trace_id", trace.ID)
		return res, trace
	}

	res.VendorName, trace.VendorStrategy = p.extractVendor(doc)
	res.InvoiceNumber, trace.InvoiceNumberStrategy = p.extractInvoiceNumber(doc)

	issue, issueStrategy := p.extractIssueDate(doc)
	trace.IssueDateStrategy = issueStrategy
	res.InvoiceDate = issue.iso
	res.DueDate, trace.DueDateStrategy = p.extractDueDate(doc, issue)

	total, totalStrategy := p.extractTotal(doc)
	trace.TotalStrategy = totalStrategy
	if totalStrategy != "" {
		res.TotalAmount = amount.Float(total)
	}

	candidates, itemStrategy := p.extractItems(doc)
	trace.ItemStrategy = itemStrategy
	trace.ItemsFound = len(candidates)
	res.Items = FilterItems(candidates)
	trace.ItemsKept = len(res.Items)

	trace.Duration = time.Since(start)
	p.log.Info("extract.ok",
		"trace_id", trace.ID,
		"vendor", trace.VendorStrategy,
		"number", trace.InvoiceNumberStrategy,
		"issue_date", trace.IssueDateStrategy,
		"due_date", trace.DueDateStrategy,
		"total", trace.TotalStrategy,
		"items", trace.ItemStrategy,
		"items_kept", trace.ItemsKept,
		"elapsed_ms", trace.Duration.Milliseconds(),
	)
	return res, trace
}
