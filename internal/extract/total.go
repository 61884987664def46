package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/smartinez/factura-extractor/constants"
	"github.com/smartinez/factura-extractor/internal/amount"
	"github.com/smartinez/factura-extractor/internal/document"
)

// Grand totals are large relative to per-item prices; the bounds below keep
// item prices and stray quantities from being promoted to the total.
var (
	totalWindowMin   = decimal.NewFromInt(50000)
	totalLabeledMin  = decimal.NewFromInt(1000)
	totalFallbackMin = decimal.NewFromInt(10000)
	totalMax         = decimal.NewFromInt(100000000)
)

// The optional "sub" prefix is captured so subtotal matches can be skipped;
// Go's regexp has no lookbehind.
var reLabeledTotal = regexp.MustCompile(`(?i)(sub[\s-]?)?total[:\s]*\$?\s*(` + amount.Pattern() + `)`)

// extractTotal returns the final payable amount and the tier that found it.
// Tier order: window around the last "total" line, labeled inline pattern,
// then the deliberately weak largest-number guess.
func (p *Pipeline) extractTotal(doc *document.Document) (decimal.Decimal, string) {
	if v, ok := p.totalByLineWindow(doc); ok {
		return v, "total-line-window"
	}
	if v, ok := p.totalByLabelPattern(doc); ok {
		return v, "label-pattern"
	}
	if v, ok := p.totalByLargestNumber(doc); ok {
		return v, "largest-number"
	}
	return decimal.Zero, ""
}

// totalByLineWindow anchors on the last "total" line (the grand total is
// conventionally printed last) and takes the largest in-bounds amount in a
// window around it, preferring amounts at or after the anchor line.
func (p *Pipeline) totalByLineWindow(doc *document.Document) (decimal.Decimal, bool) {
	anchor := -1
	for i, line := range doc.Lines {
		if !strings.Contains(strings.ToLower(line), "total") {
			continue
		}
		if document.ContainsAny(line, constants.TotalExcluded) {
			continue
		}
		anchor = i
	}
	if anchor < 0 {
		return decimal.Zero, false
	}

	var before, after decimal.Decimal
	var haveBefore, haveAfter bool
	lo := max(0, anchor-p.cfg.TotalWindowBefore)
	hi := min(len(doc.Lines)-1, anchor+p.cfg.TotalWindowAfter)
	for i := lo; i <= hi; i++ {
		for _, a := range amount.Find(doc.Lines[i]) {
			if a.Value.LessThanOrEqual(totalWindowMin) || a.Value.GreaterThanOrEqual(totalMax) {
				continue
			}
			if i >= anchor {
				if !haveAfter || a.Value.GreaterThan(after) {
					after, haveAfter = a.Value, true
				}
			} else if !haveBefore || a.Value.GreaterThan(before) {
				before, haveBefore = a.Value, true
			}
		}
	}
	if haveAfter {
		return after, true
	}
	if haveBefore {
		return before, true
	}
	return decimal.Zero, false
}

// totalByLabelPattern searches the single-line projection for
// "total[:\s]*<amount>", skipping subtotal matches. The last qualifying
// match wins for the same closest-to-end reason as tier one.
func (p *Pipeline) totalByLabelPattern(doc *document.Document) (decimal.Decimal, bool) {
	var best decimal.Decimal
	found := false
	for _, m := range reLabeledTotal.FindAllStringSubmatch(doc.Normalized, -1) {
		if m[1] != "" { // subtotal
			continue
		}
		v, err := amount.Parse(m[2])
		if err != nil {
			continue
		}
		if v.LessThanOrEqual(totalLabeledMin) || v.GreaterThanOrEqual(totalMax) {
			continue
		}
		best, found = v, true
	}
	return best, found
}

// totalByLargestNumber is the last-resort guess: the single largest amount
// anywhere in the document. Known limitation: on documents with no explicit
// total keyword this can select a line-item price.
func (p *Pipeline) totalByLargestNumber(doc *document.Document) (decimal.Decimal, bool) {
	var best decimal.Decimal
	found := false
	for _, a := range amount.Find(doc.Normalized) {
		if a.Value.LessThanOrEqual(totalFallbackMin) || a.Value.GreaterThanOrEqual(totalMax) {
			continue
		}
		if !found || a.Value.GreaterThan(best) {
			best, found = a.Value, true
		}
	}
	return best, found
}
