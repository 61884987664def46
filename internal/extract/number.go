package extract

import (
	"regexp"
	"strings"

	"github.com/smartinez/factura-extractor/constants"
	"github.com/smartinez/factura-extractor/internal/document"
)

var (
	// Invoice identifiers look like "0001-00001234": a short point-of-sale
	// prefix, one separator, then the sequence number.
	reNumberToken = regexp.MustCompile(`\d{1,5}[-/]\d{4,10}`)
	// CUIT tax IDs ("30-71234567-8") share the same shape and must never be
	// mistaken for invoice numbers.
	reCUIT = regexp.MustCompile(`\b\d{2}-\d{8}-\d\b`)
	// Authorization codes are long unbroken digit runs.
	reLongDigits = regexp.MustCompile(`\d{13,}`)
)

type numberStrategy struct {
	name string
	run  func(p *Pipeline, doc *document.Document) (string, bool)
}

var numberStrategies = []numberStrategy{
	{"label", (*Pipeline).numberByLabel},
	{"positional", (*Pipeline).numberPositional},
}

// extractInvoiceNumber locates the structured invoice identifier. Proximity
// to a label line beats the purely positional fallback.
func (p *Pipeline) extractInvoiceNumber(doc *document.Document) (string, string) {
	for _, s := range numberStrategies {
		if v, ok := s.run(p, doc); ok {
			return v, s.name
		}
	}
	return "", ""
}

// numberByLabel scans for a label keyword and searches that line plus the
// next three for a qualifying token; OCR often pushes the value below its
// label.
func (p *Pipeline) numberByLabel(doc *document.Document) (string, bool) {
	for i := range doc.Lines {
		if !document.ContainsAny(doc.Lines[i], constants.InvoiceNumberLabels) {
			continue
		}
		for j := i; j <= i+3; j++ {
			if tok, ok := findInvoiceNumber(doc.Line(j)); ok {
				return tok, true
			}
		}
	}
	return "", false
}

func (p *Pipeline) numberPositional(doc *document.Document) (string, bool) {
	limit := min(p.cfg.NumberFallbackLines, len(doc.Lines))
	for i := 0; i < limit; i++ {
		line := doc.Lines[i]
		if document.ContainsAny(line, constants.InvoiceNumberExcluded) {
			continue
		}
		if tok, ok := findInvoiceNumber(line); ok {
			return tok, true
		}
	}
	return "", false
}

// findInvoiceNumber returns the first token on the line that looks like an
// invoice number and does not overlap a CUIT or an authorization-code run.
func findInvoiceNumber(line string) (string, bool) {
	if line == "" {
		return "", false
	}
	if strings.Contains(strings.ToLower(line), constants.AuthorizationKeyword) {
		return "", false
	}
	reject := reCUIT.FindAllStringIndex(line, -1)
	reject = append(reject, reLongDigits.FindAllStringIndex(line, -1)...)
	for _, loc := range reNumberToken.FindAllStringIndex(line, -1) {
		if overlapsAny(loc, reject) {
			continue
		}
		tok := line[loc[0]:loc[1]]
		if n := digitCount(tok); n < 8 || n > 15 {
			continue
		}
		return tok, true
	}
	return "", false
}

func overlapsAny(loc []int, ranges [][]int) bool {
	for _, r := range ranges {
		if loc[0] < r[1] && r[0] < loc[1] {
			return true
		}
	}
	return false
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
