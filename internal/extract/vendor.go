package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/smartinez/factura-extractor/constants"
	"github.com/smartinez/factura-extractor/internal/document"
)

var (
	reTrailingTel = regexp.MustCompile(`(?i)\s+tel[.:].*$`)

	legalSuffixTokens = func() map[string]struct{} {
		m := make(map[string]struct{}, len(constants.LegalSuffixes))
		for _, s := range constants.LegalSuffixes {
			m[s] = struct{}{}
		}
		return m
	}()
)

type vendorStrategy struct {
	name string
	run  func(p *Pipeline, doc *document.Document) (string, bool)
}

var vendorStrategies = []vendorStrategy{
	{"legal-suffix", (*Pipeline).vendorByLegalSuffix},
	{"heading", (*Pipeline).vendorByHeading},
}

// extractVendor returns the most likely supplier name and the name of the
// strategy that found it. Invoices place the supplier near the top, so the
// first qualifying line wins within each strategy.
func (p *Pipeline) extractVendor(doc *document.Document) (string, string) {
	for _, s := range vendorStrategies {
		if v, ok := s.run(p, doc); ok {
			return v, s.name
		}
	}
	return "", ""
}

func (p *Pipeline) vendorByLegalSuffix(doc *document.Document) (string, bool) {
	limit := min(p.cfg.VendorScanLines, len(doc.Lines))
	for i := 0; i < limit; i++ {
		cand := beforePipe(doc.Lines[i])
		if !vendorCandidate(cand) {
			continue
		}
		if hasLegalSuffix(cand) {
			return cand, true
		}
	}
	return "", false
}

func (p *Pipeline) vendorByHeading(doc *document.Document) (string, bool) {
	limit := min(p.cfg.VendorScanLines, len(doc.Lines))
	for i := 0; i < limit; i++ {
		cand := beforePipe(doc.Lines[i])
		cand = strings.TrimSpace(reTrailingTel.ReplaceAllString(cand, ""))
		if !vendorCandidate(cand) {
			continue
		}
		r, _ := utf8.DecodeRuneInString(cand)
		if unicode.IsUpper(r) {
			return cand, true
		}
	}
	return "", false
}

// beforePipe keeps only the segment before the first pipe; OCR renders
// "name | address | phone" blocks that way.
func beforePipe(line string) string {
	if i := strings.IndexByte(line, '|'); i >= 0 {
		return strings.TrimSpace(line[:i])
	}
	return line
}

func vendorCandidate(s string) bool {
	if n := utf8.RuneCountInString(s); n < 9 || n > 99 {
		return false
	}
	if len(strings.Fields(s)) < 2 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s)
	if unicode.IsDigit(r) {
		return false
	}
	if reDateDMY.MatchString(s) || reDateISO.MatchString(s) {
		return false
	}
	return !document.ContainsAny(s, constants.VendorExcluded)
}

func hasLegalSuffix(s string) bool {
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		tok = strings.TrimRight(tok, ",;")
		if _, ok := legalSuffixTokens[tok]; ok {
			return true
		}
	}
	return false
}
