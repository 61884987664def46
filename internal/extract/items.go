package extract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/shopspring/decimal"

	"github.com/smartinez/factura-extractor/constants"
	"github.com/smartinez/factura-extractor/internal/amount"
	"github.com/smartinez/factura-extractor/internal/document"
	"github.com/smartinez/factura-extractor/internal/entity"
)

// Per-item price bounds. Anything outside is a header fragment, a quantity,
// or a document-level amount rather than a product price.
var (
	itemPriceMin = decimal.NewFromInt(50)
	itemDescMin  = decimal.NewFromInt(100) // floor when only description+total matched
	itemPriceMax = decimal.NewFromInt(10000000)
)

var (
	numPat = `(` + amount.Pattern() + `)`
	qtyPat = `(\d{1,4})`
	// Optional "10%" / "10,5 %" discount column between unit and total.
	discPat = `(?:\d{1,3}(?:,\d{1,2})?\s*%\s+)?`

	// Row shapes in descending preference. OCR keeps well-formed tables on
	// single lines; these cover the column layouts seen on regional invoices.
	reRowBrandCode = regexp.MustCompile(`^(\S+)\s+(\S+)\s+(.+?)\s+` + qtyPat + `\s+` + numPat + `\s+` + discPat + numPat + `$`)
	reRowQtyCode   = regexp.MustCompile(`^` + qtyPat + `\s+(\S+)\s+(.+?)\s+` + numPat + `\s+` + numPat + `$`)
	reRowDescQty   = regexp.MustCompile(`^(.+?)\s+` + qtyPat + `\s+` + numPat + `\s+` + numPat + `$`)
	reRowDescOnly  = regexp.MustCompile(`^(.+?)\s+` + numPat + `$`)

	rePureNumeric = regexp.MustCompile(`^[\d\s.,/$-]+$`)
	reQtyLine     = regexp.MustCompile(`^\d{1,2}$`)
	reCodeToken   = regexp.MustCompile(`^[A-Za-z0-9][\w./-]{1,11}$`)
)

// extractItems reconstructs the product table. The single-line family is
// preferred whenever it yields anything; the grouped fallback handles tables
// OCR has shredded into one-cell-per-line fragments.
func (p *Pipeline) extractItems(doc *document.Document) ([]entity.LineItem, string) {
	if items := p.itemsSingleLine(doc); len(items) > 0 {
		return items, "single-line"
	}
	if items := p.itemsGrouped(doc); len(items) > 0 {
		return items, "grouped"
	}
	return nil, ""
}

// --- Strategy A: single-line structured rows ---

func (p *Pipeline) itemsSingleLine(doc *document.Document) []entity.LineItem {
	var items []entity.LineItem
	for _, line := range doc.Lines {
		if document.ContainsAny(line, constants.ItemLineExcluded) {
			continue
		}
		if it, ok := matchRow(line); ok {
			items = append(items, it)
		}
	}
	return items
}

func matchRow(line string) (entity.LineItem, bool) {
	if m := reRowBrandCode.FindStringSubmatch(line); m != nil {
		brand, ok := brandLookup(m[1])
		if ok && hasDigit(m[2]) {
			if it, ok := buildRow(m[3], m[4], m[5], m[6], m[2], brand); ok {
				return it, true
			}
		}
	}
	if m := reRowQtyCode.FindStringSubmatch(line); m != nil && hasDigit(m[2]) {
		if it, ok := buildRow(m[3], m[1], m[4], m[5], m[2], ""); ok {
			return it, true
		}
	}
	if m := reRowDescQty.FindStringSubmatch(line); m != nil {
		if it, ok := buildRow(m[1], m[2], m[3], m[4], "", ""); ok {
			return it, true
		}
	}
	if m := reRowDescOnly.FindStringSubmatch(line); m != nil {
		if it, ok := buildRow(m[1], "1", m[2], m[2], "", ""); ok {
			// Tighter floor: with only description+total there is no
			// cross-column evidence that this is a product row.
			if it.TotalPrice >= amount.Float(itemDescMin) {
				return it, true
			}
		}
	}
	return entity.LineItem{}, false
}

// buildRow validates and assembles one row candidate. Quantity defaults to 1
// and the unit price is derived from the total when the column was absent.
func buildRow(desc, qtyTok, unitTok, totalTok, code, brand string) (entity.LineItem, bool) {
	qty, err := strconv.Atoi(qtyTok)
	if err != nil || qty < 1 || qty > 1000 {
		return entity.LineItem{}, false
	}
	unit, err := amount.Parse(unitTok)
	if err != nil || !withinItemBounds(unit) {
		return entity.LineItem{}, false
	}
	total, err := amount.Parse(totalTok)
	if err != nil || !withinItemBounds(total) {
		return entity.LineItem{}, false
	}
	name, extractedCode, extractedBrand := cleanDescription(desc)
	if code == "" {
		code = extractedCode
	}
	if brand == "" {
		brand = extractedBrand
	}
	if !validDescription(name) {
		return entity.LineItem{}, false
	}
	return entity.LineItem{
		Name:       name,
		Quantity:   qty,
		UnitPrice:  amount.Float(unit),
		TotalPrice: amount.Float(total),
		Code:       code,
		Brand:      brand,
	}, true
}

// --- Strategy B: multi-line grouping fallback ---

// itemsGrouped reconstructs rows that OCR split across lines. It anchors on
// large amounts below the table header and searches backward for quantity,
// unit price, and description fragments. The table is bounded by the first
// subtotal/tax/amount-in-words line after the header.
func (p *Pipeline) itemsGrouped(doc *document.Document) []entity.LineItem {
	header := findTableHeader(doc)
	if header < 0 {
		return nil
	}
	end := len(doc.Lines)
	for i := header + 1; i < len(doc.Lines); i++ {
		if document.ContainsAny(doc.Lines[i], constants.TableEndKeywords) {
			end = i
			break
		}
	}

	var items []entity.LineItem
	consumed := header
	for i := header + 1; i < end; i++ {
		anchor, ok := largestItemAmount(doc.Lines[i])
		if !ok {
			continue
		}
		// Totals print after unit prices. When the next fragment is an
		// equal-or-larger amount, this line is the unit column: let the
		// next line anchor the row and find this one on the backward pass.
		if i+1 < end {
			if next, ok := largestItemAmount(doc.Lines[i+1]); ok && next.GreaterThanOrEqual(anchor) {
				continue
			}
		}

		lo := max(header+1, consumed+1)
		lo = max(lo, i-p.cfg.GroupLookback)

		qty := 1
		var unit decimal.Decimal
		unitFound := false
		desc := ""
		descLine := -1
		for j := i - 1; j >= lo; j-- {
			l := doc.Lines[j]
			if qty == 1 && reQtyLine.MatchString(l) {
				if n, err := strconv.Atoi(l); err == nil && n >= 1 {
					qty = n
					continue
				}
			}
			if !unitFound {
				if a, ok := largestItemAmount(l); ok && a.LessThanOrEqual(anchor) {
					unit, unitFound = a, true
					continue
				}
			}
			if desc == "" && isDescriptionLine(doc, j) {
				desc, descLine = l, j
			}
		}
		if desc == "" {
			// Rows that survived OCR with label and amount together.
			stripped := strings.TrimSpace(reAmountInLine.ReplaceAllString(doc.Lines[i], " "))
			if validDescription(stripped) && len(stripped) >= 5 {
				desc, descLine = stripped, i
			}
		}
		if desc == "" {
			continue
		}

		name, code, brand := cleanDescription(desc)
		if code == "" && descLine >= 0 {
			code = standaloneCode(doc, descLine+1, i)
		}
		if brand == "" && descLine >= 0 {
			brand = standaloneBrand(doc, descLine-1, descLine+1)
		}
		if !validDescription(name) {
			continue
		}
		if !unitFound {
			unit = anchor.DivRound(decimal.NewFromInt(int64(qty)), 2)
		}
		items = append(items, entity.LineItem{
			Name:       name,
			Quantity:   qty,
			UnitPrice:  amount.Float(unit),
			TotalPrice: amount.Float(anchor),
			Code:       code,
			Brand:      brand,
		})
		consumed = i
	}
	return items
}

var reAmountInLine = regexp.MustCompile(amount.Pattern())

// findTableHeader returns the line index of the product-table header, or -1.
// A header must carry at least two column keywords.
func findTableHeader(doc *document.Document) int {
	for i, line := range doc.Lines {
		if headerKeywordCount(line) >= 2 {
			return i
		}
	}
	return -1
}

func headerKeywordCount(line string) int {
	low := strings.ToLower(line)
	n := 0
	for _, kw := range constants.TableHeaderKeywords {
		if strings.Contains(low, kw) {
			n++
		}
	}
	return n
}

func largestItemAmount(line string) (decimal.Decimal, bool) {
	var best decimal.Decimal
	found := false
	for _, a := range amount.Find(line) {
		if !withinItemBounds(a.Value) {
			continue
		}
		if !found || a.Value.GreaterThan(best) {
			best, found = a.Value, true
		}
	}
	return best, found
}

func isDescriptionLine(doc *document.Document, i int) bool {
	l := doc.Lines[i]
	if len(l) < 5 || len(l) > 120 {
		return false
	}
	if headerKeywordCount(l) >= 2 {
		return false
	}
	// Standalone code tokens are not descriptions.
	if reCodeToken.MatchString(l) {
		return false
	}
	return validDescription(l)
}

// standaloneCode looks for a short alphanumeric token line between the
// description and the total anchor.
func standaloneCode(doc *document.Document, from, to int) string {
	for j := from; j < to; j++ {
		l := doc.Line(j)
		if reCodeToken.MatchString(l) && hasDigit(l) && !reQtyLine.MatchString(l) {
			return l
		}
	}
	return ""
}

func standaloneBrand(doc *document.Document, from, to int) string {
	for j := from; j <= to; j++ {
		for _, f := range strings.Fields(doc.Line(j)) {
			if b, ok := brandLookup(f); ok {
				return b
			}
		}
	}
	return ""
}

// --- shared helpers ---

func withinItemBounds(v decimal.Decimal) bool {
	return v.GreaterThanOrEqual(itemPriceMin) && v.LessThanOrEqual(itemPriceMax)
}

// cleanDescription strips an embedded code and/or brand token from the start
// of a description and returns what was removed.
func cleanDescription(desc string) (name, code, brand string) {
	name = strings.TrimSpace(desc)
	fields := strings.Fields(name)
	for len(fields) > 1 {
		tok := fields[0]
		if code == "" && hasDigit(tok) && reCodeToken.MatchString(tok) {
			code = tok
			fields = fields[1:]
			continue
		}
		if brand == "" {
			if b, ok := brandLookup(tok); ok {
				brand = b
				fields = fields[1:]
				continue
			}
		}
		break
	}
	return strings.Join(fields, " "), code, brand
}

func validDescription(s string) bool {
	if !hasLetter(s) {
		return false
	}
	if rePureNumeric.MatchString(s) {
		return false
	}
	if m := reDateDMY.FindString(s); m == s {
		return false
	}
	if m := reDateISO.FindString(s); m == s {
		return false
	}
	return true
}

// brandLookup matches a token against the fixed brand vocabulary, tolerating
// one OCR character error on longer names.
func brandLookup(tok string) (string, bool) {
	t := strings.ToUpper(strings.Trim(tok, ".,;"))
	if len(t) < 3 {
		return "", false
	}
	for _, b := range constants.Brands {
		if t == b {
			return b, true
		}
		if len(t) >= 4 && len(b) >= 4 && fuzzy.LevenshteinDistance(t, b) == 1 {
			return b, true
		}
	}
	return "", false
}

func hasDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
