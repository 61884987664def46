package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/smartinez/factura-extractor/constants"
	"github.com/smartinez/factura-extractor/internal/document"
)

var (
	reDateDMY = regexp.MustCompile(`\b(\d{2})[/-](\d{2})[/-](\d{4})\b`)
	reDateISO = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
)

// dateMatch carries the normalized date plus the line it was found on; the
// due-date fallback scans forward from the issue date's line.
type dateMatch struct {
	iso  string
	line int
}

type issueDateStrategy struct {
	name string
	run  func(p *Pipeline, doc *document.Document) (dateMatch, bool)
}

var issueDateStrategies = []issueDateStrategy{
	{"label", (*Pipeline).issueDateByLabel},
	{"positional", (*Pipeline).issueDatePositional},
}

func (p *Pipeline) extractIssueDate(doc *document.Document) (dateMatch, string) {
	for _, s := range issueDateStrategies {
		if m, ok := s.run(p, doc); ok {
			return m, s.name
		}
	}
	return dateMatch{line: -1}, ""
}

// issueDateByLabel looks for a "fecha" label, excluding lines where the word
// refers to something else (activity start, authorization code, due date).
func (p *Pipeline) issueDateByLabel(doc *document.Document) (dateMatch, bool) {
	for i := range doc.Lines {
		low := strings.ToLower(doc.Lines[i])
		if !strings.Contains(low, "fecha") && !strings.Contains(low, "date") {
			continue
		}
		if document.ContainsAny(doc.Lines[i], constants.DateExcluded) {
			continue
		}
		for j := i; j <= i+1; j++ {
			if iso, ok := findDate(doc.Line(j)); ok {
				return dateMatch{iso: iso, line: j}, true
			}
		}
	}
	return dateMatch{}, false
}

func (p *Pipeline) issueDatePositional(doc *document.Document) (dateMatch, bool) {
	limit := min(p.cfg.DateFallbackLines, len(doc.Lines))
	for i := 0; i < limit; i++ {
		if isAuthorizationLine(doc.Lines[i]) {
			continue
		}
		if iso, ok := findDate(doc.Lines[i]); ok {
			return dateMatch{iso: iso, line: i}, true
		}
	}
	return dateMatch{}, false
}

// extractDueDate resolves the payment due date. The positional fallback
// assumes due dates never precede issue dates, so it only accepts the next
// chronologically later date after the issue date's line.
func (p *Pipeline) extractDueDate(doc *document.Document, issue dateMatch) (string, string) {
	if iso, ok := p.dueDateByLabel(doc); ok {
		return iso, "label"
	}
	if issue.iso != "" {
		if iso, ok := p.dueDateAfterIssue(doc, issue); ok {
			return iso, "after-issue"
		}
	}
	return "", ""
}

func (p *Pipeline) dueDateByLabel(doc *document.Document) (string, bool) {
	for i := range doc.Lines {
		if !document.ContainsAny(doc.Lines[i], constants.DueDateLabels) {
			continue
		}
		if isAuthorizationLine(doc.Lines[i]) {
			continue
		}
		for j := i; j <= i+2; j++ {
			if iso, ok := findDate(doc.Line(j)); ok {
				return iso, true
			}
		}
	}
	return "", false
}

func (p *Pipeline) dueDateAfterIssue(doc *document.Document, issue dateMatch) (string, bool) {
	for i := issue.line; i < len(doc.Lines); i++ {
		if i < 0 || isAuthorizationLine(doc.Lines[i]) {
			continue
		}
		for _, iso := range findAllDates(doc.Lines[i]) {
			// ISO strings compare chronologically.
			if iso > issue.iso {
				return iso, true
			}
		}
	}
	return "", false
}

func isAuthorizationLine(line string) bool {
	return strings.Contains(strings.ToLower(line), constants.AuthorizationKeyword)
}

// findDate returns the first valid date token on the line, normalized to
// YYYY-MM-DD. Accepted inputs: DD/MM/YYYY, DD-MM-YYYY, YYYY-MM-DD.
func findDate(line string) (string, bool) {
	dates := findAllDates(line)
	if len(dates) == 0 {
		return "", false
	}
	return dates[0], true
}

func findAllDates(line string) []string {
	var out []string
	for _, m := range reDateDMY.FindAllStringSubmatch(line, -1) {
		if iso, ok := normalizeDate(m[3], m[2], m[1]); ok {
			out = append(out, iso)
		}
	}
	for _, m := range reDateISO.FindAllStringSubmatch(line, -1) {
		if iso, ok := normalizeDate(m[1], m[2], m[3]); ok {
			out = append(out, iso)
		}
	}
	return out
}

func normalizeDate(y, m, d string) (string, bool) {
	year, _ := strconv.Atoi(y)
	month, _ := strconv.Atoi(m)
	day, _ := strconv.Atoi(d)
	if year < 1990 || year > 2100 || month < 1 || month > 12 || day < 1 || day > 31 {
		return "", false
	}
	// Rejects 31/02 and friends: time.Date rolls invalid days over.
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || t.Month() != time.Month(month) {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
}
