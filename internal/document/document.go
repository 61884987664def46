package document

import (
	"regexp"
	"strings"
)

var (
	reCRLF       = regexp.MustCompile(`\r\n?`)
	reWhitespace = regexp.MustCompile(`\s+`)
)

// Document is the normalized view of one invoice's raw text. It is built
// once per extraction and shared read-only by every field extractor.
type Document struct {
	FullText string
	// Lines holds the trimmed, non-empty lines in original order.
	Lines []string
	// Normalized is the whole text collapsed onto a single line, for
	// pattern searches that may span line breaks.
	Normalized string
}

// New splits raw OCR text into trimmed non-empty lines and builds the
// single-line projection. Empty input yields empty outputs; the extractors
// then degrade to "nothing found".
func New(raw string) *Document {
	d := &Document{FullText: raw}
	s := reCRLF.ReplaceAllString(raw, "\n")
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			d.Lines = append(d.Lines, line)
		}
	}
	d.Normalized = strings.TrimSpace(reWhitespace.ReplaceAllString(raw, " "))
	return d
}

// Empty reports whether the document holds no usable text.
func (d *Document) Empty() bool {
	return len(d.Lines) == 0
}

// Line returns line i or "" when out of range, so window scans can
// look ahead without bounds bookkeeping.
func (d *Document) Line(i int) string {
	if i < 0 || i >= len(d.Lines) {
		return ""
	}
	return d.Lines[i]
}

// ContainsAny reports whether the lowercased string holds any of the
// given lowercase keywords.
func ContainsAny(s string, keywords []string) bool {
	ls := strings.ToLower(s)
	for _, kw := range keywords {
		if strings.Contains(ls, kw) {
			return true
		}
	}
	return false
}
