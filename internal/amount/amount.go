package amount

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Regional convention: "." groups thousands, "," marks decimals.
// "93.356,09" parses to 93356.09.
var (
	reAmount = regexp.MustCompile(`\d{1,3}(?:\.\d{3})+,\d{2}|\d+,\d{2}`)
)

// Amount pairs a raw token with its parsed value.
type Amount struct {
	Raw   string
	Value decimal.Decimal
}

// Parse converts a regional-format token to a decimal. It strips currency
// markers and grouping dots before swapping the decimal comma.
func Parse(tok string) (decimal.Decimal, error) {
	s := strings.TrimSpace(tok)
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount token")
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", tok, err)
	}
	return d, nil
}

// Find returns every regional-format number token in s, in order.
func Find(s string) []Amount {
	var out []Amount
	for _, tok := range reAmount.FindAllString(s, -1) {
		d, err := Parse(tok)
		if err != nil {
			continue
		}
		out = append(out, Amount{Raw: tok, Value: d})
	}
	return out
}

// Pattern returns the regional-number regexp source, for callers that embed
// it inside larger line-shape patterns.
func Pattern() string {
	return reAmount.String()
}

// Float rounds to two decimals and converts for the entity boundary.
func Float(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
