package extract

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/cloudflare/ahocorasick"

	"github.com/smartinez/factura-extractor/constants"
	"github.com/smartinez/factura-extractor/internal/entity"
)

// One automaton over the whole excluded-name vocabulary; names are matched
// lowercased as substrings, same as the line-level keyword scans.
var excludedNameMatcher = ahocorasick.NewStringMatcher(constants.ItemNameExcluded)

// FilterItems drops invalid, non-product, and duplicate candidates.
// Rules run in order: name length, excluded vocabulary, price plausibility,
// quantity bounds, then (name, unit price, quantity) dedup keeping the
// first occurrence.
func FilterItems(items []entity.LineItem) []entity.LineItem {
	out := make([]entity.LineItem, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		name := strings.TrimSpace(it.Name)
		if utf8.RuneCountInString(name) < 3 {
			continue
		}
		if len(excludedNameMatcher.Match([]byte(strings.ToLower(name)))) > 0 {
			continue
		}
		if !plausiblePrice(it) {
			continue
		}
		if it.Quantity <= 0 || it.Quantity > 1000 {
			continue
		}
		key := fmt.Sprintf("%s|%.2f|%d", strings.ToLower(name), it.UnitPrice, it.Quantity)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, it)
	}
	return out
}

// plausiblePrice rejects prices that are really quantities, codes, or
// document totals. The looser unit floor applies when the row total is
// large enough to vouch for it.
func plausiblePrice(it entity.LineItem) bool {
	if it.TotalPrice < 100 || it.TotalPrice > 10000000 {
		return false
	}
	if it.UnitPrice >= 50 {
		return true
	}
	return it.UnitPrice >= 10 && it.TotalPrice >= 1000
}
