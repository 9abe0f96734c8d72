package csv

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const utf8BOM = "\uFEFF"

// headerCleaner folds compatibility forms (full-width characters, no-break
// spaces) to their canonical shape and drops invisible format runes that
// spreadsheet exports tend to smuggle into header cells.
var headerCleaner = transform.Chain(
	norm.NFKC,
	runes.Remove(runes.In(unicode.Cf)),
)

// normalizeHeader canonicalizes header cells: BOM stripped from the first
// cell, NFKC-folded, trimmed, then renamed via headerMap when a mapping
// exists. Case is preserved so headers match the documented column names.
func normalizeHeader(h []string, headerMap map[string]string) []string {
	res := make([]string, len(h))
	for i, col := range h {
		c := col
		if i == 0 {
			c = strings.TrimPrefix(c, utf8BOM)
		}
		if folded, _, err := transform.String(headerCleaner, c); err == nil {
			c = folded
		}
		c = strings.TrimSpace(c)
		if headerMap != nil {
			if m, ok := headerMap[c]; ok && m != "" {
				c = m
			}
		}
		res[i] = c
	}
	return res
}
