package dataset

import "strings"

// Record is one raw CSV row keyed by normalized header name.
type Record struct {
	RowNumber int
	Values    map[string]string
}

// Get returns the first non-empty value among the given header variants.
func (r Record) Get(keys ...string) string {
	for _, key := range keys {
		normalized := normalizeHeader(key)
		if value, ok := r.Values[normalized]; ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// Has reports whether any of the header variants exists as a column,
// regardless of the cell value.
func (r Record) Has(keys ...string) bool {
	for _, key := range keys {
		if _, ok := r.Values[normalizeHeader(key)]; ok {
			return true
		}
	}
	return false
}

var headerPunctuation = strings.NewReplacer(
	"（", "(",
	"）", ")",
	"：", ":",
	"　", "",
	" ", "",
	"\t", "",
)

// normalizeHeader collapses the header variants seen across portal exports:
// surrounding whitespace (half- and full-width), and full-width punctuation.
func normalizeHeader(input string) string {
	return headerPunctuation.Replace(strings.TrimSpace(input))
}
