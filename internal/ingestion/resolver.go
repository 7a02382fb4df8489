package ingestion

import "strings"

// Header fragments that identify the three required columns. Matching is a
// case-insensitive substring test, so "Розничная цена" resolves as a price column.
var (
	ProductFragments = []string{"название", "продукт", "товар", "наименование"}
	PriceFragments   = []string{"цена", "розница"}
	WeightFragments  = []string{"фасовка", "масса", "вес"}
)

// ResolveColumn returns the first header (in the given order) whose lowercased
// text contains any of the candidate fragments.
func ResolveColumn(headers []string, candidates []string) (string, bool) {
	if i := resolveIndex(headers, candidates); i >= 0 {
		return headers[i], true
	}
	return "", false
}

func resolveIndex(headers []string, candidates []string) int {
	for i, h := range headers {
		lower := strings.ToLower(h)
		for _, c := range candidates {
			if strings.Contains(lower, c) {
				return i
			}
		}
	}
	return -1
}
