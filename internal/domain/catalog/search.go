package catalog

import (
	"sort"
	"strings"
)

// Relevance weights per searchable field. Brand and model dominate, the
// display name and category matter less, free-text fields least.
var searchFields = []struct {
	value  func(Product) string
	weight float64
}{
	{func(p Product) string { return p.Brand }, 10},
	{func(p Product) string { return p.Model }, 10},
	{func(p Product) string { return p.Name }, 8},
	{func(p Product) string { return p.Category }, 6},
	{func(p Product) string { return p.Description }, 3},
	{func(p Product) string { return p.Type }, 3},
}

// Score multipliers applied on top of the field weight. A field can earn
// several bonuses at once: an exact match is also a prefix match and a
// substring match, so all three accumulate.
const (
	bonusExact    = 5
	bonusPrefix   = 3
	bonusContains = 2
	bonusPerWord  = 0.5
)

// Rank orders products by relevance to a free-text query. Products that do
// not match at all are dropped; ties between equal scores keep their input
// order. The input slice is never mutated.
//
// An empty or whitespace-only query applies no ranking and returns the input
// unchanged; callers that want "no results" for an empty query must guard
// before calling.
func Rank(products []Product, query string) []Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return products
	}
	words := strings.Fields(q)

	type scored struct {
		product Product
		score   float64
	}

	matches := make([]scored, 0, len(products))
	for _, p := range products {
		score := 0.0
		for _, f := range searchFields {
			v := strings.ToLower(f.value(p))
			if v == "" {
				continue
			}
			if v == q {
				score += f.weight * bonusExact
			}
			if strings.HasPrefix(v, q) {
				score += f.weight * bonusPrefix
			}
			if strings.Contains(v, q) {
				score += f.weight * bonusContains
			}
			for _, w := range words {
				if strings.Contains(v, w) {
					score += f.weight * bonusPerWord
				}
			}
		}
		if score > 0 {
			matches = append(matches, scored{product: p, score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	result := make([]Product, len(matches))
	for i, m := range matches {
		result[i] = m.product
	}
	return result
}
