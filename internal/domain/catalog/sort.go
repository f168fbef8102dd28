package catalog

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects one of the supported catalog orderings.
type SortKey string

const (
	SortPriceAscending  SortKey = "price-ascending"
	SortPriceDescending SortKey = "price-descending"
	SortNameAscending   SortKey = "name-ascending"
	SortNameDescending  SortKey = "name-descending"
)

// Name ordering is locale-aware lexicographic on the model field.
var sortLocale = language.Spanish

// Sort returns a new slice ordered by the given key. The sort is stable and
// the input is never mutated. An unknown key returns the input unchanged with
// ok=false so the caller can log a warning; it is not an error.
func Sort(products []Product, key SortKey) (sorted []Product, ok bool) {
	var less func(a, b Product) bool
	switch key {
	case SortPriceAscending:
		less = func(a, b Product) bool { return a.Price.LessThan(b.Price) }
	case SortPriceDescending:
		less = func(a, b Product) bool { return b.Price.LessThan(a.Price) }
	case SortNameAscending:
		c := collate.New(sortLocale)
		less = func(a, b Product) bool { return c.CompareString(a.Model, b.Model) < 0 }
	case SortNameDescending:
		c := collate.New(sortLocale)
		less = func(a, b Product) bool { return c.CompareString(b.Model, a.Model) < 0 }
	default:
		return products, false
	}

	sorted = make([]Product, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	return sorted, true
}

// SortKeys lists the supported keys in display order.
func SortKeys() []SortKey {
	return []SortKey{
		SortPriceAscending,
		SortPriceDescending,
		SortNameAscending,
		SortNameDescending,
	}
}
