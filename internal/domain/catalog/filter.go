package catalog

import (
	"sort"

	"github.com/shopspring/decimal"
)

// AllBrands is the sentinel brand value that disables brand filtering.
const AllBrands = "All"

// Filters holds the predicates applied to a product list. Each set predicate
// is ANDed with the others. Zero-valued bounds are treated as absent: a
// PriceMin of zero and a PriceMax of zero both mean "no bound".
type Filters struct {
	Brands   []string
	PriceMin decimal.Decimal
	PriceMax decimal.Decimal
}

// ApplyFilters returns the products satisfying every set predicate. The input
// slice is never mutated. Price bounds are inclusive.
func ApplyFilters(products []Product, f Filters) []Product {
	brands := activeBrands(f.Brands)
	hasMin := f.PriceMin.IsPositive()
	hasMax := f.PriceMax.IsPositive()

	result := make([]Product, 0, len(products))
	for _, p := range products {
		if brands != nil {
			if _, ok := brands[p.Brand]; !ok {
				continue
			}
		}
		if hasMin && p.Price.LessThan(f.PriceMin) {
			continue
		}
		if hasMax && p.Price.GreaterThan(f.PriceMax) {
			continue
		}
		result = append(result, p)
	}
	return result
}

// activeBrands returns the brand set to match against, or nil when brand
// filtering is disabled (empty set or the AllBrands sentinel present).
func activeBrands(brands []string) map[string]struct{} {
	if len(brands) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(brands))
	for _, b := range brands {
		if b == "" || b == AllBrands {
			return nil
		}
		set[b] = struct{}{}
	}
	return set
}

// UniqueBrands returns the deduplicated, lexicographically sorted brands
// present in products. When includeAll is true the AllBrands sentinel is
// prepended.
func UniqueBrands(products []Product, includeAll bool) []string {
	seen := make(map[string]struct{}, len(products))
	brands := make([]string, 0, len(products))
	for _, p := range products {
		if p.Brand == "" {
			continue
		}
		if _, ok := seen[p.Brand]; ok {
			continue
		}
		seen[p.Brand] = struct{}{}
		brands = append(brands, p.Brand)
	}
	sort.Strings(brands)

	if includeAll {
		return append([]string{AllBrands}, brands...)
	}
	return brands
}

// PriceRange returns the minimum and maximum positive price across products.
// Products with a zero or negative price are ignored; an empty or priceless
// list yields (0, 0).
func PriceRange(products []Product) (min, max decimal.Decimal) {
	first := true
	for _, p := range products {
		if !p.Price.IsPositive() {
			continue
		}
		if first {
			min, max = p.Price, p.Price
			first = false
			continue
		}
		if p.Price.LessThan(min) {
			min = p.Price
		}
		if p.Price.GreaterThan(max) {
			max = p.Price
		}
	}
	return min, max
}
