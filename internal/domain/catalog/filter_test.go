package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func brandedProduct(id, brand string, price int64) Product {
	return Product{ID: id, Brand: brand, Price: decimal.NewFromInt(price)}
}

func TestApplyFilters(t *testing.T) {
	products := []Product{
		brandedProduct("1", "Nike", 2900),
		brandedProduct("2", "Adidas", 2200),
		brandedProduct("3", "Nike", 1500),
		brandedProduct("4", "Puma", 1700),
	}

	tests := []struct {
		name    string
		filters Filters
		want    []string
	}{
		{
			name:    "no filters passes everything",
			filters: Filters{},
			want:    []string{"1", "2", "3", "4"},
		},
		{
			name:    "single brand",
			filters: Filters{Brands: []string{"Nike"}},
			want:    []string{"1", "3"},
		},
		{
			name:    "multiple brands",
			filters: Filters{Brands: []string{"Adidas", "Puma"}},
			want:    []string{"2", "4"},
		},
		{
			name:    "All sentinel disables brand filtering",
			filters: Filters{Brands: []string{AllBrands}},
			want:    []string{"1", "2", "3", "4"},
		},
		{
			name:    "All sentinel among brands disables brand filtering",
			filters: Filters{Brands: []string{"Nike", AllBrands}},
			want:    []string{"1", "2", "3", "4"},
		},
		{
			name:    "price minimum is inclusive",
			filters: Filters{PriceMin: decimal.NewFromInt(1700)},
			want:    []string{"1", "2", "4"},
		},
		{
			name:    "price maximum is inclusive",
			filters: Filters{PriceMax: decimal.NewFromInt(1700)},
			want:    []string{"3", "4"},
		},
		{
			name: "predicates compose with AND",
			filters: Filters{
				Brands:   []string{"Nike"},
				PriceMin: decimal.NewFromInt(2000),
				PriceMax: decimal.NewFromInt(3000),
			},
			want: []string{"1"},
		},
		{
			name:    "zero bounds are no bounds",
			filters: Filters{PriceMin: decimal.Zero, PriceMax: decimal.Zero},
			want:    []string{"1", "2", "3", "4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyFilters(products, tt.filters)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestUniqueBrands(t *testing.T) {
	products := []Product{
		brandedProduct("1", "Nike", 100),
		brandedProduct("2", "Nike", 200),
		brandedProduct("3", "Adidas", 300),
		brandedProduct("4", "", 400),
	}

	assert.Equal(t, []string{"Adidas", "Nike"}, UniqueBrands(products, false))
	assert.Equal(t, []string{AllBrands, "Adidas", "Nike"}, UniqueBrands(products, true))
}

func TestUniqueBrands_Empty(t *testing.T) {
	assert.Empty(t, UniqueBrands(nil, false))
	assert.Equal(t, []string{AllBrands}, UniqueBrands(nil, true))
}

func TestPriceRange(t *testing.T) {
	products := []Product{
		brandedProduct("1", "Nike", 2900),
		brandedProduct("2", "Adidas", 1500),
		brandedProduct("3", "Puma", 0),
	}

	min, max := PriceRange(products)
	assert.True(t, min.Equal(decimal.NewFromInt(1500)), "min = %s", min)
	assert.True(t, max.Equal(decimal.NewFromInt(2900)), "max = %s", max)
}

func TestPriceRange_NoPositivePrices(t *testing.T) {
	min, max := PriceRange([]Product{brandedProduct("1", "Nike", 0)})
	assert.True(t, min.IsZero())
	assert.True(t, max.IsZero())
}
