// Package pricing computes discounted prices and savings. All amounts are
// decimals in a single currency; discounts are integer percentages.
//
// Rounding convention: discounted prices round to the nearest whole currency
// unit. There are no sub-unit cents anywhere in this package.
package pricing

import (
	"go.uber.org/zap"

	"github.com/shopspring/decimal"

	"github.com/dukicks/storefront/internal/domain/catalog"
)

var hundred = decimal.NewFromInt(100)

// Invalid inputs are recovered locally with a safe default and a warning;
// nothing in this package returns an error. The logger is a no-op until the
// application wires one in.
var log = zap.NewNop()

// SetLogger installs the logger used for invalid-input diagnostics. Call once
// at application start, before any pricing computation.
func SetLogger(lg *zap.Logger) {
	log = lg.Named("pricing")
}

// DiscountedPrice returns price reduced by discount percent, rounded to the
// nearest whole unit. A discount of zero or less applies no reduction. A
// negative price or a discount outside 0..100 is invalid: the price is
// returned unchanged and a warning is logged.
func DiscountedPrice(price decimal.Decimal, discount int) decimal.Decimal {
	if price.IsNegative() {
		log.Warn("invalid price", zap.String("price", price.String()))
		return price
	}
	if discount < 0 || discount > 100 {
		log.Warn("invalid discount", zap.Int("discount", discount))
		return price
	}
	if discount == 0 {
		return price
	}

	factor := hundred.Sub(decimal.NewFromInt(int64(discount))).Div(hundred)
	return price.Mul(factor).Round(0)
}

// Savings returns the amount saved by the discount: the difference between
// the base price and the discounted price. Zero when there is no discount.
func Savings(price decimal.Decimal, discount int) decimal.Decimal {
	if discount <= 0 {
		return decimal.Zero
	}
	return price.Sub(DiscountedPrice(price, discount))
}

// FinalPrice returns the product's effective price after its own discount.
func FinalPrice(p catalog.Product) decimal.Decimal {
	return DiscountedPrice(p.Price, p.Discount)
}

// Breakdown is the full price decomposition for one product, with both raw
// amounts and formatted strings ready for display.
type Breakdown struct {
	Original    decimal.Decimal
	Final       decimal.Decimal
	Saved       decimal.Decimal
	Discount    int
	HasDiscount bool

	OriginalFormatted string
	FinalFormatted    string
	SavedFormatted    string
}

// PriceBreakdown computes the breakdown for a base price and discount using
// the given formatter.
func PriceBreakdown(f *Formatter, price decimal.Decimal, discount int) Breakdown {
	final := DiscountedPrice(price, discount)
	saved := Savings(price, discount)

	return Breakdown{
		Original:          price,
		Final:             final,
		Saved:             saved,
		Discount:          discount,
		HasDiscount:       discount > 0,
		OriginalFormatted: f.Format(price),
		FinalFormatted:    f.Format(final),
		SavedFormatted:    f.Format(saved),
	}
}
