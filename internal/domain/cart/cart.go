// Package cart implements the shopping cart: an ordered list of line items
// keyed by (product, size), with merge-on-add and quantity clamping, persisted
// to durable local storage on every mutation.
package cart

import (
	"sync"

	"go.uber.org/zap"

	"github.com/shopspring/decimal"

	"github.com/dukicks/storefront/internal/domain/catalog"
	"github.com/dukicks/storefront/internal/domain/pricing"
)

// Quantity bounds for a single line item. Adds clamp into this range;
// explicit quantity edits outside it are ignored.
const (
	MinQuantity = 1
	MaxQuantity = 99
)

// LineItem is one cart entry. Two entries are the same line item iff both
// ProductID and Size match; an empty Size means "no size". The price, name,
// image, and category are snapshots taken at add time, not live links to the
// product.
type LineItem struct {
	ProductID string          `json:"product_id"`
	Size      string          `json:"size"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// Subtotal returns Price multiplied by Quantity.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// NewLineItem builds a line item from a product snapshot. Only the defined
// fields are copied; the quantity is clamped into the valid range.
func NewLineItem(p catalog.Product, size string, quantity int) LineItem {
	return LineItem{
		ProductID: p.ID,
		Size:      size,
		Name:      p.DisplayName(),
		Image:     p.DisplayImage(),
		Category:  p.Category,
		Price:     pricedAt(p),
		Quantity:  clampQuantity(quantity),
	}
}

// Storage persists the cart's line items under a single key. Load returns an
// empty slice when nothing has been stored yet.
type Storage interface {
	Load() ([]LineItem, error)
	Save(items []LineItem) error
}

// Cart is the process-wide cart store. It is constructed once at application
// start with its storage injected, and is safe for concurrent use. The
// in-memory state is authoritative: storage failures are logged and the
// session continues without persistence.
type Cart struct {
	mu      sync.Mutex
	items   []LineItem
	storage Storage
	lg      *zap.Logger
}

// New creates a Cart rehydrated from storage. A missing, corrupt, or
// unreadable stored state degrades to an empty cart, never an error.
func New(storage Storage, lg *zap.Logger) *Cart {
	c := &Cart{storage: storage, lg: lg.Named("cart")}

	items, err := storage.Load()
	if err != nil {
		c.lg.Warn("loading stored cart, starting empty", zap.Error(err))
		return c
	}
	c.items = items
	return c
}

// Add merges a product into the cart. If a line item with the same
// (product, size) exists its quantity is incremented by quantity, clamped to
// MaxQuantity; otherwise a new line item is appended with at least
// MinQuantity. Adding a quantity of zero to an existing line item changes
// nothing.
func (c *Cart) Add(p catalog.Product, size string, quantity int) {
	if quantity < 0 {
		quantity = 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ProductID == p.ID && c.items[i].Size == size {
			c.items[i].Quantity = clampQuantity(c.items[i].Quantity + quantity)
			c.persist()
			return
		}
	}

	c.items = append(c.items, NewLineItem(p, size, quantity))
	c.persist()
}

// UpdateQuantity replaces the quantity of the matching line item. A quantity
// outside MinQuantity..MaxQuantity is out of range and the call is a no-op;
// so is a missing line item.
func (c *Cart) UpdateQuantity(productID, size string, quantity int) {
	if quantity < MinQuantity || quantity > MaxQuantity {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ProductID == productID && c.items[i].Size == size {
			c.items[i].Quantity = quantity
			c.persist()
			return
		}
	}
}

// Remove deletes the matching line item; no-op when absent.
func (c *Cart) Remove(productID, size string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ProductID == productID && c.items[i].Size == size {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.persist()
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	c.persist()
}

// Contains reports whether the exact (product, size) line item exists.
func (c *Cart) Contains(productID, size string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, li := range c.items {
		if li.ProductID == productID && li.Size == size {
			return true
		}
	}
	return false
}

// ContainsProduct reports whether any size of the product is in the cart.
func (c *Cart) ContainsProduct(productID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, li := range c.items {
		if li.ProductID == productID {
			return true
		}
	}
	return false
}

// QuantityOf returns the quantity of the exact (product, size) line item,
// or zero when absent.
func (c *Cart) QuantityOf(productID, size string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, li := range c.items {
		if li.ProductID == productID && li.Size == size {
			return li.Quantity
		}
	}
	return 0
}

// ProductQuantity returns the summed quantity across all sizes of a product.
func (c *Cart) ProductQuantity(productID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for _, li := range c.items {
		if li.ProductID == productID {
			total += li.Quantity
		}
	}
	return total
}

// Items returns a snapshot copy of the line items in insertion order.
func (c *Cart) Items() []LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]LineItem, len(c.items))
	copy(items, c.items)
	return items
}

// Subtotal returns the sum of line subtotals.
func (c *Cart) Subtotal() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	sum := decimal.Zero
	for _, li := range c.items {
		sum = sum.Add(li.Subtotal())
	}
	return sum
}

// Total returns the amount due. There is no tax or shipping logic, so the
// total equals the subtotal.
func (c *Cart) Total() decimal.Decimal {
	return c.Subtotal()
}

// ItemCount returns the sum of quantities across all line items.
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for _, li := range c.items {
		total += li.Quantity
	}
	return total
}

// UniqueItemCount returns the number of distinct line items.
func (c *Cart) UniqueItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.items)
}

// IsEmpty reports whether the cart has no line items.
func (c *Cart) IsEmpty() bool {
	return c.UniqueItemCount() == 0
}

// persist writes the current items to storage. Write failures are logged,
// never propagated: the in-memory cart stays authoritative for the session.
// Callers must hold c.mu.
func (c *Cart) persist() {
	if err := c.storage.Save(c.items); err != nil {
		c.lg.Warn("saving cart", zap.Error(err))
	}
}

func clampQuantity(q int) int {
	if q < MinQuantity {
		return MinQuantity
	}
	if q > MaxQuantity {
		return MaxQuantity
	}
	return q
}

// pricedAt snapshots the price the buyer pays: the product's discounted
// price. A negative base price snapshots as zero.
func pricedAt(p catalog.Product) decimal.Decimal {
	final := pricing.FinalPrice(p)
	if final.IsNegative() {
		return decimal.Zero
	}
	return final
}
