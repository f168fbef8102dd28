package cart

import (
	"testing"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dukicks/storefront/internal/domain/catalog"
)

// memStorage is an in-memory cart.Storage with injectable failures.
type memStorage struct {
	items   []LineItem
	loadErr error
	saveErr error
	saves   int
}

func (m *memStorage) Load() ([]LineItem, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.items, nil
}

func (m *memStorage) Save(items []LineItem) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.items = append([]LineItem(nil), items...)
	return nil
}

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func sneaker(id string, price int64) catalog.Product {
	return catalog.Product{
		ID:       id,
		Brand:    "Nike",
		Model:    "Air Max",
		Category: "sneakers",
		Images:   []string{"air-max.jpg"},
		Price:    d(price),
	}
}

func newTestCart(t *testing.T) (*Cart, *memStorage) {
	t.Helper()
	st := &memStorage{}
	return New(st, zap.NewNop()), st
}

func TestCart_AddMergesSameProductAndSize(t *testing.T) {
	c, _ := newTestCart(t)

	c.Add(sneaker("1", 1000), "42", 1)
	c.Add(sneaker("1", 1000), "42", 2)

	require.Equal(t, 1, c.UniqueItemCount())
	assert.Equal(t, 3, c.QuantityOf("1", "42"))
	assert.True(t, c.Subtotal().Equal(d(3000)))
}

func TestCart_AddDifferentSizesAreDistinctLines(t *testing.T) {
	c, _ := newTestCart(t)

	c.Add(sneaker("1", 1000), "42", 1)
	c.Add(sneaker("1", 1000), "43", 1)

	assert.Equal(t, 2, c.UniqueItemCount())
	assert.Equal(t, 1, c.QuantityOf("1", "42"))
	assert.Equal(t, 2, c.ProductQuantity("1"))
}

func TestCart_AddClampsQuantity(t *testing.T) {
	c, _ := newTestCart(t)

	c.Add(sneaker("1", 1000), "42", 150)
	assert.Equal(t, MaxQuantity, c.QuantityOf("1", "42"))

	c.Add(sneaker("1", 1000), "42", 10)
	assert.Equal(t, MaxQuantity, c.QuantityOf("1", "42"), "increment stays capped")
}

func TestCart_AddZeroQuantity(t *testing.T) {
	c, _ := newTestCart(t)

	// First add clamps up to the minimum.
	c.Add(sneaker("1", 1000), "42", 0)
	assert.Equal(t, 1, c.QuantityOf("1", "42"))

	// Subsequent zero adds change nothing.
	before := c.Items()
	c.Add(sneaker("1", 1000), "42", 0)
	assert.Equal(t, before, c.Items())
}

func TestCart_AddThenRemoveRestoresPriorState(t *testing.T) {
	c, _ := newTestCart(t)
	c.Add(sneaker("1", 1000), "42", 2)
	prior := c.Items()

	c.Add(sneaker("2", 500), "26", 1)
	c.Remove("2", "26")

	assert.Equal(t, prior, c.Items())
}

func TestCart_UpdateQuantity(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		want     int
	}{
		{"valid update", 5, 5},
		{"zero is out of range and ignored", 0, 2},
		{"negative ignored", -3, 2},
		{"above maximum ignored", 100, 2},
		{"maximum accepted", 99, 99},
		{"minimum accepted", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCart(t)
			c.Add(sneaker("1", 1000), "42", 2)

			c.UpdateQuantity("1", "42", tt.quantity)
			assert.Equal(t, tt.want, c.QuantityOf("1", "42"))
		})
	}
}

func TestCart_UpdateQuantityMissingItemIsNoop(t *testing.T) {
	c, st := newTestCart(t)
	saves := st.saves

	c.UpdateQuantity("ghost", "42", 5)
	assert.Equal(t, saves, st.saves, "no persistence write for a no-op")
	assert.True(t, c.IsEmpty())
}

func TestCart_RemoveMissingItemIsNoop(t *testing.T) {
	c, _ := newTestCart(t)
	c.Add(sneaker("1", 1000), "42", 1)

	c.Remove("1", "43")
	c.Remove("2", "42")
	assert.Equal(t, 1, c.UniqueItemCount())
}

func TestCart_Clear(t *testing.T) {
	c, _ := newTestCart(t)
	c.Add(sneaker("1", 1000), "42", 1)
	c.Add(sneaker("2", 500), "", 2)

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.ItemCount())
	assert.True(t, c.Subtotal().IsZero())
}

func TestCart_Contains(t *testing.T) {
	c, _ := newTestCart(t)
	c.Add(sneaker("1", 1000), "42", 1)

	assert.True(t, c.Contains("1", "42"))
	assert.False(t, c.Contains("1", "43"))
	assert.True(t, c.ContainsProduct("1"))
	assert.False(t, c.ContainsProduct("2"))
}

func TestCart_Aggregates(t *testing.T) {
	c, _ := newTestCart(t)
	c.Add(sneaker("1", 1000), "42", 2)
	c.Add(sneaker("1", 1000), "43", 1)
	c.Add(sneaker("2", 500), "", 4)

	assert.True(t, c.Subtotal().Equal(d(5000)))
	assert.True(t, c.Total().Equal(c.Subtotal()), "total equals subtotal, no tax or shipping")
	assert.Equal(t, 7, c.ItemCount())
	assert.Equal(t, 3, c.UniqueItemCount())
	assert.False(t, c.IsEmpty())
}

func TestCart_SnapshotsDiscountedPrice(t *testing.T) {
	p := sneaker("1", 1000)
	p.Discount = 20

	c, _ := newTestCart(t)
	c.Add(p, "42", 1)

	items := c.Items()
	require.Len(t, items, 1)
	assert.True(t, items[0].Price.Equal(d(800)), "line item snapshots the discounted price")
	assert.Equal(t, "Nike Air Max", items[0].Name)
	assert.Equal(t, "air-max.jpg", items[0].Image)
	assert.Equal(t, "sneakers", items[0].Category)
}

func TestCart_QuantityInvariantUnderMutationSequence(t *testing.T) {
	c, _ := newTestCart(t)
	p := sneaker("1", 1000)

	ops := []func(){
		func() { c.Add(p, "42", 50) },
		func() { c.Add(p, "42", 80) },
		func() { c.UpdateQuantity("1", "42", 0) },
		func() { c.UpdateQuantity("1", "42", 12) },
		func() { c.Add(p, "42", -7) },
		func() { c.UpdateQuantity("1", "42", 200) },
	}
	for _, op := range ops {
		op()
		for _, li := range c.Items() {
			assert.GreaterOrEqual(t, li.Quantity, MinQuantity)
			assert.LessOrEqual(t, li.Quantity, MaxQuantity)
		}
	}
}

func TestCart_PersistsOnEveryMutation(t *testing.T) {
	c, st := newTestCart(t)

	c.Add(sneaker("1", 1000), "42", 1)
	c.UpdateQuantity("1", "42", 3)
	c.Remove("1", "42")
	c.Clear()

	assert.Equal(t, 4, st.saves)
}

func TestCart_RehydratesFromStorage(t *testing.T) {
	st := &memStorage{items: []LineItem{
		{ProductID: "1", Size: "42", Name: "Nike Air Max", Price: d(800), Quantity: 2},
	}}

	c := New(st, zap.NewNop())
	assert.Equal(t, 2, c.QuantityOf("1", "42"))
	assert.True(t, c.Subtotal().Equal(d(1600)))
}

func TestCart_CorruptStorageDegradesToEmpty(t *testing.T) {
	st := &memStorage{loadErr: errors.New("decode stored cart: unexpected EOF")}

	c := New(st, zap.NewNop())
	assert.True(t, c.IsEmpty())
}

func TestCart_SaveFailuresAreSwallowed(t *testing.T) {
	st := &memStorage{saveErr: errors.New("disk full")}
	c := New(st, zap.NewNop())

	c.Add(sneaker("1", 1000), "42", 1)

	// In-memory state stays authoritative despite the persistence failure.
	assert.Equal(t, 1, c.QuantityOf("1", "42"))
}

func TestNewLineItem_CopiesOnlyDefinedFields(t *testing.T) {
	p := catalog.Product{
		ID:          "1",
		Brand:       "Nike",
		Model:       "Air Max",
		Category:    "sneakers",
		Description: "should not be carried",
		Price:       d(1000),
	}

	li := NewLineItem(p, "42", 2)
	assert.Equal(t, LineItem{
		ProductID: "1",
		Size:      "42",
		Name:      "Nike Air Max",
		Category:  "sneakers",
		Price:     d(1000),
		Quantity:  2,
	}, li)
}

func TestLineItem_Subtotal(t *testing.T) {
	li := LineItem{Price: d(1000), Quantity: 3}
	assert.True(t, li.Subtotal().Equal(d(3000)))
}
