// Package catalog holds the product model and the pure list operations the
// storefront applies to it: relevance ranking, sorting, and filtering.
package catalog

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// Product represents a catalog item available for purchase. Price is the base
// price before any discount; Discount is an integer percentage in 0..100.
type Product struct {
	ID          string
	Brand       string
	Model       string
	Name        string
	Category    string
	Description string
	Type        string
	Price       decimal.Decimal
	Discount    int
	Images      []string
	Image       string
	Sizes       []string
	IsNew       bool
	IsFeatured  bool
	InStock     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DisplayName returns "Brand Model" when both are present, falling back to
// the Name field otherwise. Every surface that shows a product label must go
// through this resolver rather than inlining the fallback.
func (p Product) DisplayName() string {
	if p.Brand != "" && p.Model != "" {
		return p.Brand + " " + p.Model
	}
	return p.Name
}

// DisplayImage returns the first gallery image if the gallery is non-empty,
// then the single Image field, then the empty string.
func (p Product) DisplayImage() string {
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return p.Image
}

// DisplayImages returns the full gallery, or a single-element slice built
// from the Image field, or nil when the product has no imagery at all.
func (p Product) DisplayImages() []string {
	if len(p.Images) > 0 {
		return p.Images
	}
	if p.Image != "" {
		return []string{p.Image}
	}
	return nil
}

// DisplayImageOr resolves the display image, substituting fallback when the
// product has none.
func DisplayImageOr(p Product, fallback string) string {
	if img := p.DisplayImage(); img != "" {
		return img
	}
	return fallback
}

// Repository defines catalog persistence. Read methods return products in
// newest-first order; Featured returns at most four products.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	GetByCategory(ctx context.Context, category string) ([]Product, error)
	Featured(ctx context.Context) ([]Product, error)
	New(ctx context.Context) ([]Product, error)

	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) error
}
