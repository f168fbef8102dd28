package repository

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dukicks/storefront/internal/domain/catalog"
)

const productColumns = `id, brand, model, name, category, description, type,
	price, discount, images, image, sizes, is_new, is_featured, in_stock,
	created_at, updated_at`

const (
	listProductsSQL = `SELECT ` + productColumns + `
		FROM products ORDER BY created_at DESC`

	getProductByIDSQL = `SELECT ` + productColumns + `
		FROM products WHERE id = $1`

	getProductsByCategorySQL = `SELECT ` + productColumns + `
		FROM products WHERE category = $1 ORDER BY created_at DESC`

	// Featured products are capped at four, newest first.
	getFeaturedProductsSQL = `SELECT ` + productColumns + `
		FROM products WHERE is_featured ORDER BY created_at DESC LIMIT 4`

	getNewProductsSQL = `SELECT ` + productColumns + `
		FROM products WHERE is_new ORDER BY created_at DESC`

	createProductSQL = `INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	updateProductSQL = `UPDATE products SET
		brand = $2, model = $3, name = $4, category = $5, description = $6,
		type = $7, price = $8, discount = $9, images = $10, image = $11,
		sizes = $12, is_new = $13, is_featured = $14, in_stock = $15,
		updated_at = $16
		WHERE id = $1`

	deleteProductSQL = `DELETE FROM products WHERE id = $1`
)

var _ catalog.Repository = (*ProductRepository)(nil)

// ProductRepository implements catalog.Repository backed by PostgreSQL.
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a ProductRepository that uses the given pool.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// List returns the whole catalog, newest first.
func (r *ProductRepository) List(ctx context.Context) ([]catalog.Product, error) {
	rows, err := r.pool.Query(ctx, listProductsSQL)
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	return pgx.CollectRows(rows, scanProduct)
}

// GetByID returns a single product by its identifier.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*catalog.Product, error) {
	rows, err := r.pool.Query(ctx, getProductByIDSQL, id)
	if err != nil {
		return nil, errors.Wrapf(err, "get product %q", id)
	}

	p, err := pgx.CollectExactlyOneRow(rows, scanProduct)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrNotFound
		}
		return nil, errors.Wrapf(err, "get product %q", id)
	}
	return &p, nil
}

// GetByCategory returns the products in a category, newest first.
func (r *ProductRepository) GetByCategory(ctx context.Context, category string) ([]catalog.Product, error) {
	rows, err := r.pool.Query(ctx, getProductsByCategorySQL, category)
	if err != nil {
		return nil, errors.Wrapf(err, "get products in category %q", category)
	}
	return pgx.CollectRows(rows, scanProduct)
}

// Featured returns at most four featured products, newest first.
func (r *ProductRepository) Featured(ctx context.Context) ([]catalog.Product, error) {
	rows, err := r.pool.Query(ctx, getFeaturedProductsSQL)
	if err != nil {
		return nil, errors.Wrap(err, "get featured products")
	}
	return pgx.CollectRows(rows, scanProduct)
}

// New returns the products flagged as new arrivals.
func (r *ProductRepository) New(ctx context.Context) ([]catalog.Product, error) {
	rows, err := r.pool.Query(ctx, getNewProductsSQL)
	if err != nil {
		return nil, errors.Wrap(err, "get new products")
	}
	return pgx.CollectRows(rows, scanProduct)
}

// Create inserts a product. A missing ID is generated; timestamps are set to
// now when zero.
func (r *ProductRepository) Create(ctx context.Context, p *catalog.Product) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	_, err := r.pool.Exec(ctx, createProductSQL,
		p.ID, p.Brand, p.Model, p.Name, p.Category, p.Description, p.Type,
		p.Price, p.Discount, p.Images, p.Image, p.Sizes,
		p.IsNew, p.IsFeatured, p.InStock, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return errors.Wrapf(err, "create product %q", p.ID)
	}
	return nil
}

// Update replaces all mutable fields of an existing product.
func (r *ProductRepository) Update(ctx context.Context, p *catalog.Product) error {
	p.UpdatedAt = time.Now().UTC()

	tag, err := r.pool.Exec(ctx, updateProductSQL,
		p.ID, p.Brand, p.Model, p.Name, p.Category, p.Description, p.Type,
		p.Price, p.Discount, p.Images, p.Image, p.Sizes,
		p.IsNew, p.IsFeatured, p.InStock, p.UpdatedAt,
	)
	if err != nil {
		return errors.Wrapf(err, "update product %q", p.ID)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

// Delete removes a product by ID.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, deleteProductSQL, id)
	if err != nil {
		return errors.Wrapf(err, "delete product %q", id)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.CollectableRow) (catalog.Product, error) {
	var p catalog.Product
	err := row.Scan(
		&p.ID, &p.Brand, &p.Model, &p.Name, &p.Category, &p.Description, &p.Type,
		&p.Price, &p.Discount, &p.Images, &p.Image, &p.Sizes,
		&p.IsNew, &p.IsFeatured, &p.InStock, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}
