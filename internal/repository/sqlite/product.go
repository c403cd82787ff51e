package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/HerosSMP/Heros-shop.de/internal/apperror"
	"github.com/HerosSMP/Heros-shop.de/internal/model"
	"github.com/HerosSMP/Heros-shop.de/internal/repository"
)

// COMPILE-TIME INTERFACE CHECK:
// `var _ X = (*Y)(nil)` assigns a nil *Y to a variable of interface type X.
// If *Y doesn't implement X, the compiler errors immediately instead of at
// the first call site that passes the repo somewhere expecting the interface.
var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo stores products. It shares the connection pool owned by DB.
type ProductRepo struct {
	conn *sql.DB
}

// Create inserts a new product.
//
// ID GENERATION WITH xid:
// xid IDs are 20 URL-safe characters that start with a timestamp, so they
// sort by creation time — a unique token derived from the current clock.
// The caller's struct is modified in place with the generated ID and
// CreatedAt.
func (r *ProductRepo) Create(ctx context.Context, product *model.Product) error {
	product.ID = xid.New().String()
	product.CreatedAt = time.Now()

	// The ? placeholders are filled in order by the driver, which handles
	// escaping. Never build SQL with string concatenation.
	_, err := r.conn.ExecContext(ctx,
		`INSERT INTO products (id, title, description, price, image, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		product.ID,
		product.Title,
		product.Description,
		product.Price,
		product.Image,
		product.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating product: %w", err)
	}

	return nil
}

// GetByID retrieves a single product by its ID.
// Returns apperror.ErrNotFound if no product exists with that ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*model.Product, error) {
	var p model.Product

	err := r.conn.QueryRowContext(ctx,
		`SELECT id, title, description, price, image, created_at
		 FROM products
		 WHERE id = ?`,
		id,
	).Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Price,
		&p.Image,
		&p.CreatedAt,
	)
	if err != nil {
		// sql.ErrNoRows just means "no matching row" — translate it to our
		// domain error so the handler can return 404.
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("product", id)
		}
		return nil, fmt.Errorf("sqlite: getting product %s: %w", id, err)
	}

	return &p, nil
}

// List returns all products in insertion order. The catalog is small (a
// handful of ranks and kits), so there is no pagination.
func (r *ProductRepo) List(ctx context.Context) ([]model.Product, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT id, title, description, price, image, created_at
		 FROM products
		 ORDER BY created_at ASC, id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing products: %w", err)
	}
	// sql.Rows holds a pool connection — always close it.
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Description, &p.Price, &p.Image, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning product row: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating products: %w", err)
	}

	return products, nil
}

// Update replaces a product's mutable fields wholesale. ID and created_at
// are immutable once assigned.
//
// RowsAffected() tells us whether the WHERE clause matched — 0 rows means
// the product doesn't exist, which is cheaper than SELECT-then-UPDATE.
func (r *ProductRepo) Update(ctx context.Context, product *model.Product) error {
	result, err := r.conn.ExecContext(ctx,
		`UPDATE products
		 SET title = ?, description = ?, price = ?, image = ?
		 WHERE id = ?`,
		product.Title,
		product.Description,
		product.Price,
		product.Image,
		product.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating product %s: %w", product.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("product", product.ID)
	}

	return nil
}

// Delete removes a product by its ID.
// Same pattern as Update — check RowsAffected to detect "not found".
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	result, err := r.conn.ExecContext(ctx,
		`DELETE FROM products WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting product %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("product", id)
	}

	return nil
}
