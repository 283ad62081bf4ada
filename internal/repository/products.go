package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ayush2735/claynest-web-craft/internal/domain"
	"github.com/google/uuid"
)

const productColumns = `id, name, COALESCE(description, ''), category, price, min_order_quantity,
	stock_quantity, COALESCE(image_url, ''), is_featured, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	p := &domain.Product{}
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Category,
		&p.Price,
		&p.MinOrderQuantity,
		&p.StockQuantity,
		&p.ImageURL,
		&p.IsFeatured,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

// ListProducts returns products newest first. An empty category or "all"
// disables the filter.
func (r *Repository) ListProducts(ctx context.Context, category string) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	var args []any
	if category != "" && category != "all" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY created_at DESC`

	return r.queryProducts(ctx, query, args...)
}

func (r *Repository) FeaturedProducts(ctx context.Context, limit int) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
	          WHERE is_featured = $1 ORDER BY created_at DESC LIMIT $2`
	return r.queryProducts(ctx, query, true, limit)
}

func (r *Repository) queryProducts(ctx context.Context, query string, args ...any) ([]*domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return products, nil
}

func (r *Repository) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrProductNotFound
	}
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query product by id: %w", err)
	}
	return p, nil
}

// CreateProduct assigns the id and timestamps of p and inserts it.
func (r *Repository) CreateProduct(ctx context.Context, p *domain.Product) error {
	now := r.now()
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now

	query := `INSERT INTO products (id, name, description, category, price, min_order_quantity,
	          stock_quantity, image_url, is_featured, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		nullString(p.Description),
		p.Category,
		p.Price,
		p.MinOrderQuantity,
		p.StockQuantity,
		nullString(p.ImageURL),
		p.IsFeatured,
		p.CreatedAt,
		p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert product: %w", mapWriteError(err))
	}
	return nil
}

func (r *Repository) UpdateProduct(ctx context.Context, p *domain.Product) error {
	if _, err := uuid.Parse(p.ID); err != nil {
		return ErrProductNotFound
	}
	p.UpdatedAt = r.now()

	query := `UPDATE products SET name = $1, description = $2, category = $3, price = $4,
	          min_order_quantity = $5, stock_quantity = $6, image_url = $7, is_featured = $8, updated_at = $9
	          WHERE id = $10`

	res, err := r.db.ExecContext(ctx, query,
		p.Name,
		nullString(p.Description),
		p.Category,
		p.Price,
		p.MinOrderQuantity,
		p.StockQuantity,
		nullString(p.ImageURL),
		p.IsFeatured,
		p.UpdatedAt,
		p.ID)
	if err != nil {
		return fmt.Errorf("update product: %w", mapWriteError(err))
	}
	return expectOneRow(res, ErrProductNotFound)
}

// DeleteProduct fails with ErrConflict while order items still reference the product.
func (r *Repository) DeleteProduct(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrProductNotFound
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", mapWriteError(err))
	}
	return expectOneRow(res, ErrProductNotFound)
}
