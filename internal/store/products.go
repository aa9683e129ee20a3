package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/KennelyRay/E-Commerce-Website-sub000/internal/domain"
)

const productColumns = `id, name, description, price, original_price, image,
	images, category, stock, rating, reviews, featured, tags,
	specifications, created_at, updated_at`

// ListProducts returns every product ordered by name.
// Ordering is deterministic: ORDER BY name ASC, id ASC.
//
// Returns an empty slice (not nil) when the catalog is empty.
func (s *Store) ListProducts(ctx context.Context) ([]domain.Product, error) {
	if s.db == nil {
		return nil, ErrClosed
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		ORDER BY name ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

// GetProduct returns one product by id, or ErrNotFound.
func (s *Store) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if s.db == nil {
		return domain.Product{}, ErrClosed
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = ?
	`, id)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, fmt.Errorf("get product %s: %w", id, ErrNotFound)
		}
		return domain.Product{}, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// UpsertProduct inserts or fully replaces a product row keyed by id.
// CreatedAt is preserved on replace; UpdatedAt is always refreshed.
func (s *Store) UpsertProduct(ctx context.Context, p domain.Product) error {
	if s.db == nil {
		return ErrClosed
	}

	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	images, err := marshalStrings(p.Images)
	if err != nil {
		return fmt.Errorf("upsert product: %w", err)
	}
	tags, err := marshalStrings(p.Tags)
	if err != nil {
		return fmt.Errorf("upsert product: %w", err)
	}
	specs, err := marshalStringMap(p.Specifications)
	if err != nil {
		return fmt.Errorf("upsert product: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			price = excluded.price,
			original_price = excluded.original_price,
			image = excluded.image,
			images = excluded.images,
			category = excluded.category,
			stock = excluded.stock,
			rating = excluded.rating,
			reviews = excluded.reviews,
			featured = excluded.featured,
			tags = excluded.tags,
			specifications = excluded.specifications,
			updated_at = excluded.updated_at
	`,
		p.ID, p.Name, p.Description, p.Price, p.OriginalPrice, p.Image,
		images, p.Category, p.Stock, p.Rating, p.Reviews, p.Featured,
		tags, specs,
		p.CreatedAt.Format(time.RFC3339Nano),
		p.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert product: %w", err)
	}

	return nil
}

// DeleteProduct removes one product row. Returns ErrNotFound when no row
// has the given id.
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	if s.db == nil {
		return ErrClosed
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("delete product %s: %w", id, ErrNotFound)
	}
	return nil
}

// SearchProducts returns products whose name, description, or raw tags
// JSON contains term (case-insensitive for ASCII, per SQLite LIKE), with
// an optional exact-match category filter. No relevance ranking;
// ordering matches ListProducts.
func (s *Store) SearchProducts(ctx context.Context, term, category string) ([]domain.Product, error) {
	if s.db == nil {
		return nil, ErrClosed
	}

	pattern := "%" + term + "%"
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE (name LIKE ? OR description LIKE ? OR tags LIKE ?)
	`
	args := []any{pattern, pattern, pattern}
	if category != "" {
		query += ` AND category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY name ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

// CountProducts returns the number of products in the catalog.
func (s *Store) CountProducts(ctx context.Context) (int, error) {
	if s.db == nil {
		return 0, ErrClosed
	}

	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var (
		p                    domain.Product
		images, tags, specs  string
		createdAt, updatedAt string
		originalPrice        sql.NullFloat64
	)

	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &originalPrice, &p.Image,
		&images, &p.Category, &p.Stock, &p.Rating, &p.Reviews, &p.Featured,
		&tags, &specs, &createdAt, &updatedAt,
	)
	if err != nil {
		return domain.Product{}, err
	}

	if originalPrice.Valid {
		v := originalPrice.Float64
		p.OriginalPrice = &v
	}
	if p.Images, err = unmarshalStrings(images); err != nil {
		return domain.Product{}, fmt.Errorf("product %s images: %w", p.ID, err)
	}
	if p.Tags, err = unmarshalStrings(tags); err != nil {
		return domain.Product{}, fmt.Errorf("product %s tags: %w", p.ID, err)
	}
	if p.Specifications, err = unmarshalStringMap(specs); err != nil {
		return domain.Product{}, fmt.Errorf("product %s specifications: %w", p.ID, err)
	}
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.Product{}, fmt.Errorf("product %s created_at: %w", p.ID, err)
	}
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return domain.Product{}, fmt.Errorf("product %s updated_at: %w", p.ID, err)
	}

	return p, nil
}

func collectProducts(rows *sql.Rows) ([]domain.Product, error) {
	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}
