package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/KennelyRay/E-Commerce-Website-sub000/internal/domain"
	"github.com/KennelyRay/E-Commerce-Website-sub000/internal/schema"
)

//go:embed seed_products.yaml
var seedProductsYAML []byte

const seededKey = "seeded"

// SeedProducts parses and validates the bundled starter catalog.
func SeedProducts() ([]domain.Product, error) {
	var products []domain.Product
	if err := yaml.Unmarshal(seedProductsYAML, &products); err != nil {
		return nil, fmt.Errorf("parse seed dataset: %w", err)
	}

	validator, err := schema.NewValidator()
	if err != nil {
		return nil, fmt.Errorf("seed dataset: %w", err)
	}
	for _, p := range products {
		if err := validator.ValidateProduct(p); err != nil {
			return nil, fmt.Errorf("seed dataset: %w", err)
		}
	}

	return products, nil
}

// Seed bulk-inserts the bundled catalog and the Administrator user.
// A marker row makes the operation idempotent: once seeding has
// completed, repeated calls are no-ops even if the catalog has since
// been edited down to zero products.
func (s *Store) Seed(ctx context.Context) error {
	const op = "Store.Seed"
	log := slog.With("op", op)

	if s.db == nil {
		return ErrClosed
	}

	var marker string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM meta WHERE key = ?`, seededKey).Scan(&marker)
	if err == nil {
		log.Debug("already seeded, skipping")
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: read marker: %w", op, err)
	}

	products, err := SeedProducts()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin tx: %w", op, err)
	}
	defer tx.Rollback() // No-op if committed

	now := time.Now().UTC().Format(time.RFC3339Nano)
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("%s: prepare: %w", op, err)
	}
	defer stmt.Close()

	for _, p := range products {
		images, err := marshalStrings(p.Images)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		tags, err := marshalStrings(p.Tags)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		specs, err := marshalStringMap(p.Specifications)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		_, err = stmt.ExecContext(ctx,
			p.ID, p.Name, p.Description, p.Price, p.OriginalPrice, p.Image,
			images, p.Category, p.Stock, p.Rating, p.Reviews, p.Featured,
			tags, specs, now, now,
		)
		if err != nil {
			return fmt.Errorf("%s: insert %s: %w", op, p.ID, err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(domain.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("%s: hash admin password: %w", op, err)
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, 1, 0, ?, ?)
		ON CONFLICT(username) DO NOTHING
	`, uuid.NewString(), domain.AdminName, domain.AdminUsername,
		domain.AdminEmail, string(hash), now, now)
	if err != nil {
		return fmt.Errorf("%s: insert admin: %w", op, err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO meta (key, value) VALUES (?, ?)`, seededKey, now)
	if err != nil {
		return fmt.Errorf("%s: set marker: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}

	log.Info("seeded catalog", "products", len(products))
	return nil
}
