package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/KennelyRay/E-Commerce-Website-sub000/internal/domain"
)

// InsertOrder records a completed checkout. Line items are stored as a
// JSON column; orders are append-only.
func (s *Store) InsertOrder(ctx context.Context, o domain.Order) error {
	if s.db == nil {
		return ErrClosed
	}

	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}

	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("insert order: marshal items: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO orders (id, user_id, items, total, created_at)
		VALUES (?, ?, ?, ?, ?)
	`,
		o.ID, o.UserID, string(items), o.Total,
		o.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// ListOrdersByUser returns a user's orders, newest first.
func (s *Store) ListOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	if s.db == nil {
		return nil, ErrClosed
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, items, total, created_at
		FROM orders
		WHERE user_id = ?
		ORDER BY created_at DESC, id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var (
			o         domain.Order
			items     string
			createdAt string
		)
		if err := rows.Scan(&o.ID, &o.UserID, &items, &o.Total, &createdAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		if err := json.Unmarshal([]byte(items), &o.Items); err != nil {
			return nil, fmt.Errorf("order %s items: %w", o.ID, err)
		}
		if o.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("order %s created_at: %w", o.ID, err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}
