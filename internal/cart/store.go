package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/KennelyRay/E-Commerce-Website-sub000/internal/domain"
	"github.com/KennelyRay/E-Commerce-Website-sub000/internal/kv"
)

// DefaultCheckoutDelay simulates payment processing; there is no real
// gateway behind checkout.
const DefaultCheckoutDelay = 2 * time.Second

// ErrEmptyCart is returned by Checkout when there is nothing to buy.
var ErrEmptyCart = errors.New("cart is empty")

// OrderSink receives completed checkouts. Satisfied by *store.Store.
type OrderSink interface {
	InsertOrder(ctx context.Context, o domain.Order) error
}

// Store is the cart session state. It loads the mirrored list from the
// substrate once at construction and writes the full list back after
// every transition. Not safe for concurrent use; the storefront drives
// it from a single goroutine.
type Store struct {
	kv            *kv.Store
	orders        OrderSink
	items         []domain.CartItem
	checkoutDelay time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithOrderSink attaches a destination for completed checkouts.
func WithOrderSink(sink OrderSink) Option {
	return func(s *Store) { s.orders = sink }
}

// WithCheckoutDelay overrides the simulated payment delay.
func WithCheckoutDelay(d time.Duration) Option {
	return func(s *Store) { s.checkoutDelay = d }
}

// NewStore loads the mirrored cart from the substrate. A missing or
// unparseable value is non-fatal: the cart starts empty and a warning is
// logged for the unparseable case.
func NewStore(kvs *kv.Store, opts ...Option) *Store {
	s := &Store{kv: kvs, checkoutDelay: DefaultCheckoutDelay}
	for _, opt := range opts {
		opt(s)
	}

	var items []domain.CartItem
	err := kvs.GetJSON(kv.KeyCart, &items)
	switch {
	case err == nil:
		s.items = items
	case errors.Is(err, kv.ErrNoKey):
		// First run, nothing mirrored yet.
	default:
		slog.Warn("discarding unreadable cart state", "err", err)
	}

	return s
}

// Items returns a copy of the current line items in order.
func (s *Store) Items() []domain.CartItem {
	items := make([]domain.CartItem, len(s.items))
	copy(items, s.items)
	return items
}

// Count returns the total item count (sum of quantities).
func (s *Store) Count() int { return count(s.items) }

// Total returns the total price (sum of price times quantity).
func (s *Store) Total() float64 { return total(s.items) }

// Add merges the product into an existing line or appends a new one.
// Quantity must be >= 1.
func (s *Store) Add(p domain.Product, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("add to cart: quantity %d is below 1", quantity)
	}
	line := domain.CartItem{ID: uuid.NewString(), Product: p, Quantity: quantity}
	return s.transition(add(s.items, line))
}

// Remove drops the line for the given product id.
func (s *Store) Remove(productID string) error {
	return s.transition(remove(s.items, productID))
}

// SetQuantity replaces a line's quantity; <= 0 removes the line.
func (s *Store) SetQuantity(productID string, quantity int) error {
	return s.transition(setQuantity(s.items, productID, quantity))
}

// Clear empties the cart.
func (s *Store) Clear() error {
	return s.transition([]domain.CartItem{})
}

// Checkout simulates payment processing, records the order when an
// order sink is attached, and clears the cart. The in-memory cart is
// untouched if the context is cancelled or the order write fails.
func (s *Store) Checkout(ctx context.Context, user domain.User) (domain.Order, error) {
	const op = "cart.Checkout"

	if len(s.items) == 0 {
		return domain.Order{}, fmt.Errorf("%s: %w", op, ErrEmptyCart)
	}

	timer := time.NewTimer(s.checkoutDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return domain.Order{}, fmt.Errorf("%s: %w", op, ctx.Err())
	case <-timer.C:
	}

	order := domain.Order{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Items:     s.Items(),
		Total:     s.Total(),
		CreatedAt: time.Now().UTC(),
	}

	if s.orders != nil {
		if err := s.orders.InsertOrder(ctx, order); err != nil {
			return domain.Order{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := s.Clear(); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	slog.Info("checkout complete", "op", op, "order", order.ID, "total", order.Total)
	return order, nil
}

// transition installs the new list and mirrors it to the substrate.
func (s *Store) transition(next []domain.CartItem) error {
	if err := s.kv.PutJSON(kv.KeyCart, next); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	s.items = next
	return nil
}
