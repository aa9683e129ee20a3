// Package cart holds the shopping cart session state: an ordered list
// of line items mutated only through pure transitions, mirrored to the
// key/value substrate after every change.
package cart

import (
	"github.com/KennelyRay/E-Commerce-Website-sub000/internal/domain"
)

// Every transition is a pure function from (items, inputs) to a new
// list; callers never observe a partially applied mutation.

// add merges quantity into an existing line for the same product id, or
// appends a new line. Snapshot semantics: the stored product is the one
// passed at add-time, not a reference into the catalog.
func add(items []domain.CartItem, line domain.CartItem) []domain.CartItem {
	for i, item := range items {
		if item.Product.ID == line.Product.ID {
			next := make([]domain.CartItem, len(items))
			copy(next, items)
			next[i].Quantity += line.Quantity
			return next
		}
	}

	next := make([]domain.CartItem, len(items)+1)
	copy(next, items)
	next[len(items)] = line
	return next
}

// remove drops the line for the given product id, if present.
func remove(items []domain.CartItem, productID string) []domain.CartItem {
	next := make([]domain.CartItem, 0, len(items))
	for _, item := range items {
		if item.Product.ID != productID {
			next = append(next, item)
		}
	}
	return next
}

// setQuantity replaces a line's quantity; a quantity <= 0 removes the
// line entirely, so no line ever survives with quantity below 1.
func setQuantity(items []domain.CartItem, productID string, quantity int) []domain.CartItem {
	if quantity <= 0 {
		return remove(items, productID)
	}

	next := make([]domain.CartItem, len(items))
	copy(next, items)
	for i := range next {
		if next[i].Product.ID == productID {
			next[i].Quantity = quantity
		}
	}
	return next
}

// count sums quantities over all lines.
func count(items []domain.CartItem) int {
	var n int
	for _, item := range items {
		n += item.Quantity
	}
	return n
}

// total sums price times quantity over all lines.
func total(items []domain.CartItem) float64 {
	var sum float64
	for _, item := range items {
		sum += item.Subtotal()
	}
	return sum
}
