// Package domain holds the core storefront types shared by the store,
// session state, and CLI layers. Types are plain structs with no
// behavior beyond small derived accessors.
package domain

import "time"

type (
	// Product is one catalog entry. Price and Stock are always present;
	// every other field may be zero-valued.
	Product struct {
		ID             string            `json:"id" yaml:"id"`
		Name           string            `json:"name" yaml:"name"`
		Description    string            `json:"description" yaml:"description"`
		Price          float64           `json:"price" yaml:"price"`
		OriginalPrice  *float64          `json:"originalPrice,omitempty" yaml:"originalPrice,omitempty"`
		Image          string            `json:"image" yaml:"image"`
		Images         []string          `json:"images,omitempty" yaml:"images,omitempty"`
		Category       string            `json:"category" yaml:"category"`
		Stock          int               `json:"stock" yaml:"stock"`
		Rating         float64           `json:"rating" yaml:"rating"`
		Reviews        int               `json:"reviews" yaml:"reviews"`
		Featured       bool              `json:"featured" yaml:"featured"`
		Tags           []string          `json:"tags,omitempty" yaml:"tags,omitempty"`
		Specifications map[string]string `json:"specifications,omitempty" yaml:"specifications,omitempty"`
		CreatedAt      time.Time         `json:"createdAt" yaml:"-"`
		UpdatedAt      time.Time         `json:"updatedAt" yaml:"-"`
	}

	// User is one registered account. PasswordHash is a bcrypt digest,
	// never the plaintext password.
	User struct {
		ID           string    `json:"id"`
		Name         string    `json:"name"`
		Username     string    `json:"username"`
		Email        string    `json:"email"`
		PasswordHash string    `json:"passwordHash"`
		IsAdmin      bool      `json:"isAdmin"`
		IsBanned     bool      `json:"isBanned"`
		CreatedAt    time.Time `json:"createdAt"`
		UpdatedAt    time.Time `json:"updatedAt"`
	}

	// Credential is the login record mirrored to the key/value substrate.
	// It is looked up by exact username match.
	Credential struct {
		Username     string `json:"username"`
		Email        string `json:"email"`
		PasswordHash string `json:"passwordHash"`
	}

	// CartItem pairs a full product snapshot taken at add-time with a
	// quantity. Quantity is always >= 1; a line reduced to zero is removed
	// rather than kept.
	CartItem struct {
		ID       string  `json:"id"`
		Product  Product `json:"product"`
		Quantity int     `json:"quantity"`
	}

	// Order is a completed checkout.
	Order struct {
		ID        string     `json:"id"`
		UserID    string     `json:"userId"`
		Items     []CartItem `json:"items"`
		Total     float64    `json:"total"`
		CreatedAt time.Time  `json:"createdAt"`
	}
)

// Subtotal returns price times quantity for one line.
func (i CartItem) Subtotal() float64 {
	return i.Product.Price * float64(i.Quantity)
}
