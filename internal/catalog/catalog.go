// Package catalog derives the visible product list: filtering, search,
// and sorting over the relational store's rows, falling back to the
// bundled dataset when the store has nothing to offer.
package catalog

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/KennelyRay/E-Commerce-Website-sub000/internal/domain"
	"github.com/KennelyRay/E-Commerce-Website-sub000/internal/store"
)

// Sort selects the ordering of a derived listing.
type Sort string

const (
	SortName      Sort = "name"
	SortPriceAsc  Sort = "price-asc"
	SortPriceDesc Sort = "price-desc"
	SortRating    Sort = "rating"
)

// Query is one derivation request. Zero value means "everything, by
// name".
type Query struct {
	Term         string // substring match on name, description, tags
	Category     string // exact match when non-empty
	FeaturedOnly bool
	Sort         Sort
}

// Load returns the catalog rows, falling back to the bundled dataset
// when the store is unreachable or empty. Failures on this path are
// absorbed: browsing always has something to show.
func Load(ctx context.Context, st *store.Store) []domain.Product {
	products, err := st.ListProducts(ctx)
	if err != nil {
		slog.Warn("catalog store unavailable, using bundled dataset", "err", err)
		return bundled()
	}
	if len(products) == 0 {
		return bundled()
	}
	return products
}

func bundled() []domain.Product {
	products, err := store.SeedProducts()
	if err != nil {
		// The bundled dataset is compiled in; failing to parse it is a
		// build defect, not a runtime condition worth surviving.
		panic(err)
	}
	return products
}

// Apply derives a filtered, sorted view. Pure: the input slice is never
// mutated.
func Apply(products []domain.Product, q Query) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	term := strings.ToLower(q.Term)

	for _, p := range products {
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		if q.FeaturedOnly && !p.Featured {
			continue
		}
		if term != "" && !matches(p, term) {
			continue
		}
		out = append(out, p)
	}

	sortProducts(out, q.Sort)
	return out
}

// Categories returns the distinct category labels in listing order.
func Categories(products []domain.Product) []string {
	seen := make(map[string]bool)
	var categories []string
	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		categories = append(categories, p.Category)
	}

	c := collate.New(language.English)
	sort.Slice(categories, func(i, j int) bool {
		return c.CompareString(categories[i], categories[j]) < 0
	})
	return categories
}

func matches(p domain.Product, term string) bool {
	if strings.Contains(strings.ToLower(p.Name), term) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), term) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

func sortProducts(products []domain.Product, by Sort) {
	c := collate.New(language.English)

	// Name order is the base. Price and rating sorts are stable over it,
	// so records with equal keys keep a deterministic relative order.
	sort.Slice(products, func(i, j int) bool {
		if cmp := c.CompareString(products[i].Name, products[j].Name); cmp != 0 {
			return cmp < 0
		}
		return products[i].ID < products[j].ID
	})

	switch by {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case SortRating:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	}
}
