package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KennelyRay/E-Commerce-Website-sub000/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testProduct(id, name string) domain.Product {
	return domain.Product{
		ID:          id,
		Name:        name,
		Description: "test product",
		Price:       99.99,
		Category:    "GPU",
		Stock:       5,
		Rating:      4.5,
		Reviews:     10,
		Tags:        []string{"test", "gpu"},
		Specifications: map[string]string{
			"Memory": "8GB",
		},
	}
}

func TestUpsertProduct_InsertAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p := testProduct("p1", "Test GPU")
	require.NoError(t, s.UpsertProduct(ctx, p))

	got, err := s.GetProduct(ctx, "p1")
	require.NoError(t, err)

	assert.Equal(t, "Test GPU", got.Name)
	assert.Equal(t, 99.99, got.Price)
	assert.Equal(t, []string{"test", "gpu"}, got.Tags)
	assert.Equal(t, map[string]string{"Memory": "8GB"}, got.Specifications)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestUpsertProduct_ReplaceOnConflict(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertProduct(ctx, testProduct("p1", "Before")))

	first, err := s.GetProduct(ctx, "p1")
	require.NoError(t, err)

	updated := testProduct("p1", "After")
	updated.Price = 149.99
	updated.CreatedAt = first.CreatedAt
	require.NoError(t, s.UpsertProduct(ctx, updated))

	got, err := s.GetProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "After", got.Name)
	assert.Equal(t, 149.99, got.Price)

	count, err := s.CountProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "upsert must not create a second row")
}

func TestGetProduct_NotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetProduct(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestListProducts_OrderedByName(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertProduct(ctx, testProduct("p1", "Zeta Card")))
	require.NoError(t, s.UpsertProduct(ctx, testProduct("p2", "Alpha Card")))
	require.NoError(t, s.UpsertProduct(ctx, testProduct("p3", "Mid Card")))

	products, err := s.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)

	assert.Equal(t, "Alpha Card", products[0].Name)
	assert.Equal(t, "Mid Card", products[1].Name)
	assert.Equal(t, "Zeta Card", products[2].Name)
}

func TestListProducts_EmptyIsNotNil(t *testing.T) {
	s := openTestStore(t)

	products, err := s.ListProducts(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestDeleteProduct(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertProduct(ctx, testProduct("p1", "Doomed")))
	require.NoError(t, s.DeleteProduct(ctx, "p1"))

	_, err := s.GetProduct(ctx, "p1")
	assert.True(t, errors.Is(err, ErrNotFound))

	err = s.DeleteProduct(ctx, "p1")
	assert.True(t, errors.Is(err, ErrNotFound), "second delete must report not found")
}

func TestSearchProducts(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	gpu := testProduct("p1", "RTX Card")
	gpu.Description = "ray tracing powerhouse"
	cpu := testProduct("p2", "Ryzen Chip")
	cpu.Category = "CPU"
	cpu.Tags = []string{"zen4"}
	require.NoError(t, s.UpsertProduct(ctx, gpu))
	require.NoError(t, s.UpsertProduct(ctx, cpu))

	t.Run("matches name", func(t *testing.T) {
		got, err := s.SearchProducts(ctx, "rtx", "")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "p1", got[0].ID)
	})

	t.Run("matches description", func(t *testing.T) {
		got, err := s.SearchProducts(ctx, "powerhouse", "")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "p1", got[0].ID)
	})

	t.Run("matches tags", func(t *testing.T) {
		got, err := s.SearchProducts(ctx, "zen4", "")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "p2", got[0].ID)
	})

	t.Run("category filter", func(t *testing.T) {
		got, err := s.SearchProducts(ctx, "c", "CPU")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "p2", got[0].ID)
	})

	t.Run("no match", func(t *testing.T) {
		got, err := s.SearchProducts(ctx, "nonexistent", "")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestUsers_CRUD(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	u := domain.User{
		ID:           "u1",
		Name:         "Test User",
		Username:     "tester",
		Email:        "tester@example.com",
		PasswordHash: "notahash",
	}
	require.NoError(t, s.InsertUser(ctx, u))

	byName, err := s.GetUserByUsername(ctx, "tester")
	require.NoError(t, err)
	assert.Equal(t, "u1", byName.ID)

	byEmail, err := s.GetUserByEmail(ctx, "tester@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", byEmail.ID)

	// UNIQUE username enforced
	dup := u
	dup.ID = "u2"
	dup.Email = "other@example.com"
	assert.Error(t, s.InsertUser(ctx, dup))

	require.NoError(t, s.SetUserBanned(ctx, "u1", true))
	banned, err := s.GetUserByUsername(ctx, "tester")
	require.NoError(t, err)
	assert.True(t, banned.IsBanned)

	// Full-row replace
	u.Name = "Renamed User"
	u.Email = "renamed@example.com"
	require.NoError(t, s.UpdateUser(ctx, u))
	renamed, err := s.GetUserByEmail(ctx, "renamed@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Renamed User", renamed.Name)

	all, err := s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestOrders_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	order := domain.Order{
		ID:     "o1",
		UserID: "u1",
		Items: []domain.CartItem{
			{ID: "l1", Product: testProduct("p1", "Card"), Quantity: 2},
		},
		Total: 199.98,
	}
	require.NoError(t, s.InsertOrder(ctx, order))

	orders, err := s.ListOrdersByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "o1", orders[0].ID)
	assert.Equal(t, 199.98, orders[0].Total)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, 2, orders[0].Items[0].Quantity)
}
