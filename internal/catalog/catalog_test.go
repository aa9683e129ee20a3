package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KennelyRay/E-Commerce-Website-sub000/internal/domain"
	"github.com/KennelyRay/E-Commerce-Website-sub000/internal/store"
)

func sample() []domain.Product {
	return []domain.Product{
		{ID: "p1", Name: "Zen CPU", Description: "eight cores", Category: "CPU", Price: 300, Rating: 4.5, Featured: true, Tags: []string{"amd", "gaming"}},
		{ID: "p2", Name: "Arc GPU", Description: "ray tracing", Category: "GPU", Price: 600, Rating: 4.8, Tags: []string{"intel"}},
		{ID: "p3", Name: "Budget CPU", Description: "four cores", Category: "CPU", Price: 120, Rating: 3.9, Tags: []string{"value"}},
		{ID: "p4", Name: "Quiet Case", Description: "sound dampened", Category: "Case", Price: 120, Rating: 4.2, Featured: true},
	}
}

func ids(products []domain.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestApply_ZeroQuerySortsByName(t *testing.T) {
	got := Apply(sample(), Query{})
	assert.Equal(t, []string{"p2", "p3", "p4", "p1"}, ids(got))
}

func TestApply_FilterByCategory(t *testing.T) {
	got := Apply(sample(), Query{Category: "CPU"})
	assert.Equal(t, []string{"p3", "p1"}, ids(got))

	got = Apply(sample(), Query{Category: "cpu"})
	assert.Empty(t, got, "category match is exact")
}

func TestApply_FeaturedOnly(t *testing.T) {
	got := Apply(sample(), Query{FeaturedOnly: true})
	assert.Equal(t, []string{"p4", "p1"}, ids(got))
}

func TestApply_TermMatchesNameDescriptionTags(t *testing.T) {
	assert.Equal(t, []string{"p1"}, ids(Apply(sample(), Query{Term: "ZEN"})), "name match is case-insensitive")
	assert.Equal(t, []string{"p2"}, ids(Apply(sample(), Query{Term: "ray trac"})), "description substring")
	assert.Equal(t, []string{"p1"}, ids(Apply(sample(), Query{Term: "gaming"})), "tag substring")
	assert.Empty(t, Apply(sample(), Query{Term: "nonexistent"}))
}

func TestApply_CombinedFilters(t *testing.T) {
	got := Apply(sample(), Query{Term: "cpu", Category: "CPU", FeaturedOnly: true})
	assert.Equal(t, []string{"p1"}, ids(got))
}

func TestApply_SortPrice(t *testing.T) {
	asc := Apply(sample(), Query{Sort: SortPriceAsc})
	assert.Equal(t, []string{"p3", "p4", "p1", "p2"}, ids(asc),
		"equal prices keep name order")

	desc := Apply(sample(), Query{Sort: SortPriceDesc})
	assert.Equal(t, []string{"p2", "p1", "p3", "p4"}, ids(desc))
}

func TestApply_SortRating(t *testing.T) {
	got := Apply(sample(), Query{Sort: SortRating})
	assert.Equal(t, []string{"p2", "p1", "p4", "p3"}, ids(got))
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	in := sample()
	_ = Apply(in, Query{Sort: SortPriceDesc})
	assert.Equal(t, "p1", in[0].ID)
}

func TestCategories(t *testing.T) {
	got := Categories(sample())
	assert.Equal(t, []string{"Case", "CPU", "GPU"}, got)
}

func TestCategories_SkipsEmpty(t *testing.T) {
	got := Categories([]domain.Product{{ID: "x", Name: "X"}})
	assert.Empty(t, got)
}

func TestLoad_EmptyStoreFallsBackToBundled(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	defer st.Close()

	got := Load(context.Background(), st)
	assert.NotEmpty(t, got, "an empty store must still yield the bundled dataset")
}

func TestLoad_SeededStoreWins(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	defer st.Close()

	only := domain.Product{ID: "solo", Name: "Solo", Price: 1, Stock: 1}
	require.NoError(t, st.UpsertProduct(context.Background(), only))

	got := Load(context.Background(), st)
	require.Len(t, got, 1)
	assert.Equal(t, "solo", got[0].ID)
}

func TestLoad_ClosedStoreFallsBackToBundled(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	require.NoError(t, st.Close())

	got := Load(context.Background(), st)
	assert.NotEmpty(t, got)
}
