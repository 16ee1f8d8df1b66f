package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func sampleProducts() []Product {
	return []Product{
		{ID: "1", Title: "Red Shoe", Keywords: []string{"shoes", "red"}, AffiliateURL: "http://x/1"},
		{ID: "2", Title: "Blue Mug", Keywords: []string{"Kitchen"}, CustomTags: []string{"gift"}, AffiliateURL: "http://x/2"},
		{ID: "3", Title: "Running Sneaker", CustomTags: []string{"Shoes", "sport"}, AffiliateURL: "http://x/3"},
		{ID: "4", Title: "Mystery Box", AffiliateURL: "http://x/4"},
	}
}

func TestFilterEmptyTermAllReturnsEverythingInOrder(t *testing.T) {
	t.Parallel()

	products := sampleProducts()
	got := Filter(products, "", AllCategories)
	if diff := cmp.Diff(products, got); diff != "" {
		t.Fatalf("filter changed the product list (-want +got):\n%s", diff)
	}

	got = Filter(products, "   ", AllCategories)
	require.Len(t, got, len(products))
}

func TestFilterIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	products := sampleProducts()
	upper := Filter(products, "SHOES", AllCategories)
	lower := Filter(products, "shoes", AllCategories)
	if diff := cmp.Diff(lower, upper); diff != "" {
		t.Fatalf("case changed the result (-lower +upper):\n%s", diff)
	}
	require.Len(t, lower, 2)
	require.Equal(t, "1", lower[0].ID)
	require.Equal(t, "3", lower[1].ID)
}

func TestFilterMatchesTitleOrKeywords(t *testing.T) {
	t.Parallel()

	products := sampleProducts()

	got := Filter(products, "mug", AllCategories)
	require.Len(t, got, 1)
	require.Equal(t, "2", got[0].ID)

	got = Filter(products, "gift", AllCategories)
	require.Len(t, got, 1)
	require.Equal(t, "2", got[0].ID)

	// Keywords are comma joined, so a term spanning two keywords still matches.
	got = Filter(products, "gift,kitchen", AllCategories)
	require.Len(t, got, 1)
}

func TestFilterCategoryUsesDerivedCategory(t *testing.T) {
	t.Parallel()

	products := sampleProducts()

	got := Filter(products, "", "shoes")
	require.Len(t, got, 2, "first keyword and first custom tag both derive 'shoes'")

	got = Filter(products, "", "kitchen")
	require.Len(t, got, 1)
	require.Equal(t, "2", got[0].ID)

	got = Filter(products, "", "gift")
	require.Empty(t, got, "gift is not the derived category because a keyword exists")
}

func TestFilterUnknownCategoryIsEmpty(t *testing.T) {
	t.Parallel()

	got := Filter(sampleProducts(), "", "garden")
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestFilterCombinesPredicates(t *testing.T) {
	t.Parallel()

	products := sampleProducts()
	got := Filter(products, "sneaker", "shoes")
	require.Len(t, got, 1)
	require.Equal(t, "3", got[0].ID)

	got = Filter(products, "mug", "shoes")
	require.Empty(t, got)
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	products := sampleProducts()
	before := sampleProducts()
	_ = Filter(products, "shoe", "shoes")
	if diff := cmp.Diff(before, products); diff != "" {
		t.Fatalf("input mutated (-before +after):\n%s", diff)
	}
}
