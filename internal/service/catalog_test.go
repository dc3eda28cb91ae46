package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/transport"
)

func TestCatalogService_List_KeywordCaseInsensitive(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}
	seedProduct(t, r, "Logitech Gaming Mouse", 4999)
	seedProduct(t, r, "Mechanical Keyboard", 8999)
	seedProduct(t, r, "USB Mousepad", 1299)

	total, page, err := svc.List(context.Background(), "MOUSE", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, page, 2)
	for _, p := range page {
		assert.Contains(t, []string{"Logitech Gaming Mouse", "USB Mousepad"}, p.Name)
	}
}

func TestCatalogService_List_NoMatchesIsEmptyPage(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}
	seedProduct(t, r, "Logitech Gaming Mouse", 4999)

	total, page, err := svc.List(context.Background(), "turntable", 0, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, page)
}

func TestCatalogService_List_Pagination(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}
	for _, name := range []string{"alpha", "bravo", "charlie", "delta", "echo"} {
		seedProduct(t, r, name, 1000)
	}

	total, first, err := svc.List(context.Background(), "", 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, first, 2)

	total, last, err := svc.List(context.Background(), "", 4, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, last, 1)
}

func TestCatalogService_Top_OrderedByRating(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}

	low := seedProduct(t, r, "low", 1000)
	mid := seedProduct(t, r, "mid", 1000)
	high := seedProduct(t, r, "high", 1000)
	for id, rating := range map[uint]float64{low.ID: 2, mid.ID: 3.5, high.ID: 4.8} {
		require.NoError(t, r.DB.Model(&models.Product{}).Where("id = ?", id).
			Update("rating", rating).Error)
	}

	top, err := svc.Top(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "high", top[0].Name)
	assert.Equal(t, "mid", top[1].Name)
}

func TestCatalogService_Create_Validation(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}
	admin := seedUser(t, r, "admin", "admin@example.com")

	_, err := svc.Create(context.Background(), admin.ID, transport.CreateProductRequest{Price: 100})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(context.Background(), admin.ID, transport.CreateProductRequest{Name: "thing", Price: -1})
	assert.ErrorIs(t, err, ErrValidation)

	prod, err := svc.Create(context.Background(), admin.ID, transport.CreateProductRequest{
		Name:         "thing",
		Description:  "a thing",
		Price:        100,
		CountInStock: 3,
	})
	require.NoError(t, err)
	assert.NotZero(t, prod.ID)
	assert.Equal(t, admin.ID, prod.UserID)
}

func TestCatalogService_Patch(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}
	prod := seedProduct(t, r, "mouse", 2000)

	newName := "trackball"
	newPrice := int64(3500)
	updated, err := svc.Patch(context.Background(), transport.PatchProductRequest{
		Name:  &newName,
		Price: &newPrice,
	}, prod.ID)
	require.NoError(t, err)
	assert.Equal(t, "trackball", updated.Name)
	assert.Equal(t, int64(3500), updated.Price)
	assert.Equal(t, prod.Description, updated.Description)

	empty := ""
	_, err = svc.Patch(context.Background(), transport.PatchProductRequest{Name: &empty}, prod.ID)
	assert.ErrorIs(t, err, ErrValidation)

	negative := int64(-5)
	_, err = svc.Patch(context.Background(), transport.PatchProductRequest{Price: &negative}, prod.ID)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Patch(context.Background(), transport.PatchProductRequest{Name: &newName}, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogService_Delete(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}
	prod := seedProduct(t, r, "mouse", 2000)

	require.NoError(t, svc.Delete(context.Background(), prod.ID))

	_, err := svc.Get(context.Background(), prod.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.Delete(context.Background(), prod.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogService_AddReview_UpdatesAggregates(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}
	prod := seedProduct(t, r, "mouse", 2000)
	alice := seedUser(t, r, "alice", "alice@example.com")
	bob := seedUser(t, r, "bob", "bob@example.com")

	got, err := svc.AddReview(context.Background(), prod.ID, alice.ID, alice.Name, transport.CreateReviewRequest{
		Rating:  5,
		Comment: "excellent",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, got.NumReviews)
	assert.InDelta(t, 5.0, got.Rating, 1e-9)

	got, err = svc.AddReview(context.Background(), prod.ID, bob.ID, bob.Name, transport.CreateReviewRequest{
		Rating:  2,
		Comment: "broke after a week",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, got.NumReviews)
	assert.InDelta(t, 3.5, got.Rating, 1e-9)
	require.Len(t, got.Reviews, 2)
}

func TestCatalogService_AddReview_DuplicateRejected(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}
	prod := seedProduct(t, r, "mouse", 2000)
	alice := seedUser(t, r, "alice", "alice@example.com")

	_, err := svc.AddReview(context.Background(), prod.ID, alice.ID, alice.Name, transport.CreateReviewRequest{
		Rating:  4,
		Comment: "good",
	})
	require.NoError(t, err)

	_, err = svc.AddReview(context.Background(), prod.ID, alice.ID, alice.Name, transport.CreateReviewRequest{
		Rating:  1,
		Comment: "changed my mind",
	})
	assert.ErrorIs(t, err, ErrConflict)

	got, err := svc.Get(context.Background(), prod.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.NumReviews)
	assert.InDelta(t, 4.0, got.Rating, 1e-9)
}

func TestCatalogService_AddReview_Validation(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}
	prod := seedProduct(t, r, "mouse", 2000)
	alice := seedUser(t, r, "alice", "alice@example.com")

	_, err := svc.AddReview(context.Background(), prod.ID, alice.ID, alice.Name, transport.CreateReviewRequest{
		Rating:  0,
		Comment: "no stars",
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.AddReview(context.Background(), prod.ID, alice.ID, alice.Name, transport.CreateReviewRequest{
		Rating:  6,
		Comment: "too many stars",
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.AddReview(context.Background(), prod.ID, alice.ID, alice.Name, transport.CreateReviewRequest{
		Rating: 3,
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.AddReview(context.Background(), 9999, alice.ID, alice.Name, transport.CreateReviewRequest{
		Rating:  3,
		Comment: "fine",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}
