package mongodb

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"bazaar/internal/domain/entity"
	"bazaar/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// newTestDatabase connects to the instance named by MONGO_TEST_URI and
// hands back an isolated throwaway database. Tests are skipped when the
// variable is unset so the suite stays runnable without infrastructure.
func newTestDatabase(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set, skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)

	db := client.Database(fmt.Sprintf("bazaar_test_%d", time.Now().UnixNano()))
	require.NoError(t, EnsureIndexes(ctx, db))

	t.Cleanup(func() {
		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cleanupCancel()
		_ = db.Drop(cleanupCtx)
		_ = client.Disconnect(cleanupCtx)
	})

	return db
}

func seedShop(t *testing.T, repo repository.ShopRepository, cif, email string) *entity.Shop {
	t.Helper()

	shop := &entity.Shop{
		Name:         "Corner Books",
		PasswordHash: "digest",
		CIF:          cif,
		City:         "Madrid",
		Email:        email,
		Phone:        "600000000",
		Activity:     "books",
	}
	require.NoError(t, repo.Create(context.Background(), shop))

	return shop
}

func TestShopRepository_AddReview_AtomicRecompute(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewShopRepository(db)
	ctx := context.Background()

	shop := seedShop(t, repo, "B123", "corner@example.com")
	_, err := repo.CreateWebShop(ctx, shop.ID, &entity.WebShop{Title: "Corner Online"})
	require.NoError(t, err)

	updated, err := repo.AddReview(ctx, shop.ID, &entity.Review{Score: 2, Text: "meh"})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.WebShop.NumRatings)
	assert.InEpsilon(t, 2.0, updated.WebShop.Scoring, 1e-9)

	updated, err = repo.AddReview(ctx, shop.ID, &entity.Review{Score: 4, Text: "good"})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.WebShop.NumRatings)
	assert.InEpsilon(t, 3.0, updated.WebShop.Scoring, 1e-9)
	require.Len(t, updated.WebShop.Reviews, 2)
}

func TestShopRepository_AddReview_ConcurrentAppendsLoseNothing(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewShopRepository(db)
	ctx := context.Background()

	shop := seedShop(t, repo, "B124", "concurrent@example.com")
	_, err := repo.CreateWebShop(ctx, shop.ID, &entity.WebShop{Title: "Corner Online"})
	require.NoError(t, err)

	const writers = 8
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		go func(score int) {
			_, err := repo.AddReview(ctx, shop.ID, &entity.Review{Score: score%5 + 1})
			errs <- err
		}(i)
	}
	for i := 0; i < writers; i++ {
		require.NoError(t, <-errs)
	}

	final, err := repo.FindByID(ctx, shop.ID)
	require.NoError(t, err)
	assert.Equal(t, writers, final.WebShop.NumRatings)
	assert.Len(t, final.WebShop.Reviews, writers)
}

func TestShopRepository_CreateWebShop_SecondAttemptConflicts(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewShopRepository(db)
	ctx := context.Background()

	shop := seedShop(t, repo, "B125", "conflict@example.com")
	_, err := repo.CreateWebShop(ctx, shop.ID, &entity.WebShop{Title: "First"})
	require.NoError(t, err)

	_, err = repo.CreateWebShop(ctx, shop.ID, &entity.WebShop{Title: "Second"})
	assert.ErrorIs(t, err, repository.ErrWebShopExists)
}

func TestShopRepository_SoftDelete_FreesUniqueKeys(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewShopRepository(db)
	ctx := context.Background()

	first := seedShop(t, repo, "B126", "reuse@example.com")
	require.NoError(t, repo.SoftDelete(ctx, first.ID))

	// Partial indexes only cover live documents, so the identifiers are
	// reusable after a soft delete.
	second := seedShop(t, repo, "B126", "reuse@example.com")
	assert.NotEqual(t, first.ID, second.ID)

	err := repo.SoftDelete(ctx, first.ID)
	assert.ErrorIs(t, err, repository.ErrShopNotFound)
}
