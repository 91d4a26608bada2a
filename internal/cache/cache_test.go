package cache_test

import (
	"bookforge/internal/cache"
	"bookforge/internal/db"
	"bookforge/internal/models"
	"bookforge/internal/testhelpers"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *cache.Store {
	t.Helper()
	database, err := db.NewDatabase(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return cache.NewStore(database, testhelpers.NewLogger(io.Discard))
}

func sampleRecord() *models.ResearchRecord {
	return &models.ResearchRecord{ //nolint:exhaustruct // this is better for readability
		Summary:         "Saturated market.",
		EthicalRating:   4,
		ProfitPotential: "Low",
		MarketStats:     []models.Stat{{Label: "Failure rate", Value: "90%", Context: "first year"}},
	}
}

func TestStore_RoundTrip(t *testing.T) {
	t.Parallel()
	store := newStore(t)
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "dropshipping")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Put(ctx, "dropshipping", sampleRecord()))

	record, ok, err := store.Get(ctx, "dropshipping")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, sampleRecord(), record)
}

func TestStore_NormalizesTopic(t *testing.T) {
	t.Parallel()
	store := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "  Dropshipping  ", sampleRecord()))

	_, ok, err := store.Get(ctx, "dropshipping")
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = store.Get(ctx, "DROPSHIPPING")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestStore_PutReplaces(t *testing.T) {
	t.Parallel()
	store := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "dropshipping", sampleRecord()))

	updated := sampleRecord()
	updated.Summary = "Revised summary."
	require.NoError(t, store.Put(ctx, "dropshipping", updated))

	record, ok, err := store.Get(ctx, "dropshipping")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Revised summary.", record.Summary)
}

func TestStore_CorruptedRowIsMissAndEvicted(t *testing.T) {
	t.Parallel()
	database, err := db.NewDatabase(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	store := cache.NewStore(database, testhelpers.NewLogger(io.Discard))
	ctx := context.Background()

	_, err = database.ReadWrite.ExecContext(ctx,
		"INSERT INTO research_cache (topic, record) VALUES (?, ?)", "dropshipping", "{not json")
	require.NoError(t, err)

	_, ok, err := store.Get(ctx, "dropshipping")
	require.NoError(t, err)
	require.False(t, ok)

	// The corrupted row is gone; a subsequent Put starts clean.
	var count int
	require.NoError(t, database.ReadOnly.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM research_cache WHERE topic = ?", "dropshipping"))
	require.Zero(t, count)
}
