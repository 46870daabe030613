package valkey

import (
	"context"
	"os"
	"testing"

	"github.com/Vasu1712/posterboard/internal/models"
	"github.com/Vasu1712/posterboard/internal/town"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ town.PosterStore = (*PosterStore)(nil)

func newTestStore(t *testing.T) *PosterStore {
	t.Helper()
	addr := os.Getenv("VALKEY_ADDR")
	if addr == "" {
		t.Skip("VALKEY_ADDR not set")
	}
	store, err := NewPosterStore(context.Background(), addr)
	require.NoError(t, err)
	t.Cleanup(store.Close)
	return store
}

func TestPosterStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	townID := uuid.NewString()
	title, image := "poster", "image bytes"

	require.NoError(t, store.SavePosterArea(ctx, townID, models.PosterSessionArea{ID: "b", Stars: 2, Title: &title, ImageContents: &image}))
	require.NoError(t, store.SavePosterArea(ctx, townID, models.PosterSessionArea{ID: "a"}))
	require.NoError(t, store.SavePosterArea(ctx, townID, models.PosterSessionArea{ID: "b"}))

	got, err := store.GetPosterArea(ctx, townID, "b")
	require.NoError(t, err)
	assert.Equal(t, models.PosterSessionArea{ID: "b"}, got)

	list, err := store.ListPosterAreas(ctx, townID)
	require.NoError(t, err)
	assert.Equal(t, []models.PosterSessionArea{{ID: "b"}, {ID: "a"}}, list)

	_, err = store.GetPosterArea(ctx, townID, "missing")
	assert.True(t, town.IsNotFound(err))
}

func TestPosterKeys(t *testing.T) {
	assert.Equal(t, "town:t1:poster:p1", posterKey("t1", "p1"))
	assert.Equal(t, "town:t1:posters", indexKey("t1"))
}
