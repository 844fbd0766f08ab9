package media

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariantKey(t *testing.T) {
	assert.Equal(t, "images/169_cover_medium.jpg", VariantKey("images/169_cover.png", "medium"))
	assert.Equal(t, "images/cover_thumbnail.jpg", VariantKey("images/cover", "thumbnail"))
	assert.Equal(t, "img.v2/cover_medium.jpg", VariantKey("img.v2/cover", "medium"))
}

func TestProcessCoverVariants(t *testing.T) {
	store := newFakeObjectStore()
	store.objects["gamebridge:images/1_cover.png"] = coverPNG(t, 1280, 720)
	s := newTestService(store)

	err := s.ProcessCoverVariants(context.Background(), fakeEndpoint+"gamebridge:images/1_cover.png")
	require.NoError(t, err)

	assert.Contains(t, store.objects, "gamebridge:images/1_cover_medium.jpg")
	assert.Contains(t, store.objects, "gamebridge:images/1_cover_thumbnail.jpg")
}

func TestProcessCoverVariantsSkipsForeignURL(t *testing.T) {
	store := newFakeObjectStore()
	s := newTestService(store)

	err := s.ProcessCoverVariants(context.Background(), "https://elsewhere.example.com/cover.png")
	require.NoError(t, err)
	assert.Empty(t, store.objects)
}

func TestCleanupOrphans(t *testing.T) {
	store := newFakeObjectStore()
	old := time.Now().Add(-48 * time.Hour).UnixMilli()

	for _, key := range []string{
		"gamebridge:images/1_used.png",
		"gamebridge:images/1_used_medium.jpg",
		"gamebridge:images/2_orphan.png",
		"gamebridge:videos/3_orphan.mp4",
	} {
		store.objects[key] = []byte("data")
		store.modified[key] = old
	}
	// Fresh upload still waiting for its course to be saved.
	store.objects["gamebridge:images/4_fresh.png"] = []byte("data")
	store.modified["gamebridge:images/4_fresh.png"] = time.Now().UnixMilli()

	s := newTestService(store)

	inUse := map[string]bool{
		fakeEndpoint + "gamebridge:images/1_used.png": true,
		"https://elsewhere.example.com/foreign.png":   true,
	}

	removed, err := s.CleanupOrphans(context.Background(), inUse, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	assert.Contains(t, store.objects, "gamebridge:images/1_used.png")
	assert.Contains(t, store.objects, "gamebridge:images/1_used_medium.jpg")
	assert.Contains(t, store.objects, "gamebridge:images/4_fresh.png")
	assert.NotContains(t, store.objects, "gamebridge:images/2_orphan.png")
	assert.NotContains(t, store.objects, "gamebridge:videos/3_orphan.mp4")
}

func TestCleanupOrphansPropagatesListError(t *testing.T) {
	store := newFakeObjectStore()
	store.listErr = assert.AnError
	s := newTestService(store)

	_, err := s.CleanupOrphans(context.Background(), nil, time.Hour)
	assert.Error(t, err)
}
