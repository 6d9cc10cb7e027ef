package shapefile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectCacheGet(t *testing.T) {
	cache, err := NewObjectCache(64 << 20)
	require.NoError(t, err)
	defer cache.Close()

	layer := newLayer("pois", "Point", "", sampleObjects())
	calls := 0
	loader := func() (*Layer, error) {
		calls++
		return layer, nil
	}

	got, err := cache.Get("pois", loader)
	require.NoError(t, err)
	assert.Same(t, layer, got)

	got, err = cache.Get("pois", loader)
	require.NoError(t, err)
	assert.Same(t, layer, got)
	assert.Equal(t, 1, calls, "loader should only run on a miss")

	stats := cache.Stats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, int64(64<<20), stats.MaxMemory)

	cache.Remove("pois")
	_, err = cache.Get("pois", loader)
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "loader should run again after Remove")
}

func TestObjectCacheLoaderError(t *testing.T) {
	cache, err := NewObjectCache(0)
	require.NoError(t, err)
	defer cache.Close()

	boom := errors.New("boom")
	_, err = cache.Get("roads", func() (*Layer, error) { return nil, boom })
	require.ErrorIs(t, err, boom)
}

func TestObjectCacheRejectsOversizedLayer(t *testing.T) {
	cache, err := NewObjectCache(512)
	require.NoError(t, err)
	defer cache.Close()

	layer := newLayer("big", "Polygon", "", sampleObjects())
	assert.False(t, cache.Add("big", layer))

	got, err := cache.Get("big", func() (*Layer, error) { return layer, nil })
	require.NoError(t, err)
	assert.Same(t, layer, got)
}

func TestEstimateLayerMemory(t *testing.T) {
	assert.Equal(t, int64(0), estimateLayerMemory(nil))

	empty := newLayer("empty", "Point", "", nil)
	assert.Equal(t, int64(1024), estimateLayerMemory(empty))

	full := newLayer("full", "Point", "", sampleObjects())
	assert.Greater(t, estimateLayerMemory(full), estimateLayerMemory(empty))
}
