package shapefile

import (
	"github.com/dgraph-io/ristretto/v2"
	"github.com/pkg/errors"
)

// DefaultCacheMemory is the memory limit used when NewObjectCache gets zero.
const DefaultCacheMemory = 1 << 30

// ObjectCache keeps decoded layers in memory, bounded by estimated size.
//
// Layers are admitted and evicted by ristretto's TinyLFU policy, so a layer
// that was just added may still be dropped under pressure. Get always falls
// back to the loader on a miss.
//
// Example:
//
//	cache, err := shapefile.NewObjectCache(512 * 1024 * 1024) // 512MB
//	if err != nil {
//	    return err
//	}
//	defer cache.Close()
//
//	layer, err := cache.Get("roads", func() (*shapefile.Layer, error) {
//	    return dec.Decode("roads.shp", "roads.dbf")
//	})
type ObjectCache struct {
	cache     *ristretto.Cache[string, *Layer]
	maxMemory int64
}

// NewObjectCache creates a cache with the given memory limit in bytes.
// Zero or a negative limit selects DefaultCacheMemory.
func NewObjectCache(maxMemoryBytes int64) (*ObjectCache, error) {
	if maxMemoryBytes <= 0 {
		maxMemoryBytes = DefaultCacheMemory
	}
	// About ten counters per expected layer, assuming layers of ~64KB
	counters := maxMemoryBytes / (64 << 10) * 10
	if counters < 1000 {
		counters = 1000
	}

	cache, err := ristretto.NewCache(&ristretto.Config[string, *Layer]{
		NumCounters: counters,
		MaxCost:     maxMemoryBytes,
		BufferItems: 64,
		Metrics:     true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create object cache")
	}
	return &ObjectCache{cache: cache, maxMemory: maxMemoryBytes}, nil
}

// Get returns the cached layer for key, or calls loader and caches its result.
//
// The loader is only called on a cache miss. A layer the cache refuses to
// admit is still returned.
func (c *ObjectCache) Get(key string, loader func() (*Layer, error)) (*Layer, error) {
	if layer, ok := c.cache.Get(key); ok {
		return layer, nil
	}

	layer, err := loader()
	if err != nil {
		return nil, errors.Wrapf(err, "load layer %s", key)
	}
	c.Add(key, layer)
	return layer, nil
}

// Add stores a layer and reports whether the cache accepted it.
func (c *ObjectCache) Add(key string, layer *Layer) bool {
	cost := estimateLayerMemory(layer)
	if cost > c.maxMemory {
		return false
	}
	ok := c.cache.Set(key, layer, cost)
	c.cache.Wait()
	return ok
}

// Remove explicitly removes a layer from the cache.
func (c *ObjectCache) Remove(key string) {
	c.cache.Del(key)
	c.cache.Wait()
}

// Clear removes all layers from the cache.
func (c *ObjectCache) Clear() {
	c.cache.Clear()
}

// Close stops the cache's background goroutines. The cache is unusable afterwards.
func (c *ObjectCache) Close() {
	c.cache.Close()
}

// Stats returns cache statistics.
func (c *ObjectCache) Stats() CacheStats {
	m := c.cache.Metrics
	return CacheStats{
		Hits:        m.Hits(),
		Misses:      m.Misses(),
		LayersAdded: m.KeysAdded(),
		UsedMemory:  int64(m.CostAdded() - m.CostEvicted()),
		MaxMemory:   c.maxMemory,
	}
}

// CacheStats holds cache performance metrics.
type CacheStats struct {
	Hits        uint64 // Gets answered from the cache
	Misses      uint64 // Gets that fell through to the loader
	LayersAdded uint64 // Layers admitted since creation
	UsedMemory  int64  // Estimated memory usage in bytes
	MaxMemory   int64  // Maximum memory limit in bytes
}

// estimateLayerMemory estimates memory usage for a layer.
//
// This is approximate and based on:
//   - Base overhead: ~1KB per layer
//   - Object overhead: ~128 bytes per object plus its strings
//   - Geometry coordinates: 40 bytes per coordinate pair (slice header and two floats)
func estimateLayerMemory(layer *Layer) int64 {
	if layer == nil {
		return 0
	}

	size := int64(1024)
	for _, o := range layer.objects {
		size += 128 + int64(len(o.name)+len(o.class))
		size += int64(len(o.geometry.Coordinates)) * 40
		for _, ring := range o.geometry.Rings {
			size += 24 + int64(len(ring))*40
		}
	}
	return size
}
