package main

import (
	"context"
	"fmt"
	"log"

	"github.com/beetlebugorg/shapefile/pkg/shapefile"
)

// Decode every pair in a directory concurrently
func loadDirectory(dir string) []*shapefile.Layer {
	pairs, err := shapefile.FindPairs(dir)
	if err != nil {
		log.Fatal(err)
	}

	opts := shapefile.DefaultLoadOptions()
	opts.Workers = 8
	opts.Decode.Mode = shapefile.ReadWhole // Read each file in one go
	opts.Progress = func(loaded, total int) {
		fmt.Printf("\rDecoded %d/%d", loaded, total)
	}

	layers, errs := shapefile.LoadLayers(context.Background(), pairs, shapefile.NewDecoder(), opts)
	fmt.Println()
	for _, err := range errs {
		log.Printf("skipped: %v", err)
	}
	return layers
}

func main() {
	layers := loadDirectory("berlin-latest-free.shp")
	fmt.Printf("Layers loaded: %d\n", len(layers))

	// Cache decoded layers across requests
	cache, err := shapefile.NewObjectCache(256 << 20) // 256MB
	if err != nil {
		log.Fatal(err)
	}
	defer cache.Close()

	dec := shapefile.NewDecoder()
	for i := 0; i < 3; i++ {
		layer, err := cache.Get("roads", func() (*shapefile.Layer, error) {
			return dec.Decode("gis_osm_roads_free_1.shp", "gis_osm_roads_free_1.dbf")
		})
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("roads: %d objects\n", layer.ObjectCount())
	}

	stats := cache.Stats()
	fmt.Printf("Cache hits: %d, misses: %d\n", stats.Hits, stats.Misses)

	// Persist objects so later runs skip decoding
	for _, layer := range layers {
		if err := shapefile.SaveObjects(layer.Name()+shapefile.CacheFileExt, layer.Objects()); err != nil {
			log.Fatal(err)
		}
	}
}
