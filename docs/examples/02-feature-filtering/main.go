package main

import (
	"fmt"
	"log"

	"github.com/beetlebugorg/shapefile/pkg/shapefile"
)

// Get all motorways and trunk roads
func getMajorRoads(layer *shapefile.Layer) []shapefile.Object {
	major := map[string]bool{
		"motorway": true, "motorway_link": true,
		"trunk": true, "trunk_link": true,
	}

	var roads []shapefile.Object
	for _, o := range layer.Objects() {
		if major[o.Class()] {
			roads = append(roads, o)
		}
	}
	return roads
}

// Count objects per class
func countByClass(layer *shapefile.Layer) map[string]int {
	counts := make(map[string]int)
	for _, o := range layer.Objects() {
		counts[o.Class()]++
	}
	return counts
}

func main() {
	dec := shapefile.NewDecoder()
	layer, err := dec.Decode("gis_osm_roads_free_1.shp", "gis_osm_roads_free_1.dbf")
	if err != nil {
		log.Fatal(err)
	}

	roads := getMajorRoads(layer)
	fmt.Printf("Major roads: %d\n", len(roads))

	for class, n := range countByClass(layer) {
		fmt.Printf("  %s: %d\n", class, n)
	}
}
