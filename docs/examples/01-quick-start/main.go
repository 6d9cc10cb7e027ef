package main

import (
	"fmt"
	"log"

	"github.com/beetlebugorg/shapefile/pkg/shapefile"
)

func main() {
	// Create decoder
	dec := shapefile.NewDecoder()

	// Decode a .shp/.dbf pair
	layer, err := dec.Decode("gis_osm_roads_free_1.shp", "gis_osm_roads_free_1.dbf")
	if err != nil {
		log.Fatal(err)
	}

	// Print layer info
	fmt.Printf("Layer: %s\n", layer.Name())
	fmt.Printf("Shape type: %s\n", layer.ShapeType())
	fmt.Printf("Objects: %d\n", layer.ObjectCount())

	// Get layer bounds
	bounds := layer.Bounds()
	fmt.Printf("Bounds: [%.4f,%.4f] to [%.4f,%.4f]\n",
		bounds.MinX, bounds.MinY,
		bounds.MaxX, bounds.MaxY)
}
