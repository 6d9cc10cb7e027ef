package main

import (
	"fmt"
	"log"
	"math"
	"os"

	"github.com/beetlebugorg/shapefile/pkg/shapefile"
)

// lineLength sums segment lengths in layer units
func lineLength(coords [][]float64) float64 {
	var total float64
	for i := 1; i < len(coords); i++ {
		dx := coords[i][0] - coords[i-1][0]
		dy := coords[i][1] - coords[i-1][1]
		total += math.Hypot(dx, dy)
	}
	return total
}

func main() {
	dec := shapefile.NewDecoder()
	layer, err := dec.Decode("gis_osm_waterways_free_1.shp", "gis_osm_waterways_free_1.dbf")
	if err != nil {
		log.Fatal(err)
	}

	var longest shapefile.Object
	var longestLen float64
	for _, o := range layer.Objects() {
		g := o.Geometry()
		switch g.Type {
		case shapefile.GeometryTypeLineString:
			if l := lineLength(g.Coordinates); l > longestLen {
				longest, longestLen = o, l
			}
		case shapefile.GeometryTypePolygon:
			fmt.Printf("Polygon with %d rings\n", len(g.Rings))
		}
	}

	if name, ok := longest.Name(); ok {
		fmt.Printf("Longest waterway: %s (%.4f)\n", name, longestLen)
	}

	// Export as GeoJSON
	f, err := os.Create("waterways.geojson")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	if err := shapefile.WriteGeoJSON(f, layer.Objects()); err != nil {
		log.Fatal(err)
	}
}
