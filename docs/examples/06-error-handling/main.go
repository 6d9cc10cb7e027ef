package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/beetlebugorg/shapefile/pkg/shapefile"
)

func safeDecode(shp, dbf string) (*shapefile.Layer, error) {
	dec := shapefile.NewDecoder()

	layer, err := dec.Decode(shp, dbf)
	if err != nil {
		// Check if file exists
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("layer file not found: %w", err)
		}

		// Inspect typed decoding errors
		var frame *shapefile.ErrFrameLengthMismatch
		var count *shapefile.ErrRecordCountMismatch
		var multi *shapefile.ErrMultiPartLineUnsupported
		switch {
		case errors.As(err, &frame):
			log.Printf("Corrupt %s length at offset %d: declared %d, found %d",
				frame.Scope, frame.Offset, frame.Expected, frame.Actual)
		case errors.As(err, &count):
			log.Printf("Pair out of sync: %d shapes, %d attribute records", count.ShpCount, count.DbfCount)
		case errors.As(err, &multi):
			log.Printf("Record %d is a line with %d parts", multi.Record, multi.Parts)
		default:
			log.Printf("Failed to decode %s: %v", shp, err)
		}
		return nil, err
	}

	// Validate layer data
	if layer.ObjectCount() == 0 {
		log.Printf("Warning: %s contains no objects", shp)
	}

	return layer, nil
}

func main() {
	// Try to decode a layer
	layer, err := safeDecode("gis_osm_roads_free_1.shp", "gis_osm_roads_free_1.dbf")
	if err != nil {
		log.Printf("Error: %v", err)
		return
	}

	fmt.Printf("Successfully loaded layer: %s\n", layer.Name())
	fmt.Printf("Objects: %d\n", layer.ObjectCount())

	// Try to decode a non-existent layer
	_, err = safeDecode("NONEXISTENT.shp", "NONEXISTENT.dbf")
	if err != nil {
		log.Printf("Expected error: %v", err)
	}
}
