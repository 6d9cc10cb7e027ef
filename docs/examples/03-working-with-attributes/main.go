package main

import (
	"fmt"
	"log"

	"github.com/beetlebugorg/shapefile/pkg/shapefile"
)

func main() {
	dec := shapefile.NewDecoder()

	// Layers that are not OpenStreetMap extracts use other field names.
	// The .cpg sidecar is ignored when CodePage is set.
	opts := shapefile.DefaultDecodeOptions()
	opts.NameField = "NAME_EN"
	opts.ClassField = "TYPE"
	opts.CodePage = "1252"
	opts.NamedOnly = true

	layer, err := dec.DecodeWithOptions("places.shp", "places.dbf", opts)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Named objects: %d (code page %q)\n", layer.ObjectCount(), layer.CodePage())

	for _, o := range layer.Objects() {
		name, ok := o.Name()
		if !ok {
			continue // NamedOnly already dropped these
		}
		fmt.Printf("  %-30s %s\n", name, o.Class())
	}
}
