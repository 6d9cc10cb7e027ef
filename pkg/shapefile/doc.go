// Package shapefile decodes ESRI shape files and their dBASE attribute tables
// into geographic objects.
//
// A layer is stored as two files with the same stem: the .shp file holds one
// geometry per record and the .dbf file holds one attribute row per record.
// Nothing links the two but position, so record i of one file is paired with
// record i of the other.
//
// # Basic Usage
//
//	dec := shapefile.NewDecoder()
//	layer, err := dec.Decode("gis_osm_roads.shp", "gis_osm_roads.dbf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, obj := range layer.Objects() {
//	    name, ok := obj.Name()
//	    fmt.Println(obj.Class(), name, ok, obj.Geometry().Type)
//	}
//
// # Field Selection
//
// The name and classification come from configurable dBASE fields. The
// defaults match OpenStreetMap extracts ("name" and "fclass"):
//
//	opts := shapefile.DefaultDecodeOptions()
//	opts.ClassField = "type"
//	opts.NamedOnly = true
//	layer, err := dec.DecodeWithOptions(shp, dbf, opts)
//
// # Code Pages
//
// dBASE text is decoded as UTF-8 unless a .cpg sidecar or
// DecodeOptions.CodePage names another encoding ("1252", "CP850",
// "ISO-8859-1", ...).
//
// # Errors
//
// Malformed input never yields partial objects. Every failure is a typed
// error carrying the byte offset and the declared and actual values:
//
//	var frame *shapefile.ErrFrameLengthMismatch
//	if errors.As(err, &frame) {
//	    log.Printf("%s frame at byte %d: declared %d, consumed %d",
//	        frame.Scope, frame.Offset, frame.Expected, frame.Actual)
//	}
//
// # Loading Many Layers
//
// FindPairs discovers the pairs in a directory and LoadLayers decodes them
// concurrently. ObjectCache keeps decoded layers in memory, and
// SaveObjects/LoadObjects persist objects to a compressed file so the
// decoding step can be skipped on later runs.
package shapefile
