package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beetlebugorg/shapefile/internal/shptest"
	"github.com/beetlebugorg/shapefile/pkg/shapefile"
)

func writeRoads(t *testing.T, dir, stem string) (string, string) {
	shp := shptest.NewShp(shptest.TypePolyLine).
		PolyLine([]int32{0}, shptest.XY{0, 0}, shptest.XY{1, 1}).
		PolyLine([]int32{0}, shptest.XY{2, 2}, shptest.XY{3, 2}, shptest.XY{4, 1}).
		PolyLine([]int32{0}, shptest.XY{5, 5}, shptest.XY{6, 6})
	dbf := shptest.NewDbf(shptest.Char("fclass", 12), shptest.Char("name", 20)).
		Row("primary", "Unter den Linden").
		Row("service", "").
		Row("primary", "Friedrichstrasse")
	return shptest.WritePair(t, dir, stem, shp.Bytes(), dbf.Bytes())
}

// newConf returns a configuration holding the same defaults the flags carry.
func newConf(values map[string]any) *viper.Viper {
	conf := viper.New()
	conf.Set("name_field", "name")
	conf.Set("class_field", "fclass")
	conf.Set("codepage", "")
	conf.Set("workers", 2)
	for k, v := range values {
		conf.Set(k, v)
	}
	return conf
}

func TestSubcommandsRegistered(t *testing.T) {
	var names []string
	for _, c := range RootCmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"parse", "unique", "objects", "preprocess", "batch", "stats", "geojson"} {
		assert.Contains(t, names, want)
	}
	for _, sc := range subcommands {
		require.NotNil(t, sc.Conf, sc.Cmd.Name())
	}
	assert.Equal(t, "fclass", Unique.Conf.GetString("field"))
	assert.Equal(t, "name", Objects.Conf.GetString("name_field"))
}

func TestDecodeOptions(t *testing.T) {
	opts := decodeOptions(newConf(map[string]any{"name_field": "label", "codepage": "1252"}))
	assert.Equal(t, "label", opts.NameField)
	assert.Equal(t, "fclass", opts.ClassField)
	assert.Equal(t, "1252", opts.CodePage)
	assert.False(t, opts.NamedOnly)
}

func TestRunParse(t *testing.T) {
	shp, _ := writeRoads(t, t.TempDir(), "roads")

	for _, mode := range []string{"file", "bytes"} {
		var out bytes.Buffer
		err := runParse(&out, newConf(map[string]any{"shp": shp, "mode": mode}))
		require.NoError(t, err)
		assert.Contains(t, out.String(), "OK: 3 records of PolyLine")
		assert.Contains(t, out.String(), "("+mode+" mode)")
	}

	err := runParse(&bytes.Buffer{}, newConf(map[string]any{"mode": "file"}))
	assert.Error(t, err)

	err = runParse(&bytes.Buffer{}, newConf(map[string]any{"shp": shp, "mode": "mmap"}))
	assert.Error(t, err)
}

func TestRunUnique(t *testing.T) {
	_, dbf := writeRoads(t, t.TempDir(), "roads")

	var out bytes.Buffer
	require.NoError(t, runUnique(&out, newConf(map[string]any{"field": "FCLASS"}), dbf))

	data, err := os.ReadFile(strings.TrimSuffix(dbf, ".dbf") + ".FCLASS.txt")
	require.NoError(t, err)
	assert.Equal(t, "primary\nservice", string(data))

	err = runUnique(&out, newConf(map[string]any{"field": "highway"}), dbf)
	assert.ErrorContains(t, err, `field "highway" not found`)
}

func TestRunObjects(t *testing.T) {
	dir := t.TempDir()
	shp, dbf := writeRoads(t, dir, "roads")
	output := filepath.Join(dir, "objects.txt")

	var out bytes.Buffer
	require.NoError(t, runObjects(&out, newConf(map[string]any{"out": output, "named": true}), shp, dbf))
	assert.Contains(t, out.String(), "2 objects")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "0\tLineString\t\"primary\"\t\"Unter den Linden\""), lines[0])
	assert.Contains(t, lines[1], "Friedrichstrasse")
}

func TestRunPreprocessAndStats(t *testing.T) {
	dir := t.TempDir()
	shp, dbf := writeRoads(t, dir, "roads")

	var out bytes.Buffer
	require.NoError(t, runPreprocess(&out, newConf(map[string]any{"out": ""}), shp, dbf))

	cache := filepath.Join(dir, "roads"+shapefile.CacheFileExt)
	objects, err := shapefile.LoadObjects(cache)
	require.NoError(t, err)
	require.Len(t, objects, 3)
	_, named := objects[1].Name()
	assert.False(t, named)

	out.Reset()
	require.NoError(t, runStats(&out, newConf(nil), []string{cache, cache}))
	assert.Contains(t, out.String(), "num objects: 3")
	assert.Contains(t, out.String(), "named objects: 2/3")
	assert.Contains(t, out.String(), "lines: 6/6")

	err = runStats(&out, newConf(nil), []string{filepath.Join(dir, "missing.shpobj")})
	assert.Error(t, err)
}

func TestRunBatch(t *testing.T) {
	dir := t.TempDir()
	outDir := t.TempDir()
	writeRoads(t, dir, "roads_a")
	writeRoads(t, dir, "roads_b")

	var out bytes.Buffer
	conf := newConf(map[string]any{"out_dir": outDir, "skip_errors": false})
	require.NoError(t, runBatch(context.Background(), &out, conf, dir))
	assert.Contains(t, out.String(), "Found 2 pairs")
	assert.Contains(t, out.String(), "wrote 2 layers, 6 objects, 0 failed")

	for _, stem := range []string{"roads_a", "roads_b"} {
		objects, err := shapefile.LoadObjects(filepath.Join(outDir, stem+shapefile.CacheFileExt))
		require.NoError(t, err)
		assert.Len(t, objects, 3)
	}

	err := runBatch(context.Background(), &out, conf, t.TempDir())
	assert.ErrorContains(t, err, "no .shp/.dbf pairs")
}

func TestRunBatchSkipErrors(t *testing.T) {
	dir := t.TempDir()
	writeRoads(t, dir, "roads")
	shptest.WritePair(t, dir, "broken", []byte("not a shape file"), []byte("nor a table"))

	conf := newConf(map[string]any{"out_dir": "", "skip_errors": false})
	assert.Error(t, runBatch(context.Background(), &bytes.Buffer{}, conf, dir))

	var out bytes.Buffer
	conf.Set("skip_errors", true)
	require.NoError(t, runBatch(context.Background(), &out, conf, dir))
	assert.Contains(t, out.String(), "wrote 1 layers, 3 objects, 1 failed")
	assert.FileExists(t, filepath.Join(dir, "roads"+shapefile.CacheFileExt))
}

func TestRunGeoJSON(t *testing.T) {
	dir := t.TempDir()
	shp, dbf := writeRoads(t, dir, "roads")

	var out bytes.Buffer
	require.NoError(t, runGeoJSON(&out, newConf(map[string]any{"out": "", "named": false}), shp, dbf))
	assert.Contains(t, out.String(), "wrote 3 features")

	data, err := os.ReadFile(filepath.Join(dir, "roads.geojson"))
	require.NoError(t, err)
	var doc struct {
		Type     string `json:"type"`
		Features []struct {
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "FeatureCollection", doc.Type)
	require.Len(t, doc.Features, 3)
	assert.Equal(t, "primary", doc.Features[0].Properties["class"])
}
