package shapefile

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beetlebugorg/shapefile/internal/shptest"
)

// writeLayers writes n point layers named layer0..layerN-1; layer i has i+1 objects.
func writeLayers(t *testing.T, dir string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		shp := shptest.NewShp(shptest.TypePoint)
		dbf := shptest.NewDbf(shptest.Char("name", 8), shptest.Char("fclass", 8))
		for j := 0; j <= i; j++ {
			shp.Point(float64(i), float64(j))
			dbf.Row(fmt.Sprintf("p%d", j), "poi")
		}
		shptest.WritePair(t, dir, fmt.Sprintf("layer%d", i), shp.Bytes(), dbf.Bytes())
	}
}

func TestFindPairs(t *testing.T) {
	dir := t.TempDir()
	writeLayers(t, dir, 2)
	shptest.WriteFile(t, filepath.Join(dir, "UPPER.SHP"), shptest.NewShp(shptest.TypePoint).Bytes())
	shptest.WriteFile(t, filepath.Join(dir, "UPPER.DBF"), shptest.NewDbf(shptest.Char("name", 4)).Bytes())
	shptest.WriteFile(t, filepath.Join(dir, "orphan.shp"), shptest.NewShp(shptest.TypePoint).Bytes())
	shptest.WriteFile(t, filepath.Join(dir, "notes.txt"), []byte("x"))

	pairs, err := FindPairs(dir)
	require.NoError(t, err)

	want := []Pair{
		{Name: "UPPER", Shp: filepath.Join(dir, "UPPER.SHP"), Dbf: filepath.Join(dir, "UPPER.DBF")},
		{Name: "layer0", Shp: filepath.Join(dir, "layer0.shp"), Dbf: filepath.Join(dir, "layer0.dbf")},
		{Name: "layer1", Shp: filepath.Join(dir, "layer1.shp"), Dbf: filepath.Join(dir, "layer1.dbf")},
	}
	assert.Equal(t, want, pairs)

	_, err = FindPairs(filepath.Join(dir, "missing"))
	require.Error(t, err)
}

func TestLoadLayers(t *testing.T) {
	dir := t.TempDir()
	writeLayers(t, dir, 6)
	pairs, err := FindPairs(dir)
	require.NoError(t, err)

	var mu sync.Mutex
	var progress []int
	opts := DefaultLoadOptions()
	opts.Workers = 3
	opts.Progress = func(loaded, total int) {
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, 6, total)
		progress = append(progress, loaded)
	}

	layers, errs := LoadLayers(context.Background(), pairs, NewDecoder(), opts)
	require.Empty(t, errs)
	require.Len(t, layers, 6)
	for i, l := range layers {
		assert.Equal(t, fmt.Sprintf("layer%d", i), l.Name())
		assert.Equal(t, i+1, l.ObjectCount())
	}
	assert.Len(t, progress, 6)
}

func TestLoadLayersErrors(t *testing.T) {
	dir := t.TempDir()
	writeLayers(t, dir, 3)
	// layer1 loses a dBASE row
	shptest.WriteFile(t, filepath.Join(dir, "layer1.dbf"),
		shptest.NewDbf(shptest.Char("name", 8), shptest.Char("fclass", 8)).Row("p0", "poi").Bytes())
	pairs, err := FindPairs(dir)
	require.NoError(t, err)

	t.Run("skip errors", func(t *testing.T) {
		opts := DefaultLoadOptions()
		layers, errs := LoadLayers(context.Background(), pairs, NewDecoder(), opts)

		require.Len(t, errs, 1)
		var mismatch *ErrRecordCountMismatch
		assert.True(t, errors.As(errs[0], &mismatch))
		require.Len(t, layers, 2)
		assert.Equal(t, "layer0", layers[0].Name())
		assert.Equal(t, "layer2", layers[1].Name())
	})

	t.Run("stop on first error", func(t *testing.T) {
		opts := DefaultLoadOptions()
		opts.SkipErrors = false
		opts.Workers = 1
		layers, errs := LoadLayers(context.Background(), pairs, NewDecoder(), opts)

		assert.Nil(t, layers)
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0].Error(), "layer1.shp")
	})
}

func TestLoadLayersEmpty(t *testing.T) {
	layers, errs := LoadLayers(context.Background(), nil, NewDecoder(), DefaultLoadOptions())
	assert.Empty(t, layers)
	assert.Empty(t, errs)
}
