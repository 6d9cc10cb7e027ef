package shapefile

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
)

func TestGeometryGeom(t *testing.T) {
	objects := sampleObjects()

	g, err := objects[0].Geom()
	require.NoError(t, err)
	point, ok := g.(*geom.Point)
	require.True(t, ok)
	assert.Equal(t, []float64{13.4, 52.5}, point.FlatCoords())

	g, err = objects[1].Geom()
	require.NoError(t, err)
	line, ok := g.(*geom.LineString)
	require.True(t, ok)
	assert.Equal(t, 3, line.NumCoords())

	g, err = objects[2].Geom()
	require.NoError(t, err)
	poly, ok := g.(*geom.Polygon)
	require.True(t, ok)
	assert.Equal(t, 2, poly.NumLinearRings())
	assert.Equal(t, 4, poly.LinearRing(1).NumCoords())

	assert.Equal(t, Bounds{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}, objects[2].Bounds())

	_, err = Geometry{Type: GeometryTypePoint}.Geom()
	require.Error(t, err)
}

func TestWriteGeoJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGeoJSON(&buf, sampleObjects()))

	var doc struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type string `json:"type"`
			} `json:"geometry"`
			Properties map[string]interface{} `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "FeatureCollection", doc.Type)
	require.Len(t, doc.Features, 3)
	assert.Equal(t, "Point", doc.Features[0].Geometry.Type)
	assert.Equal(t, "LineString", doc.Features[1].Geometry.Type)
	assert.Equal(t, "Polygon", doc.Features[2].Geometry.Type)

	assert.Equal(t, "Kaffee Eins", doc.Features[0].Properties["name"])
	assert.Equal(t, "cafe", doc.Features[0].Properties["class"])
	assert.NotContains(t, doc.Features[1].Properties, "name")
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleObjects())
	assert.Equal(t, Stats{Total: 3, Named: 2, Points: 1, Lines: 1, Polygons: 1}, s)

	s.Add(Stats{Total: 1, Points: 1})
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.Points)
}

func TestBounds(t *testing.T) {
	objects := sampleObjects()
	assert.Equal(t, Bounds{MinX: 13.4, MinY: 52.5, MaxX: 13.4, MaxY: 52.5}, objects[0].Bounds())
	assert.Equal(t, Bounds{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}, objects[2].Bounds())

	layer := newLayer("mixed", "Polygon", "", objects)
	b := layer.Bounds()
	assert.Equal(t, Bounds{MinX: 0, MinY: 0, MaxX: 13.4, MaxY: 52.5}, b)
	assert.True(t, b.Contains(5, 5))
	assert.False(t, b.Contains(-1, 5))
	assert.True(t, b.Intersects(Bounds{MinX: 13, MinY: 52, MaxX: 20, MaxY: 60}))
	assert.False(t, b.Intersects(Bounds{MinX: 14, MinY: 0, MaxX: 20, MaxY: 1}))

	assert.Equal(t, Bounds{}, newLayer("empty", "Point", "", nil).Bounds())
}
