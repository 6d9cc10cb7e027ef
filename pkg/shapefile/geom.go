package shapefile

import (
	"fmt"

	"github.com/twpayne/go-geom"
)

// Geom converts the geometry to a go-geom value: *geom.Point, *geom.LineString
// or *geom.Polygon, all in the XY layout.
func (g Geometry) Geom() (geom.T, error) {
	switch g.Type {
	case GeometryTypePoint:
		if len(g.Coordinates) != 1 {
			return nil, fmt.Errorf("point has %d coordinates", len(g.Coordinates))
		}
		return geom.NewPointFlat(geom.XY, flatten(g.Coordinates)), nil
	case GeometryTypeLineString:
		return geom.NewLineStringFlat(geom.XY, flatten(g.Coordinates)), nil
	case GeometryTypePolygon:
		var flat []float64
		ends := make([]int, 0, len(g.Rings))
		for _, ring := range g.Rings {
			flat = append(flat, flatten(ring)...)
			ends = append(ends, len(flat))
		}
		return geom.NewPolygonFlat(geom.XY, flat, ends), nil
	default:
		return nil, fmt.Errorf("unknown geometry type %v", g.Type)
	}
}

// Geom converts the object's geometry to a go-geom value.
func (o Object) Geom() (geom.T, error) {
	return o.geometry.Geom()
}

// Bounds returns the extent of the object's geometry.
func (o Object) Bounds() Bounds {
	return objectsBounds([]Object{o})
}

// objectsBounds is the union extent of all objects; zero when there are no coordinates.
func objectsBounds(objects []Object) Bounds {
	b := geom.NewBounds(geom.XY)
	for _, o := range objects {
		g, err := o.Geom()
		if err != nil {
			continue
		}
		b.Extend(g)
	}
	if b.IsEmpty() {
		return Bounds{}
	}
	return Bounds{MinX: b.Min(0), MinY: b.Min(1), MaxX: b.Max(0), MaxY: b.Max(1)}
}

func flatten(coords [][]float64) []float64 {
	flat := make([]float64, 0, 2*len(coords))
	for _, c := range coords {
		flat = append(flat, c[0], c[1])
	}
	return flat
}
