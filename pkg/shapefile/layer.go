package shapefile

import (
	"github.com/beetlebugorg/shapefile/internal/spatial"
)

// Layer is one decoded shape/dBASE pair.
//
// A layer holds its objects in file order: Objects()[i] came from record i
// (unless DecodeOptions.NamedOnly removed unnamed objects).
//
// All fields are private to maintain encapsulation.
type Layer struct {
	name      string
	shapeType string
	codePage  string
	objects   []Object
	bounds    Bounds
}

func newLayer(name, shapeType, codePage string, objects []Object) *Layer {
	l := &Layer{
		name:      name,
		shapeType: shapeType,
		codePage:  codePage,
		objects:   objects,
	}
	l.bounds = objectsBounds(objects)
	return l
}

// Name returns the layer name, the shape file name without extension.
func (l *Layer) Name() string { return l.name }

// ShapeType returns the shape type declared in the shape file header.
func (l *Layer) ShapeType() string { return l.shapeType }

// CodePage returns the code page the attributes were decoded with; "" means UTF-8.
func (l *Layer) CodePage() string { return l.codePage }

// Objects returns all objects in the layer.
func (l *Layer) Objects() []Object { return l.objects }

// ObjectCount returns the number of objects in the layer.
func (l *Layer) ObjectCount() int { return len(l.objects) }

// Bounds returns the extent of all objects in the layer.
func (l *Layer) Bounds() Bounds { return l.bounds }

// Object is a geographic feature: one record's geometry with its name and class.
type Object struct {
	name     string
	hasName  bool
	class    string
	geometry Geometry
}

// NewObject builds an object. An empty name means the object is unnamed.
func NewObject(name, class string, geometry Geometry) Object {
	return Object{name: name, hasName: name != "", class: class, geometry: geometry.compact()}
}

// Name returns the object's name and whether it has one.
//
// Records whose name attribute is empty or whitespace have no name.
func (o Object) Name() (string, bool) {
	return o.name, o.hasName
}

// Class returns the raw classification value, e.g. "primary", "building", "cafe".
//
// The value is passed through as found in the dBASE file; no vocabulary is applied.
func (o Object) Class() string {
	return o.class
}

// Geometry returns the spatial representation of the object.
func (o Object) Geometry() Geometry {
	return o.geometry
}

// Geometry represents the spatial data of an object.
type Geometry struct {
	// Type indicates the geometry type (Point, LineString, or Polygon).
	Type GeometryType

	// Coordinates contains [x, y] pairs.
	//
	// For Point: Single coordinate pair
	// For LineString: Array of coordinate pairs forming a line
	// For Polygon: Empty, see Rings
	Coordinates [][]float64

	// Rings contains the polygon rings in file order. Ring orientation is
	// kept as stored; outer rings and holes are not told apart.
	Rings [][][]float64
}

// GeometryType represents the type of geometry.
type GeometryType int

const (
	// GeometryTypePoint represents a single point location.
	GeometryTypePoint GeometryType = iota

	// GeometryTypeLineString represents a line composed of connected points.
	GeometryTypeLineString

	// GeometryTypePolygon represents one or more rings.
	GeometryTypePolygon
)

// String returns the string representation of the geometry type.
func (g GeometryType) String() string {
	switch g {
	case GeometryTypePoint:
		return "Point"
	case GeometryTypeLineString:
		return "LineString"
	case GeometryTypePolygon:
		return "Polygon"
	default:
		return "Unknown"
	}
}

// compact replaces empty coordinate lists with nil, so that a geometry compares
// equal to itself after a round trip through WriteObjects and ReadObjects.
func (g Geometry) compact() Geometry {
	if len(g.Coordinates) == 0 {
		g.Coordinates = nil
	}
	if len(g.Rings) == 0 {
		g.Rings = nil
		return g
	}
	rings := make([][][]float64, len(g.Rings))
	for i, ring := range g.Rings {
		if len(ring) > 0 {
			rings[i] = ring
		}
	}
	g.Rings = rings
	return g
}

// Bounds is an axis-aligned extent in the layer's coordinate system.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Contains returns true if the point is within the bounds.
func (b Bounds) Contains(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// Intersects returns true if these bounds intersect with other bounds.
func (b Bounds) Intersects(other Bounds) bool {
	return !(b.MaxX < other.MinX || b.MinX > other.MaxX ||
		b.MaxY < other.MinY || b.MinY > other.MaxY)
}

// convertObjects converts internal objects to public objects
func convertObjects(objects []spatial.Object) []Object {
	out := make([]Object, len(objects))
	for i, o := range objects {
		obj := Object{class: o.Class, geometry: convertShape(o.Shape)}
		if o.Name != nil {
			obj.name, obj.hasName = *o.Name, true
		}
		out[i] = obj
	}
	return out
}

func convertShape(s spatial.Shape) Geometry {
	switch v := s.(type) {
	case spatial.Point:
		return Geometry{Type: GeometryTypePoint, Coordinates: [][]float64{{v.X, v.Y}}}
	case spatial.Line:
		return Geometry{Type: GeometryTypeLineString, Coordinates: convertPoints(v.Points)}
	case spatial.Polygon:
		var rings [][][]float64
		if len(v.Rings) > 0 {
			rings = make([][][]float64, len(v.Rings))
			for i, ring := range v.Rings {
				rings[i] = convertPoints(ring)
			}
		}
		return Geometry{Type: GeometryTypePolygon, Rings: rings}
	default:
		return Geometry{Type: -1}
	}
}

func convertPoints(points []spatial.Point) [][]float64 {
	if len(points) == 0 {
		return nil
	}
	coords := make([][]float64, len(points))
	for i, p := range points {
		coords[i] = []float64{p.X, p.Y}
	}
	return coords
}
