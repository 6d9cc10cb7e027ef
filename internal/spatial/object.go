// Package spatial pairs decoded shape records with their attribute rows.
package spatial

// Kind identifies which variant a Shape is
type Kind int

const (
	KindPoint Kind = iota
	KindLine
	KindPolygon
)

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "Point"
	case KindLine:
		return "Line"
	case KindPolygon:
		return "Polygon"
	default:
		return "Unknown"
	}
}

// Shape is the geometry of an Object: Point, Line or Polygon.
type Shape interface {
	Kind() Kind
}

// Point is a single location. It doubles as the coordinate type of Line and Polygon.
type Point struct {
	X float64
	Y float64
}

// Line is an open sequence of points
type Line struct {
	Points []Point
}

// Polygon is a sequence of rings in file order. Ring orientation is not
// normalized and rings are not classified into outer boundaries and holes.
type Polygon struct {
	Rings [][]Point
}

func (Point) Kind() Kind   { return KindPoint }
func (Line) Kind() Kind    { return KindLine }
func (Polygon) Kind() Kind { return KindPolygon }

// Object is one geographic feature: a record's geometry with its attributes.
type Object struct {
	// Name is nil when the name attribute is missing or empty
	Name *string
	// Class is the raw classification value, carried opaquely
	Class string
	Shape Shape
}

// HasName reports whether the object carries a non-empty name.
func (o Object) HasName() bool {
	return o.Name != nil
}

// NamedOnly returns the objects that have a name, preserving order.
func NamedOnly(objects []Object) []Object {
	named := make([]Object, 0, len(objects))
	for _, o := range objects {
		if o.HasName() {
			named = append(named, o)
		}
	}
	return named
}
