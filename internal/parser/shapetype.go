package parser

// ShapeType is the shape type code stored in the file header and in every record
type ShapeType int32

// Shape type codes from the ESRI Shapefile Technical Description.
const (
	ShapeNull        ShapeType = 0
	ShapePoint       ShapeType = 1
	ShapePolyLine    ShapeType = 3
	ShapePolygon     ShapeType = 5
	ShapeMultiPoint  ShapeType = 8
	ShapePointZ      ShapeType = 11
	ShapePolyLineZ   ShapeType = 13
	ShapePolygonZ    ShapeType = 15
	ShapeMultiPointZ ShapeType = 18
	ShapePointM      ShapeType = 21
	ShapePolyLineM   ShapeType = 23
	ShapePolygonM    ShapeType = 25
	ShapeMultiPointM ShapeType = 28
	ShapeMultiPatch  ShapeType = 31
)

var shapeTypeNames = map[ShapeType]string{
	ShapeNull:        "Null",
	ShapePoint:       "Point",
	ShapePolyLine:    "PolyLine",
	ShapePolygon:     "Polygon",
	ShapeMultiPoint:  "MultiPoint",
	ShapePointZ:      "PointZ",
	ShapePolyLineZ:   "PolyLineZ",
	ShapePolygonZ:    "PolygonZ",
	ShapeMultiPointZ: "MultiPointZ",
	ShapePointM:      "PointM",
	ShapePolyLineM:   "PolyLineM",
	ShapePolygonM:    "PolygonM",
	ShapeMultiPointM: "MultiPointM",
	ShapeMultiPatch:  "MultiPatch",
}

// ShapeTypeFromCode maps a wire code to a ShapeType.
// Codes outside the defined set return *ErrUnknownShapeType; there is no fallback.
func ShapeTypeFromCode(code int32, offset int64) (ShapeType, error) {
	t := ShapeType(code)
	if _, ok := shapeTypeNames[t]; !ok {
		return 0, &ErrUnknownShapeType{Code: code, Offset: offset}
	}
	return t, nil
}

// String returns the name used in the technical description.
func (t ShapeType) String() string {
	if name, ok := shapeTypeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Supported reports whether records of this type can be decoded.
func (t ShapeType) Supported() bool {
	switch t {
	case ShapeNull, ShapePoint, ShapePolyLine, ShapePolygon:
		return true
	default:
		return false
	}
}
