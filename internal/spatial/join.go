package spatial

import (
	"fmt"

	"github.com/golang/glog"

	"github.com/beetlebugorg/shapefile/internal/parser"
)

// JoinOptions names the dBASE fields an Object draws its attributes from
type JoinOptions struct {
	// NameField holds the feature name. A missing field yields unnamed objects;
	// an empty NameField disables names altogether.
	NameField string

	// ClassField holds the feature classification. It must exist when set;
	// an empty ClassField leaves Class empty.
	ClassField string
}

// DefaultJoinOptions returns the field names used by OpenStreetMap extracts
func DefaultJoinOptions() JoinOptions {
	return JoinOptions{
		NameField:  "name",
		ClassField: "fclass",
	}
}

// Join pairs shape record i with attribute record i to build Object i.
//
// Both files must hold the same number of records. Geometry is copied out of
// the decoded files, so the result does not alias shp.
func Join(shp *parser.ShpFile, dbf *parser.DbaseFile, opts JoinOptions) ([]Object, error) {
	if len(shp.Records) != len(dbf.Records) {
		return nil, &ErrRecordCountMismatch{ShpCount: len(shp.Records), DbfCount: len(dbf.Records)}
	}

	nameIdx := -1
	if opts.NameField != "" {
		if i, ok := dbf.Header.IndexOf(opts.NameField); ok {
			nameIdx = i
		} else {
			glog.V(2).Infof("name field %q not present, objects will be unnamed", opts.NameField)
		}
	}
	classIdx := -1
	if opts.ClassField != "" {
		i, ok := dbf.Header.IndexOf(opts.ClassField)
		if !ok {
			return nil, &ErrMissingField{Name: opts.ClassField}
		}
		classIdx = i
	}

	objects := make([]Object, 0, len(shp.Records))
	for i, rec := range shp.Records {
		shape, err := convertShape(i, rec)
		if err != nil {
			return nil, err
		}

		entries := dbf.Records[i].Entries
		obj := Object{Shape: shape}
		if nameIdx >= 0 && nameIdx < len(entries) && entries[nameIdx] != "" {
			name := entries[nameIdx]
			obj.Name = &name
		}
		if classIdx >= 0 && classIdx < len(entries) {
			obj.Class = entries[classIdx]
		}
		objects = append(objects, obj)
	}

	glog.V(2).Infof("joined %d objects", len(objects))
	return objects, nil
}

// convertShape maps a decoded record onto an Object shape variant.
func convertShape(index int, rec parser.ShapeRecord) (Shape, error) {
	switch g := rec.Geometry.(type) {
	case parser.Point:
		return Point{X: g.X, Y: g.Y}, nil

	case parser.PolyLine:
		if len(g.Parts) > 1 {
			return nil, &ErrMultiPartLineUnsupported{Record: index, Parts: len(g.Parts)}
		}
		groups, err := g.Split()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", index, err)
		}
		var points []Point
		if len(groups) == 1 {
			points = copyPoints(groups[0])
		}
		return Line{Points: points}, nil

	case parser.Polygon:
		groups, err := g.Split()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", index, err)
		}
		rings := make([][]Point, len(groups))
		for j, group := range groups {
			rings[j] = copyPoints(group)
		}
		return Polygon{Rings: rings}, nil

	default:
		code := int32(parser.ShapeNull)
		if rec.Geometry != nil {
			code = int32(rec.Geometry.Type())
		}
		return nil, &parser.ErrUnsupportedShapeType{Code: code, Record: rec.Header.RecordNumber}
	}
}

func copyPoints(src []parser.Point) []Point {
	dst := make([]Point, len(src))
	for i, p := range src {
		dst[i] = Point{X: p.X, Y: p.Y}
	}
	return dst
}
