package shapefile

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// WriteGeoJSON writes objects as a GeoJSON FeatureCollection.
//
// Each feature carries a "class" property and, for named objects, a "name"
// property. Coordinates are written as stored; no reprojection happens.
func WriteGeoJSON(w io.Writer, objects []Object) error {
	fc := geojson.FeatureCollection{
		Features: make([]*geojson.Feature, 0, len(objects)),
	}
	for i, o := range objects {
		g, err := o.Geom()
		if err != nil {
			return errors.Wrapf(err, "object %d", i)
		}
		props := map[string]interface{}{"class": o.Class()}
		if name, ok := o.Name(); ok {
			props["name"] = name
		}
		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry:   g,
			Properties: props,
		})
	}

	data, err := json.Marshal(&fc)
	if err != nil {
		return errors.Wrap(err, "marshal feature collection")
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, "write feature collection")
	}
	return nil
}
