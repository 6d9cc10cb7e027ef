package shapefile

import (
	"bufio"
	"encoding/gob"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// CacheFileExt is the extension used for persisted object files.
const CacheFileExt = ".shpobj"

const persistVersion = 1

// persistedFile is the gob payload inside the zstd frame
type persistedFile struct {
	Version int
	Objects []persistedObject
}

type persistedObject struct {
	Name    string
	HasName bool
	Class   string
	Type    GeometryType
	Coords  [][]float64
	Rings   [][][]float64
}

// WriteObjects writes objects as a zstd-compressed gob stream.
// ReadObjects returns exactly the objects written, in order.
func WriteObjects(w io.Writer, objects []Object) error {
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return errors.Wrap(err, "create zstd writer")
	}

	payload := persistedFile{
		Version: persistVersion,
		Objects: make([]persistedObject, len(objects)),
	}
	for i, o := range objects {
		payload.Objects[i] = persistedObject{
			Name:    o.name,
			HasName: o.hasName,
			Class:   o.class,
			Type:    o.geometry.Type,
			Coords:  o.geometry.Coordinates,
			Rings:   o.geometry.Rings,
		}
	}

	if err := gob.NewEncoder(zw).Encode(&payload); err != nil {
		zw.Close()
		return errors.Wrap(err, "encode objects")
	}
	return errors.Wrap(zw.Close(), "flush zstd writer")
}

// ReadObjects reads a stream written by WriteObjects.
func ReadObjects(r io.Reader) ([]Object, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "create zstd reader")
	}
	defer zr.Close()

	var payload persistedFile
	if err := gob.NewDecoder(zr).Decode(&payload); err != nil {
		return nil, errors.Wrap(err, "decode objects")
	}
	if payload.Version != persistVersion {
		return nil, errors.Errorf("unsupported object file version %d", payload.Version)
	}

	objects := make([]Object, len(payload.Objects))
	for i, p := range payload.Objects {
		objects[i] = Object{
			name:    p.Name,
			hasName: p.HasName,
			class:   p.Class,
			geometry: Geometry{
				Type:        p.Type,
				Coordinates: p.Coords,
				Rings:       p.Rings,
			},
		}
	}
	return objects, nil
}

// SaveObjects writes objects to path, replacing any existing file.
func SaveObjects(path string, objects []Object) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	bw := bufio.NewWriter(f)
	if err := WriteObjects(bw, objects); err != nil {
		f.Close()
		return errors.Wrapf(err, "write %s", path)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return errors.Wrapf(err, "write %s", path)
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}

// LoadObjects reads objects saved with SaveObjects.
func LoadObjects(path string) ([]Object, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	objects, err := ReadObjects(bufio.NewReader(f))
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return objects, nil
}
