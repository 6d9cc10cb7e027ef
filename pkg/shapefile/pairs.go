package shapefile

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Pair names the files of one layer.
type Pair struct {
	Name string // File stem shared by both files
	Shp  string
	Dbf  string
}

// FindPairs returns every .shp file in dir that has a .dbf companion with the
// same stem, sorted by file name. Extension case is ignored. Shape files
// without attributes are skipped.
func FindPairs(dir string) ([]Pair, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "read directory %s", dir)
	}

	dbfs := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.EqualFold(filepath.Ext(name), ".dbf") {
			dbfs[strings.TrimSuffix(name, filepath.Ext(name))] = filepath.Join(dir, name)
		}
	}

	var pairs []Pair
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.EqualFold(filepath.Ext(name), ".shp") {
			continue
		}
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		dbf, ok := dbfs[stem]
		if !ok {
			continue
		}
		pairs = append(pairs, Pair{Name: stem, Shp: filepath.Join(dir, name), Dbf: dbf})
	}
	return pairs, nil
}
