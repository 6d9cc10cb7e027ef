package shapefile

// Stats counts objects by geometry type.
type Stats struct {
	Total    int
	Named    int
	Points   int
	Lines    int
	Polygons int
}

// Summarize counts objects.
func Summarize(objects []Object) Stats {
	var s Stats
	for _, o := range objects {
		s.Total++
		if _, ok := o.Name(); ok {
			s.Named++
		}
		switch o.Geometry().Type {
		case GeometryTypePoint:
			s.Points++
		case GeometryTypeLineString:
			s.Lines++
		case GeometryTypePolygon:
			s.Polygons++
		}
	}
	return s
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.Total += other.Total
	s.Named += other.Named
	s.Points += other.Points
	s.Lines += other.Lines
	s.Polygons += other.Polygons
}
