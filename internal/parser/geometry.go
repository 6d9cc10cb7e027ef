package parser

// Point is a single x/y coordinate. It is also the Point shape variant.
type Point struct {
	X float64
	Y float64
}

// Range is a min/max pair taken verbatim from the file; Min <= Max is not checked.
type Range struct {
	Min float64
	Max float64
}

// BoundingRectangle is the x/y extent recorded in a header or a multi-part shape
type BoundingRectangle struct {
	X Range
	Y Range
}

// Geometry is one decoded record payload: Null, Point, PolyLine or Polygon.
type Geometry interface {
	// Type returns the shape type the payload was decoded as
	Type() ShapeType
}

// Null is a record without geometry
type Null struct{}

// MultiPart is the payload shared by PolyLine and Polygon: a flat point array
// split into parts by ascending start offsets.
type MultiPart struct {
	Box    BoundingRectangle
	Parts  []int32
	Points []Point
}

// PolyLine is one or more open line segments
type PolyLine struct {
	MultiPart
}

// Polygon is one or more rings, outer and holes in file order
type Polygon struct {
	MultiPart
}

func (Null) Type() ShapeType     { return ShapeNull }
func (Point) Type() ShapeType    { return ShapePoint }
func (PolyLine) Type() ShapeType { return ShapePolyLine }
func (Polygon) Type() ShapeType  { return ShapePolygon }

// Split returns one point group per part. Group i is Points[Parts[i]:Parts[i+1]],
// the last group runs to the end of Points. The groups share memory with Points.
// Every offset must index into Points, so no group is empty unless Points is.
//
// The groups must account for every point exactly once; anything else is
// reported as *ErrPartReconstructionMismatch rather than truncated or padded.
func (m MultiPart) Split() ([][]Point, error) {
	return SplitParts(m.Parts, m.Points)
}

// SplitParts implements MultiPart.Split for a bare offset and point array.
func SplitParts(parts []int32, points []Point) ([][]Point, error) {
	n := len(points)
	mismatch := func(covered int, reason string) error {
		return &ErrPartReconstructionMismatch{
			Parts:     append([]int32(nil), parts...),
			NumPoints: n,
			Covered:   covered,
			Reason:    reason,
		}
	}

	if len(parts) == 0 {
		if n != 0 {
			return nil, mismatch(0, "")
		}
		return nil, nil
	}

	for i, off := range parts {
		// An offset must index a point. The only exception is a single
		// empty part over an empty point array.
		if off < 0 || int(off) > n || (int(off) == n && n > 0) {
			return nil, mismatch(0, "part offset out of range")
		}
		if i > 0 && off <= parts[i-1] {
			return nil, mismatch(0, "part offsets not strictly ascending")
		}
	}

	groups := make([][]Point, 0, len(parts))
	covered := 0
	for i := 0; i+1 < len(parts); i++ {
		group := points[parts[i]:parts[i+1]]
		covered += len(group)
		groups = append(groups, group)
	}
	last := points[parts[len(parts)-1]:]
	covered += len(last)
	groups = append(groups, last)

	if covered != n {
		return nil, mismatch(covered, "")
	}
	return groups, nil
}

// decodeNull consumes nothing.
func decodeNull(_ *Cursor) (Geometry, error) {
	return Null{}, nil
}

func decodePoint(c *Cursor) (Geometry, error) {
	return readPoint(c)
}

func readPoint(c *Cursor) (Point, error) {
	x, err := c.readFloat64LE()
	if err != nil {
		return Point{}, err
	}
	y, err := c.readFloat64LE()
	if err != nil {
		return Point{}, err
	}
	return Point{X: x, Y: y}, nil
}

// readBoundingRectangle reads Xmin, Ymin, Xmax, Ymax.
func readBoundingRectangle(c *Cursor) (BoundingRectangle, error) {
	var v [4]float64
	for i := range v {
		f, err := c.readFloat64LE()
		if err != nil {
			return BoundingRectangle{}, err
		}
		v[i] = f
	}
	return BoundingRectangle{
		X: Range{Min: v[0], Max: v[2]},
		Y: Range{Min: v[1], Max: v[3]},
	}, nil
}

const (
	// multiPartFixedBytes is shape type + box + part count + point count.
	multiPartFixedBytes = 4 + 32 + 4 + 4

	// maxPreallocated caps the capacity reserved from a declared count.
	maxPreallocated = 1 << 16
)

// decodeMultiPart reads Box, NumParts, NumPoints, Parts[NumParts], Points[NumPoints].
// contentBytes is the record's declared payload size, used to reject counts that
// could not fit before anything is allocated.
func decodeMultiPart(c *Cursor, contentBytes int64) (MultiPart, error) {
	start := c.Consumed() - 4 // shape type already read

	box, err := readBoundingRectangle(c)
	if err != nil {
		return MultiPart{}, err
	}
	numParts, err := c.readUint32LE()
	if err != nil {
		return MultiPart{}, err
	}
	numPoints, err := c.readUint32LE()
	if err != nil {
		return MultiPart{}, err
	}

	need := int64(multiPartFixedBytes) + 4*int64(numParts) + 16*int64(numPoints)
	if need > contentBytes {
		return MultiPart{}, &ErrFrameLengthMismatch{
			Scope:    FrameRecord,
			Offset:   start,
			Expected: contentBytes,
			Actual:   need,
		}
	}

	// The declared counts are only bounded by a declared length, so the
	// arrays grow as values are actually read.
	parts := make([]int32, 0, min(numParts, maxPreallocated))
	for i := uint32(0); i < numParts; i++ {
		off, err := c.readInt32LE()
		if err != nil {
			return MultiPart{}, err
		}
		parts = append(parts, off)
	}
	points := make([]Point, 0, min(numPoints, maxPreallocated))
	for i := uint32(0); i < numPoints; i++ {
		p, err := readPoint(c)
		if err != nil {
			return MultiPart{}, err
		}
		points = append(points, p)
	}

	mp := MultiPart{Box: box, Parts: parts, Points: points}
	if _, err := mp.Split(); err != nil {
		return MultiPart{}, err
	}
	return mp, nil
}

func decodePolyLine(c *Cursor, contentBytes int64) (Geometry, error) {
	mp, err := decodeMultiPart(c, contentBytes)
	if err != nil {
		return nil, err
	}
	return PolyLine{MultiPart: mp}, nil
}

func decodePolygon(c *Cursor, contentBytes int64) (Geometry, error) {
	mp, err := decodeMultiPart(c, contentBytes)
	if err != nil {
		return nil, err
	}
	return Polygon{MultiPart: mp}, nil
}
