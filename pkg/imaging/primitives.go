// Package imaging implements the geometric algebra, pixel-format-polymorphic
// image abstraction, interpolation, detectors, filters and transforms used to
// post-process scanned document sheets.
package imaging

// Point is an integer coordinate.
type Point struct {
	X, Y int
}

// Origin is the zero point.
var Origin = Point{0, 0}

// PointInfinity is a sentinel meaning "unbounded".
var PointInfinity = Point{X: MaxCoord, Y: MaxCoord}

// MaxCoord stands in for the reference's INT_MAX sentinel.
const MaxCoord = int(^uint(0) >> 1)

// Delta is a signed horizontal/vertical displacement.
type Delta struct {
	Horizontal, Vertical int
}

// ShiftPoint returns p translated by d.
func ShiftPoint(p Point, d Delta) Point {
	return Point{X: p.X + d.Horizontal, Y: p.Y + d.Vertical}
}

// RectangleSize is a width/height pair.
type RectangleSize struct {
	Width, Height int
}

// Rectangle is a two-vertex, end-inclusive rectangle. It may be denormalised
// (Vertex[0] need not be the top-left corner).
type Rectangle struct {
	Vertex [2]Point
}

// RectangleFromSize builds a normalised rectangle of the given size anchored
// at origin.
func RectangleFromSize(origin Point, s RectangleSize) Rectangle {
	return Rectangle{Vertex: [2]Point{
		origin,
		{X: origin.X + s.Width - 1, Y: origin.Y + s.Height - 1},
	}}
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// SizeOf returns the inclusive size of r: |Δx|+1 by |Δy|+1.
func SizeOf(r Rectangle) RectangleSize {
	return RectangleSize{
		Width:  absInt(r.Vertex[1].X-r.Vertex[0].X) + 1,
		Height: absInt(r.Vertex[1].Y-r.Vertex[0].Y) + 1,
	}
}

// Normalize sorts the two vertices component-wise so Vertex[0] <= Vertex[1].
func Normalize(r Rectangle) Rectangle {
	x0, x1 := r.Vertex[0].X, r.Vertex[1].X
	y0, y1 := r.Vertex[0].Y, r.Vertex[1].Y
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return Rectangle{Vertex: [2]Point{{X: x0, Y: y0}, {X: x1, Y: y1}}}
}

// PointInRectangle reports whether p lies within r, inclusive on both
// vertices. r need not be normalised.
func PointInRectangle(p Point, r Rectangle) bool {
	n := Normalize(r)
	return p.X >= n.Vertex[0].X && p.X <= n.Vertex[1].X &&
		p.Y >= n.Vertex[0].Y && p.Y <= n.Vertex[1].Y
}

// RectanglesOverlap reports whether any vertex of normalised a lies in b.
func RectanglesOverlap(a, b Rectangle) bool {
	na := Normalize(a)
	return PointInRectangle(na.Vertex[0], b) || PointInRectangle(na.Vertex[1], b)
}

// CountPixels returns w*h of the normalised rectangle.
func CountPixels(r Rectangle) int {
	s := SizeOf(Normalize(r))
	return s.Width * s.Height
}

// ScanRectangle calls visit(x, y) for every integer point in r, y outer, x
// inner, inclusive bounds, per the scan_rectangle contract.
func ScanRectangle(r Rectangle, visit func(x, y int)) {
	n := Normalize(r)
	for y := n.Vertex[0].Y; y <= n.Vertex[1].Y; y++ {
		for x := n.Vertex[0].X; x <= n.Vertex[1].X; x++ {
			visit(x, y)
		}
	}
}
