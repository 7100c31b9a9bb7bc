package imaging

import "testing"

func TestSizeOfInclusive(t *testing.T) {
	r := Rectangle{Vertex: [2]Point{{X: 2, Y: 3}, {X: 5, Y: 3}}}
	size := SizeOf(r)
	if size.Width != 4 || size.Height != 1 {
		t.Fatalf("expected 4x1, got %dx%d", size.Width, size.Height)
	}
}

func TestNormalizeSortsVertices(t *testing.T) {
	r := Rectangle{Vertex: [2]Point{{X: 5, Y: 5}, {X: 1, Y: 1}}}
	n := Normalize(r)
	if n.Vertex[0] != (Point{X: 1, Y: 1}) || n.Vertex[1] != (Point{X: 5, Y: 5}) {
		t.Fatalf("unexpected normalized rectangle: %+v", n)
	}
}

func TestPointInRectangle(t *testing.T) {
	r := Rectangle{Vertex: [2]Point{{X: 0, Y: 0}, {X: 9, Y: 9}}}
	if !PointInRectangle(Point{X: 5, Y: 5}, r) {
		t.Fatal("expected (5,5) to be inside")
	}
	if PointInRectangle(Point{X: 10, Y: 0}, r) {
		t.Fatal("expected (10,0) to be outside")
	}
}

func TestRectanglesOverlap(t *testing.T) {
	a := Rectangle{Vertex: [2]Point{{0, 0}, {10, 10}}}
	b := Rectangle{Vertex: [2]Point{{5, 5}, {15, 15}}}
	c := Rectangle{Vertex: [2]Point{{20, 20}, {30, 30}}}
	if !RectanglesOverlap(a, b) {
		t.Fatal("expected a and b to overlap")
	}
	if RectanglesOverlap(a, c) {
		t.Fatal("expected a and c not to overlap")
	}
}

func TestScanRectangleOrder(t *testing.T) {
	r := Rectangle{Vertex: [2]Point{{0, 0}, {1, 1}}}
	var visited []Point
	ScanRectangle(r, func(x, y int) {
		visited = append(visited, Point{X: x, Y: y})
	})
	want := []Point{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	if len(visited) != len(want) {
		t.Fatalf("expected %d points, got %d", len(want), len(visited))
	}
	for i, p := range want {
		if visited[i] != p {
			t.Fatalf("at index %d: expected %+v, got %+v", i, p, visited[i])
		}
	}
}
