package imaging

import "testing"

func TestGetPixelOutOfBoundsIsWhite(t *testing.T) {
	img := NewImage(RectangleSize{Width: 4, Height: 4}, FormatRGB24, true, Black, AbsoluteThreshold(0.33))
	p := img.GetPixel(-1, 0)
	if p != White {
		t.Fatalf("expected White out of bounds, got %+v", p)
	}
}

func TestSetPixelOutOfBoundsNoOp(t *testing.T) {
	img := NewImage(RectangleSize{Width: 4, Height: 4}, FormatRGB24, true, White, AbsoluteThreshold(0.33))
	img.SetPixel(100, 100, Black)
	img.SetPixel(0, 0, Black)
	if img.GetPixel(0, 0) != Black {
		t.Fatal("expected in-bounds SetPixel to take effect")
	}
}

func TestMonoWhiteRoundTrip(t *testing.T) {
	img := NewImage(RectangleSize{Width: 8, Height: 1}, FormatMonoWhite, true, White, AbsoluteThreshold(0.33))
	img.SetPixel(3, 0, Black)
	if img.GetPixel(3, 0) != Black {
		t.Fatalf("expected black at (3,0)")
	}
	if img.GetPixel(0, 0) != White {
		t.Fatalf("expected white elsewhere")
	}
}

func TestClipRectangleIntersection(t *testing.T) {
	img := NewImage(RectangleSize{Width: 10, Height: 10}, FormatRGB24, false, White, AbsoluteThreshold(0.33))
	r := Rectangle{Vertex: [2]Point{{-5, -5}, {5, 5}}}
	c := ClipRectangle(img, r)
	if c.Vertex[0] != (Point{0, 0}) || c.Vertex[1] != (Point{5, 5}) {
		t.Fatalf("unexpected clip: %+v", c)
	}
}
