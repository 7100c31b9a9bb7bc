package imaging

import "testing"

func TestWipeRectangleCountsClippedPixels(t *testing.T) {
	img := NewImage(RectangleSize{Width: 4, Height: 4}, FormatRGB24, true, White, AbsoluteThreshold(0.33))
	n := WipeRectangle(img, Rectangle{Vertex: [2]Point{{-2, -2}, {1, 1}}}, Black)
	if n != 4 {
		t.Fatalf("expected 4 pixels wiped, got %d", n)
	}
	if img.GetPixel(0, 0) != Black || img.GetPixel(3, 3) != White {
		t.Fatal("wipe applied to the wrong pixels")
	}
}

func TestCenterImageCropsLargerSource(t *testing.T) {
	src := NewImage(RectangleSize{Width: 6, Height: 2}, FormatRGB24, true, Black, AbsoluteThreshold(0.33))
	dst := NewImage(RectangleSize{Width: 10, Height: 10}, FormatRGB24, true, White, AbsoluteThreshold(0.33))
	CenterImage(src, dst, Point{X: 0, Y: 0}, RectangleSize{Width: 4, Height: 4})
	// The 2-row source is centred vertically in the 4-row slot (rows 1-2).
	if dst.GetPixel(0, 1) != Black {
		t.Fatal("expected cropped source to paint black inside the slot")
	}
	if dst.GetPixel(5, 5) != White {
		t.Fatal("expected background outside the slot to remain white")
	}
}

func TestStretchPreservesEdgeSamples(t *testing.T) {
	src := NewImage(RectangleSize{Width: 2, Height: 2}, FormatRGB24, false, White, AbsoluteThreshold(0.33))
	src.SetPixel(0, 0, Black)
	src.SetPixel(1, 0, Black)
	src.SetPixel(0, 1, White)
	src.SetPixel(1, 1, White)
	out := Stretch(src, RectangleSize{Width: 4, Height: 4}, InterpolateNearest)
	if out.Width != 4 || out.Height != 4 {
		t.Fatalf("unexpected stretched size %dx%d", out.Width, out.Height)
	}
	if out.GetPixel(0, 0) != Black {
		t.Fatal("expected top row to stay black after stretch")
	}
}

func TestMirrorHorizontal(t *testing.T) {
	img := NewImage(RectangleSize{Width: 4, Height: 1}, FormatRGB24, true, White, AbsoluteThreshold(0.33))
	img.SetPixel(0, 0, Black)
	Mirror(img, true, false)
	if img.GetPixel(3, 0) != Black || img.GetPixel(0, 0) != White {
		t.Fatal("expected horizontal mirror to swap the marked pixel to the opposite edge")
	}
}

func TestFlipRotate90Clockwise(t *testing.T) {
	src := NewImage(RectangleSize{Width: 3, Height: 2}, FormatRGB24, false, White, AbsoluteThreshold(0.33))
	src.SetPixel(0, 0, Black)
	out := FlipRotate90(src, 1)
	if out.Width != 2 || out.Height != 3 {
		t.Fatalf("expected rotated size 2x3, got %dx%d", out.Width, out.Height)
	}
	if out.GetPixel(1, 0) != Black {
		t.Fatalf("expected (0,0) to rotate to (1,0), pixel was %+v", out.GetPixel(1, 0))
	}
}
