package imaging

import "testing"

func TestFloodFillClearsConnectedRegion(t *testing.T) {
	img := NewImage(RectangleSize{Width: 5, Height: 5}, FormatRGB24, true, Black, AbsoluteThreshold(0.33))
	// a white border around an all-black interior keeps the fill inside.
	for x := 0; x < 5; x++ {
		img.SetPixel(x, 0, White)
		img.SetPixel(x, 4, White)
	}
	for y := 0; y < 5; y++ {
		img.SetPixel(0, y, White)
		img.SetPixel(4, y, White)
	}

	n := FloodFill(img, Point{X: 2, Y: 2}, White, 0, 127, 100)
	if n == 0 {
		t.Fatal("expected flood fill to clear at least the seed pixel")
	}
	if img.GetPixel(2, 2) != White {
		t.Fatal("expected seed pixel to become white")
	}
	if img.GetPixel(1, 1) != White {
		t.Fatal("expected interior pixel to become white")
	}
}

func TestFloodFillStopsOutsideMaskRange(t *testing.T) {
	img := NewImage(RectangleSize{Width: 3, Height: 1}, FormatRGB24, false, White, AbsoluteThreshold(0.33))
	img.SetPixel(0, 0, Black)
	img.SetPixel(1, 0, White)
	img.SetPixel(2, 0, Black)

	n := FloodFill(img, Point{X: 0, Y: 0}, White, 0, 10, 0)
	if n != 1 {
		t.Fatalf("expected only the seed pixel to be cleared with zero intensity, got %d", n)
	}
	if img.GetPixel(2, 0) != Black {
		t.Fatal("expected the disconnected black pixel to remain untouched")
	}
}
