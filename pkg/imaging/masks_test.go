package imaging

import "testing"

type noopLogger struct{}

func (noopLogger) Verbose(level Level, format string, args ...any) {}

func TestApplyMasksKeepsInsideWipesOutside(t *testing.T) {
	img := NewImage(RectangleSize{Width: 10, Height: 10}, FormatRGB24, true, Black, AbsoluteThreshold(0.33))
	mask := Mask{Rect: Rectangle{Vertex: [2]Point{{2, 2}, {5, 5}}}, Valid: true}
	ApplyMasks(img, []Mask{mask}, White)

	if img.GetPixel(3, 3) != Black {
		t.Fatal("expected pixels inside the mask to survive")
	}
	if img.GetPixel(0, 0) != White {
		t.Fatal("expected pixels outside the mask to be wiped")
	}
}

func TestApplyBorderWipesOutsideInsetRectangle(t *testing.T) {
	img := NewImage(RectangleSize{Width: 20, Height: 20}, FormatRGB24, true, Black, AbsoluteThreshold(0.33))
	ApplyBorder(img, Border{Left: 5, Top: 5, Right: 5, Bottom: 5}, White)

	if img.GetPixel(10, 10) != Black {
		t.Fatal("expected the interior to survive")
	}
	if img.GetPixel(0, 0) != White {
		t.Fatal("expected the border strip to be wiped")
	}
}

func TestApplyBorderZeroIsNoOp(t *testing.T) {
	img := NewImage(RectangleSize{Width: 10, Height: 10}, FormatRGB24, true, Black, AbsoluteThreshold(0.33))
	ApplyBorder(img, Border{}, White)
	if img.GetPixel(0, 0) != Black {
		t.Fatal("expected a zero border to leave the image untouched")
	}
}

func TestDetectBorderFindsLeftMargin(t *testing.T) {
	img := NewImage(RectangleSize{Width: 40, Height: 40}, FormatRGB24, true, White, AbsoluteThreshold(0.33))
	WipeRectangle(img, Rectangle{Vertex: [2]Point{{10, 0}, {29, 39}}}, Black)

	p := BorderScanParams{
		Size:              RectangleSize{Width: 5, Height: 5},
		Step:              5,
		Threshold:         5,
		AbsBlackThreshold: 127,
		ScanLeft:          true,
	}
	b := DetectBorder(img, FullImage(img), p)
	if b.Left != 10 {
		t.Fatalf("expected a left margin of 10, got %d", b.Left)
	}
	if b.Right != 0 || b.Top != 0 || b.Bottom != 0 {
		t.Fatalf("expected unscanned edges to stay zero, got %+v", b)
	}
}

func TestCenterMaskMovesContent(t *testing.T) {
	img := NewImage(RectangleSize{Width: 20, Height: 20}, FormatRGB24, true, White, AbsoluteThreshold(0.33))
	area := Rectangle{Vertex: [2]Point{{0, 0}, {3, 3}}}
	WipeRectangle(img, area, Black)

	CenterMask(img, noopLogger{}, Point{X: 10, Y: 10}, area)
	if img.GetPixel(9, 9) != Black {
		t.Fatal("expected the content to have moved to the new centre")
	}
	if img.GetPixel(0, 0) != White {
		t.Fatal("expected the old location to have been wiped")
	}
}

func TestCenterMaskSkipsWhenTargetDoesNotFit(t *testing.T) {
	img := NewImage(RectangleSize{Width: 10, Height: 10}, FormatRGB24, true, White, AbsoluteThreshold(0.33))
	area := Rectangle{Vertex: [2]Point{{0, 0}, {3, 3}}}
	WipeRectangle(img, area, Black)

	CenterMask(img, noopLogger{}, Point{X: 9, Y: 9}, area) // would push the target rectangle off the edge
	if img.GetPixel(0, 0) != Black {
		t.Fatal("expected the content to remain in place when the target doesn't fit")
	}
}
