package imaging

import "testing"

func TestInterpolateNearestRounds(t *testing.T) {
	img := NewImage(RectangleSize{Width: 2, Height: 1}, FormatRGB24, false, White, AbsoluteThreshold(0.33))
	img.SetPixel(1, 0, Black)
	if InterpolateNearest(img, 0.6, 0) != Black {
		t.Fatal("expected rounding 0.6 to sample column 1")
	}
}

func TestInterpolateBilinearMidpoint(t *testing.T) {
	img := NewImage(RectangleSize{Width: 2, Height: 1}, FormatRGB24, false, White, AbsoluteThreshold(0.33))
	img.SetPixel(0, 0, Pixel{R: 0, G: 0, B: 0})
	img.SetPixel(1, 0, Pixel{R: 100, G: 100, B: 100})
	p := InterpolateBilinear(img, 0.5, 0)
	if p.R != 50 {
		t.Fatalf("expected midpoint blend of 50, got %d", p.R)
	}
}

func TestInterpolatorByNameResolvesDefault(t *testing.T) {
	if f := InterpolatorByName(""); f == nil {
		t.Fatal("expected a non-nil default interpolator")
	}
	if f := InterpolatorByName("unknown"); f == nil {
		t.Fatal("expected a non-nil fallback interpolator")
	}
}
