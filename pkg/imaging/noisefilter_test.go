package imaging

import "testing"

func TestNoisefilterClearsSmallCluster(t *testing.T) {
	img := NewImage(RectangleSize{Width: 10, Height: 10}, FormatRGB24, true, White, AbsoluteThreshold(0.33))
	img.SetPixel(5, 5, Black)
	img.SetPixel(6, 5, Black) // cluster of 2 pixels

	cleared := Noisefilter(img, NoisefilterParams{Intensity: 4, WhiteThreshold: AbsoluteThreshold(0.9)})
	if cleared != 1 {
		t.Fatalf("expected exactly one cluster cleared, got %d", cleared)
	}
	if img.GetPixel(5, 5) != White || img.GetPixel(6, 5) != White {
		t.Fatal("expected the small cluster to be cleared to white")
	}
}

func TestNoisefilterKeepsLargeCluster(t *testing.T) {
	img := NewImage(RectangleSize{Width: 10, Height: 10}, FormatRGB24, true, White, AbsoluteThreshold(0.33))
	WipeRectangle(img, Rectangle{Vertex: [2]Point{{0, 0}, {9, 9}}}, Black)

	cleared := Noisefilter(img, NoisefilterParams{Intensity: 4, WhiteThreshold: AbsoluteThreshold(0.9)})
	if cleared != 0 {
		t.Fatalf("expected no clusters cleared for a full-page block, got %d", cleared)
	}
	if img.GetPixel(5, 5) != Black {
		t.Fatal("expected the large cluster to survive")
	}
}
