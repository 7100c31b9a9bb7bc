package imaging

import "testing"

func TestBlurfilterErasesSparseBlock(t *testing.T) {
	img := NewImage(RectangleSize{Width: 8, Height: 8}, FormatRGB24, true, White, AbsoluteThreshold(0.33))
	img.SetPixel(0, 0, Black) // a single speck in an otherwise-white 4x4 block

	erased := Blurfilter(img, BlurfilterParams{BlockSize: RectangleSize{Width: 4, Height: 4}, Intensity: 0.1})
	if erased == 0 {
		t.Fatal("expected the sparse block to be erased")
	}
	if img.GetPixel(0, 0) != White {
		t.Fatal("expected the speck to be wiped white")
	}
}

func TestBlurfilterKeepsDenseBlock(t *testing.T) {
	img := NewImage(RectangleSize{Width: 8, Height: 8}, FormatRGB24, true, White, AbsoluteThreshold(0.33))
	WipeRectangle(img, Rectangle{Vertex: [2]Point{{0, 0}, {3, 3}}}, Black)

	Blurfilter(img, BlurfilterParams{BlockSize: RectangleSize{Width: 4, Height: 4}, Intensity: 0.1})
	if img.GetPixel(0, 0) != Black {
		t.Fatal("expected the dense block to be left alone")
	}
}
