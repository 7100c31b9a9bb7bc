package imaging

import "testing"

func TestGrayfilterErasesLightGrayWindow(t *testing.T) {
	img := NewImage(RectangleSize{Width: 4, Height: 4}, FormatRGB24, false, White, AbsoluteThreshold(0.33))
	WipeRectangle(img, FullImage(img), Pixel{R: 200, G: 200, B: 200})

	p := GrayfilterParams{Size: 4, Step: 4, Threshold: 0.5, AbsBlackThreshold: 84}
	erased := Grayfilter(img, p)
	if erased == 0 {
		t.Fatal("expected the light gray window to be erased")
	}
	if img.GetPixel(0, 0) != White {
		t.Fatal("expected the window to be wiped white")
	}
}

func TestGrayfilterSkipsWindowContainingBlack(t *testing.T) {
	img := NewImage(RectangleSize{Width: 4, Height: 4}, FormatRGB24, false, White, AbsoluteThreshold(0.33))
	WipeRectangle(img, FullImage(img), Pixel{R: 200, G: 200, B: 200})
	img.SetPixel(1, 1, Black)

	p := GrayfilterParams{Size: 4, Step: 4, Threshold: 0.5, AbsBlackThreshold: 84}
	Grayfilter(img, p)
	if img.GetPixel(1, 1) != Black {
		t.Fatal("expected the black pixel to survive")
	}
	if img.GetPixel(0, 0) != (Pixel{R: 200, G: 200, B: 200}) {
		t.Fatal("expected the surrounding gray to be left untouched when a black pixel is present")
	}
}
