package imaging

import "testing"

func blackfilterTestParams(exclusions []Rectangle) BlackfilterParams {
	return BlackfilterParams{
		Size:           RectangleSize{Width: 20, Height: 20},
		ScanDepth:      20,
		StepHorizontal: 5,
		StepVertical:   5,
		Intensity:      20,
		Threshold:      0.95,
		ScanHorizontal: true,
		ScanVertical:   true,
		Exclusions:     exclusions,
	}
}

func TestBlackfilterClearsSolidBlock(t *testing.T) {
	img := NewImage(RectangleSize{Width: 20, Height: 20}, FormatRGB24, true, Black, AbsoluteThreshold(0.33))
	removed := Blackfilter(img, nil, blackfilterTestParams(nil))
	if removed == 0 {
		t.Fatal("expected blackfilter to clear the solid block")
	}
	if img.GetPixel(10, 10) != White {
		t.Fatal("expected the block's center to be wiped white")
	}
}

func TestBlackfilterSkipsExcludedRegion(t *testing.T) {
	img := NewImage(RectangleSize{Width: 20, Height: 20}, FormatRGB24, true, Black, AbsoluteThreshold(0.33))
	whole := FullImage(img)
	Blackfilter(img, nil, blackfilterTestParams([]Rectangle{whole}))
	if img.GetPixel(10, 10) != Black {
		t.Fatal("expected the excluded block to remain untouched")
	}
}
