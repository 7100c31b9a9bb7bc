package imaging

// GrayfilterParams configures the gray-region eraser.
type GrayfilterParams struct {
	Size              int
	Step              int
	Threshold         float64 // normalised [0,1] darkness average cutoff
	AbsBlackThreshold uint8
}

// Grayfilter slides a size x size window across the image with the given
// step. A window whose darkness average is below Threshold, and which
// contains no black pixel, is wiped to white. Returns the total number of
// pixels erased.
func Grayfilter(img *Image, p GrayfilterParams) int {
	if p.Size <= 0 || p.Step <= 0 {
		return 0
	}
	erased := 0
	for y := 0; y+p.Size-1 < img.Height; y += p.Step {
		for x := 0; x+p.Size-1 < img.Width; x += p.Step {
			rect := RectangleFromSize(Point{X: x, Y: y}, RectangleSize{Width: p.Size, Height: p.Size})
			avg := float64(DarknessRect(img, rect)) / 255.0
			if avg >= p.Threshold {
				continue
			}
			hasBlack := false
			ScanRectangle(rect, func(px, py int) {
				if img.GetPixel(px, py).Grayscale() <= p.AbsBlackThreshold {
					hasBlack = true
				}
			})
			if !hasBlack {
				erased += WipeRectangle(img, rect, White)
			}
		}
	}
	return erased
}
