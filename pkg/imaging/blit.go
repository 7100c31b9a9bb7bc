package imaging

// WipeRectangle clips r to img, sets every pixel within to color, and
// returns the count of pixels actually changed.
func WipeRectangle(img *Image, r Rectangle, color Pixel) int {
	c := ClipRectangle(img, r)
	if c.Vertex[0].X > c.Vertex[1].X || c.Vertex[0].Y > c.Vertex[1].Y {
		return 0
	}
	count := 0
	ScanRectangle(c, func(x, y int) {
		before := img.GetPixel(x, y)
		img.SetPixel(x, y, color)
		if img.GetPixel(x, y) != before {
			count++
		}
	})
	return count
}

// CopyRectangle clips sourceRect to source, then copies each pixel to
// target starting at targetOrigin. Destination bounds are checked
// per-pixel via SetPixel's no-op-outside-image semantics.
func CopyRectangle(source, target *Image, sourceRect Rectangle, targetOrigin Point) {
	c := ClipRectangle(source, sourceRect)
	if c.Vertex[0].X > c.Vertex[1].X || c.Vertex[0].Y > c.Vertex[1].Y {
		return
	}
	ox, oy := c.Vertex[0].X, c.Vertex[0].Y
	ScanRectangle(c, func(x, y int) {
		p := source.GetPixel(x, y)
		target.SetPixel(targetOrigin.X+(x-ox), targetOrigin.Y+(y-oy), p)
	})
}

// aggregateRect clips r to img and averages metric(pixel) over the clipped
// area, returning 0xFF - average. Dividing by the clipped count (not the
// nominal count) avoids counting out-of-image area as black.
func aggregateRect(img *Image, r Rectangle, metric func(Pixel) uint8) uint8 {
	c := ClipRectangle(img, r)
	if c.Vertex[0].X > c.Vertex[1].X || c.Vertex[0].Y > c.Vertex[1].Y {
		return 0xFF
	}
	n := CountPixels(c)
	sum := 0
	ScanRectangle(c, func(x, y int) {
		sum += int(metric(img.GetPixel(x, y)))
	})
	avg := sum / n
	return uint8(0xFF - avg)
}

// InverseBrightnessRect returns 0xFF minus the average grayscale of r.
func InverseBrightnessRect(img *Image, r Rectangle) uint8 {
	return aggregateRect(img, r, Pixel.Grayscale)
}

// InverseLightnessRect returns 0xFF minus the average lightness of r.
func InverseLightnessRect(img *Image, r Rectangle) uint8 {
	return aggregateRect(img, r, Pixel.Lightness)
}

// DarknessRect returns 0xFF minus the average darkness-inverse of r: the
// metric used by blackfilter and border detection to judge "how dark".
func DarknessRect(img *Image, r Rectangle) uint8 {
	return aggregateRect(img, r, Pixel.DarknessInverse)
}

// CountPixelsWithinBrightness counts pixels in r whose grayscale lies in
// [lo, hi]. If clear is true, qualifying pixels are overwritten with
// White.
func CountPixelsWithinBrightness(img *Image, r Rectangle, lo, hi uint8, clear bool) int {
	c := ClipRectangle(img, r)
	count := 0
	ScanRectangle(c, func(x, y int) {
		g := img.GetPixel(x, y).Grayscale()
		if g >= lo && g <= hi {
			count++
			if clear {
				img.SetPixel(x, y, White)
			}
		}
	})
	return count
}

// CenterImage pastes src centred inside (origin, size) on dst. If src is
// smaller than size in a dimension, the target sub-rectangle is first
// cleared with dst's background; if larger, src is cropped equally on
// both sides.
func CenterImage(src, dst *Image, origin Point, size RectangleSize) {
	target := RectangleFromSize(origin, size)
	WipeRectangle(dst, target, dst.Background)

	srcW, srcH := src.Width, src.Height
	dxOff, dyOff := 0, 0
	sx0, sy0 := 0, 0
	sx1, sy1 := srcW-1, srcH-1

	if srcW <= size.Width {
		dxOff = (size.Width - srcW) / 2
	} else {
		crop := (srcW - size.Width) / 2
		sx0 = crop
		sx1 = sx0 + size.Width - 1
	}
	if srcH <= size.Height {
		dyOff = (size.Height - srcH) / 2
	} else {
		crop := (srcH - size.Height) / 2
		sy0 = crop
		sy1 = sy0 + size.Height - 1
	}

	CopyRectangle(src, dst,
		Rectangle{Vertex: [2]Point{{sx0, sy0}, {sx1, sy1}}},
		Point{X: origin.X + dxOff, Y: origin.Y + dyOff})
}

// Stretch resamples src into a new image of the given size: for every
// destination pixel it computes fractional source coordinates
// (x*sx, y*sy) with sx=srcW/dstW, sy=srcH/dstH and samples via the
// configured interpolation.
func Stretch(src *Image, dstSize RectangleSize, interp Interpolator) *Image {
	dst := NewImage(dstSize, src.Format, false, src.Background, src.BlackThreshold)
	if dstSize.Width <= 0 || dstSize.Height <= 0 {
		return dst
	}
	sx := float64(src.Width) / float64(dstSize.Width)
	sy := float64(src.Height) / float64(dstSize.Height)
	for y := 0; y < dstSize.Height; y++ {
		for x := 0; x < dstSize.Width; x++ {
			p := interp(src, float64(x)*sx, float64(y)*sy)
			dst.SetPixel(x, y, p)
		}
	}
	return dst
}

// Resize zoom-fits src into dstSize: the smaller of the two axis ratios is
// used so content fits without cropping, then the stretched intermediate
// is pasted centred into a dstSize background-filled buffer.
//
// The reference's centring condition reads `hh = h` (assignment, not
// comparison) where equality was probably intended; the effect is that
// centring always runs regardless of which ratio was chosen. That is the
// specified behaviour here too — centring is unconditional whenever the
// ratios differ, not merely when the heights already matched.
func Resize(src *Image, dstSize RectangleSize, interp Interpolator) *Image {
	wRatio := float64(dstSize.Width) / float64(src.Width)
	hRatio := float64(dstSize.Height) / float64(src.Height)
	ratio := minInt2(wRatio, hRatio)

	interW := int(float64(src.Width)*ratio + 0.5)
	interH := int(float64(src.Height)*ratio + 0.5)
	if interW < 1 {
		interW = 1
	}
	if interH < 1 {
		interH = 1
	}

	intermediate := Stretch(src, RectangleSize{Width: interW, Height: interH}, interp)

	dst := NewImage(dstSize, src.Format, true, src.Background, src.BlackThreshold)
	origin := Point{X: (dstSize.Width - interW) / 2, Y: (dstSize.Height - interH) / 2}
	CenterImage(intermediate, dst, origin, RectangleSize{Width: interW, Height: interH})
	return dst
}

func minInt2(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// Shift allocates a background-filled buffer the same size as src and
// copies src's full rectangle at (dx, dy), returning the new image.
func Shift(src *Image, d Delta) *Image {
	dst := NewImage(RectangleSize{Width: src.Width, Height: src.Height}, src.Format, true, src.Background, src.BlackThreshold)
	CopyRectangle(src, dst, FullImage(src), Point{X: d.Horizontal, Y: d.Vertical})
	return dst
}

// Mirror swaps pixels (x,y) <-> (W-1-x,H-1-y) in place, restricted to the
// selected axes. With an odd dimension, the middle row/column is left
// alone unless both h and v are set, in which case the middle row is
// mirrored over half its extent.
func Mirror(img *Image, h, v bool) {
	if !h && !v {
		return
	}
	w, ht := img.Width, img.Height
	switch {
	case h && v:
		for y := 0; y < (ht+1)/2; y++ {
			xw := w
			if y == ht-1-y {
				xw = (w + 1) / 2
			}
			for x := 0; x < xw; x++ {
				oy := ht - 1 - y
				ox := w - 1 - x
				if x == ox && y == oy {
					continue
				}
				p1 := img.GetPixel(x, y)
				p2 := img.GetPixel(ox, oy)
				img.SetPixel(x, y, p2)
				img.SetPixel(ox, oy, p1)
			}
		}
	case h:
		for y := 0; y < ht; y++ {
			for x := 0; x < w/2; x++ {
				ox := w - 1 - x
				p1 := img.GetPixel(x, y)
				p2 := img.GetPixel(ox, y)
				img.SetPixel(x, y, p2)
				img.SetPixel(ox, y, p1)
			}
		}
	case v:
		for y := 0; y < ht/2; y++ {
			oy := ht - 1 - y
			for x := 0; x < w; x++ {
				p1 := img.GetPixel(x, y)
				p2 := img.GetPixel(x, oy)
				img.SetPixel(x, y, p2)
				img.SetPixel(x, oy, p1)
			}
		}
	}
}

// FlipRotate90 allocates a swapped-dimension buffer and rotates src by 90°:
// direction > 0 is clockwise (source (x,y) -> dest (H-1-y, x)); direction
// < 0 is counter-clockwise (source (x,y) -> dest (y, W-1-x)).
func FlipRotate90(src *Image, direction int) *Image {
	dst := NewImage(RectangleSize{Width: src.Height, Height: src.Width}, src.Format, false, src.Background, src.BlackThreshold)
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			p := src.GetPixel(x, y)
			if direction > 0 {
				dst.SetPixel(src.Height-1-y, x, p)
			} else {
				dst.SetPixel(y, src.Width-1-x, p)
			}
		}
	}
	return dst
}
