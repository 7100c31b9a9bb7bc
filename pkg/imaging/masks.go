package imaging

// Mask is a content-region rectangle. Valid is false when detection
// clipped the result to the configured maximum size; its geometry is
// still a usable full-page fallback in that case.
type Mask struct {
	Rect  Rectangle
	Valid bool
}

// MaskScanParams configures point-based mask detection.
type MaskScanParams struct {
	// ScanSize is the sliding window used while probing for an edge:
	// Width is the window's extent along the scan axis for horizontal
	// (left/right) scans and the perpendicular extent for vertical
	// (top/bottom) scans; Height is the reverse.
	ScanSize  RectangleSize
	StepSize  int
	Threshold float64
	MinSize   RectangleSize
	MaxSize   RectangleSize
	// ScanDepth caps how far, in pixels along the scan axis, detectEdge
	// may travel before giving up on finding an edge: Width bounds
	// left/right scans, Height bounds top/bottom scans. -1 on either
	// axis means "no cap", i.e. scan all the way to the image edge.
	ScanDepth RectangleSize

	ScanLeft, ScanRight, ScanTop, ScanBottom bool
}

// detectEdge slides a scanSize window one step at a time from pos in the
// direction of step, measuring blackness at each position and tracking
// the running average of all measurements taken so far. It stops when the
// window leaves the image, travels past maxDepth pixels (unless maxDepth
// is negative, meaning unbounded), or the current blackness falls below
// threshold*average, and returns the number of steps taken.
func detectEdge(img *Image, pos Point, step Delta, scanSize RectangleSize, threshold float64, maxDepth int) int {
	count := 0
	var sum float64
	for {
		if pos.X < 0 || pos.Y < 0 || pos.X >= img.Width || pos.Y >= img.Height {
			break
		}
		if maxDepth >= 0 && count*(absInt(step.Horizontal)+absInt(step.Vertical)) > maxDepth {
			break
		}
		centered := ShiftPoint(pos, Delta{Horizontal: -scanSize.Width / 2, Vertical: -scanSize.Height / 2})
		rect := RectangleFromSize(centered, scanSize)
		blackness := float64(InverseBrightnessRect(img, rect))
		count++
		sum += blackness
		avg := sum / float64(count)
		if count > 1 && blackness < threshold*avg {
			break
		}
		pos = ShiftPoint(pos, step)
	}
	return count
}

// DetectMask finds the content rectangle around origin by scanning
// inward-facing edges in each enabled direction and combining the
// detected shift counts with the scan step and half the window size. A
// result outside [MinSize, MaxSize] is replaced by a maximum-sized box
// centred on origin and marked invalid.
func DetectMask(img *Image, origin Point, p MaskScanParams) Mask {
	halfW := p.ScanSize.Width / 2
	halfH := p.ScanSize.Height / 2

	left, right := 0, img.Width-1
	top, bottom := 0, img.Height-1

	if p.ScanLeft {
		n := detectEdge(img, origin, Delta{Horizontal: -p.StepSize}, p.ScanSize, p.Threshold, p.ScanDepth.Width)
		left = origin.X - p.StepSize*n - halfW
	}
	if p.ScanRight {
		n := detectEdge(img, origin, Delta{Horizontal: p.StepSize}, p.ScanSize, p.Threshold, p.ScanDepth.Width)
		right = origin.X + p.StepSize*n + halfW
	}
	if p.ScanTop {
		n := detectEdge(img, origin, Delta{Vertical: -p.StepSize}, p.ScanSize, p.Threshold, p.ScanDepth.Height)
		top = origin.Y - p.StepSize*n - halfH
	}
	if p.ScanBottom {
		n := detectEdge(img, origin, Delta{Vertical: p.StepSize}, p.ScanSize, p.Threshold, p.ScanDepth.Height)
		bottom = origin.Y + p.StepSize*n + halfH
	}

	rect := Rectangle{Vertex: [2]Point{{left, top}, {right, bottom}}}
	size := SizeOf(Normalize(rect))
	if size.Width < p.MinSize.Width || size.Width > p.MaxSize.Width ||
		size.Height < p.MinSize.Height || size.Height > p.MaxSize.Height {
		return Mask{Rect: maxCenteredBox(img, origin, p.MaxSize), Valid: false}
	}
	return Mask{Rect: rect, Valid: true}
}

func maxCenteredBox(img *Image, origin Point, size RectangleSize) Rectangle {
	r := RectangleFromSize(Point{X: origin.X - size.Width/2, Y: origin.Y - size.Height/2}, size)
	return ClipRectangle(img, r)
}

// ApplyMasks sets every pixel that lies in none of masks to color; pixels
// within at least one mask are left unchanged. Invalid masks still
// participate (their geometry is the specified full-page fallback).
func ApplyMasks(img *Image, masks []Mask, color Pixel) {
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			in := false
			for _, m := range masks {
				if PointInRectangle(Point{X: x, Y: y}, m.Rect) {
					in = true
					break
				}
			}
			if !in {
				img.SetPixel(x, y, color)
			}
		}
	}
}

// ApplyWipes sets every pixel inside each wipe rectangle to color.
func ApplyWipes(img *Image, wipes []Rectangle, color Pixel) {
	for _, r := range wipes {
		WipeRectangle(img, r, color)
	}
}

// CenterMask recentres the content at area around centre: if the shifted
// rectangle fits inside the image, area is moved there via a scratch
// buffer; otherwise the move is logged and skipped.
func CenterMask(img *Image, log Logger, centre Point, area Rectangle) {
	size := SizeOf(Normalize(area))
	targetOrigin := Point{X: centre.X - size.Width/2, Y: centre.Y - size.Height/2}
	target := RectangleFromSize(targetOrigin, size)

	if target.Vertex[0].X < 0 || target.Vertex[0].Y < 0 ||
		target.Vertex[1].X >= img.Width || target.Vertex[1].Y >= img.Height {
		if log != nil {
			log.Verbose(LevelNormal, "center_mask: target rectangle does not fit inside image, skipping")
		}
		return
	}

	scratch := NewImage(size, img.Format, false, img.Background, img.BlackThreshold)
	CopyRectangle(img, scratch, area, Origin)
	WipeRectangle(img, area, img.Background)
	CopyRectangle(scratch, img, FullImage(scratch), targetOrigin)
}

// AlignParams selects which outside edge(s) an align_mask target should
// hug; an axis with neither flag set is centred within outside.
type AlignParams struct {
	Left, Right        bool
	Top, Bottom        bool
	MarginHorizontal   int
	MarginVertical     int
}

// AlignMask moves inside to hug one edge of outside (or centre within it
// per AlignParams), via a scratch-buffer move-and-wipe.
func AlignMask(img *Image, inside, outside Rectangle, p AlignParams) {
	size := SizeOf(Normalize(inside))
	out := Normalize(outside)
	outSize := SizeOf(out)

	var targetX, targetY int
	switch {
	case p.Left:
		targetX = out.Vertex[0].X + p.MarginHorizontal
	case p.Right:
		targetX = out.Vertex[1].X - size.Width - p.MarginHorizontal + 1
	default:
		targetX = out.Vertex[0].X + (outSize.Width-size.Width)/2
	}
	switch {
	case p.Top:
		targetY = out.Vertex[0].Y + p.MarginVertical
	case p.Bottom:
		targetY = out.Vertex[1].Y - size.Height - p.MarginVertical + 1
	default:
		targetY = out.Vertex[0].Y + (outSize.Height-size.Height)/2
	}

	scratch := NewImage(size, img.Format, false, img.Background, img.BlackThreshold)
	CopyRectangle(img, scratch, inside, Origin)
	WipeRectangle(img, inside, img.Background)
	CopyRectangle(scratch, img, FullImage(scratch), Point{X: targetX, Y: targetY})
}

// Border is four non-negative inward distances from the image edges.
type Border struct {
	Left, Top, Right, Bottom int
}

// BorderScanParams configures inward border detection.
type BorderScanParams struct {
	// Size is the scan stripe's thickness along the scan axis.
	Size               RectangleSize
	Step               int
	Threshold          int
	AbsBlackThreshold  uint8
	ScanLeft, ScanRight bool
	ScanTop, ScanBottom bool
}

func detectBorderEdge(img *Image, start Point, step Delta, stripeSize RectangleSize, absBlack uint8, threshold, limit int) int {
	pos := start
	traveled := 0
	for {
		if pos.X < 0 || pos.Y < 0 || pos.X >= img.Width || pos.Y >= img.Height {
			break
		}
		if traveled > limit {
			break
		}
		rect := RectangleFromSize(pos, stripeSize)
		dark := CountPixelsWithinBrightness(img, rect, 0, absBlack, false)
		if dark >= threshold {
			break
		}
		pos = ShiftPoint(pos, step)
		traveled += absInt(step.Horizontal) + absInt(step.Vertical)
	}
	return traveled
}

// DetectBorder searches inward from outsideMask on each enabled axis for
// the first stripe position with at least Threshold dark pixels, and
// returns the travelled distance per edge.
func DetectBorder(img *Image, outsideMask Rectangle, p BorderScanParams) Border {
	m := Normalize(outsideMask)
	size := SizeOf(m)

	var b Border
	if p.ScanLeft {
		b.Left = detectBorderEdge(img, Point{X: m.Vertex[0].X, Y: m.Vertex[0].Y}, Delta{Horizontal: p.Step},
			RectangleSize{Width: p.Size.Width, Height: size.Height}, p.AbsBlackThreshold, p.Threshold, size.Width/2)
	}
	if p.ScanRight {
		b.Right = detectBorderEdge(img, Point{X: m.Vertex[1].X - p.Size.Width + 1, Y: m.Vertex[0].Y}, Delta{Horizontal: -p.Step},
			RectangleSize{Width: p.Size.Width, Height: size.Height}, p.AbsBlackThreshold, p.Threshold, size.Width/2)
	}
	if p.ScanTop {
		b.Top = detectBorderEdge(img, Point{X: m.Vertex[0].X, Y: m.Vertex[0].Y}, Delta{Vertical: p.Step},
			RectangleSize{Width: size.Width, Height: p.Size.Height}, p.AbsBlackThreshold, p.Threshold, size.Height/2)
	}
	if p.ScanBottom {
		b.Bottom = detectBorderEdge(img, Point{X: m.Vertex[0].X, Y: m.Vertex[1].Y - p.Size.Height + 1}, Delta{Vertical: -p.Step},
			RectangleSize{Width: size.Width, Height: p.Size.Height}, p.AbsBlackThreshold, p.Threshold, size.Height/2)
	}
	return b
}

// BorderToMask converts a Border measured against img into the rectangle
// it implies: {left, top, W-right-1, H-bottom-1}.
func BorderToMask(img *Image, b Border) Rectangle {
	return Rectangle{Vertex: [2]Point{
		{X: b.Left, Y: b.Top},
		{X: img.Width - b.Right - 1, Y: img.Height - b.Bottom - 1},
	}}
}

// ApplyBorder wipes everything outside the border-implied rectangle to
// color; a zero border is a no-op.
func ApplyBorder(img *Image, b Border, color Pixel) {
	if b.Left == 0 && b.Top == 0 && b.Right == 0 && b.Bottom == 0 {
		return
	}
	m := BorderToMask(img, b)
	ApplyMasks(img, []Mask{{Rect: m, Valid: true}}, color)
}
