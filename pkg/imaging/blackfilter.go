package imaging

// BlackfilterParams configures the solid-black staircase-artefact remover.
type BlackfilterParams struct {
	// Size is the scan window's primary-axis length: Width for horizontal
	// scans, Height for vertical scans.
	Size RectangleSize
	// ScanDepth is the window's perpendicular-axis thickness; stripes
	// stack along the perpendicular axis offset by ScanDepth each time.
	ScanDepth int
	// StepHorizontal, StepVertical are the primary-axis step sizes used
	// by horizontal and vertical scans respectively.
	StepHorizontal, StepVertical int
	Exclusions                   []Rectangle
	Intensity                    int
	AbsBlackThreshold             uint8
	// Threshold is a normalised [0,1] darkness cutoff.
	Threshold                    float64
	ScanHorizontal, ScanVertical bool
}

func rectOverlapsAny(r Rectangle, exclusions []Rectangle) bool {
	for _, ex := range exclusions {
		if RectanglesOverlap(r, ex) {
			return true
		}
	}
	return false
}

// Blackfilter slides a size x depth window across the sheet in
// perpendicular-axis stripes; at each position it measures darkness and,
// when it meets threshold and the window touches no exclusion rectangle,
// flood-fills every pixel in the window to white. It logs one "EXCLUDED" message per stripe
// whose hits fell entirely inside exclusion rectangles. Returns the number
// of pixels cleared.
func Blackfilter(img *Image, log Logger, p BlackfilterParams) int {
	removed := 0
	if p.ScanHorizontal {
		removed += blackfilterPass(img, log, p, true)
	}
	if p.ScanVertical {
		removed += blackfilterPass(img, log, p, false)
	}
	return removed
}

func blackfilterPass(img *Image, log Logger, p BlackfilterParams, horizontal bool) int {
	removed := 0
	primaryLen := p.Size.Width
	step := p.StepHorizontal
	if !horizontal {
		primaryLen = p.Size.Height
		step = p.StepVertical
	}
	if step <= 0 || primaryLen <= 0 || p.ScanDepth <= 0 {
		return 0
	}

	primaryExtent := img.Width
	perpExtent := img.Height
	if !horizontal {
		primaryExtent = img.Height
		perpExtent = img.Width
	}

	for stripe := 0; stripe < perpExtent; stripe += p.ScanDepth {
		stripeHit := false
		stripeAllExcluded := true
		perpEnd := minInt(stripe+p.ScanDepth-1, perpExtent-1)

		for pos := 0; pos+primaryLen-1 < primaryExtent; pos += step {
			var rect Rectangle
			if horizontal {
				rect = Rectangle{Vertex: [2]Point{{pos, stripe}, {pos + primaryLen - 1, perpEnd}}}
			} else {
				rect = Rectangle{Vertex: [2]Point{{stripe, pos}, {perpEnd, pos + primaryLen - 1}}}
			}

			darkness := DarknessRect(img, rect)
			if float64(darkness)/255.0 >= p.Threshold {
				stripeHit = true
				if rectOverlapsAny(rect, p.Exclusions) {
					continue
				}
				stripeAllExcluded = false
				ScanRectangle(rect, func(x, y int) {
					removed += FloodFill(img, Point{X: x, Y: y}, White, 0, p.AbsBlackThreshold, p.Intensity)
				})
			}
		}

		if stripeHit && stripeAllExcluded && log != nil {
			log.Verbose(LevelNormal, "blackfilter: stripe at %d EXCLUDED", stripe)
		}
	}
	return removed
}
