package imaging

import "math"

// Edge names one of the four sides of a mask rectangle.
type Edge int

const (
	EdgeLeft Edge = iota
	EdgeRight
	EdgeTop
	EdgeBottom
)

// DeskewParams configures per-edge rotation-angle estimation.
type DeskewParams struct {
	ScanRangeRad float64
	ScanStepRad  float64
	ScanSize     int
	// ScanDepth is a fraction [0,1] of the edge's extent: how far inward
	// the scan line may shift before giving up, not an absolute pixel
	// count.
	ScanDepth    float64
	DeviationRad float64

	ScanLeft, ScanRight bool
	ScanTop, ScanBottom bool
}

func edgeGeometry(mask Rectangle, edge Edge) (base Point, inward Delta, extent int) {
	m := Normalize(mask)
	size := SizeOf(m)
	switch edge {
	case EdgeLeft:
		base = Point{X: m.Vertex[0].X, Y: (m.Vertex[0].Y + m.Vertex[1].Y) / 2}
		inward = Delta{Horizontal: 1}
		extent = size.Width
	case EdgeRight:
		base = Point{X: m.Vertex[1].X, Y: (m.Vertex[0].Y + m.Vertex[1].Y) / 2}
		inward = Delta{Horizontal: -1}
		extent = size.Width
	case EdgeTop:
		base = Point{X: (m.Vertex[0].X + m.Vertex[1].X) / 2, Y: m.Vertex[0].Y}
		inward = Delta{Vertical: 1}
		extent = size.Height
	case EdgeBottom:
		base = Point{X: (m.Vertex[0].X + m.Vertex[1].X) / 2, Y: m.Vertex[1].Y}
		inward = Delta{Vertical: -1}
		extent = size.Height
	}
	return
}

// detectEdgeRotationPeak builds a virtual line of length scanSize centred
// on edge's midpoint, with slope m=tan(angle), and translates it inward
// one pixel at a time up to half the mask's extent on that axis (or
// scanDepth, a fraction of that extent, whichever is smaller). It
// accumulates darkness along the line at each shift and tracks the
// largest frame-to-frame increase, returning that peak only if the scan
// stopped because accumulated darkness saturated (a real edge was
// crossed) rather than running out of room to shift.
func detectEdgeRotationPeak(img *Image, mask Rectangle, edge Edge, angle float64, scanSize int, scanDepth float64) float64 {
	base, inward, extent := edgeGeometry(mask, edge)
	m := math.Tan(angle)

	depthPixels := int(scanDepth * float64(extent))
	limit := depthPixels
	if half := extent / 2; half < limit {
		limit = half
	}

	saturation := 255.0 * float64(scanSize) * float64(depthPixels)
	prevSum := 0.0
	accumulated := 0.0
	maxIncrease := 0.0
	stoppedForDepth := false

	for shift := 0; shift <= limit; shift++ {
		sum := 0.0
		for i := -scanSize / 2; i <= scanSize/2; i++ {
			var sx, sy float64
			switch edge {
			case EdgeLeft, EdgeRight:
				sx = float64(base.X + inward.Horizontal*shift)
				sy = float64(base.Y+i) + m*float64(i)
			case EdgeTop, EdgeBottom:
				sy = float64(base.Y + inward.Vertical*shift)
				sx = float64(base.X+i) + m*float64(i)
			}
			px := img.GetPixel(int(math.Round(sx)), int(math.Round(sy)))
			sum += 255.0 - float64(px.Grayscale())
		}
		if shift > 0 {
			if inc := sum - prevSum; inc > maxIncrease {
				maxIncrease = inc
			}
		}
		prevSum = sum
		accumulated += sum
		if accumulated >= saturation {
			stoppedForDepth = true
			break
		}
	}

	if stoppedForDepth {
		return maxIncrease
	}
	return 0
}

// detectEdgeRotation sweeps the test angle outward from 0 in alternating
// sign (0, +step, -step, +2*step, -2*step, ...) up to scanRange, and
// returns the angle whose peak was largest.
func detectEdgeRotation(img *Image, mask Rectangle, edge Edge, p DeskewParams) float64 {
	bestAngle := 0.0
	bestPeak := detectEdgeRotationPeak(img, mask, edge, 0, p.ScanSize, p.ScanDepth)

	for n := 1; float64(n)*p.ScanStepRad <= p.ScanRangeRad+1e-9; n++ {
		for _, sign := range [2]float64{1, -1} {
			a := sign * float64(n) * p.ScanStepRad
			peak := detectEdgeRotationPeak(img, mask, edge, a, p.ScanSize, p.ScanDepth)
			if peak > bestPeak {
				bestPeak = peak
				bestAngle = a
			}
		}
	}
	return bestAngle
}

// DetectRotation aggregates the per-edge angle estimate from every
// enabled edge (top/bottom contribute the negative of their raw detected
// angle, to express rotation in the image frame) and accepts the mean
// only if the edges agree closely enough.
//
// Deviation here is the sum-of-squares of per-edge angles minus their
// mean, not divided by count and not square-rooted, matching the
// specification literally; the reference C implementation takes a square
// root of this sum, which is treated as a discrepancy the specification
// deliberately overrides rather than an ambiguity to resolve from the
// reference.
func DetectRotation(img *Image, log Logger, mask Rectangle, p DeskewParams) float64 {
	var angles []float64
	if p.ScanLeft {
		angles = append(angles, detectEdgeRotation(img, mask, EdgeLeft, p))
	}
	if p.ScanRight {
		angles = append(angles, detectEdgeRotation(img, mask, EdgeRight, p))
	}
	if p.ScanTop {
		angles = append(angles, -detectEdgeRotation(img, mask, EdgeTop, p))
	}
	if p.ScanBottom {
		angles = append(angles, -detectEdgeRotation(img, mask, EdgeBottom, p))
	}
	if len(angles) == 0 {
		return 0
	}

	sum := 0.0
	for _, a := range angles {
		sum += a
	}
	mean := sum / float64(len(angles))

	deviation := 0.0
	for _, a := range angles {
		d := a - mean
		deviation += d * d
	}

	if deviation <= p.DeviationRad {
		return mean
	}
	if log != nil {
		log.Verbose(LevelNormal, "detect_rotation: out of deviation range (deviation=%f)", deviation)
	}
	return 0
}

// Rotate fills target (same size and format as source) with source
// rotated by radians around its centre: for every destination pixel, the
// inverse rotation locates the source coordinate to sample.
func Rotate(source, target *Image, radians float64, interp Interpolator) {
	cx := float64(source.Width) / 2
	cy := float64(source.Height) / 2
	cosA := math.Cos(radians)
	sinA := math.Sin(radians)

	for y := 0; y < target.Height; y++ {
		for x := 0; x < target.Width; x++ {
			dx := float64(x) - cx
			dy := float64(y) - cy
			sx := dx*cosA+dy*sinA + cx
			sy := -dx*sinA+dy*cosA + cy
			target.SetPixel(x, y, interp(source, sx, sy))
		}
	}
}
