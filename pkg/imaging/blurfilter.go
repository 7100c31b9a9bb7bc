package imaging

// BlurfilterParams configures the block-count diffusion filter that erases
// lightly-populated blurred regions.
type BlurfilterParams struct {
	BlockSize RectangleSize
	// Step "shakes" the forward-looking (below-row) diagonal neighbour
	// probes vertically by Step.Height instead of sampling them flush
	// against the block grid; the reference measures its next-row
	// lookahead blocks offset like this rather than grid-aligned.
	Step RectangleSize
	// Intensity is a normalised [0,1] cutoff on non-white pixel density.
	Intensity float64
}

// Blurfilter partitions the image into a block grid, counts non-white
// pixels per block, and erases any block whose density (including its
// four diagonal neighbours' densities) is at or below Intensity. Returns
// the total number of pixels erased.
func Blurfilter(img *Image, p BlurfilterParams) int {
	if p.BlockSize.Width <= 0 || p.BlockSize.Height <= 0 {
		return 0
	}
	cols := (img.Width + p.BlockSize.Width - 1) / p.BlockSize.Width
	rows := (img.Height + p.BlockSize.Height - 1) / p.BlockSize.Height
	if cols == 0 || rows == 0 {
		return 0
	}

	counts := make([][]int, rows)
	for r := range counts {
		counts[r] = make([]int, cols)
	}

	blockRect := func(r, c int) Rectangle {
		x0 := c * p.BlockSize.Width
		y0 := r * p.BlockSize.Height
		return Rectangle{Vertex: [2]Point{
			{x0, y0},
			{minInt(x0+p.BlockSize.Width-1, img.Width-1), minInt(y0+p.BlockSize.Height-1, img.Height-1)},
		}}
	}

	density := func(rect Rectangle) int {
		n := 0
		ScanRectangle(rect, func(x, y int) {
			if img.GetPixel(x, y).Grayscale() != 255 {
				n++
			}
		})
		return n
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			counts[r][c] = density(blockRect(r, c))
		}
	}

	// shakenDensity probes the block below-and-over from (r,c) shifted
	// down by Step.Height, rather than reading the grid-aligned count.
	shakenDensity := func(r, c int) int {
		rect := blockRect(r, c)
		shift := Delta{Vertical: p.Step.Height}
		return density(Rectangle{Vertex: [2]Point{
			ShiftPoint(rect.Vertex[0], shift),
			ShiftPoint(rect.Vertex[1], shift),
		}})
	}

	area := p.BlockSize.Width * p.BlockSize.Height
	erased := 0
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			maxCount := counts[r][c]
			if r > 0 {
				if c > 0 && counts[r-1][c-1] > maxCount {
					maxCount = counts[r-1][c-1]
				}
				if c+1 < cols && counts[r-1][c+1] > maxCount {
					maxCount = counts[r-1][c+1]
				}
			}
			if r+1 < rows {
				if c > 0 {
					if d := shakenDensity(r+1, c-1); d > maxCount {
						maxCount = d
					}
				}
				if c+1 < cols {
					if d := shakenDensity(r+1, c+1); d > maxCount {
						maxCount = d
					}
				}
			}
			if float64(maxCount)/float64(area) <= p.Intensity {
				erased += WipeRectangle(img, blockRect(r, c), White)
			}
		}
	}
	return erased
}
