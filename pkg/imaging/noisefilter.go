package imaging

// NoisefilterParams configures the speckle-cluster remover.
type NoisefilterParams struct {
	// Intensity is the maximum cluster size (in pixels) that gets
	// cleared, and also the ring-expansion radius cap while measuring a
	// cluster.
	Intensity int
	// WhiteThreshold is the absolute darkness-inverse cutoff below which
	// a pixel counts as non-light.
	WhiteThreshold uint8
}

// Noisefilter walks every pixel; whenever a non-light pixel starts a
// cluster that hasn't been visited yet, it measures the cluster by
// expanding Chebyshev-distance rings (1, 2, ...) until a whole ring comes
// back empty or the ring radius exceeds Intensity. Clusters of size at
// most Intensity are cleared to white. Returns the number of clusters
// cleared.
func Noisefilter(img *Image, p NoisefilterParams) int {
	if p.Intensity <= 0 {
		return 0
	}
	w, h := img.Width, img.Height
	visited := make([]bool, w*h)
	idx := func(x, y int) int { return y*w + x }

	cleared := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if visited[idx(x, y)] {
				continue
			}
			if img.GetPixel(x, y).DarknessInverse() >= p.WhiteThreshold {
				continue
			}

			cluster := []Point{{X: x, Y: y}}
			visited[idx(x, y)] = true

			for ring := 1; ring <= p.Intensity; ring++ {
				found := false
				for dy := -ring; dy <= ring; dy++ {
					for dx := -ring; dx <= ring; dx++ {
						if maxInt(absInt(dx), absInt(dy)) != ring {
							continue
						}
						px, py := x+dx, y+dy
						if px < 0 || px >= w || py < 0 || py >= h {
							continue
						}
						if visited[idx(px, py)] {
							continue
						}
						if img.GetPixel(px, py).Lightness() < p.WhiteThreshold {
							visited[idx(px, py)] = true
							cluster = append(cluster, Point{X: px, Y: py})
							found = true
						}
					}
				}
				if !found {
					break
				}
			}

			if len(cluster) <= p.Intensity {
				for _, pt := range cluster {
					img.SetPixel(pt.X, pt.Y, White)
				}
				cleared++
			}
		}
	}
	return cleared
}
