package imaging

// FloodFill clears a connected region starting at seed using the line-cross
// algorithm: grow a cross of four line arms, then recurse into the area
// each arm passed over by visiting its perpendicular neighbours.
//
// The reference recurses indirectly (flood_fill calls itself on
// perpendicular neighbours while walking each arm); that recursion is
// flattened here into an explicit work queue per the "convert to an
// explicit work queue to avoid stack overflow on large uniform regions"
// design guidance. Each queued point re-runs the identical mask check, so
// the set of pixels ultimately written is unchanged.
//
// Returns the number of pixels set to color.
func FloodFill(img *Image, seed Point, color Pixel, maskMin, maskMax uint8, intensity int) int {
	total := 0
	queue := []Point{seed}

	dirs := [4]Delta{{Horizontal: 1}, {Horizontal: -1}, {Vertical: 1}, {Vertical: -1}}
	perps := [4][2]Delta{
		{{Vertical: 1}, {Vertical: -1}},   // perpendicular to horizontal arms
		{{Vertical: 1}, {Vertical: -1}},
		{{Horizontal: 1}, {Horizontal: -1}}, // perpendicular to vertical arms
		{{Horizontal: 1}, {Horizontal: -1}},
	}

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		if p.X < 0 || p.X >= img.Width || p.Y < 0 || p.Y >= img.Height {
			continue
		}
		g := img.GetPixel(p.X, p.Y).Grayscale()
		if g < maskMin || g > maskMax {
			continue
		}
		img.SetPixel(p.X, p.Y, color)
		total++

		for i, d := range dirs {
			dist := fillLine(img, p, d, color, maskMin, maskMax, intensity)
			total += dist
			cur := p
			for s := 0; s < dist; s++ {
				cur = ShiftPoint(cur, d)
				for _, pd := range perps[i] {
					queue = append(queue, ShiftPoint(cur, pd))
				}
			}
		}
	}
	return total
}

// fillLine walks one pixel at a time from p in direction d, maintaining a
// countdown budget initialised to intensity: a matching pixel resets the
// budget, a non-matching one decrements it. It stops when the budget is
// exhausted or the walk leaves the image, and returns the count of pixels
// it set to color (the arm's "distance").
func fillLine(img *Image, p Point, d Delta, color Pixel, maskMin, maskMax uint8, intensity int) int {
	budget := intensity
	cur := p
	written := 0
	for {
		cur = ShiftPoint(cur, d)
		if cur.X < 0 || cur.X >= img.Width || cur.Y < 0 || cur.Y >= img.Height {
			break
		}
		g := img.GetPixel(cur.X, cur.Y).Grayscale()
		if g < maskMin || g > maskMax {
			budget--
			if budget <= 0 {
				break
			}
		} else {
			budget = intensity
		}
		img.SetPixel(cur.X, cur.Y, color)
		written++
	}
	return written
}
