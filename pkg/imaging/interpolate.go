package imaging

import "math"

// Interpolator samples img at fractional coordinates (x, y) and returns the
// resulting pixel. All three modes sample channel-independently; lattice
// reads outside the image return White via Image.GetPixel.
type Interpolator func(img *Image, x, y float64) Pixel

// InterpolateNearest rounds to the nearest integer coordinate and reads.
func InterpolateNearest(img *Image, x, y float64) Pixel {
	return img.GetPixel(int(math.Round(x)), int(math.Round(y)))
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// InterpolateBilinear reads the four lattice neighbours around (x, y) and
// blends linearly along x then y. When the high corner lies outside the
// image, the nearest low corner is returned; a single row or column
// degenerates to a 1-D blend.
func InterpolateBilinear(img *Image, x, y float64) Pixel {
	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	fx := x - float64(x0)
	fy := y - float64(y0)
	x1, y1 := x0+1, y0+1

	haveX1 := x1 < img.Width
	haveY1 := y1 < img.Height

	if !haveX1 && !haveY1 {
		return img.GetPixel(x0, y0)
	}
	if !haveX1 {
		p0 := img.GetPixel(x0, y0)
		p1 := img.GetPixel(x0, y1)
		return blend1D(p0, p1, fy)
	}
	if !haveY1 {
		p0 := img.GetPixel(x0, y0)
		p1 := img.GetPixel(x1, y0)
		return blend1D(p0, p1, fx)
	}

	p00 := img.GetPixel(x0, y0)
	p10 := img.GetPixel(x1, y0)
	p01 := img.GetPixel(x0, y1)
	p11 := img.GetPixel(x1, y1)

	top := blend1D(p00, p10, fx)
	bot := blend1D(p01, p11, fx)
	return blend1D(top, bot, fy)
}

func blend1D(a, b Pixel, t float64) Pixel {
	return Pixel{
		R: clamp255(float64(a.R) + t*(float64(b.R)-float64(a.R))),
		G: clamp255(float64(a.G) + t*(float64(b.G)-float64(a.G))),
		B: clamp255(float64(a.B) + t*(float64(b.B)-float64(a.B))),
	}
}

// catmullRom applies the Catmull-Rom cubic through four samples a,b,c,d at
// parameter t in [0,1): b + 1/2*t*(c-a + t*(2a-5b+4c-d + t*(3(b-c)+d-a))).
func catmullRom(a, b, c, d, t float64) float64 {
	return b + 0.5*t*(c-a+t*(2*a-5*b+4*c-d+t*(3*(b-c)+d-a)))
}

// InterpolateBicubic samples the 4x4 lattice neighbourhood around (x, y),
// applies the Catmull-Rom cubic four times along x then once along y, and
// clamps each channel to [0,255].
func InterpolateBicubic(img *Image, x, y float64) Pixel {
	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	fx := x - float64(x0)
	fy := y - float64(y0)

	var rows [4][3]float64
	for j := -1; j <= 2; j++ {
		var samples [4][3]float64
		for i := -1; i <= 2; i++ {
			p := img.GetPixel(x0+i, y0+j)
			samples[i+1] = [3]float64{float64(p.R), float64(p.G), float64(p.B)}
		}
		for ch := 0; ch < 3; ch++ {
			rows[j+1][ch] = catmullRom(samples[0][ch], samples[1][ch], samples[2][ch], samples[3][ch], fx)
		}
	}
	var out [3]float64
	for ch := 0; ch < 3; ch++ {
		out[ch] = catmullRom(rows[0][ch], rows[1][ch], rows[2][ch], rows[3][ch], fy)
	}
	return Pixel{R: clamp255(out[0]), G: clamp255(out[1]), B: clamp255(out[2])}
}

// InterpolatorByName resolves the CLI-facing interpolation names.
func InterpolatorByName(name string) Interpolator {
	switch name {
	case "nearest":
		return InterpolateNearest
	case "cubic":
		return InterpolateBicubic
	case "linear", "":
		return InterpolateBilinear
	default:
		return InterpolateBilinear
	}
}
