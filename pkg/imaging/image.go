package imaging

import "fmt"

// PixelFormat identifies the storage layout of an Image's raster. The
// reference implementation dispatches get/set through per-format function
// pointers installed at construction time; here a tagged union plus a
// switch-dispatched inner loop gives the same accessor semantics with
// better inlining than an interface-per-pixel would.
type PixelFormat int

const (
	// FormatGray8 stores one luma byte per pixel.
	FormatGray8 PixelFormat = iota
	// FormatGray8Alpha stores a luma byte and an alpha byte per pixel
	// (Y400A). Alpha is carried through copies but ignored by every
	// brightness/darkness computation, matching the reference.
	FormatGray8Alpha
	// FormatRGB24 stores three bytes per pixel.
	FormatRGB24
	// FormatMonoWhite packs one bit per pixel; a set bit means black.
	FormatMonoWhite
	// FormatMonoBlack packs one bit per pixel; a set bit means white.
	FormatMonoBlack
)

func (f PixelFormat) String() string {
	switch f {
	case FormatGray8:
		return "GRAY8"
	case FormatGray8Alpha:
		return "GRAY8A"
	case FormatRGB24:
		return "RGB24"
	case FormatMonoWhite:
		return "MONOWHITE"
	case FormatMonoBlack:
		return "MONOBLACK"
	default:
		return fmt.Sprintf("PixelFormat(%d)", int(f))
	}
}

// BytesPerPixel returns the storage width of one pixel for byte-addressed
// formats; mono formats are bit-packed and return 0.
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case FormatGray8:
		return 1
	case FormatGray8Alpha:
		return 2
	case FormatRGB24:
		return 3
	default:
		return 0
	}
}

// Image is a pixel-format-polymorphic raster. Out-of-bounds reads return
// White; out-of-bounds writes are silent no-ops. This is a hard invariant
// of the core and must not be implemented via an edge-clamping sampler.
type Image struct {
	Width, Height int
	Format        PixelFormat
	Background    Pixel
	// BlackThreshold is the absolute grayscale cutoff used when reducing
	// an incoming pixel to a single bit for mono formats.
	BlackThreshold uint8

	pix    []byte // byte-addressed formats
	stride int     // bytes (or packed bytes) per row
}

// NewImage allocates an image of the given size and format. If fill is
// true the whole raster is painted with background.
func NewImage(size RectangleSize, format PixelFormat, fill bool, background Pixel, blackThreshold uint8) *Image {
	img := &Image{
		Width:          size.Width,
		Height:         size.Height,
		Format:         format,
		Background:     background,
		BlackThreshold: blackThreshold,
	}
	switch format {
	case FormatMonoWhite, FormatMonoBlack:
		img.stride = (size.Width + 7) / 8
	default:
		img.stride = size.Width * format.BytesPerPixel()
	}
	if img.stride < 0 {
		img.stride = 0
	}
	img.pix = make([]byte, img.stride*size.Height)
	if fill {
		WipeRectangle(img, FullImage(img), background)
	}
	return img
}

// FullImage returns the rectangle (0,0)-(w-1,h-1).
func FullImage(img *Image) Rectangle {
	return Rectangle{Vertex: [2]Point{{0, 0}, {img.Width - 1, img.Height - 1}}}
}

// ClipRectangle normalises r then intersects it with the image bounds.
// If r lies entirely outside the image, the result has Vertex[0] beyond
// Vertex[1] on at least one axis; callers must check for that before
// scanning (SizeOf measures absolute differences and does not reveal it).
func ClipRectangle(img *Image, r Rectangle) Rectangle {
	n := Normalize(r)
	x0 := maxInt(n.Vertex[0].X, 0)
	y0 := maxInt(n.Vertex[0].Y, 0)
	x1 := minInt(n.Vertex[1].X, img.Width-1)
	y1 := minInt(n.Vertex[1].Y, img.Height-1)
	return Rectangle{Vertex: [2]Point{{x0, y0}, {x1, y1}}}
}

func inBounds(img *Image, x, y int) bool {
	return x >= 0 && x < img.Width && y >= 0 && y < img.Height
}

// GetPixel returns the pixel at (x, y), or White if outside the image.
func (img *Image) GetPixel(x, y int) Pixel {
	if !inBounds(img, x, y) {
		return White
	}
	switch img.Format {
	case FormatGray8:
		v := img.pix[y*img.stride+x]
		return Pixel{v, v, v}
	case FormatGray8Alpha:
		v := img.pix[y*img.stride+x*2]
		return Pixel{v, v, v}
	case FormatRGB24:
		o := y*img.stride + x*3
		return Pixel{img.pix[o], img.pix[o+1], img.pix[o+2]}
	case FormatMonoWhite:
		if img.getBit(x, y) {
			return Black
		}
		return White
	case FormatMonoBlack:
		if img.getBit(x, y) {
			return White
		}
		return Black
	default:
		return White
	}
}

func (img *Image) getBit(x, y int) bool {
	byteIdx := y*img.stride + x/8
	bit := uint(7 - x%8)
	return img.pix[byteIdx]&(1<<bit) != 0
}

func (img *Image) setBit(x, y int, v bool) {
	byteIdx := y*img.stride + x/8
	bit := uint(7 - x%8)
	if v {
		img.pix[byteIdx] |= 1 << bit
	} else {
		img.pix[byteIdx] &^= 1 << bit
	}
}

// SetPixel writes p at (x, y). Writes outside the image are no-ops. Mono
// formats first reduce p to grayscale and compare against BlackThreshold.
func (img *Image) SetPixel(x, y int, p Pixel) {
	if !inBounds(img, x, y) {
		return
	}
	switch img.Format {
	case FormatGray8:
		img.pix[y*img.stride+x] = p.Grayscale()
	case FormatGray8Alpha:
		o := y*img.stride + x*2
		img.pix[o] = p.Grayscale()
		img.pix[o+1] = 255
	case FormatRGB24:
		o := y*img.stride + x*3
		img.pix[o], img.pix[o+1], img.pix[o+2] = p.R, p.G, p.B
	case FormatMonoWhite:
		// The reference's _set_pixel_monowhite has an unreachable
		// else-if branch (both arms test the same expression); the
		// specified behaviour is the first branch only: set the bit
		// on black, leave it unchanged otherwise. Replicated verbatim
		// rather than "fixed".
		if p.Grayscale() <= img.BlackThreshold {
			img.setBit(x, y, true)
		} else if p.Grayscale() <= img.BlackThreshold {
			img.setBit(x, y, false) // unreachable: same test as above
		}
	case FormatMonoBlack:
		if p.Grayscale() <= img.BlackThreshold {
			img.setBit(x, y, false)
		} else {
			img.setBit(x, y, true)
		}
	}
}
