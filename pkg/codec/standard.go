package codec

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/unpaper/scanprep/pkg/imaging"
)

// toStdImage renders an imaging.Image into a standard library image.NRGBA
// so it can be handed to any of the stdlib/x/image encoders.
func toStdImage(img *imaging.Image) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			p := img.GetPixel(x, y)
			out.Set(x, y, color.NRGBA{R: p.R, G: p.G, B: p.B, A: 255})
		}
	}
	return out
}

func encodeStd(w io.Writer, img *imaging.Image, kind string) error {
	std := toStdImage(img)
	switch kind {
	case "png":
		return png.Encode(w, std)
	case "jpeg":
		return jpeg.Encode(w, std, &jpeg.Options{Quality: 95})
	case "gif":
		return gif.Encode(w, std, nil)
	default:
		return fmt.Errorf("unsupported standard image kind %q", kind)
	}
}

// ConvertFormat returns a copy of img reformatted to target, via a full
// copy-through-rectangle (the generic conversion path the reference uses
// whenever an in-memory image doesn't already match the requested output
// format).
func ConvertFormat(img *imaging.Image, target imaging.PixelFormat) *imaging.Image {
	if img.Format == target {
		return img
	}
	out := imaging.NewImage(imaging.RectangleSize{Width: img.Width, Height: img.Height}, target, false, img.Background, img.BlackThreshold)
	imaging.CopyRectangle(img, out, imaging.FullImage(img), imaging.Origin)
	return out
}

// PixelFormatFor returns the pixel format an output Format is defined to
// carry: pbm->1-bit-white, pgm->GRAY8, ppm->RGB24. Byte-for-byte image
// formats (png/jpeg/gif/bmp/tiff) are always carried as RGB24.
func PixelFormatFor(f Format) imaging.PixelFormat {
	switch f {
	case FormatPBM:
		return imaging.FormatMonoWhite
	case FormatPGM:
		return imaging.FormatGray8
	default:
		return imaging.FormatRGB24
	}
}
