package codec

import (
	"bufio"
	"fmt"
	"io"

	"gopkg.in/gographics/imagick.v3/imagick"

	"github.com/unpaper/scanprep/pkg/imaging"
)

var imagickRefs int

func imagickAcquire() {
	if imagickRefs == 0 {
		imagick.Initialize()
	}
	imagickRefs++
}

func imagickRelease() {
	imagickRefs--
	if imagickRefs <= 0 {
		imagick.Terminate()
		imagickRefs = 0
	}
}

// decodePNM loads a pbm/pgm/ppm stream via ImageMagick's MagickWand
// bindings: none of stdlib image or golang.org/x/image support the
// netpbm family, so this is the external media library the pipeline
// leans on for it.
func decodePNM(r io.Reader) (*imaging.Image, error) {
	blob, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading pnm stream: %w", err)
	}

	imagickAcquire()
	defer imagickRelease()

	wand := imagick.NewMagickWand()
	defer wand.Destroy()

	if err := wand.ReadImageBlob(blob); err != nil {
		return nil, fmt.Errorf("reading pnm blob: %w", err)
	}

	w := int(wand.GetImageWidth())
	h := int(wand.GetImageHeight())
	pixels, err := wand.ExportImagePixels(0, 0, uint(w), uint(h), "RGB", imagick.PIXEL_CHAR)
	if err != nil {
		return nil, fmt.Errorf("exporting pnm pixels: %w", err)
	}
	raw, ok := pixels.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected pixel export type %T", pixels)
	}

	out := imaging.NewImage(imaging.RectangleSize{Width: w, Height: h}, imaging.FormatRGB24, false, imaging.White, imaging.AbsoluteThreshold(0.33))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			o := (y*w + x) * 3
			out.SetPixel(x, y, imaging.Pixel{R: raw[o], G: raw[o+1], B: raw[o+2]})
		}
	}
	return out, nil
}

// encodePNM writes img as pbm (1-bit-white), pgm (GRAY8) or ppm (RGB24)
// via MagickWand, matching the pixel storage each format is defined to
// carry.
func encodePNM(w io.Writer, img *imaging.Image, format Format) error {
	imagickAcquire()
	defer imagickRelease()

	wand := imagick.NewMagickWand()
	defer wand.Destroy()

	raw := make([]byte, img.Width*img.Height*3)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			p := img.GetPixel(x, y)
			o := (y*img.Width + x) * 3
			raw[o], raw[o+1], raw[o+2] = p.R, p.G, p.B
		}
	}

	if err := wand.ConstituteImage(uint(img.Width), uint(img.Height), "RGB", imagick.PIXEL_CHAR, raw); err != nil {
		return fmt.Errorf("constituting pnm image: %w", err)
	}

	switch format {
	case FormatPBM:
		if err := wand.SetImageType(imagick.IMAGE_TYPE_BILEVEL); err != nil {
			return fmt.Errorf("setting bilevel type: %w", err)
		}
		if err := wand.SetImageFormat("PBM"); err != nil {
			return fmt.Errorf("setting pbm format: %w", err)
		}
	case FormatPGM:
		if err := wand.SetImageType(imagick.IMAGE_TYPE_GRAYSCALE); err != nil {
			return fmt.Errorf("setting grayscale type: %w", err)
		}
		if err := wand.SetImageFormat("PGM"); err != nil {
			return fmt.Errorf("setting pgm format: %w", err)
		}
	case FormatPPM:
		if err := wand.SetImageFormat("PPM"); err != nil {
			return fmt.Errorf("setting ppm format: %w", err)
		}
	default:
		return fmt.Errorf("encodePNM: unsupported format %q", format)
	}

	blob := wand.GetImageBlob()
	bw := bufio.NewWriter(w)
	if _, err := bw.Write(blob); err != nil {
		return fmt.Errorf("writing pnm blob: %w", err)
	}
	return bw.Flush()
}
