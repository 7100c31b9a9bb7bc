// Package codec is the external image-codec collaborator: it decodes
// input pages into the imaging core's pixel-format-polymorphic Image and
// encodes processed sheets back out, choosing the bit-level format from
// either the caller's request or the first loaded page's own format.
package codec

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"io"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/unpaper/scanprep/pkg/imaging"
)

// Format names an output bit-level format.
type Format string

const (
	FormatPBM  Format = "pbm"
	FormatPGM  Format = "pgm"
	FormatPPM  Format = "ppm"
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatGIF  Format = "gif"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
)

// DecodeFile reads path, sniffing its magic bytes to pick a decoder, and
// returns an Image plus the format that was detected. PAL8 sources are
// expanded to RGB24 while copying pixels out of the standard decoder's
// palette-resolving At(), so the imaging core never sees an indexed
// format.
func DecodeFile(path string) (*imaging.Image, Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("opening %q: %w", path, err)
	}
	defer f.Close()
	return Decode(bufio.NewReader(f))
}

// Decode sniffs r's magic bytes and dispatches to the matching decoder.
func Decode(r io.Reader) (*imaging.Image, Format, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(2)
	if err != nil && err != io.EOF {
		return nil, "", fmt.Errorf("reading magic bytes: %w", err)
	}

	switch {
	case bytes.HasPrefix(magic, []byte("P1")), bytes.HasPrefix(magic, []byte("P4")):
		img, err := decodePNM(br)
		return img, FormatPBM, err
	case bytes.HasPrefix(magic, []byte("P2")), bytes.HasPrefix(magic, []byte("P5")):
		img, err := decodePNM(br)
		return img, FormatPGM, err
	case bytes.HasPrefix(magic, []byte("P3")), bytes.HasPrefix(magic, []byte("P6")):
		img, err := decodePNM(br)
		return img, FormatPPM, err
	case bytes.HasPrefix(magic, []byte("BM")):
		img, err := decodeBMP(br)
		return img, FormatBMP, err
	case bytes.HasPrefix(magic, []byte("II")), bytes.HasPrefix(magic, []byte("MM")):
		img, err := decodeTIFF(br)
		return img, FormatTIFF, err
	default:
		std, name, err := image.Decode(br)
		if err != nil {
			return nil, "", fmt.Errorf("decoding image: %w", err)
		}
		img := fromStdImage(std)
		switch name {
		case "jpeg":
			return img, FormatJPEG, nil
		case "gif":
			return img, FormatGIF, nil
		default:
			return img, FormatPNG, nil
		}
	}
}

// fromStdImage converts a decoded standard-library image into an RGB24
// imaging.Image. Indexed (paletted) sources are expanded to RGB24 for
// free: At() already resolves the palette.
func fromStdImage(std image.Image) *imaging.Image {
	b := std.Bounds()
	size := imaging.RectangleSize{Width: b.Dx(), Height: b.Dy()}
	out := imaging.NewImage(size, imaging.FormatRGB24, false, imaging.White, imaging.AbsoluteThreshold(0.33))
	for y := 0; y < size.Height; y++ {
		for x := 0; x < size.Width; x++ {
			r, g, bl, _ := std.At(b.Min.X+x, b.Min.Y+y).RGBA()
			out.SetPixel(x, y, imaging.Pixel{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8)})
		}
	}
	return out
}

// Encode writes img to w in the requested format. If img's in-memory
// pixel format doesn't match what the format needs, callers are expected
// to have already converted it (copy-through-full-rectangle); Encode
// itself never silently reformats.
func Encode(w io.Writer, img *imaging.Image, format Format) error {
	switch format {
	case FormatPBM, FormatPGM, FormatPPM:
		return encodePNM(w, img, format)
	case FormatBMP:
		return encodeBMP(w, img)
	case FormatTIFF:
		return encodeTIFF(w, img)
	case FormatPNG:
		return encodeStd(w, img, "png")
	case FormatJPEG:
		return encodeStd(w, img, "jpeg")
	case FormatGIF:
		return encodeStd(w, img, "gif")
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// EncodeFile creates (or overwrites) path and encodes img to it.
func EncodeFile(path string, img *imaging.Image, format Format) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %q: %w", path, err)
	}
	defer f.Close()
	return Encode(f, img, format)
}
