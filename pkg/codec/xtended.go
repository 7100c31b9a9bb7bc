package codec

import (
	"bufio"
	"fmt"
	"io"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/unpaper/scanprep/pkg/imaging"
)

// decodeBMP and decodeTIFF hand off to golang.org/x/image's decoders.
// TIFF decoding in particular covers the CCITT Group 3/4 fax compression
// that bi-level scanned documents commonly arrive in, since
// golang.org/x/image/tiff dispatches to golang.org/x/image/ccitt
// internally for that compression scheme.
func decodeBMP(r *bufio.Reader) (*imaging.Image, error) {
	std, err := bmp.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding bmp: %w", err)
	}
	return fromStdImage(std), nil
}

func decodeTIFF(r *bufio.Reader) (*imaging.Image, error) {
	std, err := tiff.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding tiff: %w", err)
	}
	return fromStdImage(std), nil
}

func encodeBMP(w io.Writer, img *imaging.Image) error {
	return bmp.Encode(w, toStdImage(img))
}

func encodeTIFF(w io.Writer, img *imaging.Image) error {
	return tiff.Encode(w, toStdImage(img), &tiff.Options{Compression: tiff.Deflate})
}
