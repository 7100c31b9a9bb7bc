// Package config holds the process-wide configuration assembled once by
// the CLI layer and threaded as an explicit value through the rest of the
// pipeline, rather than read from package-level globals.
package config

import (
	"github.com/joho/godotenv"

	"github.com/unpaper/scanprep/pkg/cli"
	"github.com/unpaper/scanprep/pkg/imaging"
)

// Layout selects how input pages are arranged on a sheet.
type Layout int

const (
	LayoutNone Layout = iota
	LayoutSingle
	LayoutDouble
)

// Config is the fully-resolved, immutable configuration for a single run.
// It is built once, before the per-sheet loop, and never mutated
// afterwards.
type Config struct {
	Layout         Layout
	SheetSize      imaging.RectangleSize // zero Width/Height means "infer from first page"
	SheetBackground imaging.Pixel
	DPI            float64

	StartSheet, EndSheet   int
	StartInput, StartOutput int
	InputPages, OutputPages int
	NoMultiPages            bool

	Exclude       cli.MultiIndex
	NoProcessing  cli.MultiIndex

	PreRotate, PostRotate int // -90, 0, or 90

	PreMirrorH, PreMirrorV   bool
	PostMirrorH, PostMirrorV bool

	PreShift, PostShift imaging.Delta
	PreMask             imaging.Rectangle
	HasPreMask          bool

	Size, PostSize         imaging.RectangleSize
	Stretch, PostStretch   imaging.RectangleSize
	Zoom, PostZoom         float64

	MaskScanPoints []imaging.Point
	Masks          []imaging.Rectangle
	MaskColor      imaging.Pixel

	Wipes, PreWipes, PostWipes []imaging.Rectangle
	MiddleWipeLeft, MiddleWipeRight int

	Border, PreBorder, PostBorder imaging.Border

	NoBlackfilter bool
	Blackfilter   imaging.BlackfilterParams

	NoNoisefilter bool
	Noisefilter   imaging.NoisefilterParams

	NoBlurfilter bool
	Blurfilter   imaging.BlurfilterParams

	NoGrayfilter bool
	Grayfilter   imaging.GrayfilterParams

	NoMaskScan bool
	MaskScan   imaging.MaskScanParams

	NoMaskCenter bool

	NoDeskew bool
	Deskew   imaging.DeskewParams

	NoBorderScan  bool
	NoBorderAlign bool
	BorderScan    imaging.BorderScanParams
	BorderAlign   imaging.AlignParams

	NoWipe   bool
	NoBorder bool

	WhiteThreshold, BlackThreshold uint8

	TestOnly  bool
	Overwrite bool
	Verbosity imaging.Level

	Interpolation imaging.Interpolator

	OutputType string // "pbm", "pgm", "ppm", or "" (match first input)
}

// Default returns a Config with the reference implementation's stock
// defaults for every threshold and scan parameter.
func Default() Config {
	return Config{
		Layout:          LayoutNone,
		SheetBackground: imaging.White,
		DPI:             300,
		EndSheet:        -1, // -1 means "unbounded", resolved against input count
		InputPages:      1,
		OutputPages:      1,
		Exclude:         cli.NoSheets(),
		NoProcessing:    cli.NoSheets(),
		Zoom:            1.0,
		PostZoom:        1.0,
		MaskColor:       imaging.White,
		WhiteThreshold:  imaging.AbsoluteThreshold(0.9),
		BlackThreshold:  imaging.AbsoluteThreshold(0.33),
		Interpolation:   imaging.InterpolateBilinear,
		Blackfilter: imaging.BlackfilterParams{
			Size:            imaging.RectangleSize{Width: 20, Height: 20},
			ScanDepth:       500,
			StepHorizontal:  5,
			StepVertical:    5,
			Intensity:       20,
			AbsBlackThreshold: imaging.AbsoluteThreshold(0.33),
			Threshold:       0.95,
			ScanHorizontal:  true,
			ScanVertical:    true,
		},
		Noisefilter: imaging.NoisefilterParams{Intensity: 4, WhiteThreshold: imaging.AbsoluteThreshold(0.9)},
		Blurfilter: imaging.BlurfilterParams{
			BlockSize: imaging.RectangleSize{Width: 100, Height: 100},
			Step:      imaging.RectangleSize{Width: 50, Height: 50},
			Intensity: 0.01,
		},
		Grayfilter: imaging.GrayfilterParams{Size: 50, Step: 20, Threshold: 0.5, AbsBlackThreshold: imaging.AbsoluteThreshold(0.33)},
		MaskScan: imaging.MaskScanParams{
			ScanSize:  imaging.RectangleSize{Width: 50, Height: 50},
			StepSize:  5,
			Threshold: 0.1,
			MinSize:   imaging.RectangleSize{Width: 100, Height: 100},
			MaxSize:   imaging.RectangleSize{Width: 10000, Height: 10000},
			ScanDepth: imaging.RectangleSize{Width: -1, Height: -1},
			ScanLeft:  true, ScanRight: true,
		},
		Deskew: imaging.DeskewParams{
			ScanRangeRad: 5 * 0.017453292519943295,
			ScanStepRad:  0.1 * 0.017453292519943295,
			ScanSize:     1500,
			ScanDepth:    0.5,
			DeviationRad: 1 * 0.017453292519943295,
			ScanLeft:     true, ScanRight: true,
		},
		BorderScan: imaging.BorderScanParams{
			Size:      imaging.RectangleSize{Width: 5, Height: 5},
			Step:      5,
			Threshold: 5,
			AbsBlackThreshold: imaging.AbsoluteThreshold(0.33),
			ScanTop:   true, ScanBottom: true,
		},
	}
}

// LoadDotEnv loads the variables of a .env-style file into the process
// environment (variables already set are not overwritten). No Config
// field is read from the environment: Default() and the command-line
// flags alone decide the configuration.
func LoadDotEnv(path string) error {
	return godotenv.Load(path)
}
