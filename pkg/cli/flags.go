package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsedFlags is the raw result of parsing os.Args: every value the CLI
// surface accepts, still as strings/primitives. cmd/scanprep assembles a
// config.Config from this (keeping this package independent of
// pkg/config, which itself depends on pkg/cli's MultiIndex type).
type ParsedFlags struct {
	Layout string

	Sheet       string // multi-index
	StartSheet  int
	EndSheet    int
	StartInput  int
	StartOutput int

	SheetSize       string
	SheetBackground string
	DPI             float64

	Exclude      string // multi-index
	NoProcessing string // multi-index

	PreRotate, PostRotate int

	PreMirror, PostMirror string // "h", "v", or "h,v"

	PreShift, PostShift string // "WxH" signed
	PreMask             string // "x1,y1,x2,y2"

	Size, PostSize       string
	Stretch, PostStretch string
	Zoom, PostZoom       float64

	MaskScanPoint []string // "x,y" repeated
	Mask          []string // "x1,y1,x2,y2" repeated
	MaskColor     string   // "white"|"black"

	Wipe, PreWipe, PostWipe []string // "x1,y1,x2,y2" repeated
	MiddleWipe              string   // "l,r"

	Border, PreBorder, PostBorder string // "l,t,r,b"

	NoBlackfilter        bool
	BlackfilterScanSize  string
	BlackfilterScanStep  string
	BlackfilterScanDepth int
	BlackfilterIntensity int

	NoNoisefilter        bool
	NoisefilterIntensity int

	NoBlurfilter        bool
	BlurfilterSize      string
	BlurfilterStep      string
	BlurfilterIntensity float64

	NoGrayfilter        bool
	GrayfilterSize      int
	GrayfilterStep      int
	GrayfilterThreshold float64

	NoMaskScan        bool
	MaskScanSize      string
	MaskScanStep      int
	MaskScanThreshold float64
	MaskScanMinSize   string
	MaskScanMaxSize   string
	MaskScanDepth     string

	NoMaskCenter bool

	NoDeskew          bool
	DeskewScanRange   float64
	DeskewScanStep    float64
	DeskewScanSize    int
	DeskewScanDepth   float64
	DeskewScanDeviation float64

	NoBorderScan     bool
	BorderScanSize   string
	BorderScanStep   int
	BorderScanThreshold int
	NoBorderAlign    bool
	BorderAlign      string // "left"|"right"|"center" etc, combined h/v
	BorderMargin     string // "h,v"

	NoWipe   bool
	NoBorder bool

	WhiteThreshold, BlackThreshold float64

	InputPages, OutputPages int
	InsertBlank, ReplaceBlank string // multi-index

	TestOnly     bool
	NoMultiPages bool
	Type         string
	Quiet        bool
	Overwrite    bool
	Verbosity    int // 0 quiet..4 -vvvv

	Interpolate string

	CheckUpdate bool

	Positional []string // input files then output files
}

// ParseArgs parses the scanprep command line in the reference's
// abridged flag surface (§6). Every flag accepts exactly one value
// unless noted as boolean.
func ParseArgs(args []string) (*ParsedFlags, error) {
	f := &ParsedFlags{
		EndSheet:    -1,
		InputPages:  1,
		OutputPages: 1,
		Zoom:        1.0,
		PostZoom:    1.0,
	}

	var missing error
	next := func(i *int, name string) (string, error) {
		*i++
		if *i >= len(args) {
			missing = fmt.Errorf("--%s requires a value", name)
			return "", missing
		}
		return args[*i], nil
	}

	for i := 0; i < len(args); i++ {
		a := args[i]
		if !strings.HasPrefix(a, "-") {
			f.Positional = append(f.Positional, a)
			continue
		}
		name := strings.TrimLeft(a, "-")

		switch name {
		case "layout":
			v, err := next(&i, name)
			if err != nil {
				return nil, err
			}
			f.Layout = v
		case "sheet":
			v, err := next(&i, name)
			if err != nil {
				return nil, err
			}
			f.Sheet = v
		case "start-sheet":
			v, err := next(&i, name)
			if err != nil {
				return nil, err
			}
			f.StartSheet, err = strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("--start-sheet: %w", err)
			}
		case "end-sheet":
			v, err := next(&i, name)
			if err != nil {
				return nil, err
			}
			f.EndSheet, err = strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("--end-sheet: %w", err)
			}
		case "start-input":
			v, err := next(&i, name)
			if err != nil {
				return nil, err
			}
			f.StartInput, _ = strconv.Atoi(v)
		case "start-output":
			v, err := next(&i, name)
			if err != nil {
				return nil, err
			}
			f.StartOutput, _ = strconv.Atoi(v)
		case "sheet-size":
			f.SheetSize, _ = next(&i, name)
		case "sheet-background":
			f.SheetBackground, _ = next(&i, name)
		case "dpi":
			v, _ := next(&i, name)
			f.DPI, _ = strconv.ParseFloat(v, 64)
		case "exclude":
			f.Exclude, _ = next(&i, name)
		case "no-processing":
			f.NoProcessing, _ = next(&i, name)
		case "pre-rotate":
			v, _ := next(&i, name)
			f.PreRotate, _ = strconv.Atoi(v)
		case "post-rotate":
			v, _ := next(&i, name)
			f.PostRotate, _ = strconv.Atoi(v)
		case "pre-mirror":
			f.PreMirror, _ = next(&i, name)
		case "post-mirror":
			f.PostMirror, _ = next(&i, name)
		case "pre-shift":
			f.PreShift, _ = next(&i, name)
		case "post-shift":
			f.PostShift, _ = next(&i, name)
		case "pre-mask":
			f.PreMask, _ = next(&i, name)
		case "size":
			f.Size, _ = next(&i, name)
		case "post-size":
			f.PostSize, _ = next(&i, name)
		case "stretch":
			f.Stretch, _ = next(&i, name)
		case "post-stretch":
			f.PostStretch, _ = next(&i, name)
		case "zoom":
			v, _ := next(&i, name)
			f.Zoom, _ = parsePercentOrFloat(v)
		case "post-zoom":
			v, _ := next(&i, name)
			f.PostZoom, _ = parsePercentOrFloat(v)
		case "mask-scan-point":
			v, _ := next(&i, name)
			f.MaskScanPoint = append(f.MaskScanPoint, v)
		case "mask":
			v, _ := next(&i, name)
			f.Mask = append(f.Mask, v)
		case "mask-color":
			f.MaskColor, _ = next(&i, name)
		case "wipe":
			v, _ := next(&i, name)
			f.Wipe = append(f.Wipe, v)
		case "pre-wipe":
			v, _ := next(&i, name)
			f.PreWipe = append(f.PreWipe, v)
		case "post-wipe":
			v, _ := next(&i, name)
			f.PostWipe = append(f.PostWipe, v)
		case "middle-wipe":
			f.MiddleWipe, _ = next(&i, name)
		case "border":
			f.Border, _ = next(&i, name)
		case "pre-border":
			f.PreBorder, _ = next(&i, name)
		case "post-border":
			f.PostBorder, _ = next(&i, name)
		case "no-blackfilter":
			f.NoBlackfilter = true
		case "blackfilter-scan-size":
			f.BlackfilterScanSize, _ = next(&i, name)
		case "blackfilter-scan-step":
			f.BlackfilterScanStep, _ = next(&i, name)
		case "blackfilter-scan-depth":
			v, _ := next(&i, name)
			f.BlackfilterScanDepth, _ = strconv.Atoi(v)
		case "blackfilter-intensity":
			v, _ := next(&i, name)
			f.BlackfilterIntensity, _ = strconv.Atoi(v)
		case "no-noisefilter":
			f.NoNoisefilter = true
		case "noisefilter-intensity":
			v, _ := next(&i, name)
			f.NoisefilterIntensity, _ = strconv.Atoi(v)
		case "no-blurfilter":
			f.NoBlurfilter = true
		case "blurfilter-size":
			f.BlurfilterSize, _ = next(&i, name)
		case "blurfilter-step":
			f.BlurfilterStep, _ = next(&i, name)
		case "blurfilter-intensity":
			v, _ := next(&i, name)
			f.BlurfilterIntensity, _ = parsePercentOrFloat(v)
		case "no-grayfilter":
			f.NoGrayfilter = true
		case "grayfilter-size":
			v, _ := next(&i, name)
			f.GrayfilterSize, _ = strconv.Atoi(v)
		case "grayfilter-step":
			v, _ := next(&i, name)
			f.GrayfilterStep, _ = strconv.Atoi(v)
		case "grayfilter-threshold":
			v, _ := next(&i, name)
			f.GrayfilterThreshold, _ = parsePercentOrFloat(v)
		case "no-mask-scan":
			f.NoMaskScan = true
		case "mask-scan-size":
			f.MaskScanSize, _ = next(&i, name)
		case "mask-scan-step":
			v, _ := next(&i, name)
			f.MaskScanStep, _ = strconv.Atoi(v)
		case "mask-scan-threshold":
			v, _ := next(&i, name)
			f.MaskScanThreshold, _ = parsePercentOrFloat(v)
		case "mask-scan-min-size":
			f.MaskScanMinSize, _ = next(&i, name)
		case "mask-scan-max-size":
			f.MaskScanMaxSize, _ = next(&i, name)
		case "mask-scan-depth":
			f.MaskScanDepth, _ = next(&i, name)
		case "no-mask-center":
			f.NoMaskCenter = true
		case "no-deskew":
			f.NoDeskew = true
		case "deskew-scan-range":
			v, _ := next(&i, name)
			f.DeskewScanRange, _ = strconv.ParseFloat(v, 64)
		case "deskew-scan-step":
			v, _ := next(&i, name)
			f.DeskewScanStep, _ = strconv.ParseFloat(v, 64)
		case "deskew-scan-size":
			v, _ := next(&i, name)
			f.DeskewScanSize, _ = strconv.Atoi(v)
		case "deskew-scan-depth":
			v, _ := next(&i, name)
			f.DeskewScanDepth, _ = parsePercentOrFloat(v)
		case "deskew-scan-deviation":
			v, _ := next(&i, name)
			f.DeskewScanDeviation, _ = strconv.ParseFloat(v, 64)
		case "no-border-scan":
			f.NoBorderScan = true
		case "border-scan-size":
			f.BorderScanSize, _ = next(&i, name)
		case "border-scan-step":
			v, _ := next(&i, name)
			f.BorderScanStep, _ = strconv.Atoi(v)
		case "border-scan-threshold":
			v, _ := next(&i, name)
			f.BorderScanThreshold, _ = strconv.Atoi(v)
		case "border-align":
			f.BorderAlign, _ = next(&i, name)
		case "border-margin":
			f.BorderMargin, _ = next(&i, name)
		case "no-border-align":
			f.NoBorderAlign = true
		case "no-wipe":
			f.NoWipe = true
		case "no-border":
			f.NoBorder = true
		case "white-threshold":
			v, _ := next(&i, name)
			f.WhiteThreshold, _ = parsePercentOrFloat(v)
		case "black-threshold":
			v, _ := next(&i, name)
			f.BlackThreshold, _ = parsePercentOrFloat(v)
		case "input-pages":
			v, _ := next(&i, name)
			f.InputPages, _ = strconv.Atoi(v)
		case "output-pages":
			v, _ := next(&i, name)
			f.OutputPages, _ = strconv.Atoi(v)
		case "insert-blank":
			f.InsertBlank, _ = next(&i, name)
		case "replace-blank":
			f.ReplaceBlank, _ = next(&i, name)
		case "test-only":
			f.TestOnly = true
		case "no-multi-pages":
			f.NoMultiPages = true
		case "type":
			f.Type, _ = next(&i, name)
		case "quiet":
			f.Quiet = true
		case "overwrite":
			f.Overwrite = true
		case "verbose", "v":
			f.Verbosity = maxVerbosity(f.Verbosity, 1)
		case "vv":
			f.Verbosity = maxVerbosity(f.Verbosity, 2)
		case "vvv":
			f.Verbosity = maxVerbosity(f.Verbosity, 3)
		case "vvvv":
			f.Verbosity = maxVerbosity(f.Verbosity, 4)
		case "interpolate":
			f.Interpolate, _ = next(&i, name)
		case "check-update":
			f.CheckUpdate = true
		default:
			return nil, fmt.Errorf("unknown flag: --%s", name)
		}
	}
	if missing != nil {
		return nil, missing
	}
	return f, nil
}

func maxVerbosity(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// parsePercentOrFloat accepts "3%" (-> 0.03) or a bare float, matching the
// trailing-percent convention used throughout the reference's threshold
// and intensity flags.
func parsePercentOrFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "%") {
		f, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid percent value %q: %w", s, err)
		}
		return f / 100.0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid numeric value %q: %w", s, err)
	}
	return f, nil
}
