// Command scanprep post-processes scanned paper documents: descewing,
// cropping, and removing black borders and edge noise from input page
// images before they go to OCR or a PDF.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/unpaper/scanprep/pkg/cli"
	"github.com/unpaper/scanprep/pkg/codec"
	"github.com/unpaper/scanprep/pkg/config"
	"github.com/unpaper/scanprep/pkg/imaging"
	"github.com/unpaper/scanprep/pkg/logging"
	"github.com/unpaper/scanprep/pkg/sheet"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "scanprep: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags, err := cli.ParseArgs(args)
	if err != nil {
		return err
	}

	if flags.CheckUpdate {
		return cli.CheckForUpdates("unpaper/scanprep")
	}

	if err := config.LoadDotEnv(".env"); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "scanprep: ignoring .env (%v)\n", err)
	}

	cfg := config.Default()
	if err := applyFlags(&cfg, flags); err != nil {
		return err
	}

	log := logging.New(cfg.Verbosity)
	if flags.Quiet {
		log = logging.New(logging.LevelNone)
	}

	inputs, outputs, err := resolvePaths(flags, &cfg)
	if err != nil {
		return err
	}

	outType := cfg.OutputType
	var firstFormat codec.Format
	pipe := &sheet.Pipeline{
		Config: &cfg,
		Log:    log,
		Load: func(path string) (*imaging.Image, error) {
			img, format, err := codec.DecodeFile(path)
			if err == nil && firstFormat == "" {
				firstFormat = format
			}
			return img, err
		},
		Save: func(path string, img *imaging.Image) error {
			if !cfg.Overwrite {
				if _, statErr := os.Stat(path); statErr == nil {
					return fmt.Errorf("output %q already exists (pass --overwrite to replace it)", path)
				}
			}
			if cfg.TestOnly {
				return nil
			}
			target := codec.Format(outType)
			if target == "" {
				target = firstFormat
			}
			if target == "" {
				target = codec.FormatPNG
			}
			converted := codec.ConvertFormat(img, codec.PixelFormatFor(target))
			return codec.EncodeFile(path, converted, target)
		},
	}

	sheetsPerInput := flags.InputPages
	sheetsPerOutput := flags.OutputPages
	if sheetsPerInput <= 0 {
		sheetsPerInput = 1
	}
	if sheetsPerOutput <= 0 {
		sheetsPerOutput = 1
	}

	totalSheets := len(inputs) / sheetsPerInput
	if cfg.EndSheet >= 0 && cfg.EndSheet < totalSheets-1 {
		totalSheets = cfg.EndSheet + 1
	}

	var prevSize imaging.RectangleSize
	for s := cfg.StartSheet; s < totalSheets; s++ {
		inStart := s * sheetsPerInput
		outStart := s * sheetsPerOutput
		if inStart+sheetsPerInput > len(inputs) {
			break
		}
		inPaths := inputs[inStart : inStart+sheetsPerInput]
		outPaths := outputs[outStart : outStart+sheetsPerOutput]

		size, err := pipe.ProcessSheet(s, inPaths, outPaths, prevSize)
		if err != nil {
			return fmt.Errorf("sheet %d: %w", s, err)
		}
		prevSize = size
		log.Verbose(logging.LevelNormal, "sheet %d done", s)
	}
	return nil
}

// applyFlags overlays parsed command-line values onto cfg, which already
// carries the stock defaults from config.Default().
func applyFlags(cfg *config.Config, f *cli.ParsedFlags) error {
	var err error

	if f.Layout != "" {
		switch strings.ToLower(f.Layout) {
		case "none":
			cfg.Layout = config.LayoutNone
		case "single":
			cfg.Layout = config.LayoutSingle
		case "double":
			cfg.Layout = config.LayoutDouble
		default:
			return fmt.Errorf("unknown --layout %q", f.Layout)
		}
	}

	if f.DPI > 0 {
		cfg.DPI = f.DPI
	}
	cfg.StartSheet = f.StartSheet
	if f.EndSheet != 0 {
		cfg.EndSheet = f.EndSheet
	}
	cfg.StartInput = f.StartInput
	cfg.StartOutput = f.StartOutput
	if f.InputPages > 0 {
		cfg.InputPages = f.InputPages
	}
	if f.OutputPages > 0 {
		cfg.OutputPages = f.OutputPages
	}
	cfg.NoMultiPages = f.NoMultiPages

	if f.SheetSize != "" {
		cfg.SheetSize, err = cli.ParseSheetSize(f.SheetSize, cfg.DPI)
		if err != nil {
			return err
		}
	}
	if f.SheetBackground != "" {
		cfg.SheetBackground = parseColorName(f.SheetBackground)
	}

	if f.Exclude != "" {
		if cfg.Exclude, err = cli.ParseMultiIndex(f.Exclude); err != nil {
			return err
		}
	}
	if f.NoProcessing != "" {
		if cfg.NoProcessing, err = cli.ParseMultiIndex(f.NoProcessing); err != nil {
			return err
		}
	}

	cfg.PreRotate = f.PreRotate
	cfg.PostRotate = f.PostRotate
	cfg.PreMirrorH, cfg.PreMirrorV = parseMirror(f.PreMirror)
	cfg.PostMirrorH, cfg.PostMirrorV = parseMirror(f.PostMirror)

	if f.PreShift != "" {
		if cfg.PreShift, err = parseDelta(f.PreShift); err != nil {
			return err
		}
	}
	if f.PostShift != "" {
		if cfg.PostShift, err = parseDelta(f.PostShift); err != nil {
			return err
		}
	}
	if f.PreMask != "" {
		if cfg.PreMask, err = parseRectangle(f.PreMask); err != nil {
			return err
		}
		cfg.HasPreMask = true
	}

	if f.Size != "" {
		if cfg.Size, err = parseSize(f.Size); err != nil {
			return err
		}
	}
	if f.PostSize != "" {
		if cfg.PostSize, err = parseSize(f.PostSize); err != nil {
			return err
		}
	}
	if f.Stretch != "" {
		if cfg.Stretch, err = parseSize(f.Stretch); err != nil {
			return err
		}
	}
	if f.PostStretch != "" {
		if cfg.PostStretch, err = parseSize(f.PostStretch); err != nil {
			return err
		}
	}
	if f.Zoom > 0 {
		cfg.Zoom = f.Zoom
	}
	if f.PostZoom > 0 {
		cfg.PostZoom = f.PostZoom
	}

	for _, s := range f.MaskScanPoint {
		pt, perr := parsePoint(s)
		if perr != nil {
			return perr
		}
		cfg.MaskScanPoints = append(cfg.MaskScanPoints, pt)
	}
	for _, s := range f.Mask {
		r, rerr := parseRectangle(s)
		if rerr != nil {
			return rerr
		}
		cfg.Masks = append(cfg.Masks, r)
	}
	if f.MaskColor != "" {
		cfg.MaskColor = parseColorName(f.MaskColor)
	}

	for _, s := range f.Wipe {
		r, werr := parseRectangle(s)
		if werr != nil {
			return werr
		}
		cfg.Wipes = append(cfg.Wipes, r)
	}
	for _, s := range f.PreWipe {
		r, werr := parseRectangle(s)
		if werr != nil {
			return werr
		}
		cfg.PreWipes = append(cfg.PreWipes, r)
	}
	for _, s := range f.PostWipe {
		r, werr := parseRectangle(s)
		if werr != nil {
			return werr
		}
		cfg.PostWipes = append(cfg.PostWipes, r)
	}
	if f.MiddleWipe != "" {
		l, r, merr := parsePair(f.MiddleWipe)
		if merr != nil {
			return merr
		}
		cfg.MiddleWipeLeft, cfg.MiddleWipeRight = l, r
	}

	if f.Border != "" {
		if cfg.Border, err = parseBorder(f.Border); err != nil {
			return err
		}
	}
	if f.PreBorder != "" {
		if cfg.PreBorder, err = parseBorder(f.PreBorder); err != nil {
			return err
		}
	}
	if f.PostBorder != "" {
		if cfg.PostBorder, err = parseBorder(f.PostBorder); err != nil {
			return err
		}
	}

	cfg.NoBlackfilter = f.NoBlackfilter
	if f.BlackfilterScanSize != "" {
		if cfg.Blackfilter.Size, err = parseSize(f.BlackfilterScanSize); err != nil {
			return err
		}
	}
	if f.BlackfilterScanStep != "" {
		h, v, serr := parsePair(f.BlackfilterScanStep)
		if serr != nil {
			return serr
		}
		cfg.Blackfilter.StepHorizontal, cfg.Blackfilter.StepVertical = h, v
	}
	if f.BlackfilterScanDepth > 0 {
		cfg.Blackfilter.ScanDepth = f.BlackfilterScanDepth
	}
	if f.BlackfilterIntensity > 0 {
		cfg.Blackfilter.Intensity = f.BlackfilterIntensity
	}

	cfg.NoNoisefilter = f.NoNoisefilter
	if f.NoisefilterIntensity > 0 {
		cfg.Noisefilter.Intensity = f.NoisefilterIntensity
	}

	cfg.NoBlurfilter = f.NoBlurfilter
	if f.BlurfilterSize != "" {
		if cfg.Blurfilter.BlockSize, err = parseSize(f.BlurfilterSize); err != nil {
			return err
		}
	}
	if f.BlurfilterStep != "" {
		if cfg.Blurfilter.Step, err = parseSize(f.BlurfilterStep); err != nil {
			return err
		}
	}
	if f.BlurfilterIntensity > 0 {
		cfg.Blurfilter.Intensity = f.BlurfilterIntensity
	}

	cfg.NoGrayfilter = f.NoGrayfilter
	if f.GrayfilterSize > 0 {
		cfg.Grayfilter.Size = f.GrayfilterSize
	}
	if f.GrayfilterStep > 0 {
		cfg.Grayfilter.Step = f.GrayfilterStep
	}
	if f.GrayfilterThreshold > 0 {
		cfg.Grayfilter.Threshold = f.GrayfilterThreshold
	}

	cfg.NoMaskScan = f.NoMaskScan
	if f.MaskScanSize != "" {
		if cfg.MaskScan.ScanSize, err = parseSize(f.MaskScanSize); err != nil {
			return err
		}
	}
	if f.MaskScanStep > 0 {
		cfg.MaskScan.StepSize = f.MaskScanStep
	}
	if f.MaskScanThreshold > 0 {
		cfg.MaskScan.Threshold = f.MaskScanThreshold
	}
	if f.MaskScanMinSize != "" {
		if cfg.MaskScan.MinSize, err = parseSize(f.MaskScanMinSize); err != nil {
			return err
		}
	}
	if f.MaskScanMaxSize != "" {
		if cfg.MaskScan.MaxSize, err = parseSize(f.MaskScanMaxSize); err != nil {
			return err
		}
	}
	if f.MaskScanDepth != "" {
		if cfg.MaskScan.ScanDepth, err = parseSize(f.MaskScanDepth); err != nil {
			return err
		}
	}
	cfg.NoMaskCenter = f.NoMaskCenter

	cfg.NoDeskew = f.NoDeskew
	const degToRad = 0.017453292519943295
	if f.DeskewScanRange > 0 {
		cfg.Deskew.ScanRangeRad = f.DeskewScanRange * degToRad
	}
	if f.DeskewScanStep > 0 {
		cfg.Deskew.ScanStepRad = f.DeskewScanStep * degToRad
	}
	if f.DeskewScanSize > 0 {
		cfg.Deskew.ScanSize = f.DeskewScanSize
	}
	if f.DeskewScanDepth > 0 {
		cfg.Deskew.ScanDepth = f.DeskewScanDepth
	}
	if f.DeskewScanDeviation > 0 {
		cfg.Deskew.DeviationRad = f.DeskewScanDeviation * degToRad
	}

	cfg.NoBorderScan = f.NoBorderScan
	if f.BorderScanSize != "" {
		if cfg.BorderScan.Size, err = parseSize(f.BorderScanSize); err != nil {
			return err
		}
	}
	if f.BorderScanStep > 0 {
		cfg.BorderScan.Step = f.BorderScanStep
	}
	if f.BorderScanThreshold > 0 {
		cfg.BorderScan.Threshold = f.BorderScanThreshold
	}
	cfg.NoBorderAlign = f.NoBorderAlign
	if f.BorderAlign != "" {
		cfg.BorderAlign = parseAlign(f.BorderAlign)
	}
	if f.BorderMargin != "" {
		h, v, merr := parsePair(f.BorderMargin)
		if merr != nil {
			return merr
		}
		cfg.BorderAlign.MarginHorizontal, cfg.BorderAlign.MarginVertical = h, v
	}

	cfg.NoWipe = f.NoWipe
	cfg.NoBorder = f.NoBorder

	if f.WhiteThreshold > 0 {
		cfg.WhiteThreshold = imaging.AbsoluteThreshold(f.WhiteThreshold)
	}
	if f.BlackThreshold > 0 {
		cfg.BlackThreshold = imaging.AbsoluteThreshold(f.BlackThreshold)
	}

	cfg.TestOnly = f.TestOnly
	cfg.Overwrite = f.Overwrite
	cfg.Verbosity = imaging.Level(f.Verbosity)
	if f.Type != "" {
		cfg.OutputType = f.Type
	}
	if f.Interpolate != "" {
		cfg.Interpolation = imaging.InterpolatorByName(f.Interpolate)
	}
	return nil
}

// resolvePaths expands the positional arguments into the input and output
// path lists ProcessSheet needs, applying --insert-blank/--replace-blank
// and filename templating.
func resolvePaths(f *cli.ParsedFlags, cfg *config.Config) ([]string, []string, error) {
	if len(f.Positional) < 2 {
		return nil, nil, fmt.Errorf("usage: scanprep [options] <input...> <output...>")
	}

	// The last OutputPages-worth of positionals (or, lacking any better
	// signal, the last one) are outputs; everything before is input.
	split := len(f.Positional) - cfg.OutputPages
	if split < 1 {
		split = len(f.Positional) - 1
	}
	inputs := append([]string{}, f.Positional[:split]...)
	outputs := append([]string{}, f.Positional[split:]...)

	var insertAt, replaceAt cli.MultiIndex
	var err error
	if f.InsertBlank != "" {
		if insertAt, err = cli.ParseMultiIndex(f.InsertBlank); err != nil {
			return nil, nil, err
		}
		var withBlanks []string
		pos := 0
		for _, in := range inputs {
			if insertAt.Contains(pos) {
				withBlanks = append(withBlanks, "")
				pos++
			}
			withBlanks = append(withBlanks, in)
			pos++
		}
		inputs = withBlanks
	}
	if f.ReplaceBlank != "" {
		if replaceAt, err = cli.ParseMultiIndex(f.ReplaceBlank); err != nil {
			return nil, nil, err
		}
		for i := range inputs {
			if replaceAt.Contains(i) {
				inputs[i] = ""
			}
		}
	}

	expandedOutputs := make([]string, len(outputs))
	for i, o := range outputs {
		expandedOutputs[i] = cli.ParseFilenameTemplate(o, cfg.StartOutput+i)
	}
	return inputs, expandedOutputs, nil
}

func parseColorName(s string) imaging.Pixel {
	switch strings.ToLower(s) {
	case "black":
		return imaging.Black
	default:
		return imaging.White
	}
}

func parseMirror(s string) (h, v bool) {
	for _, part := range strings.Split(s, ",") {
		switch strings.TrimSpace(strings.ToLower(part)) {
		case "h", "horizontal":
			h = true
		case "v", "vertical":
			v = true
		}
	}
	return h, v
}

func parsePair(s string) (int, int, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected \"a,b\", got %q", s)
	}
	a, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid value in %q: %w", s, err)
	}
	b, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid value in %q: %w", s, err)
	}
	return a, b, nil
}

func parseDelta(s string) (imaging.Delta, error) {
	h, v, err := parsePair(s)
	return imaging.Delta{Horizontal: h, Vertical: v}, err
}

func parseSize(s string) (imaging.RectangleSize, error) {
	w, h, err := parsePair(strings.ReplaceAll(strings.ToLower(s), "x", ","))
	return imaging.RectangleSize{Width: w, Height: h}, err
}

func parsePoint(s string) (imaging.Point, error) {
	x, y, err := parsePair(s)
	return imaging.Point{X: x, Y: y}, err
}

func parseRectangle(s string) (imaging.Rectangle, error) {
	parts := strings.SplitN(s, ",", 4)
	if len(parts) != 4 {
		return imaging.Rectangle{}, fmt.Errorf("expected \"x1,y1,x2,y2\", got %q", s)
	}
	vals := make([]int, 4)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return imaging.Rectangle{}, fmt.Errorf("invalid coordinate in %q: %w", s, err)
		}
		vals[i] = v
	}
	return imaging.Rectangle{Vertex: [2]imaging.Point{{X: vals[0], Y: vals[1]}, {X: vals[2], Y: vals[3]}}}, nil
}

func parseBorder(s string) (imaging.Border, error) {
	parts := strings.SplitN(s, ",", 4)
	if len(parts) != 4 {
		return imaging.Border{}, fmt.Errorf("expected \"left,top,right,bottom\", got %q", s)
	}
	vals := make([]int, 4)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return imaging.Border{}, fmt.Errorf("invalid border value in %q: %w", s, err)
		}
		vals[i] = v
	}
	return imaging.Border{Left: vals[0], Top: vals[1], Right: vals[2], Bottom: vals[3]}, nil
}

func parseAlign(s string) imaging.AlignParams {
	var p imaging.AlignParams
	for _, part := range strings.Split(s, ",") {
		switch strings.TrimSpace(strings.ToLower(part)) {
		case "left":
			p.Left = true
		case "right":
			p.Right = true
		case "top":
			p.Top = true
		case "bottom":
			p.Bottom = true
		case "center", "centre":
			// neither edge pinned: AlignMask centres by default.
		}
	}
	return p
}
