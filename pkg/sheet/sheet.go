// Package sheet implements the per-sheet composition state machine: it
// arranges loaded input pages onto a sheet buffer, runs the ordered
// pre-/main-/post-transform chain over it, and splits the result into
// output pages.
package sheet

import (
	"fmt"

	"github.com/unpaper/scanprep/pkg/config"
	"github.com/unpaper/scanprep/pkg/imaging"
	"github.com/unpaper/scanprep/pkg/logging"
)

// Loader reads an input page from disk.
type Loader func(path string) (*imaging.Image, error)

// Saver writes an output page to disk.
type Saver func(path string, img *imaging.Image) error

// Pipeline holds the collaborators a sheet needs: configuration, a
// logger, and the load/save external calls (the only I/O the core ever
// performs).
type Pipeline struct {
	Config *config.Config
	Log    *logging.Logger
	Load   Loader
	Save   Saver
}

// flipRotateDirection maps a +-90 pre/post-rotate setting to
// imaging.FlipRotate90's direction argument; 0 means "no rotation".
func flipRotateDirection(deg int) (int, bool) {
	switch deg {
	case 90:
		return 1, true
	case -90:
		return -1, true
	default:
		return 0, false
	}
}

// ProcessSheet runs one sheet through the full pipeline: load input
// pages, compose them onto a sheet buffer, apply the configured
// transform/detector/filter chain in order, and split + save the
// resulting output pages. prevSheetSize is the sheet size inferred for
// the previous sheet, used as a fallback when every input page for this
// sheet is a blank insertion; it returns the size actually used, so the
// caller can thread it into the next call.
func (p *Pipeline) ProcessSheet(sheetNumber int, inputPaths []string, outputPaths []string, prevSheetSize imaging.RectangleSize) (imaging.RectangleSize, error) {
	cfg := p.Config
	skip := cfg.Exclude.Contains(sheetNumber) || cfg.NoProcessing.Contains(sheetNumber)

	sheetSize := cfg.SheetSize
	var sheetImg *imaging.Image

	for j, path := range inputPaths {
		var page *imaging.Image
		if path == "" {
			// blank insertion: page is created once the sheet size is
			// known, filled with background below.
			page = nil
		} else {
			loaded, err := p.Load(path)
			if err != nil {
				return sheetSize, fmt.Errorf("loading input page %q: %w", path, err)
			}
			page = loaded
		}

		if sheetImg == nil {
			if sheetSize.Width == 0 || sheetSize.Height == 0 {
				if page != nil {
					sheetSize = imaging.RectangleSize{Width: page.Width * len(inputPaths), Height: page.Height}
				} else {
					sheetSize = prevSheetSize
				}
			}
			sheetImg = imaging.NewImage(sheetSize, imaging.FormatRGB24, true, cfg.SheetBackground, cfg.BlackThreshold)
		}

		if page == nil {
			continue
		}

		if dir, ok := flipRotateDirection(cfg.PreRotate); ok {
			page = imaging.FlipRotate90(page, dir)
		}

		slotW := sheetSize.Width / len(inputPaths)
		origin := imaging.Point{X: slotW * j, Y: 0}
		imaging.CenterImage(page, sheetImg, origin, imaging.RectangleSize{Width: slotW, Height: sheetSize.Height})
	}

	if sheetImg == nil {
		sheetImg = imaging.NewImage(sheetSize, imaging.FormatRGB24, true, cfg.SheetBackground, cfg.BlackThreshold)
	}

	if !skip {
		p.runChain(sheetImg)
	}

	if err := p.splitAndSave(sheetImg, outputPaths); err != nil {
		return sheetSize, err
	}
	return sheetSize, nil
}

func (p *Pipeline) runChain(img *imaging.Image) {
	cfg := p.Config

	// 3. Pre-transforms.
	if cfg.PreMirrorH || cfg.PreMirrorV {
		imaging.Mirror(img, cfg.PreMirrorH, cfg.PreMirrorV)
	}
	if cfg.PreShift.Horizontal != 0 || cfg.PreShift.Vertical != 0 {
		*img = *imaging.Shift(img, cfg.PreShift)
	}
	if cfg.HasPreMask {
		imaging.ApplyMasks(img, []imaging.Mask{{Rect: cfg.PreMask, Valid: true}}, cfg.MaskColor)
	}

	// 4. Layout defaults.
	scanPoints, outsideMasks := p.layoutDefaults(img)
	if cfg.MiddleWipeLeft > 0 || cfg.MiddleWipeRight > 0 {
		mid := img.Width / 2
		wipe := imaging.Rectangle{Vertex: [2]imaging.Point{
			{X: mid - cfg.MiddleWipeLeft, Y: 0},
			{X: mid + cfg.MiddleWipeRight, Y: img.Height - 1},
		}}
		imaging.ApplyWipes(img, []imaging.Rectangle{wipe}, cfg.MaskColor)
	}

	// 5. Stretch / resize.
	if cfg.Stretch.Width > 0 && cfg.Stretch.Height > 0 {
		*img = *imaging.Stretch(img, cfg.Stretch, cfg.Interpolation)
	}
	if cfg.Size.Width > 0 && cfg.Size.Height > 0 {
		*img = *imaging.Resize(img, cfg.Size, cfg.Interpolation)
	}

	// 6. Main chain.
	imaging.ApplyWipes(img, cfg.PreWipes, cfg.MaskColor)
	if cfg.PreBorder != (imaging.Border{}) {
		imaging.ApplyBorder(img, cfg.PreBorder, cfg.MaskColor)
	}
	if !cfg.NoBlackfilter {
		imaging.Blackfilter(img, p.Log, cfg.Blackfilter)
	}
	if !cfg.NoNoisefilter {
		imaging.Noisefilter(img, cfg.Noisefilter)
	}
	if !cfg.NoBlurfilter {
		imaging.Blurfilter(img, cfg.Blurfilter)
	}

	var masks []imaging.Mask
	if !cfg.NoMaskScan {
		for _, pt := range scanPoints {
			m := imaging.DetectMask(img, pt, cfg.MaskScan)
			if !m.Valid {
				p.Log.Verbose(logging.LevelNormal, "mask at (%d,%d) outside the size limits, using the maximum-size fallback", pt.X, pt.Y)
			}
			masks = append(masks, m)
		}
	}
	for _, m := range cfg.Masks {
		masks = append(masks, imaging.Mask{Rect: m, Valid: true})
	}
	if len(masks) > 0 {
		imaging.ApplyMasks(img, masks, cfg.MaskColor)
	}

	if !cfg.NoGrayfilter {
		imaging.Grayfilter(img, cfg.Grayfilter)
	}

	if !cfg.NoDeskew {
		for i, m := range masks {
			angle := imaging.DetectRotation(img, p.Log, m.Rect, cfg.Deskew)
			if angle == 0 {
				continue
			}
			rotated := imaging.NewImage(imaging.SizeOf(imaging.Normalize(m.Rect)), img.Format, true, img.Background, img.BlackThreshold)
			scratch := imaging.NewImage(imaging.SizeOf(imaging.Normalize(m.Rect)), img.Format, false, img.Background, img.BlackThreshold)
			imaging.CopyRectangle(img, scratch, m.Rect, imaging.Origin)
			imaging.Rotate(scratch, rotated, angle, cfg.Interpolation)
			imaging.CopyRectangle(rotated, img, imaging.FullImage(rotated), imaging.Normalize(m.Rect).Vertex[0])
			_ = i
		}
	}

	if !cfg.NoMaskCenter {
		for i, m := range masks {
			if i < len(scanPoints) {
				imaging.CenterMask(img, p.Log, scanPoints[i], m.Rect)
			}
		}
	}

	imaging.ApplyWipes(img, cfg.Wipes, cfg.MaskColor)
	if cfg.Border != (imaging.Border{}) && !cfg.NoBorder {
		imaging.ApplyBorder(img, cfg.Border, cfg.MaskColor)
	}

	if !cfg.NoBorderScan {
		for i, om := range outsideMasks {
			b := imaging.DetectBorder(img, om, cfg.BorderScan)
			if !cfg.NoBorder {
				imaging.ApplyBorder(img, b, cfg.MaskColor)
			}
			if !cfg.NoBorderAlign && i < len(masks) {
				imaging.AlignMask(img, masks[i].Rect, om, cfg.BorderAlign)
			}
		}
	}

	imaging.ApplyWipes(img, cfg.PostWipes, cfg.MaskColor)
	if cfg.PostBorder != (imaging.Border{}) {
		imaging.ApplyBorder(img, cfg.PostBorder, cfg.MaskColor)
	}
	if cfg.PostMirrorH || cfg.PostMirrorV {
		imaging.Mirror(img, cfg.PostMirrorH, cfg.PostMirrorV)
	}
	if cfg.PostShift.Horizontal != 0 || cfg.PostShift.Vertical != 0 {
		*img = *imaging.Shift(img, cfg.PostShift)
	}
	if dir, ok := flipRotateDirection(cfg.PostRotate); ok {
		*img = *imaging.FlipRotate90(img, dir)
	}
	if cfg.PostStretch.Width > 0 && cfg.PostStretch.Height > 0 {
		*img = *imaging.Stretch(img, cfg.PostStretch, cfg.Interpolation)
	}
	if cfg.PostSize.Width > 0 && cfg.PostSize.Height > 0 {
		*img = *imaging.Resize(img, cfg.PostSize, cfg.Interpolation)
	}
}

// layoutDefaults returns the mask-scan points and outside-border masks
// implied by the configured layout, when the user hasn't overridden them
// with explicit --mask-scan-point flags. Explicit --mask rectangles do not
// change what it returns.
func (p *Pipeline) layoutDefaults(img *imaging.Image) ([]imaging.Point, []imaging.Rectangle) {
	cfg := p.Config
	if len(cfg.MaskScanPoints) > 0 {
		return cfg.MaskScanPoints, outsideMasksForPoints(img, cfg.MaskScanPoints)
	}
	switch cfg.Layout {
	case config.LayoutSingle:
		centre := imaging.Point{X: img.Width / 2, Y: img.Height / 2}
		return []imaging.Point{centre}, []imaging.Rectangle{imaging.FullImage(img)}
	case config.LayoutDouble:
		left := imaging.Point{X: img.Width / 4, Y: img.Height / 2}
		right := imaging.Point{X: 3 * img.Width / 4, Y: img.Height / 2}
		leftMask := imaging.Rectangle{Vertex: [2]imaging.Point{{0, 0}, {img.Width/2 - 1, img.Height - 1}}}
		rightMask := imaging.Rectangle{Vertex: [2]imaging.Point{{img.Width / 2, 0}, {img.Width - 1, img.Height - 1}}}
		return []imaging.Point{left, right}, []imaging.Rectangle{leftMask, rightMask}
	default:
		return nil, nil
	}
}

func outsideMasksForPoints(img *imaging.Image, points []imaging.Point) []imaging.Rectangle {
	out := make([]imaging.Rectangle, len(points))
	for i := range points {
		out[i] = imaging.FullImage(img)
	}
	return out
}

// splitAndSave divides img into len(outputPaths) equal-width pages and
// saves each in turn.
func (p *Pipeline) splitAndSave(img *imaging.Image, outputPaths []string) error {
	n := len(outputPaths)
	if n == 0 {
		return nil
	}
	pageW := img.Width / n
	for i, path := range outputPaths {
		rect := imaging.Rectangle{Vertex: [2]imaging.Point{
			{X: pageW * i, Y: 0},
			{X: pageW*(i+1) - 1, Y: img.Height - 1},
		}}
		page := imaging.NewImage(imaging.SizeOf(rect), img.Format, false, img.Background, img.BlackThreshold)
		imaging.CopyRectangle(img, page, rect, imaging.Origin)
		if err := p.Save(path, page); err != nil {
			return fmt.Errorf("saving output page %q: %w", path, err)
		}
	}
	return nil
}
