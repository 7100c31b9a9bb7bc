package sheet

import (
	"testing"

	"github.com/unpaper/scanprep/pkg/cli"
	"github.com/unpaper/scanprep/pkg/config"
	"github.com/unpaper/scanprep/pkg/imaging"
)

func fixedLoader(images map[string]*imaging.Image) Loader {
	return func(path string) (*imaging.Image, error) {
		return images[path], nil
	}
}

func capturingSaver(out map[string]*imaging.Image) Saver {
	return func(path string, img *imaging.Image) error {
		out[path] = img
		return nil
	}
}

func TestProcessSheetComposesSinglePageUnchangedWhenExcluded(t *testing.T) {
	cfg := config.Default()
	cfg.Exclude = cli.AllSheets() // skip the filter/transform chain entirely

	page := imaging.NewImage(imaging.RectangleSize{Width: 10, Height: 10}, imaging.FormatRGB24, true, imaging.White, cfg.BlackThreshold)
	page.SetPixel(5, 5, imaging.Black)

	images := map[string]*imaging.Image{"in.pnm": page}
	saved := map[string]*imaging.Image{}

	p := &Pipeline{Config: &cfg, Load: fixedLoader(images), Save: capturingSaver(saved)}
	size, err := p.ProcessSheet(0, []string{"in.pnm"}, []string{"out.pnm"}, imaging.RectangleSize{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if size.Width != 10 || size.Height != 10 {
		t.Fatalf("expected the sheet size to be inferred from the single page, got %+v", size)
	}

	out := saved["out.pnm"]
	if out == nil {
		t.Fatal("expected an output page to be saved")
	}
	if out.GetPixel(5, 5) != imaging.Black {
		t.Fatal("expected the marked pixel to survive an excluded sheet untouched")
	}
}

func TestProcessSheetBlankInsertionUsesPreviousSheetSize(t *testing.T) {
	cfg := config.Default()
	cfg.Exclude = cli.AllSheets()

	saved := map[string]*imaging.Image{}
	p := &Pipeline{Config: &cfg, Load: fixedLoader(nil), Save: capturingSaver(saved)}

	prev := imaging.RectangleSize{Width: 8, Height: 6}
	size, err := p.ProcessSheet(1, []string{""}, []string{"blank.pnm"}, prev)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if size != prev {
		t.Fatalf("expected the blank sheet to fall back to the previous sheet size, got %+v", size)
	}

	out := saved["blank.pnm"]
	if out == nil {
		t.Fatal("expected a blank output page to be saved")
	}
	if out.GetPixel(0, 0) != cfg.SheetBackground {
		t.Fatal("expected the blank page to be filled with the sheet background")
	}
}

func TestProcessSheetSplitsIntoTwoOutputPages(t *testing.T) {
	cfg := config.Default()
	cfg.Exclude = cli.AllSheets()

	page := imaging.NewImage(imaging.RectangleSize{Width: 20, Height: 10}, imaging.FormatRGB24, true, imaging.White, cfg.BlackThreshold)
	page.SetPixel(2, 2, imaging.Black)  // lands in the left half
	page.SetPixel(18, 2, imaging.Black) // lands in the right half

	images := map[string]*imaging.Image{"wide.pnm": page}
	saved := map[string]*imaging.Image{}
	p := &Pipeline{Config: &cfg, Load: fixedLoader(images), Save: capturingSaver(saved)}

	if _, err := p.ProcessSheet(0, []string{"wide.pnm"}, []string{"left.pnm", "right.pnm"}, imaging.RectangleSize{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	left := saved["left.pnm"]
	right := saved["right.pnm"]
	if left == nil || right == nil {
		t.Fatal("expected both output pages to be saved")
	}
	if left.Width != 10 || right.Width != 10 {
		t.Fatalf("expected an even split, got widths %d and %d", left.Width, right.Width)
	}
	if left.GetPixel(2, 2) != imaging.Black {
		t.Fatal("expected the left-half mark to land in the left page")
	}
	if right.GetPixel(8, 2) != imaging.Black {
		t.Fatal("expected the right-half mark to land in the right page")
	}
}
