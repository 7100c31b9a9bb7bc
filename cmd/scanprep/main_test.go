package main

import (
	"testing"

	"github.com/unpaper/scanprep/pkg/cli"
	"github.com/unpaper/scanprep/pkg/config"
	"github.com/unpaper/scanprep/pkg/imaging"
)

func TestParseRectangle(t *testing.T) {
	r, err := parseRectangle("1,2,3,4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := imaging.Rectangle{Vertex: [2]imaging.Point{{X: 1, Y: 2}, {X: 3, Y: 4}}}
	if r != want {
		t.Fatalf("expected %+v, got %+v", want, r)
	}
}

func TestParseRectangleInvalid(t *testing.T) {
	if _, err := parseRectangle("1,2,3"); err == nil {
		t.Fatal("expected an error for a rectangle with too few coordinates")
	}
}

func TestParseBorder(t *testing.T) {
	b, err := parseBorder("1,2,3,4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := imaging.Border{Left: 1, Top: 2, Right: 3, Bottom: 4}
	if b != want {
		t.Fatalf("expected %+v, got %+v", want, b)
	}
}

func TestParseSizeAcceptsXOrLowercaseX(t *testing.T) {
	s, err := parseSize("100X200")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Width != 100 || s.Height != 200 {
		t.Fatalf("unexpected size: %+v", s)
	}
}

func TestParseMirrorBothAxes(t *testing.T) {
	h, v := parseMirror("h,v")
	if !h || !v {
		t.Fatal("expected both axes set for \"h,v\"")
	}
}

func TestParseMirrorEmpty(t *testing.T) {
	h, v := parseMirror("")
	if h || v {
		t.Fatal("expected neither axis set for an empty string")
	}
}

func TestParseAlignCombinesEdges(t *testing.T) {
	p := parseAlign("left,top")
	if !p.Left || !p.Top || p.Right || p.Bottom {
		t.Fatalf("unexpected align params: %+v", p)
	}
}

func TestParseColorName(t *testing.T) {
	if parseColorName("black") != imaging.Black {
		t.Fatal("expected \"black\" to resolve to imaging.Black")
	}
	if parseColorName("white") != imaging.White {
		t.Fatal("expected \"white\" to resolve to imaging.White")
	}
}

func TestResolvePathsSplitsInputsAndOutputs(t *testing.T) {
	f := &cli.ParsedFlags{Positional: []string{"a.pbm", "b.pbm", "out.pbm"}}
	cfg := config.Default()
	inputs, outputs, err := resolvePaths(f, &cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(inputs) != 2 || len(outputs) != 1 {
		t.Fatalf("expected 2 inputs and 1 output, got %d and %d", len(inputs), len(outputs))
	}
	if outputs[0] != "out.pbm" {
		t.Fatalf("unexpected output path: %q", outputs[0])
	}
}

func TestResolvePathsInsertBlank(t *testing.T) {
	f := &cli.ParsedFlags{Positional: []string{"a.pbm", "b.pbm", "out.pbm"}, InsertBlank: "0"}
	cfg := config.Default()
	inputs, _, err := resolvePaths(f, &cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(inputs) != 3 || inputs[0] != "" {
		t.Fatalf("expected a blank page inserted at position 0, got %+v", inputs)
	}
}

func TestResolvePathsRequiresInputAndOutput(t *testing.T) {
	f := &cli.ParsedFlags{Positional: []string{"only.pbm"}}
	cfg := config.Default()
	if _, _, err := resolvePaths(f, &cfg); err == nil {
		t.Fatal("expected an error when fewer than 2 positionals are given")
	}
}

func TestApplyFlagsOverlaysOntoDefaults(t *testing.T) {
	cfg := config.Default()
	f := &cli.ParsedFlags{NoBlackfilter: true, BlackfilterIntensity: 42, Type: "png"}
	if err := applyFlags(&cfg, f); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.NoBlackfilter {
		t.Fatal("expected NoBlackfilter to be overlaid")
	}
	if cfg.Blackfilter.Intensity != 42 {
		t.Fatalf("expected intensity 42, got %d", cfg.Blackfilter.Intensity)
	}
	if cfg.OutputType != "png" {
		t.Fatalf("expected output type png, got %q", cfg.OutputType)
	}
	// Untouched fields keep their config.Default() values.
	if cfg.Blackfilter.ScanDepth != 500 {
		t.Fatalf("expected untouched ScanDepth to remain at its default, got %d", cfg.Blackfilter.ScanDepth)
	}
}
