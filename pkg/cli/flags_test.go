package cli

import "testing"

func TestParseArgsPositionalsAndFlags(t *testing.T) {
	f, err := ParseArgs([]string{"--no-blackfilter", "--black-threshold", "40%", "in.pbm", "out.pbm"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !f.NoBlackfilter {
		t.Fatal("expected --no-blackfilter to be set")
	}
	if f.BlackThreshold != 0.4 {
		t.Fatalf("expected a 40%% threshold to parse as 0.4, got %f", f.BlackThreshold)
	}
	if len(f.Positional) != 2 || f.Positional[0] != "in.pbm" || f.Positional[1] != "out.pbm" {
		t.Fatalf("unexpected positionals: %+v", f.Positional)
	}
}

func TestParseArgsRepeatedFlagsAccumulate(t *testing.T) {
	f, err := ParseArgs([]string{"--wipe", "0,0,9,9", "--wipe", "10,10,19,19"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.Wipe) != 2 || f.Wipe[0] != "0,0,9,9" || f.Wipe[1] != "10,10,19,19" {
		t.Fatalf("expected two accumulated wipe rectangles, got %+v", f.Wipe)
	}
}

func TestParseArgsVerbositySticksAtHighestSeen(t *testing.T) {
	f, err := ParseArgs([]string{"--vvv", "--verbose"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Verbosity != 3 {
		t.Fatalf("expected verbosity to stay at the highest flag seen (3), got %d", f.Verbosity)
	}
}

func TestParseArgsUnknownFlagErrors(t *testing.T) {
	if _, err := ParseArgs([]string{"--does-not-exist"}); err == nil {
		t.Fatal("expected an error for an unrecognized flag")
	}
}

func TestParseArgsMissingValueErrors(t *testing.T) {
	if _, err := ParseArgs([]string{"--dpi"}); err == nil {
		t.Fatal("expected an error when a value-taking flag is the last argument")
	}
}

func TestParseArgsDefaults(t *testing.T) {
	f, err := ParseArgs(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.EndSheet != -1 || f.InputPages != 1 || f.OutputPages != 1 || f.Zoom != 1.0 || f.PostZoom != 1.0 {
		t.Fatalf("unexpected defaults: %+v", f)
	}
}

func TestParsePercentOrFloatBareNumber(t *testing.T) {
	v, err := parsePercentOrFloat("0.25")
	if err != nil || v != 0.25 {
		t.Fatalf("expected 0.25, got %f, err=%v", v, err)
	}
}

func TestParsePercentOrFloatInvalid(t *testing.T) {
	if _, err := parsePercentOrFloat("not-a-number"); err == nil {
		t.Fatal("expected an error for a non-numeric value")
	}
}
