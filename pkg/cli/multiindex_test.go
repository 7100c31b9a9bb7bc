package cli

import "testing"

func TestAllSheetsContainsEverything(t *testing.T) {
	m := AllSheets()
	if !m.Contains(0) || !m.Contains(9999) {
		t.Fatal("expected AllSheets to contain any sheet number")
	}
}

func TestNoSheetsContainsNothing(t *testing.T) {
	m := NoSheets()
	if m.Contains(0) {
		t.Fatal("expected NoSheets to contain no sheet number")
	}
}

func TestParseMultiIndexCommaAndRange(t *testing.T) {
	m, err := ParseMultiIndex("1,3,5-7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []int{1, 3, 5, 6, 7} {
		if !m.Contains(want) {
			t.Fatalf("expected %d to be a member", want)
		}
	}
	for _, notWant := range []int{0, 2, 4, 8} {
		if m.Contains(notWant) {
			t.Fatalf("expected %d not to be a member", notWant)
		}
	}
}

func TestParseMultiIndexAllAndNone(t *testing.T) {
	all, err := ParseMultiIndex("all")
	if err != nil || !all.Contains(42) {
		t.Fatalf("expected \"all\" to parse as AllSheets, err=%v", err)
	}
	none, err := ParseMultiIndex("none")
	if err != nil || none.Contains(0) {
		t.Fatalf("expected \"none\" to parse as NoSheets, err=%v", err)
	}
}

func TestParseMultiIndexReversedRange(t *testing.T) {
	m, err := ParseMultiIndex("7-5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !m.Contains(5) || !m.Contains(6) || !m.Contains(7) {
		t.Fatal("expected a reversed range to still cover 5 through 7")
	}
}

func TestParseMultiIndexInvalidEntry(t *testing.T) {
	if _, err := ParseMultiIndex("abc"); err == nil {
		t.Fatal("expected an error for a non-numeric entry")
	}
}
