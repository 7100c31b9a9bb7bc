package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/unpaper/scanprep/pkg/imaging"
)

// namedPaperSizesMM holds ISO/US paper dimensions in millimetres
// (width, height), portrait orientation.
var namedPaperSizesMM = map[string][2]float64{
	"a3":     {297, 420},
	"a4":     {210, 297},
	"a5":     {148, 210},
	"letter": {215.9, 279.4},
	"legal":  {215.9, 355.6},
}

const mmPerInch = 25.4

// ParseSheetSize parses "--sheet-size" values: either a raw "WxH" pixel
// pair, or a named paper size (a3, a4, a5, letter, legal) rendered to
// pixels at the given dpi.
func ParseSheetSize(s string, dpi float64) (imaging.RectangleSize, error) {
	s = strings.TrimSpace(s)
	if dims, ok := namedPaperSizesMM[strings.ToLower(s)]; ok {
		if dpi <= 0 {
			return imaging.RectangleSize{}, fmt.Errorf("named paper size %q requires a positive --dpi", s)
		}
		w := int(dims[0] / mmPerInch * dpi)
		h := int(dims[1] / mmPerInch * dpi)
		return imaging.RectangleSize{Width: w, Height: h}, nil
	}

	xIdx := strings.IndexAny(s, "xX")
	if xIdx <= 0 || xIdx >= len(s)-1 {
		return imaging.RectangleSize{}, fmt.Errorf("invalid sheet size %q: expected WxH or a named paper size", s)
	}
	w, err := strconv.Atoi(strings.TrimSpace(s[:xIdx]))
	if err != nil {
		return imaging.RectangleSize{}, fmt.Errorf("invalid sheet size width in %q: %w", s, err)
	}
	h, err := strconv.Atoi(strings.TrimSpace(s[xIdx+1:]))
	if err != nil {
		return imaging.RectangleSize{}, fmt.Errorf("invalid sheet size height in %q: %w", s, err)
	}
	return imaging.RectangleSize{Width: w, Height: h}, nil
}

// ParseFilenameTemplate expands a "%d"-style page-number placeholder
// (e.g. "scan-%03d.pbm") for the given page number. Filenames with no
// placeholder are returned unchanged.
func ParseFilenameTemplate(template string, page int) string {
	if !strings.Contains(template, "%") {
		return template
	}
	return fmt.Sprintf(template, page)
}
