package sheet

import (
	"fmt"

	"github.com/unpaper/scanprep/pkg/imaging"
	"github.com/unpaper/scanprep/pkg/logging"
)

// DumpDebug writes img to a "<stem>_debug-<stage>-<sheetNumber>.pnm" file
// via save when verbosity is at or above Debug. A write failure is
// logged, never fatal — debug dumps are diagnostic only.
func DumpDebug(log *logging.Logger, save Saver, stem, stage string, sheetNumber int, img *imaging.Image) {
	if log == nil || log.Level < logging.LevelDebug {
		return
	}
	path := fmt.Sprintf("%s_debug-%s-%d.pnm", stem, stage, sheetNumber)
	if err := save(path, img); err != nil {
		log.Verbose(logging.LevelDebug, "debug dump %q failed: %v", path, err)
	}
}
