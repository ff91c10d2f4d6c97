package capture

import (
	"image"
	"time"

	"github.com/element-digitizer/element-digitizer/internal/model"
)

// Result is one successful capture: the cropped image, the selection that
// produced it, and the full-screen backdrop it was cut from. It lives only
// for the current capture-to-save cycle; the repository is the system of
// record.
type Result struct {
	Image      image.Image
	Region     model.Rect
	Backdrop   image.Image
	CapturedAt time.Time
}
