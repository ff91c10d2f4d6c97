package platform

import (
	"image"

	"github.com/element-digitizer/element-digitizer/internal/model"
)

// Grabber captures raster images from the OS display buffer.
type Grabber interface {
	// CaptureScreen captures the entire primary display.
	CaptureScreen() (image.Image, error)

	// CaptureRegion captures the given screen-absolute region.
	CaptureRegion(r model.Rect) (image.Image, error)
}
