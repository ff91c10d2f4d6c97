//go:build darwin

// Package darwin implements screen capture for macOS by shelling out to
// the system screencapture utility, avoiding a cgo dependency.
package darwin

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/element-digitizer/element-digitizer/internal/model"
	"github.com/element-digitizer/element-digitizer/internal/platform"
)

const screencaptureBin = "/usr/sbin/screencapture"

// Grabber captures the screen via /usr/sbin/screencapture.
type Grabber struct{}

// NewGrabber creates a macOS screen grabber.
func NewGrabber() *Grabber {
	return &Grabber{}
}

// CaptureScreen captures the entire primary display.
func (g *Grabber) CaptureScreen() (image.Image, error) {
	return g.run(nil)
}

// CaptureRegion captures a screen-absolute region.
func (g *Grabber) CaptureRegion(r model.Rect) (image.Image, error) {
	if r.Empty() {
		return nil, fmt.Errorf("capture region %s is empty", r)
	}
	return g.run([]string{"-R", fmt.Sprintf("%d,%d,%d,%d", r.Left, r.Top, r.Width, r.Height)})
}

// run invokes screencapture with the given extra arguments, writing a PNG
// to a temporary file and decoding it.
func (g *Grabber) run(extra []string) (image.Image, error) {
	tmp, err := os.CreateTemp("", "element-digitizer-*.png")
	if err != nil {
		return nil, &platform.CaptureError{Op: "tempfile", Err: err}
	}
	path := tmp.Name()
	tmp.Close()
	defer os.Remove(path)

	args := []string{"-x", "-t", "png"}
	args = append(args, extra...)
	args = append(args, path)

	out, err := exec.Command(screencaptureBin, args...).CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg == "" {
			msg = err.Error()
		}
		return nil, &platform.CaptureError{
			Op: "screencapture",
			Err: fmt.Errorf("%s (grant Screen Recording permission in "+
				"System Settings > Privacy & Security > Screen Recording): %s",
				filepath.Base(screencaptureBin), msg),
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &platform.CaptureError{Op: "open", Err: err}
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, &platform.CaptureError{Op: "decode", Err: err}
	}
	return img, nil
}
