package platform

import (
	"fmt"
	"runtime"
)

// Provider bundles the platform backends for the current OS.
type Provider struct {
	Grabber Grabber
}

// ErrUnsupported is returned on unsupported platforms.
var ErrUnsupported = fmt.Errorf("element-digitizer is not supported on %s/%s; supported: darwin/amd64, darwin/arm64", runtime.GOOS, runtime.GOARCH)

// NewProviderFunc is set by platform-specific packages via init().
// See internal/platform/darwin for the macOS registration.
var NewProviderFunc func() (*Provider, error)

// NewProvider returns a Provider for the current OS.
func NewProvider() (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrUnsupported
	}
	return NewProviderFunc()
}

// CaptureError wraps a display acquisition failure. The capture session
// aborts to idle when it sees one; no partial state is retained.
type CaptureError struct {
	Op  string
	Err error
}

func (e *CaptureError) Error() string {
	return fmt.Sprintf("screen capture failed (%s): %v", e.Op, e.Err)
}

func (e *CaptureError) Unwrap() error {
	return e.Err
}
