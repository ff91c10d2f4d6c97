//go:build darwin

package darwin

import "github.com/element-digitizer/element-digitizer/internal/platform"

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		return &platform.Provider{Grabber: NewGrabber()}, nil
	}
}
