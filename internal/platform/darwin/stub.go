//go:build !darwin

// Package darwin provides macOS screen capture. On other platforms it
// compiles as an empty stub so the blank import in main stays portable;
// platform.NewProvider then reports ErrUnsupported.
package darwin
