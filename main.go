// Package main is the entry point for element-digitizer.
package main

import (
	"github.com/element-digitizer/element-digitizer/cmd"

	// Register the macOS screen grabber.
	_ "github.com/element-digitizer/element-digitizer/internal/platform/darwin"
)

func main() {
	cmd.Execute()
}
