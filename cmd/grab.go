package cmd

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"github.com/element-digitizer/element-digitizer/internal/model"
	"github.com/element-digitizer/element-digitizer/internal/platform"
)

var grabCmd = &cobra.Command{
	Use:   "grab",
	Short: "Capture a raw screenshot",
	Long:  "Capture the full screen or a region as a lossless PNG, without creating a record.",
	RunE:  runGrab,
}

func init() {
	rootCmd.AddCommand(grabCmd)
	grabCmd.Flags().String("bbox", "", "Capture only this region (left,top,w,h)")
	grabCmd.Flags().String("output", "", "Output file path (default: stdout as base64)")
}

func runGrab(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}

	bboxStr, _ := cmd.Flags().GetString("bbox")
	out, _ := cmd.Flags().GetString("output")

	var img image.Image
	if bboxStr != "" {
		rect, err := model.ParseBBox(bboxStr)
		if err != nil {
			return err
		}
		img, err = provider.Grabber.CaptureRegion(rect)
		if err != nil {
			return err
		}
	} else {
		img, err = provider.Grabber.CaptureScreen()
		if err != nil {
			return err
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}

	if out != "" {
		return os.WriteFile(out, buf.Bytes(), 0o644)
	}

	// Default: base64 to stdout for easy agent consumption
	encoder := base64.NewEncoder(base64.StdEncoding, os.Stdout)
	if _, err := encoder.Write(buf.Bytes()); err != nil {
		return err
	}
	if err := encoder.Close(); err != nil {
		return err
	}
	fmt.Println()
	return nil
}
