package cmd

import (
	"errors"
	"fmt"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"github.com/element-digitizer/element-digitizer/internal/capture"
	"github.com/element-digitizer/element-digitizer/internal/model"
	"github.com/element-digitizer/element-digitizer/internal/output"
	"github.com/element-digitizer/element-digitizer/internal/overlay"
	"github.com/element-digitizer/element-digitizer/internal/platform"
	"github.com/element-digitizer/element-digitizer/internal/record"
	"github.com/element-digitizer/element-digitizer/internal/repo"
	"github.com/element-digitizer/element-digitizer/internal/schema"
)

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Capture a screen region and persist it as an element record",
	Long: `Run one full capture cycle: grab the screen, select the region given by
--bbox, crop it, attach the metadata fields, validate the candidate record,
and persist the JSON+PNG artifact pair.

Examples:
  element-digitizer capture --bbox 100,150,200,180 --id main_menu_button \
    --type button --action click --software-version v1.2.3 --author alice
  element-digitizer capture --bbox 10,10,80,24 --id save_button --dry-run`,
	RunE: runCapture,
}

func init() {
	rootCmd.AddCommand(captureCmd)
	captureCmd.Flags().String("bbox", "", "Selection rectangle as left,top,w,h (required)")
	captureCmd.Flags().String("id", "", "Element ID (lowercase letters, digits, underscores)")
	captureCmd.Flags().String("name", "", "Element display name (default: element ID)")
	captureCmd.Flags().String("type", "button", "Element type (button, input_field, ...)")
	captureCmd.Flags().String("action", "click", "Default action (click, double_click, ...)")
	captureCmd.Flags().String("module", "", "Module partition (default from config)")
	captureCmd.Flags().String("parent", "", "Parent element ID (must already exist)")
	captureCmd.Flags().String("anchor", "", "Anchor element ID (must already exist)")
	captureCmd.Flags().String("tooltip", "", "Tooltip text")
	captureCmd.Flags().String("outcome", "", "Expected outcome description")
	captureCmd.Flags().String("software-version", "", "Software version under annotation")
	captureCmd.Flags().String("author", "", "Annotator name")
	captureCmd.Flags().Bool("disabled", false, "Mark the element as disabled")
	captureCmd.Flags().Bool("invisible", false, "Mark the element as not visible")
	captureCmd.Flags().Bool("overwrite", false, "Replace an existing record with the same ID")
	captureCmd.Flags().Bool("dry-run", false, "Capture and validate without persisting")
	captureCmd.Flags().String("preview", "", "Write a selection preview image to this path")
	_ = captureCmd.MarkFlagRequired("bbox")
	_ = captureCmd.MarkFlagRequired("id")
}

// collectFields builds the operator field set from flags and config
// defaults.
func collectFields(cmd *cobra.Command) record.Fields {
	str := func(name string) string {
		v, _ := cmd.Flags().GetString(name)
		return v
	}
	disabled, _ := cmd.Flags().GetBool("disabled")
	invisible, _ := cmd.Flags().GetBool("invisible")

	f := record.Fields{
		ElementID:           str("id"),
		ElementName:         str("name"),
		ElementType:         str("type"),
		ParentElementID:     str("parent"),
		ModuleName:          str("module"),
		AnchorID:            str("anchor"),
		Tooltip:             str("tooltip"),
		DefaultAction:       str("action"),
		ExpectedOutcomeDesc: str("outcome"),
		SoftwareVersion:     str("software-version"),
		Author:              str("author"),
		IsEnabled:           !disabled,
		IsVisible:           !invisible,
	}
	if f.ModuleName == "" {
		f.ModuleName = cfg.DefaultModule
	}
	if f.SoftwareVersion == "" {
		f.SoftwareVersion = cfg.SoftwareVersion
	}
	if f.Author == "" {
		f.Author = cfg.Author
	}
	return f
}

func runCapture(cmd *cobra.Command, args []string) error {
	bboxStr, _ := cmd.Flags().GetString("bbox")
	rect, err := model.ParseBBox(bboxStr)
	if err != nil {
		return err
	}

	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}

	session := capture.NewSession(provider.Grabber)
	result, err := session.TryRun(capture.BBoxSource(rect))
	if errors.Is(err, capture.ErrCancelled) {
		return fmt.Errorf("selection %s rejected: must be at least %dx%d pixels",
			rect, capture.MinSelectionSize, capture.MinSelectionSize)
	}
	if err != nil {
		return err
	}

	if preview, _ := cmd.Flags().GetString("preview"); preview != "" {
		if err := writePreview(preview, result); err != nil {
			return err
		}
	}

	fields := collectFields(cmd)
	builder := record.NewBuilder(cfg.DatabaseRoot)
	rec := builder.Build(result, fields)

	repository := repo.New(cfg.DatabaseRoot)
	overwrite, _ := cmd.Flags().GetBool("overwrite")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	report := output.SaveReport{
		ElementID:   rec.ElementID,
		Module:      rec.Module(),
		BoundingBox: rec.LocationInfo.BoundingBox,
		DryRun:      dryRun,
	}

	var validator schema.Validator
	if err := validator.Validate(rec, repository, overwrite); err != nil {
		var vErr *schema.ValidationError
		if errors.As(err, &vErr) {
			report.Issues = vErr.Issues
			if printErr := output.Print(report); printErr != nil {
				return printErr
			}
			return fmt.Errorf("record rejected with %d issue(s)", len(vErr.Issues))
		}
		return err
	}

	if dryRun {
		report.OK = true
		return output.Print(report)
	}

	saved, err := repository.Save(rec, result.Image)
	if err != nil {
		return err
	}

	report.OK = true
	report.JSONPath = saved.JSONPath
	report.ScreenshotPath = saved.ScreenshotPath
	return output.Print(report)
}

// writePreview renders the finalized selection over the backdrop, the same
// frame the interactive overlay shows before release.
func writePreview(path string, result *capture.Result) error {
	frame := overlay.RenderPreview(result.Backdrop, result.Region)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create preview: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, frame); err != nil {
		return fmt.Errorf("encode preview: %w", err)
	}
	return nil
}
