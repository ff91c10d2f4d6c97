// Package record assembles candidate element records from capture results
// and operator-supplied fields. Building is pure: no I/O, no validation.
package record

import (
	"path"
	"time"

	"github.com/element-digitizer/element-digitizer/internal/capture"
	"github.com/element-digitizer/element-digitizer/internal/model"
)

// Fields is the flat operator input collected by the form collaborator
// (CLI flags, MCP tool arguments, or a GUI form).
type Fields struct {
	ElementID           string
	ElementName         string
	ElementType         string
	ParentElementID     string
	ModuleName          string
	AnchorID            string
	Tooltip             string
	DefaultAction       string
	ExpectedOutcomeDesc string
	SoftwareVersion     string
	Author              string
	IsEnabled           bool
	IsVisible           bool
}

// Builder turns a capture result plus operator fields into a candidate
// record. With a frozen clock the output is fully deterministic.
type Builder struct {
	// Root is the repository root name recorded in screenshot_path.
	Root string
	// Now supplies timestamps; defaults to time.Now.
	Now func() time.Time
}

// NewBuilder creates a builder for the given repository root.
func NewBuilder(root string) *Builder {
	return &Builder{Root: root, Now: time.Now}
}

// ScreenshotPath returns the repository-relative screenshot location
// recorded in the JSON document, always slash-separated.
func (b *Builder) ScreenshotPath(elementID string) string {
	return path.Join(b.Root, "ui_elements", "screenshots", elementID+".png")
}

// Build assembles a candidate record. Both timestamps are stamped with the
// current time; the repository preserves created_at on overwrite.
func (b *Builder) Build(res *capture.Result, f Fields) model.ElementRecord {
	now := b.Now()

	name := f.ElementName
	if name == "" {
		name = f.ElementID
	}
	module := f.ModuleName
	if module == "" {
		module = model.DefaultModule
	}

	return model.ElementRecord{
		SchemaVersion:   model.SchemaVersion,
		ElementID:       f.ElementID,
		ElementName:     name,
		ElementType:     f.ElementType,
		ParentElementID: f.ParentElementID,
		LocationInfo: model.LocationInfo{
			ScreenshotPath: b.ScreenshotPath(f.ElementID),
			BoundingBox:    res.Region.BoundingBox(),
			AnchorID:       f.AnchorID,
		},
		StateInfo: model.StateInfo{
			IsEnabled: f.IsEnabled,
			IsVisible: f.IsVisible,
			Tooltip:   f.Tooltip,
		},
		ActionInfo: model.ActionInfo{
			DefaultAction:       f.DefaultAction,
			ExpectedOutcomeDesc: f.ExpectedOutcomeDesc,
		},
		Metadata: model.Metadata{
			SoftwareVersion: f.SoftwareVersion,
			Author:          f.Author,
			CreatedAt:       now,
			UpdatedAt:       now,
		},
		ModuleName: module,
	}
}
