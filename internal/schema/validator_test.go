package schema

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/element-digitizer/element-digitizer/internal/model"
)

// fakeLookup is an in-memory module→ids map.
type fakeLookup map[string]map[string]bool

func (f fakeLookup) Exists(module, elementID string) (bool, error) {
	return f[module][elementID], nil
}

// errLookup fails every resolution.
type errLookup struct{}

func (errLookup) Exists(string, string) (bool, error) {
	return false, errors.New("index unavailable")
}

func validRecord() model.ElementRecord {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	return model.ElementRecord{
		SchemaVersion: model.SchemaVersion,
		ElementID:     "save_button",
		ElementName:   "Save",
		ElementType:   "button",
		LocationInfo: model.LocationInfo{
			ScreenshotPath: "database/ui_elements/screenshots/save_button.png",
			BoundingBox:    [4]int{100, 150, 200, 180},
		},
		StateInfo:  model.StateInfo{IsEnabled: true, IsVisible: true},
		ActionInfo: model.ActionInfo{DefaultAction: "click"},
		Metadata: model.Metadata{
			SoftwareVersion: "2.1.0",
			Author:          "annotator",
			CreatedAt:       now,
			UpdatedAt:       now,
		},
	}
}

func issueFields(err error) []string {
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		return nil
	}
	fields := make([]string, len(vErr.Issues))
	for i, is := range vErr.Issues {
		fields[i] = is.Field
	}
	return fields
}

func TestValidateAccepts(t *testing.T) {
	var v Validator
	if err := v.Validate(validRecord(), fakeLookup{}, false); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidatePresenceAccumulates(t *testing.T) {
	rec := validRecord()
	rec.ElementID = ""
	rec.ActionInfo.DefaultAction = ""
	rec.Metadata.Author = ""

	var v Validator
	err := v.Validate(rec, fakeLookup{}, false)
	fields := issueFields(err)
	want := []string{"element_id", "action_info.default_action", "metadata.author"}
	if len(fields) != len(want) {
		t.Fatalf("issue fields = %v, want %v", fields, want)
	}
	for i := range want {
		if fields[i] != want[i] {
			t.Errorf("issue[%d] = %q, want %q", i, fields[i], want[i])
		}
	}
}

func TestValidatePresenceShortCircuitsFormat(t *testing.T) {
	rec := validRecord()
	rec.ElementID = ""          // presence failure
	rec.ElementType = "gadget"  // format failure, must not be reported yet

	var v Validator
	err := v.Validate(rec, fakeLookup{}, false)
	for _, f := range issueFields(err) {
		if f == "element_type" {
			t.Error("format issue reported alongside presence failures")
		}
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.ElementRecord)
		field  string
	}{
		{
			name:   "uppercase id",
			mutate: func(r *model.ElementRecord) { r.ElementID = "Main_Button" },
			field:  "element_id",
		},
		{
			name:   "hyphenated id",
			mutate: func(r *model.ElementRecord) { r.ElementID = "main-button" },
			field:  "element_id",
		},
		{
			name:   "bad module",
			mutate: func(r *model.ElementRecord) { r.ModuleName = "Login Screen" },
			field:  "module_name",
		},
		{
			name:   "negative origin",
			mutate: func(r *model.ElementRecord) { r.LocationInfo.BoundingBox = [4]int{-1, 0, 10, 10} },
			field:  "location_info.bounding_box",
		},
		{
			name:   "zero width",
			mutate: func(r *model.ElementRecord) { r.LocationInfo.BoundingBox = [4]int{0, 0, 0, 10} },
			field:  "location_info.bounding_box",
		},
		{
			name:   "unknown type",
			mutate: func(r *model.ElementRecord) { r.ElementType = "hyperlink" },
			field:  "element_type",
		},
		{
			name:   "unknown action",
			mutate: func(r *model.ElementRecord) { r.ActionInfo.DefaultAction = "drag" },
			field:  "action_info.default_action",
		},
	}

	var v Validator
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord()
			tt.mutate(&rec)
			err := v.Validate(rec, fakeLookup{}, false)
			if err == nil {
				t.Fatal("Validate accepted a malformed record")
			}
			found := false
			for _, f := range issueFields(err) {
				if f == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("no issue for field %q in %v", tt.field, err)
			}
		})
	}
}

func TestValidateReferences(t *testing.T) {
	lookup := fakeLookup{"default": {"toolbar": true}}
	var v Validator

	rec := validRecord()
	rec.ParentElementID = "toolbar"
	rec.LocationInfo.AnchorID = "toolbar"
	if err := v.Validate(rec, lookup, false); err != nil {
		t.Fatalf("Validate with resolvable references: %v", err)
	}

	rec = validRecord()
	rec.ParentElementID = "ghost"
	err := v.Validate(rec, lookup, false)
	fields := issueFields(err)
	if len(fields) != 1 || fields[0] != "parent_element_id" {
		t.Errorf("issue fields = %v, want [parent_element_id]", fields)
	}

	// References resolve per module; the same id in another module does not
	// satisfy the reference.
	rec = validRecord()
	rec.ModuleName = "settings"
	rec.ParentElementID = "toolbar"
	if err := v.Validate(rec, lookup, false); err == nil {
		t.Error("Validate accepted a cross-module reference")
	}
}

func TestValidateUniqueness(t *testing.T) {
	lookup := fakeLookup{"default": {"save_button": true}}
	var v Validator

	err := v.Validate(validRecord(), lookup, false)
	fields := issueFields(err)
	if len(fields) != 1 || fields[0] != "element_id" {
		t.Fatalf("issue fields = %v, want [element_id]", fields)
	}

	// overwrite lifts the uniqueness rejection, nothing else.
	if err := v.Validate(validRecord(), lookup, true); err != nil {
		t.Errorf("Validate with overwrite: %v", err)
	}
}

func TestValidateLookupFailure(t *testing.T) {
	var v Validator
	rec := validRecord()
	rec.ParentElementID = "toolbar"

	err := v.Validate(rec, errLookup{}, false)
	if err == nil {
		t.Fatal("Validate succeeded with a failing lookup")
	}
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		t.Errorf("lookup failure reported as validation issues: %v", vErr)
	}
}

func TestAuditSkipsUniqueness(t *testing.T) {
	// A persisted record exists under its own id; Audit must not flag it.
	lookup := fakeLookup{"default": {"save_button": true}}
	var v Validator

	issues, err := v.Audit(validRecord(), lookup)
	if err != nil {
		t.Fatalf("Audit: %v", err)
	}
	if len(issues) != 0 {
		t.Errorf("issues = %v, want none", issues)
	}
}

func TestAuditAccumulatesAcrossCategories(t *testing.T) {
	rec := validRecord()
	rec.Metadata.Author = ""       // presence
	rec.ElementType = "gadget"     // format
	rec.ParentElementID = "ghost"  // referential

	var v Validator
	issues, err := v.Audit(rec, fakeLookup{"default": {"save_button": true}})
	if err != nil {
		t.Fatalf("Audit: %v", err)
	}
	if len(issues) != 3 {
		t.Errorf("Audit issues = %v, want 3", issues)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Issues: []Issue{
		{Field: "element_id", Reason: "required"},
		{Field: "metadata.author", Reason: "required"},
	}}
	msg := err.Error()
	if !strings.Contains(msg, "element_id: required") || !strings.Contains(msg, "metadata.author: required") {
		t.Errorf("Error() = %q", msg)
	}
}
