package cmd

import (
	"image"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/element-digitizer/element-digitizer/internal/model"
	"github.com/element-digitizer/element-digitizer/internal/output"
	"github.com/element-digitizer/element-digitizer/internal/repo"
)

func seedRecord(t *testing.T, r *repo.Repository, id, module string) model.ElementRecord {
	t.Helper()
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	rec := model.ElementRecord{
		SchemaVersion: model.SchemaVersion,
		ElementID:     id,
		ElementName:   id,
		ElementType:   "button",
		LocationInfo: model.LocationInfo{
			ScreenshotPath: "database/ui_elements/screenshots/" + id + ".png",
			BoundingBox:    [4]int{10, 10, 50, 20},
		},
		StateInfo:  model.StateInfo{IsEnabled: true, IsVisible: true},
		ActionInfo: model.ActionInfo{DefaultAction: "click"},
		Metadata: model.Metadata{
			SoftwareVersion: "2.1.0",
			Author:          "annotator",
			CreatedAt:       now,
			UpdatedAt:       now,
		},
		ModuleName: module,
	}
	if _, err := r.Save(rec, image.NewRGBA(image.Rect(0, 0, 50, 20))); err != nil {
		t.Fatalf("seed %s/%s: %v", module, id, err)
	}
	return rec
}

func TestBuildCheckReportCleanRepository(t *testing.T) {
	r := repo.New(t.TempDir())
	seedRecord(t, r, "save_button", "default")
	seedRecord(t, r, "cancel_button", "default")
	seedRecord(t, r, "menu_item_file", "editor")

	report, err := buildCheckReport(r)
	if err != nil {
		t.Fatalf("buildCheckReport: %v", err)
	}
	if report.Checked != 3 {
		t.Errorf("Checked = %d, want 3", report.Checked)
	}
	if len(report.Problems) != 0 {
		t.Errorf("Problems = %v, want none", report.Problems)
	}
}

func TestBuildCheckReportEmptyRepository(t *testing.T) {
	report, err := buildCheckReport(repo.New(t.TempDir()))
	if err != nil {
		t.Fatalf("buildCheckReport: %v", err)
	}
	if report.Checked != 0 || len(report.Problems) != 0 {
		t.Errorf("report = %+v, want empty", report)
	}
}

func TestBuildCheckReportFlagsMissingScreenshot(t *testing.T) {
	r := repo.New(t.TempDir())
	seedRecord(t, r, "save_button", "default")
	if err := os.Remove(r.ScreenshotPath("save_button")); err != nil {
		t.Fatal(err)
	}

	report, err := buildCheckReport(r)
	if err != nil {
		t.Fatalf("buildCheckReport: %v", err)
	}
	if !hasProblem(report.Problems, "missing paired screenshot") {
		t.Errorf("Problems = %v, want missing-screenshot defect", report.Problems)
	}
}

func TestBuildCheckReportFlagsOrphanScreenshot(t *testing.T) {
	r := repo.New(t.TempDir())
	seedRecord(t, r, "save_button", "default")
	if err := os.Remove(r.RecordPath("default", "save_button")); err != nil {
		t.Fatal(err)
	}

	report, err := buildCheckReport(r)
	if err != nil {
		t.Fatalf("buildCheckReport: %v", err)
	}
	if !hasProblem(report.Problems, "no paired JSON record") {
		t.Errorf("Problems = %v, want orphan-screenshot defect", report.Problems)
	}
}

func TestBuildCheckReportFlagsSchemaViolation(t *testing.T) {
	root := t.TempDir()
	r := repo.New(root)
	seedRecord(t, r, "save_button", "default")

	// Corrupt the document in place: a schema_version the contract rejects.
	path := r.RecordPath("default", "save_button")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	data = []byte(strings.Replace(string(data), `"schema_version": "1.0"`, `"schema_version": "9.9"`, 1))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	report, err := buildCheckReport(r)
	if err != nil {
		t.Fatalf("buildCheckReport: %v", err)
	}
	if len(report.Problems) == 0 {
		t.Error("schema violation not reported")
	}
}

func TestBuildCheckReportFlagsDanglingReference(t *testing.T) {
	root := t.TempDir()
	r := repo.New(root)
	rec := seedRecord(t, r, "save_button", "default")

	// Point the record at a parent that does not exist.
	rec.ParentElementID = "ghost_toolbar"
	if _, err := r.Save(rec, image.NewRGBA(image.Rect(0, 0, 50, 20))); err != nil {
		t.Fatal(err)
	}

	report, err := buildCheckReport(r)
	if err != nil {
		t.Fatalf("buildCheckReport: %v", err)
	}
	if !hasProblem(report.Problems, "references unknown element") {
		t.Errorf("Problems = %v, want dangling-reference defect", report.Problems)
	}
}

func TestBuildCheckReportUnreadableDocument(t *testing.T) {
	r := repo.New(t.TempDir())
	seedRecord(t, r, "save_button", "default")
	if err := os.WriteFile(r.RecordPath("default", "save_button"), []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	report, err := buildCheckReport(r)
	if err != nil {
		t.Fatalf("buildCheckReport: %v", err)
	}
	if len(report.Problems) == 0 {
		t.Error("unreadable document not reported")
	}
	if report.Checked != 1 {
		t.Errorf("Checked = %d, want 1", report.Checked)
	}
}

func hasProblem(problems []output.CheckProblem, fragment string) bool {
	for _, p := range problems {
		if strings.Contains(p.Reason, fragment) {
			return true
		}
	}
	return false
}
