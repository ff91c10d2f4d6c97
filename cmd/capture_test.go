package cmd

import (
	"testing"

	"github.com/element-digitizer/element-digitizer/internal/config"
)

func TestCollectFieldsConfigDefaults(t *testing.T) {
	prev := cfg
	defer func() { cfg = prev }()
	cfg = config.Config{
		DatabaseRoot:    "database",
		DefaultModule:   "editor",
		Author:          "config_author",
		SoftwareVersion: "3.0.0",
	}

	if err := captureCmd.Flags().Set("id", "save_button"); err != nil {
		t.Fatal(err)
	}
	defer captureCmd.Flags().Set("id", "")

	f := collectFields(captureCmd)

	if f.ElementID != "save_button" {
		t.Errorf("ElementID = %q", f.ElementID)
	}
	if f.ElementType != "button" || f.DefaultAction != "click" {
		t.Errorf("type/action defaults = %q/%q", f.ElementType, f.DefaultAction)
	}
	if f.ModuleName != "editor" {
		t.Errorf("ModuleName = %q, want config default", f.ModuleName)
	}
	if f.Author != "config_author" {
		t.Errorf("Author = %q, want config default", f.Author)
	}
	if f.SoftwareVersion != "3.0.0" {
		t.Errorf("SoftwareVersion = %q, want config default", f.SoftwareVersion)
	}
	if !f.IsEnabled || !f.IsVisible {
		t.Errorf("state defaults = %v/%v, want enabled and visible", f.IsEnabled, f.IsVisible)
	}
}

func TestCollectFieldsFlagsOverrideConfig(t *testing.T) {
	prev := cfg
	defer func() { cfg = prev }()
	cfg = config.Config{
		DatabaseRoot:  "database",
		DefaultModule: "editor",
		Author:        "config_author",
	}

	set := func(name, value string) {
		t.Helper()
		if err := captureCmd.Flags().Set(name, value); err != nil {
			t.Fatal(err)
		}
	}
	set("id", "ok_button")
	set("module", "settings")
	set("author", "flag_author")
	set("disabled", "true")
	defer func() {
		set("id", "")
		set("module", "")
		set("author", "")
		set("disabled", "false")
	}()

	f := collectFields(captureCmd)
	if f.ModuleName != "settings" {
		t.Errorf("ModuleName = %q, want flag value", f.ModuleName)
	}
	if f.Author != "flag_author" {
		t.Errorf("Author = %q, want flag value", f.Author)
	}
	if f.IsEnabled {
		t.Error("IsEnabled = true, want false with --disabled")
	}
}
