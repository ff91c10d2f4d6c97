// Package output serializes command results to stdout as YAML or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/element-digitizer/element-digitizer/internal/schema"
)

// Format represents the output format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// OutputFormat is the current output format, set by the root command's
// --format flag.
var OutputFormat Format = FormatYAML

// PrettyOutput enables pretty-printing for JSON output.
var PrettyOutput bool

// Writer receives all printed output; tests may redirect it.
var Writer io.Writer = os.Stdout

// SaveReport is the top-level output of the `capture` command.
type SaveReport struct {
	OK             bool           `yaml:"ok"                        json:"ok"`
	DryRun         bool           `yaml:"dry_run,omitempty"         json:"dry_run,omitempty"`
	ElementID      string         `yaml:"element_id"                json:"element_id"`
	Module         string         `yaml:"module"                    json:"module"`
	BoundingBox    [4]int         `yaml:"bounding_box"              json:"bounding_box"`
	JSONPath       string         `yaml:"json_path,omitempty"       json:"json_path,omitempty"`
	ScreenshotPath string         `yaml:"screenshot_path,omitempty" json:"screenshot_path,omitempty"`
	Issues         []schema.Issue `yaml:"issues,omitempty"          json:"issues,omitempty"`
}

// ListReport is the top-level output of the `list` command.
type ListReport struct {
	Module string   `yaml:"module" json:"module"`
	Count  int      `yaml:"count"  json:"count"`
	IDs    []string `yaml:"ids"    json:"ids"`
}

// CheckProblem is one defect found by the `check` command.
type CheckProblem struct {
	Path   string `yaml:"path"   json:"path"`
	Reason string `yaml:"reason" json:"reason"`
}

// CheckReport is the top-level output of the `check` command.
type CheckReport struct {
	Checked  int            `yaml:"checked"            json:"checked"`
	Problems []CheckProblem `yaml:"problems,omitempty" json:"problems,omitempty"`
}

// Print serializes v in the current output format.
func Print(v interface{}) error {
	switch OutputFormat {
	case FormatJSON:
		return PrintJSON(v, PrettyOutput)
	case FormatYAML:
		return PrintYAML(v)
	default:
		return fmt.Errorf("unsupported output format: %s", OutputFormat)
	}
}

// PrintJSON serializes v as JSON, single-line unless pretty.
func PrintJSON(v interface{}, pretty bool) error {
	enc := json.NewEncoder(Writer)
	if pretty {
		enc.SetIndent("", "  ")
	}
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}

// PrintYAML serializes v as YAML.
func PrintYAML(v interface{}) error {
	enc := yaml.NewEncoder(Writer)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}
