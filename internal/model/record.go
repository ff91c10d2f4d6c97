package model

import "time"

// SchemaVersion is the fixed schema version literal written to every record.
const SchemaVersion = "1.0"

// DefaultModule is the record partition used when no module is specified.
const DefaultModule = "default"

// ElementRecord is one persisted UI element annotation, matching the
// UI Element Schema v1.0 JSON shape. The module name determines the on-disk
// partition and is not part of the serialized document.
type ElementRecord struct {
	SchemaVersion   string       `yaml:"schema_version"              json:"schema_version"`
	ElementID       string       `yaml:"element_id"                  json:"element_id"`
	ElementName     string       `yaml:"element_name"                json:"element_name"`
	ElementType     string       `yaml:"element_type"                json:"element_type"`
	ParentElementID string       `yaml:"parent_element_id,omitempty" json:"parent_element_id,omitempty"`
	LocationInfo    LocationInfo `yaml:"location_info"               json:"location_info"`
	StateInfo       StateInfo    `yaml:"state_info"                  json:"state_info"`
	ActionInfo      ActionInfo   `yaml:"action_info"                 json:"action_info"`
	Metadata        Metadata     `yaml:"metadata"                    json:"metadata"`

	ModuleName string `yaml:"-" json:"-"`
}

// LocationInfo describes where the element was captured on screen.
type LocationInfo struct {
	ScreenshotPath string `yaml:"screenshot_path"     json:"screenshot_path"`
	BoundingBox    [4]int `yaml:"bounding_box"        json:"bounding_box"`
	AnchorID       string `yaml:"anchor_id,omitempty" json:"anchor_id,omitempty"`
}

// StateInfo describes the element's interactive state at capture time.
type StateInfo struct {
	IsEnabled bool   `yaml:"is_enabled"        json:"is_enabled"`
	IsVisible bool   `yaml:"is_visible"        json:"is_visible"`
	Tooltip   string `yaml:"tooltip,omitempty" json:"tooltip,omitempty"`
}

// ActionInfo describes how automation should interact with the element.
type ActionInfo struct {
	DefaultAction       string `yaml:"default_action"                  json:"default_action"`
	ExpectedOutcomeDesc string `yaml:"expected_outcome_desc,omitempty" json:"expected_outcome_desc,omitempty"`
}

// Metadata carries provenance for the record. CreatedAt is set on first
// persistence and never changes; UpdatedAt advances on every persistence.
type Metadata struct {
	SoftwareVersion string    `yaml:"software_version" json:"software_version"`
	Author          string    `yaml:"author"           json:"author"`
	CreatedAt       time.Time `yaml:"created_at"       json:"created_at"`
	UpdatedAt       time.Time `yaml:"updated_at"       json:"updated_at"`
}

// Module returns the record's partition, defaulting to DefaultModule.
func (r ElementRecord) Module() string {
	if r.ModuleName == "" {
		return DefaultModule
	}
	return r.ModuleName
}
