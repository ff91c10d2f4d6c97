// Package schema enforces the UI Element Schema v1.0 contract: structural
// and semantic rules on candidate records before persistence, and JSON
// Schema conformance for documents already on disk.
package schema

import (
	"fmt"
	"strings"

	"github.com/element-digitizer/element-digitizer/internal/model"
)

// Lookup resolves existing element ids within a module. The validator is
// stateless; every call consults the injected lookup.
type Lookup interface {
	Exists(module, elementID string) (bool, error)
}

// Issue is one rule failure, reported as field → reason.
type Issue struct {
	Field  string `yaml:"field"  json:"field"`
	Reason string `yaml:"reason" json:"reason"`
}

// ValidationError carries all rule failures of the first failing category.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Issues))
	for i, is := range e.Issues {
		parts[i] = fmt.Sprintf("%s: %s", is.Field, is.Reason)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validator checks candidate records. Categories run in order — presence,
// format, referential, uniqueness — short-circuiting on the first failing
// category but accumulating every failure within it, so the operator gets
// one complete report per category.
type Validator struct{}

// Validate checks the candidate against all rule categories. overwrite
// permits an existing element_id to be replaced; without it a duplicate id
// is a hard rejection. The candidate is never mutated.
func (Validator) Validate(rec model.ElementRecord, lookup Lookup, overwrite bool) error {
	if issues := checkPresence(rec); len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	if issues := checkFormat(rec); len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}

	issues, err := checkReferences(rec, lookup)
	if err != nil {
		return fmt.Errorf("referential check: %w", err)
	}
	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}

	exists, err := lookup.Exists(rec.Module(), rec.ElementID)
	if err != nil {
		return fmt.Errorf("uniqueness check: %w", err)
	}
	if exists && !overwrite {
		return &ValidationError{Issues: []Issue{{
			Field:  "element_id",
			Reason: fmt.Sprintf("%q already exists in module %q (pass overwrite to replace)", rec.ElementID, rec.Module()),
		}}}
	}
	return nil
}

// Audit runs the persistence-independent categories (presence, format) and
// the referential checks on a record that is already on disk. Uniqueness
// does not apply: a persisted record legitimately exists under its own id.
func (Validator) Audit(rec model.ElementRecord, lookup Lookup) ([]Issue, error) {
	var issues []Issue
	issues = append(issues, checkPresence(rec)...)
	issues = append(issues, checkFormat(rec)...)
	refIssues, err := checkReferences(rec, lookup)
	if err != nil {
		return nil, err
	}
	return append(issues, refIssues...), nil
}

func checkPresence(rec model.ElementRecord) []Issue {
	var issues []Issue
	if rec.ElementID == "" {
		issues = append(issues, Issue{Field: "element_id", Reason: "required"})
	}
	if rec.ActionInfo.DefaultAction == "" {
		issues = append(issues, Issue{Field: "action_info.default_action", Reason: "required"})
	}
	if rec.Metadata.SoftwareVersion == "" {
		issues = append(issues, Issue{Field: "metadata.software_version", Reason: "required"})
	}
	if rec.Metadata.Author == "" {
		issues = append(issues, Issue{Field: "metadata.author", Reason: "required"})
	}
	return issues
}

func checkFormat(rec model.ElementRecord) []Issue {
	var issues []Issue
	if !model.ValidElementID(rec.ElementID) {
		issues = append(issues, Issue{
			Field:  "element_id",
			Reason: "must contain only lowercase letters, digits, and underscores",
		})
	}
	if !model.ValidModuleName(rec.Module()) {
		issues = append(issues, Issue{
			Field:  "module_name",
			Reason: "must contain only lowercase letters, digits, and underscores",
		})
	}
	bbox := rec.LocationInfo.BoundingBox
	if bbox[0] < 0 || bbox[1] < 0 {
		issues = append(issues, Issue{
			Field:  "location_info.bounding_box",
			Reason: "left and top must be non-negative",
		})
	}
	if bbox[2] <= 0 || bbox[3] <= 0 {
		issues = append(issues, Issue{
			Field:  "location_info.bounding_box",
			Reason: "width and height must be positive",
		})
	}
	if !model.IsElementType(rec.ElementType) {
		issues = append(issues, Issue{
			Field:  "element_type",
			Reason: fmt.Sprintf("%q is not a known element type (expected one of: %s)", rec.ElementType, strings.Join(model.ElementTypes, ", ")),
		})
	}
	if !model.IsDefaultAction(rec.ActionInfo.DefaultAction) {
		issues = append(issues, Issue{
			Field:  "action_info.default_action",
			Reason: fmt.Sprintf("%q is not a known action (expected one of: %s)", rec.ActionInfo.DefaultAction, strings.Join(model.DefaultActions, ", ")),
		})
	}
	return issues
}

func checkReferences(rec model.ElementRecord, lookup Lookup) ([]Issue, error) {
	var issues []Issue
	refs := []struct {
		field string
		id    string
	}{
		{"parent_element_id", rec.ParentElementID},
		{"location_info.anchor_id", rec.LocationInfo.AnchorID},
	}
	for _, ref := range refs {
		if ref.id == "" {
			continue
		}
		exists, err := lookup.Exists(rec.Module(), ref.id)
		if err != nil {
			return nil, err
		}
		if !exists {
			issues = append(issues, Issue{
				Field:  ref.field,
				Reason: fmt.Sprintf("references unknown element %q in module %q", ref.id, rec.Module()),
			})
		}
	}
	return issues, nil
}
