package model

import "regexp"

// ElementTypes is the controlled vocabulary for element_type.
var ElementTypes = []string{
	"button", "input_field", "textarea", "dropdown",
	"checkbox", "radio_button", "menu_item", "tab",
	"dialog", "window", "icon", "label",
}

// DefaultActions is the controlled vocabulary for action_info.default_action.
var DefaultActions = []string{
	"click", "double_click", "right_click",
	"hover", "input_text", "select_option",
}

var elementTypeSet = toSet(ElementTypes)
var defaultActionSet = toSet(DefaultActions)

func toSet(vals []string) map[string]bool {
	m := make(map[string]bool, len(vals))
	for _, v := range vals {
		m[v] = true
	}
	return m
}

// IsElementType reports whether s is a known element type.
func IsElementType(s string) bool {
	return elementTypeSet[s]
}

// IsDefaultAction reports whether s is a known default action.
func IsDefaultAction(s string) bool {
	return defaultActionSet[s]
}

// idRe constrains element ids to lowercase letters, digits, and underscores.
// Module names share the same filesystem-safe character class.
var idRe = regexp.MustCompile(`^[a-z0-9_]+$`)

// ValidElementID reports whether s is a non-empty, pattern-conformant id.
func ValidElementID(s string) bool {
	return idRe.MatchString(s)
}

// ValidModuleName reports whether s is a filesystem-safe module name.
func ValidModuleName(s string) bool {
	return idRe.MatchString(s)
}
