package model

import "testing"

func TestValidElementID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"save_button", true},
		{"btn2", true},
		{"a", true},
		{"_leading_underscore", true},
		{"", false},
		{"Main-Button", false},
		{"SaveButton", false},
		{"save button", false},
		{"save.button", false},
		{"café", false},
	}

	for _, tt := range tests {
		if got := ValidElementID(tt.id); got != tt.want {
			t.Errorf("ValidElementID(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestValidModuleName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"default", true},
		{"login_screen", true},
		{"", false},
		{"Login", false},
		{"login/screen", false},
		{"..", false},
	}

	for _, tt := range tests {
		if got := ValidModuleName(tt.name); got != tt.want {
			t.Errorf("ValidModuleName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIsElementType(t *testing.T) {
	for _, typ := range ElementTypes {
		if !IsElementType(typ) {
			t.Errorf("IsElementType(%q) = false, want true", typ)
		}
	}
	for _, typ := range []string{"", "Button", "hyperlink", "slider"} {
		if IsElementType(typ) {
			t.Errorf("IsElementType(%q) = true, want false", typ)
		}
	}
}

func TestIsDefaultAction(t *testing.T) {
	for _, act := range DefaultActions {
		if !IsDefaultAction(act) {
			t.Errorf("IsDefaultAction(%q) = false, want true", act)
		}
	}
	for _, act := range []string{"", "Click", "drag", "scroll"} {
		if IsDefaultAction(act) {
			t.Errorf("IsDefaultAction(%q) = true, want false", act)
		}
	}
}
