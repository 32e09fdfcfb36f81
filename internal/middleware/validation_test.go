package middleware

import (
	"strings"
	"testing"
)

func TestValidateID(t *testing.T) {
	id, errMsg := ValidateID("roomId", "2c3aa4a4-9c55-4a2a-9d3e-21a0b11bb3d1")
	if errMsg != "" {
		t.Fatalf("unexpected error: %s", errMsg)
	}
	if id != "2c3aa4a4-9c55-4a2a-9d3e-21a0b11bb3d1" {
		t.Errorf("id normalized to %q", id)
	}

	if _, errMsg := ValidateID("roomId", ""); errMsg == "" {
		t.Error("empty id should fail")
	}
	if _, errMsg := ValidateID("roomId", "not-a-uuid"); errMsg == "" {
		t.Error("malformed id should fail")
	}
	if _, errMsg := ValidateID("roomId", "  2c3aa4a4-9c55-4a2a-9d3e-21a0b11bb3d1  "); errMsg != "" {
		t.Error("surrounding whitespace should be trimmed, not rejected")
	}
}

func TestValidateID_UppercaseNormalized(t *testing.T) {
	id, errMsg := ValidateID("userId", "2C3AA4A4-9C55-4A2A-9D3E-21A0B11BB3D1")
	if errMsg != "" {
		t.Fatalf("unexpected error: %s", errMsg)
	}
	if id != "2c3aa4a4-9c55-4a2a-9d3e-21a0b11bb3d1" {
		t.Errorf("uppercase uuid not normalized: %q", id)
	}
}

func TestValidateUsername(t *testing.T) {
	cases := []struct {
		name string
		ok   bool
	}{
		{"al", true},
		{"a regular name", true},
		{strings.Repeat("x", 50), true},
		{"a", false},
		{strings.Repeat("x", 51), false},
		{"", false},
		{"   ", false},
	}
	for _, c := range cases {
		_, errMsg := ValidateUsername(c.name)
		if (errMsg == "") != c.ok {
			t.Errorf("ValidateUsername(%q) ok=%v, want %v (%s)", c.name, errMsg == "", c.ok, errMsg)
		}
	}
}

func TestValidatePath(t *testing.T) {
	if _, errMsg := ValidatePath("/photos/wedding"); errMsg != "" {
		t.Errorf("plain path rejected: %s", errMsg)
	}
	if _, errMsg := ValidatePath(strings.Repeat("a", MaxPathLen+1)); errMsg == "" {
		t.Error("over-long path should fail")
	}
	// Empty is allowed here; required-ness depends on the source kind and is
	// checked by the import service.
	if _, errMsg := ValidatePath(""); errMsg != "" {
		t.Errorf("empty path should pass shape validation: %s", errMsg)
	}
}
