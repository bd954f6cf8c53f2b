package prompt

import (
	"strings"
	"testing"
)

func TestValidateName(t *testing.T) {
	name, ok := ValidateName("  greeting  ")
	if !ok {
		t.Fatal("ValidateName returned ok = false")
	}
	if name != "greeting" {
		t.Errorf("name = %q, want %q", name, "greeting")
	}
}

func TestValidateName_Empty(t *testing.T) {
	if _, ok := ValidateName("   "); ok {
		t.Error("ValidateName(blank) ok = true, want false")
	}
}

func TestValidateName_TooLong(t *testing.T) {
	if _, ok := ValidateName(strings.Repeat("x", MaxNameChars+1)); ok {
		t.Error("ValidateName(overlong) ok = true, want false")
	}
}

func TestValidateName_DuplicatesAllowed(t *testing.T) {
	// Names are display labels; the same name passing twice is fine.
	for i := 0; i < 2; i++ {
		if _, ok := ValidateName("greeting"); !ok {
			t.Fatal("ValidateName returned ok = false")
		}
	}
}

func TestValidateVersionName(t *testing.T) {
	version, ok := ValidateVersionName(" v0.0.1 ")
	if !ok {
		t.Fatal("ValidateVersionName returned ok = false")
	}
	if version != "v0.0.1" {
		t.Errorf("version = %q, want %q", version, "v0.0.1")
	}
}

func TestValidateVersionName_RejectsWhitespace(t *testing.T) {
	cases := []string{"", "   ", "v 1", "v\t1", "v\n1"}
	for _, c := range cases {
		if _, ok := ValidateVersionName(c); ok {
			t.Errorf("ValidateVersionName(%q) ok = true, want false", c)
		}
	}
}

func TestToSummary(t *testing.T) {
	latest := "v1"
	commit := "01ABC"
	p := &Prompt{
		ID:            "id-1",
		Name:          "greeting",
		LatestVersion: &latest,
		LatestCommit:  &commit,
		CreatedAt:     100,
		UpdatedAt:     200,
	}

	s := p.ToSummary(3)
	if s.ID != "id-1" || s.Name != "greeting" {
		t.Errorf("summary identity mismatch: %+v", s)
	}
	if s.Versions != 3 {
		t.Errorf("Versions = %d, want 3", s.Versions)
	}
	if s.LatestVersion == nil || *s.LatestVersion != "v1" {
		t.Errorf("LatestVersion = %v, want v1", s.LatestVersion)
	}
}
