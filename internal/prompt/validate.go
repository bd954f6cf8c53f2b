package prompt

import (
	"strings"
	"unicode/utf8"
)

// Length limits for user-supplied identifiers.
const (
	MaxNameChars        = 200
	MaxVersionChars     = 100
	MaxDescriptionChars = 500
)

// ValidateName checks a prompt display name. Returns the trimmed name.
func ValidateName(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > MaxNameChars {
		return "", false
	}
	return name, true
}

// ValidateVersionName checks a version name. Version names are exact
// identifiers (no normalization): trimmed, non-empty, no internal whitespace.
func ValidateVersionName(version string) (string, bool) {
	version = strings.TrimSpace(version)
	if version == "" || utf8.RuneCountInString(version) > MaxVersionChars {
		return "", false
	}
	if strings.ContainsAny(version, " \t\n") {
		return "", false
	}
	return version, true
}
