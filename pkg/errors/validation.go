package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateElementID validates an element identifier for safety and correctness.
// IDs end up as lookup keys and in rendered output metadata, so the rules are
// intentionally conservative:
//   - No empty IDs
//   - No control characters
//   - No null bytes
//   - Maximum length of 128 characters
func ValidateElementID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidElement, "element id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidElement, "element id too long (max 128 characters)")
	}

	for _, r := range id {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidElement, "element id contains invalid control characters")
		}
	}

	return nil
}

// archetypeIDRegex matches valid archetype identifiers (lowercase snake_case).
var archetypeIDRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ValidateArchetypeID validates an archetype identifier.
func ValidateArchetypeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidArchetype, "archetype id cannot be empty")
	}

	if !archetypeIDRegex.MatchString(id) {
		return New(ErrCodeInvalidArchetype, "invalid archetype id: %q", id)
	}

	return nil
}

// hexColorRegex matches #RGB and #RRGGBB colors.
var hexColorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateHexColor validates a hex color string.
func ValidateHexColor(color string) error {
	if color == "" {
		return New(ErrCodeInvalidColor, "color cannot be empty")
	}

	if !hexColorRegex.MatchString(color) {
		return New(ErrCodeInvalidColor, "invalid hex color: %q", color)
	}

	return nil
}

// ValidateRulesFilename validates a rules filename for safety.
// It ensures the filename is a simple basename without path components.
func ValidateRulesFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidRules, "rules filename cannot be empty")
	}

	// Must be a simple filename, not a path
	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidRules, "rules filename cannot contain path separators")
	}

	if strings.HasPrefix(filename, ".") {
		return New(ErrCodeInvalidRules, "rules filename cannot be a hidden file")
	}

	return nil
}

// ValidatePath validates a file path under a rules or cache directory.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	// Must not be absolute path
	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	// Check for path traversal
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	// No backslashes (potential Windows path injection)
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}
