package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateStateName validates a state machine state name as used by start
// and push-state nodes. The execution engine treats state names as opaque
// keys, so the rules are conservative rather than format-exact:
//   - No empty names
//   - No control characters
//   - Maximum length of 128 characters
func ValidateStateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "state name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidInput, "state name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "state name contains invalid control characters")
		}
	}

	return nil
}

// ValidateExportFilename validates a client-supplied export filename.
// It ensures the filename is a simple basename without path components.
func ValidateExportFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidPath, "export filename cannot be empty")
	}

	// Must be a simple filename, not a path
	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidPath, "export filename cannot contain path separators")
	}

	if strings.HasPrefix(filename, ".") {
		return New(ErrCodeInvalidPath, "export filename cannot be a hidden file")
	}

	return nil
}

// dungeonSlugRegex matches dungeon identifiers as they appear in the
// reference data: lowercase words joined by underscores.
var dungeonSlugRegex = regexp.MustCompile(`^[a-z0-9]+(_[a-z0-9]+)*$`)

// ValidateDungeonSlug validates a dungeon identifier.
func ValidateDungeonSlug(slug string) error {
	if slug == "" {
		return New(ErrCodeInvalidInput, "dungeon slug cannot be empty")
	}

	if !dungeonSlugRegex.MatchString(slug) {
		return New(ErrCodeInvalidInput, "invalid dungeon slug: %q", slug)
	}

	return nil
}

// ValidateSearchQuery validates a free-text entity search query.
func ValidateSearchQuery(q string) error {
	if strings.TrimSpace(q) == "" {
		return New(ErrCodeInvalidInput, "search query cannot be empty")
	}

	if len(q) > 256 {
		return New(ErrCodeInvalidInput, "search query too long (max 256 characters)")
	}

	for _, r := range q {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "search query contains invalid control characters")
		}
	}

	return nil
}
