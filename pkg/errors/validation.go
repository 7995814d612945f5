package errors

import (
	"strings"
	"unicode"
)

// MaxQueryLength bounds search queries accepted from the terminal and HTTP viewers.
const MaxQueryLength = 256

// ValidatePath validates a source path handed to the extractor.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//
// Absolute paths are allowed; the extractor only ever reads below the path.
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateQuery validates a search query. Empty queries are valid and clear the search.
func ValidateQuery(q string) error {
	if len(q) > MaxQueryLength {
		return New(ErrCodeInvalidInput, "query too long (max %d characters)", MaxQueryLength)
	}
	for _, r := range q {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "query contains invalid control characters")
		}
	}
	return nil
}

// ValidateBoxID checks the shape of a box identifier before it is looked up.
// Box IDs are path-derived: "node" followed by "-<index>" segments.
func ValidateBoxID(id string) error {
	segs := strings.Split(id, "-")
	if segs[0] != "node" {
		return New(ErrCodeInvalidTarget, "malformed box id %q", id)
	}
	for _, seg := range segs[1:] {
		if seg == "" || strings.TrimLeft(seg, "0123456789") != "" {
			return New(ErrCodeInvalidTarget, "malformed box id %q", id)
		}
	}
	return nil
}
