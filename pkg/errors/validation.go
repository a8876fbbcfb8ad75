package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateVertex checks that u is a vertex index of a graph with n vertices.
func ValidateVertex(u, n int) error {
	if u < 0 || u >= n {
		return New(ErrCodeInvalidInput, "vertex %d out of range [0,%d)", u, n)
	}
	return nil
}

// nameRegex matches orderer, bound and report names.
var nameRegex = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// ValidateName validates a plugin or computation name.
// Names are lowercase, start with a letter and may contain digits and dashes.
func ValidateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidInput, "name too long (max 64 characters)")
	}
	if !nameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid name: %q", name)
	}
	return nil
}

// ValidatePath validates a file path supplied by a user for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..) when relative is true
func ValidatePath(path string, relative bool) error {
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

	if relative {
		if strings.HasPrefix(path, "/") {
			return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
		}
		if strings.Contains(path, "..") {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	return nil
}
