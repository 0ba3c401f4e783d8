package errors

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// maxNameLength bounds identifiers written into trackDb and genomes files.
const maxNameLength = 128

// nameRegex matches identifiers the browser accepts as track, genome and
// trackDb names: they end up as the first token of a "track" line and inside
// file names, so whitespace and path separators are not allowed.
var nameRegex = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_.\-]*$`)

// ValidateName validates a track, genome or trackDb name.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - Maximum length of 128 characters
//   - Letters, digits, '_', '.', '-' only, not starting with '.' or '-'
func ValidateName(kind, name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "%s name cannot be empty", kind)
	}

	if len(name) > maxNameLength {
		return New(ErrCodeInvalidName, "%s name too long (max %d characters): %q", kind, maxNameLength, name)
	}

	if !nameRegex.MatchString(name) {
		return New(ErrCodeInvalidName, "invalid %s name: %q", kind, name)
	}

	return nil
}

// ValidatePath validates a data file path relative to a trackDb file.
// Absolute http(s) URLs are accepted as-is, since bigDataUrl may point at
// any public location.
//
// Validation rules for relative paths:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute filesystem paths
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return nil
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /): %q", path)
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes: %q", path)
	}

	return nil
}

// ValidateDir validates a directory created inside the hub's output tree.
// On top of the [ValidatePath] rules, URLs and ".." segments are rejected so
// the directory cannot end up outside the tree.
func ValidateDir(path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}
	if strings.Contains(path, "://") {
		return New(ErrCodeInvalidPath, "directory cannot be a URL: %q", path)
	}
	for _, seg := range strings.Split(path, "/") {
		if seg == ".." {
			return New(ErrCodeInvalidPath, "directory cannot contain path traversal sequences (..): %q", path)
		}
	}
	return nil
}

// ValidateColor validates an "r,g,b" color triple as used by the color
// track setting. Each component must be an integer in [0, 255].
func ValidateColor(color string) error {
	parts := strings.Split(color, ",")
	if len(parts) != 3 {
		return New(ErrCodeInvalidColor, "color must be r,g,b: %q", color)
	}
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v < 0 || v > 255 {
			return New(ErrCodeInvalidColor, "color component out of range: %q", color)
		}
	}
	return nil
}

// ValidateEmail performs a minimal sanity check on a hub contact address.
func ValidateEmail(email string) error {
	if email == "" {
		return New(ErrCodeInvalidInput, "email cannot be empty")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || strings.ContainsAny(email, " \t\n") {
		return New(ErrCodeInvalidInput, "invalid email: %q", email)
	}
	return nil
}
