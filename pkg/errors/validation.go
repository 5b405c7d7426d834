package errors

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
)

// Output formats accepted by the diagram and render commands.
var (
	DiagramFormats = []string{"mermaid", "dot"}
	RenderFormats  = []string{"svg", "png"}
	Themes         = []string{"light", "dark"}
)

// ValidateFormat checks that format is one of allowed (case-sensitive).
func ValidateFormat(format string, allowed []string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	if !slices.Contains(allowed, format) {
		return New(ErrCodeInvalidFormat, "invalid format %q (must be one of: %s)", format, strings.Join(allowed, ", "))
	}
	return nil
}

// ValidateTheme checks that theme names a known palette.
func ValidateTheme(theme string) error {
	if !slices.Contains(Themes, theme) {
		return New(ErrCodeInvalidTheme, "invalid theme %q (must be one of: %s)", theme, strings.Join(Themes, ", "))
	}
	return nil
}

// ValidateDocumentName validates the name a document is saved under.
// It rejects names that could be used for path traversal or injection attacks.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences (.., //, etc.)
//   - No null bytes
//   - Maximum length of 256 characters
func ValidateDocumentName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidDocument, "document name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidDocument, "document name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDocument, "document name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidDocument, "document name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// documentIDRegex matches the canonical UUID text form used for document IDs.
var documentIDRegex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// ValidateDocumentID checks that id is a lowercase canonical UUID.
// IDs become file names in the file store, so nothing else is accepted.
func ValidateDocumentID(id string) error {
	if !documentIDRegex.MatchString(id) {
		return New(ErrCodeInvalidDocument, "invalid document id: %q", id)
	}
	return nil
}

// ValidateMongoURI validates a MongoDB connection string scheme.
func ValidateMongoURI(uri string) error {
	if uri == "" {
		return New(ErrCodeInvalidConfig, "mongo uri cannot be empty")
	}

	if !strings.HasPrefix(uri, "mongodb://") && !strings.HasPrefix(uri, "mongodb+srv://") {
		return New(ErrCodeInvalidConfig, "mongo uri must use mongodb or mongodb+srv scheme")
	}

	return nil
}
