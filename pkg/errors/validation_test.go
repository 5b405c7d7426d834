package errors

import (
	"testing"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		allowed []string
		wantErr bool
	}{
		{"mermaid", "mermaid", DiagramFormats, false},
		{"dot", "dot", DiagramFormats, false},
		{"svg", "svg", RenderFormats, false},
		{"png", "png", RenderFormats, false},

		{"empty", "", DiagramFormats, true},
		{"unknown", "pdf", RenderFormats, true},
		{"wrong family", "svg", DiagramFormats, true},
		{"case sensitive", "SVG", RenderFormats, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFormat(tt.input, tt.allowed)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidFormat) {
				t.Errorf("ValidateFormat(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateTheme(t *testing.T) {
	for _, theme := range []string{"light", "dark"} {
		if err := ValidateTheme(theme); err != nil {
			t.Errorf("ValidateTheme(%q) = %v", theme, err)
		}
	}
	for _, theme := range []string{"", "Dark", "solarized"} {
		if err := ValidateTheme(theme); !Is(err, ErrCodeInvalidTheme) {
			t.Errorf("ValidateTheme(%q) = %v, want INVALID_THEME", theme, err)
		}
	}
}

func TestValidateDocumentName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "config", false},
		{"valid with spaces", "api response v2", false},
		{"valid with dot", "package.json", false},
		{"valid with slash", "team/config", false},

		{"empty", "", true},
		{"blank", "   ", true},
		{"too long", string(make([]byte, 300)), true},
		{"path traversal ..", "foo/../bar", true},
		{"path traversal //", "foo//bar", true},
		{"null byte", "foo\x00bar", true},
		{"backslash", "foo\\bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocumentName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDocumentName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDocumentID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"uuid", "3f2b8c1e-6a4d-4e2f-9b1a-0c5d7e8f9a0b", false},

		{"empty", "", true},
		{"uppercase", "3F2B8C1E-6A4D-4E2F-9B1A-0C5D7E8F9A0B", true},
		{"traversal", "../../etc/passwd", true},
		{"short", "3f2b8c1e", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocumentID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDocumentID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateMongoURI(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"mongodb", "mongodb://localhost:27017", false},
		{"srv", "mongodb+srv://cluster.example.com", false},

		{"empty", "", true},
		{"http", "http://localhost:27017", true},
		{"no scheme", "localhost:27017", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMongoURI(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMongoURI(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidJSON,
		ErrCodeEmptyInput,
		ErrCodeInvalidFormat,
		ErrCodeInvalidTheme,
		ErrCodeInvalidDocument,
		ErrCodeInvalidConfig,
		ErrCodeNotFound,
		ErrCodeDocumentNotFound,
		ErrCodeFileNotFound,
		ErrCodeRender,
		ErrCodeTimeout,
		ErrCodeUnavailable,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
