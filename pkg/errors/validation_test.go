package errors

import (
	"testing"
)

func TestValidateStateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "clear_mobs", false},
		{"valid with space", "enter portal", false},
		{"valid uppercase", "NexusLeave", false},
		{"valid with digits", "phase2_beacon", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 200)), true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
		{"null byte", "foo\x00bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateExportFilename(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid json", "workflow.json", false},
		{"valid no extension", "workflow", false},
		{"valid with dash", "realm-farmer.json", false},

		{"empty", "", true},
		{"with path /", "path/to/file.json", true},
		{"with path \\", "path\\to\\file.json", true},
		{"hidden file", ".hidden", true},
		{"hidden file long", ".secret.json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateExportFilename(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateExportFilename(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDungeonSlug(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "abyss", false},
		{"with underscore", "sunken_library", false},
		{"with digits", "lair2", false},

		{"empty", "", true},
		{"uppercase", "Abyss", true},
		{"leading underscore", "_abyss", true},
		{"trailing underscore", "abyss_", true},
		{"double underscore", "sunken__library", true},
		{"with space", "sunken library", true},
		{"with slash", "sunken/library", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDungeonSlug(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDungeonSlug(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateSearchQuery(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "demon", false},
		{"with space", "stone guardian", false},

		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"too long", string(make([]byte, 300)), true},
		{"control char", "demon\x01", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSearchQuery(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSearchQuery(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidConfig,
		ErrCodeInvalidFormat,
		ErrCodeInvalidPath,
		ErrCodeNotFound,
		ErrCodeEntityNotFound,
		ErrCodeDungeonNotFound,
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
