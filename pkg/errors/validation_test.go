package errors

import (
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid file", "a_example.txt", false},
		{"valid nested", "qualification/b_lovely_landscapes.txt", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"absolute", "/etc/passwd", true},
		{"traversal", "../secrets.txt", true},
		{"backslash", "data\\a.txt", true},
		{"control char", "a\x01.txt", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateDatasetName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "b_lovely_landscapes", false},
		{"valid with dot", "a_example.txt", false},
		{"valid with dash", "pets-2019", false},

		{"empty", "", true},
		{"leading dot", ".hidden", true},
		{"slash", "data/a", true},
		{"space", "my data", true},
		{"too long", string(make([]byte, 200)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatasetName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDatasetName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRunID(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"0b6c1f0e-7d52-4c1e-9a53-2f5f3c7b9d10", false},
		{"", true},
		{"not-a-uuid", true},
		{"0B6C1F0E-7D52-4C1E-9A53-2F5F3C7B9D10", true},
		{"../0b6c1f0e-7d52-4c1e-9a53-2f5f3c7b9d1", true},
	}

	for _, tt := range tests {
		err := ValidateRunID(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateRunID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}
