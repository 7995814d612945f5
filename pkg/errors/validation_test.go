package errors

import (
	"strings"
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "sample_project", false},
		{"absolute", "/home/user/project", false},
		{"dot", ".", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 5000), true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
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

func TestValidateQuery(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty clears search", "", false},
		{"simple", "engine", false},
		{"with spaces", "  Calc ", false},
		{"unicode", "größe", false},

		{"too long", strings.Repeat("q", MaxQueryLength+1), true},
		{"control char", "a\x07b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQuery(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateQuery(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateBoxID(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"node", false},
		{"node-0", false},
		{"node-12-3-0", false},

		{"", true},
		{"node-", true},
		{"node--1", true},
		{"node-a", true},
		{"nodes-1", true},
		{"block-1", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateBoxID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBoxID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidTarget) {
				t.Errorf("ValidateBoxID(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidTarget)
			}
		})
	}
}
