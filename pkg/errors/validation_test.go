package errors

import (
	"math"
	"strings"
	"testing"
)

func TestValidateNodeID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "hub", false},
		{"with spaces", "machine learning", false},
		{"unicode", "café", false},
		{"punctuation", "c++/c#", false},
		{"max length", strings.Repeat("a", 256), false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 257), true},
		{"newline", "a\nb", true},
		{"null byte", "a\x00b", true},
		{"tab", "a\tb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNodeID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNodeID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidNodeID) {
				t.Errorf("ValidateNodeID(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidNodeID)
			}
		})
	}
}

func TestValidatePositive(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"positive", 10, false},
		{"fraction", 0.01, false},

		{"zero", 0, true},
		{"negative", -1, true},
		{"nan", math.NaN(), true},
		{"inf", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePositive("weight_scale", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePositive(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFinite(t *testing.T) {
	if err := ValidateFinite("weight", -2.5); err != nil {
		t.Errorf("ValidateFinite(-2.5) = %v, want nil", err)
	}
	if err := ValidateFinite("weight", math.NaN()); !Is(err, ErrCodeInvalidInput) {
		t.Errorf("ValidateFinite(NaN) = %v, want INVALID_INPUT", err)
	}
}
