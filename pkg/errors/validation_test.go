package errors

import (
	"math"
	"testing"
)

func TestValidatePositive(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"positive", 2000, false},
		{"small", 1e-9, false},

		{"zero", 0, true},
		{"negative", -1, true},
		{"NaN", math.NaN(), true},
		{"inf", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePositive("width", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePositive(%g) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidParameter) {
				t.Errorf("ValidatePositive(%g) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateInts(t *testing.T) {
	if err := ValidatePositiveInt("pixel_width", 1); err != nil {
		t.Errorf("ValidatePositiveInt(1) = %v", err)
	}
	if err := ValidatePositiveInt("pixel_width", 0); err == nil {
		t.Error("ValidatePositiveInt(0) should fail")
	}
	if err := ValidateNonNegativeInt("star_count", 0); err != nil {
		t.Errorf("ValidateNonNegativeInt(0) = %v", err)
	}
	if err := ValidateNonNegativeInt("star_count", -1); err == nil {
		t.Error("ValidateNonNegativeInt(-1) should fail")
	}
}

func TestValidateRanges(t *testing.T) {
	tests := []struct {
		name     string
		validate func(string, float64, float64) error
		min, max float64
		wantErr  bool
	}{
		{"range ok", ValidateRange, 2.0, 2.8, false},
		{"range degenerate", ValidateRange, 2, 2, false},
		{"range inverted", ValidateRange, 3.0, 2.0, true},
		{"range NaN", ValidateRange, math.NaN(), 1, true},

		{"positive ok", ValidatePositiveRange, 2.0, 2.8, false},
		{"positive zero min", ValidatePositiveRange, 0, 2.8, true},
		{"positive inverted", ValidatePositiveRange, 3.0, 2.0, true},

		{"unit ok", ValidateUnitRange, 0.7, 1.0, false},
		{"unit full", ValidateUnitRange, 0, 1, false},
		{"unit degenerate", ValidateUnitRange, 1, 1, false},
		{"unit below", ValidateUnitRange, -0.1, 1, true},
		{"unit above", ValidateUnitRange, 0.5, 1.5, true},
		{"unit inverted", ValidateUnitRange, 0.9, 0.7, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.validate("range", tt.min, tt.max)
			if (err != nil) != tt.wantErr {
				t.Errorf("[%g, %g) error = %v, wantErr %v", tt.min, tt.max, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidParameter) {
				t.Errorf("[%g, %g) returned wrong error code: %v", tt.min, tt.max, err)
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "skybox.png", false},
		{"nested", "assets/skybox.png", false},
		{"absolute", "/tmp/skybox.tiff", false},

		{"empty", "", true},
		{"directory", "assets/", true},
		{"null byte", "sky\x00.png", true},
		{"newline", "sky\n.png", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidateOutputPath(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}
