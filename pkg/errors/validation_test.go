package errors

import (
	"math"
	"testing"
)

func TestValidateLabel(t *testing.T) {
	tests := []struct {
		name    string
		label   int
		n       int
		wantErr bool
	}{
		{"first", 0, 3, false},
		{"last", 2, 3, false},
		{"negative", -1, 3, true},
		{"one past end", 3, 3, true},
		{"empty graph", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLabel(tt.label, tt.n)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLabel(%d, %d) error = %v, wantErr %v", tt.label, tt.n, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidIndex) {
				t.Errorf("ValidateLabel(%d, %d) code = %v, want %v", tt.label, tt.n, GetCode(err), ErrCodeInvalidIndex)
			}
		})
	}
}

func TestValidateSigRange(t *testing.T) {
	tests := []struct {
		name    string
		peers   int
		min     int
		max     int
		wantErr bool
	}{
		{"typical", 10, 1, 3, false},
		{"zero peers", 0, 1, 3, false},
		{"fixed count", 5, 2, 2, false},
		{"no signatures", 5, 0, 0, false},

		{"negative peers", -1, 1, 3, true},
		{"negative min", 10, -1, 3, true},
		{"inverted range", 10, 4, 3, true},
		{"at draw limit", 10, 0, MaxSignatureDraws, false},
		{"over draw limit", 10, 0, MaxSignatureDraws + 1, true},
		{"max int", 3, 0, math.MaxInt, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSigRange(tt.peers, tt.min, tt.max)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSigRange(%d, %d, %d) error = %v, wantErr %v", tt.peers, tt.min, tt.max, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePermutation(t *testing.T) {
	tests := []struct {
		name  string
		order []int
		n     int
		code  Code
	}{
		{"identity", []int{0, 1, 2}, 3, ""},
		{"reversed", []int{2, 1, 0}, 3, ""},
		{"empty", nil, 0, ""},
		{"too short", []int{0, 1}, 3, ErrCodeInvalidInput},
		{"repeat", []int{0, 0, 1}, 3, ErrCodeInvalidInput},
		{"out of range", []int{0, 1, 5}, 3, ErrCodeInvalidIndex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePermutation(tt.order, tt.n)
			if got := GetCode(err); got != tt.code {
				t.Errorf("ValidatePermutation(%v, %d) code = %q, want %q", tt.order, tt.n, got, tt.code)
			}
		})
	}
}
