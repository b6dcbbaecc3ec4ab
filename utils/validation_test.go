package utils

import "testing"

func TestValidatePhone(t *testing.T) {
	cases := []struct {
		phone string
		want  bool
	}{
		{"9876543210", true},
		{"0000000000", true},
		{"12345", false},       // too short
		{"123456789012", false}, // too long
		{"12345abcde", false},  // non-digit
		{"98765 4321", false},  // whitespace
		{"+919876543", false},  // plus prefix
		{"", false},
	}

	for _, tc := range cases {
		if got := ValidatePhone(tc.phone); got != tc.want {
			t.Errorf("ValidatePhone(%q) = %v, want %v", tc.phone, got, tc.want)
		}
	}
}
