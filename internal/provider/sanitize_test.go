package provider

import (
	"strings"
	"testing"
	"unicode"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Punctuation Runs Collapse", "NASA's Picture: Day 1!!!", "NASA_s_Picture_Day_1"},
		{"Dots Kept", "M31.v2 final", "M31.v2_final"},
		{"Leading Unsafe", "  Aurora", "_Aurora"},
		{"Literal Underscores Collapse", "a__b", "a_b"},
		{"Unicode Letters Kept", "Côte d'Azur", "Côte_d_Azur"},
		{"All Unsafe", "!!! ???", "_"},
		{"Empty", "", "_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.expected {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSanitize_Properties(t *testing.T) {
	inputs := []string{
		"NASA's Picture: Day 1!!!",
		"The Milky Way over Death Valley -- 2024/01/01",
		"___",
		"a b c d e f",
		strings.Repeat("Long title with spaces, ", 30),
		strings.Repeat("x", 500),
		strings.Repeat("ab!", 120),
	}

	for _, in := range inputs {
		once := Sanitize(in)

		if twice := Sanitize(once); twice != once {
			t.Errorf("not idempotent for %q: %q -> %q", in, once, twice)
		}
		if strings.Contains(once, "__") {
			t.Errorf("consecutive underscores in %q", once)
		}
		if n := len([]rune(once)); n > maxNameLen {
			t.Errorf("length %d exceeds %d for %q", n, maxNameLen, in)
		}
		for _, r := range once {
			if !(unicode.IsLetter(r) || unicode.IsNumber(r) || r == '.' || r == '_') {
				t.Errorf("unsafe rune %q in %q", r, once)
			}
		}
	}
}

func TestSanitize_LongNamesGetUniqueSuffix(t *testing.T) {
	in := strings.Repeat("Nebula ", 60)

	a := Sanitize(in)
	b := Sanitize(in)

	if a == b {
		t.Fatalf("expected distinct names for truncated input, both %q", a)
	}
	if !strings.HasPrefix(a, "Nebula_Nebula") {
		t.Errorf("truncated name lost its prefix: %q", a)
	}
}
