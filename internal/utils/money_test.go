package utils

import "testing"

func TestFormatGuaranies(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0 Gs"},
		{999, "999 Gs"},
		{1000, "1.000 Gs"},
		{2798309, "2.798.309 Gs"},
		{-590000, "-590.000 Gs"},
	}
	for _, c := range cases {
		if got := FormatGuaranies(c.in); got != c.want {
			t.Fatalf("FormatGuaranies(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParseGuaranies(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"2.798.309 Gs", 2798309},
		{"1.000", 1000},
		{"0", 0},
	}
	for _, c := range cases {
		got, err := ParseGuaranies(c.in)
		if err != nil {
			t.Fatalf("ParseGuaranies(%q) error: %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ParseGuaranies(%q) = %d, want %d", c.in, got, c.want)
		}
	}

	if _, err := ParseGuaranies("no-numero"); err == nil {
		t.Fatalf("expected error for invalid input")
	}
}

func TestFinDePeriodo(t *testing.T) {
	fin := FinDePeriodo(2, 2024)
	if fin.Month() != 2 || fin.Day() != 29 {
		t.Fatalf("feb 2024 should end on the 29th, got %v", fin)
	}
	fin = FinDePeriodo(12, 2025)
	if fin.Month() != 12 || fin.Day() != 31 {
		t.Fatalf("dec should end on the 31st, got %v", fin)
	}
}
