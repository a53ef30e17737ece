package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"12.34", 1234, false},
		{"12,34", 1234, false},
		{"12", 1200, false},
		{"0.5", 50, false},
		{".5", 50, false},
		{"12.345", 1234, false},
		{"12.346", 1235, false},
		{"", 0, true},
		{"abc", 0, true},
		{"-1", 0, true},
		{"+1", 0, true},
		{"1.2.3", 0, true},
		{"0", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseDecimalToCents(%q) expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseDecimalToCents(%q) error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseDecimalToCents(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseNonNegativeCents(t *testing.T) {
	// Every spelling of zero is accepted, not just the canonical ones.
	for _, zero := range []string{"0", "0.00", "0,00", "0.0", "00", ".0", " 0 "} {
		if got, err := ParseNonNegativeCents(zero); err != nil || got != 0 {
			t.Fatalf("ParseNonNegativeCents(%q) = %d, %v", zero, got, err)
		}
		if _, err := ParseDecimalToCents(zero); err == nil {
			t.Fatalf("ParseDecimalToCents(%q) accepted zero", zero)
		}
	}
	if got, err := ParseNonNegativeCents("7.25"); err != nil || got != 725 {
		t.Fatalf("ParseNonNegativeCents(7.25) = %d, %v", got, err)
	}
	if _, err := ParseNonNegativeCents("-3"); err == nil {
		t.Fatalf("expected error for negative income amount")
	}
	if _, err := ParseNonNegativeCents("abc"); err == nil {
		t.Fatalf("expected error for non-numeric income amount")
	}
}

func TestMoneyLira(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{1234, "12.34"},
		{100, "1.00"},
		{5, "0.05"},
		{-150, "-1.50"},
		{0, "0.00"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).Lira(); got != tc.want {
			t.Fatalf("Lira(%d) = %q, want %q", tc.cents, got, tc.want)
		}
	}
}
