package core

import (
	"testing"
	"time"
)

func TestDateDecomposition(t *testing.T) {
	d := NewDate(2024, 3, 5)
	if d.Year() != 2024 || d.Month() != 3 || d.Day() != 5 {
		t.Fatalf("decomposed to %d-%d-%d", d.Year(), d.Month(), d.Day())
	}
	if d.ISO() != "2024-03-05" {
		t.Fatalf("ISO() = %q", d.ISO())
	}
}

func TestDateValidate(t *testing.T) {
	cases := []struct {
		d  Date
		ok bool
	}{
		{NewDate(2025, 1, 1), true},
		{NewDate(2025, 12, 31), true},
		{Date{Time: time.Time{}}, false},
	}
	for i, tc := range cases {
		err := tc.d.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestValidateMonth(t *testing.T) {
	cases := []struct {
		month, year int
		ok          bool
	}{
		{1, 2024, true},
		{12, 2024, true},
		{0, 2024, false},
		{13, 2024, false},
		{6, 99, false},
	}
	for i, tc := range cases {
		err := ValidateMonth(tc.month, tc.year)
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestIncomeValidate(t *testing.T) {
	if err := (Income{Amount: Money{Cents: 0}, Month: 3, Year: 2024}).Validate(); err != nil {
		t.Fatalf("zero income should validate, got %v", err)
	}
	if err := (Income{Amount: Money{Cents: -1}, Month: 3, Year: 2024}).Validate(); err == nil {
		t.Fatalf("expected error for negative amount")
	}
	if err := (Income{Amount: Money{Cents: 100}, Month: 13, Year: 2024}).Validate(); err == nil {
		t.Fatalf("expected error for month 13")
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{
		Category:    "Ulaşım",
		Description: "metro card",
		Amount:      Money{Cents: 1250},
		Date:        NewDate(2024, 3, 5),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Expense{
		{Category: "c", Description: "a", Amount: Money{Cents: 1}, Date: Date{Time: time.Time{}}},
		{Category: "", Description: "a", Amount: Money{Cents: 1}, Date: NewDate(2024, 1, 1)},
		{Category: "c", Description: "", Amount: Money{Cents: 1}, Date: NewDate(2024, 1, 1)},
		{Category: "c", Description: "a", Amount: Money{Cents: 0}, Date: NewDate(2024, 1, 1)},
	}
	for i, e := range bads {
		if err := e.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}
