package core

import (
	"errors"
	"strings"
	"time"
)

// SuggestedCategories is the closed set offered to the advisory client for
// category suggestion. The storage layer does not constrain expense
// categories to this set; user-typed labels are stored as-is.
var SuggestedCategories = []string{
	"Yiyecek & İçecek",
	"Ulaşım",
	"Alışveriş",
	"Faturalar",
	"Sağlık",
	"Eğlence",
	"Eğitim",
	"Giyim",
	"Ev & Yaşam",
	"Diğer",
}

type (
	// Date is a calendar date. Day/month/year stored alongside an expense
	// row are always derived from this value at the write boundary, never
	// entered independently.
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Income is one income record for a (month, year) pair. The schema does
	// not enforce uniqueness per month; callers read the first match and
	// edit in place.
	Income struct {
		ID     int64
		Amount Money
		Month  int
		Year   int
	}

	Expense struct {
		ID          int64
		Category    string
		Description string
		Amount      Money
		Date        Date
	}
)

var (
	ErrInvalidDay       = errors.New("invalid day")
	ErrInvalidMonth     = errors.New("invalid month")
	ErrInvalidYear      = errors.New("invalid year")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyCategory    = errors.New("empty category")
	ErrEmptyDescription = errors.New("empty description")
)

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Day returns the day of the month.
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month as 1-12.
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the four-digit year.
func (d Date) Year() int {
	return d.Time.Year()
}

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	if d.Year() < 1000 || d.Year() > 9999 {
		return ErrInvalidYear
	}
	return nil
}

// ISO returns the date as YYYY-MM-DD, the canonical form persisted in the
// expenses table.
func (d Date) ISO() string {
	return d.Format("2006-01-02")
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// ValidateMonth checks a month/year pair used for scoping queries.
func ValidateMonth(month, year int) error {
	if month < 1 || month > 12 {
		return ErrInvalidMonth
	}
	if year < 1000 || year > 9999 {
		return ErrInvalidYear
	}
	return nil
}

func (i Income) Validate() error {
	if i.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	return ValidateMonth(i.Month, i.Year)
}

func (e Expense) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(e.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	return e.Amount.Validate()
}
