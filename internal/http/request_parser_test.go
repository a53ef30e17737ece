package http

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestParseMonthParams(t *testing.T) {
	q := url.Values{}
	q.Set("month", "3")
	q.Set("year", "2024")
	mp := ParseMonthParams(q)
	if mp.Month != 3 || mp.Year != 2024 {
		t.Fatalf("params = %+v", mp)
	}

	// Missing values fall back to the current date.
	now := time.Now()
	mp = ParseMonthParams(url.Values{})
	if mp.Month != int(now.Month()) || mp.Year != now.Year() {
		t.Fatalf("defaults = %+v", mp)
	}

	// Garbage falls back too; range checks happen in the handlers.
	q = url.Values{}
	q.Set("month", "abc")
	mp = ParseMonthParams(q)
	if mp.Month != int(now.Month()) {
		t.Fatalf("garbage month = %+v", mp)
	}
}

func TestParseDateParams(t *testing.T) {
	q := url.Values{}
	q.Set("day", "5")
	q.Set("month", "3")
	q.Set("year", "2024")
	dp := ParseDateParams(q)
	if dp.Day != 5 || dp.Month != 3 || dp.Year != 2024 {
		t.Fatalf("params = %+v", dp)
	}
}

func TestParseID(t *testing.T) {
	if id, err := ParseID("42"); err != nil || id != 42 {
		t.Fatalf("ParseID(42) = %d, %v", id, err)
	}
	for _, bad := range []string{"", "0", "-1", "abc"} {
		if _, err := ParseID(bad); err == nil {
			t.Errorf("ParseID(%q) accepted", bad)
		}
	}
}

func TestRequestBodyParserJSON(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"description":"market","month":3}`))
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := p.Get("description"); got != "market" {
		t.Fatalf("Get(description) = %q", got)
	}
	if got := p.GetInt("month", 1); got != 3 {
		t.Fatalf("GetInt(month) = %d", got)
	}
	if got := p.GetInt("year", 2024); got != 2024 {
		t.Fatalf("GetInt(year fallback) = %d", got)
	}
}

func TestRequestBodyParserForm(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader("description=market&amount=10.00"))
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := p.Get("amount"); got != "10.00" {
		t.Fatalf("Get(amount) = %q", got)
	}
}

func TestRequestBodyParserMalformedJSON(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"x":`))
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := sanitizeInput("  market\x00\x1b  "); got != "market" {
		t.Fatalf("sanitizeInput = %q", got)
	}
}
