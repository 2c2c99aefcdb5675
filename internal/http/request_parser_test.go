package http

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestParseMonthParams(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		query     string
		wantYear  int
		wantMonth int
	}{
		{"defaults to now", "", 2024, 6},
		{"explicit year and month", "year=2023&month=11", 2023, 11},
		{"year only", "year=2022", 2022, 6},
		{"month only", "month=2", 2024, 2},
		{"garbage ignored", "year=abc&month=xyz", 2024, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("parse query: %v", err)
			}

			params := ParseMonthParams(query, now)
			if params.Year != tt.wantYear {
				t.Errorf("Year = %d, want %d", params.Year, tt.wantYear)
			}
			if params.Month != tt.wantMonth {
				t.Errorf("Month = %d, want %d", params.Month, tt.wantMonth)
			}
		})
	}
}

func TestRequestBodyParser_JSON(t *testing.T) {
	body := `{"title": "Groceries", "amount_cents": 4250, "reconciled": true}`
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	parser := NewRequestBodyParser(req)
	if err := parser.Parse(); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if !parser.IsJSON() {
		t.Error("IsJSON should be true for JSON body")
	}
	if got := parser.Get("title"); got != "Groceries" {
		t.Errorf("title = %q, want Groceries", got)
	}
	if got := parser.GetInt64("amount_cents"); got != 4250 {
		t.Errorf("amount_cents = %d, want 4250", got)
	}
	if !parser.GetBool("reconciled") {
		t.Error("reconciled should be true")
	}
	if got := parser.Get("missing"); got != "" {
		t.Errorf("missing key = %q, want empty", got)
	}
}

func TestRequestBodyParser_Form(t *testing.T) {
	body := "title=Rent&amount_cents=120000"
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	parser := NewRequestBodyParser(req)
	if err := parser.Parse(); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if parser.IsJSON() {
		t.Error("IsJSON should be false for form body")
	}
	if got := parser.Get("title"); got != "Rent" {
		t.Errorf("title = %q, want Rent", got)
	}
	if got := parser.GetInt64("amount_cents"); got != 120000 {
		t.Errorf("amount_cents = %d, want 120000", got)
	}
}

func TestRequestBodyParser_InvalidJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"broken`))

	parser := NewRequestBodyParser(req)
	if err := parser.Parse(); err == nil {
		t.Error("Parse should fail on malformed JSON")
	}
}

func TestRequestBodyParser_EmptyBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(""))

	parser := NewRequestBodyParser(req)
	if err := parser.Parse(); err != nil {
		t.Fatalf("Parse should accept empty body: %v", err)
	}
	if got := parser.Get("anything"); got != "" {
		t.Errorf("empty body Get = %q, want empty", got)
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Coffee", "Coffee"},
		{"trims whitespace", "  Coffee  ", "Coffee"},
		{"strips control chars", "Cof\x00fee\x07", "Coffee"},
		{"keeps newlines", "line1\nline2", "line1\nline2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeInput(tt.input); got != tt.want {
				t.Errorf("sanitizeInput(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
