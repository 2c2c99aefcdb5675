package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"momentum/internal/core"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name      string
		forwarded string
		realIP    string
		remote    string
		want      string
	}{
		{"forwarded header wins", "10.0.0.1", "10.0.0.2", "10.0.0.3:1234", "10.0.0.1"},
		{"real ip fallback", "", "10.0.0.2", "10.0.0.3:1234", "10.0.0.2"},
		{"remote addr fallback", "", "", "10.0.0.3:1234", "10.0.0.3:1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remote
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}

			if got := clientIP(req); got != tt.want {
				t.Errorf("clientIP = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	date, err := parseDate("2024-03-15")
	if err != nil {
		t.Fatalf("parseDate failed: %v", err)
	}
	if !date.InMonth(2024, 3) {
		t.Errorf("parsed date not in March 2024: %v", date)
	}

	if _, err := parseDate("15/03/2024"); err == nil {
		t.Error("parseDate should reject non-ISO format")
	}
	if _, err := parseDate(""); err == nil {
		t.Error("parseDate should reject empty input")
	}
}

func TestOverviewCacheKey(t *testing.T) {
	if got := overviewCacheKey(2024, 3); got != "2024-3" {
		t.Errorf("overviewCacheKey = %q, want 2024-3", got)
	}
	if overviewCacheKey(2024, 3) == overviewCacheKey(2024, 11) {
		t.Error("different months must produce different keys")
	}
}

func TestServer_Health(t *testing.T) {
	server := NewServer(":0", Services{})
	defer func() {
		if err := server.Shutdown(context.Background()); err != nil {
			t.Errorf("Shutdown failed: %v", err)
		}
	}()

	req := httptest.NewRequest("GET", "/healthz", nil)
	rec := httptest.NewRecorder()
	server.Server.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("healthz status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestServer_UnknownFrameRejected(t *testing.T) {
	server := NewServer(":0", Services{})
	defer server.Shutdown(context.Background())

	req := httptest.NewRequest("GET", "/api/v1/reports?frame=fortnight", nil)
	rec := httptest.NewRecorder()
	server.Server.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestServer_ShutdownTwice(t *testing.T) {
	server := NewServer(":0", Services{})

	if err := server.Shutdown(context.Background()); err != nil {
		t.Fatalf("first Shutdown failed: %v", err)
	}
	// Second call is a no-op thanks to shutdownOnce
	if err := server.Shutdown(context.Background()); err != nil {
		t.Fatalf("second Shutdown failed: %v", err)
	}
}

func TestInvalidateAggregates(t *testing.T) {
	server := NewServer(":0", Services{})
	defer server.Shutdown(context.Background())

	key := overviewCacheKey(2024, 3)
	server.overviewCache.Set(key, core.MonthOverview{Year: 2024, Month: 3})
	server.reportCache.Set(string(core.Last30Days), core.FrameReport{Frame: core.Last30Days})

	server.invalidateAggregates(2024, 3)

	if _, ok := server.overviewCache.Get(key); ok {
		t.Error("overview cache entry should be invalidated")
	}
	if _, ok := server.reportCache.Get(string(core.Last30Days)); ok {
		t.Error("frame report cache should be invalidated")
	}
}
