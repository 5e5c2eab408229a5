package server

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestLimiterManagerAllow(t *testing.T) {
	m := NewRateLimiter(60, time.Minute, 2, nil)
	defer m.Close()

	// Burst capacity of 2 allows two immediate requests
	if !m.Allow("ip:10.0.0.1") {
		t.Error("first request should be allowed")
	}
	if !m.Allow("ip:10.0.0.1") {
		t.Error("second request should be allowed within burst")
	}
	if m.Allow("ip:10.0.0.1") {
		t.Error("third immediate request should be rejected")
	}

	// A different key gets its own bucket
	if !m.Allow("ip:10.0.0.2") {
		t.Error("request from a different key should be allowed")
	}
}

func TestLimiterManagerStats(t *testing.T) {
	m := NewRateLimiter(120, time.Minute, 5, nil)
	defer m.Close()

	m.Allow("api:key-1")
	m.Allow("api:key-2")

	stats := m.GetStats()

	if got := stats["active_limiters"].(int); got != 2 {
		t.Errorf("active_limiters = %d, want 2", got)
	}
	if got := stats["rate_per_minute"].(float64); got != 120.0 {
		t.Errorf("rate_per_minute = %f, want 120.0", got)
	}
	if got := stats["burst_capacity"].(int); got != 5 {
		t.Errorf("burst_capacity = %d, want 5", got)
	}
}

func TestGetRateLimitKey(t *testing.T) {
	tests := []struct {
		name     string
		apiKey   string
		bearer   string
		byAPIKey bool
		byIP     bool
		want     string
	}{
		{
			name:     "api key header preferred",
			apiKey:   "secret-key",
			byAPIKey: true,
			byIP:     true,
			want:     "api:secret-key",
		},
		{
			name:     "bearer token fallback",
			bearer:   "Bearer token-123",
			byAPIKey: true,
			want:     "api:token-123",
		},
		{
			name:     "falls back to ip when no key present",
			byAPIKey: true,
			byIP:     true,
			want:     "ip:192.0.2.1",
		},
		{
			name: "empty when both dimensions disabled",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/quality", nil)
			r.RemoteAddr = "192.0.2.1:51234"
			if tt.apiKey != "" {
				r.Header.Set("X-API-Key", tt.apiKey)
			}
			if tt.bearer != "" {
				r.Header.Set("Authorization", tt.bearer)
			}

			got := getRateLimitKey(r, tt.byAPIKey, tt.byIP)
			if got != tt.want {
				t.Errorf("getRateLimitKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		realIP     string
		want       string
	}{
		{
			name:       "remote addr host",
			remoteAddr: "192.0.2.1:51234",
			want:       "192.0.2.1",
		},
		{
			name:       "x-forwarded-for first valid ip",
			remoteAddr: "192.0.2.1:51234",
			xff:        "203.0.113.7, 10.0.0.1",
			want:       "203.0.113.7",
		},
		{
			name:       "x-real-ip",
			remoteAddr: "192.0.2.1:51234",
			realIP:     "198.51.100.9",
			want:       "198.51.100.9",
		},
		{
			name:       "invalid forwarded entries ignored",
			remoteAddr: "192.0.2.1:51234",
			xff:        "not-an-ip",
			want:       "192.0.2.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/quality", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.realIP != "" {
				r.Header.Set("X-Real-IP", tt.realIP)
			}

			if got := getClientIP(r); got != tt.want {
				t.Errorf("getClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMaskAPIKey(t *testing.T) {
	if got := maskAPIKey("short"); got != "****" {
		t.Errorf("maskAPIKey(short) = %q, want ****", got)
	}
	if got := maskAPIKey("abcdefgh12345678"); got != "abcdefgh****" {
		t.Errorf("maskAPIKey(long) = %q, want abcdefgh****", got)
	}
}
