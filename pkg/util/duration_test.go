package util

import (
	"testing"
	"time"
)

func TestParseShortDuration(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"30s", 30 * time.Second, false},
		{"10m", 10 * time.Minute, false},
		{"2h", 2 * time.Hour, false},
		{"7d", 7 * 24 * time.Hour, false},
		{"1D", 24 * time.Hour, false},
		{" 5m ", 5 * time.Minute, false},
		{"", 0, true},
		{"m", 0, true},
		{"10", 0, true},
		{"0s", 0, true},
		{"-5m", 0, true},
		{"5w", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseShortDuration(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseShortDuration(%q) expected error, got %v", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseShortDuration(%q) unexpected error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Fatalf("ParseShortDuration(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		input time.Duration
		want  string
	}{
		{0, "expired"},
		{-time.Minute, "expired"},
		{45 * time.Second, "45s"},
		{5 * time.Minute, "5m 0s"},
		{90 * time.Minute, "1h 30m 0s"},
		{26*time.Hour + 3*time.Minute + 4*time.Second, "1d 2h 3m 4s"},
	}

	for _, tt := range tests {
		if got := FormatRemaining(tt.input); got != tt.want {
			t.Fatalf("FormatRemaining(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
