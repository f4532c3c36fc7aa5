package util

import "testing"

func TestStripMention(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"<@123456789012345678>", "123456789012345678"},
		{"<@!123456789012345678>", "123456789012345678"},
		{"123456789012345678", "123456789012345678"},
		{"  <@42>  ", "42"},
	}

	for _, tt := range tests {
		if got := StripMention(tt.input); got != tt.want {
			t.Fatalf("StripMention(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestIsSnowflake(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"123456789012345678", true},
		{"41771983423143937", true},
		{"42", false},
		{"", false},
		{"12345678901234567x", false},
	}

	for _, tt := range tests {
		if got := IsSnowflake(tt.input); got != tt.want {
			t.Fatalf("IsSnowflake(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestUint64RoundTrip(t *testing.T) {
	const id = uint64(123456789012345678)
	s := Uint64ToString(id)

	back, err := StringToUint64(s)
	if err != nil {
		t.Fatalf("StringToUint64(%q) unexpected error: %v", s, err)
	}
	if back != id {
		t.Fatalf("round trip = %d, want %d", back, id)
	}

	if _, err := StringToUint64("not-a-number"); err == nil {
		t.Fatal("StringToUint64 expected error for non-numeric input")
	}
}
