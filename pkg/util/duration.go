package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseShortDuration parses a compact moderation duration argument: "30s",
// "10m", "2h", "7d". Returns an error for anything else, including zero and
// negative values.
func ParseShortDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if len(s) < 2 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}

	unit := s[len(s)-1]
	num, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || num <= 0 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}

	switch unit {
	case 's':
		return time.Duration(num) * time.Second, nil
	case 'm':
		return time.Duration(num) * time.Minute, nil
	case 'h':
		return time.Duration(num) * time.Hour, nil
	case 'd':
		return time.Duration(num) * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("invalid duration unit %q", string(unit))
	}
}

// FormatRemaining renders a remaining duration as "1d 2h 3m 4s", dropping
// leading zero components. Non-positive durations render as "expired".
func FormatRemaining(d time.Duration) string {
	if d <= 0 {
		return "expired"
	}

	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	var b strings.Builder
	if days > 0 {
		fmt.Fprintf(&b, "%dd ", days)
	}
	if hours > 0 {
		fmt.Fprintf(&b, "%dh ", hours)
	}
	if minutes > 0 {
		fmt.Fprintf(&b, "%dm ", minutes)
	}
	fmt.Fprintf(&b, "%ds", seconds)
	return b.String()
}
