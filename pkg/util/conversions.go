package util

import (
	"fmt"
	"strconv"
	"strings"
)

// Uint64ToString converts uint64 to string
func Uint64ToString(n uint64) string {
	return strconv.FormatUint(n, 10)
}

// StringToUint64 converts string to uint64
func StringToUint64(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse uint64: %w", err)
	}
	return n, nil
}

// StripMention extracts a raw snowflake from a user mention like <@123> or <@!123>.
// A bare ID passes through unchanged.
func StripMention(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "<@")
	s = strings.TrimPrefix(s, "!")
	s = strings.TrimSuffix(s, ">")
	return s
}

// IsSnowflake reports whether s is a plausible Discord snowflake.
func IsSnowflake(s string) bool {
	if len(s) < 15 || len(s) > 21 {
		return false
	}
	_, err := strconv.ParseUint(s, 10, 64)
	return err == nil
}
