package api

import (
	"fmt"
	"regexp"
	"strings"
)

var tickerPattern = regexp.MustCompile(`^[A-Z0-9.-]{1,10}$`)

// ValidateTicker trims and upper-cases a raw ticker and accepts only 1-10
// characters of letters, digits, '.' and '-'. Rejection happens before any
// provider call is made.
func ValidateTicker(raw string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	if normalized == "" {
		return "", fmt.Errorf("ticker must not be empty")
	}
	if !tickerPattern.MatchString(normalized) {
		return "", fmt.Errorf("invalid ticker %q", raw)
	}
	return normalized, nil
}
