package parser

import (
	"regexp"
	"strings"
)

var (
	dottedDateRe = regexp.MustCompile(`^\d{1,2}\.\d{1,2}\.\d{4}$`)
	isoDateRe    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	clockRe      = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)
)

// Lines splits raw file content into non-empty logical lines, accepting both
// CRLF and LF endings. Trailing whitespace is dropped per line.
func Lines(data []byte) []string {
	var out []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, " \t\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// CleanID trims an identifier and strips a single leading byte-order-mark,
// which the dispatch system likes to prepend to the first column.
func CleanID(s string) string {
	return strings.TrimPrefix(strings.TrimSpace(s), "\ufeff")
}

// NormalizeDate converts D.M.YYYY or DD.MM.YYYY into zero-padded ISO
// YYYY-MM-DD. Inputs without a dot pass through unchanged, as do dotted
// strings with fewer than three parts; callers must still validate those
// downstream.
func NormalizeDate(s string) string {
	clean := strings.TrimSpace(s)
	if !strings.Contains(clean, ".") {
		return clean
	}
	parts := strings.Split(clean, ".")
	if len(parts) < 3 {
		return clean
	}
	return parts[2] + "-" + pad2(parts[1]) + "-" + pad2(parts[0])
}

func pad2(s string) string {
	if len(s) < 2 {
		return "0" + s
	}
	return s
}

// isClock reports whether s is a HH:MM stamp in 24-hour range.
func isClock(s string) bool {
	return clockRe.MatchString(strings.TrimSpace(s))
}
