// Package dateutils provides the date parsing and formatting used by the
// command line and the persisted format.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Date layouts used throughout the application
const (
	DateLayoutISO       = "2006-01-02"
	DateLayoutBrazilian = "02/01/2006"
	DateLayoutDashed    = "02-01-2006"
	DateLayoutEuropean  = "02.01.2006"
)

// CommonFormats is the list of formats accepted for user-entered dates.
var CommonFormats = []string{
	DateLayoutISO,
	DateLayoutBrazilian,
	DateLayoutDashed,
	DateLayoutEuropean,
	"2006/01/02",
}

var whitespace = regexp.MustCompile(`\s+`)

// ParseDate attempts to parse a date string using CommonFormats.
// Returns the parsed time and the detected format.
func ParseDate(dateStr string) (time.Time, string, error) {
	dateStr = CleanDateString(dateStr)

	for _, format := range CommonFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, format, nil
		}
	}

	return time.Time{}, "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// FormatDate formats a time.Time value according to the specified layout.
// If no layout is provided, DateLayoutISO is used. Zero times format as "".
func FormatDate(date time.Time, layout string) string {
	if date.IsZero() {
		return ""
	}
	if layout == "" {
		layout = DateLayoutISO
	}
	return date.Format(layout)
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// CleanDateString trims and collapses whitespace.
func CleanDateString(dateStr string) string {
	dateStr = strings.TrimSpace(dateStr)
	return whitespace.ReplaceAllString(dateStr, " ")
}

// FileStamp renders the calendar day used in exported file names.
func FileStamp(now time.Time) string {
	return now.Format(DateLayoutISO)
}

// LayoutFor converts a display pattern such as "DD/MM/YYYY" into a Go time
// layout. Unknown patterns fall back to DateLayoutBrazilian.
func LayoutFor(pattern string) string {
	switch strings.ToUpper(strings.TrimSpace(pattern)) {
	case "YYYY-MM-DD":
		return DateLayoutISO
	case "DD-MM-YYYY":
		return DateLayoutDashed
	case "DD.MM.YYYY":
		return DateLayoutEuropean
	case "YYYY/MM/DD":
		return "2006/01/02"
	default:
		return DateLayoutBrazilian
	}
}
