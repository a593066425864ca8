package transform

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const (
	DefaultDuration = "00:00"
	dateLayout      = "2006-01-02"
)

// FormatDuration renders seconds as zero-padded MM:SS. Minutes are not
// wrapped into hours. Negative input renders as 00:00.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// FormatDate renders the calendar date part of t.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// FormatTimestamp renders t in UTC as RFC 3339.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// NormalizeDate accepts a full timestamp or a bare calendar date and returns
// YYYY-MM-DD, or "" when v is not a recognizable date.
func NormalizeDate(v any) string {
	if s, ok := v.(string); ok && len(s) >= len(dateLayout) {
		if _, err := time.Parse(dateLayout, s[:len(dateLayout)]); err == nil {
			return s[:len(dateLayout)]
		}
	}
	if t, ok := asTime(v); ok {
		return FormatDate(t)
	}
	return ""
}

// NormalizeClock turns "14:05" or "14:05:00" into "2:05 PM". Values already
// carrying AM/PM, and values that are not clock times, are returned unchanged.
func NormalizeClock(s string) string {
	s = strings.TrimSpace(s)
	upper := strings.ToUpper(s)
	if strings.HasSuffix(upper, "AM") || strings.HasSuffix(upper, "PM") {
		return s
	}
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return s
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return s
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 || len(parts[1]) != 2 {
		return s
	}

	ampm := "AM"
	if hour >= 12 {
		ampm = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%s %s", display, parts[1], ampm)
}

// idDigits returns the trailing digit run of id, padded to at least three
// digits. An id without digits is returned as is.
func idDigits(id string) string {
	end := len(id)
	start := end
	for start > 0 && unicode.IsDigit(rune(id[start-1])) {
		start--
	}
	digits := id[start:end]
	if digits == "" {
		return id
	}
	if len(digits) < 3 {
		digits = strings.Repeat("0", 3-len(digits)) + digits
	}
	return digits
}

// placeholderAvatar builds a generated initials avatar for name.
func placeholderAvatar(name string) string {
	if strings.TrimSpace(name) == "" {
		name = "User"
	}
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=random"
}
