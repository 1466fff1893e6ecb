package value

import (
	"fmt"
	"strings"
	"time"
)

// The two ASN.1 calendar-time text forms shared by every wire format:
// UTCTime is minute-precision ("YYMMDDHHMMZ"), GeneralizedTime is
// second-precision with an optional fraction ("YYYYMMDDHHMMSS[.fff]Z").
// Both are always rendered in UTC.

const (
	utcTimeLayout         = "0601021504Z"
	generalizedTimeLayout = "20060102150405Z"
)

// FormatUTCTime renders t in the minute-precision UTCTime form.
func FormatUTCTime(t time.Time) string {
	return t.UTC().Format(utcTimeLayout)
}

// ParseUTCTime parses the minute-precision UTCTime form.
func ParseUTCTime(s string) (time.Time, error) {
	t, err := time.Parse(utcTimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid UTCTime %q: %w", s, err)
	}

	return t, nil
}

// FormatGeneralizedTime renders t in the GeneralizedTime form, appending
// a fractional-seconds part only when t carries sub-second precision.
func FormatGeneralizedTime(t time.Time) string {
	t = t.UTC()
	if t.Nanosecond() == 0 {
		return t.Format(generalizedTimeLayout)
	}

	frac := strings.TrimRight(fmt.Sprintf("%09d", t.Nanosecond()), "0")

	return t.Format("20060102150405") + "." + frac + "Z"
}

// ParseGeneralizedTime parses the GeneralizedTime form, with or without a
// fractional-seconds part.
func ParseGeneralizedTime(s string) (time.Time, error) {
	layout := generalizedTimeLayout
	if strings.ContainsRune(s, '.') {
		layout = "20060102150405.999999999Z"
	}

	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid GeneralizedTime %q: %w", s, err)
	}

	return t, nil
}
