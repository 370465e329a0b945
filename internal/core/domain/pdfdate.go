package domain

import (
	"strconv"
	"strings"
	"time"
)

// NoneValue is displayed for blank metadata and unparseable dates.
const NoneValue = "None"

// PDFDateLayout is the layout of formatted PDF dates,
// e.g. "May 19, 2025, 04:55:55 AM".
const PDFDateLayout = "January 02, 2006, 03:04:05 PM"

const pdfDatePrefix = "D:"

// FormatPDFDate renders a PDF date string such as "D:20250519045555-07'00'"
// as "May 19, 2025, 04:55:55 AM", in the offset the date was written with.
// Empty, unprefixed or malformed input yields "None".
func FormatPDFDate(raw string) string {
	t, ok := ParsePDFDate(raw)
	if !ok {
		return NoneValue
	}
	return t.Format(PDFDateLayout)
}

// FormatPDFDateIn is FormatPDFDate rendered in loc instead of the encoded offset.
func FormatPDFDateIn(raw string, loc *time.Location) string {
	t, ok := ParsePDFDate(raw)
	if !ok {
		return NoneValue
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(PDFDateLayout)
}

// ParsePDFDate decodes D:YYYYMMDDHHmmSS with an optional offset of the form
// Z, ±HH'MM', ±HH'MM, ±HHMM or ±HH. Dates without an offset are taken as UTC.
func ParsePDFDate(raw string) (time.Time, bool) {
	if !strings.HasPrefix(raw, pdfDatePrefix) {
		return time.Time{}, false
	}
	ts := raw[len(pdfDatePrefix):]
	if len(ts) < 14 {
		return time.Time{}, false
	}

	t, err := time.Parse("20060102150405", ts[:14])
	if err != nil {
		return time.Time{}, false
	}

	loc, ok := parsePDFOffset(ts[14:])
	if !ok {
		return time.Time{}, false
	}

	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc), true
}

// parsePDFOffset decodes the timezone suffix of a PDF date.
func parsePDFOffset(s string) (*time.Location, bool) {
	s = strings.ReplaceAll(s, "'", "")
	switch {
	case s == "" || s == "Z" || s == "Z0000":
		return time.UTC, true
	case len(s) != 3 && len(s) != 5, !isDigits(s[1:]):
		return nil, false
	}

	var sign int
	switch s[0] {
	case '+':
		sign = 1
	case '-':
		sign = -1
	default:
		return nil, false
	}

	hours, err := strconv.Atoi(s[1:3])
	if err != nil || hours > 23 {
		return nil, false
	}
	minutes := 0
	if len(s) == 5 {
		minutes, err = strconv.Atoi(s[3:5])
		if err != nil || minutes > 59 {
			return nil, false
		}
	}

	offset := sign * (hours*3600 + minutes*60)
	if offset == 0 {
		return time.UTC, true
	}
	return time.FixedZone(formatOffsetName(sign, hours, minutes), offset), true
}

func formatOffsetName(sign, hours, minutes int) string {
	prefix := "UTC+"
	if sign < 0 {
		prefix = "UTC-"
	}
	name := prefix + strconv.Itoa(hours)
	if minutes > 0 {
		name += ":" + strconv.Itoa(minutes)
	}
	return name
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
