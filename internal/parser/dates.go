package parser

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// excelEpoch is the day-zero of Excel's 1900 date system. Using Dec 30
// instead of Dec 31 absorbs Excel's phantom 1900-02-29 for every serial a
// roster export can realistically carry.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

const (
	minSerial = 20000 // 1954-09-30, older than any active appointment
	maxSerial = 60000 // 2064-04-06
)

// NormalizeDate folds the date spellings seen in roster exports into the
// dotted form "YYYY.MM.DD". Handled inputs: Excel serial numbers, dashed and
// slashed dates, dotted dates with stray spaces, and bare "YYYY.MM". Anything
// unrecognized is returned trimmed but otherwise untouched, and ok is false.
func NormalizeDate(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", true
	}
	if serial, ok := asExcelSerial(s); ok {
		return serial.Format("2006.01.02"), true
	}
	parts := splitDate(s)
	switch len(parts) {
	case 3:
		y, m, d, ok := numericDate(parts[0], parts[1], parts[2])
		if !ok {
			return s, false
		}
		return fmt.Sprintf("%04d.%02d.%02d", y, m, d), true
	case 2:
		y, m, _, ok := numericDate(parts[0], parts[1], "1")
		if !ok {
			return s, false
		}
		return fmt.Sprintf("%04d.%02d", y, m), true
	default:
		return s, false
	}
}

// NormalizeDateDash is NormalizeDate with dashed output ("YYYY-MM-DD").
// Dashed dates sort lexicographically, which the assistant de-duplication
// relies on.
func NormalizeDateDash(raw string) (string, bool) {
	dotted, ok := NormalizeDate(raw)
	if !ok {
		return dotted, false
	}
	return strings.ReplaceAll(dotted, ".", "-"), true
}

// ParseDate parses a normalized date ("YYYY.MM.DD", "YYYY-MM-DD" or
// "YYYY.MM", day defaulting to 1) into a UTC time.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006.01.02", "2006-01-02", "2006.01", "2006-01"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Month returns the two-digit month of a normalized date, or "" when the
// date does not parse.
func Month(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return ""
	}
	return t.Format("01")
}

// FormatPeriod renders a start/end pair the way the roster sheets do.
func FormatPeriod(start, end string) string {
	return start + " ~ " + end
}

func asExcelSerial(s string) (time.Time, bool) {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return time.Time{}, false
	}
	if n < minSerial || n > maxSerial {
		return time.Time{}, false
	}
	return excelEpoch.Add(time.Duration(n * 86400 * float64(time.Second))), true
}

func splitDate(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '.' || r == '-' || r == '/' || r == ' '
	})
	out := fields[:0]
	for _, f := range fields {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

func numericDate(ys, ms, ds string) (int, int, int, bool) {
	y, err1 := strconv.Atoi(ys)
	m, err2 := strconv.Atoi(ms)
	d, err3 := strconv.Atoi(ds)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0, false
	}
	if y < 1900 || y > 2200 || m < 1 || m > 12 || d < 1 || d > 31 {
		return 0, 0, 0, false
	}
	return y, m, d, true
}
