// Package coerce converts raw spreadsheet cell values into typed values.
// Every coercer degrades to nil on malformed input; none of them panic.
package coerce

import (
	"strconv"
	"strings"
	"time"
)

// excelEpoch is 1900-01-01, the anchor for Excel serial dates.
var excelEpoch = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// plausible serial-date bounds: 1 = 1900-01-01, ~80000 ≈ year 2119
const (
	minSerial = 1
	maxSerial = 80000
)

var dateLayouts = []string{
	"02/01/2006", // DD/MM/YYYY
	"2006-01-02", // YYYY-MM-DD
	"02-01-2006", // DD-MM-YYYY
}

// ToDate accepts a time.Time, a numeric Excel serial date, or a string in
// DD/MM/YYYY, YYYY-MM-DD or DD-MM-YYYY form. The result is truncated to day
// precision. Unparseable input yields nil.
func ToDate(v any) *time.Time {
	switch t := v.(type) {
	case nil:
		return nil
	case time.Time:
		if t.IsZero() {
			return nil
		}
		d := truncateToDay(t)
		return &d
	case *time.Time:
		if t == nil {
			return nil
		}
		return ToDate(*t)
	case float64:
		return serialToDate(t)
	case float32:
		return serialToDate(float64(t))
	case int:
		return serialToDate(float64(t))
	case int64:
		return serialToDate(float64(t))
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil
		}
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				d := truncateToDay(parsed)
				return &d
			}
		}
		// spreadsheet libraries often hand serial dates back as plain
		// numeric strings
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return serialToDate(f)
		}
		return nil
	default:
		return nil
	}
}

// serialToDate applies the classic 1900-epoch conversion: Excel pretends
// 1900 was a leap year, so day numbers past the phantom Feb 29 (serial 60)
// are shifted back one extra day. Serial 60 itself lands on Feb 28 rather
// than a date that does not exist.
func serialToDate(serial float64) *time.Time {
	days := int(serial) // drop the fractional time-of-day part
	if days < minSerial || days > maxSerial {
		return nil
	}
	offset := days - 1
	if days > 59 {
		offset = days - 2
	}
	d := excelEpoch.AddDate(0, 0, offset)
	return &d
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ToAmount accepts a number, or a string stripped down to digits and
// separators with the comma treated as decimal separator, so "R$ 1.234,56"
// and 1234.56 both come out as 1234.56. Failure yields nil.
func ToAmount(v any) *float64 {
	switch n := v.(type) {
	case nil:
		return nil
	case float64:
		return &n
	case float32:
		f := float64(n)
		return &f
	case int:
		f := float64(n)
		return &f
	case int64:
		f := float64(n)
		return &f
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return nil
		}
		var b strings.Builder
		for _, r := range s {
			if (r >= '0' && r <= '9') || r == ',' || r == '.' || r == '-' {
				b.WriteRune(r)
			}
		}
		cleaned := b.String()
		if cleaned == "" {
			return nil
		}
		if strings.Contains(cleaned, ",") {
			// Brazilian format: dots are thousand separators
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.Replace(cleaned, ",", ".", 1)
			// a second comma means garbage
			if strings.Contains(cleaned, ",") {
				return nil
			}
		}
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}

// Truncate clips s to max runes. Used defensively before every text write.
func Truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// ToString renders any cell value as a trimmed string.
func ToString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case bool:
		return strconv.FormatBool(s)
	case time.Time:
		return s.Format("2006-01-02")
	default:
		return ""
	}
}

// IsBlank reports whether a cell carries no usable content.
func IsBlank(v any) bool {
	return ToString(v) == ""
}

// RowIsBlank reports whether every field of the row is blank.
func RowIsBlank(row map[string]any) bool {
	for _, v := range row {
		if !IsBlank(v) {
			return false
		}
	}
	return true
}
