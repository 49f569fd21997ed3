package utils

import (
	"fmt"
	"strings"
	"time"
)

var flexibleTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseFlexibleTime accepts the ISO-ish date strings clients send for
// appointment_date, dob and query ranges.
func ParseFlexibleTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	var lastErr error
	for _, layout := range flexibleTimeLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).Add(24*time.Hour - time.Millisecond)
}

// PeriodKey buckets t by day (2006-01-02), ISO week (2006-W01), month (2006-01)
// or a single "overall" bucket.
func PeriodKey(t time.Time, group string) string {
	switch group {
	case "week":
		year, week := t.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	case "month":
		return t.Format("2006-01")
	case "overall":
		return "overall"
	default:
		return t.Format("2006-01-02")
	}
}

// AppointmentDateBounds turns a time range into bounds for the appointment_date
// string field, which holds either a date or a date-time. The lower bound is
// the start date, the upper bound the end instant in ISO form, so date-only
// values on either edge day still match.
func AppointmentDateBounds(start, end *time.Time) (string, string) {
	var lower, upper string
	if start != nil {
		lower = start.UTC().Format("2006-01-02")
	}
	if end != nil {
		upper = end.UTC().Format("2006-01-02T15:04:05.000Z")
	}
	return lower, upper
}
