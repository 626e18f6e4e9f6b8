package utils

import (
	"fmt"
	"strings"
	"time"

	"fleetops/internal/domain"
)

const (
	layoutDate     = "2006-01-02"
	layoutDateTime = "2006-01-02 15:04:05"
	layoutMonth    = "2006-01"
)

// ParseMonth parses "YYYY-MM" into a calendar month.
func ParseMonth(s string) (domain.YearMonth, error) {
	t, err := time.Parse(layoutMonth, strings.TrimSpace(s))
	if err != nil {
		return domain.YearMonth{}, fmt.Errorf("invalid month %q, expected YYYY-MM", s)
	}
	return domain.YearMonth{Year: t.Year(), Month: t.Month()}, nil
}

// CurrentMonth is the calendar month of now in local time.
func CurrentMonth(now time.Time) domain.YearMonth {
	now = now.In(time.Local)
	return domain.YearMonth{Year: now.Year(), Month: now.Month()}
}

// ParseDateTime parses "YYYY-MM-DD HH:MM:SS" or RFC3339 in local timezone.
func ParseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(layoutDateTime, s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(layoutDate, s, time.Local); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// FormatDateTime formats time to "YYYY-MM-DD HH:MM:SS" in local timezone.
func FormatDateTime(t time.Time) string {
	return t.In(time.Local).Format(layoutDateTime)
}
