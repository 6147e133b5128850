package model

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/IsaacLanzoni/projeto-belezza/pkg/errors"
)

// TimeRange is a half-open working interval within a single day, in
// 24h "HH:MM" wall-clock strings.
type TimeRange struct {
	Start string `json:"start" db:"start"`
	End   string `json:"end" db:"end"`
}

// DaySchedule is the availability of a professional for one day: either a
// weekday template entry or a date-specific override.
type DaySchedule struct {
	Enabled    bool        `json:"enabled"`
	TimeRanges []TimeRange `json:"timeRanges"`
}

// WeekSchedule is the recurring weekly template, keyed by weekday index
// (0=Sunday..6=Saturday). JSON round-trips with string keys ("0".."6"),
// the same shape the schedule editor produces.
type WeekSchedule map[int]DaySchedule

// SpecialDates maps ISO dates ("2006-01-02") to full-day overrides. An
// entry replaces the weekday template for that date entirely.
type SpecialDates map[string]DaySchedule

// DefaultGranularityMinutes is the minute boundary allowed for range
// starts and ends (:00 and :30).
const DefaultGranularityMinutes = 30

// DefaultWeekSchedule returns the schedule a professional starts with:
// Monday through Friday 09:00-17:00, weekend disabled.
func DefaultWeekSchedule() WeekSchedule {
	defaultRange := []TimeRange{{Start: "09:00", End: "17:00"}}
	week := WeekSchedule{}
	for day := 0; day <= 6; day++ {
		week[day] = DaySchedule{
			Enabled:    day >= 1 && day <= 5,
			TimeRanges: defaultRange,
		}
	}
	return week
}

// ParseClock converts an "HH:MM" string to minutes since midnight.
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("malformed time %q, want HH:MM", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hour*60 + minute, nil
}

// FormatClock converts minutes since midnight back to "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ValidateTimeRange checks that a range is well formed: both endpoints
// valid HH:MM on a 24h clock, start strictly before end, and minute
// components aligned to the allowed granularity.
func ValidateTimeRange(r TimeRange, granularityMinutes int) error {
	if granularityMinutes <= 0 {
		granularityMinutes = DefaultGranularityMinutes
	}

	start, err := ParseClock(r.Start)
	if err != nil {
		return apperrors.Validation("invalid range start", err)
	}
	end, err := ParseClock(r.End)
	if err != nil {
		return apperrors.Validation("invalid range end", err)
	}
	if start >= end {
		return apperrors.Validation(
			fmt.Sprintf("range start %s must be before end %s", r.Start, r.End), nil)
	}
	if start%granularityMinutes != 0 || end%granularityMinutes != 0 {
		return apperrors.Validation(
			fmt.Sprintf("range %s-%s not aligned to %d-minute boundaries", r.Start, r.End, granularityMinutes), nil)
	}
	return nil
}

// Validate checks a day entry. Enabled days must carry at least one valid
// range; ranges may overlap, the slot engine de-duplicates downstream.
func (d DaySchedule) Validate(granularityMinutes int) error {
	if !d.Enabled {
		return nil
	}
	if len(d.TimeRanges) == 0 {
		return apperrors.Validation("enabled day requires at least one time range", nil)
	}
	for _, r := range d.TimeRanges {
		if err := ValidateTimeRange(r, granularityMinutes); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks every day entry of the weekly template.
func (w WeekSchedule) Validate(granularityMinutes int) error {
	for day, entry := range w {
		if day < 0 || day > 6 {
			return apperrors.Validation(fmt.Sprintf("invalid weekday index %d", day), nil)
		}
		if err := entry.Validate(granularityMinutes); err != nil {
			return err
		}
	}
	return nil
}
