package availability

import (
	"time"

	"github.com/IsaacLanzoni/projeto-belezza/internal/model"
)

// Policy bounds which calendar dates are bookable. Both ends are
// inclusive local-midnight dates.
type Policy struct {
	MinDate time.Time
	MaxDate time.Time
}

// NewPolicy builds the booking horizon for "now": today through
// today+horizonDays.
func NewPolicy(now time.Time, horizonDays int) Policy {
	today := DateOnly(now)
	return Policy{
		MinDate: today,
		MaxDate: today.AddDate(0, 0, horizonDays),
	}
}

// Contains reports whether the date falls inside the horizon.
func (p Policy) Contains(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(p.MinDate) && !d.After(p.MaxDate)
}

// DateOnly truncates a timestamp to its local midnight.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ResolveRanges produces the enabled time ranges applicable to one date.
//
// Out-of-policy dates resolve to nothing; that is the ordinary "nothing
// bookable" answer, not an error. A special-date entry replaces the
// weekday template entirely, never merges with it: an override with
// different hours is how one-off changes (holiday reduced hours) are
// expressed. Otherwise the weekday entry applies; missing or disabled
// entries resolve to nothing.
func ResolveRanges(date time.Time, week model.WeekSchedule, special model.SpecialDates, policy Policy) []model.TimeRange {
	if !policy.Contains(date) {
		return nil
	}

	if day, ok := special[DateOnly(date).Format(model.DateFormat)]; ok {
		if !day.Enabled {
			return nil
		}
		return day.TimeRanges
	}

	day, ok := week[int(date.Weekday())]
	if !ok || !day.Enabled {
		return nil
	}
	return day.TimeRanges
}
