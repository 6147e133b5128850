package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/IsaacLanzoni/projeto-belezza/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestPolicyContains(t *testing.T) {
	now := time.Date(2026, 3, 2, 15, 42, 0, 0, time.Local) // Monday afternoon
	policy := NewPolicy(now, 30)

	assert.True(t, policy.Contains(date(2026, 3, 2)), "today is bookable")
	assert.True(t, policy.Contains(date(2026, 4, 1)), "today+30 is bookable")
	assert.False(t, policy.Contains(date(2026, 3, 1)), "yesterday is not")
	assert.False(t, policy.Contains(date(2026, 4, 2)), "today+31 is not")

	// Time-of-day on the queried date is irrelevant.
	assert.True(t, policy.Contains(time.Date(2026, 4, 1, 23, 59, 0, 0, time.Local)))
}

func TestResolveRangesWeekday(t *testing.T) {
	week := model.WeekSchedule{
		1: {Enabled: true, TimeRanges: []model.TimeRange{{Start: "09:00", End: "17:00"}}},
	}
	policy := NewPolicy(date(2026, 3, 2), 30)

	// Monday resolves from the template.
	ranges := ResolveRanges(date(2026, 3, 2), week, nil, policy)
	assert.Equal(t, []model.TimeRange{{Start: "09:00", End: "17:00"}}, ranges)

	// Tuesday has no template entry.
	assert.Empty(t, ResolveRanges(date(2026, 3, 3), week, nil, policy))
}

func TestResolveRangesDisabledDay(t *testing.T) {
	week := model.WeekSchedule{
		1: {Enabled: false, TimeRanges: []model.TimeRange{{Start: "09:00", End: "17:00"}}},
	}
	policy := NewPolicy(date(2026, 3, 2), 30)

	assert.Empty(t, ResolveRanges(date(2026, 3, 2), week, nil, policy))
}

func TestResolveRangesOverrideReplacesTemplate(t *testing.T) {
	week := model.WeekSchedule{
		1: {Enabled: true, TimeRanges: []model.TimeRange{{Start: "09:00", End: "17:00"}}},
	}
	special := model.SpecialDates{
		"2026-03-02": {Enabled: true, TimeRanges: []model.TimeRange{{Start: "13:00", End: "15:00"}}},
	}
	policy := NewPolicy(date(2026, 3, 2), 30)

	// The override wins outright; the template hours never leak through.
	ranges := ResolveRanges(date(2026, 3, 2), week, special, policy)
	assert.Equal(t, []model.TimeRange{{Start: "13:00", End: "15:00"}}, ranges)
}

func TestResolveRangesDisabledOverrideClosesDay(t *testing.T) {
	week := model.WeekSchedule{
		1: {Enabled: true, TimeRanges: []model.TimeRange{{Start: "09:00", End: "17:00"}}},
	}
	special := model.SpecialDates{
		"2026-03-02": {Enabled: false},
	}
	policy := NewPolicy(date(2026, 3, 2), 30)

	assert.Empty(t, ResolveRanges(date(2026, 3, 2), week, special, policy))
}

func TestResolveRangesOutsideHorizon(t *testing.T) {
	week := model.WeekSchedule{
		1: {Enabled: true, TimeRanges: []model.TimeRange{{Start: "09:00", End: "17:00"}}},
	}
	policy := NewPolicy(date(2026, 3, 2), 30)

	// A Monday far past the horizon resolves to nothing even though the
	// template would allow it.
	assert.Empty(t, ResolveRanges(date(2026, 6, 1), week, nil, policy))
}
