package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/IsaacLanzoni/projeto-belezza/pkg/errors"
)

func TestParseClock(t *testing.T) {
	minutes, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 9*60+30, minutes)

	minutes, err = ParseClock("00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, minutes)

	minutes, err = ParseClock("23:59")
	require.NoError(t, err)
	assert.Equal(t, 23*60+59, minutes)

	for _, bad := range []string{"9:30", "09:3", "24:00", "12:60", "12-30", "", "banana"} {
		_, err := ParseClock(bad)
		assert.Error(t, err, "expected %q to be rejected", bad)
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "09:00", FormatClock(9*60))
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "13:30", FormatClock(13*60+30))
}

func TestValidateTimeRange(t *testing.T) {
	assert.NoError(t, ValidateTimeRange(TimeRange{Start: "09:00", End: "17:00"}, 30))
	assert.NoError(t, ValidateTimeRange(TimeRange{Start: "09:30", End: "10:00"}, 30))

	// Start must come strictly before end.
	err := ValidateTimeRange(TimeRange{Start: "17:00", End: "09:00"}, 30)
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))

	err = ValidateTimeRange(TimeRange{Start: "09:00", End: "09:00"}, 30)
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))

	// Off-granularity minutes are rejected.
	err = ValidateTimeRange(TimeRange{Start: "09:15", End: "10:00"}, 30)
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))

	// Malformed endpoints.
	err = ValidateTimeRange(TimeRange{Start: "nine", End: "10:00"}, 30)
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
}

func TestDayScheduleValidate(t *testing.T) {
	disabled := DaySchedule{Enabled: false}
	assert.NoError(t, disabled.Validate(30))

	enabled := DaySchedule{Enabled: true, TimeRanges: []TimeRange{{Start: "09:00", End: "12:00"}}}
	assert.NoError(t, enabled.Validate(30))

	empty := DaySchedule{Enabled: true}
	assert.True(t, apperrors.Is(empty.Validate(30), apperrors.ErrValidation))
}

func TestWeekScheduleValidate(t *testing.T) {
	assert.NoError(t, DefaultWeekSchedule().Validate(30))

	bad := WeekSchedule{7: {Enabled: false}}
	assert.True(t, apperrors.Is(bad.Validate(30), apperrors.ErrValidation))
}

func TestDefaultWeekSchedule(t *testing.T) {
	week := DefaultWeekSchedule()
	require.Len(t, week, 7)

	assert.False(t, week[0].Enabled, "Sunday should be disabled")
	assert.False(t, week[6].Enabled, "Saturday should be disabled")
	for day := 1; day <= 5; day++ {
		assert.True(t, week[day].Enabled)
		assert.Equal(t, []TimeRange{{Start: "09:00", End: "17:00"}}, week[day].TimeRanges)
	}
}

func TestWeekScheduleJSONShape(t *testing.T) {
	week := WeekSchedule{
		1: {Enabled: true, TimeRanges: []TimeRange{{Start: "09:00", End: "17:00"}}},
	}

	raw, err := json.Marshal(week)
	require.NoError(t, err)
	assert.JSONEq(t, `{"1":{"enabled":true,"timeRanges":[{"start":"09:00","end":"17:00"}]}}`, string(raw))

	var decoded WeekSchedule
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, week, decoded)
}
