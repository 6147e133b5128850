package availability

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/IsaacLanzoni/projeto-belezza/internal/model"
)

func TestExpandSlots(t *testing.T) {
	// One hour yields exactly two half-hour starts.
	slots := ExpandSlots([]model.TimeRange{{Start: "09:00", End: "10:00"}}, 30)
	assert.Equal(t, []string{"09:00", "09:30"}, slots)

	// A partial trailing increment is dropped.
	slots = ExpandSlots([]model.TimeRange{{Start: "09:00", End: "09:45"}}, 30)
	assert.Equal(t, []string{"09:00"}, slots)

	// A range shorter than one increment yields nothing.
	assert.Empty(t, ExpandSlots([]model.TimeRange{{Start: "09:00", End: "09:15"}}, 30))

	// Multiple ranges expand in order.
	slots = ExpandSlots([]model.TimeRange{
		{Start: "09:00", End: "10:00"},
		{Start: "14:00", End: "15:00"},
	}, 30)
	assert.Equal(t, []string{"09:00", "09:30", "14:00", "14:30"}, slots)

	// Malformed or inverted ranges are skipped.
	assert.Empty(t, ExpandSlots([]model.TimeRange{{Start: "banana", End: "10:00"}}, 30))
	assert.Empty(t, ExpandSlots([]model.TimeRange{{Start: "12:00", End: "11:00"}}, 30))
}

func TestDedupSlots(t *testing.T) {
	slots := DedupSlots([]string{"09:00", "09:30", "09:00", "10:00", "09:30"})
	assert.Equal(t, []string{"09:00", "09:30", "10:00"}, slots)

	assert.Empty(t, DedupSlots(nil))
}

func apt(day time.Time, start, end string, status model.AppointmentStatus) *model.Appointment {
	s, _ := model.ParseClock(start)
	e, _ := model.ParseClock(end)
	return &model.Appointment{
		Base:      model.Base{ID: uuid.New()},
		StartTime: day.Add(time.Duration(s) * time.Minute),
		EndTime:   day.Add(time.Duration(e) * time.Minute),
		Status:    status,
	}
}

func TestMarkConflictsExactMatch(t *testing.T) {
	day := date(2026, 3, 2)
	starts := []string{"09:00", "09:30", "10:00"}
	appointments := []*model.Appointment{
		apt(day, "09:30", "10:00", model.AppointmentStatusPending),
	}

	slots := MarkConflicts(starts, day, 30, appointments)
	assert.Equal(t, []model.Slot{
		{Time: "09:00", Available: true},
		{Time: "09:30", Available: false},
		{Time: "10:00", Available: true},
	}, slots)
}

func TestMarkConflictsLongServiceBlocksSpan(t *testing.T) {
	day := date(2026, 3, 2)
	starts := []string{"09:00", "09:30", "10:00", "10:30", "11:00"}

	// A 90-minute appointment starting 09:30 covers three slots.
	appointments := []*model.Appointment{
		apt(day, "09:30", "11:00", model.AppointmentStatusConfirmed),
	}

	slots := MarkConflicts(starts, day, 30, appointments)
	assert.Equal(t, []model.Slot{
		{Time: "09:00", Available: true},
		{Time: "09:30", Available: false},
		{Time: "10:00", Available: false},
		{Time: "10:30", Available: false},
		{Time: "11:00", Available: true},
	}, slots)
}

func TestMarkConflictsAppointmentPastMidnight(t *testing.T) {
	day := date(2026, 3, 2)
	starts := []string{"21:30", "22:00", "22:30", "23:00", "23:30"}

	// A 180-minute appointment starting 22:00 ends 01:00 the next day
	// and must block every evening slot it covers.
	appointments := []*model.Appointment{
		{
			Base:      model.Base{ID: uuid.New()},
			StartTime: day.Add(22 * time.Hour),
			EndTime:   day.Add(25 * time.Hour),
			Status:    model.AppointmentStatusConfirmed,
		},
	}

	slots := MarkConflicts(starts, day, 30, appointments)
	assert.Equal(t, []model.Slot{
		{Time: "21:30", Available: true},
		{Time: "22:00", Available: false},
		{Time: "22:30", Available: false},
		{Time: "23:00", Available: false},
		{Time: "23:30", Available: false},
	}, slots)
}

func TestMarkConflictsIgnoresCanceled(t *testing.T) {
	day := date(2026, 3, 2)
	appointments := []*model.Appointment{
		apt(day, "09:00", "09:30", model.AppointmentStatusCanceled),
	}

	slots := MarkConflicts([]string{"09:00"}, day, 30, appointments)
	assert.Equal(t, []model.Slot{{Time: "09:00", Available: true}}, slots)
}

func TestMarkConflictsSortsOutput(t *testing.T) {
	day := date(2026, 3, 2)
	slots := MarkConflicts([]string{"14:00", "09:00", "10:30"}, day, 30, nil)
	assert.Equal(t, []model.Slot{
		{Time: "09:00", Available: true},
		{Time: "10:30", Available: true},
		{Time: "14:00", Available: true},
	}, slots)
}
