package availability

import (
	"sort"
	"time"

	"github.com/IsaacLanzoni/projeto-belezza/internal/model"
)

// ExpandSlots subdivides the given ranges into slot starts covering
// [start, end) at a fixed increment, in range order. A trailing remainder
// shorter than one increment is dropped: a slot is only offered when its
// full nominal duration fits inside the range. Overlapping ranges may
// produce duplicate starts; callers de-duplicate before presenting.
func ExpandSlots(ranges []model.TimeRange, slotDurationMinutes int) []string {
	if slotDurationMinutes <= 0 {
		return nil
	}

	var slots []string
	for _, r := range ranges {
		start, err := model.ParseClock(r.Start)
		if err != nil {
			continue
		}
		end, err := model.ParseClock(r.End)
		if err != nil || end <= start {
			continue
		}
		for t := start; t+slotDurationMinutes <= end; t += slotDurationMinutes {
			slots = append(slots, model.FormatClock(t))
		}
	}
	return slots
}

// DedupSlots removes duplicate slot starts, keeping first occurrence order.
func DedupSlots(slots []string) []string {
	seen := make(map[string]struct{}, len(slots))
	out := slots[:0:0]
	for _, s := range slots {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// MarkConflicts turns slot starts into presented slots, flagging each one
// unavailable when its interval [slot, slot+duration) overlaps any of the
// given non-canceled appointments. Matching on the full appointment span
// rather than the exact start means a 90-minute service blocks every slot
// it covers, not just its own start. Output is sorted chronologically
// regardless of generation order.
func MarkConflicts(starts []string, date time.Time, slotDurationMinutes int, appointments []*model.Appointment) []model.Slot {
	day := DateOnly(date)
	loc := day.Location()

	// Span endpoints are minutes relative to the day's midnight, so an
	// appointment running past midnight keeps an end beyond 1440 and
	// still blocks every late slot it covers.
	type span struct{ start, end int }
	busy := make([]span, 0, len(appointments))
	for _, apt := range appointments {
		if apt.Status == model.AppointmentStatusCanceled {
			continue
		}
		start := int(apt.StartTime.In(loc).Sub(day) / time.Minute)
		end := int(apt.EndTime.In(loc).Sub(day) / time.Minute)
		if end <= start {
			continue
		}
		busy = append(busy, span{start: start, end: end})
	}

	slots := make([]model.Slot, 0, len(starts))
	for _, s := range starts {
		startMin, err := model.ParseClock(s)
		if err != nil {
			continue
		}
		endMin := startMin + slotDurationMinutes

		available := true
		for _, b := range busy {
			if b.start < endMin && b.end > startMin {
				available = false
				break
			}
		}
		slots = append(slots, model.Slot{Time: s, Available: available})
	}

	// HH:MM sorts lexicographically in chronological order.
	sort.Slice(slots, func(i, j int) bool { return slots[i].Time < slots[j].Time })
	return slots
}
