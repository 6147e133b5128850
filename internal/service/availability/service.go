package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/IsaacLanzoni/projeto-belezza/internal/model"
	"github.com/IsaacLanzoni/projeto-belezza/pkg/metrics"
)

// ScheduleSource yields the resolved schedule configuration of one
// professional: the weekly template plus date overrides.
type ScheduleSource interface {
	ResolvedSchedule(ctx context.Context, professionalID uuid.UUID) (model.WeekSchedule, model.SpecialDates, error)
}

// AppointmentSource yields the non-canceled appointments used for
// conflict checking.
type AppointmentSource interface {
	ListActiveForDay(ctx context.Context, professionalID uuid.UUID, dayStart, dayEnd time.Time) ([]*model.Appointment, error)
}

type Config struct {
	HorizonDays         int
	SlotDurationMinutes int
}

// Service computes the bookable slot list for a professional and date by
// layering the schedule sources, expanding them into fixed increments and
// filtering against existing bookings.
type Service struct {
	schedules    ScheduleSource
	appointments AppointmentSource
	cfg          Config
	metrics      *metrics.Metrics
	now          func() time.Time
}

func NewService(schedules ScheduleSource, appointments AppointmentSource, cfg Config, m *metrics.Metrics) *Service {
	if cfg.HorizonDays <= 0 {
		cfg.HorizonDays = 30
	}
	if cfg.SlotDurationMinutes <= 0 {
		cfg.SlotDurationMinutes = 30
	}
	return &Service{
		schedules:    schedules,
		appointments: appointments,
		cfg:          cfg,
		metrics:      m,
		now:          time.Now,
	}
}

// WithNow overrides the clock. Test seam.
func (s *Service) WithNow(now func() time.Time) *Service {
	s.now = now
	return s
}

// GetAvailableSlots returns the ordered slot list for one date. An empty
// list is the ordinary answer for disabled days, out-of-horizon dates and
// fully booked days; it is never an error.
func (s *Service) GetAvailableSlots(ctx context.Context, professionalID uuid.UUID, date time.Time) ([]model.Slot, error) {
	week, special, err := s.schedules.ResolvedSchedule(ctx, professionalID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve schedule: %w", err)
	}

	policy := NewPolicy(s.now(), s.cfg.HorizonDays)
	ranges := ResolveRanges(date, week, special, policy)
	if len(ranges) == 0 {
		return []model.Slot{}, nil
	}

	starts := DedupSlots(ExpandSlots(ranges, s.cfg.SlotDurationMinutes))
	if len(starts) == 0 {
		return []model.Slot{}, nil
	}

	day := DateOnly(date)
	appointments, err := s.appointments.ListActiveForDay(ctx, professionalID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	slots := MarkConflicts(starts, day, s.cfg.SlotDurationMinutes, appointments)
	if s.metrics != nil {
		s.metrics.SlotsComputed.Observe(float64(len(slots)))
	}
	return slots, nil
}

// SlotDuration exposes the configured increment, used by the booking
// service to derive appointment spans.
func (s *Service) SlotDuration() time.Duration {
	return time.Duration(s.cfg.SlotDurationMinutes) * time.Minute
}
