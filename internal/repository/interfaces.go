package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/IsaacLanzoni/projeto-belezza/internal/model"
)

// All repository interfaces in one file
type (
	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	}

	ProfessionalRepository interface {
		// Create inserts the catalog row for a professional account.
		// The row shares its id with the owning users row.
		Create(ctx context.Context, professional *model.Professional) error
		Get(ctx context.Context, id uuid.UUID) (*model.Professional, error)
		List(ctx context.Context) ([]*model.Professional, error)
	}

	ServiceRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.Service, error)
		List(ctx context.Context, category string) ([]*model.Service, error)
	}

	// ScheduleRepository persists the weekly template and the per-date
	// overrides of one professional.
	ScheduleRepository interface {
		GetWeekSchedule(ctx context.Context, professionalID uuid.UUID) (model.WeekSchedule, error)
		GetSpecialDates(ctx context.Context, professionalID uuid.UUID) (model.SpecialDates, error)
		SaveWeekSchedule(ctx context.Context, professionalID uuid.UUID, week model.WeekSchedule) error
		SaveSpecialDate(ctx context.Context, professionalID uuid.UUID, date string, day model.DaySchedule) error
		DeleteSpecialDate(ctx context.Context, professionalID uuid.UUID, date string) error
	}

	AppointmentRepository interface {
		// Create inserts the appointment; ErrDuplicateSlot when another
		// non-canceled appointment already holds the same
		// (professional, start_time) pair.
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		// ListActiveForDay returns non-canceled appointments of one
		// professional with start_time within [dayStart, dayEnd).
		ListActiveForDay(ctx context.Context, professionalID uuid.UUID, dayStart, dayEnd time.Time) ([]*model.Appointment, error)
		ListForClient(ctx context.Context, clientID uuid.UUID) ([]*model.Appointment, error)
		ListForProfessional(ctx context.Context, professionalID uuid.UUID, from, to time.Time) ([]*model.Appointment, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus, cancelReason *string) error
		// MarkCompletedBefore flips pending/confirmed appointments whose
		// end_time passed the cutoff to completed, returning the count.
		MarkCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error)
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		MarkProcessed(ctx context.Context, id uuid.UUID) error
		MarkFailed(ctx context.Context, id uuid.UUID, errMsg string) error
	}
)
