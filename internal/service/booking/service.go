package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/IsaacLanzoni/projeto-belezza/internal/model"
	"github.com/IsaacLanzoni/projeto-belezza/internal/repository"
	apperrors "github.com/IsaacLanzoni/projeto-belezza/pkg/errors"
	"github.com/IsaacLanzoni/projeto-belezza/pkg/metrics"
)

// SlotLister is the authoritative availability computation, re-run on
// every commit attempt. A slot list fetched earlier by the client is
// never trusted.
type SlotLister interface {
	GetAvailableSlots(ctx context.Context, professionalID uuid.UUID, date time.Time) ([]model.Slot, error)
}

// Notifier sends best-effort booking mails. Failures never fail the
// request.
type Notifier interface {
	SendBookingConfirmation(ctx context.Context, to string, apt *model.Appointment) error
	SendBookingCancellation(ctx context.Context, to string, apt *model.Appointment) error
}

// Service implements the booking commit protocol: validate the request
// against live availability, then rely on the persistence layer's unique
// constraint so that concurrent attempts on the same
// (professional, start time) pair can never both succeed.
type Service struct {
	appointments  repository.AppointmentRepository
	professionals repository.ProfessionalRepository
	services      repository.ServiceRepository
	users         repository.UserRepository
	outbox        repository.OutboxRepository
	slots         SlotLister
	notifier      Notifier
	metrics       *metrics.Metrics
}

func NewService(
	appointments repository.AppointmentRepository,
	professionals repository.ProfessionalRepository,
	services repository.ServiceRepository,
	users repository.UserRepository,
	outbox repository.OutboxRepository,
	slots SlotLister,
	notifier Notifier,
	m *metrics.Metrics,
) *Service {
	return &Service{
		appointments:  appointments,
		professionals: professionals,
		services:      services,
		users:         users,
		outbox:        outbox,
		slots:         slots,
		notifier:      notifier,
		metrics:       m,
	}
}

// BookSlot reserves one slot for the authenticated client. New
// appointments start as pending; the professional confirms them later.
func (s *Service) BookSlot(ctx context.Context, clientID uuid.UUID, req *model.BookSlotRequest) (*model.Appointment, error) {
	date, err := time.ParseInLocation(model.DateFormat, req.Date, time.Local)
	if err != nil {
		return nil, apperrors.Validation("invalid date, want YYYY-MM-DD", err)
	}
	clock, err := model.ParseClock(req.Time)
	if err != nil {
		return nil, apperrors.Validation("invalid time, want HH:MM", err)
	}

	if _, err := s.professionals.Get(ctx, req.ProfessionalID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("professional", err)
		}
		return nil, fmt.Errorf("failed to get professional: %w", err)
	}

	service, err := s.services.Get(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("service", err)
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}

	// Authoritative availability check at commit time.
	slots, err := s.slots.GetAvailableSlots(ctx, req.ProfessionalID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to compute availability: %w", err)
	}
	if !slotOffered(slots, req.Time) {
		s.countConflict()
		return nil, apperrors.SlotNoLongerAvailable(nil)
	}

	startTime := date.Add(time.Duration(clock) * time.Minute)
	apt := &model.Appointment{
		ProfessionalID: req.ProfessionalID,
		ClientID:       clientID,
		ServiceID:      req.ServiceID,
		StartTime:      startTime,
		EndTime:        startTime.Add(time.Duration(service.Duration) * time.Minute),
		Status:         model.AppointmentStatusPending,
	}

	// The partial unique index on (professional_id, start_time) decides
	// races between here and any concurrent commit.
	if err := s.appointments.Create(ctx, apt); err != nil {
		if errors.Is(err, repository.ErrDuplicateSlot) {
			s.countConflict()
			return nil, apperrors.SlotNoLongerAvailable(err)
		}
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	if s.metrics != nil {
		s.metrics.BookingsCommitted.Inc()
	}
	s.recordEvent(ctx, model.EventAppointmentCreated, apt)
	s.notify(ctx, apt, true)
	return apt, nil
}

// Cancel transitions an appointment to canceled. Only the owning client
// or the professional may cancel; canceling an already-canceled
// appointment is a no-op success. The freed slot becomes bookable on the
// next availability read.
func (s *Service) Cancel(ctx context.Context, appointmentID, actorID uuid.UUID, reason string) error {
	apt, err := s.appointments.Get(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("appointment", err)
		}
		return fmt.Errorf("failed to get appointment: %w", err)
	}

	if actorID != apt.ClientID && actorID != apt.ProfessionalID {
		return apperrors.Forbidden("appointment belongs to another client", nil)
	}
	if apt.Status == model.AppointmentStatusCanceled {
		return nil
	}
	if apt.Status == model.AppointmentStatusCompleted {
		return apperrors.Validation("cannot cancel a completed appointment", nil)
	}

	var cancelReason *string
	if reason != "" {
		cancelReason = &reason
	}
	if err := s.appointments.UpdateStatus(ctx, appointmentID, model.AppointmentStatusCanceled, cancelReason); err != nil {
		return fmt.Errorf("failed to cancel appointment: %w", err)
	}

	if s.metrics != nil {
		s.metrics.BookingsCanceled.Inc()
	}
	apt.Status = model.AppointmentStatusCanceled
	apt.CancelReason = cancelReason
	s.recordEvent(ctx, model.EventAppointmentCanceled, apt)
	s.notify(ctx, apt, false)
	return nil
}

// Confirm lets the professional accept a pending appointment.
func (s *Service) Confirm(ctx context.Context, appointmentID, professionalID uuid.UUID) error {
	apt, err := s.appointments.Get(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("appointment", err)
		}
		return fmt.Errorf("failed to get appointment: %w", err)
	}

	if professionalID != apt.ProfessionalID {
		return apperrors.Forbidden("appointment belongs to another professional", nil)
	}
	if apt.Status != model.AppointmentStatusPending {
		return apperrors.Validation(fmt.Sprintf("cannot confirm a %s appointment", apt.Status), nil)
	}

	if err := s.appointments.UpdateStatus(ctx, appointmentID, model.AppointmentStatusConfirmed, nil); err != nil {
		return fmt.Errorf("failed to confirm appointment: %w", err)
	}
	return nil
}

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	apt, err := s.appointments.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("appointment", err)
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return apt, nil
}

func (s *Service) ListForClient(ctx context.Context, clientID uuid.UUID) ([]*model.Appointment, error) {
	appointments, err := s.appointments.ListForClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (s *Service) ListForProfessional(ctx context.Context, professionalID uuid.UUID, from, to time.Time) ([]*model.Appointment, error) {
	appointments, err := s.appointments.ListForProfessional(ctx, professionalID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func slotOffered(slots []model.Slot, start string) bool {
	for _, slot := range slots {
		if slot.Time == start {
			return slot.Available
		}
	}
	return false
}

func (s *Service) countConflict() {
	if s.metrics != nil {
		s.metrics.BookingConflicts.Inc()
	}
}

func (s *Service) recordEvent(ctx context.Context, eventType string, apt *model.Appointment) {
	if s.outbox == nil {
		return
	}
	payload, err := json.Marshal(apt)
	if err != nil {
		log.Error().Err(err).Str("event", eventType).Msg("failed to encode outbox payload")
		return
	}
	event := &model.OutboxEvent{EventType: eventType, Payload: payload}
	if err := s.outbox.Create(ctx, event); err != nil {
		log.Error().Err(err).Str("event", eventType).Msg("failed to record outbox event")
	}
}

func (s *Service) notify(ctx context.Context, apt *model.Appointment, created bool) {
	if s.notifier == nil || s.users == nil {
		return
	}
	client, err := s.users.Get(ctx, apt.ClientID)
	if err != nil {
		log.Warn().Err(err).Str("appointment", apt.ID.String()).Msg("skipping notification, client lookup failed")
		return
	}

	if created {
		err = s.notifier.SendBookingConfirmation(ctx, client.Email, apt)
	} else {
		err = s.notifier.SendBookingCancellation(ctx, client.Email, apt)
	}
	if err != nil {
		log.Warn().Err(err).Str("appointment", apt.ID.String()).Msg("failed to send booking notification")
	}
}
