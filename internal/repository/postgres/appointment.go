package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/IsaacLanzoni/projeto-belezza/internal/model"
	"github.com/IsaacLanzoni/projeto-belezza/internal/repository"
)

// uniqueViolation is the Postgres error code raised when the partial
// unique index on (professional_id, start_time) rejects an insert.
const uniqueViolation = "23505"

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			id, professional_id, client_id, service_id,
			start_time, end_time, status,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	appointment.ID = uuid.New()
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		appointment.ID,
		appointment.ProfessionalID,
		appointment.ClientID,
		appointment.ServiceID,
		appointment.StartTime,
		appointment.EndTime,
		appointment.Status,
		appointment.CreatedAt,
		appointment.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return repository.ErrDuplicateSlot
		}
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `
		SELECT id, professional_id, client_id, service_id,
			   start_time, end_time, status, cancel_reason,
			   created_at, updated_at
		FROM appointments
		WHERE id = $1
	`
	var appointment model.Appointment
	err := r.db.GetContext(ctx, &appointment, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) ListActiveForDay(ctx context.Context, professionalID uuid.UUID, dayStart, dayEnd time.Time) ([]*model.Appointment, error) {
	query := `
		SELECT id, professional_id, client_id, service_id,
			   start_time, end_time, status, cancel_reason,
			   created_at, updated_at
		FROM appointments
		WHERE professional_id = $1
		AND start_time >= $2
		AND start_time < $3
		AND status NOT IN ('canceled')
		ORDER BY start_time ASC
	`
	var appointments []*model.Appointment
	err := r.db.SelectContext(ctx, &appointments, query, professionalID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments for day: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ListForClient(ctx context.Context, clientID uuid.UUID) ([]*model.Appointment, error) {
	query := `
		SELECT id, professional_id, client_id, service_id,
			   start_time, end_time, status, cancel_reason,
			   created_at, updated_at
		FROM appointments
		WHERE client_id = $1
		ORDER BY start_time ASC
	`
	var appointments []*model.Appointment
	err := r.db.SelectContext(ctx, &appointments, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list client appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ListForProfessional(ctx context.Context, professionalID uuid.UUID, from, to time.Time) ([]*model.Appointment, error) {
	query := `
		SELECT id, professional_id, client_id, service_id,
			   start_time, end_time, status, cancel_reason,
			   created_at, updated_at
		FROM appointments
		WHERE professional_id = $1
		AND start_time >= $2
		AND start_time < $3
		ORDER BY start_time ASC
	`
	var appointments []*model.Appointment
	err := r.db.SelectContext(ctx, &appointments, query, professionalID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list professional appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus, cancelReason *string) error {
	query := `
		UPDATE appointments
		SET status = $1, cancel_reason = $2, updated_at = $3
		WHERE id = $4
	`
	result, err := r.db.ExecContext(ctx, query, status, cancelReason, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update appointment status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *appointmentRepository) MarkCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		UPDATE appointments
		SET status = 'completed', updated_at = $1
		WHERE end_time < $2
		AND status IN ('pending', 'confirmed')
	`
	result, err := r.db.ExecContext(ctx, query, time.Now(), cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to mark appointments completed: %w", err)
	}
	return result.RowsAffected()
}
