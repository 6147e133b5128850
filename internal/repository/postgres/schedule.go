package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/IsaacLanzoni/projeto-belezza/internal/model"
)

// Schedules are stored the way the schedule editor shaped them: one jsonb
// row per professional for the weekly template (schedule_type = 'weekly',
// date NULL) and one row per override date (schedule_type = 'special').

func (r *scheduleRepository) GetWeekSchedule(ctx context.Context, professionalID uuid.UUID) (model.WeekSchedule, error) {
	query := `
		SELECT schedule_data
		FROM professional_schedules
		WHERE professional_id = $1 AND schedule_type = 'weekly'
	`
	var raw []byte
	err := r.db.GetContext(ctx, &raw, query, professionalID)
	if errors.Is(err, sql.ErrNoRows) {
		// No saved template yet: the caller falls back to the default.
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load week schedule: %w", err)
	}

	var week model.WeekSchedule
	if err := json.Unmarshal(raw, &week); err != nil {
		return nil, fmt.Errorf("failed to decode week schedule: %w", err)
	}
	return week, nil
}

func (r *scheduleRepository) GetSpecialDates(ctx context.Context, professionalID uuid.UUID) (model.SpecialDates, error) {
	query := `
		SELECT date, schedule_data
		FROM professional_schedules
		WHERE professional_id = $1 AND schedule_type = 'special'
	`
	rows, err := r.db.QueryxContext(ctx, query, professionalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load special dates: %w", err)
	}
	defer rows.Close()

	special := model.SpecialDates{}
	for rows.Next() {
		var date time.Time
		var raw []byte
		if err := rows.Scan(&date, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan special date: %w", err)
		}
		var day model.DaySchedule
		if err := json.Unmarshal(raw, &day); err != nil {
			return nil, fmt.Errorf("failed to decode special date: %w", err)
		}
		special[date.Format(model.DateFormat)] = day
	}
	return special, rows.Err()
}

func (r *scheduleRepository) SaveWeekSchedule(ctx context.Context, professionalID uuid.UUID, week model.WeekSchedule) error {
	raw, err := json.Marshal(week)
	if err != nil {
		return fmt.Errorf("failed to encode week schedule: %w", err)
	}

	query := `
		INSERT INTO professional_schedules (id, professional_id, schedule_type, schedule_data, created_at, updated_at)
		VALUES ($1, $2, 'weekly', $3, $4, $4)
		ON CONFLICT (professional_id, schedule_type) WHERE date IS NULL
		DO UPDATE SET schedule_data = EXCLUDED.schedule_data, updated_at = EXCLUDED.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, uuid.New(), professionalID, raw, time.Now()); err != nil {
		return fmt.Errorf("failed to save week schedule: %w", err)
	}
	return nil
}

func (r *scheduleRepository) SaveSpecialDate(ctx context.Context, professionalID uuid.UUID, date string, day model.DaySchedule) error {
	raw, err := json.Marshal(day)
	if err != nil {
		return fmt.Errorf("failed to encode special date: %w", err)
	}

	query := `
		INSERT INTO professional_schedules (id, professional_id, schedule_type, date, schedule_data, created_at, updated_at)
		VALUES ($1, $2, 'special', $3, $4, $5, $5)
		ON CONFLICT (professional_id, schedule_type, date)
		DO UPDATE SET schedule_data = EXCLUDED.schedule_data, updated_at = EXCLUDED.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, uuid.New(), professionalID, date, raw, time.Now()); err != nil {
		return fmt.Errorf("failed to save special date: %w", err)
	}
	return nil
}

func (r *scheduleRepository) DeleteSpecialDate(ctx context.Context, professionalID uuid.UUID, date string) error {
	query := `
		DELETE FROM professional_schedules
		WHERE professional_id = $1 AND schedule_type = 'special' AND date = $2
	`
	if _, err := r.db.ExecContext(ctx, query, professionalID, date); err != nil {
		return fmt.Errorf("failed to delete special date: %w", err)
	}
	return nil
}
