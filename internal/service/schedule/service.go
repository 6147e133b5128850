package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/IsaacLanzoni/projeto-belezza/internal/model"
	"github.com/IsaacLanzoni/projeto-belezza/internal/repository"
	apperrors "github.com/IsaacLanzoni/projeto-belezza/pkg/errors"
)

type Config struct {
	GranularityMinutes int
	CacheTTL           time.Duration
}

// Service manages the weekly template and date overrides of a
// professional. Resolved schedules are cached briefly; every write
// invalidates the owner's entries so availability reads stay fresh.
type Service struct {
	repo        repository.ScheduleRepository
	cache       *gocache.Cache
	granularity int
}

func NewService(repo repository.ScheduleRepository, cfg Config) *Service {
	if cfg.GranularityMinutes <= 0 {
		cfg.GranularityMinutes = model.DefaultGranularityMinutes
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Minute
	}
	return &Service{
		repo:        repo,
		cache:       gocache.New(cfg.CacheTTL, 5*time.Minute),
		granularity: cfg.GranularityMinutes,
	}
}

// ScheduleConfig is the editor-facing view: template plus overrides.
type ScheduleConfig struct {
	WeekSchedule model.WeekSchedule `json:"weekSchedule"`
	SpecialDates model.SpecialDates `json:"specialDates"`
}

func weekKey(id uuid.UUID) string    { return "week:" + id.String() }
func specialKey(id uuid.UUID) string { return "special:" + id.String() }

// ResolvedSchedule returns the effective weekly template (the default one
// when the professional never saved any) and the special-date overrides.
func (s *Service) ResolvedSchedule(ctx context.Context, professionalID uuid.UUID) (model.WeekSchedule, model.SpecialDates, error) {
	week, err := s.weekSchedule(ctx, professionalID)
	if err != nil {
		return nil, nil, err
	}
	special, err := s.specialDates(ctx, professionalID)
	if err != nil {
		return nil, nil, err
	}
	return week, special, nil
}

func (s *Service) weekSchedule(ctx context.Context, professionalID uuid.UUID) (model.WeekSchedule, error) {
	if cached, ok := s.cache.Get(weekKey(professionalID)); ok {
		return cached.(model.WeekSchedule), nil
	}

	week, err := s.repo.GetWeekSchedule(ctx, professionalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load week schedule: %w", err)
	}
	if week == nil {
		week = model.DefaultWeekSchedule()
	}
	s.cache.SetDefault(weekKey(professionalID), week)
	return week, nil
}

func (s *Service) specialDates(ctx context.Context, professionalID uuid.UUID) (model.SpecialDates, error) {
	if cached, ok := s.cache.Get(specialKey(professionalID)); ok {
		return cached.(model.SpecialDates), nil
	}

	special, err := s.repo.GetSpecialDates(ctx, professionalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load special dates: %w", err)
	}
	if special == nil {
		special = model.SpecialDates{}
	}
	s.cache.SetDefault(specialKey(professionalID), special)
	return special, nil
}

// GetSchedule returns the editor view of a professional's configuration.
func (s *Service) GetSchedule(ctx context.Context, professionalID uuid.UUID) (*ScheduleConfig, error) {
	week, special, err := s.ResolvedSchedule(ctx, professionalID)
	if err != nil {
		return nil, err
	}
	return &ScheduleConfig{WeekSchedule: week, SpecialDates: special}, nil
}

func (s *Service) SaveWeekSchedule(ctx context.Context, professionalID uuid.UUID, week model.WeekSchedule) error {
	if len(week) == 0 {
		return apperrors.Validation("week schedule cannot be empty", nil)
	}
	if err := week.Validate(s.granularity); err != nil {
		return err
	}

	if err := s.repo.SaveWeekSchedule(ctx, professionalID, week); err != nil {
		return fmt.Errorf("failed to save week schedule: %w", err)
	}
	s.invalidate(professionalID)
	return nil
}

func (s *Service) SaveSpecialDate(ctx context.Context, professionalID uuid.UUID, date string, day model.DaySchedule) error {
	if _, err := time.ParseInLocation(model.DateFormat, date, time.Local); err != nil {
		return apperrors.Validation("invalid date, want YYYY-MM-DD", err)
	}
	if err := day.Validate(s.granularity); err != nil {
		return err
	}

	if err := s.repo.SaveSpecialDate(ctx, professionalID, date, day); err != nil {
		return fmt.Errorf("failed to save special date: %w", err)
	}
	s.invalidate(professionalID)
	return nil
}

func (s *Service) DeleteSpecialDate(ctx context.Context, professionalID uuid.UUID, date string) error {
	if _, err := time.ParseInLocation(model.DateFormat, date, time.Local); err != nil {
		return apperrors.Validation("invalid date, want YYYY-MM-DD", err)
	}

	if err := s.repo.DeleteSpecialDate(ctx, professionalID, date); err != nil {
		return fmt.Errorf("failed to delete special date: %w", err)
	}
	s.invalidate(professionalID)
	return nil
}

func (s *Service) invalidate(professionalID uuid.UUID) {
	s.cache.Delete(weekKey(professionalID))
	s.cache.Delete(specialKey(professionalID))
}
