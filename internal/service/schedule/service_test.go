package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IsaacLanzoni/projeto-belezza/internal/model"
	apperrors "github.com/IsaacLanzoni/projeto-belezza/pkg/errors"
)

type fakeScheduleRepo struct {
	week      model.WeekSchedule
	special   model.SpecialDates
	weekReads int
}

func (r *fakeScheduleRepo) GetWeekSchedule(_ context.Context, _ uuid.UUID) (model.WeekSchedule, error) {
	r.weekReads++
	return r.week, nil
}

func (r *fakeScheduleRepo) GetSpecialDates(_ context.Context, _ uuid.UUID) (model.SpecialDates, error) {
	return r.special, nil
}

func (r *fakeScheduleRepo) SaveWeekSchedule(_ context.Context, _ uuid.UUID, week model.WeekSchedule) error {
	r.week = week
	return nil
}

func (r *fakeScheduleRepo) SaveSpecialDate(_ context.Context, _ uuid.UUID, date string, day model.DaySchedule) error {
	if r.special == nil {
		r.special = model.SpecialDates{}
	}
	r.special[date] = day
	return nil
}

func (r *fakeScheduleRepo) DeleteSpecialDate(_ context.Context, _ uuid.UUID, date string) error {
	delete(r.special, date)
	return nil
}

func TestResolvedScheduleDefaultsWhenUnsaved(t *testing.T) {
	svc := NewService(&fakeScheduleRepo{}, Config{})

	week, special, err := svc.ResolvedSchedule(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, model.DefaultWeekSchedule(), week)
	assert.Empty(t, special)
}

func TestResolvedScheduleCaches(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := NewService(repo, Config{CacheTTL: time.Minute})
	id := uuid.New()

	_, _, err := svc.ResolvedSchedule(context.Background(), id)
	require.NoError(t, err)
	_, _, err = svc.ResolvedSchedule(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.weekReads, "second read should hit the cache")
}

func TestSaveWeekScheduleInvalidatesCache(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := NewService(repo, Config{CacheTTL: time.Minute})
	id := uuid.New()

	week, _, err := svc.ResolvedSchedule(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, week[0].Enabled)

	updated := model.DefaultWeekSchedule()
	updated[0] = model.DaySchedule{Enabled: true, TimeRanges: []model.TimeRange{{Start: "10:00", End: "14:00"}}}
	require.NoError(t, svc.SaveWeekSchedule(context.Background(), id, updated))

	week, _, err = svc.ResolvedSchedule(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, week[0].Enabled, "stale cache must not survive a save")
}

func TestSaveWeekScheduleValidation(t *testing.T) {
	svc := NewService(&fakeScheduleRepo{}, Config{})
	id := uuid.New()

	err := svc.SaveWeekSchedule(context.Background(), id, model.WeekSchedule{})
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))

	bad := model.WeekSchedule{
		1: {Enabled: true, TimeRanges: []model.TimeRange{{Start: "17:00", End: "09:00"}}},
	}
	err = svc.SaveWeekSchedule(context.Background(), id, bad)
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
}

func TestSaveSpecialDate(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := NewService(repo, Config{})
	id := uuid.New()

	day := model.DaySchedule{Enabled: true, TimeRanges: []model.TimeRange{{Start: "13:00", End: "15:00"}}}
	require.NoError(t, svc.SaveSpecialDate(context.Background(), id, "2026-03-02", day))

	_, special, err := svc.ResolvedSchedule(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, day, special["2026-03-02"])

	// Malformed dates are rejected before touching storage.
	err = svc.SaveSpecialDate(context.Background(), id, "02/03/2026", day)
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
}

func TestDeleteSpecialDate(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := NewService(repo, Config{})
	id := uuid.New()

	day := model.DaySchedule{Enabled: false}
	require.NoError(t, svc.SaveSpecialDate(context.Background(), id, "2026-03-02", day))
	require.NoError(t, svc.DeleteSpecialDate(context.Background(), id, "2026-03-02"))

	_, special, err := svc.ResolvedSchedule(context.Background(), id)
	require.NoError(t, err)
	assert.NotContains(t, special, "2026-03-02")

	err = svc.DeleteSpecialDate(context.Background(), id, "not-a-date")
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
}
