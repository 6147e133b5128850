package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IsaacLanzoni/projeto-belezza/internal/model"
	"github.com/IsaacLanzoni/projeto-belezza/internal/repository"
	"github.com/IsaacLanzoni/projeto-belezza/internal/service/availability"
	scheduleService "github.com/IsaacLanzoni/projeto-belezza/internal/service/schedule"
	apperrors "github.com/IsaacLanzoni/projeto-belezza/pkg/errors"
)

// memAppointmentRepo reproduces the persistence-layer guarantee the
// postgres repository gets from its partial unique index: at most one
// non-canceled appointment per (professional, start time), enforced
// atomically under a mutex.
type memAppointmentRepo struct {
	mu           sync.Mutex
	appointments map[uuid.UUID]*model.Appointment
}

func newMemAppointmentRepo() *memAppointmentRepo {
	return &memAppointmentRepo{appointments: make(map[uuid.UUID]*model.Appointment)}
}

func (r *memAppointmentRepo) Create(_ context.Context, apt *model.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.appointments {
		if existing.ProfessionalID == apt.ProfessionalID &&
			existing.StartTime.Equal(apt.StartTime) &&
			existing.Status != model.AppointmentStatusCanceled {
			return repository.ErrDuplicateSlot
		}
	}

	apt.ID = uuid.New()
	cp := *apt
	r.appointments[apt.ID] = &cp
	return nil
}

func (r *memAppointmentRepo) Get(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	apt, ok := r.appointments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *apt
	return &cp, nil
}

func (r *memAppointmentRepo) ListActiveForDay(_ context.Context, professionalID uuid.UUID, dayStart, dayEnd time.Time) ([]*model.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*model.Appointment
	for _, apt := range r.appointments {
		if apt.ProfessionalID != professionalID || apt.Status == model.AppointmentStatusCanceled {
			continue
		}
		if apt.StartTime.Before(dayStart) || !apt.StartTime.Before(dayEnd) {
			continue
		}
		cp := *apt
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memAppointmentRepo) ListForClient(_ context.Context, clientID uuid.UUID) ([]*model.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*model.Appointment
	for _, apt := range r.appointments {
		if apt.ClientID == clientID {
			cp := *apt
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memAppointmentRepo) ListForProfessional(_ context.Context, professionalID uuid.UUID, from, to time.Time) ([]*model.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*model.Appointment
	for _, apt := range r.appointments {
		if apt.ProfessionalID == professionalID && !apt.StartTime.Before(from) && apt.StartTime.Before(to) {
			cp := *apt
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memAppointmentRepo) UpdateStatus(_ context.Context, id uuid.UUID, status model.AppointmentStatus, cancelReason *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	apt, ok := r.appointments[id]
	if !ok {
		return repository.ErrNotFound
	}
	apt.Status = status
	apt.CancelReason = cancelReason
	return nil
}

func (r *memAppointmentRepo) MarkCompletedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for _, apt := range r.appointments {
		if apt.EndTime.Before(cutoff) && apt.Status.Active() {
			apt.Status = model.AppointmentStatusCompleted
			count++
		}
	}
	return count, nil
}

type memProfessionalRepo struct {
	professionals map[uuid.UUID]*model.Professional
}

func (r *memProfessionalRepo) Create(_ context.Context, professional *model.Professional) error {
	r.professionals[professional.ID] = professional
	return nil
}

func (r *memProfessionalRepo) Get(_ context.Context, id uuid.UUID) (*model.Professional, error) {
	p, ok := r.professionals[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (r *memProfessionalRepo) List(_ context.Context) ([]*model.Professional, error) {
	var out []*model.Professional
	for _, p := range r.professionals {
		out = append(out, p)
	}
	return out, nil
}

type memServiceRepo struct {
	services map[uuid.UUID]*model.Service
}

func (r *memServiceRepo) Get(_ context.Context, id uuid.UUID) (*model.Service, error) {
	s, ok := r.services[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return s, nil
}

func (r *memServiceRepo) List(_ context.Context, _ string) ([]*model.Service, error) {
	var out []*model.Service
	for _, s := range r.services {
		out = append(out, s)
	}
	return out, nil
}

type memScheduleRepo struct {
	week model.WeekSchedule
}

func (r *memScheduleRepo) GetWeekSchedule(_ context.Context, _ uuid.UUID) (model.WeekSchedule, error) {
	return r.week, nil
}

func (r *memScheduleRepo) GetSpecialDates(_ context.Context, _ uuid.UUID) (model.SpecialDates, error) {
	return model.SpecialDates{}, nil
}

func (r *memScheduleRepo) SaveWeekSchedule(_ context.Context, _ uuid.UUID, week model.WeekSchedule) error {
	r.week = week
	return nil
}

func (r *memScheduleRepo) SaveSpecialDate(_ context.Context, _ uuid.UUID, _ string, _ model.DaySchedule) error {
	return nil
}

func (r *memScheduleRepo) DeleteSpecialDate(_ context.Context, _ uuid.UUID, _ string) error {
	return nil
}

type bookingFixture struct {
	svc            *Service
	appointments   *memAppointmentRepo
	professionalID uuid.UUID
	serviceID      uuid.UUID
	clientID       uuid.UUID
	date           string
}

func newBookingFixture(t *testing.T, serviceDuration int) *bookingFixture {
	t.Helper()

	professionalID := uuid.New()
	serviceID := uuid.New()

	// Schedule enabled every day so the fixture date never lands on a
	// closed weekday.
	week := model.WeekSchedule{}
	for day := 0; day <= 6; day++ {
		week[day] = model.DaySchedule{
			Enabled:    true,
			TimeRanges: []model.TimeRange{{Start: "09:00", End: "17:00"}},
		}
	}

	appointments := newMemAppointmentRepo()
	schedules := scheduleService.NewService(&memScheduleRepo{week: week}, scheduleService.Config{
		GranularityMinutes: 30,
		CacheTTL:           time.Millisecond,
	})
	slots := availability.NewService(schedules, appointments, availability.Config{
		HorizonDays:         30,
		SlotDurationMinutes: 30,
	}, nil)

	professionals := &memProfessionalRepo{professionals: map[uuid.UUID]*model.Professional{
		professionalID: {Base: model.Base{ID: professionalID}, Name: "Ana", Active: true},
	}}
	services := &memServiceRepo{services: map[uuid.UUID]*model.Service{
		serviceID: {Base: model.Base{ID: serviceID}, Name: "Corte", Duration: serviceDuration, Price: 80},
	}}

	svc := NewService(appointments, professionals, services, nil, nil, slots, nil, nil)

	return &bookingFixture{
		svc:            svc,
		appointments:   appointments,
		professionalID: professionalID,
		serviceID:      serviceID,
		clientID:       uuid.New(),
		date:           time.Now().AddDate(0, 0, 7).Format(model.DateFormat),
	}
}

func (f *bookingFixture) request(clock string) *model.BookSlotRequest {
	return &model.BookSlotRequest{
		ProfessionalID: f.professionalID,
		ServiceID:      f.serviceID,
		Date:           f.date,
		Time:           clock,
	}
}

func TestBookSlot(t *testing.T) {
	f := newBookingFixture(t, 30)

	apt, err := f.svc.BookSlot(context.Background(), f.clientID, f.request("10:00"))
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusPending, apt.Status)
	assert.Equal(t, f.clientID, apt.ClientID)
	assert.Equal(t, 30*time.Minute, apt.EndTime.Sub(apt.StartTime))
}

func TestBookSlotValidation(t *testing.T) {
	f := newBookingFixture(t, 30)

	req := f.request("10:00")
	req.Date = "07/03/2026"
	_, err := f.svc.BookSlot(context.Background(), f.clientID, req)
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))

	req = f.request("10am")
	_, err = f.svc.BookSlot(context.Background(), f.clientID, req)
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
}

func TestBookSlotUnknownProfessional(t *testing.T) {
	f := newBookingFixture(t, 30)

	req := f.request("10:00")
	req.ProfessionalID = uuid.New()
	_, err := f.svc.BookSlot(context.Background(), f.clientID, req)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestBookSlotTakenSlot(t *testing.T) {
	f := newBookingFixture(t, 30)

	_, err := f.svc.BookSlot(context.Background(), f.clientID, f.request("10:00"))
	require.NoError(t, err)

	_, err = f.svc.BookSlot(context.Background(), uuid.New(), f.request("10:00"))
	assert.True(t, apperrors.Is(err, apperrors.ErrSlotTaken))
}

func TestBookSlotConcurrentCommits(t *testing.T) {
	f := newBookingFixture(t, 30)

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.BookSlot(context.Background(), uuid.New(), f.request("11:00"))
		}(i)
	}
	wg.Wait()

	var committed, conflicted int
	for _, err := range errs {
		switch {
		case err == nil:
			committed++
		case apperrors.Is(err, apperrors.ErrSlotTaken):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, committed, "exactly one commit must win")
	assert.Equal(t, attempts-1, conflicted)
}

func TestBookSlotOutsideScheduleHours(t *testing.T) {
	f := newBookingFixture(t, 30)

	_, err := f.svc.BookSlot(context.Background(), f.clientID, f.request("08:00"))
	assert.True(t, apperrors.Is(err, apperrors.ErrSlotTaken))
}

func TestCancelFreesSlot(t *testing.T) {
	f := newBookingFixture(t, 30)

	apt, err := f.svc.BookSlot(context.Background(), f.clientID, f.request("10:00"))
	require.NoError(t, err)

	require.NoError(t, f.svc.Cancel(context.Background(), apt.ID, f.clientID, "mudou de ideia"))

	// The slot is bookable again for another client.
	_, err = f.svc.BookSlot(context.Background(), uuid.New(), f.request("10:00"))
	assert.NoError(t, err)
}

func TestCancelIsIdempotent(t *testing.T) {
	f := newBookingFixture(t, 30)

	apt, err := f.svc.BookSlot(context.Background(), f.clientID, f.request("10:00"))
	require.NoError(t, err)

	require.NoError(t, f.svc.Cancel(context.Background(), apt.ID, f.clientID, ""))
	assert.NoError(t, f.svc.Cancel(context.Background(), apt.ID, f.clientID, ""))
}

func TestCancelForbiddenForStranger(t *testing.T) {
	f := newBookingFixture(t, 30)

	apt, err := f.svc.BookSlot(context.Background(), f.clientID, f.request("10:00"))
	require.NoError(t, err)

	err = f.svc.Cancel(context.Background(), apt.ID, uuid.New(), "")
	assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))

	// The professional may cancel too.
	assert.NoError(t, f.svc.Cancel(context.Background(), apt.ID, f.professionalID, ""))
}

func TestCancelCompletedAppointment(t *testing.T) {
	f := newBookingFixture(t, 30)

	apt, err := f.svc.BookSlot(context.Background(), f.clientID, f.request("10:00"))
	require.NoError(t, err)

	require.NoError(t, f.appointments.UpdateStatus(context.Background(), apt.ID, model.AppointmentStatusCompleted, nil))

	err = f.svc.Cancel(context.Background(), apt.ID, f.clientID, "")
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
}

func TestConfirm(t *testing.T) {
	f := newBookingFixture(t, 30)

	apt, err := f.svc.BookSlot(context.Background(), f.clientID, f.request("10:00"))
	require.NoError(t, err)

	// Only the owning professional may confirm.
	err = f.svc.Confirm(context.Background(), apt.ID, uuid.New())
	assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))

	require.NoError(t, f.svc.Confirm(context.Background(), apt.ID, f.professionalID))

	// A second confirm fails: no longer pending.
	err = f.svc.Confirm(context.Background(), apt.ID, f.professionalID)
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
}

func TestLongServiceBlocksCoveredSlots(t *testing.T) {
	f := newBookingFixture(t, 90)

	apt, err := f.svc.BookSlot(context.Background(), f.clientID, f.request("10:00"))
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, apt.EndTime.Sub(apt.StartTime))

	// Every slot the appointment covers is now refused.
	for _, clock := range []string{"10:00", "10:30", "11:00"} {
		_, err := f.svc.BookSlot(context.Background(), uuid.New(), f.request(clock))
		assert.True(t, apperrors.Is(err, apperrors.ErrSlotTaken), "slot %s should be blocked", clock)
	}

	// The slot right after the appointment ends is free.
	_, err = f.svc.BookSlot(context.Background(), uuid.New(), f.request("11:30"))
	assert.NoError(t, err)
}
