package create_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/testutil/fakes"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/get_availability"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/validate_booking"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
)

var monday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

type waitlistMarker struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (w *waitlistMarker) MarkPatientBooked(_ context.Context, key domain.WaitlistKey, patientID string) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls = append(w.calls, fmt.Sprintf("%s %s %s", key.ServiceID, key.Time, patientID))
	return w.err == nil, w.err
}

type failingTx struct {
	err error
}

func (f failingTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return f.err
}

type fixture struct {
	bookings  *fakes.BookingRepo
	validator *validate_booking.UseCase
	waitlist  *waitlistMarker
	tx        *fakes.TxManager
	uc        *UseCase
}

func newFixture(capacity int) *fixture {
	cfg := &domain.ServiceCapacityConfig{
		ID:              "massage",
		Capacity:        capacity,
		DurationMinutes: 60,
		MinGapMinutes:   30,
		Kind:            domain.ServiceKindIndividual,
		OperatingHours:  domain.OperatingHours{time.Monday: {Open: "09:00", Close: "11:00"}},
	}
	template := domain.NewScheduleTemplate("massage")
	template.WeeklySlots[time.Monday] = []domain.Slot{{Time: "09:00", Enabled: true}}

	f := &fixture{
		bookings: fakes.NewBookingRepo(),
		waitlist: &waitlistMarker{},
		tx:       &fakes.TxManager{},
	}
	availability := get_availability.NewUseCase(
		fakes.NewServiceRepo(cfg),
		fakes.NewScheduleRepo(template),
		fakes.NewBlockRepo(),
		f.bookings,
		(*metrics.Metrics)(nil),
		logger.Nop(),
	)
	f.validator = validate_booking.NewUseCase(availability, f.bookings, logger.Nop())
	f.uc = NewUseCase(f.validator, f.bookings, f.waitlist, f.tx, (*metrics.Metrics)(nil), logger.Nop())
	return f
}

func request(patientID string) *Request {
	return &Request{ServiceID: "massage", Date: monday, Time: "9:00", PatientID: patientID}
}

func TestCreateBooking(t *testing.T) {
	f := newFixture(1)

	resp, err := f.uc.Execute(context.Background(), request("p1"))
	require.NoError(t, err)

	assert.True(t, resp.Validation.Valid)
	require.NotNil(t, resp.Booking)
	assert.Equal(t, domain.StatusConfirmed, resp.Booking.Status)
	assert.Equal(t, "09:00", resp.Booking.Time.String())
	assert.Equal(t, 1, f.tx.Calls)
	assert.Equal(t, []string{"massage 09:00 p1"}, f.waitlist.calls)
}

func TestCreatePendingBooking(t *testing.T) {
	f := newFixture(1)
	req := request("p1")
	req.Status = domain.StatusPending

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, resp.Booking.Status)
}

func TestRejectedBookingIsNotAnError(t *testing.T) {
	f := newFixture(1)
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, request("p1"))
	require.NoError(t, err)

	resp, err := f.uc.Execute(ctx, request("p2"))
	require.NoError(t, err)
	assert.Equal(t, domain.Invalid("slot fully booked"), resp.Validation)
	assert.Nil(t, resp.Booking)

	stored, _ := f.bookings.Query(ctx, domain.BookingFilter{ServiceID: "massage", StartDate: monday, EndDate: monday})
	assert.Len(t, stored, 1)
}

func TestInvalidStatus(t *testing.T) {
	f := newFixture(1)
	req := request("p1")
	req.Status = domain.StatusCompleted

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSerializationFailureIsConflict(t *testing.T) {
	f := newFixture(1)
	f.uc.txManager = failingTx{err: fmt.Errorf("%w: commit: %v", txmanager.ErrSerialization, &pq.Error{Code: "40001"})}

	_, err := f.uc.Execute(context.Background(), request("p1"))
	assert.ErrorIs(t, err, ErrConflict)
}

func TestWaitlistFailureAbortsBooking(t *testing.T) {
	f := newFixture(1)
	f.waitlist.err = errors.New("connection reset")

	_, err := f.uc.Execute(context.Background(), request("p1"))
	assert.ErrorIs(t, err, ErrUnavailable)
}

// gatedValidator задерживает каждый вызов, пока все участники не пройдут проверку
type gatedValidator struct {
	inner BookingValidator
	wg    *sync.WaitGroup
}

func (g gatedValidator) Execute(ctx context.Context, req *validate_booking.Request) (*domain.ValidationResult, error) {
	result, err := g.inner.Execute(ctx, req)
	g.wg.Done()
	g.wg.Wait()
	return result, err
}

// Без транзакции проверка и запись независимы: два параллельных запроса
// видят один и тот же свободный слот и оба создают бронирование
func TestBestEffortCanOverbook(t *testing.T) {
	f := newFixture(1)

	var gate sync.WaitGroup
	gate.Add(2)
	uc := NewUseCase(gatedValidator{inner: f.validator, wg: &gate}, f.bookings, f.waitlist, f.tx, (*metrics.Metrics)(nil), logger.Nop())

	var wg sync.WaitGroup
	results := make([]*Response, 2)
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := request(fmt.Sprintf("p%d", i+1))
			req.BestEffort = true
			results[i], errs[i] = uc.Execute(context.Background(), req)
		}(i)
	}
	wg.Wait()

	for i := range results {
		require.NoError(t, errs[i])
		assert.True(t, results[i].Validation.Valid)
	}
	assert.Zero(t, f.tx.Calls)

	stored, _ := f.bookings.Query(context.Background(), domain.BookingFilter{
		ServiceID: "massage", StartDate: monday, EndDate: monday, Statuses: domain.ActiveStatuses,
	})
	assert.Len(t, stored, 2, "capacity 1 slot now holds 2 active bookings")
}
