package validate_booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/testutil/fakes"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/get_availability"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

var monday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

type fixture struct {
	bookings *fakes.BookingRepo
	blocks   *fakes.BlockRepo
	uc       *UseCase
}

func newFixture() *fixture {
	cfg := &domain.ServiceCapacityConfig{
		ID:              "yoga",
		Capacity:        16,
		DurationMinutes: 60,
		Kind:            domain.ServiceKindGroup,
		OperatingHours:  domain.OperatingHours{time.Monday: {Open: "08:00", Close: "10:00"}},
	}
	template := domain.NewScheduleTemplate("yoga")
	template.WeeklySlots[time.Monday] = []domain.Slot{
		{Time: "08:00", Enabled: true},
		{Time: "09:00", Enabled: false},
	}

	f := &fixture{
		bookings: fakes.NewBookingRepo(),
		blocks:   fakes.NewBlockRepo(),
	}
	availability := get_availability.NewUseCase(
		fakes.NewServiceRepo(cfg),
		fakes.NewScheduleRepo(template),
		f.blocks,
		f.bookings,
		(*metrics.Metrics)(nil),
		logger.Nop(),
	)
	f.uc = NewUseCase(availability, f.bookings, logger.Nop())
	return f
}

func (f *fixture) book(n int, status domain.BookingStatus) {
	for i := 0; i < n; i++ {
		f.bookings.Add(&domain.Booking{
			ServiceID: "yoga",
			Date:      monday,
			Time:      "08:00",
			PatientID: fmt.Sprintf("p%d", i+1),
			Status:    status,
		})
	}
}

func (f *fixture) validate(t *testing.T, at string, patientID string) domain.ValidationResult {
	t.Helper()
	result, err := f.uc.Execute(context.Background(), &Request{
		ServiceID: "yoga",
		Date:      monday,
		Time:      types.TimeString(at),
		PatientID: patientID,
	})
	require.NoError(t, err)
	return *result
}

func TestValidBooking(t *testing.T) {
	f := newFixture()
	f.book(3, domain.StatusConfirmed)

	assert.Equal(t, domain.Valid(), f.validate(t, "08:00", "new"))
}

func TestSeventeenthBookingIsFullyBooked(t *testing.T) {
	f := newFixture()
	f.book(16, domain.StatusConfirmed)

	assert.Equal(t, domain.Invalid("slot fully booked"), f.validate(t, "08:00", "p17"))
}

func TestCancelledBookingsFreeCapacity(t *testing.T) {
	f := newFixture()
	f.book(16, domain.StatusCancelled)

	assert.True(t, f.validate(t, "08:00", "p17").Valid)
}

func TestRuleOrder(t *testing.T) {
	tests := []struct {
		name   string
		at     string
		reason string
	}{
		{name: "unknown time", at: "08:30", reason: domain.ReasonInvalidTimeSlot},
		{name: "malformed time", at: "8am", reason: domain.ReasonInvalidTimeSlot},
		{name: "disabled slot", at: "09:00", reason: domain.ReasonSlotNotAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			assert.Equal(t, domain.Invalid(tt.reason), f.validate(t, tt.at, "p1"))
		})
	}
}

func TestUnpaddedTimeMatchesSlot(t *testing.T) {
	f := newFixture()

	assert.True(t, f.validate(t, "8:00", "p1").Valid)
}

func TestDuplicateBooking(t *testing.T) {
	f := newFixture()
	f.book(1, domain.StatusPending)

	assert.Equal(t, domain.Invalid("duplicate booking"), f.validate(t, "08:00", "p1"))
	assert.True(t, f.validate(t, "08:00", "p2").Valid)
}

func TestFullSlotReportedBeforeDuplicate(t *testing.T) {
	f := newFixture()
	f.book(16, domain.StatusConfirmed)

	assert.Equal(t, domain.Invalid("slot fully booked"), f.validate(t, "08:00", "p1"))
}

func TestBlockedDate(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.blocks.Upsert(context.Background(), "yoga", []time.Time{monday}, "holiday"))

	// Включенный слот заблокированной даты не имеет свободных мест
	assert.Equal(t, domain.Invalid("slot fully booked"), f.validate(t, "08:00", "p1"))
	// Выключенный слот отклоняется раньше, правилом 2
	assert.Equal(t, domain.Invalid("slot not available"), f.validate(t, "09:00", "p1"))
}

func TestUnknownServiceIsNotConfigured(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{ServiceID: "ghost", Date: monday, Time: "08:00", PatientID: "p1"})
	assert.ErrorIs(t, err, ErrServiceNotConfigured)
}

func TestMissingPatientIsInvalidInput(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{ServiceID: "yoga", Date: monday, Time: "08:00"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
