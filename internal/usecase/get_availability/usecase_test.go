package get_availability

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/schedule"
	serviceRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/service"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// 2025-03-10 - понедельник
var monday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

type mockServiceRepo struct{ mock.Mock }

func (m *mockServiceRepo) GetByID(ctx context.Context, id string) (*domain.ServiceCapacityConfig, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServiceCapacityConfig), args.Error(1)
}

type mockScheduleRepo struct{ mock.Mock }

func (m *mockScheduleRepo) GetTemplate(ctx context.Context, serviceID string) (*domain.ScheduleTemplate, error) {
	args := m.Called(ctx, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduleTemplate), args.Error(1)
}

type mockBlockRepo struct{ mock.Mock }

func (m *mockBlockRepo) GetBlocks(ctx context.Context, serviceID string, from, to time.Time) ([]*domain.ServiceBlock, error) {
	args := m.Called(ctx, serviceID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ServiceBlock), args.Error(1)
}

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) Query(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

type countingMetrics struct {
	anomalies map[string]int
}

func (c *countingMetrics) IncAvailabilityAnomaly(serviceID string) {
	if c.anomalies == nil {
		c.anomalies = make(map[string]int)
	}
	c.anomalies[serviceID]++
}

type fixture struct {
	services  *mockServiceRepo
	schedules *mockScheduleRepo
	blocks    *mockBlockRepo
	bookings  *mockBookingRepo
	metrics   *countingMetrics
	uc        *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		services:  new(mockServiceRepo),
		schedules: new(mockScheduleRepo),
		blocks:    new(mockBlockRepo),
		bookings:  new(mockBookingRepo),
		metrics:   &countingMetrics{},
	}
	f.uc = NewUseCase(f.services, f.schedules, f.blocks, f.bookings, f.metrics, logger.Nop())
	return f
}

func yogaConfig() *domain.ServiceCapacityConfig {
	return &domain.ServiceCapacityConfig{
		ID:              "yoga",
		Capacity:        16,
		DurationMinutes: 60,
		Kind:            domain.ServiceKindGroup,
		OperatingHours:  domain.OperatingHours{time.Monday: {Open: "08:00", Close: "10:00"}},
	}
}

func yogaTemplate() *domain.ScheduleTemplate {
	template := domain.NewScheduleTemplate("yoga")
	template.WeeklySlots[time.Monday] = []domain.Slot{
		{Time: "08:00", Enabled: true},
		{Time: "09:00", Enabled: false},
	}
	return template
}

func confirmedAt(at types.TimeString, n int) []*domain.Booking {
	bookings := make([]*domain.Booking, n)
	for i := range bookings {
		bookings[i] = &domain.Booking{
			ID:        int64(i + 1),
			ServiceID: "yoga",
			Date:      monday,
			Time:      at,
			PatientID: fmt.Sprintf("p%d", i+1),
			Status:    domain.StatusConfirmed,
		}
	}
	return bookings
}

func (f *fixture) expectYoga(ctx context.Context, bookings []*domain.Booking) {
	f.services.On("GetByID", ctx, "yoga").Return(yogaConfig(), nil)
	f.schedules.On("GetTemplate", ctx, "yoga").Return(yogaTemplate(), nil)
	f.blocks.On("GetBlocks", ctx, "yoga", monday, monday).Return([]*domain.ServiceBlock{}, nil)
	f.bookings.On("Query", ctx, domain.BookingFilter{
		ServiceID: "yoga",
		StartDate: monday,
		EndDate:   monday,
		Statuses:  domain.ActiveStatuses,
	}).Return(bookings, nil)
}

func TestYogaScenarios(t *testing.T) {
	tests := []struct {
		name      string
		booked    int
		available int
		status    domain.SlotStatus
	}{
		{name: "3 bookings", booked: 3, available: 13, status: domain.SlotStatusAvailable},
		{name: "13 bookings", booked: 13, available: 3, status: domain.SlotStatusAlmostFull},
		{name: "16 bookings", booked: 16, available: 0, status: domain.SlotStatusFull},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			ctx := context.Background()
			f.expectYoga(ctx, confirmedAt("08:00", tt.booked))

			result, err := f.uc.Execute(ctx, &Request{ServiceID: "yoga", Date: monday.Add(15 * time.Hour)})
			require.NoError(t, err)

			slot, ok := result.FindSlot("08:00")
			require.True(t, ok)
			assert.Equal(t, tt.booked, slot.Booked)
			assert.Equal(t, tt.available, slot.Available)
			assert.Equal(t, tt.status, slot.Status)
			assert.Equal(t, 16, slot.TotalCapacity)
		})
	}
}

func TestDisabledSlotIsReported(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.expectYoga(ctx, nil)

	result, err := f.uc.Execute(ctx, &Request{ServiceID: "yoga", Date: monday})
	require.NoError(t, err)

	require.Len(t, result.Slots, 2)
	assert.False(t, result.Slots[1].Enabled)
	assert.Equal(t, 16, result.Slots[1].Available)
	assert.Equal(t, domain.AvailabilitySummary{TotalSlots: 2, TotalCapacity: 32, TotalAvailable: 32}, result.Summary)
}

func TestInactiveBookingsAreIgnored(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	bookings := confirmedAt("08:00", 2)
	bookings[1].Status = domain.StatusCancelled
	f.expectYoga(ctx, bookings)

	result, err := f.uc.Execute(ctx, &Request{ServiceID: "yoga", Date: monday})
	require.NoError(t, err)

	slot, _ := result.FindSlot("08:00")
	assert.Equal(t, 1, slot.Booked)
}

func TestOverbookedSlotIsClamped(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.expectYoga(ctx, confirmedAt("08:00", 18))

	result, err := f.uc.Execute(ctx, &Request{ServiceID: "yoga", Date: monday})
	require.NoError(t, err)

	slot, _ := result.FindSlot("08:00")
	assert.Equal(t, 18, slot.Booked)
	assert.Equal(t, 0, slot.Available)
	assert.Equal(t, domain.SlotStatusFull, slot.Status)
	assert.Equal(t, 1, f.metrics.anomalies["yoga"])
}

func TestConservationAndThresholds(t *testing.T) {
	for booked := 0; booked <= 18; booked++ {
		f := newFixture()
		ctx := context.Background()
		f.expectYoga(ctx, confirmedAt("08:00", booked))

		result, err := f.uc.Execute(ctx, &Request{ServiceID: "yoga", Date: monday})
		require.NoError(t, err)

		slot, _ := result.FindSlot("08:00")
		if booked <= slot.TotalCapacity {
			assert.Equal(t, slot.TotalCapacity, slot.Booked+slot.Available)
		} else {
			assert.Zero(t, slot.Available)
		}

		ratio := float64(slot.Available) / float64(slot.TotalCapacity)
		switch {
		case slot.Available == 0:
			assert.Equal(t, domain.SlotStatusFull, slot.Status)
		case ratio <= 0.25:
			assert.Equal(t, domain.SlotStatusAlmostFull, slot.Status)
		default:
			assert.Equal(t, domain.SlotStatusAvailable, slot.Status)
		}
	}
}

func TestBlockedDateOverridesBookings(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.services.On("GetByID", ctx, "yoga").Return(yogaConfig(), nil)
	f.schedules.On("GetTemplate", ctx, "yoga").Return(yogaTemplate(), nil)
	f.blocks.On("GetBlocks", ctx, "yoga", monday, monday).
		Return([]*domain.ServiceBlock{{ServiceID: "yoga", Date: monday, Reason: "instructor sick"}}, nil)

	result, err := f.uc.Execute(ctx, &Request{ServiceID: "yoga", Date: monday})
	require.NoError(t, err)

	assert.True(t, result.Blocked)
	assert.Equal(t, "instructor sick", result.BlockReason)
	require.Len(t, result.Slots, 2)
	for _, slot := range result.Slots {
		assert.Zero(t, slot.Available)
		assert.Equal(t, domain.SlotStatusFull, slot.Status)
	}
	assert.Zero(t, result.Summary.TotalAvailable)
	f.bookings.AssertNotCalled(t, "Query", mock.Anything, mock.Anything)
}

func TestClosedDayIsEmpty(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	sunday := monday.AddDate(0, 0, 6)

	f.services.On("GetByID", ctx, "yoga").Return(yogaConfig(), nil)
	f.schedules.On("GetTemplate", ctx, "yoga").Return(yogaTemplate(), nil)
	f.blocks.On("GetBlocks", ctx, "yoga", sunday, sunday).Return([]*domain.ServiceBlock{}, nil)

	result, err := f.uc.Execute(ctx, &Request{ServiceID: "yoga", Date: sunday})
	require.NoError(t, err)

	assert.NotNil(t, result.Slots)
	assert.Empty(t, result.Slots)
	assert.Equal(t, domain.AvailabilitySummary{}, result.Summary)
	f.bookings.AssertNotCalled(t, "Query", mock.Anything, mock.Anything)
}

func TestNotConfigured(t *testing.T) {
	t.Run("no service", func(t *testing.T) {
		f := newFixture()
		ctx := context.Background()
		f.services.On("GetByID", ctx, "ghost").Return(nil, serviceRepo.ErrServiceNotFound)

		_, err := f.uc.Execute(ctx, &Request{ServiceID: "ghost", Date: monday})
		assert.ErrorIs(t, err, ErrServiceNotConfigured)
	})

	t.Run("no template", func(t *testing.T) {
		f := newFixture()
		ctx := context.Background()
		f.services.On("GetByID", ctx, "yoga").Return(yogaConfig(), nil)
		f.schedules.On("GetTemplate", ctx, "yoga").Return(nil, scheduleRepo.ErrTemplateNotFound)

		_, err := f.uc.Execute(ctx, &Request{ServiceID: "yoga", Date: monday})
		assert.ErrorIs(t, err, ErrServiceNotConfigured)
	})
}

func TestStoreFailureIsUnavailable(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.services.On("GetByID", ctx, "yoga").Return(yogaConfig(), nil)
	f.schedules.On("GetTemplate", ctx, "yoga").Return(yogaTemplate(), nil)
	f.blocks.On("GetBlocks", ctx, "yoga", monday, monday).Return([]*domain.ServiceBlock{}, nil)
	f.bookings.On("Query", ctx, mock.Anything).Return(nil, errors.New("i/o timeout"))

	_, err := f.uc.Execute(ctx, &Request{ServiceID: "yoga", Date: monday})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestInvalidRequest(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{Date: monday})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(context.Background(), &Request{ServiceID: "yoga"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
