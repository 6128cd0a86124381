package generate_schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/schedule"
	serviceRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/service"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

type mockServiceRepo struct {
	mock.Mock
}

func (m *mockServiceRepo) GetByID(ctx context.Context, id string) (*domain.ServiceCapacityConfig, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServiceCapacityConfig), args.Error(1)
}

type mockScheduleRepo struct {
	mock.Mock
}

func (m *mockScheduleRepo) GetTemplate(ctx context.Context, serviceID string) (*domain.ScheduleTemplate, error) {
	args := m.Called(ctx, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduleTemplate), args.Error(1)
}

func (m *mockScheduleRepo) PutTemplate(ctx context.Context, template *domain.ScheduleTemplate) error {
	return m.Called(ctx, template).Error(0)
}

type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func massageConfig() *domain.ServiceCapacityConfig {
	return &domain.ServiceCapacityConfig{
		ID:              "massage",
		Capacity:        1,
		DurationMinutes: 60,
		MinGapMinutes:   30,
		Kind:            domain.ServiceKindIndividual,
		OperatingHours: domain.OperatingHours{
			time.Monday:  {Open: "09:00", Close: "11:00"},
			time.Tuesday: {Open: "09:00", Close: "12:00"},
		},
	}
}

func TestExecuteGeneratesWholeWeek(t *testing.T) {
	services := new(mockServiceRepo)
	schedules := new(mockScheduleRepo)
	uc := NewUseCase(services, schedules, passthroughTx{}, logger.Nop())
	ctx := context.Background()

	services.On("GetByID", ctx, "massage").Return(massageConfig(), nil)
	schedules.On("GetTemplate", ctx, "massage").Return(nil, scheduleRepo.ErrTemplateNotFound)
	schedules.On("PutTemplate", ctx, mock.MatchedBy(func(tpl *domain.ScheduleTemplate) bool {
		return len(tpl.SlotsFor(time.Monday)) == 1 && len(tpl.SlotsFor(time.Tuesday)) == 2
	})).Return(nil)

	resp, err := uc.Execute(ctx, &Request{ServiceID: "massage"})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Template.TotalSlots())
	assert.Empty(t, resp.Template.SlotsFor(time.Sunday))
	schedules.AssertExpectations(t)
}

func TestExecuteKeepsOtherDaysAndDropsAnnotations(t *testing.T) {
	services := new(mockServiceRepo)
	schedules := new(mockScheduleRepo)
	uc := NewUseCase(services, schedules, passthroughTx{}, logger.Nop())
	ctx := context.Background()

	previous := domain.NewScheduleTemplate("massage")
	previous.WeeklySlots[time.Monday] = []domain.Slot{{Time: "09:00", Enabled: false, StaffID: ptr.Ptr("anna")}}
	previous.WeeklySlots[time.Friday] = []domain.Slot{{Time: "15:00", Enabled: true}}

	services.On("GetByID", ctx, "massage").Return(massageConfig(), nil)
	schedules.On("GetTemplate", ctx, "massage").Return(previous, nil)
	schedules.On("PutTemplate", ctx, mock.Anything).Return(nil)

	resp, err := uc.Execute(ctx, &Request{ServiceID: "massage", Days: []time.Weekday{time.Monday}})
	require.NoError(t, err)

	monday := resp.Template.SlotsFor(time.Monday)
	require.Len(t, monday, 1)
	assert.True(t, monday[0].Enabled)
	assert.Nil(t, monday[0].StaffID)
	assert.Equal(t, previous.SlotsFor(time.Friday), resp.Template.SlotsFor(time.Friday))
}

func TestExecutePreservesAnnotations(t *testing.T) {
	services := new(mockServiceRepo)
	schedules := new(mockScheduleRepo)
	uc := NewUseCase(services, schedules, passthroughTx{}, logger.Nop())
	ctx := context.Background()

	previous := domain.NewScheduleTemplate("massage")
	previous.WeeklySlots[time.Monday] = []domain.Slot{{Time: "09:00", Enabled: false, StaffID: ptr.Ptr("anna")}}

	services.On("GetByID", ctx, "massage").Return(massageConfig(), nil)
	schedules.On("GetTemplate", ctx, "massage").Return(previous, nil)
	schedules.On("PutTemplate", ctx, mock.Anything).Return(nil)

	resp, err := uc.Execute(ctx, &Request{ServiceID: "massage", PreserveAnnotations: true})
	require.NoError(t, err)

	monday := resp.Template.SlotsFor(time.Monday)
	require.Len(t, monday, 1)
	assert.False(t, monday[0].Enabled)
	assert.Equal(t, "anna", *monday[0].StaffID)
}

func TestExecuteServiceNotConfigured(t *testing.T) {
	services := new(mockServiceRepo)
	schedules := new(mockScheduleRepo)
	uc := NewUseCase(services, schedules, passthroughTx{}, logger.Nop())
	ctx := context.Background()

	services.On("GetByID", ctx, "ghost").Return(nil, serviceRepo.ErrServiceNotFound)

	_, err := uc.Execute(ctx, &Request{ServiceID: "ghost"})
	assert.ErrorIs(t, err, ErrServiceNotConfigured)
	schedules.AssertNotCalled(t, "PutTemplate", mock.Anything, mock.Anything)
}

func TestExecuteStorageFailure(t *testing.T) {
	services := new(mockServiceRepo)
	schedules := new(mockScheduleRepo)
	uc := NewUseCase(services, schedules, passthroughTx{}, logger.Nop())
	ctx := context.Background()

	services.On("GetByID", ctx, "massage").Return(massageConfig(), nil)
	schedules.On("GetTemplate", ctx, "massage").Return(nil, errors.New("connection reset"))

	_, err := uc.Execute(ctx, &Request{ServiceID: "massage"})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestExecuteInvalidRequest(t *testing.T) {
	uc := NewUseCase(new(mockServiceRepo), new(mockScheduleRepo), passthroughTx{}, logger.Nop())

	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ServiceID: "massage", Days: []time.Weekday{9}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
