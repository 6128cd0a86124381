package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SchedulingService/internal/testutil/fakes"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

func day(d int) time.Time {
	return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
}

func setup() (*fakes.BookingRepo, *Service) {
	repo := fakes.NewBookingRepo()
	repo.Add(
		&domain.Booking{ServiceID: "yoga", Date: day(10), Time: "08:00", PatientID: "p1", Status: domain.StatusConfirmed},
		&domain.Booking{ServiceID: "yoga", Date: day(10), Time: "09:00", PatientID: "p2", Status: domain.StatusCancelled},
		&domain.Booking{ServiceID: "yoga", Date: day(12), Time: "08:00", PatientID: "p1", Status: domain.StatusPending},
		&domain.Booking{ServiceID: "massage", Date: day(10), Time: "08:00", PatientID: "p1", Status: domain.StatusConfirmed},
	)
	return repo, NewService(repo, &fakes.TxManager{}, logger.Nop())
}

func TestGetByID(t *testing.T) {
	_, svc := setup()
	ctx := context.Background()

	resp, err := svc.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", resp.Date)
	assert.Equal(t, "08:00", resp.Time)

	_, err = svc.GetByID(ctx, 99)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestList(t *testing.T) {
	_, svc := setup()
	ctx := context.Background()

	resp, err := svc.List(ctx, &models.ListBookingsRequest{ServiceID: "yoga", StartDate: day(1), EndDate: day(31)})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 3)

	resp, err = svc.List(ctx, &models.ListBookingsRequest{
		ServiceID: "yoga", StartDate: day(1), EndDate: day(31), Status: ptr.Ptr(domain.StatusConfirmed),
	})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(1), resp.Bookings[0].ID)

	resp, err = svc.List(ctx, &models.ListBookingsRequest{ServiceID: "yoga", StartDate: day(11), EndDate: day(12), PatientID: "p1"})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)
}

func TestListValidation(t *testing.T) {
	_, svc := setup()
	ctx := context.Background()

	_, err := svc.List(ctx, &models.ListBookingsRequest{ServiceID: "yoga", StartDate: day(12), EndDate: day(10)})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = svc.List(ctx, &models.ListBookingsRequest{ServiceID: "yoga", StartDate: day(1), EndDate: day(1).AddDate(1, 0, 0)})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = svc.List(ctx, &models.ListBookingsRequest{StartDate: day(1), EndDate: day(2)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	bad := domain.BookingStatus("lost")
	_, err = svc.List(ctx, &models.ListBookingsRequest{ServiceID: "yoga", StartDate: day(1), EndDate: day(2), Status: &bad})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatus(t *testing.T) {
	repo, svc := setup()
	ctx := context.Background()

	resp, err := svc.UpdateStatus(ctx, 3, &models.UpdateStatusRequest{Status: domain.StatusConfirmed})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)

	_, err = svc.UpdateStatus(ctx, 1, &models.UpdateStatusRequest{Status: domain.StatusNoShow})
	require.NoError(t, err)

	stored, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNoShow, stored.Status)
}

func TestUpdateStatusRejectsInvalidTransitions(t *testing.T) {
	_, svc := setup()
	ctx := context.Background()

	// Отмена только через сценарий отмены
	_, err := svc.UpdateStatus(ctx, 1, &models.UpdateStatusRequest{Status: domain.StatusCancelled})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.UpdateStatus(ctx, 2, &models.UpdateStatusRequest{Status: domain.StatusConfirmed})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.UpdateStatus(ctx, 1, &models.UpdateStatusRequest{Status: domain.StatusPending})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.UpdateStatus(ctx, 42, &models.UpdateStatusRequest{Status: domain.StatusCompleted})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
