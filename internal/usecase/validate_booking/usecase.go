package validate_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/get_availability"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// UseCase use case проверки бронирования по правилам расписания.
// Только читает данные; создание бронирования - ответственность вызывающего
type UseCase struct {
	availability AvailabilityCalculator
	bookingRepo  BookingRepository
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(availability AvailabilityCalculator, bookingRepo BookingRepository, logger Logger) *UseCase {
	return &UseCase{
		availability: availability,
		bookingRepo:  bookingRepo,
		logger:       logger,
	}
}

// Execute проверяет правила по порядку до первого нарушения:
//  1. время есть среди слотов даты
//  2. слот включен
//  3. в слоте есть свободные места
//  4. у пациента нет активного бронирования на этот же слот
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.ValidationResult, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ValidateBooking: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)

	availability, err := uc.availability.Execute(ctx, &get_availability.Request{
		ServiceID: req.ServiceID,
		Date:      date,
	})
	if err != nil {
		return nil, mapAvailabilityError(err)
	}

	// Правило 1: "9:00" и "09:00" - одно и то же время
	at, err := types.NewTimeStringFromString(string(req.Time))
	if err != nil {
		return uc.reject(req, domain.ReasonInvalidTimeSlot), nil
	}

	slot, ok := availability.FindSlot(at)
	if !ok {
		return uc.reject(req, domain.ReasonInvalidTimeSlot), nil
	}

	// Правило 2
	if !slot.Enabled {
		return uc.reject(req, domain.ReasonSlotNotAvailable), nil
	}

	// Правило 3: для заблокированной даты available всегда 0
	if slot.Available <= 0 {
		return uc.reject(req, domain.ReasonSlotFullyBooked), nil
	}

	// Правило 4
	existing, err := uc.bookingRepo.Query(ctx, domain.BookingFilter{
		ServiceID: req.ServiceID,
		StartDate: date,
		EndDate:   date,
		Statuses:  domain.ActiveStatuses,
		Time:      at,
		PatientID: req.PatientID,
	})
	if err != nil {
		uc.logger.Error("ValidateBooking: failed to check duplicates for patient=%s: %v", req.PatientID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %w", ErrUnavailable, err)
	}
	if len(existing) > 0 {
		return uc.reject(req, domain.ReasonDuplicateBooking), nil
	}

	result := domain.Valid()
	return &result, nil
}

func (uc *UseCase) reject(req *Request, reason string) *domain.ValidationResult {
	uc.logger.Info("ValidateBooking: service=%s date=%s time=%s patient=%s rejected: %s",
		req.ServiceID, req.Date.Format(domain.DateFormat), req.Time, req.PatientID, reason)
	result := domain.Invalid(reason)
	return &result
}

func mapAvailabilityError(err error) error {
	switch {
	case errors.Is(err, get_availability.ErrServiceNotConfigured):
		return fmt.Errorf("%w: %v", ErrServiceNotConfigured, err)
	case errors.Is(err, get_availability.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
}
