package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/validate_booking"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// UseCase use case для создания бронирования
type UseCase struct {
	validator   BookingValidator
	bookingRepo BookingRepository
	waitlist    WaitlistService
	txManager   TransactionManager
	metrics     Metrics
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	validator BookingValidator,
	bookingRepo BookingRepository,
	waitlist WaitlistService,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		validator:   validator,
		bookingRepo: bookingRepo,
		waitlist:    waitlist,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute проверяет правила и создает бронирование.
// Проверка и запись выполняются в одной сериализуемой транзакции,
// бронирования слота читаются с блокировкой (FOR UPDATE)
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: service=%s, date=%s, time=%s, patient=%s, best_effort=%t",
		req.ServiceID, req.Date.Format(domain.DateFormat), req.Time, req.PatientID, req.BestEffort)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	var resp *Response
	run := func(txCtx context.Context) error {
		var err error
		resp, err = uc.validateAndCreate(txCtx, req)
		return err
	}

	// 2. Проверка и запись
	var err error
	if req.BestEffort {
		err = run(ctx)
	} else {
		err = uc.txManager.DoSerializable(ctx, run)
	}

	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("CreateBooking: conflict on service=%s date=%s time=%s: %v",
				req.ServiceID, req.Date.Format(domain.DateFormat), req.Time, err)
			uc.metrics.IncBookingAttempt("conflict")
			return nil, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		if errors.Is(err, txmanager.ErrTransaction) {
			uc.logger.Error("CreateBooking: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		return nil, err
	}

	if !resp.Validation.Valid {
		uc.metrics.IncBookingAttempt(resp.Validation.Reason)
		return resp, nil
	}

	uc.metrics.IncBookingAttempt("created")
	uc.logger.Info("CreateBooking: successfully created booking id=%d", resp.Booking.ID)

	return resp, nil
}

func (uc *UseCase) validateAndCreate(ctx context.Context, req *Request) (*Response, error) {
	// 2.1. Правила расписания
	validation, err := uc.validator.Execute(ctx, &validate_booking.Request{
		ServiceID: req.ServiceID,
		Date:      req.Date,
		Time:      req.Time,
		PatientID: req.PatientID,
	})
	if err != nil {
		return nil, mapValidationError(err)
	}

	if !validation.Valid {
		return &Response{Validation: *validation}, nil
	}

	// Валидатор уже нашел слот, значит время корректно
	at := types.MustTimeString(string(req.Time))

	status := req.Status
	if status == "" {
		status = domain.StatusConfirmed
	}

	// 2.2. Сохраняем бронирование
	created, err := uc.bookingRepo.Create(ctx, &domain.Booking{
		ServiceID: req.ServiceID,
		Date:      domain.DateOnly(req.Date),
		Time:      at,
		PatientID: req.PatientID,
		Status:    status,
	})
	if err != nil {
		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: failed to create booking: %w", ErrUnavailable, err)
	}

	// 2.3. Если пациента пригласили из листа ожидания, закрываем его запись
	key := domain.WaitlistKey{ServiceID: req.ServiceID, Date: domain.DateOnly(req.Date), Time: at}
	marked, err := uc.waitlist.MarkPatientBooked(ctx, key, req.PatientID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to update waitlist for patient=%s: %v", req.PatientID, err)
		return nil, fmt.Errorf("%w: failed to update waitlist: %w", ErrUnavailable, err)
	}
	if marked {
		uc.logger.Info("CreateBooking: waitlist entry of patient=%s marked as booked", req.PatientID)
	}

	return &Response{Validation: *validation, Booking: created}, nil
}

func mapValidationError(err error) error {
	switch {
	case errors.Is(err, validate_booking.ErrServiceNotConfigured):
		return fmt.Errorf("%w: %v", ErrServiceNotConfigured, err)
	case errors.Is(err, validate_booking.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	case errors.Is(err, txmanager.ErrSerialization):
		return err
	default:
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
}
