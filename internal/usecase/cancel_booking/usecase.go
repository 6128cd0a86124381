package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
)

// UseCase use case отмены бронирования с продвижением листа ожидания
type UseCase struct {
	bookingRepo BookingRepository
	waitlist    WaitlistPromoter
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	waitlist WaitlistPromoter,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		waitlist:    waitlist,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute отменяет бронирование и только после фиксации отмены продвигает очередь слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking id=%d", req.BookingID)

	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	var cancelled *domain.Booking

	// 1. Отмена (строка бронирования блокируется на время транзакции)
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CancelBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("CancelBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %w", ErrUnavailable, err)
		}

		if !booking.CanBeCancelled() {
			uc.logger.Warn("CancelBooking: booking id=%d has status %s", req.BookingID, booking.Status)
			return fmt.Errorf("%w: status is %s", ErrCannotCancel, booking.Status)
		}

		if err := uc.bookingRepo.UpdateStatus(txCtx, booking.ID, domain.StatusCancelled); err != nil {
			uc.logger.Error("CancelBooking: failed to update booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to update booking: %w", ErrUnavailable, err)
		}

		booking.Status = domain.StatusCancelled
		cancelled = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := &Response{Booking: cancelled}

	// 2. Продвижение очереди освободившегося слота
	result, err := uc.waitlist.Promote(ctx, cancelled.ServiceID, cancelled.Date, cancelled.Time)
	if err != nil {
		uc.logger.Error("CancelBooking: waitlist promotion after booking id=%d failed: %v", cancelled.ID, err)
		resp.PromotionErr = err
		return resp, nil
	}

	if result != nil && result.Entry != nil {
		uc.logger.Info("CancelBooking: promoted waitlist entry id=%d", result.Entry.ID)
		resp.Promoted = result.Entry
	}

	return resp, nil
}
