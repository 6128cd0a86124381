package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
)

// MaxListRangeDays максимальная длина периода выборки бронирований
const MaxListRangeDays = 92

// Допустимые переходы статусов вне отмены
var transitions = map[domain.BookingStatus][]domain.BookingStatus{
	domain.StatusPending:   {domain.StatusConfirmed, domain.StatusCompleted, domain.StatusNoShow},
	domain.StatusConfirmed: {domain.StatusCompleted, domain.StatusNoShow},
}

// Service сервис для чтения бронирований и ведения их статусов
type Service struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrUnavailable, err)
	}

	return models.FromDomainBooking(booking), nil
}

// List получает бронирования услуги за период.
// Без фильтра по статусу возвращаются и неактивные бронирования
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: service=%s, period=%s to %s", req.ServiceID,
		req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	if req.ServiceID == "" {
		return nil, fmt.Errorf("%w: serviceID is required", ErrInvalidInput)
	}

	start, end := domain.DateOnly(req.StartDate), domain.DateOnly(req.EndDate)
	if end.Before(start) || end.Sub(start).Hours()/24 >= MaxListRangeDays {
		s.logger.Warn("List: invalid period for service=%s", req.ServiceID)
		return nil, ErrInvalidTimeRange
	}

	filter := domain.BookingFilter{
		ServiceID: req.ServiceID,
		StartDate: start,
		EndDate:   end,
		PatientID: req.PatientID,
	}
	if req.Status != nil {
		if !req.Status.IsValid() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
		}
		filter.Statuses = []domain.BookingStatus{*req.Status}
	}

	bookings, err := s.bookingRepo.Query(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for service=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrUnavailable, err)
	}

	s.logger.Info("List: fetched %d bookings for service=%s", len(bookings), req.ServiceID)
	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus подтверждает бронирование или закрывает его как completed/no-show
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: booking id=%d to status=%s", id, req.Status)

	var updated *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("UpdateStatus: booking id=%d not found", id)
				return ErrBookingNotFound
			}
			s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", id, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %w", ErrUnavailable, err)
		}

		if !canTransition(booking.Status, req.Status) {
			s.logger.Warn("UpdateStatus: booking id=%d cannot move from %s to %s", id, booking.Status, req.Status)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, req.Status)
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, id, req.Status); err != nil {
			s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", id, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %w", ErrUnavailable, err)
		}

		booking.Status = req.Status
		updated = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateStatus: booking id=%d now has status=%s", id, updated.Status)
	return models.FromDomainBooking(updated), nil
}

func canTransition(from, to domain.BookingStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
