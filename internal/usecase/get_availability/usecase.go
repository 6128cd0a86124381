package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/schedule"
	serviceRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/service"
)

// UseCase use case для расчета занятости слотов услуги на дату
type UseCase struct {
	serviceRepo  ServiceRepository
	scheduleRepo ScheduleRepository
	blockRepo    BlockRepository
	bookingRepo  BookingRepository
	metrics      Metrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	serviceRepo ServiceRepository,
	scheduleRepo ScheduleRepository,
	blockRepo BlockRepository,
	bookingRepo BookingRepository,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		serviceRepo:  serviceRepo,
		scheduleRepo: scheduleRepo,
		blockRepo:    blockRepo,
		bookingRepo:  bookingRepo,
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute рассчитывает занятость всех слотов услуги на дату.
// Внутри транзакции бронирования на дату блокируются репозиторием (FOR UPDATE)
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Availability, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)
	weekday := date.Weekday()

	// 2. Конфигурация услуги
	cfg, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailability: service=%s not configured", req.ServiceID)
			return nil, ErrServiceNotConfigured
		}
		uc.logger.Error("GetAvailability: failed to get service=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %w", ErrUnavailable, err)
	}

	// 3. Шаблон расписания
	template, err := uc.scheduleRepo.GetTemplate(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrTemplateNotFound) {
			uc.logger.Warn("GetAvailability: service=%s has no schedule template", req.ServiceID)
			return nil, ErrServiceNotConfigured
		}
		uc.logger.Error("GetAvailability: failed to get template for service=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get template: %w", ErrUnavailable, err)
	}

	slots := template.SlotsFor(weekday)
	result := &domain.Availability{
		ServiceID: req.ServiceID,
		Date:      date,
	}

	// 4. Блокировка даты важнее шаблона и бронирований
	blocks, err := uc.blockRepo.GetBlocks(ctx, req.ServiceID, date, date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get blocks for service=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get blocks: %w", ErrUnavailable, err)
	}
	for _, block := range blocks {
		if block.Covers(date) {
			uc.logger.Info("GetAvailability: service=%s blocked on %s: %s",
				req.ServiceID, date.Format(domain.DateFormat), block.Reason)
			result.Blocked = true
			result.BlockReason = block.Reason
			result.Slots = blockedSlots(slots, cfg.Capacity)
			result.Summary = domain.Summarize(result.Slots)
			return result, nil
		}
	}

	// 5. Закрытый день - пустой список без ошибки
	if len(slots) == 0 {
		result.Slots = []domain.AvailabilitySlot{}
		return result, nil
	}

	// 6. Активные бронирования на дату
	bookings, err := uc.bookingRepo.Query(ctx, domain.BookingFilter{
		ServiceID: req.ServiceID,
		StartDate: date,
		EndDate:   date,
		Statuses:  domain.ActiveStatuses,
	})
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get bookings for service=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %w", ErrUnavailable, err)
	}

	// 7. Занятость по слотам
	result.Slots = buildSlots(slots, cfg.Capacity, countByTime(bookings))
	for _, slot := range result.Slots {
		if slot.IsOverbooked() {
			uc.logger.Warn("GetAvailability: service=%s date=%s time=%s overbooked: %d/%d",
				req.ServiceID, date.Format(domain.DateFormat), slot.Time, slot.Booked, slot.TotalCapacity)
			uc.metrics.IncAvailabilityAnomaly(req.ServiceID)
		}
	}
	result.Summary = domain.Summarize(result.Slots)

	return result, nil
}
