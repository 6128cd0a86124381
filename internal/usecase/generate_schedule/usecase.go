package generate_schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/schedule"
	serviceRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/service"
)

// UseCase use case для генерации недельного шаблона расписания
type UseCase struct {
	serviceRepo  ServiceRepository
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	serviceRepo ServiceRepository,
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		serviceRepo:  serviceRepo,
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute перегенерирует слоты запрошенных дней и сохраняет шаблон.
// Дни, не попавшие в запрос, остаются без изменений
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateSchedule: service=%s, days=%v, preserve=%t", req.ServiceID, req.Days, req.PreserveAnnotations)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GenerateSchedule: validation failed: %v", err)
		return nil, err
	}

	var result *domain.ScheduleTemplate

	// 2. Чтение старого шаблона и запись нового в одной транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		cfg, err := uc.serviceRepo.GetByID(txCtx, req.ServiceID)
		if err != nil {
			if errors.Is(err, serviceRepo.ErrServiceNotFound) {
				uc.logger.Warn("GenerateSchedule: service=%s not configured", req.ServiceID)
				return ErrServiceNotConfigured
			}
			uc.logger.Error("GenerateSchedule: failed to get service=%s: %v", req.ServiceID, err)
			return fmt.Errorf("%w: failed to get service: %w", ErrUnavailable, err)
		}

		previous, err := uc.scheduleRepo.GetTemplate(txCtx, req.ServiceID)
		if err != nil {
			if !errors.Is(err, scheduleRepo.ErrTemplateNotFound) {
				uc.logger.Error("GenerateSchedule: failed to get template for service=%s: %v", req.ServiceID, err)
				return fmt.Errorf("%w: failed to get template: %w", ErrUnavailable, err)
			}
			previous = domain.NewScheduleTemplate(req.ServiceID)
		}

		template, err := uc.buildTemplate(cfg, previous, req)
		if err != nil {
			uc.logger.Warn("GenerateSchedule: failed to generate slots for service=%s: %v", req.ServiceID, err)
			return err
		}

		if err := uc.scheduleRepo.PutTemplate(txCtx, template); err != nil {
			uc.logger.Error("GenerateSchedule: failed to save template for service=%s: %v", req.ServiceID, err)
			return fmt.Errorf("%w: failed to save template: %w", ErrUnavailable, err)
		}

		result = template
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("GenerateSchedule: service=%s now has %d slots per week", req.ServiceID, result.TotalSlots())

	return &Response{Template: result}, nil
}

func (uc *UseCase) buildTemplate(
	cfg *domain.ServiceCapacityConfig,
	previous *domain.ScheduleTemplate,
	req *Request,
) (*domain.ScheduleTemplate, error) {
	days := req.Days
	if len(days) == 0 {
		days = domain.Weekdays
	}

	template := domain.NewScheduleTemplate(req.ServiceID)
	for day, slots := range previous.WeeklySlots {
		template.WeeklySlots[day] = slots
	}

	for _, day := range days {
		slots, err := generateDay(cfg, day)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if req.PreserveAnnotations {
			slots = preserveAnnotations(slots, previous.SlotsFor(day))
		}
		template.WeeklySlots[day] = slots
	}

	return template, nil
}
