package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/schedule"
	serviceRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/service"
	"github.com/m04kA/SMC-SchedulingService/internal/service/config/models"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/generate_schedule"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

// Service сервис конфигурации услуг и их недельных шаблонов
type Service struct {
	serviceRepo  ServiceRepository
	scheduleRepo ScheduleRepository
	generator    ScheduleGenerator
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(
	serviceRepo ServiceRepository,
	scheduleRepo ScheduleRepository,
	generator ScheduleGenerator,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		serviceRepo:  serviceRepo,
		scheduleRepo: scheduleRepo,
		generator:    generator,
		txManager:    txManager,
		logger:       logger,
	}
}

// Create создает конфигурацию услуги и сразу генерирует ее недельный шаблон
func (s *Service) Create(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Create: creating service=%s, capacity=%d, duration=%d",
		req.ID, req.Capacity, req.DurationMinutes)

	cfg := req.ToDomainConfig()
	if err := cfg.Validate(); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var created *domain.ServiceCapacityConfig

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.serviceRepo.Create(txCtx, cfg)
		if err != nil {
			if errors.Is(err, serviceRepo.ErrDuplicateService) {
				s.logger.Warn("Create: service=%s already exists", req.ID)
				return ErrServiceAlreadyExists
			}
			s.logger.Error("Create: repository error: %v", err)
			return fmt.Errorf("%w: Create - repository error: %w", ErrUnavailable, err)
		}

		return s.regenerate(txCtx, created.ID, nil, false)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Create: successfully created service=%s", created.ID)
	return models.FromDomainConfig(created), nil
}

// Get получает конфигурацию услуги
func (s *Service) Get(ctx context.Context, serviceID string) (*models.ServiceResponse, error) {
	cfg, err := s.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("Get: service=%s not found", serviceID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Get: repository error for service=%s: %v", serviceID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %w", ErrUnavailable, err)
	}

	return models.FromDomainConfig(cfg), nil
}

// Update обновляет конфигурацию. Если изменились часы, длительность или перерыв,
// шаблон перегенерируется в той же транзакции
func (s *Service) Update(ctx context.Context, serviceID string, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Update: updating service=%s", serviceID)

	var updated *domain.ServiceCapacityConfig

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.serviceRepo.GetByID(txCtx, serviceID)
		if err != nil {
			if errors.Is(err, serviceRepo.ErrServiceNotFound) {
				s.logger.Warn("Update: service=%s not found", serviceID)
				return ErrServiceNotFound
			}
			s.logger.Error("Update: repository error for service=%s: %v", serviceID, err)
			return fmt.Errorf("%w: Update - repository error: %w", ErrUnavailable, err)
		}

		next := req.Apply(current)
		if err := next.Validate(); err != nil {
			s.logger.Warn("Update: validation failed for service=%s: %v", serviceID, err)
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		updated, err = s.serviceRepo.Update(txCtx, next)
		if err != nil {
			s.logger.Error("Update: repository error for service=%s: %v", serviceID, err)
			return fmt.Errorf("%w: Update - repository error: %w", ErrUnavailable, err)
		}

		days := current.AffectedDays(next)
		if len(days) == 0 {
			return nil
		}

		// Перегенерируются только затронутые дни, разметка остальных не меняется
		s.logger.Info("Update: schedule of service=%s affected on %v, regenerating (preserve=%t)",
			serviceID, days, req.PreserveAnnotations)
		return s.regenerate(txCtx, serviceID, days, req.PreserveAnnotations)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Update: successfully updated service=%s", serviceID)
	return models.FromDomainConfig(updated), nil
}

// GetTemplate получает недельный шаблон услуги
func (s *Service) GetTemplate(ctx context.Context, serviceID string) (*models.TemplateResponse, error) {
	template, err := s.scheduleRepo.GetTemplate(ctx, serviceID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrTemplateNotFound) {
			s.logger.Warn("GetTemplate: no template for service=%s", serviceID)
			return nil, ErrTemplateNotFound
		}
		s.logger.Error("GetTemplate: repository error for service=%s: %v", serviceID, err)
		return nil, fmt.Errorf("%w: GetTemplate - repository error: %w", ErrUnavailable, err)
	}

	return models.FromDomainTemplate(template), nil
}

// UpdateSlot включает/выключает слот шаблона или назначает сотрудника.
// Остальные слоты не меняются
func (s *Service) UpdateSlot(ctx context.Context, req *models.UpdateSlotRequest) (*models.TemplateResponse, error) {
	s.logger.Info("UpdateSlot: service=%s, day=%s, time=%s", req.ServiceID, req.Weekday, req.Time)

	if req.Enabled == nil && req.StaffID == nil {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	if err := req.Time.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var result *domain.ScheduleTemplate

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		template, err := s.scheduleRepo.GetTemplate(txCtx, req.ServiceID)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrTemplateNotFound) {
				s.logger.Warn("UpdateSlot: no template for service=%s", req.ServiceID)
				return ErrTemplateNotFound
			}
			s.logger.Error("UpdateSlot: repository error for service=%s: %v", req.ServiceID, err)
			return fmt.Errorf("%w: UpdateSlot - repository error: %w", ErrUnavailable, err)
		}

		idx := template.FindSlot(req.Weekday, req.Time)
		if idx < 0 {
			s.logger.Warn("UpdateSlot: no slot %s on %s for service=%s", req.Time, req.Weekday, req.ServiceID)
			return ErrSlotNotFound
		}

		// Копия дня, чтобы не портить шаблон, который мог прийти из кеша
		slots := append([]domain.Slot(nil), template.WeeklySlots[req.Weekday]...)
		if req.Enabled != nil {
			slots[idx].Enabled = *req.Enabled
		}
		if req.StaffID != nil {
			if *req.StaffID == "" {
				slots[idx].StaffID = nil
			} else {
				slots[idx].StaffID = ptr.Ptr(*req.StaffID)
			}
		}
		template.WeeklySlots[req.Weekday] = slots

		if err := s.scheduleRepo.PutTemplate(txCtx, template); err != nil {
			s.logger.Error("UpdateSlot: failed to save template for service=%s: %v", req.ServiceID, err)
			return fmt.Errorf("%w: UpdateSlot - repository error: %w", ErrUnavailable, err)
		}

		result = template
		return nil
	})
	if err != nil {
		return nil, err
	}

	return models.FromDomainTemplate(result), nil
}

func (s *Service) regenerate(ctx context.Context, serviceID string, days []time.Weekday, preserve bool) error {
	_, err := s.generator.Execute(ctx, &generate_schedule.Request{
		ServiceID:           serviceID,
		Days:                days,
		PreserveAnnotations: preserve,
	})
	if err == nil {
		return nil
	}

	s.logger.Error("regenerate: failed to generate template for service=%s: %v", serviceID, err)
	switch {
	case errors.Is(err, generate_schedule.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	case errors.Is(err, generate_schedule.ErrServiceNotConfigured):
		return ErrServiceNotFound
	default:
		return fmt.Errorf("%w: regenerate: %w", ErrUnavailable, err)
	}
}
