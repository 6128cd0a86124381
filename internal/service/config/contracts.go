package config

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/generate_schedule"
)

// ServiceRepository интерфейс репозитория конфигураций услуг
type ServiceRepository interface {
	Create(ctx context.Context, cfg *domain.ServiceCapacityConfig) (*domain.ServiceCapacityConfig, error)
	GetByID(ctx context.Context, id string) (*domain.ServiceCapacityConfig, error)
	Update(ctx context.Context, cfg *domain.ServiceCapacityConfig) (*domain.ServiceCapacityConfig, error)
}

// ScheduleRepository интерфейс хранилища шаблонов расписания
type ScheduleRepository interface {
	GetTemplate(ctx context.Context, serviceID string) (*domain.ScheduleTemplate, error)
	PutTemplate(ctx context.Context, template *domain.ScheduleTemplate) error
}

// ScheduleGenerator перегенерация шаблона по конфигурации услуги
type ScheduleGenerator interface {
	Execute(ctx context.Context, req *generate_schedule.Request) (*generate_schedule.Response, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
