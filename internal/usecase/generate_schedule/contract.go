package generate_schedule

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// ServiceRepository интерфейс репозитория конфигураций услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id string) (*domain.ServiceCapacityConfig, error)
}

// ScheduleRepository интерфейс хранилища шаблонов расписания
type ScheduleRepository interface {
	GetTemplate(ctx context.Context, serviceID string) (*domain.ScheduleTemplate, error)
	PutTemplate(ctx context.Context, template *domain.ScheduleTemplate) error
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
