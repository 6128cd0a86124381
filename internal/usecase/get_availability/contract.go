package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// ServiceRepository интерфейс репозитория конфигураций услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id string) (*domain.ServiceCapacityConfig, error)
}

// ScheduleRepository интерфейс хранилища шаблонов расписания
type ScheduleRepository interface {
	GetTemplate(ctx context.Context, serviceID string) (*domain.ScheduleTemplate, error)
}

// BlockRepository интерфейс хранилища блокировок дат
type BlockRepository interface {
	GetBlocks(ctx context.Context, serviceID string, from, to time.Time) ([]*domain.ServiceBlock, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// Query получает бронирования с фильтрацией на стороне БД
	Query(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
}

// Metrics счетчик аномалий занятости
type Metrics interface {
	IncAvailabilityAnomaly(serviceID string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
