package validate_booking

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/get_availability"
)

// AvailabilityCalculator расчет занятости слотов на дату
type AvailabilityCalculator interface {
	Execute(ctx context.Context, req *get_availability.Request) (*domain.Availability, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Query(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
