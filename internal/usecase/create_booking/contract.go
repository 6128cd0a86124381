package create_booking

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/validate_booking"
)

// BookingValidator проверка правил бронирования
type BookingValidator interface {
	Execute(ctx context.Context, req *validate_booking.Request) (*domain.ValidationResult, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// WaitlistService отметка о записи пациента из листа ожидания
type WaitlistService interface {
	MarkPatientBooked(ctx context.Context, key domain.WaitlistKey, patientID string) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчик попыток бронирования
type Metrics interface {
	IncBookingAttempt(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
