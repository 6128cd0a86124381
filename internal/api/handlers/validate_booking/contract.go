package validate_booking

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	validateBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/validate_booking"
)

type ValidateBookingUseCase interface {
	Execute(ctx context.Context, req *validateBooking.Request) (*domain.ValidationResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
