package validate_booking

import (
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	validateBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/validate_booking"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// ValidateBookingRequest HTTP request model.
// Формат времени не проверяется здесь: неверное время - это результат "invalid time slot"
type ValidateBookingRequest struct {
	Date      string `json:"date" validate:"required,date"`
	Time      string `json:"time" validate:"required"`
	PatientID string `json:"patientId" validate:"required,max=64"`
}

// ValidationResponse HTTP response model
type ValidationResponse struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ValidateBookingRequest) ToUseCaseRequest(serviceID string) (*validateBooking.Request, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	return &validateBooking.Request{
		ServiceID: serviceID,
		Date:      date,
		Time:      types.TimeString(r.Time),
		PatientID: r.PatientID,
	}, nil
}

// FromDomain конвертирует результат проверки в HTTP response
func FromDomain(result domain.ValidationResult) *ValidationResponse {
	return &ValidationResponse{Valid: result.Valid, Reason: result.Reason}
}
