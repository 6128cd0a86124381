package create_booking

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ServiceID == "" {
		return fmt.Errorf("%w: serviceID is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.PatientID == "" {
		return fmt.Errorf("%w: patientID is required", ErrInvalidInput)
	}

	switch req.Status {
	case "", domain.StatusPending, domain.StatusConfirmed:
	default:
		return fmt.Errorf("%w: new booking cannot have status %q", ErrInvalidInput, req.Status)
	}

	return nil
}
