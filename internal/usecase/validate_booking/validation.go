package validate_booking

import "fmt"

// validateRequest валидирует входные данные запроса.
// Формат времени здесь не проверяется: неизвестное время - это результат "invalid time slot", а не ошибка
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

	return nil
}
