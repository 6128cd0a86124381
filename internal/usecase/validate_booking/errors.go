package validate_booking

import "errors"

var (
	// ErrServiceNotConfigured возвращается, когда у услуги нет конфигурации или шаблона
	ErrServiceNotConfigured = errors.New("validate_booking: service not configured")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("validate_booking: invalid input data")

	// ErrUnavailable возвращается при недоступности хранилища
	ErrUnavailable = errors.New("validate_booking: storage unavailable")
)
