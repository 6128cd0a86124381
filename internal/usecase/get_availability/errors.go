package get_availability

import "errors"

var (
	// ErrServiceNotConfigured возвращается, когда у услуги нет конфигурации или шаблона
	ErrServiceNotConfigured = errors.New("get_availability: service not configured")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrUnavailable возвращается при недоступности хранилища
	ErrUnavailable = errors.New("get_availability: storage unavailable")
)
