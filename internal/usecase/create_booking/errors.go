package create_booking

import "errors"

var (
	// ErrServiceNotConfigured возвращается, когда у услуги нет конфигурации или шаблона
	ErrServiceNotConfigured = errors.New("create_booking: service not configured")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrConflict возвращается, когда параллельная транзакция изменила слот.
	// Повторять запрос или нет - решает вызывающий
	ErrConflict = errors.New("create_booking: concurrent booking conflict")

	// ErrUnavailable возвращается при недоступности хранилища
	ErrUnavailable = errors.New("create_booking: storage unavailable")
)
