package generate_schedule

import "errors"

var (
	// ErrServiceNotConfigured возвращается, когда для услуги нет конфигурации
	ErrServiceNotConfigured = errors.New("generate_schedule: service not configured")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("generate_schedule: invalid input data")

	// ErrInvalidDuration возвращается при неположительной длительности слота
	ErrInvalidDuration = errors.New("generate_schedule: duration must be positive")

	// ErrInvalidGap возвращается при отрицательном перерыве между слотами
	ErrInvalidGap = errors.New("generate_schedule: gap must not be negative")

	// ErrUnavailable возвращается при недоступности хранилища
	ErrUnavailable = errors.New("generate_schedule: storage unavailable")
)
