package waitlist

import "errors"

var (
	// ErrEntryNotFound возвращается, когда запись листа ожидания не найдена
	ErrEntryNotFound = errors.New("waitlist: entry not found")

	// ErrInvalidTransition возвращается при недопустимой смене статуса записи
	ErrInvalidTransition = errors.New("waitlist: invalid status transition")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("waitlist: invalid input data")

	// ErrUnavailable возвращается при недоступности хранилища
	ErrUnavailable = errors.New("waitlist: storage unavailable")
)
