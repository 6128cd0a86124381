package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrInvalidTransition возвращается при недопустимой смене статуса
	ErrInvalidTransition = errors.New("bookings: invalid status transition")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bookings: invalid input data")

	// ErrInvalidTimeRange возвращается при некорректном диапазоне дат
	ErrInvalidTimeRange = errors.New("bookings: invalid time range")

	// ErrUnavailable возвращается при недоступности хранилища
	ErrUnavailable = errors.New("bookings: storage unavailable")
)
