package blocks

import "errors"

var (
	// ErrBlockNotFound возвращается, когда дата не заблокирована
	ErrBlockNotFound = errors.New("blocks: block not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("blocks: invalid input data")

	// ErrUnavailable возвращается при недоступности хранилища
	ErrUnavailable = errors.New("blocks: storage unavailable")
)
