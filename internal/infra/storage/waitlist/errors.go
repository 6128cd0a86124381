package waitlist

import "errors"

var (
	// ErrEntryNotFound возвращается, когда запись листа ожидания не найдена
	ErrEntryNotFound = errors.New("waitlist.repository: entry not found")

	// ErrInvalidStatus возвращается при попытке записать неизвестный статус
	ErrInvalidStatus = errors.New("waitlist.repository: invalid status")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("waitlist.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("waitlist.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("waitlist.repository: failed to scan row")

	// ErrMalformedRecord возвращается, когда запись в БД нарушает инварианты домена
	ErrMalformedRecord = errors.New("waitlist.repository: malformed record")
)
