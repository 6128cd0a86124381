package schedule

import "errors"

var (
	// ErrTemplateNotFound возвращается, когда у услуги нет шаблона расписания
	ErrTemplateNotFound = errors.New("schedule.repository: template not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")

	// ErrMalformedRecord возвращается, когда слоты в БД нарушают инварианты шаблона
	ErrMalformedRecord = errors.New("schedule.repository: malformed record")
)
