package service

import "errors"

var (
	// ErrServiceNotFound возвращается, когда конфигурация услуги не найдена
	ErrServiceNotFound = errors.New("service.repository: service not found")

	// ErrDuplicateService возвращается при попытке создать услугу с существующим ID
	ErrDuplicateService = errors.New("service.repository: service already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("service.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("service.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("service.repository: failed to scan row")

	// ErrMalformedRecord возвращается, когда запись в БД не проходит проверку домена
	ErrMalformedRecord = errors.New("service.repository: malformed record")
)
