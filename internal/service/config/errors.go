package config

import "errors"

var (
	// ErrServiceNotFound возвращается, когда конфигурация услуги не найдена
	ErrServiceNotFound = errors.New("config: service not found")

	// ErrServiceAlreadyExists возвращается при попытке создать услугу повторно
	ErrServiceAlreadyExists = errors.New("config: service already exists")

	// ErrTemplateNotFound возвращается, когда у услуги нет шаблона расписания
	ErrTemplateNotFound = errors.New("config: schedule template not found")

	// ErrSlotNotFound возвращается, когда в шаблоне нет слота с таким временем
	ErrSlotNotFound = errors.New("config: slot not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("config: invalid input data")

	// ErrUnavailable возвращается при недоступности хранилища
	ErrUnavailable = errors.New("config: storage unavailable")
)
