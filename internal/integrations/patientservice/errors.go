package patientservice

import "errors"

var (
	// ErrPatientNotFound возвращается, когда пациент не найден в справочнике
	ErrPatientNotFound = errors.New("patientservice client: patient not found")

	// ErrNoContact возвращается, когда у пациента не указан контакт
	ErrNoContact = errors.New("patientservice client: patient has no contact")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("patientservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("patientservice client: invalid response")
)
