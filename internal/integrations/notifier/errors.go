package notifier

import "errors"

var (
	// ErrEmptyContact возвращается, когда у получателя нет контакта
	ErrEmptyContact = errors.New("notifier: empty contact")

	// ErrPublish возвращается при ошибке публикации в очередь
	ErrPublish = errors.New("notifier: failed to publish message")
)
