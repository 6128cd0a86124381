package notifier

import "time"

// Message сообщение в очереди уведомлений
type Message struct {
	ID        string    `json:"id"`
	Contact   string    `json:"contact"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
