package get_availability

import "time"

// Request модель запроса занятости услуги на дату
type Request struct {
	ServiceID string
	Date      time.Time // Дата (время суток игнорируется)
}
