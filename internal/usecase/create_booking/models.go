package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	ServiceID string
	Date      time.Time
	Time      types.TimeString
	PatientID string
	Status    domain.BookingStatus // pending или confirmed, по умолчанию confirmed

	// BestEffort отключает транзакцию: проверка и запись выполняются независимо,
	// и параллельные запросы могут превысить вместимость слота
	BestEffort bool
}

// Response модель ответа. При нарушении правил Booking == nil
type Response struct {
	Validation domain.ValidationResult
	Booking    *domain.Booking
}
