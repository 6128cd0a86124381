package cancel_booking

import "github.com/m04kA/SMC-SchedulingService/internal/domain"

// Request модель запроса на отмену бронирования
type Request struct {
	BookingID int64
}

// Response модель ответа. Отмена действует, даже если продвижение очереди не удалось
type Response struct {
	Booking      *domain.Booking
	Promoted     *domain.WaitlistEntry // nil, если очередь пуста или продвижение не удалось
	PromotionErr error
}
