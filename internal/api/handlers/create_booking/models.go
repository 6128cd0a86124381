package create_booking

import (
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Date      string `json:"date" validate:"required,date"`
	Time      string `json:"time" validate:"required"`
	PatientID string `json:"patientId" validate:"required,max=64"`
	Status    string `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed"`
}

// RejectedResponse ответ при нарушении правил бронирования
type RejectedResponse struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(serviceID string) (*createBooking.Request, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ServiceID: serviceID,
		Date:      date,
		Time:      types.TimeString(r.Time),
		PatientID: r.PatientID,
		Status:    domain.BookingStatus(r.Status),
	}, nil
}

// FromUseCaseResponse конвертирует созданное бронирование в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *models.BookingResponse {
	return models.FromDomainBooking(resp.Booking)
}
