package list_bookings

import (
	"net/url"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
)

// ListBookingsQuery query параметры запроса
type ListBookingsQuery struct {
	From      string `validate:"required,date"`
	To        string `validate:"required,date"`
	Status    string `validate:"omitempty,oneof=pending confirmed completed cancelled no-show"`
	PatientID string `validate:"omitempty,max=64"`
}

// ParseQuery извлекает параметры из URL
func ParseQuery(values url.Values) ListBookingsQuery {
	return ListBookingsQuery{
		From:      values.Get("from"),
		To:        values.Get("to"),
		Status:    values.Get("status"),
		PatientID: values.Get("patientId"),
	}
}

// ToServiceRequest конвертирует параметры в модель сервиса
func (q *ListBookingsQuery) ToServiceRequest(serviceID string) (*models.ListBookingsRequest, error) {
	from, err := domain.ParseDate(q.From)
	if err != nil {
		return nil, err
	}
	to, err := domain.ParseDate(q.To)
	if err != nil {
		return nil, err
	}

	req := &models.ListBookingsRequest{
		ServiceID: serviceID,
		StartDate: from,
		EndDate:   to,
		PatientID: q.PatientID,
	}
	if q.Status != "" {
		status := domain.BookingStatus(q.Status)
		req.Status = &status
	}
	return req, nil
}
