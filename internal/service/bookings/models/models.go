package models

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модели

// ListBookingsRequest запрос на получение бронирований услуги
type ListBookingsRequest struct {
	ServiceID string
	StartDate time.Time
	EndDate   time.Time
	Status    *domain.BookingStatus // nil - любые статусы
	PatientID string                // пустая строка - любой пациент
}

// UpdateStatusRequest запрос на смену статуса бронирования.
// Отмена идет через отдельный сценарий с продвижением листа ожидания
type UpdateStatusRequest struct {
	Status domain.BookingStatus
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID        int64     `json:"id"`
	ServiceID string    `json:"serviceId"`
	Date      string    `json:"date"` // "2025-10-15"
	Time      string    `json:"time"` // "10:00"
	PatientID string    `json:"patientId"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:        b.ID,
		ServiceID: b.ServiceID,
		Date:      b.Date.Format(domain.DateFormat),
		Time:      b.Time.String(),
		PatientID: b.PatientID,
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, b := range bookings {
		if r := FromDomainBooking(b); r != nil {
			resp.Bookings = append(resp.Bookings, *r)
		}
	}

	return resp
}
