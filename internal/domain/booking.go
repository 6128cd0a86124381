package domain

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusNoShow    BookingStatus = "no-show"
)

// ActiveStatuses statuses that count toward slot occupancy
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// IsValid reports whether the status is known
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Booking represents a patient booking of a service slot.
// Owned by the booking workflow; the scheduling core reads it for occupancy.
type Booking struct {
	ID        int64
	ServiceID string
	Date      time.Time
	Time      types.TimeString
	PatientID string
	Status    BookingStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.IsActive()
}

// BookingFilter store-side filter for booking queries
type BookingFilter struct {
	ServiceID string           // Обязательный параметр
	StartDate time.Time        // Начало периода включительно
	EndDate   time.Time        // Конец периода включительно
	Statuses  []BookingStatus  // Пустой список - любые статусы
	Time      types.TimeString // Пустое значение - любое время
	PatientID string           // Пустое значение - любой пациент
}

// SingleDate reports whether the filter covers exactly one day
func (f BookingFilter) SingleDate() bool {
	return SameDay(f.StartDate, f.EndDate)
}
