package cancel_booking

import (
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
	cancelBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/cancel_booking"
)

// PromotedEntryResponse запись листа ожидания, получившая освободившийся слот
type PromotedEntryResponse struct {
	ID        int64  `json:"id"`
	PatientID string `json:"patientId"`
	Status    string `json:"status"`
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	Booking         *models.BookingResponse `json:"booking"`
	Promoted        *PromotedEntryResponse  `json:"promoted,omitempty"`
	PromotionFailed bool                    `json:"promotionFailed,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	result := &CancelBookingResponse{
		Booking:         models.FromDomainBooking(resp.Booking),
		PromotionFailed: resp.PromotionErr != nil,
	}
	if resp.Promoted != nil {
		result.Promoted = fromEntry(resp.Promoted)
	}
	return result
}

func fromEntry(e *domain.WaitlistEntry) *PromotedEntryResponse {
	return &PromotedEntryResponse{ID: e.ID, PatientID: e.PatientID, Status: string(e.Status)}
}
