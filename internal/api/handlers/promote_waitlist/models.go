package promote_waitlist

import (
	"github.com/m04kA/SMC-SchedulingService/internal/service/waitlist/models"
)

// PromoteRequest HTTP request model
type PromoteRequest struct {
	Date string `json:"date" validate:"required,date"`
	Time string `json:"time" validate:"required,timeofday"`
}

// PromoteResponse HTTP response model. promoted=false - очередь пуста
type PromoteResponse struct {
	Promoted  bool   `json:"promoted"`
	EntryID   int64  `json:"entryId,omitempty"`
	PatientID string `json:"patientId,omitempty"`
	Notified  bool   `json:"notified"`
}

// FromServiceResult конвертирует результат продвижения в HTTP response
func FromServiceResult(result *models.PromotionResult) *PromoteResponse {
	if result == nil || result.Entry == nil {
		return &PromoteResponse{}
	}
	return &PromoteResponse{
		Promoted:  true,
		EntryID:   result.Entry.ID,
		PatientID: result.Entry.PatientID,
		Notified:  result.Notified,
	}
}
