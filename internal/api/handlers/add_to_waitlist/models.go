package add_to_waitlist

import (
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/waitlist/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// AddToWaitlistRequest HTTP request model
type AddToWaitlistRequest struct {
	Date           string `json:"date" validate:"required,date"`
	Time           string `json:"time" validate:"required,timeofday"`
	PatientID      string `json:"patientId" validate:"required,max=64"`
	PatientContact string `json:"patientContact,omitempty" validate:"omitempty,max=255"`
	Priority       *int   `json:"priority,omitempty"`
}

// AddToWaitlistResponse HTTP response model
type AddToWaitlistResponse struct {
	ID int64 `json:"id"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *AddToWaitlistRequest) ToServiceRequest(serviceID string) (*models.AddRequest, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	return &models.AddRequest{
		ServiceID:      serviceID,
		Date:           date,
		Time:           types.TimeString(r.Time),
		PatientID:      r.PatientID,
		PatientContact: r.PatientContact,
		Priority:       r.Priority,
	}, nil
}
