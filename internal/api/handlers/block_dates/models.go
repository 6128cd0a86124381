package block_dates

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/blocks/models"
)

// BlockDatesRequest HTTP request model
type BlockDatesRequest struct {
	Dates  []string `json:"dates" validate:"required,min=1,max=366,dive,date"`
	Reason string   `json:"reason,omitempty" validate:"max=500"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *BlockDatesRequest) ToServiceRequest(serviceID string) (*models.BlockRequest, error) {
	dates := make([]time.Time, 0, len(r.Dates))
	for _, s := range r.Dates {
		d, err := domain.ParseDate(s)
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}

	return &models.BlockRequest{
		ServiceID: serviceID,
		Dates:     dates,
		Reason:    r.Reason,
	}, nil
}
