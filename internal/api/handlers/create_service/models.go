package create_service

import (
	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/config/models"
)

// CreateServiceRequest HTTP request model
type CreateServiceRequest struct {
	ID              string                           `json:"id" validate:"required,max=64"`
	Name            string                           `json:"name" validate:"required,max=255"`
	Capacity        int                              `json:"capacity" validate:"gte=1,lte=500"`
	DurationMinutes int                              `json:"durationMinutes" validate:"required"`
	MinGapMinutes   int                              `json:"minGapMinutes" validate:"gte=0,lte=240"`
	Kind            string                           `json:"kind" validate:"required,oneof=individual group"`
	OperatingHours  map[string]handlers.HoursRequest `json:"operatingHours" validate:"dive,keys,weekday,endkeys"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateServiceRequest) ToServiceRequest() (*models.CreateServiceRequest, error) {
	hours, err := handlers.ToOperatingHours(r.OperatingHours)
	if err != nil {
		return nil, err
	}

	return &models.CreateServiceRequest{
		ID:              r.ID,
		Name:            r.Name,
		Capacity:        r.Capacity,
		DurationMinutes: r.DurationMinutes,
		MinGapMinutes:   r.MinGapMinutes,
		Kind:            domain.ServiceKind(r.Kind),
		OperatingHours:  hours,
	}, nil
}
