package update_service_config

import (
	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/config/models"
)

// UpdateServiceConfigRequest HTTP request model.
// Все поля опциональны - обновляются только переданные значения
type UpdateServiceConfigRequest struct {
	Name                *string                          `json:"name,omitempty" validate:"omitempty,max=255"`
	Capacity            *int                             `json:"capacity,omitempty" validate:"omitempty,gte=1,lte=500"`
	DurationMinutes     *int                             `json:"durationMinutes,omitempty"`
	MinGapMinutes       *int                             `json:"minGapMinutes,omitempty" validate:"omitempty,gte=0,lte=240"`
	Kind                *string                          `json:"kind,omitempty" validate:"omitempty,oneof=individual group"`
	OperatingHours      map[string]handlers.HoursRequest `json:"operatingHours,omitempty" validate:"omitempty,dive,keys,weekday,endkeys"`
	PreserveAnnotations bool                             `json:"preserveAnnotations"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateServiceConfigRequest) ToServiceRequest() (*models.UpdateServiceRequest, error) {
	req := &models.UpdateServiceRequest{
		Name:                r.Name,
		Capacity:            r.Capacity,
		DurationMinutes:     r.DurationMinutes,
		MinGapMinutes:       r.MinGapMinutes,
		PreserveAnnotations: r.PreserveAnnotations,
	}

	if r.Kind != nil {
		kind := domain.ServiceKind(*r.Kind)
		req.Kind = &kind
	}

	if r.OperatingHours != nil {
		hours, err := handlers.ToOperatingHours(r.OperatingHours)
		if err != nil {
			return nil, err
		}
		req.OperatingHours = hours
	}

	return req, nil
}
