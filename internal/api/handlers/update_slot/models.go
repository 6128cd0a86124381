package update_slot

import (
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/config/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// UpdateSlotRequest HTTP request model. Пустой staffId снимает сотрудника
type UpdateSlotRequest struct {
	Enabled *bool   `json:"enabled,omitempty"`
	StaffID *string `json:"staffId,omitempty" validate:"omitempty,max=64"`
}

// ToServiceRequest конвертирует HTTP запрос и параметры пути в модель сервиса
func (r *UpdateSlotRequest) ToServiceRequest(serviceID, weekday, at string) (*models.UpdateSlotRequest, error) {
	day, err := domain.ParseWeekday(weekday)
	if err != nil {
		return nil, err
	}

	slotTime, err := types.NewTimeStringFromString(at)
	if err != nil {
		return nil, err
	}

	return &models.UpdateSlotRequest{
		ServiceID: serviceID,
		Weekday:   day,
		Time:      slotTime,
		Enabled:   r.Enabled,
		StaffID:   r.StaffID,
	}, nil
}
