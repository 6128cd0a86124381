package generate_schedule

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	generateSchedule "github.com/m04kA/SMC-SchedulingService/internal/usecase/generate_schedule"
)

// GenerateScheduleRequest HTTP request model. Пустой список дней - вся неделя
type GenerateScheduleRequest struct {
	Days                []string `json:"days,omitempty" validate:"omitempty,max=7,dive,weekday"`
	PreserveAnnotations bool     `json:"preserveAnnotations"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *GenerateScheduleRequest) ToUseCaseRequest(serviceID string) (*generateSchedule.Request, error) {
	days := make([]time.Weekday, 0, len(r.Days))
	for _, name := range r.Days {
		day, err := domain.ParseWeekday(name)
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}

	return &generateSchedule.Request{
		ServiceID:           serviceID,
		Days:                days,
		PreserveAnnotations: r.PreserveAnnotations,
	}, nil
}
