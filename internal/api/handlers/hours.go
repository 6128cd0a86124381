package handlers

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// HoursRequest часы работы за день в теле запроса
type HoursRequest struct {
	Open  string `json:"open" validate:"required,timeofday"`
	Close string `json:"close" validate:"required,timeofday"`
}

// ToOperatingHours конвертирует часы работы из запроса ("monday" -> часы)
func ToOperatingHours(hours map[string]HoursRequest) (domain.OperatingHours, error) {
	result := make(domain.OperatingHours, len(hours))
	for name, h := range hours {
		day, err := domain.ParseWeekday(name)
		if err != nil {
			return nil, err
		}
		open, err := types.NewTimeStringFromString(h.Open)
		if err != nil {
			return nil, fmt.Errorf("%s open: %w", name, err)
		}
		closeAt, err := types.NewTimeStringFromString(h.Close)
		if err != nil {
			return nil, fmt.Errorf("%s close: %w", name, err)
		}
		result[day] = domain.DayHours{Open: open, Close: closeAt}
	}
	return result, nil
}
