package generate_schedule

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// GenerateDaySlots нарезает рабочий интервал дня на слоты.
// Слот ставится в позицию курсора, если он целиком помещается до закрытия,
// затем курсор сдвигается на длительность плюс перерыв.
// Перерыв после последнего слота не требуется
func GenerateDaySlots(openTime, closeTime types.TimeString, durationMinutes, minGapMinutes int) ([]domain.Slot, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDuration, durationMinutes)
	}
	if minGapMinutes < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidGap, minGapMinutes)
	}
	if err := openTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: open: %v", ErrInvalidInput, err)
	}
	if err := closeTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: close: %v", ErrInvalidInput, err)
	}

	openMinutes := openTime.Minutes()
	closeMinutes := closeTime.Minutes()

	slots := make([]domain.Slot, 0)
	for cursor := openMinutes; cursor+durationMinutes <= closeMinutes; cursor += durationMinutes + minGapMinutes {
		slots = append(slots, domain.Slot{
			Time:    types.FromMinutes(cursor),
			Enabled: true,
		})
	}

	return slots, nil
}

// GenerateWeeklyTemplate строит шаблон на всю неделю по часам работы услуги.
// Закрытый день получает пустой список слотов
func GenerateWeeklyTemplate(cfg *domain.ServiceCapacityConfig) (*domain.ScheduleTemplate, error) {
	template := domain.NewScheduleTemplate(cfg.ID)

	for _, day := range domain.Weekdays {
		slots, err := generateDay(cfg, day)
		if err != nil {
			return nil, err
		}
		template.WeeklySlots[day] = slots
	}

	return template, nil
}

func generateDay(cfg *domain.ServiceCapacityConfig, day time.Weekday) ([]domain.Slot, error) {
	hours, open := cfg.OperatingHours.For(day)
	if !open {
		return []domain.Slot{}, nil
	}

	slots, err := GenerateDaySlots(hours.Open, hours.Close, cfg.DurationMinutes, cfg.MinGapMinutes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", day, err)
	}
	return slots, nil
}

// preserveAnnotations переносит enabled и staff со старых слотов с тем же временем
func preserveAnnotations(generated, previous []domain.Slot) []domain.Slot {
	if len(previous) == 0 {
		return generated
	}

	byTime := make(map[types.TimeString]domain.Slot, len(previous))
	for _, slot := range previous {
		byTime[slot.Time] = slot
	}

	for i, slot := range generated {
		if old, ok := byTime[slot.Time]; ok {
			generated[i].Enabled = old.Enabled
			generated[i].StaffID = old.StaffID
		}
	}

	return generated
}
