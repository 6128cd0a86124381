package get_availability

import (
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// countByTime группирует активные бронирования по времени слота
func countByTime(bookings []*domain.Booking) map[types.TimeString]int {
	counts := make(map[types.TimeString]int, len(bookings))
	for _, booking := range bookings {
		// Фильтр по статусам уже применен в БД, проверка на случай другого хранилища
		if !booking.IsActive() {
			continue
		}
		counts[booking.Time]++
	}
	return counts
}

// buildSlots считает занятость каждого слота шаблона
func buildSlots(slots []domain.Slot, capacity int, booked map[types.TimeString]int) []domain.AvailabilitySlot {
	result := make([]domain.AvailabilitySlot, len(slots))
	for i, slot := range slots {
		result[i] = domain.NewAvailabilitySlot(slot, capacity, booked[slot.Time])
	}
	return result
}

// blockedSlots слоты заблокированной даты: вместимость показывается, но свободных мест нет
func blockedSlots(slots []domain.Slot, capacity int) []domain.AvailabilitySlot {
	result := make([]domain.AvailabilitySlot, len(slots))
	for i, slot := range slots {
		result[i] = domain.AvailabilitySlot{
			Time:          slot.Time,
			TotalCapacity: capacity,
			Available:     0,
			Enabled:       slot.Enabled,
			StaffID:       slot.StaffID,
			Status:        domain.SlotStatusFull,
		}
	}
	return result
}
