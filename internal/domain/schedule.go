package domain

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Weekdays Monday-first order used when iterating a week
var Weekdays = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

// Slot bookable time of day within a weekly template
type Slot struct {
	Time    types.TimeString
	Enabled bool
	StaffID *string
}

// ScheduleTemplate weekly slot layout of a service.
// Slots of a day are strictly increasing in time.
type ScheduleTemplate struct {
	ServiceID   string
	WeeklySlots map[time.Weekday][]Slot
	UpdatedAt   time.Time
}

// NewScheduleTemplate returns an empty template for a service
func NewScheduleTemplate(serviceID string) *ScheduleTemplate {
	return &ScheduleTemplate{
		ServiceID:   serviceID,
		WeeklySlots: make(map[time.Weekday][]Slot, len(Weekdays)),
	}
}

// SlotsFor returns the slots of a weekday; nil for a closed day
func (t *ScheduleTemplate) SlotsFor(day time.Weekday) []Slot {
	if t == nil {
		return nil
	}
	return t.WeeklySlots[day]
}

// FindSlot returns the index of the slot at the given time, or -1
func (t *ScheduleTemplate) FindSlot(day time.Weekday, at types.TimeString) int {
	for i, slot := range t.SlotsFor(day) {
		if slot.Time == at {
			return i
		}
	}
	return -1
}

// TotalSlots number of slots across the week
func (t *ScheduleTemplate) TotalSlots() int {
	total := 0
	for _, slots := range t.WeeklySlots {
		total += len(slots)
	}
	return total
}
