package domain

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// SlotStatus occupancy status of a slot instance
type SlotStatus string

const (
	SlotStatusAvailable  SlotStatus = "available"
	SlotStatusAlmostFull SlotStatus = "almost-full"
	SlotStatusFull       SlotStatus = "full"
)

// AvailabilitySlot live occupancy of a slot on a specific date. Never persisted.
type AvailabilitySlot struct {
	Time          types.TimeString
	TotalCapacity int
	Booked        int
	Available     int
	Enabled       bool
	StaffID       *string
	Status        SlotStatus
}

// NewAvailabilitySlot computes occupancy of a template slot.
// Booked above capacity is clamped to Available = 0.
func NewAvailabilitySlot(slot Slot, capacity, booked int) AvailabilitySlot {
	available := capacity - booked
	if available < 0 {
		available = 0
	}

	return AvailabilitySlot{
		Time:          slot.Time,
		TotalCapacity: capacity,
		Booked:        booked,
		Available:     available,
		Enabled:       slot.Enabled,
		StaffID:       slot.StaffID,
		Status:        StatusFor(available, capacity),
	}
}

// StatusFor derives the slot status from remaining capacity
func StatusFor(available, capacity int) SlotStatus {
	if available <= 0 || capacity <= 0 {
		return SlotStatusFull
	}
	if float64(available)/float64(capacity) <= AlmostFullRatio {
		return SlotStatusAlmostFull
	}
	return SlotStatusAvailable
}

// IsOverbooked returns true if more active bookings exist than capacity allows
func (s *AvailabilitySlot) IsOverbooked() bool {
	return s.Booked > s.TotalCapacity
}

// IsBookable returns true if the slot can accept one more booking
func (s *AvailabilitySlot) IsBookable() bool {
	return s.Enabled && s.Available > 0
}

// AvailabilitySummary totals over all slots of a date
type AvailabilitySummary struct {
	TotalSlots     int
	TotalCapacity  int
	TotalBooked    int
	TotalAvailable int
}

// Availability computed availability of a service on a date
type Availability struct {
	ServiceID   string
	Date        time.Time
	Blocked     bool
	BlockReason string
	Slots       []AvailabilitySlot
	Summary     AvailabilitySummary
}

// FindSlot returns the slot at the given time
func (a *Availability) FindSlot(at types.TimeString) (*AvailabilitySlot, bool) {
	for i := range a.Slots {
		if a.Slots[i].Time == at {
			return &a.Slots[i], true
		}
	}
	return nil, false
}

// Summarize aggregates slot totals
func Summarize(slots []AvailabilitySlot) AvailabilitySummary {
	summary := AvailabilitySummary{TotalSlots: len(slots)}
	for _, slot := range slots {
		summary.TotalCapacity += slot.TotalCapacity
		summary.TotalBooked += slot.Booked
		summary.TotalAvailable += slot.Available
	}
	return summary
}
