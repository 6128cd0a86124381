package domain

// DateFormat YYYY-MM-DD
const DateFormat = "2006-01-02"

// DefaultWaitlistPriority priority of a waitlist entry added without one
const DefaultWaitlistPriority = 1

// Business validation constants
const (
	MinCapacity        = 1
	MaxCapacity        = 500
	MinDurationMinutes = 1
	MaxDurationMinutes = 480 // 8 hours
	MaxGapMinutes      = 240
	MaxBlockReasonLen  = 500
	MaxBlockDatesBatch = 366
)

// AlmostFullRatio remaining share of capacity at or below which a slot is "almost-full"
const AlmostFullRatio = 0.25

// Validation failure reasons, distinct per rule and shown to the user as-is
const (
	ReasonInvalidTimeSlot  = "invalid time slot"
	ReasonSlotNotAvailable = "slot not available"
	ReasonSlotFullyBooked  = "slot fully booked"
	ReasonDuplicateBooking = "duplicate booking"
)
