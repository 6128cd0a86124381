package domain

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// WaitlistStatus lifecycle state of a waitlist entry
type WaitlistStatus string

const (
	WaitlistWaiting  WaitlistStatus = "waiting"
	WaitlistNotified WaitlistStatus = "notified"
	WaitlistExpired  WaitlistStatus = "expired"
	WaitlistBooked   WaitlistStatus = "booked"
)

// IsValid reports whether the status is known
func (s WaitlistStatus) IsValid() bool {
	switch s {
	case WaitlistWaiting, WaitlistNotified, WaitlistExpired, WaitlistBooked:
		return true
	}
	return false
}

// CanTransitionTo enforces waiting -> notified -> {booked | expired}.
// There is no way back to waiting.
func (s WaitlistStatus) CanTransitionTo(next WaitlistStatus) bool {
	switch s {
	case WaitlistWaiting:
		return next == WaitlistNotified
	case WaitlistNotified:
		return next == WaitlistBooked || next == WaitlistExpired
	default:
		return false
	}
}

// WaitlistEntry patient waiting for a specific (service, date, time) slot.
// Lower Priority value is served first.
type WaitlistEntry struct {
	ID             int64
	ServiceID      string
	Date           time.Time
	Time           types.TimeString
	PatientID      string
	PatientContact string
	Priority       int
	Status         WaitlistStatus
	CreatedAt      time.Time
	NotifiedAt     *time.Time
}

// ServedBefore orders entries by priority, then creation time, then id
func (e *WaitlistEntry) ServedBefore(other *WaitlistEntry) bool {
	if e.Priority != other.Priority {
		return e.Priority < other.Priority
	}
	if !e.CreatedAt.Equal(other.CreatedAt) {
		return e.CreatedAt.Before(other.CreatedAt)
	}
	return e.ID < other.ID
}

// SortWaitlist sorts entries in serving order
func SortWaitlist(entries []*WaitlistEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ServedBefore(entries[j])
	})
}

// WaitlistKey identifies the slot instance a waitlist serves
type WaitlistKey struct {
	ServiceID string
	Date      time.Time
	Time      types.TimeString
}

// Key returns the slot key of the entry
func (e *WaitlistEntry) Key() WaitlistKey {
	return WaitlistKey{ServiceID: e.ServiceID, Date: DateOnly(e.Date), Time: e.Time}
}
