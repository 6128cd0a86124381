package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// ErrInvalidConfig returned by ServiceCapacityConfig.Validate
var ErrInvalidConfig = errors.New("domain: invalid service capacity config")

// ServiceKind individual or group service
type ServiceKind string

const (
	ServiceKindIndividual ServiceKind = "individual"
	ServiceKindGroup      ServiceKind = "group"
)

// IsValid reports whether the kind is known
func (k ServiceKind) IsValid() bool {
	return k == ServiceKindIndividual || k == ServiceKindGroup
}

// DayHours opening hours of a single weekday
type DayHours struct {
	Open  types.TimeString
	Close types.TimeString
}

// OperatingHours weekly opening hours. A missing weekday means closed.
type OperatingHours map[time.Weekday]DayHours

// For returns the hours of a weekday and whether the service is open that day
func (h OperatingHours) For(day time.Weekday) (DayHours, bool) {
	hours, ok := h[day]
	return hours, ok
}

// ServiceCapacityConfig static configuration of a bookable service.
// Capacity is authoritative regardless of Kind.
type ServiceCapacityConfig struct {
	ID              string
	Name            string
	Capacity        int
	DurationMinutes int
	MinGapMinutes   int
	Kind            ServiceKind
	OperatingHours  OperatingHours
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate checks the config invariants
func (c *ServiceCapacityConfig) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidConfig)
	}
	if c.Capacity < MinCapacity || c.Capacity > MaxCapacity {
		return fmt.Errorf("%w: capacity must be between %d and %d", ErrInvalidConfig, MinCapacity, MaxCapacity)
	}
	if c.DurationMinutes < MinDurationMinutes || c.DurationMinutes > MaxDurationMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidConfig, MinDurationMinutes, MaxDurationMinutes)
	}
	if c.MinGapMinutes < 0 || c.MinGapMinutes > MaxGapMinutes {
		return fmt.Errorf("%w: gap must be between 0 and %d minutes", ErrInvalidConfig, MaxGapMinutes)
	}
	if !c.Kind.IsValid() {
		return fmt.Errorf("%w: unknown service kind %q", ErrInvalidConfig, c.Kind)
	}

	for day, hours := range c.OperatingHours {
		if err := hours.Open.Validate(); err != nil {
			return fmt.Errorf("%w: %s open: %v", ErrInvalidConfig, day, err)
		}
		if err := hours.Close.Validate(); err != nil {
			return fmt.Errorf("%w: %s close: %v", ErrInvalidConfig, day, err)
		}
		if !hours.Open.IsBefore(hours.Close) {
			return fmt.Errorf("%w: %s opens at %s but closes at %s", ErrInvalidConfig, day, hours.Open, hours.Close)
		}
	}

	return nil
}

// AffectedDays returns the weekdays whose generated slots change when switching from c to next.
// A changed duration or gap affects every weekday
func (c *ServiceCapacityConfig) AffectedDays(next *ServiceCapacityConfig) []time.Weekday {
	if c.DurationMinutes != next.DurationMinutes || c.MinGapMinutes != next.MinGapMinutes {
		return append([]time.Weekday(nil), Weekdays...)
	}

	var days []time.Weekday
	for _, day := range Weekdays {
		before, wasOpen := c.OperatingHours[day]
		after, isOpen := next.OperatingHours[day]
		if wasOpen != isOpen || before != after {
			days = append(days, day)
		}
	}
	return days
}
