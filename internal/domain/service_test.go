package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *ServiceCapacityConfig {
	return &ServiceCapacityConfig{
		ID:              "yoga",
		Name:            "Yoga",
		Capacity:        16,
		DurationMinutes: 60,
		Kind:            ServiceKindGroup,
		OperatingHours: OperatingHours{
			time.Monday: {Open: "08:00", Close: "12:00"},
		},
	}
}

func TestServiceCapacityConfigValidate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())

	shortest := validConfig()
	shortest.DurationMinutes = MinDurationMinutes
	assert.NoError(t, shortest.Validate())

	tests := []struct {
		name   string
		mutate func(c *ServiceCapacityConfig)
	}{
		{name: "missing id", mutate: func(c *ServiceCapacityConfig) { c.ID = "" }},
		{name: "zero capacity", mutate: func(c *ServiceCapacityConfig) { c.Capacity = 0 }},
		{name: "zero duration", mutate: func(c *ServiceCapacityConfig) { c.DurationMinutes = 0 }},
		{name: "too long", mutate: func(c *ServiceCapacityConfig) { c.DurationMinutes = MaxDurationMinutes + 1 }},
		{name: "negative gap", mutate: func(c *ServiceCapacityConfig) { c.MinGapMinutes = -5 }},
		{name: "unknown kind", mutate: func(c *ServiceCapacityConfig) { c.Kind = "vip" }},
		{name: "close before open", mutate: func(c *ServiceCapacityConfig) {
			c.OperatingHours[time.Monday] = DayHours{Open: "12:00", Close: "08:00"}
		}},
		{name: "malformed hours", mutate: func(c *ServiceCapacityConfig) {
			c.OperatingHours[time.Monday] = DayHours{Open: "8am", Close: "12:00"}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestAffectedDays(t *testing.T) {
	base := validConfig()

	same := validConfig()
	same.Capacity = 20
	assert.Empty(t, base.AffectedDays(same))

	longer := validConfig()
	longer.DurationMinutes = 90
	assert.Equal(t, Weekdays, longer.AffectedDays(base))
	assert.Equal(t, Weekdays, base.AffectedDays(longer))

	moved := validConfig()
	moved.OperatingHours[time.Monday] = DayHours{Open: "09:00", Close: "12:00"}
	assert.Equal(t, []time.Weekday{time.Monday}, base.AffectedDays(moved))

	extraDay := validConfig()
	extraDay.OperatingHours[time.Tuesday] = DayHours{Open: "09:00", Close: "12:00"}
	assert.Equal(t, []time.Weekday{time.Tuesday}, base.AffectedDays(extraDay))
	assert.Equal(t, []time.Weekday{time.Tuesday}, extraDay.AffectedDays(base), "closing a day affects it")
}
