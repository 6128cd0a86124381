package generate_schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

func TestGenerateDaySlotsMassage(t *testing.T) {
	slots, err := GenerateDaySlots("09:00", "11:00", 60, 30)
	require.NoError(t, err)

	require.Len(t, slots, 1)
	assert.Equal(t, domain.Slot{Time: "09:00", Enabled: true}, slots[0])
}

func TestGenerateDaySlotsNoTrailingGap(t *testing.T) {
	// 08:00, 09:15, 10:30 - последний слот заканчивается ровно в 11:30 без перерыва после него
	slots, err := GenerateDaySlots("08:00", "11:30", 60, 15)
	require.NoError(t, err)

	times := make([]types.TimeString, len(slots))
	for i, s := range slots {
		times[i] = s.Time
	}
	assert.Equal(t, []types.TimeString{"08:00", "09:15", "10:30"}, times)
}

func TestGenerateDaySlotsUntilMidnight(t *testing.T) {
	slots, err := GenerateDaySlots("22:00", "24:00", 60, 0)
	require.NoError(t, err)

	require.Len(t, slots, 2)
	assert.Equal(t, types.TimeString("23:00"), slots[1].Time)
}

func TestGenerateDaySlotsTooShortDay(t *testing.T) {
	slots, err := GenerateDaySlots("09:00", "09:45", 60, 0)
	require.NoError(t, err)

	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestGenerateDaySlotsInvalidParams(t *testing.T) {
	_, err := GenerateDaySlots("09:00", "17:00", 0, 0)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = GenerateDaySlots("09:00", "17:00", 30, -5)
	assert.ErrorIs(t, err, ErrInvalidGap)

	_, err = GenerateDaySlots("9am", "17:00", 30, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGenerateDaySlotsBoundsAndNonOverlap(t *testing.T) {
	for open := 0; open <= 12*60; open += 45 {
		for _, length := range []int{0, 10, 59, 60, 61, 180, 600} {
			for _, duration := range []int{5, 15, 30, 45, 60, 90} {
				for _, gap := range []int{0, 5, 10, 30} {
					closeMinutes := open + length
					if closeMinutes > types.MinutesPerDay {
						continue
					}

					slots, err := GenerateDaySlots(types.FromMinutes(open), types.FromMinutes(closeMinutes), duration, gap)
					require.NoError(t, err)

					expected := 0
					if length >= duration {
						expected = (length-duration)/(duration+gap) + 1
					}
					require.Len(t, slots, expected, "open=%d len=%d dur=%d gap=%d", open, length, duration, gap)

					for i, slot := range slots {
						start := slot.Time.Minutes()
						assert.GreaterOrEqual(t, start, open)
						assert.LessOrEqual(t, start+duration, closeMinutes)
						assert.True(t, slot.Enabled)
						assert.Nil(t, slot.StaffID)
						if i > 0 {
							assert.GreaterOrEqual(t, start, slots[i-1].Time.Minutes()+duration)
						}
					}
				}
			}
		}
	}
}

func TestGenerateWeeklyTemplate(t *testing.T) {
	cfg := &domain.ServiceCapacityConfig{
		ID:              "yoga",
		Capacity:        16,
		DurationMinutes: 60,
		Kind:            domain.ServiceKindGroup,
		OperatingHours: domain.OperatingHours{
			time.Monday:    {Open: "08:00", Close: "10:00"},
			time.Wednesday: {Open: "18:00", Close: "19:00"},
		},
	}

	template, err := GenerateWeeklyTemplate(cfg)
	require.NoError(t, err)

	assert.Equal(t, "yoga", template.ServiceID)
	assert.Len(t, template.SlotsFor(time.Monday), 2)
	assert.Len(t, template.SlotsFor(time.Wednesday), 1)
	assert.Empty(t, template.SlotsFor(time.Sunday))
	assert.Equal(t, 3, template.TotalSlots())
}

func TestPreserveAnnotations(t *testing.T) {
	generated := []domain.Slot{{Time: "08:00", Enabled: true}, {Time: "09:00", Enabled: true}}
	previous := []domain.Slot{
		{Time: "08:00", Enabled: false, StaffID: ptr.Ptr("anna")},
		{Time: "08:30", Enabled: false},
	}

	result := preserveAnnotations(generated, previous)

	assert.False(t, result[0].Enabled)
	assert.Equal(t, "anna", *result[0].StaffID)
	assert.True(t, result[1].Enabled)
	assert.Nil(t, result[1].StaffID)
}
