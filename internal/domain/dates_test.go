package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOnly(t *testing.T) {
	moscow := time.FixedZone("MSK", 3*60*60)
	got := DateOnly(time.Date(2025, 3, 10, 23, 30, 0, 0, moscow))

	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), got)
	assert.True(t, SameDay(got, time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)))
}

func TestParseWeekday(t *testing.T) {
	for _, day := range Weekdays {
		parsed, err := ParseWeekday(WeekdayName(day))
		require.NoError(t, err)
		assert.Equal(t, day, parsed)
	}

	day, err := ParseWeekday("Sunday")
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, day)

	_, err = ParseWeekday("funday")
	assert.Error(t, err)
}
