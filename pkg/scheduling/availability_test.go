package scheduling

import (
	"testing"
	"time"

	"hustlee-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:00", 540, false},
		{"16:30", 990, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"09:60", 0, true},
		{"9:00", 0, true},
		{"0900", 0, true},
		{"", 0, true},
	}
	for _, c := range cases {
		got, err := ParseClock(c.in)
		if c.wantErr {
			assert.Error(t, err, c.in)
			continue
		}
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
}

func TestFormatClockRoundTrip(t *testing.T) {
	for _, s := range []string{"00:00", "09:05", "16:30", "23:59"} {
		m, err := ParseClock(s)
		require.NoError(t, err)
		assert.Equal(t, s, FormatClock(m))
	}
}

func TestParseWeekday(t *testing.T) {
	day, err := ParseWeekday("monday")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, day)

	day, err = ParseWeekday("Saturday")
	require.NoError(t, err)
	assert.Equal(t, time.Saturday, day)

	_, err = ParseWeekday("someday")
	assert.Error(t, err)
}

func mondayNineToFive() []entity.AvailabilityWindow {
	return []entity.AvailabilityWindow{
		{Weekday: time.Monday, StartMinute: 9 * 60, EndMinute: 17 * 60},
	}
}

func TestWithinAvailabilityContainment(t *testing.T) {
	windows := mondayNineToFive()

	// 16:00-16:30 sits inside 09:00-17:00.
	assert.True(t, WithinAvailability(windows, time.Monday, 16*60, 16*60+30))

	// 16:30-17:30 exceeds the window.
	assert.False(t, WithinAvailability(windows, time.Monday, 16*60+30, 17*60+30))
}

func TestWithinAvailabilityExactWindowEdges(t *testing.T) {
	windows := mondayNineToFive()

	assert.True(t, WithinAvailability(windows, time.Monday, 9*60, 17*60))
	assert.False(t, WithinAvailability(windows, time.Monday, 8*60+59, 10*60))
}

func TestWithinAvailabilityEmptyWeekday(t *testing.T) {
	windows := mondayNineToFive()

	// No windows on Tuesday: slot rejected.
	assert.False(t, WithinAvailability(windows, time.Tuesday, 10*60, 11*60))
	assert.False(t, WithinAvailability(nil, time.Monday, 10*60, 11*60))
}

func TestWithinAvailabilityDegenerateRange(t *testing.T) {
	windows := mondayNineToFive()

	assert.False(t, WithinAvailability(windows, time.Monday, 10*60, 10*60))
	assert.False(t, WithinAvailability(windows, time.Monday, 11*60, 10*60))
}

func TestWithinAvailabilityMultipleWindows(t *testing.T) {
	windows := []entity.AvailabilityWindow{
		{Weekday: time.Monday, StartMinute: 9 * 60, EndMinute: 12 * 60},
		{Weekday: time.Monday, StartMinute: 14 * 60, EndMinute: 17 * 60},
	}

	assert.True(t, WithinAvailability(windows, time.Monday, 14*60, 15*60))
	// Spans the lunch gap: no single window contains it.
	assert.False(t, WithinAvailability(windows, time.Monday, 11*60, 15*60))
}
