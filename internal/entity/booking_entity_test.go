package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from BookingStatus
		to   BookingStatus
		want bool
	}{
		{"scheduled to in-progress", BookingStatusScheduled, BookingStatusInProgress, true},
		{"scheduled to completed", BookingStatusScheduled, BookingStatusCompleted, true},
		{"scheduled to cancelled", BookingStatusScheduled, BookingStatusCancelled, true},
		{"in-progress to completed", BookingStatusInProgress, BookingStatusCompleted, true},
		{"in-progress to cancelled", BookingStatusInProgress, BookingStatusCancelled, true},
		{"completed is terminal", BookingStatusCompleted, BookingStatusCancelled, false},
		{"cancelled is terminal", BookingStatusCancelled, BookingStatusInProgress, false},
		{"cancelled cannot be rescheduled", BookingStatusCancelled, BookingStatusScheduled, false},
		{"no transition back to scheduled", BookingStatusInProgress, BookingStatusScheduled, false},
		{"unknown status rejected", BookingStatusScheduled, BookingStatus("archived"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{Status: tt.from}
			assert.Equal(t, tt.want, b.CanTransitionTo(tt.to))
		})
	}
}

func TestOverlaps(t *testing.T) {
	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	booking := &Booking{
		StartTime: base,
		EndTime:   base.Add(time.Hour),
	}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{"identical range", base, base.Add(time.Hour), true},
		{"partial overlap at end", base.Add(30 * time.Minute), base.Add(90 * time.Minute), true},
		{"partial overlap at start", base.Add(-30 * time.Minute), base.Add(30 * time.Minute), true},
		{"candidate encloses booking", base.Add(-time.Hour), base.Add(2 * time.Hour), true},
		{"candidate inside booking", base.Add(15 * time.Minute), base.Add(45 * time.Minute), true},
		{"touching at booking end", base.Add(time.Hour), base.Add(2 * time.Hour), false},
		{"touching at booking start", base.Add(-time.Hour), base, false},
		{"fully before", base.Add(-2 * time.Hour), base.Add(-time.Hour), false},
		{"fully after", base.Add(2 * time.Hour), base.Add(3 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, booking.Overlaps(tt.start, tt.end))
		})
	}
}

func TestIsParticipant(t *testing.T) {
	mentorId := uuid.New()
	studentId := uuid.New()
	b := &Booking{MentorId: mentorId, StudentId: studentId}

	assert.True(t, b.IsParticipant(mentorId))
	assert.True(t, b.IsParticipant(studentId))
	assert.False(t, b.IsParticipant(uuid.New()))
}

func TestAvailabilityWindowContains(t *testing.T) {
	w := AvailabilityWindow{Weekday: time.Monday, StartMinute: 9 * 60, EndMinute: 17 * 60}

	assert.True(t, w.Contains(9*60, 17*60))
	assert.True(t, w.Contains(10*60, 11*60))
	assert.False(t, w.Contains(8*60, 10*60))
	assert.False(t, w.Contains(16*60, 18*60))
}
