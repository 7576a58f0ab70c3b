package scheduling

import (
	"testing"
	"time"

	"hustlee-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func bookingAt(start, end time.Time, status entity.BookingStatus) *entity.Booking {
	return &entity.Booking{
		Id:        uuid.New(),
		MentorId:  uuid.New(),
		StudentId: uuid.New(),
		StartTime: start,
		EndTime:   end,
		Status:    status,
	}
}

func at(hour, minute int) time.Time {
	return time.Date(2026, time.March, 2, hour, minute, 0, 0, time.UTC)
}

func TestFindConflictOverlap(t *testing.T) {
	existing := bookingAt(at(9, 0), at(10, 0), entity.BookingStatusScheduled)

	conflict := FindConflict([]*entity.Booking{existing}, at(9, 30), at(10, 30), uuid.Nil)
	assert.NotNil(t, conflict)
	assert.Equal(t, existing.Id, conflict.Id)
}

func TestFindConflictTouchingBoundaries(t *testing.T) {
	existing := bookingAt(at(9, 0), at(10, 0), entity.BookingStatusScheduled)
	bookings := []*entity.Booking{existing}

	// [10:00,11:00) after [9:00,10:00) and [8:00,9:00) before it both pass.
	assert.Nil(t, FindConflict(bookings, at(10, 0), at(11, 0), uuid.Nil))
	assert.Nil(t, FindConflict(bookings, at(8, 0), at(9, 0), uuid.Nil))
}

func TestFindConflictContainment(t *testing.T) {
	existing := bookingAt(at(9, 0), at(12, 0), entity.BookingStatusScheduled)
	bookings := []*entity.Booking{existing}

	// Candidate inside the existing range.
	assert.NotNil(t, FindConflict(bookings, at(10, 0), at(11, 0), uuid.Nil))
	// Candidate enclosing the existing range.
	assert.NotNil(t, FindConflict(bookings, at(8, 0), at(13, 0), uuid.Nil))
}

func TestFindConflictSkipsCancelled(t *testing.T) {
	cancelled := bookingAt(at(9, 0), at(10, 0), entity.BookingStatusCancelled)

	assert.Nil(t, FindConflict([]*entity.Booking{cancelled}, at(9, 0), at(10, 0), uuid.Nil))
}

func TestFindConflictExcludesSelf(t *testing.T) {
	existing := bookingAt(at(9, 0), at(10, 0), entity.BookingStatusScheduled)

	// Rescheduling within its own range must not self-collide.
	assert.Nil(t, FindConflict([]*entity.Booking{existing}, at(9, 15), at(10, 15), existing.Id))

	other := bookingAt(at(9, 30), at(10, 30), entity.BookingStatusScheduled)
	conflict := FindConflict([]*entity.Booking{existing, other}, at(9, 15), at(10, 15), existing.Id)
	assert.NotNil(t, conflict)
	assert.Equal(t, other.Id, conflict.Id)
}

func TestFindConflictNonCancelledStatuses(t *testing.T) {
	for _, status := range []entity.BookingStatus{
		entity.BookingStatusScheduled,
		entity.BookingStatusInProgress,
		entity.BookingStatusCompleted,
	} {
		existing := bookingAt(at(9, 0), at(10, 0), status)
		assert.NotNil(t, FindConflict([]*entity.Booking{existing}, at(9, 30), at(10, 30), uuid.Nil), string(status))
	}
}
