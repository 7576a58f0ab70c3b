package scheduling

import (
	"time"

	"hustlee-be/internal/entity"

	"github.com/google/uuid"
)

// FindConflict returns the first non-cancelled booking whose time range
// overlaps [start, end) under the half-open interval test, skipping excludeId
// so updates do not collide with themselves. Touching boundaries are not
// conflicts.
func FindConflict(bookings []*entity.Booking, start, end time.Time, excludeId uuid.UUID) *entity.Booking {
	for _, b := range bookings {
		if b.Id == excludeId {
			continue
		}
		if b.Status == entity.BookingStatusCancelled {
			continue
		}
		if b.Overlaps(start, end) {
			return b
		}
	}
	return nil
}
