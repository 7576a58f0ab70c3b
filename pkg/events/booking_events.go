package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventBookingCreated    = "BOOKING_CREATED"
	EventBookingCancelled  = "BOOKING_CANCELLED"
	EventFeedbackSubmitted = "FEEDBACK_SUBMITTED"
)

// NewBookingCreated is published after a booking commits, from either flow.
func NewBookingCreated(bookingId, mentorId, studentId uuid.UUID, origin, title string, start, end time.Time) Event {
	return BaseEvent{
		Type: EventBookingCreated,
		Data: map[string]interface{}{
			"booking_id": bookingId.String(),
			"mentor_id":  mentorId.String(),
			"student_id": studentId.String(),
			"origin":     origin,
			"title":      title,
			"start_time": start.Format(time.RFC3339),
			"end_time":   end.Format(time.RFC3339),
		},
		OccurredAt: time.Now(),
	}
}

func NewBookingCancelled(bookingId, mentorId, studentId, cancelledBy uuid.UUID, reason string) Event {
	return BaseEvent{
		Type: EventBookingCancelled,
		Data: map[string]interface{}{
			"booking_id":   bookingId.String(),
			"mentor_id":    mentorId.String(),
			"student_id":   studentId.String(),
			"cancelled_by": cancelledBy.String(),
			"reason":       reason,
		},
		OccurredAt: time.Now(),
	}
}

func NewFeedbackSubmitted(bookingId, mentorId, studentId uuid.UUID, rating int, newAggregate float64) Event {
	return BaseEvent{
		Type: EventFeedbackSubmitted,
		Data: map[string]interface{}{
			"booking_id": bookingId.String(),
			"mentor_id":  mentorId.String(),
			"student_id": studentId.String(),
			"rating":     rating,
			"aggregate":  newAggregate,
		},
		OccurredAt: time.Now(),
	}
}
