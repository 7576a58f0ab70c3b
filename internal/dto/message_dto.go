package dto

import "github.com/google/uuid"

// BookingConfirmationMessage rides the in-process queue from the booking flows
// to the email consumer.
type BookingConfirmationMessage struct {
	BookingId    uuid.UUID `json:"booking_id"`
	StudentEmail string    `json:"student_email"`
	MentorName   string    `json:"mentor_name"`
	Date         string    `json:"date"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
}
