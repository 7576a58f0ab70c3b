package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingOrigin string
type BookingStatus string
type SessionType string
type BookingCategory string
type BookingPriority string
type PaymentStatus string

const (
	// A booking created directly through the sessions API.
	OriginDirectSession BookingOrigin = "direct-session"
	// A booking created through the mentorship-matching flow.
	OriginMatchedMentorship BookingOrigin = "matched-mentorship"

	BookingStatusScheduled  BookingStatus = "scheduled"
	BookingStatusInProgress BookingStatus = "in-progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"

	SessionTypeVideo SessionType = "video"
	SessionTypeVoice SessionType = "voice"
	SessionTypeText  SessionType = "text"

	CategoryMeeting      BookingCategory = "meeting"
	CategoryWorkshop     BookingCategory = "workshop"
	CategoryConsultation BookingCategory = "consultation"
	CategoryReview       BookingCategory = "review"

	PriorityLow    BookingPriority = "low"
	PriorityMedium BookingPriority = "medium"
	PriorityHigh   BookingPriority = "high"

	PaymentStatusNone    PaymentStatus = "none"
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

type Feedback struct {
	Rating      int
	Comment     string
	SubmittedAt time.Time
}

type Cancellation struct {
	Reason      string
	CancelledBy uuid.UUID
	CancelledAt time.Time
}

type Attachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"`
}

// Booking is the single source of truth for a mentor/student meeting,
// regardless of which flow created it (Origin tag).
type Booking struct {
	Id              uuid.UUID
	Origin          BookingOrigin
	MentorId        uuid.UUID
	StudentId       uuid.UUID
	Title           string
	Description     *string
	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int
	Type            SessionType
	Status          BookingStatus
	Category        BookingCategory
	Priority        BookingPriority
	MeetingLink     *string
	Notes           *string
	Agenda          []string
	PaymentAmount   float64
	PaymentCurrency string
	PaymentStatus   PaymentStatus
	PaymentRef      *string
	Feedback        *Feedback
	Cancellation    *Cancellation
	ReminderEnabled bool
	ReminderAt      *time.Time
	Attachments     []Attachment
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}

// Terminal reports whether no further status transition is allowed.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusScheduled, BookingStatusInProgress, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo enforces the booking state machine:
// scheduled -> {in-progress, completed, cancelled}, in-progress -> {completed, cancelled},
// completed and cancelled are terminal.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	if !next.Valid() || next == BookingStatusScheduled {
		return false
	}
	if b.Status.Terminal() {
		return false
	}
	return true
}

// IsParticipant reports whether the user is the mentor or the student party.
func (b *Booking) IsParticipant(userID uuid.UUID) bool {
	return b.MentorId == userID || b.StudentId == userID
}

// Overlaps applies the half-open interval test: touching boundaries do not
// overlap.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && b.EndTime.After(start)
}
