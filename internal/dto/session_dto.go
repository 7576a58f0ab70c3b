package dto

import (
	"time"

	"github.com/google/uuid"
)

type AttachmentDTO struct {
	Name string `json:"name" validate:"required"`
	URL  string `json:"url" validate:"required,url"`
	Type string `json:"type"`
}

type CreateSessionRequest struct {
	StudentId       uuid.UUID       `json:"student_id" validate:"required"`
	Title           string          `json:"title" validate:"required,min=3"`
	Description     string          `json:"description"`
	StartTime       time.Time       `json:"start_time" validate:"required"`
	EndTime         time.Time       `json:"end_time" validate:"required,gtfield=StartTime"`
	DurationMinutes int             `json:"duration_minutes" validate:"required,gt=0"`
	Type            string          `json:"type" validate:"required,oneof=video voice text"`
	Category        string          `json:"category" validate:"omitempty,oneof=meeting workshop consultation review"`
	Priority        string          `json:"priority" validate:"omitempty,oneof=low medium high"`
	MeetingLink     string          `json:"meeting_link" validate:"omitempty,url"`
	Notes           string          `json:"notes"`
	Agenda          []string        `json:"agenda"`
	ReminderEnabled bool            `json:"reminder_enabled"`
	Attachments     []AttachmentDTO `json:"attachments" validate:"omitempty,dive"`
}

// UpdateSessionRequest is partial: nil fields keep their stored value. A time
// change re-runs the conflict check before anything is written.
type UpdateSessionRequest struct {
	Id              uuid.UUID
	Title           *string         `json:"title" validate:"omitempty,min=3"`
	Description     *string         `json:"description"`
	StartTime       *time.Time      `json:"start_time"`
	EndTime         *time.Time      `json:"end_time"`
	DurationMinutes *int            `json:"duration_minutes" validate:"omitempty,gt=0"`
	Type            *string         `json:"type" validate:"omitempty,oneof=video voice text"`
	Status          *string         `json:"status" validate:"omitempty,oneof=in-progress completed cancelled"`
	Category        *string         `json:"category" validate:"omitempty,oneof=meeting workshop consultation review"`
	Priority        *string         `json:"priority" validate:"omitempty,oneof=low medium high"`
	MeetingLink     *string         `json:"meeting_link" validate:"omitempty,url"`
	Notes           *string         `json:"notes"`
	Agenda          []string        `json:"agenda"`
	CancelReason    *string         `json:"cancel_reason"`
	ReminderEnabled *bool           `json:"reminder_enabled"`
	Attachments     []AttachmentDTO `json:"attachments" validate:"omitempty,dive"`
}

type SubmitFeedbackRequest struct {
	Id      uuid.UUID
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

type FeedbackResponse struct {
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type CancellationResponse struct {
	Reason      string    `json:"reason"`
	CancelledBy uuid.UUID `json:"cancelled_by"`
	CancelledAt time.Time `json:"cancelled_at"`
}

type SessionResponse struct {
	Id              uuid.UUID             `json:"id"`
	Origin          string                `json:"origin"`
	MentorId        uuid.UUID             `json:"mentor_id"`
	StudentId       uuid.UUID             `json:"student_id"`
	Title           string                `json:"title"`
	Description     string                `json:"description,omitempty"`
	StartTime       time.Time             `json:"start_time"`
	EndTime         time.Time             `json:"end_time"`
	DurationMinutes int                   `json:"duration_minutes"`
	Type            string                `json:"type"`
	Status          string                `json:"status"`
	Category        string                `json:"category,omitempty"`
	Priority        string                `json:"priority,omitempty"`
	MeetingLink     string                `json:"meeting_link,omitempty"`
	Notes           string                `json:"notes,omitempty"`
	Agenda          []string              `json:"agenda,omitempty"`
	Feedback        *FeedbackResponse     `json:"feedback,omitempty"`
	Cancellation    *CancellationResponse `json:"cancellation,omitempty"`
	ReminderEnabled bool                  `json:"reminder_enabled"`
	Attachments     []AttachmentDTO       `json:"attachments,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       *time.Time            `json:"updated_at"`
}

type ListSessionsResponse struct {
	Sessions []SessionResponse `json:"sessions"`
	Total    int64             `json:"total"`
}
