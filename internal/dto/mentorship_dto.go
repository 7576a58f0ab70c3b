package dto

import (
	"time"

	"github.com/google/uuid"
)

// BookMentorshipRequest carries wall-clock strings; date is "YYYY-MM-DD" and
// times are zero-padded 24h "HH:MM", parsed once at the boundary.
type BookMentorshipRequest struct {
	MentorId        uuid.UUID `json:"mentor_id" validate:"required"`
	Date            string    `json:"date" validate:"required,len=10"`
	StartTime       string    `json:"start_time" validate:"required,len=5"`
	EndTime         string    `json:"end_time" validate:"required,len=5"`
	DurationMinutes int       `json:"duration_minutes" validate:"required,gt=0"`
	Topic           string    `json:"topic"`
	Notes           string    `json:"notes"`
	Type            string    `json:"type" validate:"omitempty,oneof=video voice text"`
}

type PaymentResponse struct {
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Status    string  `json:"status"`
	Reference string  `json:"reference,omitempty"`
	SnapURL   string  `json:"snap_url,omitempty"`
}

type MentorshipResponse struct {
	Id              uuid.UUID             `json:"id"`
	MentorId        uuid.UUID             `json:"mentor_id"`
	StudentId       uuid.UUID             `json:"student_id"`
	Topic           string                `json:"topic,omitempty"`
	Date            string                `json:"date"`
	StartTime       string                `json:"start_time"`
	EndTime         string                `json:"end_time"`
	DurationMinutes int                   `json:"duration_minutes"`
	Status          string                `json:"status"`
	Payment         PaymentResponse       `json:"payment"`
	Feedback        *FeedbackResponse     `json:"feedback,omitempty"`
	Cancellation    *CancellationResponse `json:"cancellation,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       *time.Time            `json:"updated_at"`
}

type ListMentorshipsResponse struct {
	Records []MentorshipResponse `json:"records"`
	Total   int64                `json:"total"`
}

type UpdateMentorshipStatusRequest struct {
	Id           uuid.UUID
	Status       string `json:"status" validate:"required,oneof=in-progress completed cancelled"`
	CancelReason string `json:"cancel_reason" validate:"max=500"`
}

// PaymentNotificationRequest is the subset of the Midtrans webhook payload the
// service acts on. SignatureKey is verified against
// SHA512(order_id + status_code + gross_amount + server_key).
type PaymentNotificationRequest struct {
	OrderId           string `json:"order_id" validate:"required"`
	TransactionStatus string `json:"transaction_status" validate:"required"`
	FraudStatus       string `json:"fraud_status"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
}
