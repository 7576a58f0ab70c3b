package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Booking struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Origin          string    `gorm:"type:varchar(30);not null;index"`
	MentorId        uuid.UUID `gorm:"type:uuid;not null;index:idx_bookings_mentor_start,priority:1"`
	StudentId       uuid.UUID `gorm:"type:uuid;not null;index"`
	Title           string    `gorm:"type:varchar(255);not null"`
	Description     *string   `gorm:"type:text"`
	StartTime       time.Time `gorm:"not null;index:idx_bookings_mentor_start,priority:2"`
	EndTime         time.Time `gorm:"not null"`
	DurationMinutes int       `gorm:"not null"`
	Type            string    `gorm:"type:varchar(20);not null;default:'video'"`
	Status          string    `gorm:"type:varchar(20);not null;default:'scheduled';index"`
	Category        string    `gorm:"type:varchar(30);not null;default:'meeting'"`
	Priority        string    `gorm:"type:varchar(10);not null;default:'medium'"`
	MeetingLink     *string   `gorm:"type:text"`
	Notes           *string   `gorm:"type:text"`
	Agenda          datatypes.JSONSlice[string]
	PaymentAmount   float64 `gorm:"type:numeric(10,2);default:0"`
	PaymentCurrency string  `gorm:"type:varchar(3);default:'USD'"`
	PaymentStatus   string  `gorm:"type:varchar(20);not null;default:'none'"`
	PaymentRef      *string `gorm:"type:text"`

	FeedbackRating      *int       `gorm:"check:feedback_rating IS NULL OR (feedback_rating >= 1 AND feedback_rating <= 5)"`
	FeedbackComment     *string    `gorm:"type:text"`
	FeedbackSubmittedAt *time.Time

	CancellationReason *string    `gorm:"type:text"`
	CancelledBy        *uuid.UUID `gorm:"type:uuid"`
	CancelledAt        *time.Time

	ReminderEnabled bool `gorm:"default:false"`
	ReminderAt      *time.Time

	Attachments datatypes.JSON `gorm:"type:jsonb"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Booking) TableName() string {
	return "bookings"
}
