package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MentorIs filters bookings by mentor
type MentorIs struct {
	MentorID uuid.UUID
}

func (s MentorIs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("mentor_id = ?", s.MentorID)
}

// StudentIs filters bookings by student
type StudentIs struct {
	StudentID uuid.UUID
}

func (s StudentIs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("student_id = ?", s.StudentID)
}

// ParticipantIs filters bookings where the user is either party
type ParticipantIs struct {
	UserID uuid.UUID
}

func (s ParticipantIs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("mentor_id = ? OR student_id = ?", s.UserID, s.UserID)
}

// StatusNot excludes bookings in the given status
type StatusNot struct {
	Status string
}

func (s StatusNot) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status <> ?", s.Status)
}

// OverlappingRange matches bookings whose [start_time, end_time) interval
// overlaps the candidate range. Half-open: touching boundaries do not match.
type OverlappingRange struct {
	Start time.Time
	End   time.Time
}

func (s OverlappingRange) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("start_time < ? AND end_time > ?", s.End, s.Start)
}

// ExcludeID removes a booking from consideration (self-comparison on updates)
type ExcludeID struct {
	ID uuid.UUID
}

func (s ExcludeID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id <> ?", s.ID)
}

// HasFeedback matches bookings carrying a submitted rating
type HasFeedback struct{}

func (s HasFeedback) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("feedback_rating IS NOT NULL")
}

// OriginIs filters bookings by creation flow
type OriginIs struct {
	Origin string
}

func (s OriginIs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("origin = ?", s.Origin)
}

// StartingAfter matches bookings that begin at or after the given instant
type StartingAfter struct {
	At time.Time
}

func (s StartingAfter) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("start_time >= ?", s.At)
}
