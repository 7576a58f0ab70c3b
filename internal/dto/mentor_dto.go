package dto

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilityWindowDTO is the wire shape of one open range. Day is a lowercase
// weekday name, times are zero-padded 24h "HH:MM".
type AvailabilityWindowDTO struct {
	Day   string `json:"day" validate:"required,oneof=sunday monday tuesday wednesday thursday friday saturday"`
	Start string `json:"start" validate:"required,len=5"`
	End   string `json:"end" validate:"required,len=5"`
}

type SocialLinksDTO struct {
	LinkedIn string `json:"linkedin,omitempty" validate:"omitempty,url"`
	GitHub   string `json:"github,omitempty" validate:"omitempty,url"`
	Website  string `json:"website,omitempty" validate:"omitempty,url"`
	Twitter  string `json:"twitter,omitempty" validate:"omitempty,url"`
}

type MentorPreferencesDTO struct {
	TeachingStyle          string `json:"teaching_style"`
	DefaultSessionDuration int    `json:"default_session_duration" validate:"omitempty,gt=0"`
	MaxStudentsPerSession  int    `json:"max_students_per_session" validate:"omitempty,gt=0"`
	CommunicationChannel   string `json:"communication_channel"`
}

type MentorProfileResponse struct {
	Id             uuid.UUID               `json:"id"`
	UserId         uuid.UUID               `json:"user_id"`
	FullName       string                  `json:"full_name"`
	Headline       string                  `json:"headline"`
	Bio            string                  `json:"bio"`
	HourlyRate     float64                 `json:"hourly_rate"`
	Currency       string                  `json:"currency"`
	Expertise      []string                `json:"expertise"`
	Languages      []string                `json:"languages"`
	Certifications []string                `json:"certifications"`
	Achievements   []string                `json:"achievements"`
	SocialLinks    SocialLinksDTO          `json:"social_links"`
	Preferences    MentorPreferencesDTO    `json:"preferences"`
	Availability   []AvailabilityWindowDTO `json:"availability"`
	Rating         float64                 `json:"rating"`
	RatingCount    int                     `json:"rating_count"`
	Verified       bool                    `json:"verified"`
	Active         bool                    `json:"active"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      *time.Time              `json:"updated_at"`
}

// UpdateMentorProfileRequest is a partial upsert: nil fields are left untouched.
type UpdateMentorProfileRequest struct {
	Headline       *string               `json:"headline"`
	Bio            *string               `json:"bio"`
	HourlyRate     *float64              `json:"hourly_rate" validate:"omitempty,gt=0"`
	Currency       *string               `json:"currency" validate:"omitempty,len=3"`
	Expertise      []string              `json:"expertise"`
	Languages      []string              `json:"languages"`
	Certifications []string              `json:"certifications"`
	Achievements   []string              `json:"achievements"`
	SocialLinks    *SocialLinksDTO       `json:"social_links"`
	Preferences    *MentorPreferencesDTO `json:"preferences"`
	Active         *bool                 `json:"active"`
}

type UpdateAvailabilityRequest struct {
	Windows []AvailabilityWindowDTO `json:"windows" validate:"required,min=1,dive"`
}

type MentorAvailabilityResponse struct {
	MentorId uuid.UUID               `json:"mentor_id"`
	Windows  []AvailabilityWindowDTO `json:"windows"`
}

type MentorListItemResponse struct {
	Id          uuid.UUID `json:"id"`
	UserId      uuid.UUID `json:"user_id"`
	FullName    string    `json:"full_name"`
	Headline    string    `json:"headline"`
	HourlyRate  float64   `json:"hourly_rate"`
	Currency    string    `json:"currency"`
	Expertise   []string  `json:"expertise"`
	Rating      float64   `json:"rating"`
	RatingCount int       `json:"rating_count"`
	Verified    bool      `json:"verified"`
}

type ListMentorsResponse struct {
	Mentors []MentorListItemResponse `json:"mentors"`
	Total   int64                    `json:"total"`
}
