package entity

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilityWindow is the canonical shape of a mentor's recurring open hours:
// minutes since midnight on a given weekday. All "HH:MM" strings are converted
// at the API boundary, never compared as strings.
type AvailabilityWindow struct {
	Id          uuid.UUID
	Weekday     time.Weekday
	StartMinute int
	EndMinute   int
}

// Contains reports whether the window fully contains [startMinute, endMinute).
func (w AvailabilityWindow) Contains(startMinute, endMinute int) bool {
	return w.StartMinute <= startMinute && w.EndMinute >= endMinute
}

type SocialLinks struct {
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Website  string `json:"website,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
}

type MentorPreferences struct {
	TeachingStyle          string
	DefaultSessionDuration int
	MaxStudentsPerSession  int
	CommunicationChannel   string
}

// MentorProfile is the mentor's editable public profile, decoupled from the
// auth identity. Lazily created with default availability on first read.
type MentorProfile struct {
	Id             uuid.UUID
	UserId         uuid.UUID
	Headline       string
	Bio            string
	HourlyRate     float64
	Currency       string
	Expertise      []string
	Languages      []string
	Certifications []string
	Achievements   []string
	SocialLinks    SocialLinks
	Preferences    MentorPreferences
	Availability   []AvailabilityWindow
	Rating         float64
	RatingCount    int
	Verified       bool
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}

// DefaultAvailability is the weekly schedule assigned when a profile is lazily
// created: Monday through Friday, 09:00-17:00.
func DefaultAvailability() []AvailabilityWindow {
	windows := make([]AvailabilityWindow, 0, 5)
	for day := time.Monday; day <= time.Friday; day++ {
		windows = append(windows, AvailabilityWindow{
			Id:          uuid.New(),
			Weekday:     day,
			StartMinute: 9 * 60,
			EndMinute:   17 * 60,
		})
	}
	return windows
}
