package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type MentorProfile struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId         uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Headline       string    `gorm:"type:varchar(255)"`
	Bio            string    `gorm:"type:text"`
	HourlyRate     float64   `gorm:"type:numeric(10,2);default:0"`
	Currency       string    `gorm:"type:varchar(3);default:'USD'"`
	Expertise      datatypes.JSONSlice[string]
	Languages      datatypes.JSONSlice[string]
	Certifications datatypes.JSONSlice[string]
	Achievements   datatypes.JSONSlice[string]
	SocialLinks    datatypes.JSON `gorm:"type:jsonb"`

	TeachingStyle          string `gorm:"type:varchar(100)"`
	DefaultSessionDuration int    `gorm:"default:60"`
	MaxStudentsPerSession  int    `gorm:"default:1"`
	CommunicationChannel   string `gorm:"type:varchar(50);default:'video'"`

	Rating      float64 `gorm:"default:0"`
	RatingCount int     `gorm:"default:0"`
	Verified    bool    `gorm:"default:false"`
	Active      bool    `gorm:"default:true"`

	Availability []AvailabilityWindow `gorm:"foreignKey:MentorProfileId;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (MentorProfile) TableName() string {
	return "mentor_profiles"
}

// AvailabilityWindow stores open hours as minutes since midnight, keyed by
// weekday (0=Sunday). Times are never stored or compared as strings.
type AvailabilityWindow struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MentorProfileId uuid.UUID `gorm:"type:uuid;not null;index"`
	Weekday         int       `gorm:"not null;check:weekday >= 0 AND weekday <= 6"`
	StartMinute     int       `gorm:"not null;check:start_minute >= 0 AND start_minute < 1440"`
	EndMinute       int       `gorm:"not null;check:end_minute > 0 AND end_minute <= 1440"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
}

func (AvailabilityWindow) TableName() string {
	return "availability_windows"
}
