package mapper

import (
	"encoding/json"
	"time"

	"hustlee-be/internal/entity"
	"hustlee-be/internal/model"

	"gorm.io/datatypes"
)

type MentorProfileMapper struct{}

func NewMentorProfileMapper() *MentorProfileMapper {
	return &MentorProfileMapper{}
}

func (m *MentorProfileMapper) ToEntity(p *model.MentorProfile) *entity.MentorProfile {
	if p == nil {
		return nil
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	var links entity.SocialLinks
	if len(p.SocialLinks) > 0 {
		_ = json.Unmarshal(p.SocialLinks, &links)
	}

	windows := make([]entity.AvailabilityWindow, len(p.Availability))
	for i, w := range p.Availability {
		windows[i] = entity.AvailabilityWindow{
			Id:          w.Id,
			Weekday:     time.Weekday(w.Weekday),
			StartMinute: w.StartMinute,
			EndMinute:   w.EndMinute,
		}
	}

	return &entity.MentorProfile{
		Id:             p.Id,
		UserId:         p.UserId,
		Headline:       p.Headline,
		Bio:            p.Bio,
		HourlyRate:     p.HourlyRate,
		Currency:       p.Currency,
		Expertise:      p.Expertise,
		Languages:      p.Languages,
		Certifications: p.Certifications,
		Achievements:   p.Achievements,
		SocialLinks:    links,
		Preferences: entity.MentorPreferences{
			TeachingStyle:          p.TeachingStyle,
			DefaultSessionDuration: p.DefaultSessionDuration,
			MaxStudentsPerSession:  p.MaxStudentsPerSession,
			CommunicationChannel:   p.CommunicationChannel,
		},
		Availability: windows,
		Rating:       p.Rating,
		RatingCount:  p.RatingCount,
		Verified:     p.Verified,
		Active:       p.Active,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *MentorProfileMapper) ToModel(p *entity.MentorProfile) *model.MentorProfile {
	if p == nil {
		return nil
	}

	var updatedAt time.Time
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}

	linksRaw, _ := json.Marshal(p.SocialLinks)

	windows := make([]model.AvailabilityWindow, len(p.Availability))
	for i, w := range p.Availability {
		windows[i] = model.AvailabilityWindow{
			Id:              w.Id,
			MentorProfileId: p.Id,
			Weekday:         int(w.Weekday),
			StartMinute:     w.StartMinute,
			EndMinute:       w.EndMinute,
		}
	}

	return &model.MentorProfile{
		Id:                     p.Id,
		UserId:                 p.UserId,
		Headline:               p.Headline,
		Bio:                    p.Bio,
		HourlyRate:             p.HourlyRate,
		Currency:               p.Currency,
		Expertise:              datatypes.NewJSONSlice(p.Expertise),
		Languages:              datatypes.NewJSONSlice(p.Languages),
		Certifications:         datatypes.NewJSONSlice(p.Certifications),
		Achievements:           datatypes.NewJSONSlice(p.Achievements),
		SocialLinks:            datatypes.JSON(linksRaw),
		TeachingStyle:          p.Preferences.TeachingStyle,
		DefaultSessionDuration: p.Preferences.DefaultSessionDuration,
		MaxStudentsPerSession:  p.Preferences.MaxStudentsPerSession,
		CommunicationChannel:   p.Preferences.CommunicationChannel,
		Rating:                 p.Rating,
		RatingCount:            p.RatingCount,
		Verified:               p.Verified,
		Active:                 p.Active,
		Availability:           windows,
		CreatedAt:              p.CreatedAt,
		UpdatedAt:              updatedAt,
	}
}

func (m *MentorProfileMapper) ToEntities(profiles []*model.MentorProfile) []*entity.MentorProfile {
	entities := make([]*entity.MentorProfile, len(profiles))
	for i, p := range profiles {
		entities[i] = m.ToEntity(p)
	}
	return entities
}
