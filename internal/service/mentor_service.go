package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"hustlee-be/internal/dto"
	"hustlee-be/internal/entity"
	"hustlee-be/internal/pkg/apperror"
	"hustlee-be/internal/repository/specification"
	"hustlee-be/internal/repository/unitofwork"
	"hustlee-be/pkg/scheduling"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

type IMentorService interface {
	// GetProfile lazily creates the profile with default availability on the
	// first read, then serves it from cache.
	GetProfile(ctx context.Context, mentorUserId uuid.UUID) (*dto.MentorProfileResponse, error)
	UpdateProfile(ctx context.Context, mentorUserId uuid.UUID, req *dto.UpdateMentorProfileRequest) (*dto.MentorProfileResponse, error)
	GetAvailability(ctx context.Context, mentorUserId uuid.UUID) (*dto.MentorAvailabilityResponse, error)
	UpdateAvailability(ctx context.Context, mentorUserId uuid.UUID, req *dto.UpdateAvailabilityRequest) (*dto.MentorAvailabilityResponse, error)
	ListMentors(ctx context.Context, limit, offset int) (*dto.ListMentorsResponse, error)
}

type mentorService struct {
	uowFactory   unitofwork.RepositoryFactory
	profileCache *gocache.Cache
}

func NewMentorService(uowFactory unitofwork.RepositoryFactory, profileCache *gocache.Cache) IMentorService {
	return &mentorService{
		uowFactory:   uowFactory,
		profileCache: profileCache,
	}
}

func mentorProfileCacheKey(userId uuid.UUID) string {
	return fmt.Sprintf("mentor-profile:%s", userId)
}

func windowsToDTO(windows []entity.AvailabilityWindow) []dto.AvailabilityWindowDTO {
	sorted := make([]entity.AvailabilityWindow, len(windows))
	copy(sorted, windows)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Weekday != sorted[j].Weekday {
			return sorted[i].Weekday < sorted[j].Weekday
		}
		return sorted[i].StartMinute < sorted[j].StartMinute
	})

	out := make([]dto.AvailabilityWindowDTO, len(sorted))
	for i, w := range sorted {
		out[i] = dto.AvailabilityWindowDTO{
			Day:   scheduling.WeekdayName(w.Weekday),
			Start: scheduling.FormatClock(w.StartMinute),
			End:   scheduling.FormatClock(w.EndMinute),
		}
	}
	return out
}

func windowsFromDTO(in []dto.AvailabilityWindowDTO) ([]entity.AvailabilityWindow, error) {
	windows := make([]entity.AvailabilityWindow, 0, len(in))
	for _, w := range in {
		day, err := scheduling.ParseWeekday(w.Day)
		if err != nil {
			return nil, apperror.Validation(err.Error(), nil)
		}
		start, err := scheduling.ParseClock(w.Start)
		if err != nil {
			return nil, apperror.Validation(err.Error(), nil)
		}
		end, err := scheduling.ParseClock(w.End)
		if err != nil {
			return nil, apperror.Validation(err.Error(), nil)
		}
		if start >= end {
			return nil, apperror.Validation(fmt.Sprintf("window %s %s-%s must end after it starts", w.Day, w.Start, w.End), nil)
		}
		windows = append(windows, entity.AvailabilityWindow{
			Id:          uuid.New(),
			Weekday:     day,
			StartMinute: start,
			EndMinute:   end,
		})
	}
	return windows, nil
}

func (s *mentorService) profileToResponse(profile *entity.MentorProfile, fullName string) *dto.MentorProfileResponse {
	return &dto.MentorProfileResponse{
		Id:             profile.Id,
		UserId:         profile.UserId,
		FullName:       fullName,
		Headline:       profile.Headline,
		Bio:            profile.Bio,
		HourlyRate:     profile.HourlyRate,
		Currency:       profile.Currency,
		Expertise:      profile.Expertise,
		Languages:      profile.Languages,
		Certifications: profile.Certifications,
		Achievements:   profile.Achievements,
		SocialLinks: dto.SocialLinksDTO{
			LinkedIn: profile.SocialLinks.LinkedIn,
			GitHub:   profile.SocialLinks.GitHub,
			Website:  profile.SocialLinks.Website,
			Twitter:  profile.SocialLinks.Twitter,
		},
		Preferences: dto.MentorPreferencesDTO{
			TeachingStyle:          profile.Preferences.TeachingStyle,
			DefaultSessionDuration: profile.Preferences.DefaultSessionDuration,
			MaxStudentsPerSession:  profile.Preferences.MaxStudentsPerSession,
			CommunicationChannel:   profile.Preferences.CommunicationChannel,
		},
		Availability: windowsToDTO(profile.Availability),
		Rating:       profile.Rating,
		RatingCount:  profile.RatingCount,
		Verified:     profile.Verified,
		Active:       profile.Active,
		CreatedAt:    profile.CreatedAt,
		UpdatedAt:    profile.UpdatedAt,
	}
}

// loadOrCreateProfile returns the mentor's profile, creating it with default
// availability on first access. The mentor must be an existing user with the
// mentor role; anything else is NotFound to the caller.
func (s *mentorService) loadOrCreateProfile(ctx context.Context, uow unitofwork.UnitOfWork, mentorUserId uuid.UUID) (*entity.MentorProfile, *entity.User, error) {
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: mentorUserId})
	if err != nil {
		return nil, nil, err
	}
	if user == nil || user.Role != entity.UserRoleMentor {
		return nil, nil, apperror.NotFound("mentor not found")
	}

	profile, err := uow.MentorProfileRepository().FindOne(ctx, specification.UserOwnedBy{UserID: mentorUserId})
	if err != nil {
		return nil, nil, err
	}
	if profile != nil {
		return profile, user, nil
	}

	profile = &entity.MentorProfile{
		Id:           uuid.New(),
		UserId:       mentorUserId,
		Currency:     "USD",
		Expertise:    []string{},
		Languages:    []string{},
		Availability: entity.DefaultAvailability(),
		Active:       true,
		CreatedAt:    time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}
	if err := uow.MentorProfileRepository().Create(ctx, profile); err != nil {
		uow.Rollback()
		return nil, nil, err
	}
	if err := uow.MentorProfileRepository().ReplaceAvailability(ctx, profile.Id, profile.Availability); err != nil {
		uow.Rollback()
		return nil, nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, nil, err
	}

	return profile, user, nil
}

func (s *mentorService) GetProfile(ctx context.Context, mentorUserId uuid.UUID) (*dto.MentorProfileResponse, error) {
	if cached, ok := s.profileCache.Get(mentorProfileCacheKey(mentorUserId)); ok {
		return cached.(*dto.MentorProfileResponse), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	profile, user, err := s.loadOrCreateProfile(ctx, uow, mentorUserId)
	if err != nil {
		return nil, err
	}

	resp := s.profileToResponse(profile, user.FullName)
	s.profileCache.Set(mentorProfileCacheKey(mentorUserId), resp, gocache.DefaultExpiration)
	return resp, nil
}

func (s *mentorService) UpdateProfile(ctx context.Context, mentorUserId uuid.UUID, req *dto.UpdateMentorProfileRequest) (*dto.MentorProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	profile, user, err := s.loadOrCreateProfile(ctx, uow, mentorUserId)
	if err != nil {
		return nil, err
	}

	if req.Headline != nil {
		profile.Headline = *req.Headline
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.HourlyRate != nil {
		profile.HourlyRate = *req.HourlyRate
	}
	if req.Currency != nil {
		profile.Currency = *req.Currency
	}
	if req.Expertise != nil {
		profile.Expertise = req.Expertise
	}
	if req.Languages != nil {
		profile.Languages = req.Languages
	}
	if req.Certifications != nil {
		profile.Certifications = req.Certifications
	}
	if req.Achievements != nil {
		profile.Achievements = req.Achievements
	}
	if req.SocialLinks != nil {
		profile.SocialLinks = entity.SocialLinks{
			LinkedIn: req.SocialLinks.LinkedIn,
			GitHub:   req.SocialLinks.GitHub,
			Website:  req.SocialLinks.Website,
			Twitter:  req.SocialLinks.Twitter,
		}
	}
	if req.Preferences != nil {
		profile.Preferences = entity.MentorPreferences{
			TeachingStyle:          req.Preferences.TeachingStyle,
			DefaultSessionDuration: req.Preferences.DefaultSessionDuration,
			MaxStudentsPerSession:  req.Preferences.MaxStudentsPerSession,
			CommunicationChannel:   req.Preferences.CommunicationChannel,
		}
	}
	if req.Active != nil {
		profile.Active = *req.Active
	}
	now := time.Now()
	profile.UpdatedAt = &now

	if err := uow.MentorProfileRepository().Update(ctx, profile); err != nil {
		return nil, err
	}

	s.profileCache.Delete(mentorProfileCacheKey(mentorUserId))
	return s.profileToResponse(profile, user.FullName), nil
}

func (s *mentorService) GetAvailability(ctx context.Context, mentorUserId uuid.UUID) (*dto.MentorAvailabilityResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	profile, _, err := s.loadOrCreateProfile(ctx, uow, mentorUserId)
	if err != nil {
		return nil, err
	}

	return &dto.MentorAvailabilityResponse{
		MentorId: mentorUserId,
		Windows:  windowsToDTO(profile.Availability),
	}, nil
}

func (s *mentorService) UpdateAvailability(ctx context.Context, mentorUserId uuid.UUID, req *dto.UpdateAvailabilityRequest) (*dto.MentorAvailabilityResponse, error) {
	windows, err := windowsFromDTO(req.Windows)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	profile, _, err := s.loadOrCreateProfile(ctx, uow, mentorUserId)
	if err != nil {
		return nil, err
	}

	if err := uow.MentorProfileRepository().ReplaceAvailability(ctx, profile.Id, windows); err != nil {
		return nil, err
	}

	s.profileCache.Delete(mentorProfileCacheKey(mentorUserId))
	return &dto.MentorAvailabilityResponse{
		MentorId: mentorUserId,
		Windows:  windowsToDTO(windows),
	}, nil
}

func (s *mentorService) ListMentors(ctx context.Context, limit, offset int) (*dto.ListMentorsResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	total, err := uow.MentorProfileRepository().Count(ctx, specification.Filter("active", true))
	if err != nil {
		return nil, err
	}

	profiles, err := uow.MentorProfileRepository().FindAll(ctx,
		specification.Filter("active", true),
		specification.OrderBy{Field: "rating", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, err
	}

	items := make([]dto.MentorListItemResponse, 0, len(profiles))
	for _, p := range profiles {
		item := dto.MentorListItemResponse{
			Id:          p.Id,
			UserId:      p.UserId,
			Headline:    p.Headline,
			HourlyRate:  p.HourlyRate,
			Currency:    p.Currency,
			Expertise:   p.Expertise,
			Rating:      p.Rating,
			RatingCount: p.RatingCount,
			Verified:    p.Verified,
		}
		if user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: p.UserId}); err == nil && user != nil {
			item.FullName = user.FullName
		}
		items = append(items, item)
	}

	return &dto.ListMentorsResponse{Mentors: items, Total: total}, nil
}
