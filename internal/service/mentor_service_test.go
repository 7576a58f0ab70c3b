package service

import (
	"context"
	"testing"
	"time"

	"hustlee-be/internal/dto"
	"hustlee-be/internal/entity"
	"hustlee-be/internal/pkg/apperror"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMentorEnv(t *testing.T) (*fakeStore, IMentorService, uuid.UUID) {
	t.Helper()
	store := newFakeStore()

	mentor := &entity.User{Id: uuid.New(), Email: "mentor@example.com", FullName: "Mentor One", Role: entity.UserRoleMentor, Status: entity.UserStatusActive}
	store.users[mentor.Id] = mentor

	svc := NewMentorService(&fakeFactory{store: store}, gocache.New(time.Minute, time.Minute))
	return store, svc, mentor.Id
}

func TestGetProfileLazilyCreates(t *testing.T) {
	store, svc, mentorId := newMentorEnv(t)
	require.Empty(t, store.profiles)

	resp, err := svc.GetProfile(context.Background(), mentorId)
	require.NoError(t, err)

	assert.Equal(t, mentorId, resp.UserId)
	assert.Equal(t, "Mentor One", resp.FullName)
	assert.True(t, resp.Active)
	assert.Len(t, store.profiles, 1)

	// Default schedule: Monday through Friday, 09:00 to 17:00.
	require.Len(t, resp.Availability, 5)
	assert.Equal(t, "monday", resp.Availability[0].Day)
	assert.Equal(t, "09:00", resp.Availability[0].Start)
	assert.Equal(t, "17:00", resp.Availability[0].End)
	assert.Equal(t, "friday", resp.Availability[4].Day)

	// A second read reuses the stored profile instead of creating another.
	again, err := svc.GetProfile(context.Background(), mentorId)
	require.NoError(t, err)
	assert.Equal(t, resp.Id, again.Id)
	assert.Len(t, store.profiles, 1)
}

func TestGetProfileRequiresMentorRole(t *testing.T) {
	store, svc, _ := newMentorEnv(t)

	student := &entity.User{Id: uuid.New(), Email: "student@example.com", FullName: "Student", Role: entity.UserRoleStudent}
	store.users[student.Id] = student

	_, err := svc.GetProfile(context.Background(), student.Id)
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindNotFound, appErr.Kind)

	_, err = svc.GetProfile(context.Background(), uuid.New())
	appErr, ok = apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindNotFound, appErr.Kind)
}

func TestUpdateProfilePartial(t *testing.T) {
	store, svc, mentorId := newMentorEnv(t)

	headline := "Staff Engineer"
	rate := 80.0
	resp, err := svc.UpdateProfile(context.Background(), mentorId, &dto.UpdateMentorProfileRequest{
		Headline:   &headline,
		HourlyRate: &rate,
	})
	require.NoError(t, err)
	assert.Equal(t, "Staff Engineer", resp.Headline)
	assert.Equal(t, 80.0, resp.HourlyRate)
	// Untouched fields keep their defaults.
	assert.Equal(t, "USD", resp.Currency)

	stored := store.profiles[resp.Id]
	require.NotNil(t, stored)
	assert.Equal(t, 80.0, stored.HourlyRate)
}

func TestUpdateAvailabilityReplacesWindows(t *testing.T) {
	store, svc, mentorId := newMentorEnv(t)

	resp, err := svc.UpdateAvailability(context.Background(), mentorId, &dto.UpdateAvailabilityRequest{
		Windows: []dto.AvailabilityWindowDTO{
			{Day: "saturday", Start: "08:00", End: "12:00"},
			{Day: "sunday", Start: "14:00", End: "18:00"},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Windows, 2)

	var profile *entity.MentorProfile
	for _, p := range store.profiles {
		profile = p
	}
	require.NotNil(t, profile)
	require.Len(t, profile.Availability, 2)

	// Old default windows are gone; reads now reflect the weekend schedule.
	avail, err := svc.GetAvailability(context.Background(), mentorId)
	require.NoError(t, err)
	require.Len(t, avail.Windows, 2)
	assert.Equal(t, "sunday", avail.Windows[0].Day)
	assert.Equal(t, "saturday", avail.Windows[1].Day)
}

func TestUpdateAvailabilityValidation(t *testing.T) {
	_, svc, mentorId := newMentorEnv(t)

	tests := []struct {
		name   string
		window dto.AvailabilityWindowDTO
	}{
		{"inverted range", dto.AvailabilityWindowDTO{Day: "monday", Start: "12:00", End: "09:00"}},
		{"unknown day", dto.AvailabilityWindowDTO{Day: "someday", Start: "09:00", End: "12:00"}},
		{"bad clock", dto.AvailabilityWindowDTO{Day: "monday", Start: "9am", End: "12:00"}},
		{"out of range clock", dto.AvailabilityWindowDTO{Day: "monday", Start: "09:00", End: "25:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateAvailability(context.Background(), mentorId, &dto.UpdateAvailabilityRequest{
				Windows: []dto.AvailabilityWindowDTO{tt.window},
			})
			appErr, ok := apperror.As(err)
			require.True(t, ok)
			assert.Equal(t, apperror.KindValidation, appErr.Kind)
		})
	}
}

func TestListMentors(t *testing.T) {
	store, svc, _ := newMentorEnv(t)

	addMentor := func(name string, rating float64, active bool) {
		user := &entity.User{Id: uuid.New(), Email: name + "@example.com", FullName: name, Role: entity.UserRoleMentor}
		store.users[user.Id] = user
		profile := &entity.MentorProfile{
			Id:       uuid.New(),
			UserId:   user.Id,
			Currency: "USD",
			Rating:   rating,
			Active:   active,
		}
		store.profiles[profile.Id] = profile
	}

	addMentor("Low", 3.2, true)
	addMentor("High", 4.8, true)
	addMentor("Hidden", 5.0, false)

	resp, err := svc.ListMentors(context.Background(), 20, 0)
	require.NoError(t, err)

	assert.Equal(t, int64(2), resp.Total)
	require.Len(t, resp.Mentors, 2)
	assert.Equal(t, "High", resp.Mentors[0].FullName)
	assert.Equal(t, "Low", resp.Mentors[1].FullName)
}
