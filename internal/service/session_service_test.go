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

type sessionEnv struct {
	store     *fakeStore
	svc       ISessionService
	mentorId  uuid.UUID
	studentId uuid.UUID
}

func newSessionEnv(t *testing.T) *sessionEnv {
	t.Helper()
	store := newFakeStore()

	mentor := &entity.User{Id: uuid.New(), Email: "mentor@example.com", FullName: "Mentor One", Role: entity.UserRoleMentor, Status: entity.UserStatusActive}
	student := &entity.User{Id: uuid.New(), Email: "student@example.com", FullName: "Student One", Role: entity.UserRoleStudent, Status: entity.UserStatusActive}
	store.users[mentor.Id] = mentor
	store.users[student.Id] = student

	svc := NewSessionService(&fakeFactory{store: store}, nil, nil, nil, gocache.New(time.Minute, time.Minute))
	return &sessionEnv{store: store, svc: svc, mentorId: mentor.Id, studentId: student.Id}
}

func (e *sessionEnv) seedBooking(start, end time.Time, status entity.BookingStatus) *entity.Booking {
	b := &entity.Booking{
		Id:              uuid.New(),
		Origin:          entity.OriginDirectSession,
		MentorId:        e.mentorId,
		StudentId:       e.studentId,
		Title:           "Existing session",
		StartTime:       start,
		EndTime:         end,
		DurationMinutes: int(end.Sub(start).Minutes()),
		Type:            entity.SessionTypeVideo,
		Status:          status,
		Category:        entity.CategoryMeeting,
		Priority:        entity.PriorityMedium,
		PaymentStatus:   entity.PaymentStatusNone,
		CreatedAt:       time.Now(),
	}
	e.store.bookings[b.Id] = b
	return b
}

func createReq(studentId uuid.UUID, start, end time.Time) *dto.CreateSessionRequest {
	return &dto.CreateSessionRequest{
		StudentId:       studentId,
		Title:           "Architecture review",
		StartTime:       start,
		EndTime:         end,
		DurationMinutes: int(end.Sub(start).Minutes()),
		Type:            "video",
	}
}

var sessionBase = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func TestCreateSession(t *testing.T) {
	env := newSessionEnv(t)

	resp, err := env.svc.CreateSession(context.Background(), env.mentorId, createReq(env.studentId, sessionBase, sessionBase.Add(time.Hour)))
	require.NoError(t, err)

	assert.Equal(t, string(entity.BookingStatusScheduled), resp.Status)
	assert.Equal(t, string(entity.OriginDirectSession), resp.Origin)
	assert.Equal(t, string(entity.CategoryMeeting), resp.Category)
	assert.Equal(t, string(entity.PriorityMedium), resp.Priority)
	assert.Len(t, env.store.bookings, 1)

	stored := env.store.bookings[resp.Id]
	require.NotNil(t, stored)
	assert.Equal(t, entity.PaymentStatusNone, stored.PaymentStatus)
}

func TestCreateSessionRejectsOverlap(t *testing.T) {
	env := newSessionEnv(t)
	existing := env.seedBooking(sessionBase, sessionBase.Add(time.Hour), entity.BookingStatusScheduled)

	_, err := env.svc.CreateSession(context.Background(), env.mentorId,
		createReq(env.studentId, sessionBase.Add(30*time.Minute), sessionBase.Add(90*time.Minute)))

	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindSlotConflict, appErr.Kind)

	// The rejected attempt must not leave anything behind.
	assert.Len(t, env.store.bookings, 1)
	assert.Equal(t, existing.StartTime, env.store.bookings[existing.Id].StartTime)
}

func TestCreateSessionAllowsTouchingBoundary(t *testing.T) {
	env := newSessionEnv(t)
	env.seedBooking(sessionBase, sessionBase.Add(time.Hour), entity.BookingStatusScheduled)

	// Back to back with the existing booking, [11:00, 12:00) after [10:00, 11:00).
	_, err := env.svc.CreateSession(context.Background(), env.mentorId,
		createReq(env.studentId, sessionBase.Add(time.Hour), sessionBase.Add(2*time.Hour)))
	require.NoError(t, err)
	assert.Len(t, env.store.bookings, 2)
}

func TestCreateSessionIgnoresCancelled(t *testing.T) {
	env := newSessionEnv(t)
	env.seedBooking(sessionBase, sessionBase.Add(time.Hour), entity.BookingStatusCancelled)

	_, err := env.svc.CreateSession(context.Background(), env.mentorId,
		createReq(env.studentId, sessionBase, sessionBase.Add(time.Hour)))
	require.NoError(t, err)
}

func TestCreateSessionDurationMismatch(t *testing.T) {
	env := newSessionEnv(t)

	req := createReq(env.studentId, sessionBase, sessionBase.Add(time.Hour))
	req.DurationMinutes = 90

	_, err := env.svc.CreateSession(context.Background(), env.mentorId, req)
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	assert.Empty(t, env.store.bookings)
}

func TestCreateSessionUnknownStudent(t *testing.T) {
	env := newSessionEnv(t)

	_, err := env.svc.CreateSession(context.Background(), env.mentorId,
		createReq(uuid.New(), sessionBase, sessionBase.Add(time.Hour)))
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindNotFound, appErr.Kind)
}

func TestUpdateSessionMentorOnly(t *testing.T) {
	env := newSessionEnv(t)
	booking := env.seedBooking(sessionBase, sessionBase.Add(time.Hour), entity.BookingStatusScheduled)

	newTitle := "Hijacked"
	_, err := env.svc.UpdateSession(context.Background(), env.studentId,
		&dto.UpdateSessionRequest{Id: booking.Id, Title: &newTitle})

	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindForbidden, appErr.Kind)
	assert.Equal(t, "Existing session", env.store.bookings[booking.Id].Title)
}

func TestUpdateSessionThirdPartyForbidden(t *testing.T) {
	env := newSessionEnv(t)
	booking := env.seedBooking(sessionBase, sessionBase.Add(time.Hour), entity.BookingStatusScheduled)

	status := "cancelled"
	_, err := env.svc.UpdateSession(context.Background(), uuid.New(),
		&dto.UpdateSessionRequest{Id: booking.Id, Status: &status})

	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindForbidden, appErr.Kind)
	assert.Equal(t, entity.BookingStatusScheduled, env.store.bookings[booking.Id].Status)
}

func TestUpdateSessionRescheduleConflict(t *testing.T) {
	env := newSessionEnv(t)
	env.seedBooking(sessionBase, sessionBase.Add(time.Hour), entity.BookingStatusScheduled)
	target := env.seedBooking(sessionBase.Add(2*time.Hour), sessionBase.Add(3*time.Hour), entity.BookingStatusScheduled)

	newStart := sessionBase.Add(30 * time.Minute)
	newEnd := sessionBase.Add(90 * time.Minute)
	duration := 60
	_, err := env.svc.UpdateSession(context.Background(), env.mentorId, &dto.UpdateSessionRequest{
		Id:              target.Id,
		StartTime:       &newStart,
		EndTime:         &newEnd,
		DurationMinutes: &duration,
	})

	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindSlotConflict, appErr.Kind)

	// Failed reschedule leaves the booking where it was.
	assert.Equal(t, target.StartTime, env.store.bookings[target.Id].StartTime)
}

func TestUpdateSessionRescheduleExcludesSelf(t *testing.T) {
	env := newSessionEnv(t)
	target := env.seedBooking(sessionBase, sessionBase.Add(time.Hour), entity.BookingStatusScheduled)

	// Shift by 15 minutes, still overlapping its own previous slot.
	newStart := sessionBase.Add(15 * time.Minute)
	newEnd := sessionBase.Add(75 * time.Minute)
	duration := 60
	resp, err := env.svc.UpdateSession(context.Background(), env.mentorId, &dto.UpdateSessionRequest{
		Id:              target.Id,
		StartTime:       &newStart,
		EndTime:         &newEnd,
		DurationMinutes: &duration,
	})
	require.NoError(t, err)
	assert.Equal(t, newStart, resp.StartTime)
	assert.Equal(t, newStart, env.store.bookings[target.Id].StartTime)
}

func TestUpdateSessionStateMachine(t *testing.T) {
	env := newSessionEnv(t)

	t.Run("terminal status locked", func(t *testing.T) {
		booking := env.seedBooking(sessionBase, sessionBase.Add(time.Hour), entity.BookingStatusCompleted)
		status := "cancelled"
		_, err := env.svc.UpdateSession(context.Background(), env.mentorId,
			&dto.UpdateSessionRequest{Id: booking.Id, Status: &status})
		appErr, ok := apperror.As(err)
		require.True(t, ok)
		assert.Equal(t, apperror.KindInvalidState, appErr.Kind)
	})

	t.Run("scheduled to in-progress", func(t *testing.T) {
		booking := env.seedBooking(sessionBase.Add(24*time.Hour), sessionBase.Add(25*time.Hour), entity.BookingStatusScheduled)
		status := "in-progress"
		resp, err := env.svc.UpdateSession(context.Background(), env.mentorId,
			&dto.UpdateSessionRequest{Id: booking.Id, Status: &status})
		require.NoError(t, err)
		assert.Equal(t, "in-progress", resp.Status)
	})

	t.Run("cancel records the cancelling party", func(t *testing.T) {
		booking := env.seedBooking(sessionBase.Add(48*time.Hour), sessionBase.Add(49*time.Hour), entity.BookingStatusScheduled)
		status := "cancelled"
		reason := "schedule clash"
		resp, err := env.svc.UpdateSession(context.Background(), env.mentorId,
			&dto.UpdateSessionRequest{Id: booking.Id, Status: &status, CancelReason: &reason})
		require.NoError(t, err)
		require.NotNil(t, resp.Cancellation)
		assert.Equal(t, env.mentorId, resp.Cancellation.CancelledBy)
		assert.Equal(t, "schedule clash", resp.Cancellation.Reason)
	})
}

func TestCancelledSessionFreesSlot(t *testing.T) {
	env := newSessionEnv(t)
	booking := env.seedBooking(sessionBase, sessionBase.Add(time.Hour), entity.BookingStatusScheduled)

	status := "cancelled"
	_, err := env.svc.UpdateSession(context.Background(), env.mentorId,
		&dto.UpdateSessionRequest{Id: booking.Id, Status: &status})
	require.NoError(t, err)

	_, err = env.svc.CreateSession(context.Background(), env.mentorId,
		createReq(env.studentId, sessionBase, sessionBase.Add(time.Hour)))
	require.NoError(t, err)
}

func TestGetSessionRestrictsToParties(t *testing.T) {
	env := newSessionEnv(t)
	booking := env.seedBooking(sessionBase, sessionBase.Add(time.Hour), entity.BookingStatusScheduled)

	_, err := env.svc.GetSession(context.Background(), env.studentId, booking.Id)
	require.NoError(t, err)

	_, err = env.svc.GetSession(context.Background(), uuid.New(), booking.Id)
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindForbidden, appErr.Kind)
}

func TestListSessionsFiltersOrigin(t *testing.T) {
	env := newSessionEnv(t)
	env.seedBooking(sessionBase, sessionBase.Add(time.Hour), entity.BookingStatusScheduled)

	mentorship := env.seedBooking(sessionBase.Add(3*time.Hour), sessionBase.Add(4*time.Hour), entity.BookingStatusScheduled)
	mentorship.Origin = entity.OriginMatchedMentorship

	resp, err := env.svc.ListSessions(context.Background(), env.studentId, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)
	require.Len(t, resp.Sessions, 1)
	assert.Equal(t, string(entity.OriginDirectSession), resp.Sessions[0].Origin)
}

func TestSubmitFeedback(t *testing.T) {
	env := newSessionEnv(t)

	profile := &entity.MentorProfile{
		Id:       uuid.New(),
		UserId:   env.mentorId,
		Currency: "USD",
		Active:   true,
	}
	env.store.profiles[profile.Id] = profile

	t.Run("only after completion", func(t *testing.T) {
		booking := env.seedBooking(sessionBase, sessionBase.Add(time.Hour), entity.BookingStatusScheduled)
		_, err := env.svc.SubmitFeedback(context.Background(), env.studentId,
			&dto.SubmitFeedbackRequest{Id: booking.Id, Rating: 5})
		appErr, ok := apperror.As(err)
		require.True(t, ok)
		assert.Equal(t, apperror.KindInvalidState, appErr.Kind)
		assert.Zero(t, env.store.profiles[profile.Id].Rating)
	})

	t.Run("student only", func(t *testing.T) {
		booking := env.seedBooking(sessionBase.Add(24*time.Hour), sessionBase.Add(25*time.Hour), entity.BookingStatusCompleted)
		_, err := env.svc.SubmitFeedback(context.Background(), env.mentorId,
			&dto.SubmitFeedbackRequest{Id: booking.Id, Rating: 5})
		appErr, ok := apperror.As(err)
		require.True(t, ok)
		assert.Equal(t, apperror.KindForbidden, appErr.Kind)
	})

	t.Run("updates the mentor aggregate", func(t *testing.T) {
		booking := env.seedBooking(sessionBase.Add(48*time.Hour), sessionBase.Add(49*time.Hour), entity.BookingStatusCompleted)
		resp, err := env.svc.SubmitFeedback(context.Background(), env.studentId,
			&dto.SubmitFeedbackRequest{Id: booking.Id, Rating: 4, Comment: "solid"})
		require.NoError(t, err)
		require.NotNil(t, resp.Feedback)
		assert.Equal(t, 4, resp.Feedback.Rating)

		assert.Equal(t, 4.0, env.store.profiles[profile.Id].Rating)
		assert.Equal(t, 1, env.store.profiles[profile.Id].RatingCount)

		second := env.seedBooking(sessionBase.Add(72*time.Hour), sessionBase.Add(73*time.Hour), entity.BookingStatusCompleted)
		_, err = env.svc.SubmitFeedback(context.Background(), env.studentId,
			&dto.SubmitFeedbackRequest{Id: second.Id, Rating: 5})
		require.NoError(t, err)

		assert.Equal(t, 4.5, env.store.profiles[profile.Id].Rating)
		assert.Equal(t, 2, env.store.profiles[profile.Id].RatingCount)
	})

	t.Run("rejects a second submission", func(t *testing.T) {
		booking := env.seedBooking(sessionBase.Add(96*time.Hour), sessionBase.Add(97*time.Hour), entity.BookingStatusCompleted)
		_, err := env.svc.SubmitFeedback(context.Background(), env.studentId,
			&dto.SubmitFeedbackRequest{Id: booking.Id, Rating: 3})
		require.NoError(t, err)

		ratingBefore := env.store.profiles[profile.Id].Rating
		_, err = env.svc.SubmitFeedback(context.Background(), env.studentId,
			&dto.SubmitFeedbackRequest{Id: booking.Id, Rating: 1})
		appErr, ok := apperror.As(err)
		require.True(t, ok)
		assert.Equal(t, apperror.KindInvalidState, appErr.Kind)
		assert.Equal(t, ratingBefore, env.store.profiles[profile.Id].Rating)
	})
}
