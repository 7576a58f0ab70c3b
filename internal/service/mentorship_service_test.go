package service

import (
	"context"
	"crypto/sha512"
	"fmt"
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

type mentorshipEnv struct {
	store     *fakeStore
	svc       IMentorshipService
	mentorId  uuid.UUID
	studentId uuid.UUID
	profileId uuid.UUID
}

// 2026-03-02 is a Monday.
const bookingDate = "2026-03-02"

var bookingDay = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func newMentorshipEnv(t *testing.T) *mentorshipEnv {
	t.Helper()
	store := newFakeStore()

	mentor := &entity.User{Id: uuid.New(), Email: "mentor@example.com", FullName: "Mentor One", Role: entity.UserRoleMentor, Status: entity.UserStatusActive}
	student := &entity.User{Id: uuid.New(), Email: "student@example.com", FullName: "Student One", Role: entity.UserRoleStudent, Status: entity.UserStatusActive}
	store.users[mentor.Id] = mentor
	store.users[student.Id] = student

	profile := &entity.MentorProfile{
		Id:         uuid.New(),
		UserId:     mentor.Id,
		HourlyRate: 60,
		Currency:   "USD",
		Active:     true,
		Availability: []entity.AvailabilityWindow{
			{Id: uuid.New(), Weekday: time.Monday, StartMinute: 9 * 60, EndMinute: 17 * 60},
		},
	}
	store.profiles[profile.Id] = profile

	svc := NewMentorshipService(&fakeFactory{store: store}, nil, nil, nil, gocache.New(time.Minute, time.Minute))
	return &mentorshipEnv{store: store, svc: svc, mentorId: mentor.Id, studentId: student.Id, profileId: profile.Id}
}

func bookReq(mentorId uuid.UUID, start, end string, duration int) *dto.BookMentorshipRequest {
	return &dto.BookMentorshipRequest{
		MentorId:        mentorId,
		Date:            bookingDate,
		StartTime:       start,
		EndTime:         end,
		DurationMinutes: duration,
		Topic:           "Scaling a payment service",
	}
}

func (e *mentorshipEnv) seedMentorship(start, end time.Time, status entity.BookingStatus) *entity.Booking {
	b := &entity.Booking{
		Id:              uuid.New(),
		Origin:          entity.OriginMatchedMentorship,
		MentorId:        e.mentorId,
		StudentId:       e.studentId,
		Title:           "Existing mentorship",
		StartTime:       start,
		EndTime:         end,
		DurationMinutes: int(end.Sub(start).Minutes()),
		Type:            entity.SessionTypeVideo,
		Status:          status,
		Category:        entity.CategoryConsultation,
		Priority:        entity.PriorityMedium,
		PaymentStatus:   entity.PaymentStatusPaid,
		CreatedAt:       time.Now(),
	}
	e.store.bookings[b.Id] = b
	return b
}

func TestBookMentorship(t *testing.T) {
	env := newMentorshipEnv(t)

	resp, err := env.svc.Book(context.Background(), env.studentId, bookReq(env.mentorId, "10:00", "11:30", 90))
	require.NoError(t, err)

	assert.Equal(t, string(entity.BookingStatusScheduled), resp.Status)
	assert.Equal(t, bookingDate, resp.Date)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "11:30", resp.EndTime)

	// 60/hr for 90 minutes, frozen at creation.
	assert.Equal(t, 90.0, resp.Payment.Amount)
	assert.Equal(t, "USD", resp.Payment.Currency)
	assert.Equal(t, string(entity.PaymentStatusPending), resp.Payment.Status)

	stored := env.store.bookings[resp.Id]
	require.NotNil(t, stored)
	assert.Equal(t, entity.OriginMatchedMentorship, stored.Origin)
	assert.Equal(t, entity.CategoryConsultation, stored.Category)
	assert.Equal(t, 90.0, stored.PaymentAmount)
}

func TestBookMentorshipRateChangeDoesNotTouchAmount(t *testing.T) {
	env := newMentorshipEnv(t)

	resp, err := env.svc.Book(context.Background(), env.studentId, bookReq(env.mentorId, "10:00", "11:00", 60))
	require.NoError(t, err)
	assert.Equal(t, 60.0, resp.Payment.Amount)

	env.store.profiles[env.profileId].HourlyRate = 120

	assert.Equal(t, 60.0, env.store.bookings[resp.Id].PaymentAmount)
}

func TestBookMentorshipFreeMentor(t *testing.T) {
	env := newMentorshipEnv(t)
	env.store.profiles[env.profileId].HourlyRate = 0

	resp, err := env.svc.Book(context.Background(), env.studentId, bookReq(env.mentorId, "10:00", "11:00", 60))
	require.NoError(t, err)
	assert.Equal(t, 0.0, resp.Payment.Amount)
	assert.Equal(t, string(entity.PaymentStatusNone), resp.Payment.Status)
}

func TestBookMentorshipOutsideAvailability(t *testing.T) {
	env := newMentorshipEnv(t)

	_, err := env.svc.Book(context.Background(), env.studentId, bookReq(env.mentorId, "16:30", "17:30", 60))
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindSlotUnavailable, appErr.Kind)
	assert.Empty(t, env.store.bookings)
}

func TestBookMentorshipDurationMismatch(t *testing.T) {
	env := newMentorshipEnv(t)

	_, err := env.svc.Book(context.Background(), env.studentId, bookReq(env.mentorId, "10:00", "11:00", 90))
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
}

func TestBookMentorshipInactiveMentor(t *testing.T) {
	env := newMentorshipEnv(t)
	env.store.profiles[env.profileId].Active = false

	_, err := env.svc.Book(context.Background(), env.studentId, bookReq(env.mentorId, "10:00", "11:00", 60))
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindInvalidState, appErr.Kind)
}

func TestBookMentorshipUnknownMentor(t *testing.T) {
	env := newMentorshipEnv(t)

	_, err := env.svc.Book(context.Background(), env.studentId, bookReq(uuid.New(), "10:00", "11:00", 60))
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindNotFound, appErr.Kind)

	// A student id is not a mentor either.
	_, err = env.svc.Book(context.Background(), env.studentId, bookReq(env.studentId, "10:00", "11:00", 60))
	appErr, ok = apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindNotFound, appErr.Kind)
}

func TestBookMentorshipConflictsAcrossOrigins(t *testing.T) {
	env := newMentorshipEnv(t)

	// A direct session occupies 10:00 to 11:00 on the same calendar.
	direct := &entity.Booking{
		Id:              uuid.New(),
		Origin:          entity.OriginDirectSession,
		MentorId:        env.mentorId,
		StudentId:       env.studentId,
		Title:           "Direct session",
		StartTime:       bookingDay.Add(10 * time.Hour),
		EndTime:         bookingDay.Add(11 * time.Hour),
		DurationMinutes: 60,
		Status:          entity.BookingStatusScheduled,
	}
	env.store.bookings[direct.Id] = direct

	_, err := env.svc.Book(context.Background(), env.studentId, bookReq(env.mentorId, "10:30", "11:30", 60))
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindSlotConflict, appErr.Kind)
	assert.Len(t, env.store.bookings, 1)

	// Touching the occupied slot is fine.
	_, err = env.svc.Book(context.Background(), env.studentId, bookReq(env.mentorId, "11:00", "12:00", 60))
	require.NoError(t, err)
}

func TestUpdateMentorshipStatusPermissions(t *testing.T) {
	env := newMentorshipEnv(t)

	t.Run("either party may cancel", func(t *testing.T) {
		booking := env.seedMentorship(bookingDay.Add(10*time.Hour), bookingDay.Add(11*time.Hour), entity.BookingStatusScheduled)
		resp, err := env.svc.UpdateStatus(context.Background(), env.studentId, &dto.UpdateMentorshipStatusRequest{
			Id:           booking.Id,
			Status:       "cancelled",
			CancelReason: "found another mentor",
		})
		require.NoError(t, err)
		require.NotNil(t, resp.Cancellation)
		assert.Equal(t, env.studentId, resp.Cancellation.CancelledBy)
	})

	t.Run("only the mentor completes", func(t *testing.T) {
		booking := env.seedMentorship(bookingDay.Add(13*time.Hour), bookingDay.Add(14*time.Hour), entity.BookingStatusScheduled)
		_, err := env.svc.UpdateStatus(context.Background(), env.studentId, &dto.UpdateMentorshipStatusRequest{
			Id:     booking.Id,
			Status: "completed",
		})
		appErr, ok := apperror.As(err)
		require.True(t, ok)
		assert.Equal(t, apperror.KindForbidden, appErr.Kind)
		assert.Equal(t, entity.BookingStatusScheduled, env.store.bookings[booking.Id].Status)

		resp, err := env.svc.UpdateStatus(context.Background(), env.mentorId, &dto.UpdateMentorshipStatusRequest{
			Id:     booking.Id,
			Status: "completed",
		})
		require.NoError(t, err)
		assert.Equal(t, "completed", resp.Status)
	})

	t.Run("third party is not a participant", func(t *testing.T) {
		booking := env.seedMentorship(bookingDay.Add(15*time.Hour), bookingDay.Add(16*time.Hour), entity.BookingStatusScheduled)
		_, err := env.svc.UpdateStatus(context.Background(), uuid.New(), &dto.UpdateMentorshipStatusRequest{
			Id:     booking.Id,
			Status: "cancelled",
		})
		appErr, ok := apperror.As(err)
		require.True(t, ok)
		assert.Equal(t, apperror.KindForbidden, appErr.Kind)
	})

	t.Run("terminal status locked", func(t *testing.T) {
		booking := env.seedMentorship(bookingDay.Add(17*time.Hour), bookingDay.Add(18*time.Hour), entity.BookingStatusCancelled)
		_, err := env.svc.UpdateStatus(context.Background(), env.mentorId, &dto.UpdateMentorshipStatusRequest{
			Id:     booking.Id,
			Status: "in-progress",
		})
		appErr, ok := apperror.As(err)
		require.True(t, ok)
		assert.Equal(t, apperror.KindInvalidState, appErr.Kind)
	})
}

func TestHandlePaymentNotification(t *testing.T) {
	env := newMentorshipEnv(t)
	t.Setenv("MIDTRANS_SERVER_KEY", "test-server-key")

	booking := env.seedMentorship(bookingDay.Add(10*time.Hour), bookingDay.Add(11*time.Hour), entity.BookingStatusScheduled)
	booking.PaymentStatus = entity.PaymentStatusPending
	env.store.bookings[booking.Id] = booking

	sign := func(orderId, statusCode, grossAmount string) string {
		sum := sha512.Sum512([]byte(orderId + statusCode + grossAmount + "test-server-key"))
		return fmt.Sprintf("%x", sum)
	}

	t.Run("settlement marks paid", func(t *testing.T) {
		err := env.svc.HandlePaymentNotification(context.Background(), &dto.PaymentNotificationRequest{
			OrderId:           booking.Id.String(),
			TransactionStatus: "settlement",
			StatusCode:        "200",
			GrossAmount:       "60.00",
			SignatureKey:      sign(booking.Id.String(), "200", "60.00"),
		})
		require.NoError(t, err)
		assert.Equal(t, entity.PaymentStatusPaid, env.store.bookings[booking.Id].PaymentStatus)
	})

	t.Run("invalid signature rejected", func(t *testing.T) {
		err := env.svc.HandlePaymentNotification(context.Background(), &dto.PaymentNotificationRequest{
			OrderId:           booking.Id.String(),
			TransactionStatus: "settlement",
			StatusCode:        "200",
			GrossAmount:       "60.00",
			SignatureKey:      "forged",
		})
		appErr, ok := apperror.As(err)
		require.True(t, ok)
		assert.Equal(t, apperror.KindUnauthorized, appErr.Kind)
	})

	t.Run("expire marks failed", func(t *testing.T) {
		err := env.svc.HandlePaymentNotification(context.Background(), &dto.PaymentNotificationRequest{
			OrderId:           booking.Id.String(),
			TransactionStatus: "expire",
			StatusCode:        "407",
			GrossAmount:       "60.00",
			SignatureKey:      sign(booking.Id.String(), "407", "60.00"),
		})
		require.NoError(t, err)
		assert.Equal(t, entity.PaymentStatusFailed, env.store.bookings[booking.Id].PaymentStatus)
	})
}
