package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hustlee-be/internal/dto"
	"hustlee-be/internal/entity"
	"hustlee-be/internal/pkg/apperror"
	"hustlee-be/internal/repository/specification"
	"hustlee-be/internal/repository/unitofwork"
	"hustlee-be/pkg/events"
	"hustlee-be/pkg/lock"
	pktNats "hustlee-be/pkg/nats"
	"hustlee-be/pkg/scheduling"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

type ISessionService interface {
	CreateSession(ctx context.Context, mentorUserId uuid.UUID, req *dto.CreateSessionRequest) (*dto.SessionResponse, error)
	GetSession(ctx context.Context, callerId uuid.UUID, id uuid.UUID) (*dto.SessionResponse, error)
	ListSessions(ctx context.Context, callerId uuid.UUID, limit, offset int) (*dto.ListSessionsResponse, error)
	UpdateSession(ctx context.Context, callerId uuid.UUID, req *dto.UpdateSessionRequest) (*dto.SessionResponse, error)
	DeleteSession(ctx context.Context, callerId uuid.UUID, id uuid.UUID) error
	SubmitFeedback(ctx context.Context, callerId uuid.UUID, req *dto.SubmitFeedbackRequest) (*dto.SessionResponse, error)
}

type sessionService struct {
	uowFactory       unitofwork.RepositoryFactory
	calendarLock     *lock.CalendarLock
	eventPublisher   *pktNats.Publisher
	publisherService IPublisherService
	profileCache     *gocache.Cache
}

func NewSessionService(
	uowFactory unitofwork.RepositoryFactory,
	calendarLock *lock.CalendarLock,
	eventPublisher *pktNats.Publisher,
	publisherService IPublisherService,
	profileCache *gocache.Cache,
) ISessionService {
	return &sessionService{
		uowFactory:       uowFactory,
		calendarLock:     calendarLock,
		eventPublisher:   eventPublisher,
		publisherService: publisherService,
		profileCache:     profileCache,
	}
}

// validateTimeRange rejects ranges that end before they start or whose declared
// duration disagrees with the actual span.
func validateTimeRange(start, end time.Time, durationMinutes int) error {
	if !end.After(start) {
		return apperror.Validation("end_time must be after start_time", nil)
	}
	if int(end.Sub(start).Minutes()) != durationMinutes {
		return apperror.Validation("duration_minutes must equal the span between start_time and end_time", nil)
	}
	return nil
}

// findBookingConflict scans the mentor's non-cancelled bookings for a range
// overlap. The DB prefilters on the half-open interval; the final verdict is
// the in-memory check so self-exclusion and status skipping live in one place.
func findBookingConflict(ctx context.Context, uow unitofwork.UnitOfWork, mentorId uuid.UUID, start, end time.Time, excludeId uuid.UUID) (*entity.Booking, error) {
	candidates, err := uow.BookingRepository().FindAll(ctx,
		specification.MentorIs{MentorID: mentorId},
		specification.StatusNot{Status: string(entity.BookingStatusCancelled)},
		specification.OverlappingRange{Start: start, End: end},
	)
	if err != nil {
		return nil, err
	}
	return scheduling.FindConflict(candidates, start, end, excludeId), nil
}

// lockCalendar serializes the scan-then-insert sequence per mentor. Returns a
// release func; when the lock is contended the booking attempt fails fast with
// SlotConflict rather than queueing.
func (s *sessionService) lockCalendar(ctx context.Context, mentorId uuid.UUID) (func(), error) {
	if s.calendarLock == nil {
		return func() {}, nil
	}
	token, err := s.calendarLock.Acquire(ctx, mentorId)
	if err != nil {
		if err == lock.ErrLockHeld {
			return nil, apperror.SlotConflict("another booking for this mentor is in flight, try again")
		}
		return nil, err
	}
	return func() {
		if relErr := s.calendarLock.Release(context.Background(), mentorId, token); relErr != nil {
			fmt.Printf("[WARN] failed to release calendar lock for %s: %v\n", mentorId, relErr)
		}
	}, nil
}

func bookingToSessionResponse(b *entity.Booking) *dto.SessionResponse {
	resp := &dto.SessionResponse{
		Id:              b.Id,
		Origin:          string(b.Origin),
		MentorId:        b.MentorId,
		StudentId:       b.StudentId,
		Title:           b.Title,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
		DurationMinutes: b.DurationMinutes,
		Type:            string(b.Type),
		Status:          string(b.Status),
		Category:        string(b.Category),
		Priority:        string(b.Priority),
		Agenda:          b.Agenda,
		ReminderEnabled: b.ReminderEnabled,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
	if b.Description != nil {
		resp.Description = *b.Description
	}
	if b.MeetingLink != nil {
		resp.MeetingLink = *b.MeetingLink
	}
	if b.Notes != nil {
		resp.Notes = *b.Notes
	}
	if b.Feedback != nil {
		resp.Feedback = &dto.FeedbackResponse{
			Rating:      b.Feedback.Rating,
			Comment:     b.Feedback.Comment,
			SubmittedAt: b.Feedback.SubmittedAt,
		}
	}
	if b.Cancellation != nil {
		resp.Cancellation = &dto.CancellationResponse{
			Reason:      b.Cancellation.Reason,
			CancelledBy: b.Cancellation.CancelledBy,
			CancelledAt: b.Cancellation.CancelledAt,
		}
	}
	for _, a := range b.Attachments {
		resp.Attachments = append(resp.Attachments, dto.AttachmentDTO{Name: a.Name, URL: a.URL, Type: a.Type})
	}
	return resp
}

func attachmentsFromDTO(in []dto.AttachmentDTO) []entity.Attachment {
	if in == nil {
		return nil
	}
	out := make([]entity.Attachment, len(in))
	for i, a := range in {
		out[i] = entity.Attachment{Name: a.Name, URL: a.URL, Type: a.Type}
	}
	return out
}

func (s *sessionService) CreateSession(ctx context.Context, mentorUserId uuid.UUID, req *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	if err := validateTimeRange(req.StartTime, req.EndTime, req.DurationMinutes); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	student, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: req.StudentId})
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperror.NotFound("student not found")
	}

	booking := &entity.Booking{
		Id:              uuid.New(),
		Origin:          entity.OriginDirectSession,
		MentorId:        mentorUserId,
		StudentId:       req.StudentId,
		Title:           req.Title,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		DurationMinutes: req.DurationMinutes,
		Type:            entity.SessionType(req.Type),
		Status:          entity.BookingStatusScheduled,
		Category:        entity.BookingCategory(req.Category),
		Priority:        entity.BookingPriority(req.Priority),
		Agenda:          req.Agenda,
		PaymentStatus:   entity.PaymentStatusNone,
		ReminderEnabled: req.ReminderEnabled,
		Attachments:     attachmentsFromDTO(req.Attachments),
		CreatedAt:       time.Now(),
	}
	if req.Description != "" {
		booking.Description = &req.Description
	}
	if req.MeetingLink != "" {
		booking.MeetingLink = &req.MeetingLink
	}
	if req.Notes != "" {
		booking.Notes = &req.Notes
	}
	if booking.Category == "" {
		booking.Category = entity.CategoryMeeting
	}
	if booking.Priority == "" {
		booking.Priority = entity.PriorityMedium
	}

	release, err := s.lockCalendar(ctx, mentorUserId)
	if err != nil {
		return nil, err
	}
	defer release()

	// Conflict scan and insert commit together or not at all.
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	conflict, err := findBookingConflict(ctx, uow, mentorUserId, booking.StartTime, booking.EndTime, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return nil, apperror.SlotConflict(fmt.Sprintf("time slot overlaps an existing booking from %s to %s",
			conflict.StartTime.Format(time.RFC3339), conflict.EndTime.Format(time.RFC3339)))
	}

	if err := uow.BookingRepository().Create(ctx, booking); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.afterBookingCreated(ctx, booking, student)

	return bookingToSessionResponse(booking), nil
}

// afterBookingCreated publishes the lifecycle event and queues the
// confirmation email. Both are best effort; the booking is already committed.
func (s *sessionService) afterBookingCreated(ctx context.Context, booking *entity.Booking, student *entity.User) {
	if s.eventPublisher != nil {
		evt := events.NewBookingCreated(booking.Id, booking.MentorId, booking.StudentId,
			string(booking.Origin), booking.Title, booking.StartTime, booking.EndTime)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish BOOKING_CREATED event: %v\n", err)
		}
	}

	if s.publisherService != nil && student != nil {
		mentorName := ""
		uow := s.uowFactory.NewUnitOfWork(ctx)
		if mentor, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: booking.MentorId}); err == nil && mentor != nil {
			mentorName = mentor.FullName
		}
		msg := dto.BookingConfirmationMessage{
			BookingId:    booking.Id,
			StudentEmail: student.Email,
			MentorName:   mentorName,
			Date:         booking.StartTime.Format("2006-01-02"),
			StartTime:    booking.StartTime.Format("15:04"),
			EndTime:      booking.EndTime.Format("15:04"),
		}
		if payload, err := json.Marshal(msg); err == nil {
			if err := s.publisherService.Publish(ctx, payload); err != nil {
				fmt.Printf("[WARN] Failed to queue confirmation email: %v\n", err)
			}
		}
	}
}

func (s *sessionService) GetSession(ctx context.Context, callerId uuid.UUID, id uuid.UUID) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	booking, err := uow.BookingRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OriginIs{Origin: string(entity.OriginDirectSession)},
	)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperror.NotFound("session not found")
	}
	if !booking.IsParticipant(callerId) {
		return nil, apperror.Forbidden("you are not a party to this session")
	}

	return bookingToSessionResponse(booking), nil
}

func (s *sessionService) ListSessions(ctx context.Context, callerId uuid.UUID, limit, offset int) (*dto.ListSessionsResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	total, err := uow.BookingRepository().Count(ctx,
		specification.ParticipantIs{UserID: callerId},
		specification.OriginIs{Origin: string(entity.OriginDirectSession)},
	)
	if err != nil {
		return nil, err
	}

	bookings, err := uow.BookingRepository().FindAll(ctx,
		specification.ParticipantIs{UserID: callerId},
		specification.OriginIs{Origin: string(entity.OriginDirectSession)},
		specification.OrderBy{Field: "start_time", Desc: false},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, err
	}

	sessions := make([]dto.SessionResponse, 0, len(bookings))
	for _, b := range bookings {
		sessions = append(sessions, *bookingToSessionResponse(b))
	}
	return &dto.ListSessionsResponse{Sessions: sessions, Total: total}, nil
}

func (s *sessionService) UpdateSession(ctx context.Context, callerId uuid.UUID, req *dto.UpdateSessionRequest) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	booking, err := uow.BookingRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.OriginIs{Origin: string(entity.OriginDirectSession)},
	)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperror.NotFound("session not found")
	}
	// Only the mentor party may mutate a session.
	if booking.MentorId != callerId {
		return nil, apperror.Forbidden("only the session's mentor may modify it")
	}

	newStart := booking.StartTime
	newEnd := booking.EndTime
	newDuration := booking.DurationMinutes
	timeChanged := false

	if req.StartTime != nil {
		newStart = *req.StartTime
		timeChanged = true
	}
	if req.EndTime != nil {
		newEnd = *req.EndTime
		timeChanged = true
	}
	if req.DurationMinutes != nil {
		newDuration = *req.DurationMinutes
		timeChanged = true
	}
	if timeChanged {
		if booking.Status.Terminal() {
			return nil, apperror.InvalidState(fmt.Sprintf("cannot reschedule a %s session", booking.Status))
		}
		if err := validateTimeRange(newStart, newEnd, newDuration); err != nil {
			return nil, err
		}
	}

	var cancelled bool
	if req.Status != nil {
		next := entity.BookingStatus(*req.Status)
		if !booking.CanTransitionTo(next) {
			return nil, apperror.InvalidState(fmt.Sprintf("cannot transition from %s to %s", booking.Status, next))
		}
		booking.Status = next
		if next == entity.BookingStatusCancelled {
			cancelled = true
			reason := ""
			if req.CancelReason != nil {
				reason = *req.CancelReason
			}
			booking.Cancellation = &entity.Cancellation{
				Reason:      reason,
				CancelledBy: callerId,
				CancelledAt: time.Now(),
			}
		}
	}

	if req.Title != nil {
		booking.Title = *req.Title
	}
	if req.Description != nil {
		booking.Description = req.Description
	}
	if req.Type != nil {
		booking.Type = entity.SessionType(*req.Type)
	}
	if req.Category != nil {
		booking.Category = entity.BookingCategory(*req.Category)
	}
	if req.Priority != nil {
		booking.Priority = entity.BookingPriority(*req.Priority)
	}
	if req.MeetingLink != nil {
		booking.MeetingLink = req.MeetingLink
	}
	if req.Notes != nil {
		booking.Notes = req.Notes
	}
	if req.Agenda != nil {
		booking.Agenda = req.Agenda
	}
	if req.ReminderEnabled != nil {
		booking.ReminderEnabled = *req.ReminderEnabled
	}
	if req.Attachments != nil {
		booking.Attachments = attachmentsFromDTO(req.Attachments)
	}

	booking.StartTime = newStart
	booking.EndTime = newEnd
	booking.DurationMinutes = newDuration
	now := time.Now()
	booking.UpdatedAt = &now

	if timeChanged {
		release, err := s.lockCalendar(ctx, booking.MentorId)
		if err != nil {
			return nil, err
		}
		defer release()
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if timeChanged {
		conflict, err := findBookingConflict(ctx, uow, booking.MentorId, newStart, newEnd, booking.Id)
		if err != nil {
			return nil, err
		}
		if conflict != nil {
			return nil, apperror.SlotConflict(fmt.Sprintf("time slot overlaps an existing booking from %s to %s",
				conflict.StartTime.Format(time.RFC3339), conflict.EndTime.Format(time.RFC3339)))
		}
	}

	if err := uow.BookingRepository().Update(ctx, booking); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if cancelled && s.eventPublisher != nil {
		evt := events.NewBookingCancelled(booking.Id, booking.MentorId, booking.StudentId,
			callerId, booking.Cancellation.Reason)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish BOOKING_CANCELLED event: %v\n", err)
		}
	}

	return bookingToSessionResponse(booking), nil
}

func (s *sessionService) DeleteSession(ctx context.Context, callerId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	booking, err := uow.BookingRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OriginIs{Origin: string(entity.OriginDirectSession)},
	)
	if err != nil {
		return err
	}
	if booking == nil {
		return apperror.NotFound("session not found")
	}
	if booking.MentorId != callerId {
		return apperror.Forbidden("only the session's mentor may delete it")
	}

	return uow.BookingRepository().Delete(ctx, id)
}

func (s *sessionService) SubmitFeedback(ctx context.Context, callerId uuid.UUID, req *dto.SubmitFeedbackRequest) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	booking, err := uow.BookingRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.OriginIs{Origin: string(entity.OriginDirectSession)},
	)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperror.NotFound("session not found")
	}

	updated, err := submitBookingFeedback(ctx, uow, booking, callerId, req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}

	s.profileCache.Delete(mentorProfileCacheKey(booking.MentorId))

	if s.eventPublisher != nil {
		evt := events.NewFeedbackSubmitted(booking.Id, booking.MentorId, booking.StudentId,
			req.Rating, updated.aggregate)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish FEEDBACK_SUBMITTED event: %v\n", err)
		}
	}

	return bookingToSessionResponse(booking), nil
}

type feedbackResult struct {
	aggregate float64
	count     int
}

// submitBookingFeedback enforces the feedback preconditions and folds the
// feedback write and the rating aggregate write into one transaction so the
// displayed rating never lags a committed feedback.
func submitBookingFeedback(ctx context.Context, uow unitofwork.UnitOfWork, booking *entity.Booking, callerId uuid.UUID, rating int, comment string) (*feedbackResult, error) {
	if booking.StudentId != callerId {
		return nil, apperror.Forbidden("only the session's student may submit feedback")
	}
	if booking.Status != entity.BookingStatusCompleted {
		return nil, apperror.InvalidState("feedback can only be submitted on a completed session")
	}
	if booking.Feedback != nil {
		return nil, apperror.InvalidState("feedback has already been submitted")
	}

	booking.Feedback = &entity.Feedback{
		Rating:      rating,
		Comment:     comment,
		SubmittedAt: time.Now(),
	}
	now := time.Now()
	booking.UpdatedAt = &now

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.BookingRepository().Update(ctx, booking); err != nil {
		return nil, err
	}

	// Recompute the mean over every rated booking of this mentor, the one just
	// written included.
	rated, err := uow.BookingRepository().FindAll(ctx,
		specification.MentorIs{MentorID: booking.MentorId},
		specification.HasFeedback{},
	)
	if err != nil {
		return nil, err
	}
	aggregate, count := scheduling.AggregateRating(rated)

	profile, err := uow.MentorProfileRepository().FindOne(ctx, specification.UserOwnedBy{UserID: booking.MentorId})
	if err != nil {
		return nil, err
	}
	if profile != nil {
		if err := uow.MentorProfileRepository().UpdateRating(ctx, profile.Id, aggregate, count); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &feedbackResult{aggregate: aggregate, count: count}, nil
}
