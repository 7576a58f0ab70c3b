package service

import (
	"context"
	"crypto/sha512"
	"encoding/json"
	"fmt"
	"os"
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
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	gocache "github.com/patrickmn/go-cache"
)

type IMentorshipService interface {
	Book(ctx context.Context, studentId uuid.UUID, req *dto.BookMentorshipRequest) (*dto.MentorshipResponse, error)
	GetRecord(ctx context.Context, callerId uuid.UUID, id uuid.UUID) (*dto.MentorshipResponse, error)
	ListRecords(ctx context.Context, callerId uuid.UUID, limit, offset int) (*dto.ListMentorshipsResponse, error)
	UpdateStatus(ctx context.Context, callerId uuid.UUID, req *dto.UpdateMentorshipStatusRequest) (*dto.MentorshipResponse, error)
	SubmitFeedback(ctx context.Context, callerId uuid.UUID, req *dto.SubmitFeedbackRequest) (*dto.MentorshipResponse, error)
	HandlePaymentNotification(ctx context.Context, req *dto.PaymentNotificationRequest) error
}

type mentorshipService struct {
	uowFactory       unitofwork.RepositoryFactory
	calendarLock     *lock.CalendarLock
	eventPublisher   *pktNats.Publisher
	publisherService IPublisherService
	profileCache     *gocache.Cache
}

func NewMentorshipService(
	uowFactory unitofwork.RepositoryFactory,
	calendarLock *lock.CalendarLock,
	eventPublisher *pktNats.Publisher,
	publisherService IPublisherService,
	profileCache *gocache.Cache,
) IMentorshipService {
	return &mentorshipService{
		uowFactory:       uowFactory,
		calendarLock:     calendarLock,
		eventPublisher:   eventPublisher,
		publisherService: publisherService,
		profileCache:     profileCache,
	}
}

func bookingToMentorshipResponse(b *entity.Booking, snapURL string) *dto.MentorshipResponse {
	resp := &dto.MentorshipResponse{
		Id:              b.Id,
		MentorId:        b.MentorId,
		StudentId:       b.StudentId,
		Topic:           b.Title,
		Date:            b.StartTime.Format("2006-01-02"),
		StartTime:       b.StartTime.Format("15:04"),
		EndTime:         b.EndTime.Format("15:04"),
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		Payment: dto.PaymentResponse{
			Amount:   b.PaymentAmount,
			Currency: b.PaymentCurrency,
			Status:   string(b.PaymentStatus),
			SnapURL:  snapURL,
		},
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
	if b.PaymentRef != nil {
		resp.Payment.Reference = *b.PaymentRef
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
	return resp
}

func (s *mentorshipService) lockCalendar(ctx context.Context, mentorId uuid.UUID) (func(), error) {
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

func (s *mentorshipService) Book(ctx context.Context, studentId uuid.UUID, req *dto.BookMentorshipRequest) (*dto.MentorshipResponse, error) {
	date, err := scheduling.ParseDate(req.Date)
	if err != nil {
		return nil, apperror.Validation(err.Error(), nil)
	}
	startMinute, err := scheduling.ParseClock(req.StartTime)
	if err != nil {
		return nil, apperror.Validation(err.Error(), nil)
	}
	endMinute, err := scheduling.ParseClock(req.EndTime)
	if err != nil {
		return nil, apperror.Validation(err.Error(), nil)
	}
	if startMinute >= endMinute {
		return nil, apperror.Validation("end_time must be after start_time", nil)
	}
	if endMinute-startMinute != req.DurationMinutes {
		return nil, apperror.Validation("duration_minutes must equal the span between start_time and end_time", nil)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	mentor, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: req.MentorId})
	if err != nil {
		return nil, err
	}
	if mentor == nil || mentor.Role != entity.UserRoleMentor {
		return nil, apperror.NotFound("mentor not found")
	}

	profile, err := uow.MentorProfileRepository().FindOne(ctx, specification.UserOwnedBy{UserID: req.MentorId})
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperror.NotFound("mentor not found")
	}
	if !profile.Active {
		return nil, apperror.InvalidState("mentor is not accepting bookings")
	}

	if !scheduling.WithinAvailability(profile.Availability, date.Weekday(), startMinute, endMinute) {
		return nil, apperror.SlotUnavailable(fmt.Sprintf("mentor is not available on %s between %s and %s",
			scheduling.WeekdayName(date.Weekday()), req.StartTime, req.EndTime))
	}

	startTime := date.Add(time.Duration(startMinute) * time.Minute)
	endTime := date.Add(time.Duration(endMinute) * time.Minute)

	// Amount is frozen at creation; later rate changes never touch it.
	amount := scheduling.SessionPayment(profile.HourlyRate, req.DurationMinutes)

	sessionType := entity.SessionTypeVideo
	if req.Type != "" {
		sessionType = entity.SessionType(req.Type)
	}

	booking := &entity.Booking{
		Id:              uuid.New(),
		Origin:          entity.OriginMatchedMentorship,
		MentorId:        req.MentorId,
		StudentId:       studentId,
		Title:           req.Topic,
		StartTime:       startTime,
		EndTime:         endTime,
		DurationMinutes: req.DurationMinutes,
		Type:            sessionType,
		Status:          entity.BookingStatusScheduled,
		Category:        entity.CategoryConsultation,
		Priority:        entity.PriorityMedium,
		PaymentAmount:   amount,
		PaymentCurrency: profile.Currency,
		PaymentStatus:   entity.PaymentStatusNone,
		CreatedAt:       time.Now(),
	}
	if req.Notes != "" {
		booking.Notes = &req.Notes
	}
	if amount > 0 {
		booking.PaymentStatus = entity.PaymentStatusPending
	}

	release, err := s.lockCalendar(ctx, req.MentorId)
	if err != nil {
		return nil, err
	}
	defer release()

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	conflict, err := findBookingConflict(ctx, uow, req.MentorId, startTime, endTime, uuid.Nil)
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

	// External payment call stays outside the DB transaction.
	snapURL := ""
	if amount > 0 && os.Getenv("MIDTRANS_SERVER_KEY") != "" {
		snapResp, snapErr := s.createSnapTransaction(booking, mentor.FullName)
		if snapErr != nil {
			fmt.Printf("[WARN] Failed to open payment for booking %s: %v\n", booking.Id, snapErr)
		} else {
			snapURL = snapResp.RedirectURL
			booking.PaymentRef = &snapResp.Token
			if err := uow.BookingRepository().Update(ctx, booking); err != nil {
				fmt.Printf("[WARN] Failed to store payment reference: %v\n", err)
			}
		}
	}

	s.afterMentorshipBooked(ctx, booking)

	return bookingToMentorshipResponse(booking, snapURL), nil
}

func (s *mentorshipService) createSnapTransaction(booking *entity.Booking, mentorName string) (*snap.Response, error) {
	var sClient snap.Client
	serverKey := os.Getenv("MIDTRANS_SERVER_KEY")
	env := midtrans.Sandbox
	if os.Getenv("MIDTRANS_IS_PRODUCTION") == "true" {
		env = midtrans.Production
	}
	sClient.New(serverKey, env)

	frontendURL := os.Getenv("FRONTEND_URL")
	finishRedirectURL := fmt.Sprintf("%s/mentorship?payment=success", frontendURL)

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  booking.Id.String(),
			GrossAmt: int64(booking.PaymentAmount),
		},
		CreditCard: &snap.CreditCardDetails{
			Secure: true,
		},
		Callbacks: &snap.Callbacks{
			Finish: finishRedirectURL,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    booking.Id.String(),
				Price: int64(booking.PaymentAmount),
				Qty:   1,
				Name:  fmt.Sprintf("Mentorship session with %s", mentorName),
			},
		},
		EnabledPayments: snap.AllSnapPaymentType,
	}

	snapResp, midErr := sClient.CreateTransaction(snapReq)
	if midErr != nil {
		return nil, fmt.Errorf("midtrans error: %v", midErr.GetMessage())
	}
	return snapResp, nil
}

func (s *mentorshipService) afterMentorshipBooked(ctx context.Context, booking *entity.Booking) {
	if s.eventPublisher != nil {
		evt := events.NewBookingCreated(booking.Id, booking.MentorId, booking.StudentId,
			string(booking.Origin), booking.Title, booking.StartTime, booking.EndTime)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish BOOKING_CREATED event: %v\n", err)
		}
	}

	if s.publisherService != nil {
		uow := s.uowFactory.NewUnitOfWork(ctx)
		student, _ := uow.UserRepository().FindOne(ctx, specification.ByID{ID: booking.StudentId})
		mentor, _ := uow.UserRepository().FindOne(ctx, specification.ByID{ID: booking.MentorId})
		if student != nil {
			mentorName := ""
			if mentor != nil {
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
}

func (s *mentorshipService) findRecord(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) (*entity.Booking, error) {
	booking, err := uow.BookingRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OriginIs{Origin: string(entity.OriginMatchedMentorship)},
	)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperror.NotFound("mentorship record not found")
	}
	return booking, nil
}

func (s *mentorshipService) GetRecord(ctx context.Context, callerId uuid.UUID, id uuid.UUID) (*dto.MentorshipResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	booking, err := s.findRecord(ctx, uow, id)
	if err != nil {
		return nil, err
	}
	if !booking.IsParticipant(callerId) {
		return nil, apperror.Forbidden("you are not a party to this mentorship record")
	}

	return bookingToMentorshipResponse(booking, ""), nil
}

func (s *mentorshipService) ListRecords(ctx context.Context, callerId uuid.UUID, limit, offset int) (*dto.ListMentorshipsResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	total, err := uow.BookingRepository().Count(ctx,
		specification.ParticipantIs{UserID: callerId},
		specification.OriginIs{Origin: string(entity.OriginMatchedMentorship)},
	)
	if err != nil {
		return nil, err
	}

	bookings, err := uow.BookingRepository().FindAll(ctx,
		specification.ParticipantIs{UserID: callerId},
		specification.OriginIs{Origin: string(entity.OriginMatchedMentorship)},
		specification.OrderBy{Field: "start_time", Desc: false},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, err
	}

	records := make([]dto.MentorshipResponse, 0, len(bookings))
	for _, b := range bookings {
		records = append(records, *bookingToMentorshipResponse(b, ""))
	}
	return &dto.ListMentorshipsResponse{Records: records, Total: total}, nil
}

func (s *mentorshipService) UpdateStatus(ctx context.Context, callerId uuid.UUID, req *dto.UpdateMentorshipStatusRequest) (*dto.MentorshipResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	booking, err := s.findRecord(ctx, uow, req.Id)
	if err != nil {
		return nil, err
	}
	if !booking.IsParticipant(callerId) {
		return nil, apperror.Forbidden("you are not a party to this mentorship record")
	}

	next := entity.BookingStatus(req.Status)

	// Either party may cancel; only the mentor asserts progress or completion.
	if next != entity.BookingStatusCancelled && booking.MentorId != callerId {
		return nil, apperror.Forbidden("only the mentor may mark the session in progress or completed")
	}

	if !booking.CanTransitionTo(next) {
		return nil, apperror.InvalidState(fmt.Sprintf("cannot transition from %s to %s", booking.Status, next))
	}

	booking.Status = next
	var cancelled bool
	if next == entity.BookingStatusCancelled {
		cancelled = true
		booking.Cancellation = &entity.Cancellation{
			Reason:      req.CancelReason,
			CancelledBy: callerId,
			CancelledAt: time.Now(),
		}
	}
	now := time.Now()
	booking.UpdatedAt = &now

	if err := uow.BookingRepository().Update(ctx, booking); err != nil {
		return nil, err
	}

	if cancelled && s.eventPublisher != nil {
		evt := events.NewBookingCancelled(booking.Id, booking.MentorId, booking.StudentId,
			callerId, req.CancelReason)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish BOOKING_CANCELLED event: %v\n", err)
		}
	}

	return bookingToMentorshipResponse(booking, ""), nil
}

func (s *mentorshipService) SubmitFeedback(ctx context.Context, callerId uuid.UUID, req *dto.SubmitFeedbackRequest) (*dto.MentorshipResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	booking, err := s.findRecord(ctx, uow, req.Id)
	if err != nil {
		return nil, err
	}

	result, err := submitBookingFeedback(ctx, uow, booking, callerId, req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}

	s.profileCache.Delete(mentorProfileCacheKey(booking.MentorId))

	if s.eventPublisher != nil {
		evt := events.NewFeedbackSubmitted(booking.Id, booking.MentorId, booking.StudentId,
			req.Rating, result.aggregate)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish FEEDBACK_SUBMITTED event: %v\n", err)
		}
	}

	return bookingToMentorshipResponse(booking, ""), nil
}

func (s *mentorshipService) HandlePaymentNotification(ctx context.Context, req *dto.PaymentNotificationRequest) error {
	serverKey := os.Getenv("MIDTRANS_SERVER_KEY")
	if serverKey == "" {
		return fmt.Errorf("server configuration error")
	}

	// Midtrans signature = SHA512(order_id + status_code + gross_amount + server_key)
	signatureInput := req.OrderId + req.StatusCode + req.GrossAmount + serverKey
	expectedSignature := fmt.Sprintf("%x", sha512.Sum512([]byte(signatureInput)))
	if req.SignatureKey != expectedSignature {
		return apperror.Unauthorized("invalid signature")
	}

	bookingId, err := uuid.Parse(req.OrderId)
	if err != nil {
		return apperror.Validation("invalid order id format", nil)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	booking, err := s.findRecord(ctx, uow, bookingId)
	if err != nil {
		return err
	}

	switch req.TransactionStatus {
	case "capture":
		if req.FraudStatus == "accept" {
			booking.PaymentStatus = entity.PaymentStatusPaid
		}
	case "settlement":
		booking.PaymentStatus = entity.PaymentStatusPaid
	case "deny", "cancel", "expire", "failure":
		booking.PaymentStatus = entity.PaymentStatusFailed
	case "pending":
		booking.PaymentStatus = entity.PaymentStatusPending
	}
	now := time.Now()
	booking.UpdatedAt = &now

	return uow.BookingRepository().Update(ctx, booking)
}
