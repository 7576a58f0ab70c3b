package mapper

import (
	"encoding/json"
	"time"

	"hustlee-be/internal/entity"
	"hustlee-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type BookingMapper struct{}

func NewBookingMapper() *BookingMapper {
	return &BookingMapper{}
}

func (m *BookingMapper) ToEntity(b *model.Booking) *entity.Booking {
	if b == nil {
		return nil
	}

	var updatedAt *time.Time
	if !b.UpdatedAt.IsZero() {
		t := b.UpdatedAt
		updatedAt = &t
	}

	var feedback *entity.Feedback
	if b.FeedbackRating != nil && b.FeedbackSubmittedAt != nil {
		comment := ""
		if b.FeedbackComment != nil {
			comment = *b.FeedbackComment
		}
		feedback = &entity.Feedback{
			Rating:      *b.FeedbackRating,
			Comment:     comment,
			SubmittedAt: *b.FeedbackSubmittedAt,
		}
	}

	var cancellation *entity.Cancellation
	if b.CancelledBy != nil && b.CancelledAt != nil {
		reason := ""
		if b.CancellationReason != nil {
			reason = *b.CancellationReason
		}
		cancellation = &entity.Cancellation{
			Reason:      reason,
			CancelledBy: *b.CancelledBy,
			CancelledAt: *b.CancelledAt,
		}
	}

	var attachments []entity.Attachment
	if len(b.Attachments) > 0 {
		_ = json.Unmarshal(b.Attachments, &attachments)
	}

	return &entity.Booking{
		Id:              b.Id,
		Origin:          entity.BookingOrigin(b.Origin),
		MentorId:        b.MentorId,
		StudentId:       b.StudentId,
		Title:           b.Title,
		Description:     b.Description,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
		DurationMinutes: b.DurationMinutes,
		Type:            entity.SessionType(b.Type),
		Status:          entity.BookingStatus(b.Status),
		Category:        entity.BookingCategory(b.Category),
		Priority:        entity.BookingPriority(b.Priority),
		MeetingLink:     b.MeetingLink,
		Notes:           b.Notes,
		Agenda:          b.Agenda,
		PaymentAmount:   b.PaymentAmount,
		PaymentCurrency: b.PaymentCurrency,
		PaymentStatus:   entity.PaymentStatus(b.PaymentStatus),
		PaymentRef:      b.PaymentRef,
		Feedback:        feedback,
		Cancellation:    cancellation,
		ReminderEnabled: b.ReminderEnabled,
		ReminderAt:      b.ReminderAt,
		Attachments:     attachments,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       updatedAt,
	}
}

func (m *BookingMapper) ToModel(b *entity.Booking) *model.Booking {
	if b == nil {
		return nil
	}

	var updatedAt time.Time
	if b.UpdatedAt != nil {
		updatedAt = *b.UpdatedAt
	}

	out := &model.Booking{
		Id:              b.Id,
		Origin:          string(b.Origin),
		MentorId:        b.MentorId,
		StudentId:       b.StudentId,
		Title:           b.Title,
		Description:     b.Description,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
		DurationMinutes: b.DurationMinutes,
		Type:            string(b.Type),
		Status:          string(b.Status),
		Category:        string(b.Category),
		Priority:        string(b.Priority),
		MeetingLink:     b.MeetingLink,
		Notes:           b.Notes,
		Agenda:          datatypes.NewJSONSlice(b.Agenda),
		PaymentAmount:   b.PaymentAmount,
		PaymentCurrency: b.PaymentCurrency,
		PaymentStatus:   string(b.PaymentStatus),
		PaymentRef:      b.PaymentRef,
		ReminderEnabled: b.ReminderEnabled,
		ReminderAt:      b.ReminderAt,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       updatedAt,
		DeletedAt:       gorm.DeletedAt{},
	}

	if b.Feedback != nil {
		rating := b.Feedback.Rating
		comment := b.Feedback.Comment
		submittedAt := b.Feedback.SubmittedAt
		out.FeedbackRating = &rating
		out.FeedbackComment = &comment
		out.FeedbackSubmittedAt = &submittedAt
	}

	if b.Cancellation != nil {
		reason := b.Cancellation.Reason
		cancelledBy := b.Cancellation.CancelledBy
		cancelledAt := b.Cancellation.CancelledAt
		out.CancellationReason = &reason
		out.CancelledBy = &cancelledBy
		out.CancelledAt = &cancelledAt
	}

	if len(b.Attachments) > 0 {
		raw, _ := json.Marshal(b.Attachments)
		out.Attachments = datatypes.JSON(raw)
	}

	return out
}

func (m *BookingMapper) ToEntities(bookings []*model.Booking) []*entity.Booking {
	entities := make([]*entity.Booking, len(bookings))
	for i, b := range bookings {
		entities[i] = m.ToEntity(b)
	}
	return entities
}
