package scheduling

import (
	"testing"
	"time"

	"hustlee-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

func ratedBooking(rating int) *entity.Booking {
	return &entity.Booking{
		Status: entity.BookingStatusCompleted,
		Feedback: &entity.Feedback{
			Rating:      rating,
			SubmittedAt: time.Now(),
		},
	}
}

func TestAggregateRatingMean(t *testing.T) {
	bookings := []*entity.Booking{
		ratedBooking(4),
		ratedBooking(5),
		ratedBooking(3),
	}

	rating, count := AggregateRating(bookings)
	assert.Equal(t, 3, count)
	assert.InDelta(t, 4.0, rating, 1e-9)
}

func TestAggregateRatingSkipsUnrated(t *testing.T) {
	bookings := []*entity.Booking{
		ratedBooking(5),
		{Status: entity.BookingStatusCompleted},
		{Status: entity.BookingStatusScheduled},
	}

	rating, count := AggregateRating(bookings)
	assert.Equal(t, 1, count)
	assert.InDelta(t, 5.0, rating, 1e-9)
}

func TestAggregateRatingEmpty(t *testing.T) {
	rating, count := AggregateRating(nil)
	assert.Equal(t, 0, count)
	assert.Zero(t, rating)
}

func TestAggregateRatingUnrounded(t *testing.T) {
	rating, count := AggregateRating([]*entity.Booking{
		ratedBooking(5),
		ratedBooking(4),
		ratedBooking(4),
	})
	assert.Equal(t, 3, count)
	assert.InDelta(t, 13.0/3.0, rating, 1e-9)
}

func TestSessionPayment(t *testing.T) {
	assert.InDelta(t, 90.0, SessionPayment(60, 90), 1e-9)
	assert.InDelta(t, 60.0, SessionPayment(60, 60), 1e-9)
	assert.InDelta(t, 30.0, SessionPayment(60, 30), 1e-9)
	assert.InDelta(t, 0.0, SessionPayment(60, 0), 1e-9)
}
