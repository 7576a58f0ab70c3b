package scheduling

import "hustlee-be/internal/entity"

// AggregateRating computes the unrounded mean over every rated booking.
// Bookings without feedback are skipped.
func AggregateRating(bookings []*entity.Booking) (rating float64, count int) {
	var sum int
	for _, b := range bookings {
		if b.Feedback == nil {
			continue
		}
		sum += b.Feedback.Rating
		count++
	}
	if count == 0 {
		return 0, 0
	}
	return float64(sum) / float64(count), count
}

// SessionPayment computes the amount owed for a booking at creation time:
// hourly rate prorated over the booked minutes. The result is frozen on the
// booking and never recomputed.
func SessionPayment(hourlyRate float64, durationMinutes int) float64 {
	return hourlyRate * float64(durationMinutes) / 60
}
