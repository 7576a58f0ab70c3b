package contract

import (
	"context"

	"hustlee-be/internal/entity"
	"hustlee-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MentorProfileRepository interface {
	Create(ctx context.Context, profile *entity.MentorProfile) error
	Update(ctx context.Context, profile *entity.MentorProfile) error
	// ReplaceAvailability swaps the full set of availability windows atomically.
	ReplaceAvailability(ctx context.Context, profileId uuid.UUID, windows []entity.AvailabilityWindow) error
	// UpdateRating writes the aggregate rating fields only.
	UpdateRating(ctx context.Context, profileId uuid.UUID, rating float64, count int) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MentorProfile, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MentorProfile, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
