package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"hustlee-be/internal/entity"
	"hustlee-be/internal/repository/specification"
	"hustlee-be/internal/repository/unitofwork"
	"hustlee-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormConnection(t *testing.T) {
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.BookingRepository())
	assert.NotNil(t, uow.MentorProfileRepository())

	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)

	t.Run("Booking round trip", func(t *testing.T) {
		ctx := context.Background()
		start := time.Now().Add(240 * time.Hour).Truncate(time.Minute)

		booking := &entity.Booking{
			Id:              uuid.New(),
			Origin:          entity.OriginDirectSession,
			MentorId:        uuid.New(),
			StudentId:       uuid.New(),
			Title:           "Integration check",
			StartTime:       start,
			EndTime:         start.Add(time.Hour),
			DurationMinutes: 60,
			Type:            entity.SessionTypeVideo,
			Status:          entity.BookingStatusScheduled,
			Category:        entity.CategoryMeeting,
			Priority:        entity.PriorityMedium,
			PaymentStatus:   entity.PaymentStatusNone,
			CreatedAt:       time.Now(),
		}

		require.NoError(t, uow.BookingRepository().Create(ctx, booking))
		defer uow.BookingRepository().Delete(ctx, booking.Id)

		found, err := uow.BookingRepository().FindOne(ctx, specification.ByID{ID: booking.Id})
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, booking.Title, found.Title)
		assert.Equal(t, entity.OriginDirectSession, found.Origin)

		// The overlap prefilter must see it.
		overlapping, err := uow.BookingRepository().FindAll(ctx,
			specification.MentorIs{MentorID: booking.MentorId},
			specification.OverlappingRange{Start: start.Add(30 * time.Minute), End: start.Add(90 * time.Minute)},
		)
		require.NoError(t, err)
		assert.Len(t, overlapping, 1)

		// Touching the boundary must not.
		touching, err := uow.BookingRepository().FindAll(ctx,
			specification.MentorIs{MentorID: booking.MentorId},
			specification.OverlappingRange{Start: start.Add(time.Hour), End: start.Add(2 * time.Hour)},
		)
		require.NoError(t, err)
		assert.Empty(t, touching)
	})
}
