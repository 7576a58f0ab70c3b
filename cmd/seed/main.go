package main

import (
	"log"
	"os"
	"time"

	"hustlee-be/internal/model"
	"hustlee-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding notification types...")
	SeedNotificationTypes(db)

	color.Cyan("Seeding demo accounts...")
	seedDemoAccounts(db)

	color.Green("Seeding complete")
}

func seedDemoAccounts(db *gorm.DB) {
	mentor := seedUser(db, "mentor@hustlee.dev", "Ayu Lestari", "mentor")
	student := seedUser(db, "student@hustlee.dev", "Bima Pratama", "student")
	if mentor == nil || student == nil {
		return
	}

	var existing model.MentorProfile
	err := db.Where("user_id = ?", mentor.Id).First(&existing).Error
	if err == nil {
		color.Yellow("Mentor profile already exists, skipping")
		return
	}
	if err != gorm.ErrRecordNotFound {
		log.Printf("Failed to check mentor profile: %v", err)
		return
	}

	profile := model.MentorProfile{
		Id:         uuid.New(),
		UserId:     mentor.Id,
		Headline:   "Senior Backend Engineer",
		Bio:        "A decade of building distributed systems, happy to walk through yours.",
		HourlyRate: 60,
		Currency:   "USD",
		Expertise:  datatypes.NewJSONSlice([]string{"go", "postgres", "system-design"}),
		Languages:  datatypes.NewJSONSlice([]string{"en", "id"}),
		Rating:     0,
		Verified:   true,
		Active:     true,
	}

	// Weekday evenings, 17:00 to 21:00 (minutes since midnight).
	windows := make([]model.AvailabilityWindow, 0, 5)
	for weekday := 1; weekday <= 5; weekday++ {
		windows = append(windows, model.AvailabilityWindow{
			Id:              uuid.New(),
			MentorProfileId: profile.Id,
			Weekday:         weekday,
			StartMinute:     17 * 60,
			EndMinute:       21 * 60,
		})
	}

	if err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
		return tx.Create(&windows).Error
	}); err != nil {
		log.Printf("Failed to seed mentor profile: %v", err)
		return
	}

	color.Green("Seeded mentor profile for %s with %d availability windows", mentor.Email, len(windows))
}

func seedUser(db *gorm.DB, email, fullName, role string) *model.User {
	var existing model.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		color.Yellow("User %s already exists, skipping", email)
		return &existing
	}
	if err != gorm.ErrRecordNotFound {
		log.Printf("Failed to check user %s: %v", email, err)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		return nil
	}
	hashStr := string(hash)
	now := time.Now()

	user := model.User{
		Id:              uuid.New(),
		Email:           email,
		PasswordHash:    &hashStr,
		FullName:        fullName,
		Role:            role,
		Status:          "active",
		EmailVerified:   true,
		EmailVerifiedAt: &now,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Printf("Failed to seed user %s: %v", email, err)
		return nil
	}

	color.Green("Seeded %s user: %s", role, email)
	return &user
}
