package main

import (
	"log"

	"hustlee-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SeedNotificationTypes populates the registry of event-to-notification mappings.
func SeedNotificationTypes(db *gorm.DB) {
	types := []model.NotificationType{
		{
			Code:        "BOOKING_CREATED",
			DisplayName: "New Booking",
			Template:    "New session booked: \"{title}\" starting {start_time}",
			TargetType:  "MENTOR",
			Priority:    "HIGH",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web", "email"]`)),
		},
		{
			Code:        "BOOKING_CANCELLED",
			DisplayName: "Booking Cancelled",
			Template:    "A session was cancelled: {reason}",
			TargetType:  "PARTIES",
			Priority:    "HIGH",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web", "email"]`)),
		},
		{
			Code:        "FEEDBACK_SUBMITTED",
			DisplayName: "New Feedback",
			Template:    "You received a {rating}-star rating",
			TargetType:  "MENTOR",
			Priority:    "MEDIUM",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web"]`)),
		},
	}

	for _, t := range types {
		var existing model.NotificationType
		err := db.Where("code = ?", t.Code).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			if err := db.Create(&t).Error; err != nil {
				log.Printf("Failed to seed notification type %s: %v", t.Code, err)
				continue
			}
			log.Printf("Seeded notification type: %s", t.Code)
		} else if err == nil {
			log.Printf("Notification type %s already exists, skipping", t.Code)
		} else {
			log.Printf("Failed to check notification type %s: %v", t.Code, err)
		}
	}
}
